package dsql

import "github.com/zeptools/tpcc-core/db/sqldb"

var rawStmtStore = sqldb.NewRawStore()

// LoadRawStmtsToStore
// WARNING: Ensure required imports beforehand
func LoadRawStmtsToStore() error {
	return sqldb.LoadRawStmtsToStore(rawStmtStore, DBType, DefaultPlaceholderPrefix)
}
