package tpcc

import (
	"embed"

	"github.com/zeptools/tpcc-core/db/sqldb"
)

//go:embed sql
var sqlFS embed.FS

func init() {
	sqldb.RegisterGroup(sqlFS, "tpcc")
}
