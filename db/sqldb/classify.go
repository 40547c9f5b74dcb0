package sqldb

import "strings"

// StmtClass - coarse statement classification used to decide transaction
// shape. Aurora DSQL rejects DDL mixed with DML in one transaction and allows
// only one DDL statement per transaction, so every statement gets classified
// before execution.
type StmtClass int

const (
	StmtRead StmtClass = iota
	StmtDML
	StmtDDL
)

func (c StmtClass) String() string {
	switch c {
	case StmtDDL:
		return "DDL"
	case StmtDML:
		return "DML"
	default:
		return "READ"
	}
}

// Aurora DSQL transaction limits.
const (
	MaxRowsModifiedPerTx = 3000 // hard ceiling on rows touched by one transaction
	MaxDDLPerTx          = 1
)

var ddlKeywords = map[string]struct{}{
	"CREATE": {}, "ALTER": {}, "DROP": {}, "TRUNCATE": {},
	"RENAME": {}, "GRANT": {}, "REVOKE": {},
}

var dmlKeywords = map[string]struct{}{
	"INSERT": {}, "UPDATE": {}, "DELETE": {},
}

// Classify tags a SQL statement by its leading keyword, ignoring leading
// whitespace, case-insensitive. Anything that is neither DDL nor DML counts
// as a read.
func Classify(stmt string) StmtClass {
	trimmed := strings.TrimLeft(stmt, " \t\r\n")
	end := strings.IndexFunc(trimmed, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\r' || r == '\n' || r == '(' || r == ';'
	})
	if end == -1 {
		end = len(trimmed)
	}
	keyword := strings.ToUpper(trimmed[:end])
	if _, ok := ddlKeywords[keyword]; ok {
		return StmtDDL
	}
	if _, ok := dmlKeywords[keyword]; ok {
		return StmtDML
	}
	return StmtRead
}
