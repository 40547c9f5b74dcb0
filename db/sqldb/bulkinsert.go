package sqldb

import (
	"fmt"
	"strings"
)

// BuildBulkInsert - multi-row INSERT statement for backends without a native
// COPY protocol (MySQL, Aurora DSQL). Identifiers are validated since they
// cannot be bound as parameters.
func BuildBulkInsert(table string, columns []string, rowCount int, prefix byte) (string, error) {
	if !IdentifierRegexp.MatchString(table) {
		return "", fmt.Errorf("invalid SQL identifier: %q", table)
	}
	for _, col := range columns {
		if !IdentifierRegexp.MatchString(col) {
			return "", fmt.Errorf("invalid SQL identifier: %q", col)
		}
	}
	if rowCount < 1 || len(columns) == 0 {
		return "", fmt.Errorf("bulk insert needs at least one row and one column")
	}
	placeholders := PlaceholdersGF(prefix)

	var b strings.Builder
	b.Grow(64 + rowCount*4*len(columns))
	b.WriteString("INSERT INTO ")
	b.WriteString(table)
	b.WriteString(" (")
	b.WriteString(strings.Join(columns, ", "))
	b.WriteString(") VALUES ")
	next := 1
	for r := 0; r < rowCount; r++ {
		if r > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('(')
		b.WriteString(strings.Join(placeholders(len(columns), next), ", "))
		b.WriteByte(')')
		next += len(columns)
	}
	return b.String(), nil
}
