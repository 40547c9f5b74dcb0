package sqldb

import (
	"fmt"
	"strconv"
	"strings"
)

var PlaceholderPrefixForDBType = map[string]byte{
	"mysql": '?',
	"pgsql": '$',
	"dsql":  '$', // Aurora DSQL speaks the PostgreSQL wire protocol
}

func PlaceholdersGF(baseChar byte) func(int, ...int) []string { // length, start
	if baseChar == '?' || baseChar == 0 {
		return func(length int, _ ...int) []string {
			placeholders := make([]string, length)
			for i := range placeholders {
				placeholders[i] = "?"
			}
			return placeholders
		}
	}
	return func(length int, startIndex ...int) []string {
		placeholders := make([]string, length)
		var startI int
		if len(startIndex) == 0 {
			startI = 1
		} else {
			startI = startIndex[0]
		}
		cnt := startI
		for i := range placeholders {
			placeholders[i] = fmt.Sprintf("%c%d", baseChar, cnt)
			cnt++
		}
		return placeholders
	}
}

func ReplaceStaticPlaceholders(sql string, prefix byte) string {
	if prefix == '?' || prefix == 0 {
		return sql
	}
	var builder strings.Builder
	builder.Grow(len(sql) + 8)
	cnt := 1
	i := 0
	for i < len(sql) {
		if sql[i] == '?' {
			builder.WriteByte(prefix)
			builder.WriteString(strconv.Itoa(cnt))
			cnt++
		} else {
			builder.WriteByte(sql[i])
		}
		i++
	}
	return builder.String()
}
