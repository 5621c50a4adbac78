package repository

import (
	"strconv"
	"strings"

	"github.com/spec-kit/agent-admin/internal/config"
)

// dialect adapts "?" placeholders to the driver in use.
type dialect string

func (d dialect) rebind(query string) string {
	if d != config.DriverPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
