package storage

import (
	"fmt"
	"regexp"
	"strings"
)

// Guard is a policy hook applied to generated statements before execution.
type Guard interface {
	Check(statement string) error
}

// ReadOnlyGuard admits exactly one SELECT statement against one allowed
// table. The original flow executed whatever text the model produced; the
// guard closes that hole while leaving the retry loop a chance to obtain a
// compliant statement.
type ReadOnlyGuard struct {
	Table string
}

var forbiddenKeywords = regexp.MustCompile(`(?i)\b(INSERT|UPDATE|DELETE|DROP|ALTER|CREATE|TRUNCATE|REPLACE|GRANT|REVOKE|OUTFILE|DUMPFILE)\b`)

// Check validates the statement against the read-only policy.
func (g ReadOnlyGuard) Check(statement string) error {
	trimmed := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(statement), ";"))
	if trimmed == "" {
		return fmt.Errorf("empty statement")
	}
	if strings.Contains(trimmed, ";") {
		return fmt.Errorf("multiple statements are not allowed")
	}

	first := strings.ToUpper(firstWord(trimmed))
	if first != "SELECT" && first != "WITH" {
		return fmt.Errorf("only SELECT statements are allowed, got %s", first)
	}

	if forbiddenKeywords.MatchString(trimmed) {
		return fmt.Errorf("statement contains a forbidden keyword")
	}

	if g.Table != "" {
		tablePattern := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(g.Table) + `\b`)
		if !tablePattern.MatchString(trimmed) {
			return fmt.Errorf("statement must reference the %s table", g.Table)
		}
	}

	return nil
}

func firstWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
