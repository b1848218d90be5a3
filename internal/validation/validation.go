package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// Rule pairs a predicate with the message reported when it fails.
type Rule struct {
	Check   func(string) bool
	Message string
}

var (
	nameRe  = regexp.MustCompile(`^[\p{L} ]+$`)
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	lowerRe = regexp.MustCompile(`[a-z]`)
	upperRe = regexp.MustCompile(`[A-Z]`)
	digitRe = regexp.MustCompile(`[0-9]`)
)

// NameRules validates a display name that has already been trimmed.
var NameRules = []Rule{
	{func(s string) bool { return s != "" }, "name is required"},
	{func(s string) bool { return len([]rune(s)) >= 2 }, "name must be at least 2 characters"},
	{func(s string) bool { return len([]rune(s)) <= 100 }, "name must be at most 100 characters"},
	{func(s string) bool { return s == "" || nameRe.MatchString(s) }, "name may contain only letters and spaces"},
}

// EmailRules validates an email that has already been normalized.
var EmailRules = []Rule{
	{func(s string) bool { return s != "" }, "email is required"},
	{func(s string) bool { return len(s) <= 255 }, "email must be at most 255 characters"},
	{func(s string) bool { return s == "" || emailRe.MatchString(s) }, "email must be a valid address"},
}

var PasswordRules = []Rule{
	{func(s string) bool { return s != "" }, "password is required"},
	{func(s string) bool { return len(s) >= 8 }, "password must be at least 8 characters"},
	{func(s string) bool { return len(s) <= 128 }, "password must be at most 128 characters"},
	{func(s string) bool { return lowerRe.MatchString(s) }, "password must contain a lowercase letter"},
	{func(s string) bool { return upperRe.MatchString(s) }, "password must contain an uppercase letter"},
	{func(s string) bool { return digitRe.MatchString(s) }, "password must contain a digit"},
}

// Run evaluates every rule against value and collects all violations,
// so the caller reports the full set in one response.
func Run(value string, rules []Rule) []string {
	var violations []string
	for _, r := range rules {
		if !r.Check(value) {
			violations = append(violations, r.Message)
		}
	}
	return violations
}

// JoinViolations flattens collected violations into a single message.
func JoinViolations(violations []string) string {
	return strings.Join(violations, "; ")
}

// NormalizeName trims surrounding whitespace.
func NormalizeName(name string) string {
	return strings.TrimSpace(name)
}

// NormalizeEmail trims and lowercases so lookups and the uniqueness
// check are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ParseID checks that id is a well-formed user identifier.
func ParseID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid user id %q", id)
	}
	return parsed, nil
}
