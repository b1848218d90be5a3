package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNameRules(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"plain", "John Doe", true},
		{"accented", "José Álvares", true},
		{"digits rejected", "John123", false},
		{"too short", "J", false},
		{"empty", "", false},
		{"too long", strings.Repeat("a", 101), false},
		{"exactly 100", strings.Repeat("a", 100), true},
		{"punctuation rejected", "John-Doe", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			violations := Run(tt.input, NameRules)
			if tt.valid {
				assert.Empty(t, violations)
			} else {
				assert.NotEmpty(t, violations)
			}
		})
	}
}

func TestEmailRules(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"plain", "a@b.com", true},
		{"missing at", "ab.com", false},
		{"missing tld", "a@b", false},
		{"empty", "", false},
		{"too long", strings.Repeat("a", 250) + "@b.com", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			violations := Run(tt.input, EmailRules)
			if tt.valid {
				assert.Empty(t, violations)
			} else {
				assert.NotEmpty(t, violations)
			}
		})
	}
}

func TestPasswordRules(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"ok", "Abcdefg1", true},
		{"no uppercase", "alllowercase1", false},
		{"no lowercase", "ALLUPPERCASE1", false},
		{"no digit", "Abcdefgh", false},
		{"too short", "Abc1", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			violations := Run(tt.input, PasswordRules)
			if tt.valid {
				assert.Empty(t, violations)
			} else {
				assert.NotEmpty(t, violations)
			}
		})
	}
}

func TestRun_CollectsAllViolations(t *testing.T) {
	// "a" is both too short for a password and missing the three
	// character classes; every broken rule must be reported.
	violations := Run("a", PasswordRules)
	assert.Len(t, violations, 3)

	joined := JoinViolations(violations)
	assert.Contains(t, joined, "at least 8 characters")
	assert.Contains(t, joined, "uppercase")
	assert.Contains(t, joined, "digit")
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "a@b.com", NormalizeEmail("  A@B.COM  "))
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "John Doe", NormalizeName("  John Doe "))
}

func TestParseID(t *testing.T) {
	_, err := ParseID("not-a-uuid")
	assert.Error(t, err)

	_, err = ParseID("2b1f8c1e-9a57-4f35-8d17-9f6f6f0a2f11")
	assert.NoError(t, err)
}
