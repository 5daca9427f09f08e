package validation_test

import (
	"testing"

	"ratehub/internal/validation"

	"github.com/stretchr/testify/assert"
)

func TestCheckPassword(t *testing.T) {
	rules := validation.DefaultRules()

	// Valid: length in bounds, uppercase, special character.
	assert.NoError(t, rules.CheckPassword("Secret@12"))

	// Too short.
	err := rules.CheckPassword("S@1")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "at least 8")

	// Too long.
	err = rules.CheckPassword("Secret@1234567890abc")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "at most 16")

	// Missing uppercase.
	err = rules.CheckPassword("secret@123")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "uppercase")

	// Missing special character.
	err = rules.CheckPassword("Secret1234")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "special character")
}

func TestCheckEmail(t *testing.T) {
	rules := validation.DefaultRules()

	assert.NoError(t, rules.CheckEmail("alice@example.com"))
	assert.Error(t, rules.CheckEmail("not-an-email"))
	assert.Error(t, rules.CheckEmail("missing@domain"))
	assert.Error(t, rules.CheckEmail("spaces in@example.com"))
}

func TestCheckName(t *testing.T) {
	rules := validation.DefaultRules()

	assert.NoError(t, rules.CheckName("Alice Wonderland"))
	assert.Error(t, rules.CheckName(""))
	assert.Error(t, rules.CheckName("   "))

	long := make([]byte, 61)
	for i := range long {
		long[i] = 'a'
	}
	assert.Error(t, rules.CheckName(string(long)))
}

func TestCheckAddress(t *testing.T) {
	rules := validation.DefaultRules()

	assert.NoError(t, rules.CheckAddress(""))
	assert.NoError(t, rules.CheckAddress("12 Main Street"))

	long := make([]byte, 401)
	for i := range long {
		long[i] = 'x'
	}
	assert.Error(t, rules.CheckAddress(string(long)))
}

func TestCheckRating(t *testing.T) {
	rules := validation.DefaultRules()

	for v := 1; v <= 5; v++ {
		assert.NoError(t, rules.CheckRating(v))
	}
	assert.Error(t, rules.CheckRating(0))
	assert.Error(t, rules.CheckRating(6))
	assert.Error(t, rules.CheckRating(-1))
}

func TestCheckSignupCollectsAllErrors(t *testing.T) {
	rules := validation.DefaultRules()

	errs := rules.CheckSignup("", "bad-email", "weak", "ok address")
	assert.Len(t, errs, 3)
	assert.Error(t, errs.OrNil())

	errs = rules.CheckSignup("Alice", "alice@example.com", "Secret@12", "")
	assert.Empty(t, errs)
	assert.NoError(t, errs.OrNil())
}

func TestRulesOverride(t *testing.T) {
	// Injected rules take effect, enabling test-time overrides.
	rules := validation.Rules{
		PasswordMinLength: 2,
		PasswordMaxLength: 64,
		NameMaxLength:     5,
		AddressMaxLength:  10,
		RatingMin:         1,
		RatingMax:         10,
	}

	assert.NoError(t, rules.CheckRating(10))
	assert.Error(t, rules.CheckName("toolongname"))
	assert.NoError(t, rules.CheckPassword("A@"))
}
