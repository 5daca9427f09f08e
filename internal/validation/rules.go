package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	emailRegex       = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	upperRegex       = regexp.MustCompile(`[A-Z]`)
	specialCharRegex = regexp.MustCompile(`[!@#$%^&*()_+\-=\[\]{};':"\\|,.<>\/?]`)
)

// Rules is the immutable set of format constraints applied before any
// persistence operation. It is injected into the services so tests can
// override individual bounds.
type Rules struct {
	PasswordMinLength int
	PasswordMaxLength int
	NameMaxLength     int
	AddressMaxLength  int
	RatingMin         int
	RatingMax         int
}

// DefaultRules returns the production constraints.
func DefaultRules() Rules {
	return Rules{
		PasswordMinLength: 8,
		PasswordMaxLength: 16,
		NameMaxLength:     60,
		AddressMaxLength:  400,
		RatingMin:         1,
		RatingMax:         5,
	}
}

// CheckName requires a non-empty name within the length cap.
func (r Rules) CheckName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("name is required")
	}
	if len(name) > r.NameMaxLength {
		return fmt.Errorf("name must be at most %d characters", r.NameMaxLength)
	}
	return nil
}

// CheckEmail validates the email shape.
func (r Rules) CheckEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}
	return nil
}

// CheckPassword enforces length bounds plus at least one uppercase letter
// and one special character.
func (r Rules) CheckPassword(password string) error {
	if len(password) < r.PasswordMinLength {
		return fmt.Errorf("password must be at least %d characters", r.PasswordMinLength)
	}
	if len(password) > r.PasswordMaxLength {
		return fmt.Errorf("password must be at most %d characters", r.PasswordMaxLength)
	}
	if !upperRegex.MatchString(password) {
		return fmt.Errorf("password must contain at least one uppercase letter")
	}
	if !specialCharRegex.MatchString(password) {
		return fmt.Errorf("password must contain at least one special character")
	}
	return nil
}

// CheckAddress caps the address length. Empty addresses are allowed here;
// callers that require one check for presence themselves.
func (r Rules) CheckAddress(address string) error {
	if len(address) > r.AddressMaxLength {
		return fmt.Errorf("address must be at most %d characters", r.AddressMaxLength)
	}
	return nil
}

// CheckRating bounds the rating value.
func (r Rules) CheckRating(value int) error {
	if value < r.RatingMin || value > r.RatingMax {
		return fmt.Errorf("rating must be between %d and %d", r.RatingMin, r.RatingMax)
	}
	return nil
}

// CheckSignup collects every field error for a signup or user-creation
// payload. Address is optional.
func (r Rules) CheckSignup(name, email, password, address string) Errors {
	var errs Errors
	if err := r.CheckName(name); err != nil {
		errs = append(errs, err.Error())
	}
	if err := r.CheckEmail(email); err != nil {
		errs = append(errs, err.Error())
	}
	if err := r.CheckPassword(password); err != nil {
		errs = append(errs, err.Error())
	}
	if address != "" {
		if err := r.CheckAddress(address); err != nil {
			errs = append(errs, err.Error())
		}
	}
	return errs
}

// CheckStore collects every field error for a store payload. Stores must
// have an address.
func (r Rules) CheckStore(name, email, address string) Errors {
	var errs Errors
	if err := r.CheckName(name); err != nil {
		errs = append(errs, err.Error())
	}
	if err := r.CheckEmail(email); err != nil {
		errs = append(errs, err.Error())
	}
	if address == "" {
		errs = append(errs, "address is required")
	} else if err := r.CheckAddress(address); err != nil {
		errs = append(errs, err.Error())
	}
	return errs
}

// Errors is a list of field-level validation messages. A nil or empty list
// means the payload passed.
type Errors []string

func (e Errors) Error() string {
	return strings.Join(e, "; ")
}

// OrNil returns the list as an error, or nil when empty, so services can
// do `return rules.CheckSignup(...).OrNil()` style checks.
func (e Errors) OrNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}
