package auth

import (
	"regexp"

	errors "github.com/campushub/records-portal/internal"
)

var (
	upperPattern   = regexp.MustCompile(`[A-Z]`)
	lowerPattern   = regexp.MustCompile(`[a-z]`)
	digitPattern   = regexp.MustCompile(`[0-9]`)
	specialPattern = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)
)

// ValidatePasswordStrength enforces the portal's minimum password policy:
// at least 8 characters with upper, lower, digit and special characters.
func ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return errors.NewValidationError("password must be at least 8 characters", errors.ErrCodeWeakPassword)
	}
	if !upperPattern.MatchString(password) {
		return errors.NewValidationError("password must contain an uppercase letter", errors.ErrCodeWeakPassword)
	}
	if !lowerPattern.MatchString(password) {
		return errors.NewValidationError("password must contain a lowercase letter", errors.ErrCodeWeakPassword)
	}
	if !digitPattern.MatchString(password) {
		return errors.NewValidationError("password must contain a digit", errors.ErrCodeWeakPassword)
	}
	if !specialPattern.MatchString(password) {
		return errors.NewValidationError("password must contain a special character", errors.ErrCodeWeakPassword)
	}
	return nil
}
