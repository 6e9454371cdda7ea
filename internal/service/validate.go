package service

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"github.com/ratehub/ratehub-server/internal/model"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

const passwordSpecials = "!@#$%^&*"

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return model.NewValidationError("name", "name is required")
	}
	return nil
}

func validateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return model.NewValidationError("email", "invalid email format")
	}
	return nil
}

// validatePassword enforces the signup password policy: 8-16
// characters with at least one uppercase letter and one special
// character.
func validatePassword(password string) error {
	if len(password) < 8 || len(password) > 16 {
		return model.NewValidationError("password", "password must be 8-16 characters long")
	}
	hasUpper := false
	for _, r := range password {
		if unicode.IsUpper(r) {
			hasUpper = true
			break
		}
	}
	if !hasUpper {
		return model.NewValidationError("password", "password must include an uppercase letter")
	}
	if !strings.ContainsAny(password, passwordSpecials) {
		return model.NewValidationError("password", "password must include a special character")
	}
	return nil
}

func validateAddress(address string) error {
	if len(address) > 400 {
		return model.NewValidationError("address", "address must be less than 400 characters")
	}
	return nil
}

func validateRole(role model.Role) error {
	if !role.Valid() {
		return model.NewValidationError("role", "invalid role")
	}
	return nil
}

func hashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
