package password

import (
	"errors"
	"fmt"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

const (
	Cost      = bcrypt.DefaultCost
	MinLength = 8
	// MaxLength is the bcrypt input limit in bytes.
	MaxLength = 72
)

var (
	ErrInvalidPassword = errors.New("invalid password")
	ErrPolicy          = errors.New("password does not meet the staff account policy")
)

// Check applies the staff account policy: 8 to 72 bytes with at least one letter and one digit.
func Check(password string) error {
	if len(password) < MinLength || len(password) > MaxLength {
		return fmt.Errorf("%w: length must be between %d and %d characters", ErrPolicy, MinLength, MaxLength)
	}

	var letter, digit bool

	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			letter = true
		case unicode.IsDigit(r):
			digit = true
		}
	}

	if !letter || !digit {
		return fmt.Errorf("%w: must contain a letter and a digit", ErrPolicy)
	}

	return nil
}

func Hash(password string) (string, error) {
	if password == "" {
		return "", ErrInvalidPassword
	}

	bytes, err := bcrypt.GenerateFromPassword([]byte(password), Cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(bytes), nil
}

// Verify returns ErrInvalidPassword when password does not match hash.
func Verify(password, hash string) error {
	if password == "" || hash == "" {
		return ErrInvalidPassword
	}

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrInvalidPassword
	}

	if err != nil {
		return fmt.Errorf("failed to verify password: %w", err)
	}

	return nil
}
