package service

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/shoplist/shopping-api/internal/core/ports"
)

// PlainPasswords stores and compares passwords verbatim.
type PlainPasswords struct{}

func (PlainPasswords) Prepare(password string) (string, error) { return password, nil }
func (PlainPasswords) Matches(stored, supplied string) bool    { return stored == supplied }
func (PlainPasswords) Exact() bool                             { return true }

// BcryptPasswords stores bcrypt hashes.
type BcryptPasswords struct {
	Cost int
}

func (b BcryptPasswords) Prepare(password string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func (BcryptPasswords) Matches(stored, supplied string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(supplied)) == nil
}

func (BcryptPasswords) Exact() bool { return false }

// NewPasswordMatcher maps a configured scheme name to a matcher.
func NewPasswordMatcher(scheme string) (ports.PasswordMatcher, error) {
	switch scheme {
	case "", "plain":
		return PlainPasswords{}, nil
	case "bcrypt":
		return BcryptPasswords{}, nil
	default:
		return nil, fmt.Errorf("unknown password scheme %q", scheme)
	}
}
