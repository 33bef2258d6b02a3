package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrMismatch = errors.New("password does not match")
	ErrTooShort = errors.New("password is too short")
)

type Hasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) error
	Validate(plain string) error
}

type bcryptHasher struct {
	cost   int
	minLen int
}

func NewHasher(cost, minLen int) Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &bcryptHasher{cost: cost, minLen: minLen}
}

func (h *bcryptHasher) Validate(plain string) error {
	if len(plain) < h.minLen {
		return fmt.Errorf("%w: minimum %d characters", ErrTooShort, h.minLen)
	}
	return nil
}

func (h *bcryptHasher) Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(b), nil
}

func (h *bcryptHasher) Compare(hash, plain string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)); err != nil {
		return ErrMismatch
	}
	return nil
}
