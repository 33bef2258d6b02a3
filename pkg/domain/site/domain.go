package site

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidName      = errors.New("invalid domain name")
	ErrAlreadyAdded     = errors.New("domain already added")
	ErrNotVerified      = errors.New("domain not found or not verified")
	ErrAlreadyVerified  = errors.New("domain already verified")
	hostnamePattern     = regexp.MustCompile(`^([a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?\.)+[a-z]{2,63}$`)
	verificationByteLen = 16
)

// Domain is a website registered by a tenant. Traffic is only accepted for
// verified domains.
type Domain struct {
	ID                uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	UserID            uuid.UUID  `json:"user_id" gorm:"type:uuid;index"`
	Name              string     `json:"domain" gorm:"column:domain"`
	VerificationToken string     `json:"verification_token"`
	IsVerified        bool       `json:"is_verified"`
	VerifiedAt        *time.Time `json:"verified_at"`
	CreatedAt         time.Time  `json:"created_at"`
}

func New(userID uuid.UUID, name string) (*Domain, error) {
	name = NormalizeName(name)
	if !hostnamePattern.MatchString(name) {
		return nil, ErrInvalidName
	}
	id, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}
	token, err := newVerificationToken()
	if err != nil {
		return nil, err
	}
	return &Domain{
		ID:                id,
		UserID:            userID,
		Name:              name,
		VerificationToken: token,
		CreatedAt:         time.Now().UTC(),
	}, nil
}

// NormalizeName lowercases the host and strips a scheme, path or trailing dot.
func NormalizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.TrimPrefix(name, "https://")
	name = strings.TrimPrefix(name, "http://")
	if i := strings.IndexAny(name, "/?#"); i >= 0 {
		name = name[:i]
	}
	return strings.TrimSuffix(name, ".")
}

func newVerificationToken() (string, error) {
	b := make([]byte, verificationByteLen)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func (Domain) TableName() string {
	return "public.domains"
}

// WithOwner is a domain joined with its owner's email, used by admin listings.
type WithOwner struct {
	Domain
	UserEmail string `json:"user_email"`
}
