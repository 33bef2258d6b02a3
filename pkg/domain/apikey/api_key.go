package apikey

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	KeyPrefix  = "abk_"
	keyByteLen = 32
	maxNameLen = 100
)

var (
	ErrInvalidName     = errors.New("api key name cannot be empty")
	ErrNameTooLong     = errors.New("api key name is too long")
	ErrExpiresAtInPast = errors.New("api key expires_at cannot be in the past")
	ErrInvalidKey      = errors.New("invalid API key")
)

// APIKey authenticates traffic ingestion for the tenant that owns it.
type APIKey struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID  `json:"user_id" gorm:"type:uuid;index"`
	Key       string     `json:"key" gorm:"uniqueIndex"`
	Name      string     `json:"name"`
	Active    bool       `json:"is_active" gorm:"column:is_active"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func New(userID uuid.UUID, name string, expiresAt *time.Time) (*APIKey, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}
	if len(name) > maxNameLen {
		return nil, ErrNameTooLong
	}
	if expiresAt != nil && expiresAt.Before(time.Now()) {
		return nil, ErrExpiresAtInPast
	}
	id, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}
	key, err := GenerateKey()
	if err != nil {
		return nil, err
	}
	return &APIKey{
		ID:        id,
		UserID:    userID,
		Key:       key,
		Name:      name,
		Active:    true,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// GenerateKey returns "abk_" followed by 32 random bytes, base64url encoded.
func GenerateKey() (string, error) {
	b := make([]byte, keyByteLen)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return KeyPrefix + base64.RawURLEncoding.EncodeToString(b), nil
}

func (a APIKey) IsValid() bool {
	if !a.Active {
		return false
	}
	if a.ExpiresAt != nil && time.Now().After(*a.ExpiresAt) {
		return false
	}
	return true
}

func (APIKey) TableName() string {
	return "public.api_keys"
}
