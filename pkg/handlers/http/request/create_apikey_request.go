package request

import (
	"fmt"
	"strings"
	"time"
)

type CreateAPIKeyRequest struct {
	Name      string     `json:"name"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

func (r *CreateAPIKeyRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if r.ExpiresAt != nil && r.ExpiresAt.Before(time.Now()) {
		return fmt.Errorf("expires_at must be greater than current time")
	}
	return nil
}
