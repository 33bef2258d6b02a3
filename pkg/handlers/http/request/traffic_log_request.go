package request

import (
	"fmt"
	"strings"
)

// TrafficLogRequest is posted by a tenant's site for every request it serves.
// Headers are optional. They always feed the session fingerprint, and they
// supply the client IP only when ip_address is empty.
type TrafficLogRequest struct {
	Domain        string            `json:"domain"`
	APIKey        string            `json:"api_key"`
	IPAddress     string            `json:"ip_address"`
	UserAgent     string            `json:"user_agent"`
	RequestPath   string            `json:"request_path"`
	RequestMethod string            `json:"request_method"`
	Headers       map[string]string `json:"headers,omitempty"`
}

func (r *TrafficLogRequest) Validate() error {
	if strings.TrimSpace(r.APIKey) == "" {
		return fmt.Errorf("api_key is required")
	}
	if strings.TrimSpace(r.Domain) == "" {
		return fmt.Errorf("domain is required")
	}
	return nil
}
