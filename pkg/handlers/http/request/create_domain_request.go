package request

import (
	"fmt"
	"strings"
)

type CreateDomainRequest struct {
	Domain string `json:"domain"`
}

func (r *CreateDomainRequest) Validate() error {
	if strings.TrimSpace(r.Domain) == "" {
		return fmt.Errorf("domain is required")
	}
	return nil
}
