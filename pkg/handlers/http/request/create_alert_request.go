package request

import (
	"fmt"
	"strings"
)

type CreateAlertRequest struct {
	AlertType   string `json:"alert_type"`
	Destination string `json:"destination"`
	Threshold   int    `json:"threshold"`
}

func (r *CreateAlertRequest) Validate() error {
	if strings.TrimSpace(r.AlertType) == "" {
		return fmt.Errorf("alert_type is required")
	}
	return nil
}
