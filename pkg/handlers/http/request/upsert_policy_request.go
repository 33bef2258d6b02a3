package request

import (
	"fmt"
	"strings"
)

type UpsertPolicyRequest struct {
	BotName string `json:"bot_name"`
	Action  string `json:"action"`
}

func (r *UpsertPolicyRequest) Validate() error {
	if strings.TrimSpace(r.BotName) == "" {
		return fmt.Errorf("bot_name is required")
	}
	if strings.TrimSpace(r.Action) == "" {
		return fmt.Errorf("action is required")
	}
	return nil
}
