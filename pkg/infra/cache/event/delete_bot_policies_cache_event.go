package event

// DeleteBotPoliciesCacheEvent drops cached policies for UserID, or for every
// tenant when UserID is empty (a global policy changed).
type DeleteBotPoliciesCacheEvent struct {
	UserID string `json:"user_id,omitempty"`
}

func (e DeleteBotPoliciesCacheEvent) Type() string {
	return DeleteBotPoliciesCacheEventType
}
