package auditlogs

import "time"

type Event struct {
	Event   EventInfo `json:"event"`
	Target  Target    `json:"target"`
	Actor   Actor     `json:"actor"`
	Context Context   `json:"context"`
	Time    time.Time `json:"time"`
}

type EventInfo struct {
	Type         string `json:"type"`
	Category     string `json:"category"`
	Description  string `json:"description"`
	Status       string `json:"status"`
	ErrorMessage string `json:"errorMessage,omitempty"`
}

type Target struct {
	Type string `json:"type"`
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

type Actor struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
	Type  string `json:"type"`
}

type Context struct {
	IPAddress string `json:"ipAddress,omitempty"`
	UserAgent string `json:"userAgent,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

const (
	ActorTypeUser   = "user"
	ActorTypeSystem = "system"
)
