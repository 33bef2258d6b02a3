package http

const (
	ErrInvalidJsonPayload = "invalid JSON payload"
	ErrInternal           = "internal server error"
	ErrUnauthenticated    = "authentication required"
)
