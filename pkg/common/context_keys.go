package common

type contextKey string

const (
	UserIDContextKey      contextKey = "user_id"
	UserEmailContextKey   contextKey = "user_email"
	IsAdminContextKey     contextKey = "is_admin"
	WsSemaphoreContextKey contextKey = "ws_semaphore"
)
