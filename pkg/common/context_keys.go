package common

type contextKey string

const (
	UserIDContextKey    contextKey = "user_id"
	UserRoleContextKey  contextKey = "user_role"
	DeviceContextKey    contextKey = "device"
	SemaphoreContextKey contextKey = "ws_semaphore"
)
