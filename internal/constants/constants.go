package constants

// Session / context keys
const (
	SessionCookieName = "tracker_session"
	ContextKeyUserID  = "user_id"
	ContextKeyUser    = "current_user"
)

// Auth
const (
	MinPasswordLength = 8
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 50
	MaxPageSize     = 200
)
