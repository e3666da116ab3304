package constants

// Session / context keys
const (
	ContextKeyUserID  = "user_id"
	SessionCookieName = "org_session"
)

// Authentication
const (
	MinPasswordLength = 8
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)
