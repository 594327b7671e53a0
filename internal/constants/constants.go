package constants

// Session and gin context keys
const (
	SessionCookieName = "marketplace_session"
	ContextKeyUserID  = "user_id"
	ContextKeyTask    = "task"
)

// Task validation limits
const (
	MinTitleLength        = 5
	MinDescriptionLength  = 10
	MinRequiredAssociates = 1
	MaxSuggestedTags      = 5
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)
