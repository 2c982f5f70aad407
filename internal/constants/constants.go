package constants

// Gin context keys set by the authentication middleware
const (
	ContextKeyUserID   = "user_id"
	ContextKeyUserType = "user_type"
)

// Token claim names. The frontend reads these from the decoded JWT.
const (
	ClaimUserID   = "Id"
	ClaimUserType = "UserType"
)

// Validation limits
const (
	MinPasswordLength = 8
	MaxPasswordLength = 72 // bcrypt input limit

	MinLoggedHours = 0.1
	MaxLoggedHours = 24
)

// EntryDateLayout is the day-only layout accepted for time entry dates.
const EntryDateLayout = "2006-01-02"
