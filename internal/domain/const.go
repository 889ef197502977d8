package domain

const (
	IdentityCtxKey = "fw-identity"
)

const (
	RequesterRoleHeader  = "fw-requester-role"
	RequesterIdHeader    = "fw-requester-id"
	RequesterEmailHeader = "fw-requester-email"
)

// Realtime channels the signal service publishes to.
const (
	ChannelTracking = "tracking"
	ChannelAlerts   = "alerts"
)
