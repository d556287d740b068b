package models

// User roles. The set is closed: role checks compare against these values
// only, never against free-form strings from the request.
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// AvailableUserRoles is the allow-list used by the role gate.
var AvailableUserRoles = []string{RoleAdmin, RoleUser}

// Login providers. Password login is rejected for accounts created through
// a social provider.
const (
	LoginTypeEmailPassword = "EMAIL_PASSWORD"
	LoginTypeGoogle        = "GOOGLE"
	LoginTypeGithub        = "GITHUB"
)

// Profile availability states.
const (
	AvailabilityAvailable = "AVAILABLE"
	AvailabilityBusy      = "BUSY"
	AvailabilityMaybe     = "MAYBE"
)

var AvailableAvailabilities = []string{AvailabilityAvailable, AvailabilityBusy, AvailabilityMaybe}

// Team join request states.
const (
	JoinRequestPending  = "PENDING"
	JoinRequestAccepted = "ACCEPTED"
	JoinRequestRejected = "REJECTED"
)
