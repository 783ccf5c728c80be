package domain

import "time"

type Role string

const (
	RoleCustomer Role = "customer"
	RoleSeller   Role = "seller"
	RoleAdmin    Role = "admin"
)

type UserStatus string

const (
	StatusActive    UserStatus = "active"
	StatusSuspended UserStatus = "suspended"
)

// NotificationPrefs holds the per-channel opt-in flags.
type NotificationPrefs struct {
	Email bool `json:"email"`
	Push  bool `json:"push"`
	SMS   bool `json:"sms"`
}

type Preferences struct {
	Notifications NotificationPrefs `json:"notifications"`
	Marketing     bool              `json:"marketing"`
}

// User is the identity record owned by the auth store. It is only
// mutated through explicit update operations and cleared on sign-out.
type User struct {
	ID                string      `json:"id"`
	Email             string      `json:"email"`
	FirstName         string      `json:"first_name"`
	LastName          string      `json:"last_name"`
	Role              Role        `json:"role"`
	Status            UserStatus  `json:"status"`
	DefaultCurrency   string      `json:"default_currency"`
	PreferredLanguage string      `json:"preferred_language"`
	Preferences       Preferences `json:"preferences"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
}
