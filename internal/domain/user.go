package domain

import "time"

// UserRole enumerates the access tiers of an account.
type UserRole string

const (
	RoleEndUser UserRole = "end_user"
	RoleAgent   UserRole = "agent"
	RoleAdmin   UserRole = "admin"
)

// Valid reports whether the role is a member of the enum.
func (r UserRole) Valid() bool {
	return r == RoleEndUser || r == RoleAgent || r == RoleAdmin
}

// Permission names a grantable capability.
type Permission string

const (
	PermManageUsers      Permission = "manage_users"
	PermManageCategories Permission = "manage_categories"
	PermManageTickets    Permission = "manage_tickets"
	PermViewAllTickets   Permission = "view_all_tickets"
	PermAssignTickets    Permission = "assign_tickets"
)

// rolePermissions maps each role to its implied permission set. Explicit
// per-account permissions extend these; admins pass every check.
var rolePermissions = map[UserRole][]Permission{
	RoleEndUser: {},
	RoleAgent:   {PermManageTickets, PermViewAllTickets, PermAssignTickets},
	RoleAdmin: {
		PermManageUsers,
		PermManageCategories,
		PermManageTickets,
		PermViewAllTickets,
		PermAssignTickets,
	},
}

// NotificationSettings controls which notifications a user receives.
type NotificationSettings struct {
	EmailNotifications bool `json:"emailNotifications"`
	PushNotifications  bool `json:"pushNotifications"`
	TicketUpdates      bool `json:"ticketUpdates"`
	AgentReplies       bool `json:"agentReplies"`
	StatusChanges      bool `json:"statusChanges"`
}

// UserSettings holds per-account preferences.
type UserSettings struct {
	Notifications NotificationSettings `json:"notifications"`
	Language      string               `json:"language"`
	Theme         string               `json:"theme"`
}

// DefaultSettings returns the settings applied to new accounts.
func DefaultSettings() UserSettings {
	return UserSettings{
		Notifications: NotificationSettings{
			EmailNotifications: true,
			PushNotifications:  true,
			TicketUpdates:      true,
			AgentReplies:       true,
			StatusChanges:      true,
		},
		Language: "en",
		Theme:    "light",
	}
}

// User is the account record for end-users, agents and admins.
// PasswordHash must never be serialized outbound.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Role         UserRole
	DisplayName  string
	Phone        string
	Company      string
	Timezone     string
	Avatar       string
	Permissions  []Permission
	IsActive     bool
	Settings     UserSettings
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasPermission resolves the role/permission duality: the role implies a base
// set, explicit grants extend it, and admins are never denied.
func (u *User) HasPermission(perm Permission) bool {
	if u.Role == RoleAdmin {
		return true
	}
	for _, implied := range rolePermissions[u.Role] {
		if implied == perm {
			return true
		}
	}
	for _, granted := range u.Permissions {
		if granted == perm {
			return true
		}
	}
	return false
}
