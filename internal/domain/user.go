package domain

import (
	"slices"
	"time"
)

type Role string

const (
	RoleSuperAdmin Role = "Super Admin"
	RoleAgent      Role = "Agent"
	RoleEditor     Role = "Editor"
	RoleViewer     Role = "Viewer"
)

type UserStatus string

const (
	UserActive   UserStatus = "Active"
	UserInactive UserStatus = "Inactive"
)

type Permission string

const (
	PermPropertiesRead  Permission = "properties.read"
	PermPropertiesWrite Permission = "properties.write"
	PermAgentsRead      Permission = "agents.read"
	PermAgentsWrite     Permission = "agents.write"
	PermUsersRead       Permission = "users.read"
	PermUsersWrite      Permission = "users.write"
	PermInquiriesRead   Permission = "inquiries.read"
	PermInquiriesWrite  Permission = "inquiries.write"
	PermReportsRead     Permission = "reports.read"
	PermSettingsWrite   Permission = "settings.write"
)

var rolePermissions = map[Role][]Permission{
	RoleSuperAdmin: {
		PermPropertiesRead, PermPropertiesWrite,
		PermAgentsRead, PermAgentsWrite,
		PermUsersRead, PermUsersWrite,
		PermInquiriesRead, PermInquiriesWrite,
		PermReportsRead, PermSettingsWrite,
	},
	RoleAgent: {
		PermPropertiesRead, PermPropertiesWrite,
		PermAgentsRead,
		PermInquiriesRead, PermInquiriesWrite,
	},
	RoleEditor: {
		PermPropertiesRead, PermPropertiesWrite,
		PermAgentsRead,
		PermInquiriesRead,
		PermReportsRead,
	},
	RoleViewer: {
		PermPropertiesRead,
		PermAgentsRead,
		PermInquiriesRead,
		PermReportsRead,
	},
}

// PermissionsFor returns a fresh copy of the canonical permission set of role.
// Unknown roles get no permissions.
func PermissionsFor(role Role) []Permission {
	return slices.Clone(rolePermissions[role])
}

func (r Role) Valid() bool {
	_, ok := rolePermissions[r]
	return ok
}

type User struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Email       string       `json:"email"`
	Phone       string       `json:"phone,omitempty"`
	Role        Role         `json:"role"`
	Status      UserStatus   `json:"status"`
	Permissions []Permission `json:"permissions"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
	LastLogin   *time.Time   `json:"lastLogin,omitempty"` // nil: never logged in
}

func (u *User) HasPermission(p Permission) bool {
	return slices.Contains(u.Permissions, p)
}

type UserInput struct {
	Name   string     `json:"name" validate:"required,max=64"`
	Email  string     `json:"email" validate:"required,email"`
	Phone  string     `json:"phone"`
	Role   Role       `json:"role" validate:"required,oneof='Super Admin' Agent Editor Viewer"`
	Status UserStatus `json:"status" validate:"omitempty,oneof=Active Inactive"`
}

// UserPatch updates a user. Permissions are not part of the patch: they follow Role.
type UserPatch struct {
	Name   *string     `json:"name" validate:"omitempty,min=1,max=64"`
	Email  *string     `json:"email" validate:"omitempty,email"`
	Phone  *string     `json:"phone"`
	Role   *Role       `json:"role" validate:"omitempty,oneof='Super Admin' Agent Editor Viewer"`
	Status *UserStatus `json:"status" validate:"omitempty,oneof=Active Inactive"`
}
