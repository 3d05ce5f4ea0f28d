// Package user defines the application user entity and roles.
package user

import "time"

// Role determines what a user sees and receives. Managers are the
// escalation targets for overdue follow-ups.
type Role string

const (
	RoleManager Role = "manager"
	RoleSales   Role = "sales"
	RoleDriver  Role = "driver"
)

// User is an application user.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
