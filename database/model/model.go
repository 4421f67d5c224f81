package model

import "strings"

// Global and membership role values. Any value other than RoleAdmin carries no
// elevated privilege.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// IsAdmin reports whether role grants admin privilege. Comparison is
// case-insensitive.
func IsAdmin(role string) bool {
	return strings.EqualFold(role, RoleAdmin)
}

type User struct {
	Id           int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Email        string `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string `json:"-" gorm:"column:password_hash"`
	Role         string `json:"role" gorm:"not null"`
	Name         string `json:"name"`
}

type Simulation struct {
	Id           int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Name         string `json:"name" gorm:"not null"`
	Type         string `json:"type"`
	Status       string `json:"status"`
	Progress     int    `json:"progress" gorm:"default:0"`
	Participants int    `json:"participants" gorm:"default:0"`
	StartedAt    string `json:"startedAt" gorm:"column:started_at"`
	EstimatedEnd string `json:"estimatedEnd" gorm:"column:estimated_end"`
}

// Membership links a user to a simulation with a per-simulation role.
// The composite primary key guarantees at most one row per (user, simulation).
type Membership struct {
	UserId       int    `json:"userId" gorm:"column:user_id;primaryKey;autoIncrement:false"`
	SimulationId int    `json:"simulationId" gorm:"column:simulation_id;primaryKey;autoIncrement:false"`
	Role         string `json:"role" gorm:"not null"`
}

// TableName keeps the historical join-table name.
func (Membership) TableName() string {
	return "user_simulations"
}
