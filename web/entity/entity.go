// Package entity defines the API views returned by the web layer and the
// default values applied to simulations at construction time.
package entity

import (
	"github.com/simtrack/simtrack/database/model"
)

// Simulation defaults. Applied once when a simulation is created, never
// scattered across read paths.
const (
	DefaultType         = "phishing"
	DefaultStatus       = "running"
	DefaultProgress     = 0
	DefaultParticipants = 0
	DefaultRunDays      = 7

	// TimePlaceholder substitutes missing timestamps on rows that predate the
	// construction-time defaults.
	TimePlaceholder = "—"

	StartedAtLayout    = "2006-01-02 15:04:05"
	EstimatedEndLayout = "2006-01-02"
)

// UserView is the public representation of a user. It never carries the
// password hash.
type UserView struct {
	Id    int    `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Name  string `json:"name"`
}

func NewUserView(u *model.User) UserView {
	return UserView{
		Id:    u.Id,
		Email: u.Email,
		Role:  u.Role,
		Name:  u.Name,
	}
}

// SimulationView is the API representation of a simulation. Optional fields
// are always populated, so clients never see nulls.
type SimulationView struct {
	Id           int    `json:"id"`
	Name         string `json:"name"`
	Type         string `json:"type"`
	Status       string `json:"status"`
	Progress     int    `json:"progress"`
	Participants int    `json:"participants"`
	StartedAt    string `json:"startedAt"`
	EstimatedEnd string `json:"estimatedEnd"`
}

func NewSimulationView(s *model.Simulation) SimulationView {
	v := SimulationView{
		Id:           s.Id,
		Name:         s.Name,
		Type:         s.Type,
		Status:       s.Status,
		Progress:     s.Progress,
		Participants: s.Participants,
		StartedAt:    s.StartedAt,
		EstimatedEnd: s.EstimatedEnd,
	}
	if v.Status == "" {
		v.Status = DefaultStatus
	}
	if v.StartedAt == "" {
		v.StartedAt = TimePlaceholder
	}
	if v.EstimatedEnd == "" {
		v.EstimatedEnd = TimePlaceholder
	}
	return v
}
