package service

import (
	"github.com/simtrack/simtrack/database"
	"github.com/simtrack/simtrack/database/model"

	"gorm.io/gorm"
)

// Decision is the three-way authorization outcome for operations on a
// simulation. NotFound covers both a nonexistent simulation and a caller with
// no membership, so ordinary non-members can never learn a simulation exists.
type Decision int

const (
	DecisionAllow Decision = iota
	DecisionNotFound
	DecisionForbidden
)

func (d Decision) String() string {
	switch d {
	case DecisionAllow:
		return "allow"
	case DecisionNotFound:
		return "not found"
	case DecisionForbidden:
		return "forbidden"
	default:
		return "unknown"
	}
}

// Decide resolves the two-tier privilege check. A global admin may act on any
// existing simulation, membership or not. Everyone else needs an admin
// membership on the simulation; without any membership the simulation is
// reported as not found.
func Decide(simulationExists bool, memberFound bool, membershipRole string, globalRole string) Decision {
	if model.IsAdmin(globalRole) {
		if !simulationExists {
			return DecisionNotFound
		}
		return DecisionAllow
	}
	if !memberFound {
		return DecisionNotFound
	}
	if model.IsAdmin(membershipRole) {
		return DecisionAllow
	}
	return DecisionForbidden
}

// AccessService answers authorization questions from membership rows. It holds
// no state; queries run on the *gorm.DB handed in, so callers can keep the
// check inside their own transaction.
type AccessService struct{}

// CanView reports whether a membership row exists for the pair.
func (s *AccessService) CanView(db *gorm.DB, userId int, simulationId int) (bool, error) {
	var count int64
	err := db.Model(&model.Membership{}).
		Where("user_id = ? AND simulation_id = ?", userId, simulationId).
		Count(&count).
		Error
	return count > 0, err
}

type accessRow struct {
	UserRole       string
	MembershipRole *string
}

// CanDelete fetches the caller's global role and membership role in one
// joined read, then applies Decide. A simulation-existence lookup is only
// needed for global admins without a membership; memberships of ordinary
// users imply the simulation exists.
func (s *AccessService) CanDelete(db *gorm.DB, userId int, simulationId int) (Decision, error) {
	var row accessRow
	err := db.Table("users u").
		Select("u.role AS user_role, us.role AS membership_role").
		Joins("LEFT JOIN user_simulations us ON us.user_id = u.id AND us.simulation_id = ?", simulationId).
		Where("u.id = ?", userId).
		Take(&row).
		Error
	if database.IsNotFound(err) {
		return DecisionNotFound, nil
	} else if err != nil {
		return DecisionNotFound, err
	}

	memberFound := row.MembershipRole != nil
	membershipRole := ""
	if memberFound {
		membershipRole = *row.MembershipRole
	}

	simulationExists := memberFound
	if !simulationExists && model.IsAdmin(row.UserRole) {
		var count int64
		if err := db.Model(&model.Simulation{}).Where("id = ?", simulationId).Count(&count).Error; err != nil {
			return DecisionNotFound, err
		}
		simulationExists = count > 0
	}

	return Decide(simulationExists, memberFound, membershipRole, row.UserRole), nil
}
