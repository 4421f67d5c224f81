package service

import (
	"errors"
	"strings"
	"time"

	"github.com/simtrack/simtrack/database"
	"github.com/simtrack/simtrack/database/model"
	"github.com/simtrack/simtrack/web/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrNameRequired        = errors.New("simulation name is required")
	ErrSimulationNotFound  = errors.New("simulation not found")
	ErrSimulationForbidden = errors.New("not allowed to delete this simulation")
)

// SimulationService implements the simulation lifecycle. Every mutating or
// listing operation goes through AccessService before touching storage.
type SimulationService struct {
	accessService AccessService
}

// List returns every simulation the user is a member of, newest first.
func (s *SimulationService) List(userId int) ([]entity.SimulationView, error) {
	db := database.GetDB()

	var sims []model.Simulation
	err := db.Model(&model.Simulation{}).
		Joins("JOIN user_simulations us ON us.simulation_id = simulations.id").
		Where("us.user_id = ?", userId).
		Order("simulations.id DESC").
		Find(&sims).
		Error
	if err != nil {
		return nil, err
	}

	views := make([]entity.SimulationView, 0, len(sims))
	for i := range sims {
		views = append(views, entity.NewSimulationView(&sims[i]))
	}
	return views, nil
}

// Create inserts a simulation with its construction-time defaults and grants
// the creator an admin membership, both in one transaction. A simulation never
// exists without at least one admin member.
func (s *SimulationService) Create(userId int, name string, simType string) (view *entity.SimulationView, err error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	simType = strings.TrimSpace(simType)
	if simType == "" {
		simType = entity.DefaultType
	}

	now := time.Now()
	sim := &model.Simulation{
		Name:         name,
		Type:         simType,
		Status:       entity.DefaultStatus,
		Progress:     entity.DefaultProgress,
		Participants: entity.DefaultParticipants,
		StartedAt:    now.Format(entity.StartedAtLayout),
		EstimatedEnd: now.AddDate(0, 0, entity.DefaultRunDays).Format(entity.EstimatedEndLayout),
	}

	db := database.GetDB()
	tx := db.Begin()
	defer func() {
		if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit().Error
		}
	}()

	if err = tx.Create(sim).Error; err != nil {
		return nil, err
	}
	if err = s.GrantMembership(tx, userId, sim.Id, model.RoleAdmin); err != nil {
		return nil, err
	}

	created := &model.Simulation{}
	if err = tx.First(created, sim.Id).Error; err != nil {
		return nil, err
	}
	v := entity.NewSimulationView(created)
	return &v, nil
}

// GrantMembership records a per-simulation role for the user. Granting an
// existing pair again is a no-op, never a duplicate row.
func (s *SimulationService) GrantMembership(db *gorm.DB, userId int, simulationId int, role string) error {
	m := &model.Membership{
		UserId:       userId,
		SimulationId: simulationId,
		Role:         role,
	}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(m).Error
}

// Delete removes the simulation and all its membership rows after the
// authorization check. Check and deletes share one transaction, so a
// concurrent second delete sees no membership row and gets
// ErrSimulationNotFound.
func (s *SimulationService) Delete(userId int, simulationId int) (err error) {
	db := database.GetDB()
	tx := db.Begin()
	defer func() {
		if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit().Error
		}
	}()

	decision, derr := s.accessService.CanDelete(tx, userId, simulationId)
	if derr != nil {
		err = derr
		return err
	}
	switch decision {
	case DecisionNotFound:
		err = ErrSimulationNotFound
		return err
	case DecisionForbidden:
		err = ErrSimulationForbidden
		return err
	}

	if err = tx.Delete(&model.Simulation{}, simulationId).Error; err != nil {
		return err
	}
	if err = tx.Where("simulation_id = ?", simulationId).Delete(&model.Membership{}).Error; err != nil {
		return err
	}
	return nil
}
