package service

import (
	"testing"

	"github.com/simtrack/simtrack/database"
	"github.com/simtrack/simtrack/database/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecide(t *testing.T) {
	tests := []struct {
		name             string
		simulationExists bool
		memberFound      bool
		membershipRole   string
		globalRole       string
		expected         Decision
	}{
		{
			name:     "no membership, ordinary user",
			expected: DecisionNotFound,
		},
		{
			name:             "membership admin",
			simulationExists: true,
			memberFound:      true,
			membershipRole:   model.RoleAdmin,
			globalRole:       model.RoleMember,
			expected:         DecisionAllow,
		},
		{
			name:             "membership member, ordinary user",
			simulationExists: true,
			memberFound:      true,
			membershipRole:   model.RoleMember,
			globalRole:       model.RoleMember,
			expected:         DecisionForbidden,
		},
		{
			name:             "global admin without membership",
			simulationExists: true,
			globalRole:       model.RoleAdmin,
			expected:         DecisionAllow,
		},
		{
			name:             "global admin overrides low membership role",
			simulationExists: true,
			memberFound:      true,
			membershipRole:   model.RoleMember,
			globalRole:       model.RoleAdmin,
			expected:         DecisionAllow,
		},
		{
			name:       "global admin, simulation gone",
			globalRole: model.RoleAdmin,
			expected:   DecisionNotFound,
		},
		{
			name:             "role comparison is case-insensitive",
			simulationExists: true,
			memberFound:      true,
			membershipRole:   "ADMIN",
			globalRole:       "reader",
			expected:         DecisionAllow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decide(tt.simulationExists, tt.memberFound, tt.membershipRole, tt.globalRole)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestCanDelete(t *testing.T) {
	setupTestDB(t)
	owner := createTestUser(t, "owner@example.com", "pw", model.RoleMember)
	member := createTestUser(t, "member@example.com", "pw", model.RoleMember)
	stranger := createTestUser(t, "stranger@example.com", "pw", model.RoleMember)
	globalAdmin := createTestUser(t, "root@example.com", "pw", model.RoleAdmin)

	simulations := SimulationService{}
	sim, err := simulations.Create(owner.Id, "Q-Phish", "")
	require.NoError(t, err)

	db := database.GetDB()
	require.NoError(t, simulations.GrantMembership(db, member.Id, sim.Id, model.RoleMember))

	access := AccessService{}

	decision, err := access.CanDelete(db, owner.Id, sim.Id)
	require.NoError(t, err)
	assert.Equal(t, DecisionAllow, decision)

	decision, err = access.CanDelete(db, member.Id, sim.Id)
	require.NoError(t, err)
	assert.Equal(t, DecisionForbidden, decision)

	// non-members cannot tell an inaccessible simulation from a missing one
	decision, err = access.CanDelete(db, stranger.Id, sim.Id)
	require.NoError(t, err)
	assert.Equal(t, DecisionNotFound, decision)

	decision, err = access.CanDelete(db, stranger.Id, 9999)
	require.NoError(t, err)
	assert.Equal(t, DecisionNotFound, decision)

	decision, err = access.CanDelete(db, globalAdmin.Id, sim.Id)
	require.NoError(t, err)
	assert.Equal(t, DecisionAllow, decision)

	decision, err = access.CanDelete(db, globalAdmin.Id, 9999)
	require.NoError(t, err)
	assert.Equal(t, DecisionNotFound, decision)
}

func TestCanView(t *testing.T) {
	setupTestDB(t)
	owner := createTestUser(t, "owner@example.com", "pw", model.RoleMember)
	stranger := createTestUser(t, "stranger@example.com", "pw", model.RoleMember)

	simulations := SimulationService{}
	sim, err := simulations.Create(owner.Id, "Q-Phish", "")
	require.NoError(t, err)

	access := AccessService{}
	db := database.GetDB()

	ok, err := access.CanView(db, owner.Id, sim.Id)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = access.CanView(db, stranger.Id, sim.Id)
	require.NoError(t, err)
	assert.False(t, ok)
}
