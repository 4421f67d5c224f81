package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/simtrack/simtrack/database"
	"github.com/simtrack/simtrack/database/model"
	"github.com/simtrack/simtrack/web/entity"
	"github.com/simtrack/simtrack/web/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type simulationListBody struct {
	Simulations []entity.SimulationView `json:"simulations"`
}

func listSimulations(t *testing.T, engine *gin.Engine, cookies []*http.Cookie) []entity.SimulationView {
	t.Helper()
	w := doRequest(t, engine, http.MethodGet, "/api/simulations", "", cookies)
	require.Equal(t, http.StatusOK, w.Code)
	var body simulationListBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Simulations
}

func TestSimulationsRequireSession(t *testing.T) {
	setupTestDB(t)
	engine := newTestRouter()

	for _, req := range []struct{ method, path string }{
		{http.MethodGet, "/api/simulations"},
		{http.MethodPost, "/api/simulations"},
		{http.MethodDelete, "/api/simulations/1"},
	} {
		w := doRequest(t, engine, req.method, req.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", req.method, req.path)
	}
}

func TestCreateAndListSimulations(t *testing.T) {
	setupTestDB(t)
	engine := newTestRouter()
	createTestUser(t, "alice@example.com", "s3cret!", model.RoleMember)
	cookies := login(t, engine, "alice@example.com", "s3cret!")

	w := doRequest(t, engine, http.MethodPost, "/api/simulations",
		`{"name":"Q-Phish"}`, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Ok         bool                  `json:"ok"`
		Simulation entity.SimulationView `json:"simulation"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Ok)
	assert.Equal(t, "Q-Phish", body.Simulation.Name)
	assert.Equal(t, entity.DefaultStatus, body.Simulation.Status)
	assert.Equal(t, 0, body.Simulation.Progress)
	assert.Equal(t, 0, body.Simulation.Participants)

	sims := listSimulations(t, engine, cookies)
	require.Len(t, sims, 1)
	assert.Equal(t, body.Simulation.Id, sims[0].Id)
}

func TestCreateSimulationEmptyName(t *testing.T) {
	setupTestDB(t)
	engine := newTestRouter()
	createTestUser(t, "alice@example.com", "s3cret!", model.RoleMember)
	cookies := login(t, engine, "alice@example.com", "s3cret!")

	w := doRequest(t, engine, http.MethodPost, "/api/simulations",
		`{"name":"   "}`, cookies)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	assert.Empty(t, listSimulations(t, engine, cookies))
}

func TestDeleteHidesInaccessibleSimulations(t *testing.T) {
	setupTestDB(t)
	engine := newTestRouter()
	createTestUser(t, "owner@example.com", "pw", model.RoleMember)
	createTestUser(t, "stranger@example.com", "pw", model.RoleMember)

	ownerCookies := login(t, engine, "owner@example.com", "pw")
	w := doRequest(t, engine, http.MethodPost, "/api/simulations",
		`{"name":"Q-Phish"}`, ownerCookies)
	require.Equal(t, http.StatusOK, w.Code)
	var created struct {
		Simulation entity.SimulationView `json:"simulation"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	strangerCookies := login(t, engine, "stranger@example.com", "pw")

	// a simulation the caller is not a member of and a nonexistent one are
	// indistinguishable
	existing := doRequest(t, engine, http.MethodDelete,
		fmt.Sprintf("/api/simulations/%d", created.Simulation.Id), "", strangerCookies)
	missing := doRequest(t, engine, http.MethodDelete, "/api/simulations/9999", "", strangerCookies)

	assert.Equal(t, http.StatusNotFound, existing.Code)
	assert.Equal(t, existing.Code, missing.Code)
	assert.Equal(t, existing.Body.String(), missing.Body.String())
}

func TestDeleteForbiddenForPlainMember(t *testing.T) {
	setupTestDB(t)
	engine := newTestRouter()
	createTestUser(t, "owner@example.com", "pw", model.RoleMember)
	member := createTestUser(t, "member@example.com", "pw", model.RoleMember)

	ownerCookies := login(t, engine, "owner@example.com", "pw")
	w := doRequest(t, engine, http.MethodPost, "/api/simulations",
		`{"name":"Q-Phish"}`, ownerCookies)
	require.Equal(t, http.StatusOK, w.Code)
	var created struct {
		Simulation entity.SimulationView `json:"simulation"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	simulationService := service.SimulationService{}
	require.NoError(t, simulationService.GrantMembership(
		database.GetDB(), member.Id, created.Simulation.Id, model.RoleMember))

	memberCookies := login(t, engine, "member@example.com", "pw")
	w = doRequest(t, engine, http.MethodDelete,
		fmt.Sprintf("/api/simulations/%d", created.Simulation.Id), "", memberCookies)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// still visible to the owner
	require.Len(t, listSimulations(t, engine, ownerCookies), 1)
}

func TestDeleteByCreator(t *testing.T) {
	setupTestDB(t)
	engine := newTestRouter()
	createTestUser(t, "owner@example.com", "pw", model.RoleMember)
	cookies := login(t, engine, "owner@example.com", "pw")

	w := doRequest(t, engine, http.MethodPost, "/api/simulations",
		`{"name":"Q-Phish"}`, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	var created struct {
		Simulation entity.SimulationView `json:"simulation"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doRequest(t, engine, http.MethodDelete,
		fmt.Sprintf("/api/simulations/%d", created.Simulation.Id), "", cookies)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ok":true`)

	assert.Empty(t, listSimulations(t, engine, cookies))
}

func TestDeleteByGlobalAdminWithoutMembership(t *testing.T) {
	setupTestDB(t)
	engine := newTestRouter()
	createTestUser(t, "owner@example.com", "pw", model.RoleMember)
	createTestUser(t, "root@example.com", "pw", model.RoleAdmin)

	ownerCookies := login(t, engine, "owner@example.com", "pw")
	w := doRequest(t, engine, http.MethodPost, "/api/simulations",
		`{"name":"Q-Phish"}`, ownerCookies)
	require.Equal(t, http.StatusOK, w.Code)
	var created struct {
		Simulation entity.SimulationView `json:"simulation"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	adminCookies := login(t, engine, "root@example.com", "pw")
	w = doRequest(t, engine, http.MethodDelete,
		fmt.Sprintf("/api/simulations/%d", created.Simulation.Id), "", adminCookies)
	require.Equal(t, http.StatusOK, w.Code)

	// no membership rows are left behind
	var count int64
	require.NoError(t, database.GetDB().Model(&model.Membership{}).
		Where("simulation_id = ?", created.Simulation.Id).
		Count(&count).Error)
	assert.EqualValues(t, 0, count)
}
