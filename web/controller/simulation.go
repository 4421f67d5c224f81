package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/simtrack/simtrack/logger"
	"github.com/simtrack/simtrack/web/service"

	"github.com/gin-gonic/gin"
)

// CreateSimulationForm represents the create request structure.
type CreateSimulationForm struct {
	Name string `json:"name" form:"name"`
	Type string `json:"type" form:"type"`
}

// SimulationController handles the simulation listing, creation and deletion
// routes. All of them require a session.
type SimulationController struct {
	BaseController

	simulationService service.SimulationService
}

// NewSimulationController creates a new SimulationController and initializes its routes.
func NewSimulationController(g *gin.RouterGroup) *SimulationController {
	a := &SimulationController{}
	a.initRouter(g)
	return a
}

func (a *SimulationController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/simulations")
	g.Use(a.checkLogin)

	g.GET("", a.list)
	g.POST("", a.create)
	g.DELETE("/:id", a.delete)
}

// list returns the simulations the user is a member of, newest first.
func (a *SimulationController) list(c *gin.Context) {
	user := loginUser(c)

	simulations, err := a.simulationService.List(user.Id)
	if err != nil {
		logger.Warning("list simulations err:", err)
		jsonError(c, http.StatusInternalServerError, "Failed to list simulations")
		return
	}
	c.JSON(http.StatusOK, gin.H{"simulations": simulations})
}

// create adds a simulation and grants the creator an admin membership on it.
func (a *SimulationController) create(c *gin.Context) {
	user := loginUser(c)

	var form CreateSimulationForm
	if err := c.ShouldBindJSON(&form); err != nil {
		jsonError(c, http.StatusBadRequest, "Simulation name is required")
		return
	}

	simulation, err := a.simulationService.Create(user.Id, form.Name, form.Type)
	if err != nil {
		if errors.Is(err, service.ErrNameRequired) {
			jsonError(c, http.StatusBadRequest, "Simulation name is required")
			return
		}
		logger.Warning("create simulation err:", err)
		jsonError(c, http.StatusInternalServerError, "Failed to create simulation")
		return
	}

	logger.Infof("user %d created simulation %d (%s)", user.Id, simulation.Id, simulation.Name)
	jsonOK(c, gin.H{"simulation": simulation})
}

// delete removes a simulation. A caller with no membership row gets the same
// response as for a nonexistent id.
func (a *SimulationController) delete(c *gin.Context) {
	user := loginUser(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		jsonError(c, http.StatusNotFound, "Not found")
		return
	}

	if err := a.simulationService.Delete(user.Id, id); err != nil {
		switch {
		case errors.Is(err, service.ErrSimulationNotFound):
			jsonError(c, http.StatusNotFound, "Not found")
		case errors.Is(err, service.ErrSimulationForbidden):
			jsonError(c, http.StatusForbidden, "Forbidden")
		default:
			logger.Warning("delete simulation err:", err)
			jsonError(c, http.StatusInternalServerError, "Failed to delete simulation")
		}
		return
	}

	logger.Infof("user %d deleted simulation %d", user.Id, id)
	jsonOK(c, nil)
}
