package controller

import (
	"net/http"
	"strings"

	"github.com/simtrack/simtrack/logger"
	"github.com/simtrack/simtrack/web/entity"
	"github.com/simtrack/simtrack/web/service"
	"github.com/simtrack/simtrack/web/session"

	"github.com/gin-gonic/gin"
)

// LoginForm represents the login request structure.
type LoginForm struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// AuthController handles login, logout and the current-user endpoint.
type AuthController struct {
	BaseController

	userService service.UserService
}

// NewAuthController creates a new AuthController and initializes its routes.
func NewAuthController(g *gin.RouterGroup) *AuthController {
	a := &AuthController{}
	a.initRouter(g)
	return a
}

func (a *AuthController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/auth")

	g.POST("/login", a.login)
	g.POST("/logout", a.logout)
	g.GET("/me", a.checkLogin, a.me)
}

// login authenticates the credentials and binds the user id to the session.
// Unknown email and wrong password produce the same response.
func (a *AuthController) login(c *gin.Context) {
	var form LoginForm
	if err := c.ShouldBindJSON(&form); err != nil {
		jsonError(c, http.StatusBadRequest, "Email and password required")
		return
	}
	if strings.TrimSpace(form.Email) == "" || form.Password == "" {
		jsonError(c, http.StatusBadRequest, "Email and password required")
		return
	}

	user := a.userService.CheckUser(form.Email, form.Password)
	if user == nil {
		logger.Warningf("failed login for %q, IP: %q", a.userService.NormalizeEmail(form.Email), getRemoteIp(c))
		jsonError(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	if err := session.SetLoginUser(c, user.Id); err != nil {
		logger.Warning("unable to save session:", err)
		jsonError(c, http.StatusInternalServerError, "Login failed")
		return
	}

	logger.Infof("%s logged in successfully, IP: %s", user.Email, getRemoteIp(c))
	jsonOK(c, gin.H{"user": entity.NewUserView(user)})
}

// logout clears the session. Logging out twice is not an error.
func (a *AuthController) logout(c *gin.Context) {
	if uid, ok := session.GetLoginUserId(c); ok {
		logger.Infof("user %d logged out", uid)
	}
	if err := session.ClearSession(c); err != nil {
		logger.Warning("unable to clear session:", err)
	}
	jsonOK(c, nil)
}

// me returns the public view of the authenticated user.
func (a *AuthController) me(c *gin.Context) {
	user := loginUser(c)
	if user == nil {
		jsonError(c, http.StatusUnauthorized, "Not authenticated")
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": entity.NewUserView(user)})
}
