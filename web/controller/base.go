// Package controller provides the HTTP request handlers for the simtrack API:
// session login, the current-user endpoint and simulation CRUD.
package controller

import (
	"net/http"

	"github.com/simtrack/simtrack/database"
	"github.com/simtrack/simtrack/database/model"
	"github.com/simtrack/simtrack/logger"
	"github.com/simtrack/simtrack/web/service"
	"github.com/simtrack/simtrack/web/session"

	"github.com/gin-gonic/gin"
)

const ctxLoginUser = "LOGIN_USER"

// BaseController provides the authentication check shared by all protected
// routes.
type BaseController struct {
	userService service.UserService
}

// checkLogin resolves the session to a live user row. A session bound to a
// deleted user is cleared before the request is rejected.
func (a *BaseController) checkLogin(c *gin.Context) {
	uid, ok := session.GetLoginUserId(c)
	if !ok {
		jsonError(c, http.StatusUnauthorized, "Not authenticated")
		c.Abort()
		return
	}

	user, err := a.userService.GetUserById(uid)
	if err != nil {
		if !database.IsNotFound(err) {
			logger.Warning("resolve session user err:", err)
		}
		if err := session.ClearSession(c); err != nil {
			logger.Warning("clear stale session err:", err)
		}
		jsonError(c, http.StatusUnauthorized, "Not authenticated")
		c.Abort()
		return
	}

	c.Set(ctxLoginUser, user)
	c.Next()
}

// loginUser returns the user resolved by checkLogin.
func loginUser(c *gin.Context) *model.User {
	if obj, ok := c.Get(ctxLoginUser); ok {
		if user, ok := obj.(*model.User); ok {
			return user
		}
	}
	return nil
}
