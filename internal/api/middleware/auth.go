package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mkessler/Todo-Api/internal/api/models"
	"mkessler/Todo-Api/internal/api/response"
	"mkessler/Todo-Api/internal/api/service"
)

// userKey is where the resolved user lives in the gin context.
const userKey = "authUser"

// BasicAuth returns a guard that checks basic-auth credentials against the
// user store. On success the resolved user is bound to the request context
// for the handler to use as the owner; otherwise the request is rejected
// with a 401 challenge before the handler runs.
func BasicAuth(users service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, password, ok := c.Request.BasicAuth()
		if !ok {
			challenge(c)
			return
		}

		user, err := users.VerifyCredentials(c.Request.Context(), username, password)
		if err != nil {
			challenge(c)
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

// CurrentUser returns the user bound by BasicAuth, or nil on routes where
// the guard did not run.
func CurrentUser(c *gin.Context) *models.User {
	v, exists := c.Get(userKey)
	if !exists {
		return nil
	}
	user, ok := v.(*models.User)
	if !ok {
		return nil
	}
	return user
}

func challenge(c *gin.Context) {
	c.Header("WWW-Authenticate", `Basic realm="todo-api"`)
	response.Error(c, http.StatusUnauthorized, "authentication required")
	c.Abort()
}
