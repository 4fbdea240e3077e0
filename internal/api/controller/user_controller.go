package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"mkessler/Todo-Api/internal/api/middleware"
	"mkessler/Todo-Api/internal/api/models"
	"mkessler/Todo-Api/internal/api/response"
	"mkessler/Todo-Api/internal/api/service"
)

// UserController handles account creation and the token endpoint.
type UserController struct {
	userService service.UserService
}

// NewUserController creates a new UserController.
func NewUserController(userService service.UserService) *UserController {
	return &UserController{
		userService: userService,
	}
}

// Register handles POST /api/v1/users. The response exposes only the
// username of the new account.
func (uc *UserController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := uc.userService.Register(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPasswordMismatch),
			errors.Is(err, service.ErrUsernameTaken),
			errors.Is(err, service.ErrInvalidEmail):
			response.Error(c, http.StatusBadRequest, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"username": user.Username})
}

// Token handles GET /api/v1/users/token. BasicAuth has already resolved
// the caller; this just mints a session token for them.
func (uc *UserController) Token(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		response.Error(c, http.StatusUnauthorized, "authentication required")
		return
	}

	token, err := uc.userService.IssueToken(c.Request.Context(), user)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, models.TokenResponse{Token: token})
}
