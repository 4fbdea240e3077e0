package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"mkessler/Todo-Api/internal/api/middleware"
	"mkessler/Todo-Api/internal/api/models"
	"mkessler/Todo-Api/internal/api/response"
	"mkessler/Todo-Api/internal/api/service"
)

// TodoController handles the todo collection and item endpoints.
type TodoController struct {
	todoService service.TodoService
}

// NewTodoController creates a new TodoController.
func NewTodoController(todoService service.TodoService) *TodoController {
	return &TodoController{
		todoService: todoService,
	}
}

// List handles GET /api/v1/todos. No auth, no pagination, no filtering.
func (tc *TodoController) List(c *gin.Context) {
	todos, err := tc.todoService.List(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, response.TodoList(todos))
}

// Get handles GET /api/v1/todos/:id.
func (tc *TodoController) Get(c *gin.Context) {
	id, ok := todoID(c)
	if !ok {
		return
	}

	todo, err := tc.todoService.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrTodoNotFound) {
			response.Error(c, http.StatusNotFound, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, response.Todo(todo))
}

// Create handles POST /api/v1/todos. The authenticated caller becomes the
// owner of the new todo.
func (tc *TodoController) Create(c *gin.Context) {
	var req models.TodoRequest
	// A bad or absent body is treated the same as a missing name.
	_ = c.ShouldBindJSON(&req)

	owner := middleware.CurrentUser(c)
	if owner == nil {
		response.Error(c, http.StatusUnauthorized, "authentication required")
		return
	}

	todo, err := tc.todoService.Create(c.Request.Context(), req.Name, owner)
	if err != nil {
		if errors.Is(err, service.ErrNameRequired) {
			response.Error(c, http.StatusBadRequest, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.Header("Location", itemLocation(todo.ID))
	c.JSON(http.StatusCreated, response.Todo(todo))
}

// Update handles PUT /api/v1/todos/:id. Any authenticated user may rename
// any todo; only the name changes.
func (tc *TodoController) Update(c *gin.Context) {
	id, ok := todoID(c)
	if !ok {
		return
	}

	var req models.TodoRequest
	_ = c.ShouldBindJSON(&req)

	todo, err := tc.todoService.Update(c.Request.Context(), id, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNameRequired):
			response.Error(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrTodoNotFound):
			response.Error(c, http.StatusNotFound, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	c.Header("Location", itemLocation(todo.ID))
	c.JSON(http.StatusOK, response.Todo(todo))
}

// Delete handles DELETE /api/v1/todos/:id. Deleting a missing todo is a
// 403 with its own message, not a 404.
func (tc *TodoController) Delete(c *gin.Context) {
	id, ok := todoID(c)
	if !ok {
		return
	}

	if err := tc.todoService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrTodoNotDeletable) {
			response.Error(c, http.StatusForbidden, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.Header("Location", collectionLocation)
	c.Status(http.StatusNoContent)
}

const collectionLocation = "/api/v1/todos"

func itemLocation(id int64) string {
	return fmt.Sprintf("%s/%d", collectionLocation, id)
}

// todoID parses the :id path parameter. A non-numeric id behaves like a
// missing todo.
func todoID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusNotFound, service.ErrTodoNotFound.Error())
		return 0, false
	}
	return id, true
}
