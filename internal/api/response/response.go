package response

import (
	"github.com/gin-gonic/gin"

	"mkessler/Todo-Api/internal/api/models"
)

// TodoProjection is the wire shape of a todo. Only id and name are ever
// exposed; the owner stays internal.
type TodoProjection struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Todo projects a todo record to its wire shape.
func Todo(t *models.Todo) TodoProjection {
	return TodoProjection{
		ID:   t.ID,
		Name: t.Name,
	}
}

// TodoList projects a slice of todo records. It always returns a non-nil
// slice so an empty collection serializes as [] rather than null.
func TodoList(todos []models.Todo) []TodoProjection {
	out := make([]TodoProjection, 0, len(todos))
	for i := range todos {
		out = append(out, Todo(&todos[i]))
	}
	return out
}

// Error writes a JSON error body with the given status code.
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"error": message})
}
