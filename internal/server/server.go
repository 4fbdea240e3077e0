package server

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"mkessler/Todo-Api/internal/api/controller"
	"mkessler/Todo-Api/internal/api/middleware"
	"mkessler/Todo-Api/internal/api/service"
)

var tracer = otel.Tracer("server")

// Server owns the gin engine and the route table.
type Server struct {
	engine *gin.Engine
}

// NewServer builds the gin engine and registers every route. Read routes on
// the todo collection are open; every mutating route and the token endpoint
// sit behind the basic-auth guard.
func NewServer(users *controller.UserController, todos *controller.TodoController, userService service.UserService) *Server {
	engine := gin.New()
	engine.Use(gin.Recovery(), tracing())
	engine.SetHTMLTemplate(homeTemplate)

	s := &Server{engine: engine}

	engine.GET("/", s.home)

	auth := middleware.BasicAuth(userService)

	v1 := engine.Group("/api/v1")
	{
		v1.GET("/todos", todos.List)
		v1.POST("/todos", auth, todos.Create)
		v1.GET("/todos/:id", todos.Get)
		v1.PUT("/todos/:id", auth, todos.Update)
		v1.DELETE("/todos/:id", auth, todos.Delete)

		v1.POST("/users", users.Register)
		v1.GET("/users/token", auth, users.Token)
	}

	return s
}

// Engine exposes the underlying gin engine for http.Server and tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) home(c *gin.Context) {
	c.HTML(http.StatusOK, "home", gin.H{
		"Title": "My TODOs!",
	})
}

// tracing starts a span per request and records the response status on it.
func tracing() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracer.Start(c.Request.Context(), c.FullPath(), trace.WithAttributes(
			attribute.String("http.method", c.Request.Method),
			attribute.String("http.url", c.Request.URL.String()),
		))
		defer span.End()

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		status := c.Writer.Status()
		span.SetAttributes(attribute.Int("http.status_code", status))
		if status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(status))
		}
	}
}

var homeTemplate = template.Must(template.New("home").Parse(`<!DOCTYPE html>
<html>
<head>
  <title>{{ .Title }}</title>
</head>
<body>
  <h1>{{ .Title }}</h1>
  <p>A simple multi-user to-do list. The API lives under <code>/api/v1</code>:</p>
  <ul>
    <li><code>GET /api/v1/todos</code> &mdash; list every todo</li>
    <li><code>POST /api/v1/todos</code> &mdash; add a todo (basic auth)</li>
    <li><code>GET /api/v1/todos/{id}</code> &mdash; fetch one todo</li>
    <li><code>PUT /api/v1/todos/{id}</code> &mdash; rename a todo (basic auth)</li>
    <li><code>DELETE /api/v1/todos/{id}</code> &mdash; remove a todo (basic auth)</li>
    <li><code>POST /api/v1/users</code> &mdash; create an account</li>
    <li><code>GET /api/v1/users/token</code> &mdash; fetch a session token (basic auth)</li>
  </ul>
</body>
</html>
`))
