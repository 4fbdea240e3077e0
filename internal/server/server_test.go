package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mkessler/Todo-Api/internal/api/controller"
	"mkessler/Todo-Api/internal/api/models"
	"mkessler/Todo-Api/internal/api/repository"
	"mkessler/Todo-Api/internal/api/service"
	"mkessler/Todo-Api/internal/db"
)

const (
	testUsername = "test_user"
	testPassword = "test_password"
)

var testSecret = []byte("test-secret")

// tokenRecorder is an in-memory stand-in for the Redis token registry.
type tokenRecorder struct {
	jti string
}

func (f *tokenRecorder) Save(ctx context.Context, jti, username string, ttl time.Duration) error {
	f.jti = jti
	return nil
}

type fixture struct {
	engine *gin.Engine
	tokens *tokenRecorder
}

// newFixture wires the whole stack over an in-memory database and registers
// one known user, matching the setup the API is normally exercised with.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	pool, err := db.Connect(":memory:")
	require.NoError(t, err)
	pool.SetMaxOpenConns(1)
	require.NoError(t, db.Initialize(pool))
	t.Cleanup(func() { pool.Close() })

	userRepo := repository.NewUserRepository(pool)
	todoRepo := repository.NewTodoRepository(pool)
	tokens := &tokenRecorder{}

	userService := service.NewUserService(userRepo, tokens, testSecret)
	todoService := service.NewTodoService(todoRepo)

	srv := NewServer(
		controller.NewUserController(userService),
		controller.NewTodoController(todoService),
		userService,
	)

	user := &models.User{Username: testUsername, Email: "test_@email.com"}
	require.NoError(t, userRepo.CreateUser(context.Background(), user, testPassword))

	return &fixture{engine: srv.Engine(), tokens: tokens}
}

func (f *fixture) do(t *testing.T, method, path string, body any, authed bool) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.SetBasicAuth(testUsername, testPassword)
	}

	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

type todoBody struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func (f *fixture) createTodo(t *testing.T, name string) todoBody {
	t.Helper()

	w := f.do(t, http.MethodPost, "/api/v1/todos", gin.H{"name": name}, true)
	require.Equal(t, http.StatusCreated, w.Code)

	var body todoBody
	decodeJSON(t, w, &body)
	return body
}

func TestHomePage(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/", nil, false)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "My TODOs!")
}

func TestRegister(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPost, "/api/v1/users", gin.H{
		"username":        "test",
		"email":           "test@todo.com",
		"password":        "password",
		"verify_password": "password",
	}, false)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"username": "test"}`, w.Body.String())
}

func TestRegisterPasswordMismatch(t *testing.T) {
	f := newFixture(t)

	payload := gin.H{
		"username":        "test",
		"email":           "test@todo.com",
		"password":        "pasword",
		"verify_password": "password",
	}

	w := f.do(t, http.MethodPost, "/api/v1/users", payload, false)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error": "Password and password verification do not match"}`, w.Body.String())

	// Nothing was persisted: registering the same username now succeeds.
	payload["password"] = "password"
	w = f.do(t, http.MethodPost, "/api/v1/users", payload, false)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPost, "/api/v1/users", gin.H{
		"username":        testUsername,
		"email":           "other@todo.com",
		"password":        "password",
		"verify_password": "password",
	}, false)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTodoListOrdering(t *testing.T) {
	f := newFixture(t)

	names := []string{"test", "test2", "test3"}
	for _, name := range names {
		f.createTodo(t, name)
	}

	w := f.do(t, http.MethodGet, "/api/v1/todos", nil, false)
	require.Equal(t, http.StatusOK, w.Code)

	var list []todoBody
	decodeJSON(t, w, &list)
	require.Len(t, list, len(names))
	for i, item := range list {
		assert.Equal(t, int64(i+1), item.ID)
		assert.Equal(t, names[i], item.Name)
	}
}

func TestTodoListEmpty(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/api/v1/todos", nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestTodoCreate(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPost, "/api/v1/todos", gin.H{"name": "test"}, true)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"id": 1, "name": "test"}`, w.Body.String())
	assert.Equal(t, "/api/v1/todos/1", w.Header().Get("Location"))
}

func TestTodoCreateMissingName(t *testing.T) {
	f := newFixture(t)

	for _, body := range []any{gin.H{}, gin.H{"name": ""}, nil} {
		w := f.do(t, http.MethodPost, "/api/v1/todos", body, true)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error": "No name provided"}`, w.Body.String())
	}
}

func TestTodoGet(t *testing.T) {
	f := newFixture(t)
	created := f.createTodo(t, "test")

	w := f.do(t, http.MethodGet, fmt.Sprintf("/api/v1/todos/%d", created.ID), nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id": 1, "name": "test"}`, w.Body.String())

	w = f.do(t, http.MethodGet, "/api/v1/todos/888888", nil, false)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTodoPut(t *testing.T) {
	f := newFixture(t)
	created := f.createTodo(t, "test")

	w := f.do(t, http.MethodPut, fmt.Sprintf("/api/v1/todos/%d", created.ID), gin.H{"name": "test_edited"}, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id": 1, "name": "test_edited"}`, w.Body.String())
	assert.Equal(t, "/api/v1/todos/1", w.Header().Get("Location"))

	// The store reflects the new name.
	w = f.do(t, http.MethodGet, fmt.Sprintf("/api/v1/todos/%d", created.ID), nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id": 1, "name": "test_edited"}`, w.Body.String())
}

func TestTodoPutMissing(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPut, "/api/v1/todos/888888", gin.H{"name": "nope"}, true)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTodoPutMissingName(t *testing.T) {
	f := newFixture(t)
	created := f.createTodo(t, "test")

	w := f.do(t, http.MethodPut, fmt.Sprintf("/api/v1/todos/%d", created.ID), gin.H{}, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error": "No name provided"}`, w.Body.String())
}

func TestTodoDelete(t *testing.T) {
	f := newFixture(t)
	created := f.createTodo(t, "test_todo1")

	w := f.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/todos/%d", created.ID), nil, true)
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "/api/v1/todos", w.Header().Get("Location"))

	w = f.do(t, http.MethodGet, fmt.Sprintf("/api/v1/todos/%d", created.ID), nil, false)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTodoDeleteMissing(t *testing.T) {
	f := newFixture(t)
	f.createTodo(t, "test_todo1")

	w := f.do(t, http.MethodDelete, "/api/v1/todos/888888", nil, true)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"error": "Todo can not be deleted"}`, w.Body.String())
}

func TestMutationsRequireAuth(t *testing.T) {
	f := newFixture(t)
	created := f.createTodo(t, "test")

	tests := []struct {
		method string
		path   string
		body   any
	}{
		{method: http.MethodPost, path: "/api/v1/todos", body: gin.H{"name": "x"}},
		{method: http.MethodPut, path: fmt.Sprintf("/api/v1/todos/%d", created.ID), body: gin.H{"name": "x"}},
		{method: http.MethodDelete, path: fmt.Sprintf("/api/v1/todos/%d", created.ID)},
	}

	for _, tt := range tests {
		t.Run(tt.method+" no credentials", func(t *testing.T) {
			w := f.do(t, tt.method, tt.path, tt.body, false)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.NotEmpty(t, w.Header().Get("WWW-Authenticate"))
		})

		t.Run(tt.method+" bad credentials", func(t *testing.T) {
			var buf bytes.Buffer
			if tt.body != nil {
				require.NoError(t, json.NewEncoder(&buf).Encode(tt.body))
			}
			req := httptest.NewRequest(tt.method, tt.path, &buf)
			req.Header.Set("Content-Type", "application/json")
			req.SetBasicAuth(testUsername, "wrong_password")

			w := httptest.NewRecorder()
			f.engine.ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestTokenEndpoint(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/api/v1/users/token", nil, true)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Token string `json:"token"`
	}
	decodeJSON(t, w, &body)
	require.NotEmpty(t, body.Token)

	parsed, err := jwt.Parse(body.Token, func(token *jwt.Token) (any, error) {
		return testSecret, nil
	})
	require.NoError(t, err)
	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, testUsername, claims["un"])
	assert.Equal(t, claims["jti"], f.tokens.jti)
}

func TestTokenEndpointRequiresAuth(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/api/v1/users/token", nil, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
