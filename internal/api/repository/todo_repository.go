package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel"

	"mkessler/Todo-Api/internal/api/models"
)

var todoTracer = otel.Tracer("repository.todo")

// TodoRepository defines the interface for todo data operations.
type TodoRepository interface {
	List(ctx context.Context) ([]models.Todo, error)
	GetByID(ctx context.Context, id int64) (*models.Todo, error)
	Create(ctx context.Context, name string, userID int64) (*models.Todo, error)
	UpdateName(ctx context.Context, id int64, name string) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

type sqliteTodoRepository struct {
	db *sqlx.DB
}

// NewTodoRepository creates a new SQLite-based TodoRepository.
func NewTodoRepository(db *sqlx.DB) TodoRepository {
	return &sqliteTodoRepository{db: db}
}

// List returns every todo across all users in ascending id order, which is
// insertion order for an AUTOINCREMENT key.
func (r *sqliteTodoRepository) List(ctx context.Context) ([]models.Todo, error) {
	ctx, span := todoTracer.Start(ctx, "TodoRepository.List")
	defer span.End()

	var todos []models.Todo
	query := `SELECT id, name, user_id FROM todos ORDER BY id ASC`
	if err := r.db.SelectContext(ctx, &todos, query); err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	return todos, nil
}

// GetByID retrieves a single todo. A missing row is reported as (nil, nil).
func (r *sqliteTodoRepository) GetByID(ctx context.Context, id int64) (*models.Todo, error) {
	ctx, span := todoTracer.Start(ctx, "TodoRepository.GetByID")
	defer span.End()

	var todo models.Todo
	query := `SELECT id, name, user_id FROM todos WHERE id = ?`
	err := r.db.GetContext(ctx, &todo, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get todo by id: %w", err)
	}
	return &todo, nil
}

// Create inserts a new todo owned by userID and returns the stored record.
func (r *sqliteTodoRepository) Create(ctx context.Context, name string, userID int64) (*models.Todo, error) {
	ctx, span := todoTracer.Start(ctx, "TodoRepository.Create")
	defer span.End()

	query := `INSERT INTO todos (name, user_id) VALUES (?, ?)`
	result, err := r.db.ExecContext(ctx, query, name, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read new todo id: %w", err)
	}

	return &models.Todo{ID: id, Name: name, UserID: userID}, nil
}

// UpdateName overwrites the name of an existing todo. The owner column is
// never touched. It returns the number of rows affected.
func (r *sqliteTodoRepository) UpdateName(ctx context.Context, id int64, name string) (int64, error) {
	ctx, span := todoTracer.Start(ctx, "TodoRepository.UpdateName")
	defer span.End()

	query := `UPDATE todos SET name = ? WHERE id = ?`
	result, err := r.db.ExecContext(ctx, query, name, id)
	if err != nil {
		return 0, fmt.Errorf("failed to update todo: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected, nil
}

// Delete removes a todo and returns the number of rows affected.
func (r *sqliteTodoRepository) Delete(ctx context.Context, id int64) (int64, error) {
	ctx, span := todoTracer.Start(ctx, "TodoRepository.Delete")
	defer span.End()

	query := `DELETE FROM todos WHERE id = ?`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete todo: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected, nil
}
