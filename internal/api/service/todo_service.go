package service

import (
	"context"
	"log/slog"

	"mkessler/Todo-Api/internal/api/models"
	"mkessler/Todo-Api/internal/api/repository"
)

// TodoService defines the interface for todo business logic.
//
// Reads are open to everyone. Writes expect an already-authenticated caller;
// update and delete deliberately do not check that the caller owns the todo,
// matching the behavior this API has always had.
type TodoService interface {
	List(ctx context.Context) ([]models.Todo, error)
	Get(ctx context.Context, id int64) (*models.Todo, error)
	Create(ctx context.Context, name string, owner *models.User) (*models.Todo, error)
	Update(ctx context.Context, id int64, name string) (*models.Todo, error)
	Delete(ctx context.Context, id int64) error
}

type todoService struct {
	todoRepo repository.TodoRepository
}

// NewTodoService creates a new TodoService.
func NewTodoService(todoRepo repository.TodoRepository) TodoService {
	return &todoService{todoRepo: todoRepo}
}

// List returns all todos across all users in creation order.
func (s *todoService) List(ctx context.Context) ([]models.Todo, error) {
	return s.todoRepo.List(ctx)
}

// Get returns a single todo or ErrTodoNotFound.
func (s *todoService) Get(ctx context.Context, id int64) (*models.Todo, error) {
	todo, err := s.todoRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if todo == nil {
		return nil, ErrTodoNotFound
	}
	return todo, nil
}

// Create stores a new todo owned by owner. The name must be non-empty.
func (s *todoService) Create(ctx context.Context, name string, owner *models.User) (*models.Todo, error) {
	if name == "" {
		return nil, ErrNameRequired
	}

	todo, err := s.todoRepo.Create(ctx, name, owner.ID)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "todo created", "id", todo.ID, "owner", owner.Username)
	return todo, nil
}

// Update overwrites the name of an existing todo. Only the name changes;
// ownership is immutable.
func (s *todoService) Update(ctx context.Context, id int64, name string) (*models.Todo, error) {
	if name == "" {
		return nil, ErrNameRequired
	}

	affected, err := s.todoRepo.UpdateName(ctx, id, name)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrTodoNotFound
	}

	todo, err := s.todoRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if todo == nil {
		// Raced with a delete between the update and the re-read.
		return nil, ErrTodoNotFound
	}
	return todo, nil
}

// Delete removes a todo. A missing id reports ErrTodoNotDeletable rather
// than a plain not-found.
func (s *todoService) Delete(ctx context.Context, id int64) error {
	affected, err := s.todoRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrTodoNotDeletable
	}

	slog.InfoContext(ctx, "todo deleted", "id", id)
	return nil
}
