package services

import (
	"context"
	"strings"
	"time"

	"github.com/kirankamble1523/Task-Manager-App/types"
)

// TaskRepository defines persistence operations for tasks.
type TaskRepository interface {
	ListByUser(ctx context.Context, userID int) ([]types.Task, error)
	CountByUser(ctx context.Context, userID int) (total, completed int, err error)
	Get(ctx context.Context, id int) (types.Task, error)
	Create(ctx context.Context, task types.Task) (types.Task, error)
	Update(ctx context.Context, task types.Task) (types.Task, error)
	Delete(ctx context.Context, id int) error
}

// TaskInput carries the task fields submitted by a form. Deadline is the
// raw form value: empty means no deadline, anything else must be a
// YYYY-MM-DD calendar date.
type TaskInput struct {
	Title       string
	Description string
	Category    string
	Deadline    string
}

// TaskService encapsulates task use-cases. Every operation that touches
// an existing task enforces that the caller owns it.
type TaskService struct {
	repo TaskRepository
}

func NewTaskService(repo TaskRepository) *TaskService {
	return &TaskService{repo: repo}
}

func (s *TaskService) ListForUser(ctx context.Context, userID int) ([]types.Task, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *TaskService) CountsForUser(ctx context.Context, userID int) (types.TaskCounts, error) {
	total, completed, err := s.repo.CountByUser(ctx, userID)
	if err != nil {
		return types.TaskCounts{}, err
	}
	return types.TaskCounts{
		Total:     total,
		Completed: completed,
		Pending:   total - completed,
	}, nil
}

// Get fetches a task for its owner. Returns store.ErrNotFound for an
// unknown id and ErrForbidden when the task belongs to someone else.
func (s *TaskService) Get(ctx context.Context, taskID, userID int) (types.Task, error) {
	return s.ownedTask(ctx, taskID, userID)
}

func (s *TaskService) Create(ctx context.Context, userID int, input TaskInput) (types.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return types.Task{}, ErrTitleRequired
	}

	deadline, err := parseDeadline(input.Deadline)
	if err != nil {
		return types.Task{}, err
	}

	return s.repo.Create(ctx, types.Task{
		Title:       title,
		Description: input.Description,
		Category:    input.Category,
		Deadline:    deadline,
		UserID:      userID,
	})
}

func (s *TaskService) Update(ctx context.Context, taskID, userID int, input TaskInput) (types.Task, error) {
	task, err := s.ownedTask(ctx, taskID, userID)
	if err != nil {
		return types.Task{}, err
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return types.Task{}, ErrTitleRequired
	}

	deadline, err := parseDeadline(input.Deadline)
	if err != nil {
		return types.Task{}, err
	}

	task.Title = title
	task.Description = input.Description
	task.Category = input.Category
	task.Deadline = deadline
	return s.repo.Update(ctx, task)
}

func (s *TaskService) ToggleComplete(ctx context.Context, taskID, userID int) (types.Task, error) {
	task, err := s.ownedTask(ctx, taskID, userID)
	if err != nil {
		return types.Task{}, err
	}

	task.IsCompleted = !task.IsCompleted
	return s.repo.Update(ctx, task)
}

func (s *TaskService) Delete(ctx context.Context, taskID, userID int) error {
	if _, err := s.ownedTask(ctx, taskID, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, taskID)
}

func (s *TaskService) ownedTask(ctx context.Context, taskID, userID int) (types.Task, error) {
	task, err := s.repo.Get(ctx, taskID)
	if err != nil {
		return types.Task{}, err
	}
	if task.UserID != userID {
		return types.Task{}, ErrForbidden
	}
	return task, nil
}

func parseDeadline(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	deadline, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return nil, ErrInvalidDate
	}
	return &deadline, nil
}
