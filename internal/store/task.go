package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/kirankamble1523/Task-Manager-App/types"
)

// TaskRepository handles persistence for tasks.
type TaskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) ListByUser(ctx context.Context, userID int) ([]types.Task, error) {
	const query = `
		SELECT id, title, description, category, deadline, is_completed, user_id, created_at, updated_at
		FROM tasks
		WHERE user_id = $1
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]types.Task, 0)
	for rows.Next() {
		var task types.Task
		var deadline sql.NullTime
		if err := rows.Scan(
			&task.ID,
			&task.Title,
			&task.Description,
			&task.Category,
			&deadline,
			&task.IsCompleted,
			&task.UserID,
			&task.CreatedAt,
			&task.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if deadline.Valid {
			d := deadline.Time
			task.Deadline = &d
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *TaskRepository) CountByUser(ctx context.Context, userID int) (total, completed int, err error) {
	const query = `
		SELECT COUNT(1), COUNT(1) FILTER (WHERE is_completed)
		FROM tasks
		WHERE user_id = $1`
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&total, &completed); err != nil {
		return 0, 0, err
	}
	return total, completed, nil
}

func (r *TaskRepository) Get(ctx context.Context, id int) (types.Task, error) {
	const query = `
		SELECT id, title, description, category, deadline, is_completed, user_id, created_at, updated_at
		FROM tasks
		WHERE id = $1`
	var task types.Task
	var deadline sql.NullTime
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.Category,
		&deadline,
		&task.IsCompleted,
		&task.UserID,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Task{}, ErrNotFound
		}
		return types.Task{}, err
	}
	if deadline.Valid {
		d := deadline.Time
		task.Deadline = &d
	}
	return task, nil
}

func (r *TaskRepository) Create(ctx context.Context, task types.Task) (types.Task, error) {
	now := time.Now()
	task.CreatedAt = now
	task.UpdatedAt = now

	const query = `
		INSERT INTO tasks (title, description, category, deadline, is_completed, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		task.Title,
		task.Description,
		task.Category,
		nullDeadline(task.Deadline),
		task.IsCompleted,
		task.UserID,
		task.CreatedAt,
		task.UpdatedAt,
	).Scan(&task.ID); err != nil {
		return types.Task{}, err
	}
	return task, nil
}

// Update overwrites the mutable columns of a task. The owner column is
// never touched.
func (r *TaskRepository) Update(ctx context.Context, task types.Task) (types.Task, error) {
	task.UpdatedAt = time.Now()

	const query = `
		UPDATE tasks
		SET title = $1,
			description = $2,
			category = $3,
			deadline = $4,
			is_completed = $5,
			updated_at = $6
		WHERE id = $7`
	result, err := r.db.ExecContext(
		ctx,
		query,
		task.Title,
		task.Description,
		task.Category,
		nullDeadline(task.Deadline),
		task.IsCompleted,
		task.UpdatedAt,
		task.ID,
	)
	if err != nil {
		return types.Task{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return types.Task{}, err
	}
	if affected == 0 {
		return types.Task{}, ErrNotFound
	}
	return task, nil
}

func (r *TaskRepository) Delete(ctx context.Context, id int) error {
	const query = `DELETE FROM tasks WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func nullDeadline(deadline *time.Time) sql.NullTime {
	if deadline == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *deadline, Valid: true}
}
