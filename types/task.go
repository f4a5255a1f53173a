package types

import "time"

// Task represents a single to-do item owned by exactly one user.
type Task struct {
	// ID is the unique identifier of the task.
	ID int `json:"id" db:"id"`

	// Title is a short summary of the task. Always non-empty.
	Title string `json:"title" db:"title"`

	// Description holds free-form details about the task.
	Description string `json:"description" db:"description"`

	// Category is an optional user-chosen grouping label.
	Category string `json:"category" db:"category"`

	// Deadline is the optional due date of the task. It carries a calendar
	// date only; nil means no deadline was set.
	Deadline *time.Time `json:"deadline,omitempty" db:"deadline"`

	// IsCompleted reports whether the task has been marked done.
	IsCompleted bool `json:"is_completed" db:"is_completed"`

	// UserID identifies the owner of the task. Set on creation and never
	// reassigned afterwards.
	UserID int `json:"user_id" db:"user_id"`

	// CreatedAt is the timestamp when the task was created.
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// UpdatedAt is the timestamp of the most recent change to the task.
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// TaskCounts summarizes a user's tasks for the dashboard.
type TaskCounts struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
}
