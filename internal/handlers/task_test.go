package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddAndListTasks(t *testing.T) {
	app := newTestApp(t)
	session := app.signUp(t, "alice", "alice@x.com", "Passw0rd")

	rec := app.postForm("/add_task", url.Values{
		"title":       {"Buy milk"},
		"description": {"2 liters"},
		"category":    {"errands"},
		"deadline":    {""},
	}, session)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/tasks", rec.Header().Get("Location"))

	// Carry the flash cookie across the redirect like a browser would.
	cookies := append([]*http.Cookie{session}, rec.Result().Cookies()...)
	rec = app.get("/tasks", cookies...)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Buy milk")
	assert.Contains(t, body, "Pending")
	assert.Contains(t, body, "Task added successfully!")

	require.Len(t, app.taskRepo.tasks, 1)
	task := app.taskRepo.tasks[1]
	assert.False(t, task.IsCompleted)
	assert.Nil(t, task.Deadline)
}

func TestAddTaskInvalidDatePreservesFields(t *testing.T) {
	app := newTestApp(t)
	session := app.signUp(t, "alice", "alice@x.com", "Passw0rd")

	rec := app.postForm("/add_task", url.Values{
		"title":       {"Pay rent"},
		"description": {"before the first"},
		"category":    {"home"},
		"deadline":    {"2024-02-30"},
	}, session)
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "Pay rent", "submitted title must survive the error")
	assert.Contains(t, body, "before the first")
	assert.Contains(t, body, "home")
	assert.Contains(t, body, "YYYY-MM-DD")
	assert.Empty(t, app.taskRepo.tasks, "no task persisted on invalid date")
}

func TestAddTaskMissingTitle(t *testing.T) {
	app := newTestApp(t)
	session := app.signUp(t, "alice", "alice@x.com", "Passw0rd")

	rec := app.postForm("/add_task", url.Values{
		"title":    {"  "},
		"deadline": {""},
	}, session)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "title is required")
	assert.Empty(t, app.taskRepo.tasks)
}

func TestEditTask(t *testing.T) {
	app := newTestApp(t)
	session := app.signUp(t, "alice", "alice@x.com", "Passw0rd")
	app.postForm("/add_task", url.Values{"title": {"Draft"}}, session)

	rec := app.get("/edit_task/1", session)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Draft")

	rec = app.postForm("/edit_task/1", url.Values{
		"title":    {"Final"},
		"category": {"work"},
		"deadline": {"2026-09-01"},
	}, session)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/tasks", rec.Header().Get("Location"))

	task := app.taskRepo.tasks[1]
	assert.Equal(t, "Final", task.Title)
	assert.Equal(t, "work", task.Category)
	require.NotNil(t, task.Deadline)
}

func TestUnknownTaskIDReturns404(t *testing.T) {
	app := newTestApp(t)
	session := app.signUp(t, "alice", "alice@x.com", "Passw0rd")

	for _, path := range []string{"/edit_task/99", "/delete_task/99", "/complete_task/99"} {
		rec := app.get(path, session)
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
	}

	rec := app.get("/edit_task/banana", session)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNonOwnerCannotTouchTask(t *testing.T) {
	app := newTestApp(t)
	alice := app.signUp(t, "alice", "alice@x.com", "Passw0rd")
	bob := app.signUp(t, "bob", "bob@x.com", "Passw0rd")

	app.postForm("/add_task", url.Values{"title": {"Alice secret task"}}, alice)
	require.Len(t, app.taskRepo.tasks, 1)

	for _, path := range []string{"/delete_task/1", "/complete_task/1", "/edit_task/1"} {
		rec := app.get(path, bob)
		assert.Equal(t, http.StatusSeeOther, rec.Code, path)
		assert.Equal(t, "/tasks", rec.Header().Get("Location"), path)
	}

	rec := app.postForm("/edit_task/1", url.Values{"title": {"hijacked"}}, bob)
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	// Still present, still Alice's, still untouched.
	task := app.taskRepo.tasks[1]
	assert.Equal(t, "Alice secret task", task.Title)
	assert.False(t, task.IsCompleted)

	rec = app.get("/tasks", alice)
	assert.Contains(t, rec.Body.String(), "Alice secret task")
}

func TestCompleteTaskToggles(t *testing.T) {
	app := newTestApp(t)
	session := app.signUp(t, "alice", "alice@x.com", "Passw0rd")
	app.postForm("/add_task", url.Values{"title": {"Flip me"}}, session)

	rec := app.get("/complete_task/1", session)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.True(t, app.taskRepo.tasks[1].IsCompleted)

	rec = app.get("/complete_task/1", session)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.False(t, app.taskRepo.tasks[1].IsCompleted)
}

func TestDeleteTask(t *testing.T) {
	app := newTestApp(t)
	session := app.signUp(t, "alice", "alice@x.com", "Passw0rd")
	app.postForm("/add_task", url.Values{"title": {"Remove me"}}, session)

	rec := app.get("/delete_task/1", session)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/tasks", rec.Header().Get("Location"))
	assert.Empty(t, app.taskRepo.tasks)
}

func TestDashboardCounts(t *testing.T) {
	app := newTestApp(t)
	session := app.signUp(t, "alice", "alice@x.com", "Passw0rd")

	for i := 0; i < 3; i++ {
		app.postForm("/add_task", url.Values{"title": {fmt.Sprintf("task %d", i)}}, session)
	}
	app.get("/complete_task/1", session)

	rec := app.get("/", session)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Total")
	assert.Contains(t, body, ">3<")
	assert.Contains(t, body, ">1<")
	assert.Contains(t, body, ">2<")
}
