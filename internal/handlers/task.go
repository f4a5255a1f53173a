package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/kirankamble1523/Task-Manager-App/internal/services"
	"github.com/kirankamble1523/Task-Manager-App/internal/store"
	"github.com/kirankamble1523/Task-Manager-App/internal/web"
	"github.com/kirankamble1523/Task-Manager-App/types"
)

// TaskHandler serves the task list and the add/edit/complete/delete flows.
type TaskHandler struct {
	taskService *services.TaskService
	renderer    *web.Renderer
}

func NewTaskHandler(taskService *services.TaskService, renderer *web.Renderer) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		renderer:    renderer,
	}
}

// TaskRouter registers the task routes on the given router. All of them
// require an authenticated session.
func TaskRouter(r chi.Router, handler *TaskHandler, authMiddleware func(http.Handler) http.Handler) {
	r.With(authMiddleware).Get("/tasks", handler.ListTasks)
	r.With(authMiddleware).Get("/add_task", handler.AddTaskPage)
	r.With(authMiddleware).Post("/add_task", handler.AddTask)
	r.With(authMiddleware).Get("/edit_task/{taskID}", handler.EditTaskPage)
	r.With(authMiddleware).Post("/edit_task/{taskID}", handler.EditTask)
	r.With(authMiddleware).Get("/delete_task/{taskID}", handler.DeleteTask)
	r.With(authMiddleware).Get("/complete_task/{taskID}", handler.CompleteTask)
}

type TaskForm struct {
	Title       string `validate:"required"`
	Description string
	Category    string
	Deadline    string `validate:"omitempty,datetime=2006-01-02"`
}

func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		redirect(w, r, "/login")
		return
	}

	tasks, err := h.taskService.ListForUser(r.Context(), userID)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.renderer.Render(w, r, http.StatusOK, "tasks.html", web.ViewData{
		Title:    "Tasks",
		Greeting: greeting(timeNowHour()),
		Tasks:    tasks,
	})
}

func (h *TaskHandler) AddTaskPage(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, r, http.StatusOK, "task_form.html", web.ViewData{
		Title:    "Add Task",
		Greeting: greeting(timeNowHour()),
	})
}

func (h *TaskHandler) AddTask(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		redirect(w, r, "/login")
		return
	}

	form, err := parseTaskForm(r)
	if err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	if msg, ok := validateTaskForm(form); !ok {
		// Re-render with the submitted fields intact rather than
		// bouncing through a redirect that would drop them.
		h.renderTaskForm(w, r, "Add Task", 0, form, msg)
		return
	}

	_, err = h.taskService.Create(r.Context(), userID, services.TaskInput(form))
	switch {
	case err == nil:
		web.SetFlash(w, "success", "Task added successfully!")
		redirect(w, r, "/tasks")
	case errors.Is(err, services.ErrTitleRequired), errors.Is(err, services.ErrInvalidDate):
		h.renderTaskForm(w, r, "Add Task", 0, form, err.Error())
	default:
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (h *TaskHandler) EditTaskPage(w http.ResponseWriter, r *http.Request) {
	userID, taskID, ok := h.requestIDs(w, r)
	if !ok {
		return
	}

	task, err := h.taskService.Get(r.Context(), taskID, userID)
	if err != nil {
		h.taskError(w, r, err)
		return
	}

	form := TaskForm{
		Title:       task.Title,
		Description: task.Description,
		Category:    task.Category,
		Deadline:    formatDeadline(task),
	}
	h.renderTaskForm(w, r, "Edit Task", task.ID, form, "")
}

func (h *TaskHandler) EditTask(w http.ResponseWriter, r *http.Request) {
	userID, taskID, ok := h.requestIDs(w, r)
	if !ok {
		return
	}

	form, err := parseTaskForm(r)
	if err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	if msg, ok := validateTaskForm(form); !ok {
		h.renderTaskForm(w, r, "Edit Task", taskID, form, msg)
		return
	}

	_, err = h.taskService.Update(r.Context(), taskID, userID, services.TaskInput(form))
	switch {
	case err == nil:
		web.SetFlash(w, "success", "Task updated successfully!")
		redirect(w, r, "/tasks")
	case errors.Is(err, services.ErrTitleRequired), errors.Is(err, services.ErrInvalidDate):
		h.renderTaskForm(w, r, "Edit Task", taskID, form, err.Error())
	default:
		h.taskError(w, r, err)
	}
}

func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	userID, taskID, ok := h.requestIDs(w, r)
	if !ok {
		return
	}

	if err := h.taskService.Delete(r.Context(), taskID, userID); err != nil {
		h.taskError(w, r, err)
		return
	}
	web.SetFlash(w, "success", "Task deleted successfully!")
	redirect(w, r, "/tasks")
}

func (h *TaskHandler) CompleteTask(w http.ResponseWriter, r *http.Request) {
	userID, taskID, ok := h.requestIDs(w, r)
	if !ok {
		return
	}

	if _, err := h.taskService.ToggleComplete(r.Context(), taskID, userID); err != nil {
		h.taskError(w, r, err)
		return
	}
	web.SetFlash(w, "success", "Task status updated!")
	redirect(w, r, "/tasks")
}

// requestIDs pulls the session user and the task id out of the request,
// writing the error response itself when either is missing.
func (h *TaskHandler) requestIDs(w http.ResponseWriter, r *http.Request) (userID, taskID int, ok bool) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		redirect(w, r, "/login")
		return 0, 0, false
	}

	taskID, err = strconv.Atoi(chi.URLParam(r, "taskID"))
	if err != nil || taskID < 1 {
		http.NotFound(w, r)
		return 0, 0, false
	}
	return userID, taskID, true
}

// taskError translates task-service failures: unknown ids are a 404,
// foreign tasks bounce back to the list with a notice.
func (h *TaskHandler) taskError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		http.NotFound(w, r)
	case errors.Is(err, services.ErrForbidden):
		web.SetFlash(w, "danger", "You can only modify your own tasks!")
		redirect(w, r, "/tasks")
	default:
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (h *TaskHandler) renderTaskForm(w http.ResponseWriter, r *http.Request, title string, editID int, form TaskForm, flashMsg string) {
	data := web.ViewData{
		Title:    title,
		Greeting: greeting(timeNowHour()),
		EditID:   editID,
		Form: web.FormValues{
			Title:       form.Title,
			Description: form.Description,
			Category:    form.Category,
			Deadline:    form.Deadline,
		},
	}
	if flashMsg != "" {
		data.Flash = &web.Flash{Category: "danger", Message: flashMsg}
	}
	h.renderer.Render(w, r, http.StatusOK, "task_form.html", data)
}

func parseTaskForm(r *http.Request) (TaskForm, error) {
	if err := r.ParseForm(); err != nil {
		return TaskForm{}, err
	}
	return TaskForm{
		Title:       strings.TrimSpace(r.PostFormValue("title")),
		Description: r.PostFormValue("description"),
		Category:    strings.TrimSpace(r.PostFormValue("category")),
		Deadline:    strings.TrimSpace(r.PostFormValue("deadline")),
	}, nil
}

func validateTaskForm(form TaskForm) (string, bool) {
	err := validate.Struct(form)
	if err == nil {
		return "", true
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		switch fieldErrs[0].Field() {
		case "Title":
			return services.ErrTitleRequired.Error(), false
		case "Deadline":
			return "Invalid date format. Please use YYYY-MM-DD.", false
		}
	}
	return "invalid input", false
}

func formatDeadline(task types.Task) string {
	if task.Deadline == nil {
		return ""
	}
	return task.Deadline.Format("2006-01-02")
}
