package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/kirankamble1523/Task-Manager-App/internal/services"
	"github.com/kirankamble1523/Task-Manager-App/internal/web"
)

// DashboardHandler serves the landing page with task counts and a
// time-of-day greeting.
type DashboardHandler struct {
	taskService *services.TaskService
	renderer    *web.Renderer
	now         func() time.Time
}

func NewDashboardHandler(taskService *services.TaskService, renderer *web.Renderer) *DashboardHandler {
	return &DashboardHandler{
		taskService: taskService,
		renderer:    renderer,
		now:         time.Now,
	}
}

// DashboardRouter registers the dashboard route on the given router.
func DashboardRouter(r chi.Router, handler *DashboardHandler, authMiddleware func(http.Handler) http.Handler) {
	r.With(authMiddleware).Get("/", handler.Dashboard)
}

func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		redirect(w, r, "/login")
		return
	}

	counts, err := h.taskService.CountsForUser(r.Context(), userID)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.renderer.Render(w, r, http.StatusOK, "dashboard.html", web.ViewData{
		Title:    "Dashboard",
		Greeting: greeting(h.now().Hour()),
		Counts:   counts,
	})
}

// greeting maps a local hour to a salutation.
func greeting(hour int) string {
	switch {
	case hour >= 5 && hour < 12:
		return "Good Morning"
	case hour >= 12 && hour < 17:
		return "Good Afternoon"
	case hour >= 17 && hour < 21:
		return "Good Evening"
	default:
		return "Good Night"
	}
}
