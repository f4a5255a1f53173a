package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/kirankamble1523/Task-Manager-App/internal/services"
	"github.com/kirankamble1523/Task-Manager-App/internal/store"
	"github.com/kirankamble1523/Task-Manager-App/internal/web"
	"github.com/kirankamble1523/Task-Manager-App/types"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	users  map[int]types.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int]types.User)}
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int) (types.User, error) {
	user, ok := r.users[id]
	if !ok {
		return types.User{}, store.ErrNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (types.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			return user, nil
		}
	}
	return types.User{}, store.ErrNotFound
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (types.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return types.User{}, store.ErrNotFound
}

func (r *fakeUserRepo) Create(_ context.Context, user types.User) (types.User, error) {
	for _, existing := range r.users {
		if existing.Username == user.Username {
			return types.User{}, store.ErrDuplicateUsername
		}
		if existing.Email == user.Email {
			return types.User{}, store.ErrDuplicateEmail
		}
	}
	r.nextID++
	user.ID = r.nextID
	r.users[user.ID] = user
	return user, nil
}

type fakeTaskRepo struct {
	tasks  map[int]types.Task
	nextID int
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[int]types.Task)}
}

func (r *fakeTaskRepo) ListByUser(_ context.Context, userID int) ([]types.Task, error) {
	tasks := make([]types.Task, 0)
	for id := 1; id <= r.nextID; id++ {
		if task, ok := r.tasks[id]; ok && task.UserID == userID {
			tasks = append(tasks, task)
		}
	}
	return tasks, nil
}

func (r *fakeTaskRepo) CountByUser(_ context.Context, userID int) (total, completed int, err error) {
	for _, task := range r.tasks {
		if task.UserID != userID {
			continue
		}
		total++
		if task.IsCompleted {
			completed++
		}
	}
	return total, completed, nil
}

func (r *fakeTaskRepo) Get(_ context.Context, id int) (types.Task, error) {
	task, ok := r.tasks[id]
	if !ok {
		return types.Task{}, store.ErrNotFound
	}
	return task, nil
}

func (r *fakeTaskRepo) Create(_ context.Context, task types.Task) (types.Task, error) {
	r.nextID++
	task.ID = r.nextID
	r.tasks[task.ID] = task
	return task, nil
}

func (r *fakeTaskRepo) Update(_ context.Context, task types.Task) (types.Task, error) {
	if _, ok := r.tasks[task.ID]; !ok {
		return types.Task{}, store.ErrNotFound
	}
	r.tasks[task.ID] = task
	return task, nil
}

func (r *fakeTaskRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.tasks[id]; !ok {
		return store.ErrNotFound
	}
	delete(r.tasks, id)
	return nil
}

type testApp struct {
	router   *chi.Mux
	userRepo *fakeUserRepo
	taskRepo *fakeTaskRepo
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	renderer, err := web.NewRenderer()
	require.NoError(t, err)

	userRepo := newFakeUserRepo()
	taskRepo := newFakeTaskRepo()
	userService := services.NewUserService(userRepo)
	taskService := services.NewTaskService(taskRepo)
	sessions := NewSessionManager("test-secret")

	router := chi.NewRouter()
	router.Get("/healthz", Healthz)
	AuthRouter(router, NewAuthHandler(userService, sessions, renderer))
	DashboardRouter(router, NewDashboardHandler(taskService, renderer), sessions.RequireAuth)
	TaskRouter(router, NewTaskHandler(taskService, renderer), sessions.RequireAuth)

	return &testApp{
		router:   router,
		userRepo: userRepo,
		taskRepo: taskRepo,
	}
}

func (app *testApp) get(path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	app.router.ServeHTTP(rec, req)
	return rec
}

func (app *testApp) postForm(path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	app.router.ServeHTTP(rec, req)
	return rec
}

// signUp registers and logs in a user, returning the session cookie.
func (app *testApp) signUp(t *testing.T, username, email, password string) *http.Cookie {
	t.Helper()

	rec := app.postForm("/register", url.Values{
		"username": {username},
		"email":    {email},
		"password": {password},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/login", rec.Header().Get("Location"))

	rec = app.postForm("/login", url.Values{
		"username": {username},
		"password": {password},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/", rec.Header().Get("Location"))

	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == "session" && cookie.Value != "" {
			return cookie
		}
	}
	t.Fatal("login response did not set a session cookie")
	return nil
}
