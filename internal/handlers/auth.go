package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/kirankamble1523/Task-Manager-App/internal/services"
	"github.com/kirankamble1523/Task-Manager-App/internal/web"
)

// AuthHandler serves the register, login, and logout pages.
type AuthHandler struct {
	userService *services.UserService
	sessions    *SessionManager
	renderer    *web.Renderer
}

func NewAuthHandler(userService *services.UserService, sessions *SessionManager, renderer *web.Renderer) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		sessions:    sessions,
		renderer:    renderer,
	}
}

// AuthRouter registers the account routes on the given router.
func AuthRouter(r chi.Router, handler *AuthHandler) {
	anonymous := handler.sessions.RedirectIfAuthenticated
	r.With(anonymous).Get("/register", handler.RegisterPage)
	r.With(anonymous).Post("/register", handler.Register)
	r.With(anonymous).Get("/login", handler.LoginPage)
	r.With(anonymous).Post("/login", handler.Login)
	r.With(handler.sessions.RequireAuth).Get("/logout", handler.Logout)
}

// RegisterForm carries the registration fields. Uniqueness and the
// password policy are the service's concern; the boundary only requires
// that every field is present.
type RegisterForm struct {
	Username string `validate:"required"`
	Email    string `validate:"required"`
	Password string `validate:"required"`
}

type LoginForm struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

func (h *AuthHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, r, http.StatusOK, "register.html", web.ViewData{Title: "Register"})
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	form := RegisterForm{
		Username: strings.TrimSpace(r.PostFormValue("username")),
		Email:    strings.TrimSpace(r.PostFormValue("email")),
		Password: r.PostFormValue("password"),
	}
	if err := validate.Struct(form); err != nil {
		web.SetFlash(w, "danger", "Please fill in a username, an email, and a password.")
		redirect(w, r, "/register")
		return
	}

	_, err := h.userService.Register(r.Context(), form.Username, form.Email, form.Password)
	switch {
	case err == nil:
		web.SetFlash(w, "success", "Registration successful! Please login.")
		redirect(w, r, "/login")
	case errors.Is(err, services.ErrWeakPassword):
		web.SetFlash(w, "danger", "Password must be at least 8 characters long and contain uppercase, lowercase, and numbers.")
		redirect(w, r, "/register")
	case errors.Is(err, services.ErrUsernameTaken):
		web.SetFlash(w, "danger", "Username already taken. Please choose another.")
		redirect(w, r, "/register")
	case errors.Is(err, services.ErrEmailTaken):
		web.SetFlash(w, "danger", "Email already registered. Please use another.")
		redirect(w, r, "/register")
	default:
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, r, http.StatusOK, "login.html", web.ViewData{Title: "Login"})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	form := LoginForm{
		Username: strings.TrimSpace(r.PostFormValue("username")),
		Password: r.PostFormValue("password"),
	}
	if err := validate.Struct(form); err != nil {
		web.SetFlash(w, "danger", "Invalid username or password.")
		redirect(w, r, "/login")
		return
	}

	user, err := h.userService.Authenticate(r.Context(), form.Username, form.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			web.SetFlash(w, "danger", "Invalid username or password.")
			redirect(w, r, "/login")
			return
		}
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if err := h.sessions.SignIn(w, user); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	web.SetFlash(w, "success", fmt.Sprintf("Welcome back, %s!", user.Username))
	redirect(w, r, "/")
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.SignOut(w)
	web.SetFlash(w, "info", "You have been logged out.")
	redirect(w, r, "/login")
}
