package web

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/kirankamble1523/Task-Manager-App/types"
)

//go:embed templates/*.html
var templateFS embed.FS

const baseTemplate = "base.html"

// ViewData is the bag of named values handed to a page template.
type ViewData struct {
	Title    string
	Greeting string
	Flash    *Flash
	Counts   types.TaskCounts
	Tasks    []types.Task
	Task     *types.Task
	Form     FormValues
	EditID   int
}

// FormValues echoes submitted task-form fields back into the template so
// a validation failure does not wipe the user's input.
type FormValues struct {
	Title       string
	Description string
	Category    string
	Deadline    string
}

// Renderer renders embedded page templates over a shared base layout.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses all embedded templates once at startup.
func NewRenderer() (*Renderer, error) {
	entries, err := templateFS.ReadDir("templates")
	if err != nil {
		return nil, err
	}

	pages := make(map[string]*template.Template)
	for _, entry := range entries {
		name := entry.Name()
		if name == baseTemplate {
			continue
		}
		tmpl, err := template.ParseFS(templateFS, "templates/"+baseTemplate, "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		pages[name] = tmpl
	}
	return &Renderer{pages: pages}, nil
}

// Render writes a page. The pending flash, if any, is consumed into the
// view data automatically.
func (r *Renderer) Render(w http.ResponseWriter, req *http.Request, status int, page string, data ViewData) {
	tmpl, ok := r.pages[page]
	if !ok {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	// Consume the pending cookie unconditionally so a notice queued by an
	// earlier redirect cannot resurface on a later page when the handler
	// supplies its own flash.
	pending := PopFlash(w, req)
	if data.Flash == nil {
		data.Flash = pending
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, baseTemplate, data); err != nil {
		// Headers are already out; nothing useful left to send.
		return
	}
}
