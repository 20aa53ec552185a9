package web

import (
	"embed"
	"html/template"
	"io/fs"
	"log"
	"net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

// Handler serves the server-rendered pages. All state lives behind the JSON
// API; the pages only carry the markup and the scripts that call it.
type Handler struct {
	templates *template.Template
}

func NewHandler() *Handler {
	return &Handler{
		templates: template.Must(template.ParseFS(templateFS, "templates/*.html")),
	}
}

func (h *Handler) render(w http.ResponseWriter, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("Error rendering template %s: %v", name, err)
	}
}

func (h *Handler) HandleHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/dashboard", http.StatusFound)
}

func (h *Handler) HandleDashboard(w http.ResponseWriter, _ *http.Request) {
	h.render(w, "dashboard.html", nil)
}

func (h *Handler) HandleList(w http.ResponseWriter, _ *http.Request) {
	h.render(w, "list.html", nil)
}

func (h *Handler) HandleLogin(w http.ResponseWriter, _ *http.Request) {
	h.render(w, "login.html", nil)
}

func (h *Handler) HandleRegister(w http.ResponseWriter, _ *http.Request) {
	h.render(w, "register.html", nil)
}

func (h *Handler) HandleListDetail(w http.ResponseWriter, r *http.Request) {
	h.render(w, "list_detail.html", map[string]string{"ListID": r.PathValue("listID")})
}

// StaticHandler serves the embedded assets under /static/.
func StaticHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}
