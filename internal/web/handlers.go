package web

import (
	"bytes"
	"encoding/json"
	"html/template"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/Zolinad/dsportfolio/internal/metrics"
	"github.com/Zolinad/dsportfolio/internal/portfolio"
)

type navItem struct {
	Slug   string
	Title  string
	Icon   string
	Active bool
}

type pageData struct {
	Author  portfolio.Contact
	Nav     []navItem
	View    portfolio.PageView
	DocHTML template.HTML
}

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/pages/"+portfolio.Pages()[0].Slug(), http.StatusFound)
}

func (s *Server) resolve(w http.ResponseWriter, r *http.Request) (portfolio.Page, bool) {
	slug := mux.Vars(r)["slug"]
	p, err := portfolio.ParsePage(slug)
	if err != nil {
		http.Error(w, "page not found", http.StatusNotFound)
		return 0, false
	}
	return p, true
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, p portfolio.Page, format string) (portfolio.PageView, bool) {
	view, err := s.app.Render(r.Context(), p, r.URL.Query())
	if err != nil {
		metrics.RenderErrors.WithLabelValues(p.Slug()).Inc()
		s.log.Errorw("render failed", "id", RequestID(r.Context()), "page", p.Slug(), "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return portfolio.PageView{}, false
	}
	metrics.PageRenders.WithLabelValues(p.Slug(), format).Inc()
	return view, true
}

func (s *Server) page(w http.ResponseWriter, r *http.Request) {
	p, ok := s.resolve(w, r)
	if !ok {
		return
	}
	view, ok := s.render(w, r, p, "html")
	if !ok {
		return
	}
	data := pageData{Author: portfolio.Author, View: view, DocHTML: template.HTML(view.Doc.HTML)}
	for _, np := range portfolio.Pages() {
		data.Nav = append(data.Nav, navItem{Slug: np.Slug(), Title: np.Title(), Icon: np.Icon(), Active: np == p})
	}

	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		metrics.RenderErrors.WithLabelValues(p.Slug()).Inc()
		s.log.Errorw("template execution failed", "id", RequestID(r.Context()), "page", p.Slug(), "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (s *Server) pageJSON(w http.ResponseWriter, r *http.Request) {
	p, ok := s.resolve(w, r)
	if !ok {
		return
	}
	view, ok := s.render(w, r, p, "json")
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, view)
}

type pageSummary struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
	Icon  string `json:"icon"`
}

func (s *Server) listPages(w http.ResponseWriter, r *http.Request) {
	var out []pageSummary
	for _, p := range portfolio.Pages() {
		out = append(out, pageSummary{Slug: p.Slug(), Title: p.Title(), Icon: p.Icon()})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
