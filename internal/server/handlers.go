package server

import (
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/planbook/pkg/document"
	"github.com/matzehuels/planbook/pkg/errors"
	"github.com/matzehuels/planbook/pkg/pipeline"
)

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body>
<h1>{{.Title}}</h1>
<p>{{len .Pages}} pages, built {{.Built.Format "15:04:05"}}.</p>
{{if .Outline}}<h2>Outline</h2>
<ul>{{range .Outline}}
<li style="margin-left: {{.Indent}}em"><a href="/pages/{{.Page}}">{{.Title}}</a> ({{.Page}})</li>{{end}}
</ul>{{end}}
<h2>Pages</h2>
<ol>{{range .Pages}}
<li><a href="/pages/{{.Number}}">{{.Key}}</a>{{if .Label}} {{.Label}}{{end}}</li>{{end}}
</ol>
</body>
</html>
`))

type outlineLine struct {
	Title  string
	Page   int
	Indent int
}

// current returns the current build or writes 503.
func (s *Server) current(w http.ResponseWriter) *pipeline.Result {
	res := s.Result()
	if res == nil {
		http.Error(w, "no build yet", http.StatusServiceUnavailable)
	}
	return res
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	res := s.current(w)
	if res == nil {
		return
	}
	s.mu.RLock()
	built := s.built
	s.mu.RUnlock()

	var outline []outlineLine
	if res.Build != nil && res.Build.Outline != nil {
		res.Build.Outline.Walk(func(it *document.OutlineItem, depth int) {
			outline = append(outline, outlineLine{Title: it.Title, Page: it.Page, Indent: depth * 2})
		})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := indexTemplate.Execute(w, struct {
		Title   string
		Built   time.Time
		Pages   []*document.RenderedPage
		Outline []outlineLine
	}{res.Document.Title, built, res.Pages, outline})
	if err != nil {
		s.logger.Error("render index", "error", err)
	}
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(chi.URLParam(r, "n"))
	if err != nil {
		http.Error(w, "page number must be an integer", http.StatusBadRequest)
		return
	}
	res := s.current(w)
	if res == nil {
		return
	}
	page := res.Page(n)
	if page == nil {
		http.Error(w, "no page "+strconv.Itoa(n), http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write(page.Data)
}

func (s *Server) handleDest(w http.ResponseWriter, r *http.Request) {
	key, err := url.PathUnescape(chi.URLParam(r, "*"))
	if err != nil || key == "" {
		http.Error(w, "invalid destination key", http.StatusBadRequest)
		return
	}
	res := s.current(w)
	if res == nil {
		return
	}
	dest := res.Build.Registry.Lookup(key)
	if dest == nil {
		s.logger.Debug("unknown destination", "key", key)
		http.Error(w, "unknown destination "+strconv.Quote(key), http.StatusNotFound)
		return
	}
	http.Redirect(w, r, "/pages/"+strconv.Itoa(dest.Page), http.StatusFound)
}

func (s *Server) handleManifest(w http.ResponseWriter, r *http.Request) {
	res := s.current(w)
	if res == nil {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(res.Artifacts[pipeline.FormatJSON])
}

func (s *Server) handleRebuild(w http.ResponseWriter, r *http.Request) {
	if err := s.Rebuild(r.Context()); err != nil {
		s.logger.Error("rebuild failed", "error", err)
		status := http.StatusInternalServerError
		if errors.Is(err, errors.ErrCodeInvalidConfig) {
			status = http.StatusUnprocessableEntity
		}
		http.Error(w, errors.UserMessage(err), status)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
