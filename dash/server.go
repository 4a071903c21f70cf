package dash

import (
	"bytes"
	"context"
	"html/template"
	"net/http"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	charts "github.com/midbel/titledash"
	"github.com/midbel/titledash/logger"
)

const (
	extSVG = ".svg"
	extPNG = ".png"
)

var ErrNotFound = errors.New("not found")

type Server struct {
	dash   *Dashboard
	logger *zap.SugaredLogger
	page   *template.Template
}

func NewServer(d *Dashboard, log *zap.SugaredLogger) *Server {
	if log == nil {
		log = logger.Named("server")
	}
	return &Server{
		dash:   d,
		logger: log,
		page:   template.Must(template.New("index").Parse(indexPage)),
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /charts/{name}", s.handleChart)
	mux.HandleFunc("POST /charts/{id}/select", s.handleSelect)
	mux.HandleFunc("POST /refresh", s.handleRefresh)
	return s.requestMiddleware(mux)
}

// ListenAndServe serves the dashboard until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()
	s.logger.Infow("dashboard listening", "addr", addr)
	select {
	case err := <-errc:
		return errors.Wrapf(err, "listen %s", addr)
	case <-ctx.Done():
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(sctx)
	}
}

type indexData struct {
	Charts   []indexChart
	Years    []int
	Year     int
	Select   string
	Genres   []string
	Selected string
}

type indexChart struct {
	Id    string
	State string
	SVG   template.HTML
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if str := r.URL.Query().Get("year"); r.URL.Query().Has("year") {
		var year int
		if str != "" {
			y, err := strconv.Atoi(str)
			if err != nil {
				s.writeError(w, r, errors.Wrapf(err, "year %q", str), http.StatusBadRequest)
				return
			}
			year = y
		}
		if err := s.dash.SelectYear(r.Context(), year); err != nil {
			s.writeError(w, r, err, http.StatusBadRequest)
			return
		}
	}
	data := indexData{
		Years:    s.dash.Years(),
		Year:     s.dash.Year(),
		Select:   YearSelect,
		Selected: s.dash.Selected(),
	}
	if m, ok := s.dash.Mount(ChartGenres); ok {
		for _, r := range m.Records() {
			data.Genres = append(data.Genres, r.Key)
		}
	}
	for _, m := range s.dash.Mounts() {
		c := indexChart{
			Id:    m.Id,
			State: m.State().String(),
		}
		if m.State() == charts.StateRendered {
			c.SVG = template.HTML(m.String())
		}
		data.Charts = append(data.Charts, c)
	}
	var buf bytes.Buffer
	if err := s.page.Execute(&buf, data); err != nil {
		s.writeError(w, r, err, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	var (
		name = r.PathValue("name")
		ext  = path.Ext(name)
		id   = strings.TrimSuffix(name, ext)
	)
	m, ok := s.dash.Mount(id)
	if !ok || (ext != extSVG && ext != extPNG) {
		s.writeError(w, r, errors.Wrapf(ErrNotFound, "chart %s", name), http.StatusNotFound)
		return
	}
	var buf bytes.Buffer
	switch ext {
	case extSVG:
		if err := m.Render(&buf); err != nil {
			s.writeError(w, r, err, http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "image/svg+xml")
	case extPNG:
		err := Snapshot(&buf, m.Spec, m.Records())
		if errors.Is(err, charts.ErrEmptyDataset) {
			s.writeError(w, r, errors.Wrapf(ErrNotFound, "chart %s: no data", id), http.StatusNotFound)
			return
		}
		if err != nil {
			s.writeError(w, r, err, http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "image/png")
	}
	w.Header().Set("Cache-Control", "no-store")
	w.Write(buf.Bytes())
}

// handleSelect changes the highlighted category of the genres chart. An empty
// category clears the selection.
func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	if id := r.PathValue("id"); id != ChartGenres {
		s.writeError(w, r, errors.Wrapf(ErrNotFound, "chart %s: no selection", id), http.StatusNotFound)
		return
	}
	var (
		cat = strings.TrimSpace(r.PostFormValue("category"))
		err error
	)
	if cat == "" {
		err = s.dash.ClearSelection()
	} else {
		err = s.dash.Select(cat)
	}
	if err != nil {
		s.writeError(w, r, err, http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if err := s.dash.Refresh(r.Context()); err != nil {
		s.writeError(w, r, err, http.StatusServiceUnavailable)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error, code int) {
	s.logger.Warnw("request failed",
		logger.FieldRequestID, w.Header().Get(headerRequestID),
		logger.FieldPath, r.URL.Path,
		logger.FieldStatus, code,
		logger.FieldError, err,
	)
	http.Error(w, http.StatusText(code), code)
}

const headerRequestID = "X-Request-Id"

type statusWriter struct {
	http.ResponseWriter
	code int
}

func (w *statusWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}

func (s *Server) requestMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(headerRequestID)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(headerRequestID, id)

		var (
			sw  = statusWriter{ResponseWriter: w, code: http.StatusOK}
			now = time.Now()
		)
		next.ServeHTTP(&sw, r)
		s.logger.Debugw("request served",
			logger.FieldRequestID, id,
			logger.FieldMethod, r.Method,
			logger.FieldPath, r.URL.Path,
			logger.FieldStatus, sw.code,
			logger.FieldDurationMS, time.Since(now).Milliseconds(),
		)
	})
}

const indexPage = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Titles dashboard</title>
<style>
body { font-family: sans-serif; margin: 1em; }
.grid { display: flex; flex-wrap: wrap; gap: 1em; }
.mount { border: 1px solid #ddd; padding: .5em; }
.mount.empty { color: #888; }
</style>
</head>
<body>
<form method="post" action="/refresh"><button type="submit">Refresh</button></form>
<form method="get" action="/">
<select id="{{.Select}}" name="year" onchange="this.form.submit()">
<option value="" {{if eq .Year 0}}selected{{end}}>--</option>
{{range .Years}}<option value="{{.}}" {{if eq . $.Year}}selected{{end}}>{{.}}</option>
{{end}}</select>
<noscript><button type="submit">Show</button></noscript>
</form>
{{if .Genres}}<form method="post" action="/charts/genres-chart/select">
<select name="category" onchange="this.form.submit()">
<option value="" {{if not .Selected}}selected{{end}}>Show all</option>
{{range .Genres}}<option value="{{.}}" {{if eq . $.Selected}}selected{{end}}>{{.}}</option>
{{end}}</select>
<noscript><button type="submit">Highlight</button></noscript>
</form>{{end}}
<div class="grid">
{{range .Charts}}<div id="{{.Id}}" class="mount {{.State}}">
{{if .SVG}}{{.SVG}}{{else}}<p>no data</p>{{end}}
</div>
{{end}}</div>
</body>
</html>
`
