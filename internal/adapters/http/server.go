// Package http exposes the render pipeline over a JSON API: clients post
// page fragments, the server drives a view render for the location and
// persists the resulting restoration state.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/mitchellh/mapstructure"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pagelift/pagelift/pkg/dom"
	"github.com/pagelift/pagelift/pkg/ports"
	"github.com/pagelift/pagelift/pkg/snapshot"
	"github.com/pagelift/pagelift/pkg/view"
)

// Server drives per-location views and persists restoration state.
type Server struct {
	store    ports.PageStore
	logger   *slog.Logger
	metrics  *metrics
	sessions *sessionRegistry
}

// NewHandler creates the render API handler.
func NewHandler(store ports.PageStore, logger *slog.Logger) http.Handler {
	reg := prometheus.NewRegistry()
	s := &Server{
		store:    store,
		logger:   logger,
		metrics:  newMetrics(reg),
		sessions: newSessionRegistry(),
	}

	r := chi.NewRouter()
	r.Post("/render", s.handleRender)
	r.Get("/pages", s.handleListPages)
	r.Get("/page", s.handleGetPage)
	r.Delete("/page", s.handleDeletePage)
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	return r
}

type renderRequest struct {
	Location string         `json:"location"`
	HTML     string         `json:"html"`
	Options  map[string]any `json:"options,omitempty"`
}

// visitOptions is the loosely-typed options payload, decoded via
// mapstructure so clients can omit anything.
type visitOptions struct {
	Preview        bool   `mapstructure:"preview"`
	RenderMethod   string `mapstructure:"render_method"`
	VisitDirection string `mapstructure:"visit_direction"`
}

type renderResponse struct {
	Rendered bool   `json:"rendered"`
	Location string `json:"location"`
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var body renderRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if body.Location == "" || body.HTML == "" {
		http.Error(w, "location and html are required", http.StatusBadRequest)
		return
	}

	var opts visitOptions
	if err := mapstructure.Decode(body.Options, &opts); err != nil {
		http.Error(w, fmt.Sprintf("Invalid options: %v", err), http.StatusBadRequest)
		return
	}

	incoming, err := dom.ParseFragment(body.HTML)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid html: %v", err), http.StatusBadRequest)
		return
	}

	err = s.sessions.with(body.Location, func() (*session, error) {
		return s.newSession(body.Location)
	}, func(sess *session) error {
		return s.renderInto(r.Context(), sess, body.Location, incoming, opts)
	})
	if err != nil {
		s.logger.Error("render failed", "location", body.Location, "err", err)
		http.Error(w, fmt.Sprintf("Render error: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, renderResponse{Rendered: true, Location: body.Location})
}

func (s *Server) newSession(location string) (*session, error) {
	doc, err := dom.ParseFragment("<html><body></body></html>")
	if err != nil {
		return nil, err
	}
	v := view.New(doc.Body(), &serverDelegate{server: s, location: location},
		view.WithLogger(s.logger),
		view.WithHooks(s.metrics.hooks()),
	)
	return &session{doc: doc, view: v}, nil
}

func (s *Server) renderInto(ctx context.Context, sess *session, location string, incoming *dom.Document, opts visitOptions) error {
	renderer := newPageRenderer(sess.doc.Body(), incoming, opts)

	if opts.VisitDirection != "" {
		sess.view.MarkVisitDirection(opts.VisitDirection)
		defer sess.view.UnmarkVisitDirection()
	}

	start := time.Now()
	err := sess.view.Render(ctx, renderer)
	s.metrics.duration.Observe(time.Since(start).Seconds())
	if err != nil {
		return err
	}

	sess.view.ScrollToAnchorFromLocation(location)

	body, err := sess.doc.HTML()
	if err != nil {
		return fmt.Errorf("failed to serialize page: %w", err)
	}
	x, y := sess.doc.Viewport().Position()
	return s.store.Save(ctx, location, &ports.PageState{
		Location:   location,
		Body:       body,
		ScrollX:    x,
		ScrollY:    y,
		RenderedAt: time.Now().UTC(),
	})
}

func (s *Server) handleListPages(w http.ResponseWriter, r *http.Request) {
	locations, err := s.store.List(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("List error: %v", err), http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]any{"locations": locations})
}

func (s *Server) handleGetPage(w http.ResponseWriter, r *http.Request) {
	location := r.URL.Query().Get("location")
	if location == "" {
		http.Error(w, "location is required", http.StatusBadRequest)
		return
	}

	page, err := s.store.Load(r.Context(), location)
	if err == ports.ErrPageNotFound {
		http.Error(w, "Page not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, fmt.Sprintf("Load error: %v", err), http.StatusInternalServerError)
		return
	}
	writeJSON(w, page)
}

func (s *Server) handleDeletePage(w http.ResponseWriter, r *http.Request) {
	location := r.URL.Query().Get("location")
	if location == "" {
		http.Error(w, "location is required", http.StatusBadRequest)
		return
	}

	if err := s.store.Delete(r.Context(), location); err != nil {
		http.Error(w, fmt.Sprintf("Delete error: %v", err), http.StatusInternalServerError)
		return
	}
	s.sessions.drop(location)
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// Headers are gone; nothing to do beyond noting it.
		slog.Default().Debug("response encode failed", "err", err)
	}
}

// serverDelegate is the navigation controller for server-driven sessions:
// renders always proceed immediately, and invalidation drops the stored
// restoration state for the location.
type serverDelegate struct {
	server   *Server
	location string
}

func (d *serverDelegate) AllowsImmediateRender(snap *snapshot.Snapshot, opts view.RenderOptions) bool {
	return true
}

func (d *serverDelegate) ViewRenderedSnapshot(snap *snapshot.Snapshot, isPreview bool, renderMethod string) {
	d.server.logger.Debug("page rendered",
		"location", d.location,
		"preview", isPreview,
		"render_method", renderMethod,
	)
}

func (d *serverDelegate) PreloadOnLoadLinksForView(root *dom.Element) {
	count := 0
	for _, el := range root.Descendants() {
		if el.TagName() == "a" && el.HasAttr("data-preload") {
			count++
		}
	}
	if count > 0 {
		d.server.logger.Debug("preload candidates", "location", d.location, "count", count)
	}
}

func (d *serverDelegate) ViewInvalidated(reason string) {
	d.server.logger.Warn("view invalidated", "location", d.location, "reason", reason)
	if err := d.server.store.Delete(context.Background(), d.location); err != nil {
		d.server.logger.Warn("failed to drop page state", "location", d.location, "err", err)
	}
	d.server.sessions.drop(d.location)
}
