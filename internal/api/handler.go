package api

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/sensordonut/sensordonut/internal/card"
	"github.com/sensordonut/sensordonut/internal/receiver"
	"github.com/sensordonut/sensordonut/internal/registry"
	"github.com/sensordonut/sensordonut/internal/render"
	"github.com/sensordonut/sensordonut/internal/store"
	"github.com/sensordonut/sensordonut/internal/view"
)

const errNoCard = "no card loaded"

// Options wires the router to its collaborators. Store and Cards are
// required; the rest are optional.
type Options struct {
	Store    *store.Store
	Cards    *card.Holder
	Registry *registry.Registry

	// Auth wraps every /api/v1 route. Nil means no authentication.
	Auth func(http.Handler) http.Handler

	// Hub serves the WebSocket feed at /ws. Nil disables it.
	Hub http.Handler

	// CORSOrigins lists allowed origins. Empty allows any origin.
	CORSOrigins []string
}

// Handler serves the card, entity state and registry endpoints.
type Handler struct {
	store    *store.Store
	cards    *card.Holder
	registry *registry.Registry
	receiver *receiver.Receiver
	liveURL  string
	now      func() time.Time
}

// New creates the router with all routes and middleware registered.
func New(opts Options) http.Handler {
	h := &Handler{
		store:    opts.Store,
		cards:    opts.Cards,
		registry: opts.Registry,
		receiver: receiver.New(opts.Store),
		now:      time.Now,
	}
	if opts.Hub != nil {
		h.liveURL = "/ws"
	}
	return h.routes(opts)
}

func (h *Handler) routes(opts Options) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	origins := []string{"*"}
	if len(opts.CORSOrigins) > 0 {
		origins = opts.CORSOrigins
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-API-Key", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		jsonErr(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Get("/healthz", h.health)
	r.Get("/", h.cardHTML)
	r.Get("/card", h.cardHTML)
	if opts.Hub != nil {
		r.Method(http.MethodGet, "/ws", opts.Hub)
	}

	r.Route("/api/v1", func(r chi.Router) {
		if opts.Auth != nil {
			r.Use(opts.Auth)
		}
		r.Get("/card", h.cardJSON)
		r.Get("/card.svg", h.cardSVG)
		r.Get("/card/diagnostics", h.diagnostics)
		r.Get("/states", h.listStates)
		r.Get("/states/{entity}", h.getState)
		r.Method(http.MethodPost, "/states", h.receiver)
		r.Get("/cards", h.listCards)
	})
	return r
}

// --- route handlers ---------------------------------------------------------

// health returns GET /healthz.
func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	jsonResp(w, http.StatusOK, HealthResponse{
		Status:      "ok",
		CardLoaded:  h.cards.Load() != nil,
		EntityCount: h.store.Count(),
	})
}

// BuildCard computes the render model of the active card against the live
// store contents. ok is false when no card is loaded.
func BuildCard(st *store.Store, cards *card.Holder) (m render.Model, ok bool) {
	c := cards.Load()
	if c == nil {
		return render.Model{}, false
	}
	return render.Compute(*c, st.Snapshot()), true
}

// Revision identifies what BuildCard would currently render. It moves when
// the store contents change or a card is (re)loaded, and stays put otherwise.
func Revision(st *store.Store, cards *card.Holder) uint64 {
	return st.Version() + cards.Generation()
}

// cardJSON returns GET /api/v1/card.
func (h *Handler) cardJSON(w http.ResponseWriter, _ *http.Request) {
	m, ok := BuildCard(h.store, h.cards)
	if !ok {
		jsonErr(w, http.StatusServiceUnavailable, errNoCard)
		return
	}
	jsonResp(w, http.StatusOK, CardResponse{
		Model:       m,
		GeneratedAt: h.now().UTC().Format(time.RFC3339),
	})
}

// cardSVG returns GET /api/v1/card.svg.
func (h *Handler) cardSVG(w http.ResponseWriter, _ *http.Request) {
	m, ok := BuildCard(h.store, h.cards)
	if !ok {
		jsonErr(w, http.StatusServiceUnavailable, errNoCard)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write([]byte(view.SVG(m)))
}

// cardHTML returns GET / and GET /card.
func (h *Handler) cardHTML(w http.ResponseWriter, _ *http.Request) {
	rev := Revision(h.store, h.cards)
	m, ok := BuildCard(h.store, h.cards)
	if !ok {
		jsonErr(w, http.StatusServiceUnavailable, errNoCard)
		return
	}
	var buf bytes.Buffer
	if err := view.LiveHTML(&buf, m, h.liveURL, rev); err != nil {
		slog.Error("api: render card page", "err", err)
		jsonErr(w, http.StatusInternalServerError, "render failed")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// diagnostics returns GET /api/v1/card/diagnostics.
func (h *Handler) diagnostics(w http.ResponseWriter, _ *http.Request) {
	c := h.cards.Load()
	if c == nil {
		jsonErr(w, http.StatusServiceUnavailable, errNoCard)
		return
	}
	jsonResp(w, http.StatusOK, computeDiagnostics(c, h.store, h.now()))
}

// listStates returns GET /api/v1/states, live entities only.
func (h *Handler) listStates(w http.ResponseWriter, _ *http.Request) {
	entries := h.store.List()
	out := make([]StateResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toStateResponse(e))
	}
	jsonResp(w, http.StatusOK, out)
}

// getState returns GET /api/v1/states/{entity}.
func (h *Handler) getState(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "entity")
	if h.store.Snapshot().Lookup(id) == nil {
		// Unknown and stale entities are both not found.
		jsonErr(w, http.StatusNotFound, "entity not found")
		return
	}
	e, _ := h.store.Get(id)
	jsonResp(w, http.StatusOK, toStateResponse(e))
}

// listCards returns GET /api/v1/cards.
func (h *Handler) listCards(w http.ResponseWriter, _ *http.Request) {
	if h.registry == nil {
		jsonResp(w, http.StatusOK, []registry.CardInfo{})
		return
	}
	jsonResp(w, http.StatusOK, h.registry.List())
}

// --- helpers ----------------------------------------------------------------

func toStateResponse(e *store.Entry) StateResponse {
	v := e.Value
	resp := StateResponse{
		EntityID:          v.EntityID,
		State:             v.State,
		UnitOfMeasurement: v.UnitOfMeasurement,
		FriendlyName:      v.FriendlyName,
		Icon:              v.Icon,
		ReceivedAt:        e.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if !v.LastUpdated.IsZero() {
		resp.LastUpdated = v.LastUpdated.UTC().Format(time.RFC3339)
	}
	return resp
}

// requestLogger logs one line per request through slog.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		slog.Debug("api: request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func jsonResp(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func jsonErr(w http.ResponseWriter, code int, msg string) {
	jsonResp(w, code, errorResponse{Error: msg})
}
