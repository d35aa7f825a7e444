// Package httpapi serves the shared CleanOS state as a local JSON API.
package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cleanos-ai/cleanos/internal/aggregate"
	"github.com/cleanos-ai/cleanos/internal/app"
	"github.com/cleanos-ai/cleanos/internal/models"
	"github.com/cleanos-ai/cleanos/internal/store"
	"github.com/cleanos-ai/cleanos/internal/telemetry"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 16

// StateResponse is the JSON form of a store snapshot.
type StateResponse struct {
	Theme                  store.Theme                    `json:"theme"`
	DarkPalette            bool                           `json:"dark_palette"`
	CurrentView            store.View                     `json:"current_view"`
	SidebarCollapsed       bool                           `json:"sidebar_collapsed"`
	ScannedFiles           []models.FileRecord            `json:"scanned_files"`
	SelectedFiles          store.Selection                `json:"selected_files"`
	ScanProgress           *models.ScanProgress           `json:"scan_progress,omitempty"`
	IsScanning             bool                           `json:"is_scanning"`
	SystemInfo             *models.SystemSnapshot         `json:"system_info,omitempty"`
	StorageBreakdown       *models.StorageBreakdown       `json:"storage_breakdown,omitempty"`
	DockerInfo             *models.ContainerInventory     `json:"docker_info,omitempty"`
	PackageCaches          []models.PackageCacheEntry     `json:"package_caches"`
	CleanupRecommendations []models.CleanupRecommendation `json:"cleanup_recommendations"`
	Providers              []models.ProviderStatus        `json:"providers"`
	ActiveProvider         *string                        `json:"active_provider"`
}

func stateResponse(st *store.State) StateResponse {
	return StateResponse{
		Theme:                  st.Theme,
		DarkPalette:            st.DarkPalette,
		CurrentView:            st.CurrentView,
		SidebarCollapsed:       st.SidebarCollapsed,
		ScannedFiles:           orEmpty(st.ScannedFiles),
		SelectedFiles:          st.SelectedFiles,
		ScanProgress:           st.ScanProgress,
		IsScanning:             st.IsScanning,
		SystemInfo:             st.SystemInfo,
		StorageBreakdown:       st.StorageBreakdown,
		DockerInfo:             st.DockerInfo,
		PackageCaches:          orEmpty(st.PackageCaches),
		CleanupRecommendations: orEmpty(st.CleanupRecommendations),
		Providers:              orEmpty(st.Providers),
		ActiveProvider:         st.ActiveProvider,
	}
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// ActiveProviderRequest is the body of PUT /api/active-provider. An empty
// id clears the active provider.
type ActiveProviderRequest struct {
	ID string `json:"id"`
}

// CatalogRefreshResponse reports the outcome of a catalog refresh.
type CatalogRefreshResponse struct {
	Models int    `json:"models"`
	State  string `json:"state"`
}

type server struct {
	app       *app.App
	telemetry telemetry.Client
}

// NewMux builds the router over a. origins lists the allowed CORS origins;
// with none, no CORS headers are sent.
func NewMux(a *app.App, tc telemetry.Client, origins []string) http.Handler {
	s := &server{app: a, telemetry: tc}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger)
	r.Use(MetricsMiddleware)
	if len(origins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: origins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
	}
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/state", s.getState)
		r.Get("/aggregates", s.getAggregates)
		r.Get("/providers", s.getProviders)
		r.Post("/catalog/refresh", s.refreshCatalog)
		r.Post("/files/{id}/toggle", s.toggleFile)
		r.Post("/files/select-all", s.selectAll)
		r.Post("/files/deselect-all", s.deselectAll)
		r.Put("/active-provider", s.setActiveProvider)
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	return r
}

func (s *server) getState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, stateResponse(s.app.Store.Snapshot()))
}

func (s *server) getAggregates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, aggregate.Summarize(s.app.Store.Snapshot()))
}

func (s *server) getProviders(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"providers": s.app.Directory.ProvidersWithModels(r.Context()),
		"status":    orEmpty(s.app.Store.Snapshot().Providers),
		"catalog":   s.app.Catalog.State().String(),
	})
}

func (s *server) refreshCatalog(w http.ResponseWriter, r *http.Request) {
	descs, err := s.app.Catalog.Refresh(r.Context())
	s.telemetry.TrackCatalogRefreshed(len(descs), err == nil)
	if err != nil {
		logError(r, err, "catalog refresh")
		writeJSONError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, CatalogRefreshResponse{
		Models: len(descs),
		State:  s.app.Catalog.State().String(),
	})
}

func (s *server) toggleFile(w http.ResponseWriter, r *http.Request) {
	s.app.Store.ToggleFileSelection(chi.URLParam(r, "id"))
	s.writeSelection(w)
}

func (s *server) selectAll(w http.ResponseWriter, r *http.Request) {
	s.app.Store.SelectAllFiles()
	s.writeSelection(w)
}

func (s *server) deselectAll(w http.ResponseWriter, r *http.Request) {
	s.app.Store.DeselectAllFiles()
	s.writeSelection(w)
}

func (s *server) writeSelection(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, map[string]any{
		"selected_files": s.app.Store.Snapshot().SelectedFiles,
	})
}

func (s *server) setActiveProvider(w http.ResponseWriter, r *http.Request) {
	ct := r.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req ActiveProviderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := s.app.SetActiveProvider(r.Context(), req.ID); err != nil {
		logError(r, err, "set active provider")
		writeJSONError(w, statusFor(err), err.Error())
		return
	}
	s.telemetry.TrackSettingsChanged("default_provider")
	writeJSON(w, http.StatusOK, map[string]any{
		"active_provider": s.app.Store.Snapshot().ActiveProvider,
	})
}
