package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hustcer/crowbook/internal/log"
	"github.com/hustcer/crowbook/pkg/options"
	"github.com/hustcer/crowbook/pkg/schema"
	"github.com/rs/zerolog"
)

// Source provides the option store to serve. The returned store is only
// read, never modified.
type Source interface {
	Current() *options.Store
}

// StaticSource serves a store that never changes.
type StaticSource struct {
	Store *options.Store
}

// Current returns the wrapped store.
func (s StaticSource) Current() *options.Store {
	return s.Store
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	// source provides the current option store
	source Source
	// version is the application version
	version string
	// gitCommit is the git commit hash of the build
	gitCommit string
	// buildTime is the time when the application was built
	buildTime string
	// goVersion is the Go version used to build the application
	goVersion string

	logger zerolog.Logger
}

// NewHandler creates a new Handler instance
func NewHandler(source Source, version, gitCommit, buildTime, goVersion string) *Handler {
	return &Handler{
		source:    source,
		version:   version,
		gitCommit: gitCommit,
		buildTime: buildTime,
		goVersion: goVersion,
		logger:    log.WithComponent("api"),
	}
}

// Health handles GET /api/v1/health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
	})
}

// Version handles GET /api/v1/version
func (h *Handler) Version(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, VersionResponse{
		Version:   h.version,
		GitCommit: h.gitCommit,
		BuildTime: h.buildTime,
		GoVersion: h.goVersion,
	})
}

// ListOptions handles GET /api/v1/options
// Lists every catalog option with its current value
func (h *Handler) ListOptions(w http.ResponseWriter, r *http.Request) {
	store := h.source.Current()

	infos := options.DescribeKeys()
	out := make([]Option, 0, len(infos))
	for _, info := range infos {
		opt := Option{
			Key:         info.Key,
			Type:        info.Type,
			Default:     info.Default,
			HasDefault:  info.HasDefault,
			Description: info.Description,
			Section:     info.Section,
		}
		if v, err := store.Get(info.Key); err == nil {
			opt.Set = true
			opt.Value = v.Interface()
			if v.Kind() == schema.KindPath {
				// an unresolvable path is listed without Resolved
				resolved, err := store.GetPath(info.Key)
				if err != nil {
					h.logger.Warn().
						Err(err).
						Str(log.FieldKey, info.Key).
						Str(log.FieldRoot, store.Root()).
						Msg("cannot resolve path option")
				} else {
					opt.Resolved = resolved
				}
			}
		}
		out = append(out, opt)
	}

	respondSuccess(w, ListOptionsResponse{
		Root:    store.Root(),
		Options: out,
		Count:   len(out),
	})
}

// GetOption handles GET /api/v1/options/{key}
func (h *Handler) GetOption(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if key == "" {
		respondBadRequest(w, "Missing option key")
		return
	}

	store := h.source.Current()
	v, err := store.Get(key)
	if err != nil {
		switch {
		case errors.Is(err, options.ErrUnrecognizedKey):
			respondNotFound(w, fmt.Sprintf("Unknown option %q", key))
		case errors.Is(err, options.ErrNotPresent):
			respondNotFound(w, fmt.Sprintf("Option %q is not set", key))
		default:
			respondInternalError(w, err.Error())
		}
		return
	}

	resp := OptionValueResponse{
		Key:   key,
		Type:  v.Kind().HumanName(),
		Value: v.Interface(),
	}
	if v.Kind() == schema.KindPath {
		resolved, err := store.GetPath(key)
		if err != nil {
			respondInternalError(w, err.Error())
			return
		}
		resp.Resolved = resolved
	}

	respondSuccess(w, resp)
}

// Description handles GET /api/v1/description?format=md|text|json
func (h *Handler) Description(w http.ResponseWriter, r *http.Request) {
	switch format := r.URL.Query().Get("format"); format {
	case "", "text":
		respondText(w, "text/plain; charset=utf-8", options.Description(false))
	case "md", "markdown":
		respondText(w, "text/markdown; charset=utf-8", options.Description(true))
	case "json":
		respondSuccess(w, options.DescribeKeys())
	default:
		respondBadRequest(w, fmt.Sprintf("Unknown format %q (want md, text or json)", format))
	}
}
