package staff

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"wathiq/internal/storage"
	dErrors "wathiq/pkg/domain-errors"
	"wathiq/pkg/platform/httputil"
)

// ArtifactLibrary is the read side of the artifact store.
type ArtifactLibrary interface {
	List(ctx context.Context, kind storage.Kind) ([]storage.Artifact, error)
	Open(ctx context.Context, kind storage.Kind, name string) (io.ReadCloser, error)
}

// Handler exposes the staff dashboard endpoints.
type Handler struct {
	service   *Service
	tokens    *TokenService
	artifacts ArtifactLibrary
	logger    *slog.Logger
}

// NewHandler creates the staff Handler.
func NewHandler(service *Service, tokens *TokenService, artifacts ArtifactLibrary, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{service: service, tokens: tokens, artifacts: artifacts, logger: logger}
}

// Register mounts the staff routes. Everything but login sits behind the
// bearer-token middleware.
func (h *Handler) Register(r chi.Router) {
	r.Post("/v1/staff/login", h.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(RequireAuth(h.tokens))
		r.Get("/v1/staff/certificates", h.listKind(storage.KindCertificate))
		r.Get("/v1/staff/id-cards", h.listKind(storage.KindIDCard))
		r.Get("/v1/staff/photos", h.listKind(storage.KindPhoto))
		r.Get("/v1/staff/artifacts/{kind}/{name}", h.handleDownload)
	})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	token, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, loginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(h.tokens.TTL().Seconds()),
	})
}

func (h *Handler) listKind(kind storage.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		artifacts, err := h.artifacts.List(r.Context(), kind)
		if err != nil {
			h.logger.ErrorContext(r.Context(), "artifact list failed",
				slog.String("kind", string(kind)),
				slog.String("error", err.Error()))
			httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "could not list artifacts"))
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]any{"artifacts": artifacts})
	}
}

func (h *Handler) handleDownload(w http.ResponseWriter, r *http.Request) {
	kind := storage.Kind(chi.URLParam(r, "kind"))
	name := chi.URLParam(r, "name")

	rc, err := h.artifacts.Open(r.Context(), kind, name)
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeNotFound, "artifact not found"))
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	if _, err := io.Copy(w, rc); err != nil {
		h.logger.WarnContext(r.Context(), "artifact download interrupted",
			slog.String("name", name),
			slog.String("error", err.Error()))
	}
}
