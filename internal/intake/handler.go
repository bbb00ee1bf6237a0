package intake

import (
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"

	"wathiq/internal/certificate"
	dErrors "wathiq/pkg/domain-errors"
	"wathiq/pkg/platform/httputil"
	"wathiq/pkg/requestcontext"
)

// maxUploadBytes caps one multipart submission: two ID scans plus a photo.
const maxUploadBytes = 32 << 20

// pickupNotes is shown with every receipt and on its own endpoint. The
// wording mirrors the printed notice at the registry window.
var pickupNotes = []string{
	"الرجاء الحضور في موعدك المحدد حصراً، ولا يسلم الوثيقة خارج الموعد.",
	"جلب هوية الأحوال المدنية أو البطاقة الوطنية الأصلية عند الاستلام.",
	"الوثيقة تصدر لمرة واحدة؛ في حال وجود خطأ راجع شعبة التسجيل قبل الاستلام.",
	"يستلم صاحب العلاقة وثيقته بنفسه أو من يحمل وكالة رسمية عنه.",
}

// Handler exposes the public intake endpoints.
type Handler struct {
	service *Service
	logger  *slog.Logger
}

// NewHandler creates the intake Handler.
func NewHandler(service *Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{service: service, logger: logger}
}

// Register mounts the intake routes.
func (h *Handler) Register(r chi.Router) {
	r.Post("/v1/requests", h.handleSubmit)
	r.Get("/v1/notes", h.handleNotes)
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.logger.WarnContext(ctx, "invalid multipart submission",
			slog.String("request_id", requestcontext.RequestID(ctx)),
			slog.String("error", err.Error()))
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "request must be multipart form data"))
		return
	}

	sub := Submission{
		FullName:    r.FormValue("full_name"),
		Destination: r.FormValue("destination"),
		Consent:     parseConsent(r.FormValue("consent")),
	}
	if g, err := certificate.ParseGender(r.FormValue("gender")); err == nil {
		sub.Gender = g
	}

	var err error
	if sub.IDFront, err = formFile(r, "id_front"); err != nil {
		httputil.WriteError(w, err)
		return
	}
	if sub.IDBack, err = formFile(r, "id_back"); err != nil {
		httputil.WriteError(w, err)
		return
	}
	if sub.Photo, err = formFile(r, "photo"); err != nil {
		httputil.WriteError(w, err)
		return
	}

	receipt, err := h.service.Submit(ctx, sub)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, struct {
		Receipt
		Notes []string `json:"notes"`
	}{Receipt: receipt, Notes: pickupNotes})
}

func (h *Handler) handleNotes(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string][]string{"notes": pickupNotes})
}

// formFile reads one optional upload in full. A missing part is returned as
// an empty FileUpload; the pipeline decides whether that is acceptable.
func formFile(r *http.Request, field string) (FileUpload, error) {
	file, header, err := r.FormFile(field)
	if err == http.ErrMissingFile {
		return FileUpload{}, nil
	}
	if err != nil {
		return FileUpload{}, dErrors.Wrap(err, dErrors.CodeBadRequest, "unreadable upload: "+field)
	}
	defer file.Close()

	data, err := readAll(file)
	if err != nil {
		return FileUpload{}, dErrors.Wrap(err, dErrors.CodeBadRequest, "unreadable upload: "+field)
	}
	return FileUpload{Name: header.Filename, Data: data}, nil
}

func readAll(f multipart.File) ([]byte, error) {
	return io.ReadAll(io.LimitReader(f, maxUploadBytes))
}

func parseConsent(v string) bool {
	switch v {
	case "true", "on", "1", "yes":
		return true
	}
	return false
}
