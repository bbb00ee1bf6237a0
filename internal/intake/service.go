package intake

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"wathiq/internal/appointments"
	"wathiq/internal/certificate"
	"wathiq/internal/identity"
	"wathiq/internal/intake/metrics"
	"wathiq/internal/roster"
	"wathiq/internal/storage"
	dErrors "wathiq/pkg/domain-errors"
	"wathiq/pkg/platform/audit"
	"wathiq/pkg/requestcontext"
)

var tracer = otel.Tracer("wathiq/internal/intake")

// OCRClient extracts text from an ID card image.
type OCRClient interface {
	ExtractText(ctx context.Context, image []byte) (string, error)
}

// Matcher resolves a claimed name to a roster record.
type Matcher interface {
	Match(ctx context.Context, name string) (roster.Record, error)
}

// SlotAllocator probes and reserves pickup appointments.
type SlotAllocator interface {
	FindSlot(ctx context.Context, now time.Time) (appointments.Slot, time.Time, error)
	Reserve(ctx context.Context, name string, now time.Time) (appointments.Record, error)
}

// ArtifactStore persists request files.
type ArtifactStore interface {
	Save(ctx context.Context, kind storage.Kind, base, ext string, data []byte) (storage.Artifact, error)
}

// AuditPublisher records pipeline outcomes. Emitting never fails a request.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event)
}

// Service orchestrates one request end to end. A request either produces a
// certificate artifact plus a reservation, or a single coded rejection; there
// is no partial success surfaced to the claimant.
type Service struct {
	ocr       OCRClient
	matcher   Matcher
	allocator SlotAllocator
	renderer  certificate.Renderer
	artifacts ArtifactStore

	logger  *slog.Logger
	metrics *metrics.Metrics
	audit   AuditPublisher
}

// Option configures optional Service collaborators.
type Option func(*Service)

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger.With(slog.String("component", "intake"))
		}
	}
}

// WithMetrics attaches pipeline metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithAuditPublisher attaches the audit trail.
func WithAuditPublisher(p AuditPublisher) Option {
	return func(s *Service) { s.audit = p }
}

// New wires the pipeline's collaborators.
func New(ocr OCRClient, matcher Matcher, allocator SlotAllocator, renderer certificate.Renderer, artifacts ArtifactStore, opts ...Option) *Service {
	s := &Service{
		ocr:       ocr,
		matcher:   matcher,
		allocator: allocator,
		renderer:  renderer,
		artifacts: artifacts,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit runs the pipeline for one submission. On failure the returned error
// carries a stable code; the stage that failed is the first one whose
// precondition did not hold, and no later stage has run.
func (s *Service) Submit(ctx context.Context, sub Submission) (Receipt, error) {
	started := time.Now()
	ctx, span := tracer.Start(ctx, "intake.Submit",
		trace.WithAttributes(attribute.String("request_id", requestcontext.RequestID(ctx))))
	defer span.End()

	receipt, err := s.run(ctx, sub)
	s.metrics.ObserveDuration(time.Since(started).Seconds())

	if err != nil {
		code := string(dErrors.CodeOf(err))
		s.metrics.RecordOutcome(code)
		span.SetAttributes(attribute.String("outcome", code))
		s.logRejection(ctx, sub, err)
		if s.audit != nil {
			s.audit.Emit(ctx, audit.Event{
				RequestID: requestcontext.RequestID(ctx),
				Action:    audit.ActionRequestRejected,
				Claimant:  sub.FullName,
				Code:      code,
			})
		}
		return Receipt{}, err
	}

	s.metrics.RecordOutcome("issued")
	span.SetAttributes(attribute.String("outcome", "issued"))
	s.logger.InfoContext(ctx, "request issued",
		slog.String("request_id", receipt.RequestID),
		slog.String("matched_name", receipt.MatchedName),
		slog.String("appointment", receipt.AppointmentDate.Format("2006-01-02")+" "+receipt.AppointmentSlot))
	if s.audit != nil {
		s.audit.Emit(ctx, audit.Event{
			RequestID: receipt.RequestID,
			Action:    audit.ActionRequestIssued,
			Claimant:  sub.FullName,
			Detail: map[string]string{
				"matched_name": receipt.MatchedName,
				"certificate":  receipt.CertificateFile,
			},
		})
	}
	return receipt, nil
}

func (s *Service) run(ctx context.Context, sub Submission) (Receipt, error) {
	now := requestcontext.Now(ctx)

	if err := s.screen(ctx, sub); err != nil {
		return Receipt{}, err
	}
	if err := s.storeIDScans(ctx, sub); err != nil {
		return Receipt{}, err
	}
	if err := s.verifyIdentity(ctx, sub); err != nil {
		return Receipt{}, err
	}
	rec, err := s.matchRoster(ctx, sub)
	if err != nil {
		return Receipt{}, err
	}

	// Probe availability before rendering so a fully booked calendar is
	// reported without leaving an orphaned certificate on disk.
	ctx, probeSpan := tracer.Start(ctx, "intake.probe_slot")
	_, _, err = s.allocator.FindSlot(ctx, now)
	probeSpan.End()
	if err != nil {
		if errors.Is(err, appointments.ErrExhausted) {
			return Receipt{}, dErrors.New(dErrors.CodeSlotsExhausted, "no pickup appointments are available")
		}
		return Receipt{}, dErrors.Wrap(err, dErrors.CodeInternal, "appointment lookup failed")
	}

	certFile, err := s.renderAndStore(ctx, sub, rec, now)
	if err != nil {
		return Receipt{}, err
	}

	ctx, reserveSpan := tracer.Start(ctx, "intake.reserve")
	reservation, err := s.allocator.Reserve(ctx, sub.FullName, now)
	reserveSpan.End()
	if err != nil {
		if errors.Is(err, appointments.ErrExhausted) {
			return Receipt{}, dErrors.New(dErrors.CodeSlotsExhausted, "no pickup appointments are available")
		}
		return Receipt{}, dErrors.Wrap(err, dErrors.CodeInternal, "appointment reservation failed")
	}
	if s.audit != nil {
		s.audit.Emit(ctx, audit.Event{
			RequestID: requestcontext.RequestID(ctx),
			Action:    audit.ActionAppointmentReserved,
			Claimant:  sub.FullName,
			Detail: map[string]string{
				"date": reservation.Date.Format("2006-01-02"),
				"slot": reservation.Slot,
			},
		})
	}

	return Receipt{
		RequestID:       requestcontext.RequestID(ctx),
		MatchedName:     rec.FullName,
		AppointmentDate: reservation.Date,
		AppointmentSlot: reservation.Slot,
		CertificateFile: certFile,
	}, nil
}

// screen enforces consent and required fields. Consent is checked first so
// no claimant data is processed, or even validated, without it.
func (s *Service) screen(ctx context.Context, sub Submission) error {
	if !sub.Consent {
		return dErrors.New(dErrors.CodeConsentMissing, "consent to data processing is required")
	}

	var missing []string
	if strings.TrimSpace(sub.FullName) == "" {
		missing = append(missing, "full_name")
	}
	if sub.Gender != certificate.GenderMale && sub.Gender != certificate.GenderFemale {
		missing = append(missing, "gender")
	}
	if strings.TrimSpace(sub.Destination) == "" {
		missing = append(missing, "destination")
	}
	if sub.IDFront.empty() {
		missing = append(missing, "id_front")
	}
	if sub.IDBack.empty() {
		missing = append(missing, "id_back")
	}
	if sub.Photo.empty() {
		missing = append(missing, "photo")
	}
	if len(missing) > 0 {
		return dErrors.New(dErrors.CodeFieldsMissing, "missing required fields: "+strings.Join(missing, ", "))
	}
	return nil
}

func (s *Service) storeIDScans(ctx context.Context, sub Submission) error {
	ctx, span := tracer.Start(ctx, "intake.store_id_scans")
	defer span.End()

	for _, upload := range []struct {
		file   FileUpload
		suffix string
	}{
		{sub.IDFront, "front"},
		{sub.IDBack, "back"},
	} {
		base := sub.FullName + "_" + upload.suffix
		if _, err := s.artifacts.Save(ctx, storage.KindIDCard, base, ext(upload.file.Name), upload.file.Data); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "could not store ID scan")
		}
	}
	return nil
}

func (s *Service) verifyIdentity(ctx context.Context, sub Submission) error {
	ctx, span := tracer.Start(ctx, "intake.verify_identity")
	defer span.End()

	text, err := s.ocr.ExtractText(ctx, sub.IDFront.Data)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeOCRUnavailable, "ID card could not be read")
	}

	result := identity.Verify(sub.FullName, text)
	if result.Passed {
		return nil
	}
	switch result.Reason {
	case identity.ReasonOCRUnavailable:
		return dErrors.New(dErrors.CodeOCRUnavailable, "ID card could not be read")
	case identity.ReasonNameInsufficient:
		return dErrors.New(dErrors.CodeNameInsufficient, "enter at least a first and second name")
	default:
		return dErrors.New(dErrors.CodeIdentityMismatch, "the entered name does not match the ID card")
	}
}

func (s *Service) matchRoster(ctx context.Context, sub Submission) (roster.Record, error) {
	ctx, span := tracer.Start(ctx, "intake.match_roster")
	defer span.End()
	return s.matcher.Match(ctx, sub.FullName)
}

func (s *Service) renderAndStore(ctx context.Context, sub Submission, rec roster.Record, now time.Time) (string, error) {
	ctx, span := tracer.Start(ctx, "intake.render_certificate")
	defer span.End()

	fields := certificate.FieldMap(rec, sub.Destination, now)
	doc, err := s.renderer.Render(ctx, sub.Gender, fields)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeRenderFailure, "certificate could not be generated")
	}

	if _, err := s.artifacts.Save(ctx, storage.KindPhoto, sub.FullName, ext(sub.Photo.Name), sub.Photo.Data); err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "could not store photo")
	}
	art, err := s.artifacts.Save(ctx, storage.KindCertificate, rec.FullName, ".docx", doc)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "could not store certificate")
	}
	return art.Name, nil
}

// logRejection logs infrastructure failures at error level with the cause,
// and claimant-attributable rejections at info without it.
func (s *Service) logRejection(ctx context.Context, sub Submission, err error) {
	code := dErrors.CodeOf(err)
	if dErrors.Infrastructure(code) {
		s.logger.ErrorContext(ctx, "request failed",
			slog.String("request_id", requestcontext.RequestID(ctx)),
			slog.String("code", string(code)),
			slog.String("error", err.Error()))
		return
	}
	s.logger.InfoContext(ctx, "request rejected",
		slog.String("request_id", requestcontext.RequestID(ctx)),
		slog.String("code", string(code)))
}

func ext(filename string) string {
	if i := strings.LastIndex(filename, "."); i >= 0 {
		return filename[i:]
	}
	return ""
}
