package staff

import (
	"context"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	dErrors "wathiq/pkg/domain-errors"
	"wathiq/pkg/platform/audit"
	"wathiq/pkg/requestcontext"
)

// AuditPublisher records login attempts.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event)
}

// Service authenticates staff against a single shared credential. The
// registry desk operates one account; per-user accounts are a later
// concern once the desk grows beyond one shift.
type Service struct {
	passwordHash []byte
	tokens       *TokenService

	logger *slog.Logger
	audit  AuditPublisher
}

// Option configures optional Service collaborators.
type Option func(*Service)

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger.With(slog.String("component", "staff"))
		}
	}
}

// WithAuditPublisher attaches the audit trail.
func WithAuditPublisher(p AuditPublisher) Option {
	return func(s *Service) { s.audit = p }
}

// NewService wires the staff auth service.
func NewService(passwordHash string, tokens *TokenService, opts ...Option) *Service {
	s := &Service{
		passwordHash: []byte(passwordHash),
		tokens:       tokens,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Login verifies the password and issues an access token for username.
// Failures are uniform: the caller cannot tell a wrong password from an
// unknown username.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)) != nil {
		s.logger.WarnContext(ctx, "staff login failed",
			slog.String("request_id", requestcontext.RequestID(ctx)),
			slog.String("username", username))
		if s.audit != nil {
			s.audit.Emit(ctx, audit.Event{
				RequestID: requestcontext.RequestID(ctx),
				Action:    audit.ActionStaffLoginFailed,
				Detail:    map[string]string{"username": username},
			})
		}
		return "", dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")
	}

	token, err := s.tokens.Issue(username)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "could not issue token")
	}

	s.logger.InfoContext(ctx, "staff login",
		slog.String("request_id", requestcontext.RequestID(ctx)),
		slog.String("username", username))
	if s.audit != nil {
		s.audit.Emit(ctx, audit.Event{
			RequestID: requestcontext.RequestID(ctx),
			Action:    audit.ActionStaffLogin,
			Detail:    map[string]string{"username": username},
		})
	}
	return token, nil
}
