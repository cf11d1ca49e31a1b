package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/registrahq/registra/pkg/authz"
	"github.com/registrahq/registra/pkg/email"
	"github.com/registrahq/registra/pkg/ratelimiter"
	"github.com/registrahq/registra/pkg/session"
)

// Service implements the account lifecycle: registration, admin
// review, login with session issuance, and logout. It is constructed
// once at startup with its collaborators injected.
type Service struct {
	users        UserStore
	sessions     *session.Manager
	roles        *authz.RoleSource
	mailer       email.Sender
	loginLimiter *ratelimiter.Bucket
	log          *slog.Logger
	now          func() time.Time
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithServiceLogger sets the logger used for non-fatal service events.
func WithServiceLogger(log *slog.Logger) ServiceOption {
	return func(s *Service) { s.log = log }
}

// WithLoginLimiter rate-limits login attempts per client IP and email.
// Without it logins are unthrottled; only do that in tests.
func WithLoginLimiter(b *ratelimiter.Bucket) ServiceOption {
	return func(s *Service) { s.loginLimiter = b }
}

// WithServiceClock overrides the time source, for tests.
func WithServiceClock(now func() time.Time) ServiceOption {
	return func(s *Service) { s.now = now }
}

// NewService builds the identity service.
func NewService(users UserStore, sessions *session.Manager, roles *authz.RoleSource, mailer email.Sender, opts ...ServiceOption) *Service {
	s := &Service{
		users:    users,
		sessions: sessions,
		roles:    roles,
		mailer:   mailer,
		log:      slog.New(slog.DiscardHandler),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RegisterParams carries the self-service registration input.
type RegisterParams struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// Register creates a pending account. The user cannot log in until an
// administrator approves the registration.
func (s *Service) Register(ctx context.Context, params RegisterParams) (*User, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(params.Email))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid email", ErrInvalidParams)
	}
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidParams)
	}

	hash, err := HashPassword(params.Password)
	if err != nil {
		return nil, err
	}

	now := s.now()
	user := &User{
		ID:           uuid.New(),
		Email:        strings.ToLower(addr.Address),
		Name:         name,
		PasswordHash: hash,
		Role:         authz.RoleMember,
		Capabilities: []string{},
		Status:       StatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.notify(ctx, user.Email, "Registration received",
		fmt.Sprintf("<p>Hi %s,</p><p>Your registration is awaiting review. We will email you once it has been processed.</p>", user.Name),
		"registration")

	s.log.InfoContext(ctx, "user registered", slog.String("user_id", user.ID.String()))
	return user, nil
}

// EnsureAdmin creates an approved administrator account unless the
// email is already registered. Called at startup so a fresh deployment
// has someone able to work the approval queue; subsequent starts are
// no-ops.
func (s *Service) EnsureAdmin(ctx context.Context, emailAddr, password string) (*User, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(emailAddr))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid email", ErrInvalidParams)
	}

	existing, err := s.users.FindByEmail(ctx, addr.Address)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	now := s.now()
	admin := &User{
		ID:           uuid.New(),
		Email:        strings.ToLower(addr.Address),
		Name:         "Administrator",
		PasswordHash: hash,
		Role:         authz.RoleAdmin,
		Capabilities: s.roles.DefaultCapabilities(authz.RoleAdmin),
		Status:       StatusApproved,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, admin); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			// Another instance won the race; theirs is as good as ours.
			return s.users.FindByEmail(ctx, addr.Address)
		}
		return nil, err
	}

	s.log.InfoContext(ctx, "bootstrap administrator created", slog.String("user_id", admin.ID.String()))
	return admin, nil
}

// LoginParams carries a login attempt. UserAgent and ClientIP come from
// the request, not the body.
type LoginParams struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	UserAgent string `json:"-"`
	ClientIP  string `json:"-"`
}

// dummyHash is compared against when the email is unknown so the
// response time does not reveal whether an account exists.
var dummyHash, _ = HashPassword("timing-equalizer")

// Login authenticates credentials and starts a session, writing the
// session cookie to w. Pending and rejected accounts are refused even
// with a correct password.
func (s *Service) Login(ctx context.Context, w http.ResponseWriter, params LoginParams) (*User, *session.Session, error) {
	if s.loginLimiter != nil {
		key := fmt.Sprintf("login:%s:%s", params.ClientIP, strings.ToLower(params.Email))
		result, err := s.loginLimiter.Allow(ctx, key)
		if err != nil {
			return nil, nil, err
		}
		if !result.Allowed() {
			return nil, nil, ErrTooManyAttempts
		}
	}

	user, err := s.users.FindByEmail(ctx, params.Email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			_ = VerifyPassword(dummyHash, params.Password)
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if err := VerifyPassword(user.PasswordHash, params.Password); err != nil {
		return nil, nil, err
	}

	switch user.Status {
	case StatusApproved:
	case StatusPending:
		return nil, nil, ErrAccountPending
	default:
		return nil, nil, ErrAccountRejected
	}

	sess, err := s.sessions.Start(ctx, w, user.ID, params.UserAgent)
	if err != nil {
		return nil, nil, err
	}

	s.log.InfoContext(ctx, "user logged in",
		slog.String("user_id", user.ID.String()),
		slog.String("session_id", sess.ID.String()),
	)
	return user, sess, nil
}

// Logout ends the presented session and clears the cookie. The stored
// row is kept, marked expired.
func (s *Service) Logout(ctx context.Context, w http.ResponseWriter, sess *session.Session) error {
	if err := s.sessions.End(ctx, w, sess); err != nil {
		return err
	}
	s.log.InfoContext(ctx, "user logged out", slog.String("session_id", sess.ID.String()))
	return nil
}

// Sessions lists the user's sessions, most recently active first.
func (s *Service) Sessions(ctx context.Context, userID uuid.UUID) ([]session.Session, error) {
	return s.sessions.ListForUser(ctx, userID)
}

// PendingUsers returns registrations awaiting review, oldest first.
func (s *Service) PendingUsers(ctx context.Context) ([]User, error) {
	return s.users.ListPending(ctx)
}

// Approve grants a pending user the given role plus that role's default
// capabilities and notifies them by email.
func (s *Service) Approve(ctx context.Context, id uuid.UUID, role string) (*User, error) {
	if !authz.KnownRole(role) {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidParams, role)
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Status != StatusPending {
		return nil, ErrNotPending
	}

	approved, err := s.users.Approve(ctx, id, role, s.roles.DefaultCapabilities(role), s.now())
	if err != nil {
		return nil, err
	}

	s.notify(ctx, approved.Email, "Account approved",
		fmt.Sprintf("<p>Hi %s,</p><p>Your account has been approved. You can now log in.</p>", approved.Name),
		"approval")

	s.log.InfoContext(ctx, "user approved",
		slog.String("user_id", approved.ID.String()),
		slog.String("role", role),
	)
	return approved, nil
}

// Reject declines a pending registration and notifies the applicant.
func (s *Service) Reject(ctx context.Context, id uuid.UUID) (*User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Status != StatusPending {
		return nil, ErrNotPending
	}

	rejected, err := s.users.Reject(ctx, id, s.now())
	if err != nil {
		return nil, err
	}

	s.notify(ctx, rejected.Email, "Registration declined",
		fmt.Sprintf("<p>Hi %s,</p><p>Your registration was not approved. Contact support if you believe this is a mistake.</p>", rejected.Name),
		"approval")

	s.log.InfoContext(ctx, "user rejected", slog.String("user_id", rejected.ID.String()))
	return rejected, nil
}

// notify sends a lifecycle email. Delivery failures are logged, not
// propagated; the account mutation already happened.
func (s *Service) notify(ctx context.Context, to, subject, body, tag string) {
	err := s.mailer.Send(ctx, email.SendParams{
		To:       to,
		Subject:  subject,
		BodyHTML: body,
		Tag:      tag,
	})
	if err != nil {
		s.log.ErrorContext(ctx, "failed to send notification email",
			slog.String("tag", tag),
			slog.Any("error", err),
		)
	}
}
