package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"consultancy/internal/backend"
	"consultancy/internal/pkg/validator"
)

// Flow drives the admin login, logout and account recovery screens on top of
// the auth collaborator and the Guard.
type Flow struct {
	auth          backend.AuthService
	guard         *Guard
	resetRedirect string
	log           *zap.Logger
}

func NewFlow(auth backend.AuthService, guard *Guard, resetRedirect string, log *zap.Logger) *Flow {
	if log == nil {
		log = zap.NewNop()
	}
	return &Flow{auth: auth, guard: guard, resetRedirect: resetRedirect, log: log}
}

// Login signs in and keeps the session only when the guard grants access.
// On Denied or Failed the fresh session is revoked before returning.
func (f *Flow) Login(ctx context.Context, req LoginRequest) (*backend.Session, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return nil, ErrMissingCredentials
	}

	sess, err := f.signIn(ctx, email, req.Password)
	if err != nil {
		return nil, err
	}

	d := f.guard.Decide(ctx, sess.Identity)
	switch d.Outcome {
	case Granted:
		return sess, nil
	case Denied:
		f.revoke(ctx, sess.Token)
		return nil, ErrAccessDenied
	default:
		f.revoke(ctx, sess.Token)
		return nil, fmt.Errorf("%w: %v", ErrVerificationFailed, d.Err)
	}
}

// Verify re-checks an existing session against the guard without revoking it.
func (f *Flow) Verify(ctx context.Context, token string) (*backend.Session, error) {
	cctx, cancel := f.bound(ctx)
	sess, err := f.auth.CurrentSession(cctx, token)
	cancel()
	if err != nil {
		if errors.Is(err, backend.ErrNoSession) {
			return nil, backend.ErrNoSession
		}
		return nil, fmt.Errorf("%w: %v", ErrVerificationFailed, err)
	}

	d := f.guard.Decide(ctx, sess.Identity)
	switch d.Outcome {
	case Granted:
		return sess, nil
	case Denied:
		return nil, ErrAccessDenied
	default:
		return nil, fmt.Errorf("%w: %v", ErrVerificationFailed, d.Err)
	}
}

// Logout revokes the session. It always succeeds from the caller's point of view.
func (f *Flow) Logout(ctx context.Context, token string) {
	f.revoke(ctx, token)
}

// Signup creates an account without any admin grant.
func (f *Flow) Signup(ctx context.Context, req SignupRequest) (*backend.Identity, error) {
	if fields := validator.Validate(req); fields != nil {
		return nil, &ValidationError{Fields: fields}
	}
	ctx, cancel := f.bound(ctx)
	defer cancel()
	return f.auth.SignUp(ctx, req.Email, req.Password)
}

func (f *Flow) ForgotPassword(ctx context.Context, req ForgotPasswordRequest) error {
	if !validator.IsEmail(strings.TrimSpace(req.Email)) {
		return ErrInvalidEmail
	}
	ctx, cancel := f.bound(ctx)
	defer cancel()
	return f.auth.SendPasswordReset(ctx, strings.TrimSpace(req.Email), f.resetRedirect)
}

func (f *Flow) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	if fields := validator.Validate(req); fields != nil {
		return &ValidationError{Fields: fields}
	}
	ctx, cancel := f.bound(ctx)
	defer cancel()
	return f.auth.ResetPassword(ctx, req.Token, req.Password)
}

func (f *Flow) signIn(ctx context.Context, email, password string) (*backend.Session, error) {
	ctx, cancel := f.bound(ctx)
	defer cancel()
	return f.auth.SignIn(ctx, email, password)
}

// bound applies the collaborator timeout shared with the Guard.
func (f *Flow) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if f.guard == nil || f.guard.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, f.guard.timeout)
}

func (f *Flow) revoke(ctx context.Context, token string) {
	if token == "" {
		return
	}
	ctx, cancel := f.bound(ctx)
	defer cancel()
	if err := f.auth.SignOut(ctx, token); err != nil {
		f.log.Warn("sign out failed", zap.Error(err))
	}
}

// ValidationError carries per-field messages for a rejected request.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %v", e.Fields)
}
