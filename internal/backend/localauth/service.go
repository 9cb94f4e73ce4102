// Package localauth is a self-hosted backend.AuthService: bcrypt passwords,
// JWT access tokens bound to revocable server-side sessions, and emailed
// password reset links.
package localauth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"consultancy/internal/backend"
	"consultancy/internal/database"
	"consultancy/internal/pkg/jwt"
)

const (
	MinPasswordLength = 6
	resetTokenTTL     = time.Hour
)

type Service struct {
	db     *gorm.DB
	tokens *jwt.Service
	mailer Mailer
	log    *zap.Logger
	now    func() time.Time
}

func NewService(db *gorm.DB, tokens *jwt.Service, mailer Mailer, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	if mailer == nil {
		mailer = LogMailer{Log: log}
	}
	return &Service{
		db:     db,
		tokens: tokens,
		mailer: mailer,
		log:    log,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

var _ backend.AuthService = (*Service)(nil)

func (s *Service) SignIn(ctx context.Context, email, password string) (*backend.Session, error) {
	user, err := s.userByEmail(ctx, email)
	if errors.Is(err, backend.ErrNotFound) {
		return nil, backend.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, backend.ErrInvalidCredentials
	}

	now := s.now()
	sess := &Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.tokens.TTL()),
	}
	if err := s.db.WithContext(ctx).Create(sess).Error; err != nil {
		return nil, unavailable("create session", err)
	}

	token, expires, err := s.tokens.GenerateToken(user.ID, user.Email, sess.ID)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &backend.Session{
		Token:     token,
		Identity:  backend.Identity{ID: user.ID, Email: user.Email},
		ExpiresAt: expires,
	}, nil
}

func (s *Service) SignUp(ctx context.Context, email, password string) (*backend.Identity, error) {
	email = normalizeEmail(email)
	if len(password) < MinPasswordLength {
		return nil, backend.ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &User{ID: uuid.NewString(), Email: email, PasswordHash: string(hash)}
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return nil, backend.ErrEmailTaken
		}
		return nil, unavailable("create user", err)
	}
	return &backend.Identity{ID: user.ID, Email: user.Email}, nil
}

// SignOut revokes the session behind token. Unknown or expired tokens are already signed out.
func (s *Service) SignOut(ctx context.Context, token string) error {
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return nil
	}
	err = s.db.WithContext(ctx).Model(&Session{}).
		Where("id = ? AND revoked_at IS NULL", claims.ID).
		Update("revoked_at", s.now()).Error
	if err != nil {
		return unavailable("revoke session", err)
	}
	return nil
}

func (s *Service) CurrentSession(ctx context.Context, token string) (*backend.Session, error) {
	if strings.TrimSpace(token) == "" {
		return nil, backend.ErrNoSession
	}
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return nil, backend.ErrNoSession
	}

	var sess Session
	err = s.db.WithContext(ctx).Where("id = ?", claims.ID).First(&sess).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, backend.ErrNoSession
	}
	if err != nil {
		return nil, unavailable("load session", err)
	}
	if !sess.Active(s.now()) {
		return nil, backend.ErrNoSession
	}

	return &backend.Session{
		Token:     token,
		Identity:  backend.Identity{ID: claims.UserID, Email: claims.Email},
		ExpiresAt: sess.ExpiresAt,
	}, nil
}

// SendPasswordReset mails a single-use link to redirectURL. Unknown emails succeed silently.
func (s *Service) SendPasswordReset(ctx context.Context, email, redirectURL string) error {
	user, err := s.userByEmail(ctx, email)
	if errors.Is(err, backend.ErrNotFound) {
		s.log.Debug("password reset for unknown email")
		return nil
	}
	if err != nil {
		return err
	}

	raw, err := randomToken()
	if err != nil {
		return err
	}
	now := s.now()
	reset := &PasswordReset{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		TokenHash: hashToken(raw),
		CreatedAt: now,
		ExpiresAt: now.Add(resetTokenTTL),
	}
	if err := s.db.WithContext(ctx).Create(reset).Error; err != nil {
		return unavailable("create reset token", err)
	}

	link, err := resetLink(redirectURL, raw)
	if err != nil {
		return err
	}
	return s.mailer.SendPasswordReset(ctx, user.Email, link)
}

// ResetPassword consumes a reset token, replaces the password and revokes every session of the user.
func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < MinPasswordLength {
		return backend.ErrWeakPassword
	}
	now := s.now()

	var reset PasswordReset
	err := s.db.WithContext(ctx).
		Where("token_hash = ? AND used_at IS NULL AND expires_at > ?", hashToken(token), now).
		First(&reset).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return backend.ErrInvalidResetToken
	}
	if err != nil {
		return unavailable("load reset token", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		claim := tx.Model(&PasswordReset{}).
			Where("id = ? AND used_at IS NULL", reset.ID).
			Update("used_at", now)
		if claim.Error != nil {
			return claim.Error
		}
		if claim.RowsAffected == 0 {
			return backend.ErrInvalidResetToken
		}
		if err := tx.Model(&User{}).Where("id = ?", reset.UserID).
			Updates(map[string]any{"password_hash": string(hash), "updated_at": now}).Error; err != nil {
			return err
		}
		return tx.Model(&Session{}).
			Where("user_id = ? AND revoked_at IS NULL", reset.UserID).
			Update("revoked_at", now).Error
	})
	if errors.Is(err, backend.ErrInvalidResetToken) {
		return err
	}
	if err != nil {
		return unavailable("reset password", err)
	}
	return nil
}

// LookupUserID returns the id of the account registered under email.
func (s *Service) LookupUserID(ctx context.Context, email string) (string, error) {
	user, err := s.userByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	return user.ID, nil
}

// Prune deletes sessions and reset tokens that can no longer be used.
func (s *Service) Prune(ctx context.Context) (sessions, resets int64, err error) {
	now := s.now()
	res := s.db.WithContext(ctx).Where("expires_at < ? OR revoked_at IS NOT NULL", now).Delete(&Session{})
	if res.Error != nil {
		return 0, 0, unavailable("prune sessions", res.Error)
	}
	sessions = res.RowsAffected

	res = s.db.WithContext(ctx).Where("expires_at < ? OR used_at IS NOT NULL", now).Delete(&PasswordReset{})
	if res.Error != nil {
		return sessions, 0, unavailable("prune reset tokens", res.Error)
	}
	return sessions, res.RowsAffected, nil
}

func (s *Service) userByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := s.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, backend.ErrNotFound
	}
	if err != nil {
		return nil, unavailable("load user", err)
	}
	return &user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func randomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

func resetLink(redirectURL, token string) (string, error) {
	u, err := url.Parse(redirectURL)
	if err != nil {
		return "", fmt.Errorf("parse reset redirect: %w", err)
	}
	q := u.Query()
	q.Set("reset_token", token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", backend.ErrUnavailable, op, err)
}
