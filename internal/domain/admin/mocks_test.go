package admin

import (
	"context"

	"github.com/stretchr/testify/mock"

	"consultancy/internal/backend"
)

/* ==================== MOCKS ==================== */

/* -------- GrantLookup -------- */

type MockGrantLookup struct {
	mock.Mock
}

func (m *MockGrantLookup) ExistsByID(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockGrantLookup) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

/* -------- AuthService -------- */

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) SignIn(ctx context.Context, email, password string) (*backend.Session, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*backend.Session), args.Error(1)
}

func (m *MockAuthService) SignUp(ctx context.Context, email, password string) (*backend.Identity, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*backend.Identity), args.Error(1)
}

func (m *MockAuthService) SignOut(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockAuthService) CurrentSession(ctx context.Context, token string) (*backend.Session, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*backend.Session), args.Error(1)
}

func (m *MockAuthService) SendPasswordReset(ctx context.Context, email, redirectURL string) error {
	args := m.Called(ctx, email, redirectURL)
	return args.Error(0)
}

func (m *MockAuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	args := m.Called(ctx, token, newPassword)
	return args.Error(0)
}

/* -------- fixed grant table -------- */

// grantTable answers lookups from an in-memory list of grants.
type grantTable []Grant

func (t grantTable) ExistsByID(_ context.Context, id string) (bool, error) {
	for _, g := range t {
		if g.ID == id {
			return true, nil
		}
	}
	return false, nil
}

func (t grantTable) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, g := range t {
		if g.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func identity(id, email string) backend.Identity {
	return backend.Identity{ID: id, Email: email}
}
