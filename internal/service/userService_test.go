package service

import (
	"context"
	"errors"
	"testing"

	"github.com/actionhub-org/HappyFox-practice/internal/entity"
	"github.com/actionhub-org/HappyFox-practice/pkg/identity"

	"github.com/stretchr/testify/assert"
)

type stubIntrospector struct {
	ident *identity.Identity
	err   error
}

func (s *stubIntrospector) Introspect(ctx context.Context, token string) (*identity.Identity, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.ident, nil
}

func TestLinkUser_CreatesOnFirstLink(t *testing.T) {
	var created *entity.User
	userRepo := &mockUserRepo{
		getByExternalIDFn: func(ctx context.Context, externalID string) (*entity.User, error) {
			return nil, entity.ErrUserNotFound
		},
		createFn: func(ctx context.Context, user *entity.User) error {
			created = user
			return nil
		},
	}
	introspector := &stubIntrospector{ident: &identity.Identity{ID: "ext-42", Email: "Priya@Student.EDU"}}
	svc := NewUserService(userRepo, introspector)

	user, err := svc.LinkUser(context.Background(), "token")

	assert.NoError(t, err)
	assert.Equal(t, created, user)
	assert.Equal(t, "priya@student.edu", user.Email)
	assert.Equal(t, "ext-42", user.ExternalID)
	assert.Equal(t, entity.UserTypeNone, user.UserType)
}

func TestLinkUser_Idempotent(t *testing.T) {
	existing := &entity.User{Email: "priya@student.edu", ExternalID: "ext-42", UserType: entity.UserTypeOrganizer}
	createCalled := false
	userRepo := &mockUserRepo{
		getByExternalIDFn: func(ctx context.Context, externalID string) (*entity.User, error) {
			assert.Equal(t, "ext-42", externalID)
			return existing, nil
		},
		createFn: func(ctx context.Context, user *entity.User) error {
			createCalled = true
			return nil
		},
	}
	introspector := &stubIntrospector{ident: &identity.Identity{ID: "ext-42", Email: "priya@student.edu"}}
	svc := NewUserService(userRepo, introspector)

	user, err := svc.LinkUser(context.Background(), "token")

	assert.NoError(t, err)
	assert.Equal(t, existing, user)
	assert.False(t, createCalled)
}

func TestLinkUser_RejectedToken(t *testing.T) {
	svc := NewUserService(&mockUserRepo{}, &stubIntrospector{err: errors.New("401 from provider")})

	_, err := svc.LinkUser(context.Background(), "bad-token")

	assert.ErrorIs(t, err, entity.ErrTokenRejected)
}

func TestIsApprover(t *testing.T) {
	userRepo := &mockUserRepo{
		isApproverFn: func(ctx context.Context, email string) (bool, error) {
			assert.Equal(t, "hod@university.edu", email)
			return true, nil
		},
	}
	svc := NewUserService(userRepo, nil)

	ok, err := svc.IsApprover(context.Background(), "HOD@University.EDU")
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.IsApprover(context.Background(), "")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestSetUserType(t *testing.T) {
	var gotEmail string
	var gotType entity.UserType
	userRepo := &mockUserRepo{
		updateUserTypeFn: func(ctx context.Context, email string, userType entity.UserType) error {
			gotEmail = email
			gotType = userType
			return nil
		},
	}
	svc := NewUserService(userRepo, nil)

	err := svc.SetUserType(context.Background(), "Priya@Student.EDU", entity.UserTypeOrganizer)
	assert.NoError(t, err)
	assert.Equal(t, "priya@student.edu", gotEmail)
	assert.Equal(t, entity.UserTypeOrganizer, gotType)

	err = svc.SetUserType(context.Background(), "priya@student.edu", entity.UserType("superadmin"))
	assert.ErrorIs(t, err, entity.ErrInvalidRole)
}
