package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	repository "github.com/actionhub-org/HappyFox-practice/internal/database/mongo"
	"github.com/actionhub-org/HappyFox-practice/internal/entity"
	"github.com/actionhub-org/HappyFox-practice/pkg/identity"

	"github.com/sirupsen/logrus"
)

// TokenIntrospector verifies a bearer token with the identity provider
type TokenIntrospector interface {
	Introspect(ctx context.Context, token string) (*identity.Identity, error)
}

type userService struct {
	userRepo     repository.UserRepository
	introspector TokenIntrospector
}

// NewUserService creates a new instance of UserService
func NewUserService(userRepo repository.UserRepository, introspector TokenIntrospector) UserService {
	return &userService{
		userRepo:     userRepo,
		introspector: introspector,
	}
}

// LinkUser exchanges a bearer token for an identity and upserts the local
// user record. Linking an already known identity is idempotent.
func (s *userService) LinkUser(ctx context.Context, token string) (*entity.User, error) {
	if s.introspector == nil {
		return nil, fmt.Errorf("identity provider is not configured")
	}

	ident, err := s.introspector.Introspect(ctx, token)
	if err != nil {
		logrus.WithError(err).Warn("token introspection failed")
		return nil, entity.ErrTokenRejected
	}

	existing, err := s.userRepo.GetByExternalID(ctx, ident.ID)
	if err == nil {
		return existing, nil
	}
	if err != entity.ErrUserNotFound {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	user := &entity.User{
		Email:      strings.ToLower(ident.Email),
		ExternalID: ident.ID,
		UserType:   entity.UserTypeNone,
		CreatedAt:  time.Now(),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	logrus.WithField("email", user.Email).Info("user linked")
	return user, nil
}

func (s *userService) IsApprover(ctx context.Context, email string) (bool, error) {
	if email == "" {
		return false, nil
	}
	ok, err := s.userRepo.IsApprover(ctx, strings.ToLower(email))
	if err != nil {
		return false, fmt.Errorf("failed to check approver status: %w", err)
	}
	return ok, nil
}

func (s *userService) SetUserType(ctx context.Context, email string, userType entity.UserType) error {
	switch userType {
	case entity.UserTypeNone, entity.UserTypeStudent, entity.UserTypeOrganizer, entity.UserTypeApprover:
	default:
		return entity.ErrInvalidRole
	}
	return s.userRepo.UpdateUserType(ctx, strings.ToLower(email), userType)
}
