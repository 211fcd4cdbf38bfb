package service

import (
	"context"
	"time"

	"github.com/actionhub-org/HappyFox-practice/internal/entity"
	"github.com/actionhub-org/HappyFox-practice/pkg/aiclient"
	"github.com/actionhub-org/HappyFox-practice/pkg/webhook"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Mock EventRepository ---

type mockEventRepo struct {
	createFn               func(ctx context.Context, event *entity.Event) error
	getByIDFn              func(ctx context.Context, id primitive.ObjectID) (*entity.Event, error)
	getByIDsFn             func(ctx context.Context, ids []primitive.ObjectID) ([]*entity.Event, error)
	deleteByApproverFn     func(ctx context.Context, email string) (int64, error)
	getByOrganizerFn       func(ctx context.Context, email string) ([]*entity.Event, error)
	getByApproverFn        func(ctx context.Context, email string) ([]*entity.Event, error)
	getFullyApprovedFn     func(ctx context.Context) ([]*entity.Event, error)
	getHistoryFn           func(ctx context.Context, eventType, venue string, limit int64) ([]*entity.Event, error)
	updateApproverStatusFn func(ctx context.Context, eventID primitive.ObjectID, approverEmail string, status entity.ApprovalStatus, actedAt time.Time) (*entity.Event, error)
}

func (m *mockEventRepo) Create(ctx context.Context, event *entity.Event) error {
	return m.createFn(ctx, event)
}
func (m *mockEventRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Event, error) {
	return m.getByIDFn(ctx, id)
}
func (m *mockEventRepo) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*entity.Event, error) {
	return m.getByIDsFn(ctx, ids)
}
func (m *mockEventRepo) DeleteByApprover(ctx context.Context, email string) (int64, error) {
	return m.deleteByApproverFn(ctx, email)
}
func (m *mockEventRepo) GetByOrganizer(ctx context.Context, email string) ([]*entity.Event, error) {
	return m.getByOrganizerFn(ctx, email)
}
func (m *mockEventRepo) GetByApprover(ctx context.Context, email string) ([]*entity.Event, error) {
	return m.getByApproverFn(ctx, email)
}
func (m *mockEventRepo) GetFullyApproved(ctx context.Context) ([]*entity.Event, error) {
	return m.getFullyApprovedFn(ctx)
}
func (m *mockEventRepo) GetHistory(ctx context.Context, eventType, venue string, limit int64) ([]*entity.Event, error) {
	return m.getHistoryFn(ctx, eventType, venue, limit)
}
func (m *mockEventRepo) UpdateApproverStatus(ctx context.Context, eventID primitive.ObjectID, approverEmail string, status entity.ApprovalStatus, actedAt time.Time) (*entity.Event, error) {
	return m.updateApproverStatusFn(ctx, eventID, approverEmail, status, actedAt)
}

// --- Mock ResourceRepository ---

type mockResourceRepo struct {
	upsertFn        func(ctx context.Context, eventID primitive.ObjectID, recommended entity.ResourceMap, generatedAt time.Time) (*entity.ResourceAllocation, error)
	confirmFn       func(ctx context.Context, eventID primitive.ObjectID, edited entity.ResourceMap, confirmedBy string, confirmedAt time.Time) (*entity.ResourceAllocation, error)
	getByEventIDFn  func(ctx context.Context, eventID primitive.ObjectID) (*entity.ResourceAllocation, error)
	getByEventIDsFn func(ctx context.Context, eventIDs []primitive.ObjectID) ([]*entity.ResourceAllocation, error)
	getConfirmedFn  func(ctx context.Context) ([]*entity.ResourceAllocation, error)
}

func (m *mockResourceRepo) UpsertRecommendation(ctx context.Context, eventID primitive.ObjectID, recommended entity.ResourceMap, generatedAt time.Time) (*entity.ResourceAllocation, error) {
	return m.upsertFn(ctx, eventID, recommended, generatedAt)
}
func (m *mockResourceRepo) Confirm(ctx context.Context, eventID primitive.ObjectID, edited entity.ResourceMap, confirmedBy string, confirmedAt time.Time) (*entity.ResourceAllocation, error) {
	return m.confirmFn(ctx, eventID, edited, confirmedBy, confirmedAt)
}
func (m *mockResourceRepo) GetByEventID(ctx context.Context, eventID primitive.ObjectID) (*entity.ResourceAllocation, error) {
	return m.getByEventIDFn(ctx, eventID)
}
func (m *mockResourceRepo) GetByEventIDs(ctx context.Context, eventIDs []primitive.ObjectID) ([]*entity.ResourceAllocation, error) {
	return m.getByEventIDsFn(ctx, eventIDs)
}
func (m *mockResourceRepo) GetConfirmed(ctx context.Context) ([]*entity.ResourceAllocation, error) {
	return m.getConfirmedFn(ctx)
}

// --- Mock VenueRepository ---

type mockVenueRepo struct {
	getAllFn     func(ctx context.Context) ([]*entity.Venue, error)
	getByNameFn  func(ctx context.Context, name string) (*entity.Venue, error)
	replaceAllFn func(ctx context.Context, venues []*entity.Venue) error
}

func (m *mockVenueRepo) GetAll(ctx context.Context) ([]*entity.Venue, error) {
	return m.getAllFn(ctx)
}
func (m *mockVenueRepo) GetByName(ctx context.Context, name string) (*entity.Venue, error) {
	return m.getByNameFn(ctx, name)
}
func (m *mockVenueRepo) ReplaceAll(ctx context.Context, venues []*entity.Venue) error {
	return m.replaceAllFn(ctx, venues)
}

// --- Mock UserRepository ---

type mockUserRepo struct {
	createFn          func(ctx context.Context, user *entity.User) error
	getByExternalIDFn func(ctx context.Context, externalID string) (*entity.User, error)
	getByEmailFn      func(ctx context.Context, email string) (*entity.User, error)
	isApproverFn      func(ctx context.Context, email string) (bool, error)
	updateUserTypeFn  func(ctx context.Context, email string, userType entity.UserType) error
}

func (m *mockUserRepo) Create(ctx context.Context, user *entity.User) error {
	return m.createFn(ctx, user)
}
func (m *mockUserRepo) GetByExternalID(ctx context.Context, externalID string) (*entity.User, error) {
	return m.getByExternalIDFn(ctx, externalID)
}
func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return m.getByEmailFn(ctx, email)
}
func (m *mockUserRepo) IsApprover(ctx context.Context, email string) (bool, error) {
	return m.isApproverFn(ctx, email)
}
func (m *mockUserRepo) UpdateUserType(ctx context.Context, email string, userType entity.UserType) error {
	return m.updateUserTypeFn(ctx, email, userType)
}

// --- Collaborator stubs ---

type stubRecommender struct {
	fn func(ctx context.Context, req *aiclient.RecommendationRequest) (map[string]interface{}, error)
}

func (s *stubRecommender) RecommendResources(ctx context.Context, req *aiclient.RecommendationRequest) (map[string]interface{}, error) {
	return s.fn(ctx, req)
}

type stubPrioritizer struct {
	fn func(ctx context.Context, payload interface{}, out interface{}) error
}

func (s *stubPrioritizer) PrioritizeEvents(ctx context.Context, payload interface{}, out interface{}) error {
	return s.fn(ctx, payload, out)
}

type stubMailer struct {
	sent   []string
	failTo map[string]error
}

func (s *stubMailer) Send(to, subject, text, html string) error {
	if err, ok := s.failTo[to]; ok {
		return err
	}
	s.sent = append(s.sent, to)
	return nil
}

type stubCardPoster struct {
	cards []webhook.MessageCard
	err   error
}

func (s *stubCardPoster) SendCard(ctx context.Context, card webhook.MessageCard) error {
	if s.err != nil {
		return s.err
	}
	s.cards = append(s.cards, card)
	return nil
}

type stubPublisher struct {
	tasks []*Task
	err   error
}

func (s *stubPublisher) Publish(ctx context.Context, task *Task) error {
	if s.err != nil {
		return s.err
	}
	s.tasks = append(s.tasks, task)
	return nil
}

type stubChains struct {
	chain []*entity.Approver
}

func (s *stubChains) ChainFor(eventType string) []*entity.Approver {
	return s.chain
}

type stubResourceService struct {
	recommendFn func(ctx context.Context, eventID string) (*entity.ResourceAllocation, error)
}

func (s *stubResourceService) Recommend(ctx context.Context, eventID string) (*entity.ResourceAllocation, error) {
	return s.recommendFn(ctx, eventID)
}
func (s *stubResourceService) ConfirmAllocation(ctx context.Context, req *ConfirmRequest) (*entity.ResourceAllocation, []NotificationStatus, error) {
	panic("not expected")
}
func (s *stubResourceService) AllocationsForOrganizer(ctx context.Context, email string) ([]*entity.ResourceAllocation, error) {
	panic("not expected")
}
