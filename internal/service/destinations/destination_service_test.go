package destinations

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/skylinetravels/flightbooking/internal/domain"
)

type MockDestinationRepository struct {
	mock.Mock
}

func (m *MockDestinationRepository) List(ctx context.Context, filter domain.DestinationFilter) ([]domain.Destination, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Destination), args.Error(1)
}

func (m *MockDestinationRepository) GetByID(ctx context.Context, id string) (*domain.Destination, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Destination), args.Error(1)
}

func (m *MockDestinationRepository) Create(ctx context.Context, d *domain.Destination) error {
	return m.Called(ctx, d).Error(0)
}

func (m *MockDestinationRepository) Update(ctx context.Context, d *domain.Destination) error {
	return m.Called(ctx, d).Error(0)
}

func (m *MockDestinationRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockDestinationRepository) DeleteAll(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) DestinationsGeneration(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCache) GetDestinations(ctx context.Context, gen int64, filter domain.DestinationFilter) ([]domain.Destination, error) {
	args := m.Called(ctx, gen, filter)
	return args.Get(0).([]domain.Destination), args.Error(1)
}

func (m *MockCache) SetDestinations(ctx context.Context, gen int64, filter domain.DestinationFilter, destinations []domain.Destination) error {
	return m.Called(ctx, gen, filter, destinations).Error(0)
}

func (m *MockCache) InvalidateDestinations(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func paris() domain.Destination {
	return domain.Destination{
		ID:              "d-1",
		Name:            "Paris",
		Country:         "France",
		Description:     "The City of Light",
		Image:           "https://images.example.com/paris.jpg",
		Rating:          4.8,
		PopularityScore: 95,
	}
}

func TestDestinationService_List_CacheMiss(t *testing.T) {
	mockRepo := &MockDestinationRepository{}
	mockCache := &MockCache{}
	service := NewDestinationService(mockRepo, mockCache, testLogger())

	ctx := context.Background()
	filter := domain.DestinationFilter{Country: "France"}
	list := []domain.Destination{paris()}

	mockCache.On("DestinationsGeneration", ctx).Return(int64(3), nil).Once()
	mockCache.On("GetDestinations", ctx, int64(3), filter).Return(([]domain.Destination)(nil), nil).Once()
	mockRepo.On("List", ctx, filter).Return(list, nil).Once()
	mockCache.On("SetDestinations", ctx, int64(3), filter, list).Return(nil).Once()

	result, err := service.List(ctx, filter)

	assert.NoError(t, err)
	assert.Equal(t, list, result)
	mockRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestDestinationService_List_CacheHit(t *testing.T) {
	mockRepo := &MockDestinationRepository{}
	mockCache := &MockCache{}
	service := NewDestinationService(mockRepo, mockCache, testLogger())

	ctx := context.Background()
	list := []domain.Destination{paris()}
	mockCache.On("DestinationsGeneration", ctx).Return(int64(0), nil).Once()
	mockCache.On("GetDestinations", ctx, int64(0), domain.DestinationFilter{}).Return(list, nil).Once()

	result, err := service.List(ctx, domain.DestinationFilter{})

	assert.NoError(t, err)
	assert.Equal(t, list, result)
	mockRepo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestDestinationService_List_GenerationUnavailable(t *testing.T) {
	mockRepo := &MockDestinationRepository{}
	mockCache := &MockCache{}
	service := NewDestinationService(mockRepo, mockCache, testLogger())

	ctx := context.Background()
	list := []domain.Destination{paris()}
	mockCache.On("DestinationsGeneration", ctx).Return(int64(0), errors.New("connection refused")).Once()
	mockRepo.On("List", ctx, domain.DestinationFilter{}).Return(list, nil).Once()

	result, err := service.List(ctx, domain.DestinationFilter{})

	assert.NoError(t, err)
	assert.Equal(t, list, result)
	mockCache.AssertNotCalled(t, "SetDestinations", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDestinationService_Create_DefaultRating(t *testing.T) {
	mockRepo := &MockDestinationRepository{}
	mockCache := &MockCache{}
	service := NewDestinationService(mockRepo, mockCache, testLogger())

	ctx := context.Background()
	input := paris()
	input.ID = ""
	input.Rating = 0

	mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.Destination")).Return(nil).Once()
	mockCache.On("InvalidateDestinations", ctx).Return(nil).Once()

	created, err := service.Create(ctx, input)

	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, domain.DefaultDestinationRating, created.Rating)
	mockCache.AssertExpectations(t)
}

func TestDestinationService_Create_Invalid(t *testing.T) {
	mockRepo := &MockDestinationRepository{}
	service := NewDestinationService(mockRepo, nil, testLogger())

	input := paris()
	input.Image = ""

	_, err := service.Create(context.Background(), input)

	assert.EqualError(t, err, "image is required")
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestDestinationService_Update(t *testing.T) {
	mockRepo := &MockDestinationRepository{}
	mockCache := &MockCache{}
	service := NewDestinationService(mockRepo, mockCache, testLogger())

	ctx := context.Background()
	current := paris()
	mockRepo.On("GetByID", ctx, "d-1").Return(&current, nil).Once()
	mockRepo.On("Update", ctx, mock.MatchedBy(func(d *domain.Destination) bool {
		return d.PopularityScore == 99 && d.Name == "Paris"
	})).Return(nil).Once()
	mockCache.On("InvalidateDestinations", ctx).Return(nil).Once()

	score := 99
	updated, err := service.Update(ctx, "d-1", domain.DestinationPatch{PopularityScore: &score})

	require.NoError(t, err)
	assert.Equal(t, 99, updated.PopularityScore)
	mockRepo.AssertExpectations(t)
}

func TestDestinationService_Update_NotFound(t *testing.T) {
	mockRepo := &MockDestinationRepository{}
	service := NewDestinationService(mockRepo, nil, testLogger())

	ctx := context.Background()
	mockRepo.On("GetByID", ctx, "missing").Return(nil, domain.NotFound("destination")).Once()

	_, err := service.Update(ctx, "missing", domain.DestinationPatch{})

	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestDestinationService_Delete(t *testing.T) {
	mockRepo := &MockDestinationRepository{}
	mockCache := &MockCache{}
	service := NewDestinationService(mockRepo, mockCache, testLogger())

	ctx := context.Background()
	mockRepo.On("Delete", ctx, "d-1").Return(nil).Once()
	mockCache.On("InvalidateDestinations", ctx).Return(nil).Once()

	assert.NoError(t, service.Delete(ctx, "d-1"))
	mockCache.AssertExpectations(t)
}
