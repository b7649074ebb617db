package person

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/FACorreiaa/go-typeahead/internal/api"
	"github.com/FACorreiaa/go-typeahead/internal/types"
)

type MockPersonRepository struct {
	mock.Mock
}

func (m *MockPersonRepository) SearchByNamePrefix(ctx context.Context, prefix string, limit, offset int) ([]types.PersonLite, error) {
	args := m.Called(ctx, prefix, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.PersonLite), args.Error(1)
}

func (m *MockPersonRepository) FindByID(ctx context.Context, id int) (*types.PersonLite, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.PersonLite), args.Error(1)
}

func testServiceOptions() ServiceOptions {
	return ServiceOptions{PageSize: 20, CacheTTL: time.Minute, CacheCleanup: time.Minute}
}

func TestPersonServiceSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("Caches results per prefix and offset", func(t *testing.T) {
		mockRepo := new(MockPersonRepository)
		service := NewPersonService(mockRepo, testServiceOptions(), nil, discardLogger())

		expected := []types.PersonLite{{Id: 1, Name: "Ada Lovelace"}}
		mockRepo.On("SearchByNamePrefix", mock.Anything, "ada", 20, 0).Return(expected, nil).Once()

		first, err := service.Search(ctx, "ada", 0)
		assert.NoError(t, err)
		second, err := service.Search(ctx, "ada", 0)
		assert.NoError(t, err)

		assert.Equal(t, expected, first)
		assert.Equal(t, expected, second)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Different offset misses the cache", func(t *testing.T) {
		mockRepo := new(MockPersonRepository)
		service := NewPersonService(mockRepo, testServiceOptions(), nil, discardLogger())

		mockRepo.On("SearchByNamePrefix", mock.Anything, "ada", 20, 0).Return([]types.PersonLite{}, nil).Once()
		mockRepo.On("SearchByNamePrefix", mock.Anything, "ada", 20, 20).Return([]types.PersonLite{}, nil).Once()

		_, err := service.Search(ctx, "ada", 0)
		assert.NoError(t, err)
		_, err = service.Search(ctx, "ada", 20)
		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Repository error is not cached", func(t *testing.T) {
		mockRepo := new(MockPersonRepository)
		service := NewPersonService(mockRepo, testServiceOptions(), nil, discardLogger())

		mockRepo.On("SearchByNamePrefix", mock.Anything, "bob", 20, 0).Return(nil, errors.New("db down")).Twice()

		_, err := service.Search(ctx, "bob", 0)
		assert.Error(t, err)
		_, err = service.Search(ctx, "bob", 0)
		assert.Error(t, err)
		mockRepo.AssertExpectations(t)
	})
}

func TestPersonServiceGetByID(t *testing.T) {
	mockRepo := new(MockPersonRepository)
	service := NewPersonService(mockRepo, testServiceOptions(), nil, discardLogger())

	mockRepo.On("FindByID", mock.Anything, 3).Return(nil, api.ErrNotFound).Once()

	p, err := service.GetByID(context.Background(), 3)
	assert.Nil(t, p)
	assert.ErrorIs(t, err, api.ErrNotFound)
	mockRepo.AssertExpectations(t)
}
