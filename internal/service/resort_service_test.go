package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "blizzint/internal/errors"
	"blizzint/internal/model"
	"blizzint/internal/repository"
)

// MockResortRepository is a mock implementation of ResortRepository.
type MockResortRepository struct {
	mock.Mock
}

func (m *MockResortRepository) Create(ctx context.Context, resort *model.Resort) error {
	args := m.Called(ctx, resort)
	return args.Error(0)
}

func (m *MockResortRepository) Update(ctx context.Context, resort *model.Resort) error {
	args := m.Called(ctx, resort)
	return args.Error(0)
}

func (m *MockResortRepository) FindByID(ctx context.Context, id uint) (*model.Resort, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Resort), args.Error(1)
}

func (m *MockResortRepository) FindBySlug(ctx context.Context, slug string) (*model.Resort, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Resort), args.Error(1)
}

func (m *MockResortRepository) List(ctx context.Context, f repository.ResortFilter) ([]model.Resort, int64, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]model.Resort), args.Get(1).(int64), args.Error(2)
}

func (m *MockResortRepository) SearchByName(ctx context.Context, query string, limit int) ([]model.Resort, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Resort), args.Error(1)
}

func (m *MockResortRepository) FindNearby(ctx context.Context, lat, lng, radiusMeters float64) ([]model.ResortWithDistance, error) {
	args := m.Called(ctx, lat, lng, radiusMeters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ResortWithDistance), args.Error(1)
}

func (m *MockResortRepository) Delete(ctx context.Context, id uint) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func intPtr(v int) *int { return &v }

func TestResortService_ListResorts_Defaults(t *testing.T) {
	mockRepo := new(MockResortRepository)
	var captured repository.ResortFilter
	mockRepo.On("List", mock.Anything, mock.AnythingOfType("repository.ResortFilter")).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(repository.ResortFilter)
		}).
		Return([]model.Resort{{ID: 1, Name: "Vail"}}, int64(1), nil)

	svc := NewResortService(mockRepo, nil)
	page, err := svc.ListResorts(context.Background(), ListResortsParams{})

	assert.NoError(t, err)
	assert.Equal(t, "name", captured.SortBy)
	assert.Equal(t, "asc", captured.SortOrder)
	assert.Equal(t, 100, captured.Limit)
	assert.Equal(t, 0, captured.Offset)
	assert.Equal(t, 1, page.Pagination.Page)
	assert.Equal(t, 100, page.Pagination.Limit)
	assert.Equal(t, int64(1), page.Pagination.Total)
	assert.Equal(t, 1, page.Pagination.Pages)
	mockRepo.AssertExpectations(t)
}

func TestResortService_ListResorts_SortAllowList(t *testing.T) {
	tests := []struct {
		name          string
		sortBy        string
		sortOrder     string
		expectedBy    string
		expectedOrder string
	}{
		{"allowed column", "vertical_drop_ft", "desc", "vertical_drop_ft", "desc"},
		{"unknown column falls back to name", "password_hash", "asc", "name", "asc"},
		{"bad order falls back to asc", "trail_count", "sideways", "trail_count", "asc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockResortRepository)
			var captured repository.ResortFilter
			mockRepo.On("List", mock.Anything, mock.AnythingOfType("repository.ResortFilter")).
				Run(func(args mock.Arguments) {
					captured = args.Get(1).(repository.ResortFilter)
				}).
				Return([]model.Resort{}, int64(0), nil)

			svc := NewResortService(mockRepo, nil)
			_, err := svc.ListResorts(context.Background(), ListResortsParams{
				SortBy:    tt.sortBy,
				SortOrder: tt.sortOrder,
			})

			assert.NoError(t, err)
			assert.Equal(t, tt.expectedBy, captured.SortBy)
			assert.Equal(t, tt.expectedOrder, captured.SortOrder)
		})
	}
}

func TestResortService_ListResorts_PaginationEnvelope(t *testing.T) {
	mockRepo := new(MockResortRepository)
	var captured repository.ResortFilter
	mockRepo.On("List", mock.Anything, mock.AnythingOfType("repository.ResortFilter")).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(repository.ResortFilter)
		}).
		Return([]model.Resort{}, int64(250), nil)

	svc := NewResortService(mockRepo, nil)
	page, err := svc.ListResorts(context.Background(), ListResortsParams{
		Country:         "US",
		MinVerticalDrop: intPtr(3000),
		Page:            2,
		Limit:           100,
	})

	assert.NoError(t, err)
	assert.Equal(t, "US", captured.Country)
	assert.Equal(t, 3000, *captured.MinVerticalDrop)
	assert.Equal(t, 100, captured.Offset)
	// total reflects the filtered count, so pages stays consistent
	assert.Equal(t, 2, page.Pagination.Page)
	assert.Equal(t, int64(250), page.Pagination.Total)
	assert.Equal(t, 3, page.Pagination.Pages)
}

func TestResortService_SearchResorts(t *testing.T) {
	mockRepo := new(MockResortRepository)
	mockRepo.On("SearchByName", mock.Anything, "butte", 50).
		Return([]model.Resort{{ID: 3, Name: "Crested Butte"}}, nil)

	svc := NewResortService(mockRepo, nil)
	resorts, err := svc.SearchResorts(context.Background(), "butte")

	assert.NoError(t, err)
	assert.Len(t, resorts, 1)
	mockRepo.AssertExpectations(t)
}

func TestResortService_NearbyResorts(t *testing.T) {
	t.Run("default radius of 50 miles", func(t *testing.T) {
		defaultMeters := 50.0
		defaultMeters *= 1609.34

		mockRepo := new(MockResortRepository)
		mockRepo.On("FindNearby", mock.Anything, 39.6, -106.3, defaultMeters).
			Return([]model.ResortWithDistance{}, nil)

		svc := NewResortService(mockRepo, nil)
		_, err := svc.NearbyResorts(context.Background(), 39.6, -106.3, 0)

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("explicit radius converted to meters", func(t *testing.T) {
		radiusMeters := 10.0
		radiusMeters *= 1609.34

		mockRepo := new(MockResortRepository)
		mockRepo.On("FindNearby", mock.Anything, 40.0, -111.5, radiusMeters).
			Return([]model.ResortWithDistance{
				{Resort: model.Resort{ID: 1}, DistanceMiles: 2.4},
				{Resort: model.Resort{ID: 2}, DistanceMiles: 8.9},
			}, nil)

		svc := NewResortService(mockRepo, nil)
		resorts, err := svc.NearbyResorts(context.Background(), 40.0, -111.5, 10)

		assert.NoError(t, err)
		assert.Len(t, resorts, 2)
		assert.LessOrEqual(t, resorts[0].DistanceMiles, resorts[1].DistanceMiles)
	})
}

func TestResortService_GetResortByIDOrSlug(t *testing.T) {
	t.Run("numeric identifier looks up by id", func(t *testing.T) {
		mockRepo := new(MockResortRepository)
		mockRepo.On("FindByID", mock.Anything, uint(12)).Return(&model.Resort{ID: 12, Name: "Vail"}, nil)

		svc := NewResortService(mockRepo, nil)
		resort, err := svc.GetResortByIDOrSlug(context.Background(), "12")

		assert.NoError(t, err)
		assert.Equal(t, uint(12), resort.ID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("non-numeric identifier looks up by slug", func(t *testing.T) {
		mockRepo := new(MockResortRepository)
		mockRepo.On("FindBySlug", mock.Anything, "vail").Return(&model.Resort{ID: 12, Slug: "vail"}, nil)

		svc := NewResortService(mockRepo, nil)
		resort, err := svc.GetResortByIDOrSlug(context.Background(), "vail")

		assert.NoError(t, err)
		assert.Equal(t, "vail", resort.Slug)
		mockRepo.AssertExpectations(t)
	})

	t.Run("missing resort", func(t *testing.T) {
		mockRepo := new(MockResortRepository)
		mockRepo.On("FindBySlug", mock.Anything, "nope").Return(nil, gorm.ErrRecordNotFound)

		svc := NewResortService(mockRepo, nil)
		resort, err := svc.GetResortByIDOrSlug(context.Background(), "nope")

		assert.Nil(t, resort)
		assert.Equal(t, apperrors.ErrResortNotFound, err)
	})
}

func TestResortService_CreateResort(t *testing.T) {
	mockRepo := new(MockResortRepository)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Resort")).Return(nil)

	svc := NewResortService(mockRepo, nil)
	resort, err := svc.CreateResort(context.Background(), &model.Resort{Name: "Vail Resort"})

	assert.NoError(t, err)
	assert.Equal(t, "vail-resort", resort.Slug)
	mockRepo.AssertExpectations(t)
}

func TestResortService_UpdateResort(t *testing.T) {
	t.Run("name change regenerates slug", func(t *testing.T) {
		mockRepo := new(MockResortRepository)
		mockRepo.On("FindByID", mock.Anything, uint(5)).Return(&model.Resort{
			ID:   5,
			Name: "Old Name",
			Slug: "old-name",
		}, nil)
		mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Resort")).Return(nil)

		svc := NewResortService(mockRepo, nil)
		resort, err := svc.UpdateResort(context.Background(), 5, &model.Resort{Name: "New Name!"})

		assert.NoError(t, err)
		assert.Equal(t, uint(5), resort.ID)
		assert.Equal(t, "new-name", resort.Slug)
		mockRepo.AssertExpectations(t)
	})

	t.Run("unchanged name keeps slug", func(t *testing.T) {
		mockRepo := new(MockResortRepository)
		mockRepo.On("FindByID", mock.Anything, uint(5)).Return(&model.Resort{
			ID:   5,
			Name: "Same Name",
			Slug: "same-name",
		}, nil)
		mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Resort")).Return(nil)

		svc := NewResortService(mockRepo, nil)
		resort, err := svc.UpdateResort(context.Background(), 5, &model.Resort{Name: "Same Name"})

		assert.NoError(t, err)
		assert.Equal(t, "same-name", resort.Slug)
	})

	t.Run("missing resort", func(t *testing.T) {
		mockRepo := new(MockResortRepository)
		mockRepo.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

		svc := NewResortService(mockRepo, nil)
		resort, err := svc.UpdateResort(context.Background(), 99, &model.Resort{Name: "Whatever"})

		assert.Nil(t, resort)
		assert.Equal(t, apperrors.ErrResortNotFound, err)
	})
}

func TestResortService_DeleteResort(t *testing.T) {
	t.Run("existing resort", func(t *testing.T) {
		mockRepo := new(MockResortRepository)
		mockRepo.On("FindByID", mock.Anything, uint(5)).Return(&model.Resort{ID: 5, Slug: "vail"}, nil)
		mockRepo.On("Delete", mock.Anything, uint(5)).Return(int64(1), nil)

		svc := NewResortService(mockRepo, nil)
		assert.NoError(t, svc.DeleteResort(context.Background(), 5))
		mockRepo.AssertExpectations(t)
	})

	t.Run("missing resort", func(t *testing.T) {
		mockRepo := new(MockResortRepository)
		mockRepo.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

		svc := NewResortService(mockRepo, nil)
		assert.Equal(t, apperrors.ErrResortNotFound, svc.DeleteResort(context.Background(), 99))
	})
}
