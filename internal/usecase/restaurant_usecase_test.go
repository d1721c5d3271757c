package usecase

import (
	"context"
	"errors"
	"testing"

	"app/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// Mocks（衝突回避の命名）
// =====================

type RestRestaurantRepoMock struct{ mock.Mock }

func (m *RestRestaurantRepoMock) ListAll(ctx context.Context) ([]model.Restaurant, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.Restaurant)
	return items, args.Error(1)
}

func (m *RestRestaurantRepoMock) FindByName(ctx context.Context, name string) (model.Restaurant, error) {
	args := m.Called(ctx, name)
	r, _ := args.Get(0).(model.Restaurant)
	return r, args.Error(1)
}

func (m *RestRestaurantRepoMock) ListMenuItems(ctx context.Context, restaurantName string) ([]model.MenuItem, error) {
	args := m.Called(ctx, restaurantName)
	items, _ := args.Get(0).([]model.MenuItem)
	return items, args.Error(1)
}

func (m *RestRestaurantRepoMock) Create(ctx context.Context, r model.Restaurant) (model.Restaurant, error) {
	args := m.Called(ctx, r)
	created, _ := args.Get(0).(model.Restaurant)
	return created, args.Error(1)
}

func (m *RestRestaurantRepoMock) AddMenuItem(ctx context.Context, item model.MenuItem) (model.MenuItem, error) {
	args := m.Called(ctx, item)
	created, _ := args.Get(0).(model.MenuItem)
	return created, args.Error(1)
}

func catalog() []model.Restaurant {
	return []model.Restaurant{
		{Name: "Sushi House", CuisineType: "Japanese", PriceRange: model.PriceRangeModerate, Rating: 4},
		{Name: "Thai Kitchen", CuisineType: "Thai", PriceRange: model.PriceRangeBudget, Rating: 5},
		{Name: "Trattoria Roma", CuisineType: "Italian", PriceRange: model.PriceRangeExpensive, Rating: 3},
	}
}

// =====================
// 検索（純関数）
// =====================

func TestSearchRestaurants_CaseInsensitiveSubstring(t *testing.T) {
	in := []model.Restaurant{
		{Name: "Sushi House"},
		{Name: "Thai Kitchen"},
	}

	out := SearchRestaurants(in, "sushi")
	assert.Len(t, out, 1)
	assert.Equal(t, "Sushi House", out[0].Name)

	out = SearchRestaurants(in, "SUSHI")
	assert.Len(t, out, 1)
}

func TestSearchRestaurants_BlankQueryReturnsAllUnmodified(t *testing.T) {
	in := catalog()

	out := SearchRestaurants(in, "")
	assert.Equal(t, in, out)

	out = SearchRestaurants(in, "   ")
	assert.Equal(t, in, out)
}

func TestSearchRestaurants_PreservesCatalogOrder(t *testing.T) {
	in := []model.Restaurant{
		{Name: "Zen Sushi"},
		{Name: "Akira Sushi"},
	}

	out := SearchRestaurants(in, "sushi")
	assert.Equal(t, "Zen Sushi", out[0].Name)
	assert.Equal(t, "Akira Sushi", out[1].Name)
}

// =====================
// 絞り込み（純関数）
// =====================

func TestFilterRestaurants_CuisineAndMinRatingAND(t *testing.T) {
	in := []model.Restaurant{
		{Name: "A", CuisineType: "Italian", Rating: 3},
		{Name: "B", CuisineType: "Thai", Rating: 5},
		{Name: "C", CuisineType: "Italian", Rating: 4},
	}

	out := FilterRestaurants(in, FilterInput{CuisineType: "Italian", PriceRange: "all", MinRating: 4})
	assert.Len(t, out, 1)
	assert.Equal(t, "C", out[0].Name)
}

func TestFilterRestaurants_DefaultPassesEverything(t *testing.T) {
	in := catalog()
	out := FilterRestaurants(in, DefaultFilter())
	assert.Equal(t, in, out)
}

func TestFilterRestaurants_CuisineMatchIsCaseSensitive(t *testing.T) {
	in := []model.Restaurant{{Name: "A", CuisineType: "Italian", Rating: 5}}

	out := FilterRestaurants(in, FilterInput{CuisineType: "italian", PriceRange: "all", MinRating: 0})
	assert.Empty(t, out)
}

func TestFilterRestaurants_PriceRange(t *testing.T) {
	out := FilterRestaurants(catalog(), FilterInput{CuisineType: "all", PriceRange: "budget", MinRating: 0})
	assert.Len(t, out, 1)
	assert.Equal(t, "Thai Kitchen", out[0].Name)
}

func TestFilterRestaurants_MinRatingZeroAlwaysPasses(t *testing.T) {
	in := []model.Restaurant{{Name: "A", CuisineType: "Thai", Rating: 0}}

	out := FilterRestaurants(in, FilterInput{CuisineType: "all", PriceRange: "all", MinRating: 0})
	assert.Len(t, out, 1)
}

func TestDefaultFilter(t *testing.T) {
	f := DefaultFilter()
	assert.Equal(t, "all", f.CuisineType)
	assert.Equal(t, "all", f.PriceRange)
	assert.Equal(t, 0, f.MinRating)
}

// =====================
// ListRestaurants / ListMenu
// =====================

func TestRestaurantUsecase_ListRestaurants_EmptyCatalogIsEmptyResult(t *testing.T) {
	ctx := context.Background()
	rRepo := new(RestRestaurantRepoMock)
	uc := NewRestaurantUsecase(rRepo)

	rRepo.On("ListAll", mock.Anything).Return([]model.Restaurant{}, nil)

	out, err := uc.ListRestaurants(ctx, ListRestaurantsInput{Filter: DefaultFilter()})
	assert.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestRestaurantUsecase_ListRestaurants_AppliesSearchThenFilter(t *testing.T) {
	ctx := context.Background()
	rRepo := new(RestRestaurantRepoMock)
	uc := NewRestaurantUsecase(rRepo)

	rRepo.On("ListAll", mock.Anything).Return(catalog(), nil)

	out, err := uc.ListRestaurants(ctx, ListRestaurantsInput{
		Query: "kitchen",
		Filter: FilterInput{
			CuisineType: "Thai", PriceRange: "all", MinRating: 5,
		},
	})
	assert.NoError(t, err)
	assert.Len(t, out, 1)
	assert.Equal(t, "Thai Kitchen", out[0].Name)
}

func TestRestaurantUsecase_ListRestaurants_DBError(t *testing.T) {
	ctx := context.Background()
	rRepo := new(RestRestaurantRepoMock)
	uc := NewRestaurantUsecase(rRepo)

	rRepo.On("ListAll", mock.Anything).Return(nil, errors.New("boom"))

	_, err := uc.ListRestaurants(ctx, ListRestaurantsInput{Filter: DefaultFilter()})
	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 500, he.Status)
}

func TestRestaurantUsecase_ListMenu_EmptyMenuIsEmptyResult(t *testing.T) {
	ctx := context.Background()
	rRepo := new(RestRestaurantRepoMock)
	uc := NewRestaurantUsecase(rRepo)

	rRepo.On("ListMenuItems", mock.Anything, "Nowhere").Return(nil, nil)

	out, err := uc.ListMenu(ctx, "Nowhere")
	assert.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}
