package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// 絞り込み条件。"all"と0は「条件なし」
type FilterInput struct {
	CuisineType string
	PriceRange  string
	MinRating   int
}

// デフォルトは全件通す条件
func DefaultFilter() FilterInput {
	return FilterInput{
		CuisineType: "all",
		PriceRange:  "all",
		MinRating:   0,
	}
}

type RestaurantUsecase struct {
	restaurantRepo repo.RestaurantRepository
}

// DI
func NewRestaurantUsecase(restaurantRepo repo.RestaurantRepository) *RestaurantUsecase {
	return &RestaurantUsecase{restaurantRepo: restaurantRepo}
}

// GET /restaurantsの入力DTO
type ListRestaurantsInput struct {
	Query  string
	Filter FilterInput
}

// 検索→絞り込みの順で適用する。空カタログは空配列で返す（エラーにしない）
func (u *RestaurantUsecase) ListRestaurants(ctx context.Context, in ListRestaurantsInput) ([]model.Restaurant, error) {
	all, err := u.restaurantRepo.ListAll(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	result := FilterRestaurants(SearchRestaurants(all, in.Query), in.Filter)
	if result == nil {
		result = []model.Restaurant{}
	}
	return result, nil
}

// レストランのメニュー一覧。未知のレストランでも空配列を返す
func (u *RestaurantUsecase) ListMenu(ctx context.Context, restaurantName string) ([]model.MenuItem, error) {
	if strings.TrimSpace(restaurantName) == "" {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid name")
	}

	items, err := u.restaurantRepo.ListMenuItems(ctx, restaurantName)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if items == nil {
		items = []model.MenuItem{}
	}
	return items, nil
}

// レストラン登録（管理者）
type CreateRestaurantInput struct {
	Name           string
	CuisineType    string
	PriceRange     string
	Rating         int
	Address        string
	Hours          string
	MenuHighlights []string
}

func (u *RestaurantUsecase) CreateRestaurant(ctx context.Context, in CreateRestaurantInput) (model.Restaurant, error) {
	if strings.TrimSpace(in.Name) == "" {
		return model.Restaurant{}, NewHTTPError(http.StatusBadRequest, "invalid name")
	}
	if in.Rating < 0 || in.Rating > 5 {
		return model.Restaurant{}, NewHTTPError(http.StatusBadRequest, "invalid rating")
	}
	switch model.PriceRange(in.PriceRange) {
	case model.PriceRangeBudget, model.PriceRangeModerate, model.PriceRangeExpensive:
	default:
		return model.Restaurant{}, NewHTTPError(http.StatusBadRequest, "invalid price_range")
	}

	created, err := u.restaurantRepo.Create(ctx, model.Restaurant{
		Name:           in.Name,
		CuisineType:    in.CuisineType,
		PriceRange:     model.PriceRange(in.PriceRange),
		Rating:         in.Rating,
		Address:        in.Address,
		Hours:          in.Hours,
		MenuHighlights: in.MenuHighlights,
	})
	if err != nil {
		return model.Restaurant{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return created, nil
}

// メニュー追加（管理者）
type AddMenuItemInput struct {
	Name        string
	Description string
	Price       int64
	Category    string
}

func (u *RestaurantUsecase) AddMenuItem(ctx context.Context, restaurantName string, in AddMenuItemInput) (model.MenuItem, error) {
	if strings.TrimSpace(restaurantName) == "" || strings.TrimSpace(in.Name) == "" {
		return model.MenuItem{}, NewHTTPError(http.StatusBadRequest, "invalid name")
	}
	if in.Price < 0 {
		return model.MenuItem{}, NewHTTPError(http.StatusBadRequest, "invalid price")
	}

	//存在するレストランにだけ追加できる
	if _, err := u.restaurantRepo.FindByName(ctx, restaurantName); err != nil {
		if err == repo.ErrNotFound {
			return model.MenuItem{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return model.MenuItem{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	created, err := u.restaurantRepo.AddMenuItem(ctx, model.MenuItem{
		RestaurantName: restaurantName,
		Name:           in.Name,
		Description:    in.Description,
		Price:          in.Price,
		Category:       in.Category,
	})
	if err != nil {
		return model.MenuItem{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return created, nil
}

// 名前の部分一致検索（大文字小文字を無視）。
// 空白だけのクエリは全件をそのまま返す。並び順は変えない
func SearchRestaurants(restaurants []model.Restaurant, query string) []model.Restaurant {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return restaurants
	}

	result := make([]model.Restaurant, 0, len(restaurants))
	for _, r := range restaurants {
		if strings.Contains(strings.ToLower(r.Name), q) {
			result = append(result, r)
		}
	}
	return result
}

// 3条件のANDで絞り込む。並び順は変えない
func FilterRestaurants(restaurants []model.Restaurant, f FilterInput) []model.Restaurant {
	result := make([]model.Restaurant, 0, len(restaurants))
	for _, r := range restaurants {
		//料理ジャンル（完全一致、大文字小文字を区別）
		if f.CuisineType != "all" && r.CuisineType != f.CuisineType {
			continue
		}
		//価格帯
		if f.PriceRange != "all" && string(r.PriceRange) != f.PriceRange {
			continue
		}
		//評価の下限（0は常に通す）
		if f.MinRating > 0 && r.Rating < f.MinRating {
			continue
		}
		result = append(result, r)
	}
	return result
}
