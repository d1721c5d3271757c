package handler

import (
	"net/http"
	"strconv"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

//middleware.AuthJWT が c.Set("user_id", int64) した値を取り出す

func getUserIDFromContext(c echo.Context) (int64, bool) {
	v := c.Get(middleware.CtxUserIDKey)
	if v == nil {
		return 0, false
	}

	id, ok := v.(int64)
	if !ok {
		return 0, false
	}

	return id, true
}

//middleware.CartSession が保証したセッションIDを取り出す

func getSessionIDFromContext(c echo.Context) (string, bool) {
	v := c.Get(middleware.CtxSessionIDKey)
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// /restaurants のHTTP
type RestaurantHandler struct {
	uc *usecase.RestaurantUsecase
}

// DI
func NewRestaurantHandler(uc *usecase.RestaurantUsecase) *RestaurantHandler {
	return &RestaurantHandler{uc: uc}
}

type CreateRestaurantRequest struct {
	Name           string   `json:"name"`
	CuisineType    string   `json:"cuisine_type"`
	PriceRange     string   `json:"price_range"`
	Rating         int      `json:"rating"`
	Address        string   `json:"address"`
	Hours          string   `json:"hours"`
	MenuHighlights []string `json:"menu_highlights"`
}

type AddMenuItemRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Category    string `json:"category"`
}

func (h *RestaurantHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	e.GET("/restaurants", h.listRestaurants)
	e.GET("/restaurants/:name/menu", h.listMenu)

	//管理者のみ
	admin := e.Group("/restaurants")
	admin.Use(middleware.AuthJWT(cfg))
	admin.Use(middleware.AdminRoleGuard())
	admin.POST("", h.createRestaurant)
	admin.POST("/:name/menu", h.addMenuItem)
}

// 検索・絞り込みはクエリパラメータで受ける。
// 省略時は全件（"all"/0と同じ）
func (h *RestaurantHandler) listRestaurants(c echo.Context) error {
	filter := usecase.DefaultFilter()
	if v := c.QueryParam("cuisine"); v != "" {
		filter.CuisineType = v
	}
	if v := c.QueryParam("price_range"); v != "" {
		filter.PriceRange = v
	}
	if v := c.QueryParam("min_rating"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > 5 {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid min_rating"})
		}
		filter.MinRating = n
	}

	out, err := h.uc.ListRestaurants(c.Request().Context(), usecase.ListRestaurantsInput{
		Query:  c.QueryParam("q"),
		Filter: filter,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *RestaurantHandler) listMenu(c echo.Context) error {
	out, err := h.uc.ListMenu(c.Request().Context(), c.Param("name"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *RestaurantHandler) createRestaurant(c echo.Context) error {
	var req CreateRestaurantRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.CreateRestaurant(c.Request().Context(), usecase.CreateRestaurantInput{
		Name:           req.Name,
		CuisineType:    req.CuisineType,
		PriceRange:     req.PriceRange,
		Rating:         req.Rating,
		Address:        req.Address,
		Hours:          req.Hours,
		MenuHighlights: req.MenuHighlights,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *RestaurantHandler) addMenuItem(c echo.Context) error {
	var req AddMenuItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.AddMenuItem(c.Request().Context(), c.Param("name"), usecase.AddMenuItemInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}
