package handler

import (
	"net/http"

	"app/internal/domain/model"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /cartのHTTP。認証は不要で、セッションCookie単位で状態を持つ
type CartHandler struct {
	uc *usecase.CartUsecase
}

// DI
func NewCartHandler(uc *usecase.CartUsecase) *CartHandler {
	return &CartHandler{uc: uc}
}

type AddItemRequest struct {
	RestaurantName string `json:"restaurant_name"`
	Item           struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Price       int64  `json:"price"`
		Category    string `json:"category"`
	} `json:"item"`
}

type UpdateQuantityRequest struct {
	RestaurantName string `json:"restaurant_name"`
	ItemName       string `json:"item_name"`
	Quantity       int64  `json:"quantity"`
}

func (h *CartHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/cart")
	g.Use(middleware.CartSession())

	g.GET("", h.getCart)
	g.POST("/items", h.addItem)
	g.PATCH("/items", h.updateQuantity)
	g.DELETE("/items", h.removeItem)
	g.DELETE("", h.clearCart)
}

func (h *CartHandler) getCart(c echo.Context) error {
	sessionID, ok := getSessionIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing session"})
	}

	out, err := h.uc.GetCart(c.Request().Context(), sessionID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) addItem(c echo.Context) error {
	sessionID, ok := getSessionIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing session"})
	}

	var req AddItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.AddItem(c.Request().Context(), sessionID, usecase.AddItemInput{
		RestaurantName: req.RestaurantName,
		Item: model.MenuItemSnapshot{
			Name:        req.Item.Name,
			Description: req.Item.Description,
			Price:       req.Item.Price,
			Category:    req.Item.Category,
		},
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) updateQuantity(c echo.Context) error {
	sessionID, ok := getSessionIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing session"})
	}

	var req UpdateQuantityRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.UpdateQuantity(c.Request().Context(), sessionID, usecase.UpdateQuantityInput{
		RestaurantName: req.RestaurantName,
		ItemName:       req.ItemName,
		Quantity:       req.Quantity,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

// 品名に空白などが入るためクエリパラメータで受ける
func (h *CartHandler) removeItem(c echo.Context) error {
	sessionID, ok := getSessionIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing session"})
	}

	restaurantName := c.QueryParam("restaurant_name")
	itemName := c.QueryParam("item_name")
	if restaurantName == "" || itemName == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "restaurant_name and item_name required"})
	}

	out, err := h.uc.RemoveItem(c.Request().Context(), sessionID, restaurantName, itemName)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) clearCart(c echo.Context) error {
	sessionID, ok := getSessionIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing session"})
	}

	out, err := h.uc.ClearCart(c.Request().Context(), sessionID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}
