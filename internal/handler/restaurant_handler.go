package handler

import (
	"net/http"

	"foodorder/internal/config"
	"foodorder/internal/middleware"
	"foodorder/internal/repository"
	"foodorder/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// /restaurants のHTTP
type RestaurantHandler struct {
	uc *usecase.RestaurantUsecase
}

func NewRestaurantHandler(uc *usecase.RestaurantUsecase) *RestaurantHandler {
	return &RestaurantHandler{uc: uc}
}

type createRestaurantRequest struct {
	Name            string          `json:"name"`
	Cuisine         string          `json:"cuisine"`
	Description     string          `json:"description"`
	Address         string          `json:"address"`
	Phone           string          `json:"phone"`
	Image           string          `json:"image"`
	Rating          float64         `json:"rating"`
	DeliveryTimeMin int             `json:"delivery_time_min"`
	DeliveryTimeMax int             `json:"delivery_time_max"`
	MinOrder        decimal.Decimal `json:"min_order"`
	DeliveryFee     decimal.Decimal `json:"delivery_fee"`
}

// 一覧・詳細は公開、作成は販売者のみ
func (h *RestaurantHandler) RegisterRoutes(api *echo.Group, cfg config.Config, userRepo repository.UserRepository) {
	g := api.Group("/restaurants")

	mw := append(authRequired(cfg, userRepo), middleware.SellerGuard("Only sellers can create restaurants"))
	g.POST("", h.create, mw...)

	g.GET("", h.list)
	g.GET("/:id", h.detail)
	g.GET("/:id/dishes", h.dishes)
}

func (h *RestaurantHandler) create(c echo.Context) error {
	sellerID, ok := getUserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req createRestaurantRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	out, err := h.uc.Create(c.Request().Context(), sellerID, usecase.CreateRestaurantInput{
		Name:            req.Name,
		Cuisine:         req.Cuisine,
		Description:     req.Description,
		Address:         req.Address,
		Phone:           req.Phone,
		Image:           req.Image,
		Rating:          req.Rating,
		DeliveryTimeMin: req.DeliveryTimeMin,
		DeliveryTimeMax: req.DeliveryTimeMax,
		MinOrder:        req.MinOrder,
		DeliveryFee:     req.DeliveryFee,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *RestaurantHandler) list(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *RestaurantHandler) detail(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.JSON(http.StatusNotFound, ErrorResponse{Message: "Restaurant not found"})
	}

	out, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *RestaurantHandler) dishes(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.JSON(http.StatusNotFound, ErrorResponse{Message: "Restaurant not found"})
	}

	out, err := h.uc.ListDishes(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
