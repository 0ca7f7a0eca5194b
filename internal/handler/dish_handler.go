package handler

import (
	"net/http"

	"foodorder/internal/config"
	"foodorder/internal/repository"
	"foodorder/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type DishHandler struct {
	uc *usecase.DishUsecase
}

func NewDishHandler(uc *usecase.DishUsecase) *DishHandler {
	return &DishHandler{uc: uc}
}

type dishRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	IsAvailable *bool           `json:"is_available"`
}

func (r dishRequest) toInput() usecase.DishInput {
	return usecase.DishInput{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Image:       r.Image,
		IsAvailable: r.IsAvailable,
	}
}

// 店舗の持ち主かどうかはusecaseで確認する
func (h *DishHandler) RegisterRoutes(api *echo.Group, cfg config.Config, userRepo repository.UserRepository) {
	mw := authRequired(cfg, userRepo)

	api.POST("/restaurants/:id/dishes", h.create, mw...)
	api.GET("/dishes/:dishId", h.detail)
	api.PUT("/dishes/:dishId", h.update, mw...)
	api.DELETE("/dishes/:dishId", h.remove, mw...)
}

func (h *DishHandler) create(c echo.Context) error {
	sellerID, ok := getUserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	restaurantID, ok := paramID(c, "id")
	if !ok {
		return c.JSON(http.StatusNotFound, ErrorResponse{Message: "Restaurant not found"})
	}

	var req dishRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	out, err := h.uc.Create(c.Request().Context(), sellerID, restaurantID, req.toInput())
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *DishHandler) detail(c echo.Context) error {
	dishID, ok := paramID(c, "dishId")
	if !ok {
		return c.JSON(http.StatusNotFound, ErrorResponse{Message: "Dish not found"})
	}

	out, err := h.uc.Get(c.Request().Context(), dishID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *DishHandler) update(c echo.Context) error {
	sellerID, ok := getUserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	dishID, ok := paramID(c, "dishId")
	if !ok {
		return c.JSON(http.StatusNotFound, ErrorResponse{Message: "Dish not found"})
	}

	var req dishRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	out, err := h.uc.Update(c.Request().Context(), sellerID, dishID, req.toInput())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *DishHandler) remove(c echo.Context) error {
	sellerID, ok := getUserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	dishID, ok := paramID(c, "dishId")
	if !ok {
		return c.JSON(http.StatusNotFound, ErrorResponse{Message: "Dish not found"})
	}

	out, err := h.uc.Delete(c.Request().Context(), sellerID, dishID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
