package handler

import (
	"net/http"

	"foodorder/internal/config"
	"foodorder/internal/repository"
	"foodorder/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /payments のHTTP（モック決済）
type PaymentHandler struct {
	uc *usecase.PaymentUsecase
}

func NewPaymentHandler(uc *usecase.PaymentUsecase) *PaymentHandler {
	return &PaymentHandler{uc: uc}
}

// true/false以外はnilのまま
type payOrderRequest struct {
	Success *bool `json:"success"`
}

func (h *PaymentHandler) RegisterRoutes(api *echo.Group, cfg config.Config, userRepo repository.UserRepository) {
	g := api.Group("/payments", authRequired(cfg, userRepo)...)
	g.POST("/pay/:orderId", h.pay)
}

func (h *PaymentHandler) pay(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	orderID, ok := paramID(c, "orderId")
	if !ok {
		return c.JSON(http.StatusNotFound, ErrorResponse{Message: "Order not found"})
	}

	var req payOrderRequest
	if err := c.Bind(&req); err != nil {
		// "yes" や 1 はここで落ちる
		return badRequest(c, "success must be true or false")
	}

	out, err := h.uc.PayOrder(c.Request().Context(), userID, orderID, usecase.PayOrderInput{
		Success: req.Success,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}
