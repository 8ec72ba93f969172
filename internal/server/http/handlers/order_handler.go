package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/server/http/dto"
)

const (
	codeInvalidOrderData    = "INVALID_ORDER_DATA"
	codeFailedCreatingOrder = "FAILED_CREATING_ORDER"
	codeOrderNotFound       = "ORDER_NOT_FOUND"
)

var (
	placeOrderErrors = []errorCase{
		{domainErrors.ErrUserNotFound, http.StatusNotFound, codeUserNotFound},
		{domainErrors.ErrAddressNotFound, http.StatusNotFound, "ADDRESS_NOT_FOUND"},
		{domainErrors.ErrProductNotFound, http.StatusNotFound, "PRODUCT_NOT_FOUND"},
		{domainErrors.ErrOutOfStock, http.StatusUnprocessableEntity, "PRODUCT_OUT_OF_STOCK"},
		{domainErrors.ErrPaymentFailed, http.StatusInternalServerError, "PAYMENT_FAILED"},
	}
	lookupErrors = []errorCase{
		{domainErrors.ErrOrderNotFound, http.StatusNotFound, codeOrderNotFound},
	}
)

// OrderHandler manages order-related endpoints.
type OrderHandler struct {
	facade OrderFacade
	logger *slog.Logger
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{facade: facade, logger: logger}
}

// Place handles POST /api/orders.
func (h *OrderHandler) Place(c *gin.Context) {
	var req dto.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	lines := make([]model.OrderLine, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, model.OrderLine{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	order, err := h.facade.PlaceOrder(c.Request.Context(), model.OrderRequest{
		UserID:        CurrentUserID(c),
		AddressID:     req.AddressID,
		Items:         lines,
		ShippingCosts: req.ShippingCosts,
		Coupon:        req.Coupon,
		CardNumber:    req.PaymentInfo.CardNumber,
	})
	if err != nil {
		if errors.Is(err, domainErrors.ErrValidation) {
			respondValidation(c, codeInvalidOrderData, err)
			return
		}
		respondError(c, h.logger, "place order", err, codeFailedCreatingOrder, placeOrderErrors...)
		return
	}

	c.JSON(http.StatusOK, dto.OrderEnvelope{Success: true, Order: toOrderResponse(*order)})
}

// List handles GET /api/orders.
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.facade.Orders(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		respondError(c, h.logger, "list orders", err, codeInternal)
		return
	}

	response := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, toOrderResponse(o))
	}
	c.JSON(http.StatusOK, dto.OrdersEnvelope{Success: true, Orders: response})
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		badRequest(c)
		return
	}
	order, err := h.facade.Order(c.Request.Context(), CurrentUserID(c), id)
	if err != nil {
		respondError(c, h.logger, "get order", err, codeInternal, lookupErrors...)
		return
	}
	c.JSON(http.StatusOK, dto.OrderEnvelope{Success: true, Order: toOrderResponse(*order)})
}

// GetByNumber handles GET /api/orders/number/:number.
func (h *OrderHandler) GetByNumber(c *gin.Context) {
	order, err := h.facade.OrderByNumber(c.Request.Context(), CurrentUserID(c), c.Param("number"))
	if err != nil {
		respondError(c, h.logger, "get order by number", err, codeInternal, lookupErrors...)
		return
	}
	c.JSON(http.StatusOK, dto.OrderEnvelope{Success: true, Order: toOrderResponse(*order)})
}

func toOrderResponse(order model.Order) dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, dto.OrderItemResponse{ProductID: item.ProductID, Quantity: item.Quantity, UnitPrice: item.UnitPrice})
	}
	return dto.OrderResponse{
		ID:            order.ID,
		Number:        order.Number,
		Status:        string(order.Status),
		ShippingCosts: order.ShippingCosts,
		Total:         order.Total,
		Coupon:        order.Coupon,
		AddressID:     order.AddressID,
		Items:         items,
		CreatedAt:     order.CreatedAt,
	}
}
