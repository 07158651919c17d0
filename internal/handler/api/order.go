package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"storefront/internal/domain/coupon"
	reqdto "storefront/internal/handler/dto/request"
	resdto "storefront/internal/handler/dto/response"
	"storefront/internal/pkg/errs"
	"storefront/internal/usecase/commands"
	"storefront/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OrderHandler struct {
	checkoutUseCase commands.CheckoutCommands
	orderUseCase    commands.OrderCommands
	orderQueries    queries.OrderQueries
}

func NewOrderHandler(
	checkoutUseCase commands.CheckoutCommands,
	orderUseCase commands.OrderCommands,
	orderQueries queries.OrderQueries,
) *OrderHandler {
	return &OrderHandler{
		checkoutUseCase: checkoutUseCase,
		orderUseCase:    orderUseCase,
		orderQueries:    orderQueries,
	}
}

// @Summary Create order
// @Description Commit the cart as an order with idempotency key
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string true "Idempotency key for duplicate prevention"
// @Param request body reqdto.CreateOrderRequest true "Checkout request"
// @Success 201 {object} resdto.OrderResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /orders [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	idempotencyKey, err := h.getIdempotencyKey(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	var req reqdto.CreateOrderRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.checkoutUseCase.CommitOrder(c.Request.Context(), req, actor, idempotencyKey)
	if err != nil {
		h.respondCheckoutError(c, err)
		return
	}

	status := http.StatusCreated
	if result.IsReplayed {
		status = http.StatusOK
	}
	c.JSON(status, resdto.FromOrderView(result.Order))
}

func (h *OrderHandler) respondCheckoutError(c *gin.Context, err error) {
	var rejection *coupon.Rejection

	switch {
	case errors.As(err, &rejection):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  "Coupon rejected",
			"reason": string(rejection.Reason),
		})
	case errs.Is(err, errs.ErrCouponExhausted):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Coupon usage limit reached",
		})
	case errs.Is(err, errs.ErrStockExhausted):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Insufficient stock",
		})
	case errs.Is(err, errs.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Product no longer available",
		})
	case errs.Is(err, errs.ErrEmptyCart):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Cart has no purchasable lines",
		})
	case errs.Is(err, errs.ErrDomainValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Domain validation failed",
		})
	case errs.Is(err, errs.ErrIdempotencyInProgress):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Order request is currently being processed",
		})
	case errs.Is(err, errs.ErrIdempotencyCheckFailed):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Duplicate order request with different parameters",
		})
	case errs.Is(err, errs.ErrCatalogUnavailable), errs.Is(err, errs.ErrPersistenceTimeout):
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Service temporarily unavailable",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}

// @Summary Get order
// @Description Get one of the caller's orders by ID
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} resdto.OrderResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid order ID format",
		})
		return
	}

	view, err := h.orderQueries.GetByID(c.Request.Context(), actor.UserID, id)
	if err != nil {
		if isOrderNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Order not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromOrderView(view))
}

// @Summary List orders
// @Description List the caller's orders, newest first
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum number of orders to return"
// @Success 200 {array} resdto.OrderListResponse
// @Failure 401 {object} map[string]string
// @Router /orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid limit",
			})
			return
		}
		limit = parsed
	}

	items, err := h.orderQueries.ListByUser(c.Request.Context(), actor.UserID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	response := make([]*resdto.OrderListResponse, len(items))
	for i, item := range items {
		response[i] = resdto.FromOrderListItem(item)
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Update order status
// @Description Move an order along the fulfilment state machine
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param request body reqdto.UpdateOrderStatusRequest true "Target status"
// @Success 200 {object} resdto.OrderResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid order ID format",
		})
		return
	}

	var req reqdto.UpdateOrderStatusRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.orderUseCase.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.respondTransitionError(c, err, id, req.Status)
		return
	}

	c.JSON(http.StatusOK, resdto.FromOrderView(view))
}

// @Summary Cancel order
// @Description Cancel one of the caller's orders
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} resdto.OrderResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /orders/{id}/cancel [post]
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid order ID format",
		})
		return
	}

	view, err := h.orderUseCase.Cancel(c.Request.Context(), actor.UserID, id)
	if err != nil {
		h.respondTransitionError(c, err, id, "cancelled")
		return
	}

	c.JSON(http.StatusOK, resdto.FromOrderView(view))
}

func (h *OrderHandler) respondTransitionError(c *gin.Context, err error, orderID uuid.UUID, target string) {
	switch {
	case isOrderNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Order not found",
		})
	case errs.Is(err, errs.ErrInvalidStatusTransition), errs.Is(err, errs.ErrDomainValidation):
		// Callers are expected to know the state machine; an illegal
		// request usually means a client bug worth surfacing in logs.
		slog.Warn("rejected order status transition",
			"order_id", orderID,
			"target", target,
			"error", err.Error())
		c.JSON(http.StatusConflict, gin.H{
			"error": "Invalid status transition",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}

func isOrderNotFound(err error) bool {
	return errs.Is(err, errs.ErrOrderNotFound) || errs.Is(err, queries.ErrOrderNotFound)
}

func (h *OrderHandler) getIdempotencyKey(c *gin.Context) (uuid.UUID, error) {
	keyStr := c.GetHeader("Idempotency-Key")
	if keyStr == "" {
		return uuid.Nil, errs.ErrIdempotencyKeyRequired
	}

	key, err := uuid.Parse(keyStr)
	if err != nil {
		return uuid.Nil, errors.New("invalid idempotency key format")
	}

	return key, nil
}
