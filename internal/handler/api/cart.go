package api

import (
	"net/http"

	reqdto "storefront/internal/handler/dto/request"
	resdto "storefront/internal/handler/dto/response"
	"storefront/internal/handler/middleware"
	"storefront/internal/pkg/errs"
	"storefront/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type CartHandler struct {
	checkoutUseCase commands.CheckoutCommands
}

func NewCartHandler(checkoutUseCase commands.CheckoutCommands) *CartHandler {
	return &CartHandler{
		checkoutUseCase: checkoutUseCase,
	}
}

// @Summary Price cart
// @Description Price the submitted cart lines against current catalog state
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.PriceCartRequest true "Cart lines and optional coupon code"
// @Success 200 {object} resdto.PricedCartResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /cart/price [post]
func (h *CartHandler) PriceCart(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req reqdto.PriceCartRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.checkoutUseCase.PriceCart(c.Request.Context(), req, actor)
	if err != nil {
		h.respondCartError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromPricedCartResult(result))
}

// @Summary Apply coupon
// @Description Validate a coupon against the priced cart and compute the discount
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.ApplyCouponRequest true "Cart lines and coupon code"
// @Success 200 {object} resdto.PricedCartResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /cart/coupon [post]
func (h *CartHandler) ApplyCoupon(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req reqdto.ApplyCouponRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.checkoutUseCase.ApplyCoupon(c.Request.Context(), req, actor)
	if err != nil {
		h.respondCartError(c, err)
		return
	}

	if result.Rejection != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  "Coupon rejected",
			"reason": string(result.Rejection.Reason),
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromPricedCartResult(result))
}

func (h *CartHandler) respondCartError(c *gin.Context, err error) {
	switch {
	case errs.Is(err, errs.ErrEmptyCart):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Cart has no purchasable lines",
		})
	case errs.Is(err, errs.ErrDomainValidation):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid cart contents",
		})
	case errs.Is(err, errs.ErrCatalogUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Catalog temporarily unavailable",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}

// requireActor pulls the authenticated caller out of the context; auth
// middleware guarantees it is present on protected routes.
func requireActor(c *gin.Context) (commands.Actor, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return commands.Actor{}, false
	}
	return commands.Actor{
		UserID:  userID,
		NewUser: middleware.GetNewUser(c),
	}, true
}
