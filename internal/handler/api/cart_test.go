//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"storefront/internal/domain/coupon"
	"storefront/internal/handler/api"
	resdto "storefront/internal/handler/dto/response"
	"storefront/internal/pkg/errs"
	"storefront/tests/common/builder"
	"storefront/tests/common/httptest"
	"storefront/tests/common/testutil"
	commandsmock "storefront/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CartHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCheckout *commandsmock.MockCheckoutCommands
	handler      *api.CartHandler
	userID       uuid.UUID
}

func (s *CartHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCheckout = commandsmock.NewMockCheckoutCommands(s.mockCtrl)
	s.handler = api.NewCartHandler(s.mockCheckout)
	s.userID = uuid.New()

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access token required"})
			return
		}
		c.Set("user_id", s.userID)
		c.Set("new_user", false)
		c.Next()
	}

	s.router.POST("/cart/price", authMiddleware, s.handler.PriceCart)
	s.router.POST("/cart/coupon", authMiddleware, s.handler.ApplyCoupon)
}

func (s *CartHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCartHandlerSuite(t *testing.T) {
	suite.Run(t, new(CartHandlerTestSuite))
}

// ================================================================================
// TestPriceCart
// ================================================================================

func (s *CartHandlerTestSuite) TestPriceCart() {
	url := "/cart/price"

	reqBody := builder.NewCheckoutBuilder().BuildPriceCartRequestDTO()
	returnResult := builder.NewCheckoutBuilder().BuildPricedCartResult()

	s.Run("success: returns 200 OK with the priced cart", func() {
		s.mockCheckout.EXPECT().PriceCart(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(returnResult, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var response resdto.PricedCartResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response.Lines, 1)
		s.Equal(returnResult.Cart.Cart.SubtotalCents, response.SubtotalCents)
		s.Equal(returnResult.Cart.GrandTotalCents, response.GrandTotalCents)
		s.Nil(response.CouponRejection)
	})

	s.Run("success: surfaces a coupon rejection inline", func() {
		rejected := builder.NewCheckoutBuilder().BuildPricedCartResult()
		rejected.Rejection = &coupon.Rejection{Reason: coupon.ReasonExpired}
		s.mockCheckout.EXPECT().PriceCart(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(rejected, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var response resdto.PricedCartResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Require().NotNil(response.CouponRejection)
		s.Equal("expired", *response.CouponRejection)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		testCases := []struct {
			name   string
			mutate func(map[string]any)
		}{
			{name: "missing lines", mutate: testutil.Field("lines", nil)},
			{name: "empty lines", mutate: testutil.Field("lines", []any{})},
			{name: "zero quantity", mutate: testutil.Field("lines", []map[string]any{
				{"product_id": uuid.New().String(), "quantity": 0},
			})},
			{name: "missing product id", mutate: testutil.Field("lines", []map[string]any{
				{"quantity": 1},
			})},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Access token required")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			usecaseError   error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "empty cart",
				usecaseError:   errs.ErrEmptyCart,
				expectedStatus: http.StatusUnprocessableEntity,
				expectedMsg:    "no purchasable lines",
			},
			{
				name:           "domain validation",
				usecaseError:   errs.Mark(errs.New("quantity must be positive"), errs.ErrDomainValidation),
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Invalid cart contents",
			},
			{
				name:           "catalog unavailable",
				usecaseError:   errs.Mark(errs.New("connection refused"), errs.ErrCatalogUnavailable),
				expectedStatus: http.StatusServiceUnavailable,
				expectedMsg:    "Catalog temporarily unavailable",
			},
			{
				name:           "internal error",
				usecaseError:   errors.New("connection reset"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCheckout.EXPECT().PriceCart(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, tc.usecaseError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestApplyCoupon
// ================================================================================

func (s *CartHandlerTestSuite) TestApplyCoupon() {
	url := "/cart/coupon"

	code := "SAVE10"
	reqBody := builder.NewCheckoutBuilder().
		With(func(b *builder.CheckoutBuilder) { b.CouponCode = &code }).
		BuildApplyCouponRequestDTO()

	s.Run("success: returns 200 OK with the discounted cart", func() {
		returnResult := builder.NewCheckoutBuilder().BuildPricedCartResult()
		s.mockCheckout.EXPECT().ApplyCoupon(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(returnResult, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var response resdto.PricedCartResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(returnResult.Cart.GrandTotalCents, response.GrandTotalCents)
	})

	s.Run("error: 422 with the rejection reason", func() {
		for _, reason := range []coupon.RejectionReason{
			coupon.ReasonNotFound,
			coupon.ReasonInactive,
			coupon.ReasonExpired,
			coupon.ReasonNewUserOnly,
			coupon.ReasonBelowMinimumOrder,
			coupon.ReasonUsageLimitReached,
			coupon.ReasonPerUserLimitReached,
		} {
			s.Run(string(reason), func() {
				rejected := builder.NewCheckoutBuilder().BuildPricedCartResult()
				rejected.Rejection = &coupon.Rejection{Reason: reason}
				s.mockCheckout.EXPECT().ApplyCoupon(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(rejected, nil).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "Coupon rejected")
				httptest.AssertRejectionReason(s.T(), rec, string(reason))
			})
		}
	})

	s.Run("error: 400 Bad Request when coupon code is missing", func() {
		requestMap := testutil.DtoMap(s.T(), reqBody, testutil.Field("coupon_code", nil))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "")
	})
}
