//go:build e2e

package order_test

import (
	"fmt"
	"net/http"
	nethttptest "net/http/httptest"
	"testing"

	"storefront/internal/handler/dto/request"
	"storefront/internal/handler/dto/response"
	"storefront/tests/common/authtest"
	"storefront/tests/common/builder"
	"storefront/tests/common/dbtest"
	"storefront/tests/common/httptest"
	"storefront/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	ordersURL      = "/api/orders"
	orderStatusURL = "/api/orders/%s/status"
	orderCancelURL = "/api/orders/%s/cancel"
)

type OrderSuite struct {
	e2e.SharedSuite
}

func (s *OrderSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestOrderSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(OrderSuite))
}

func (s *OrderSuite) token(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	return authtest.NewJWTHelper(s.Config.JWT).GenerateToken(t, userID, false)
}

// placeOrder runs a real checkout over HTTP and returns the created order.
func (s *OrderSuite) placeOrder(t *testing.T, token string, productID uuid.UUID, quantity int32, couponCode *string) response.OrderResponse {
	t.Helper()

	reqBody := builder.NewCheckoutBuilder().
		With(func(b *builder.CheckoutBuilder) {
			b.ProductID = productID
			b.Quantity = quantity
			b.CouponCode = couponCode
		}).
		BuildCreateOrderRequestDTO()

	headers := map[string]string{"Idempotency-Key": uuid.New().String()}
	w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, ordersURL, reqBody, token, headers)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created response.OrderResponse
	err := httptest.DecodeResponseBody(t, w.Body, &created)
	require.NoError(t, err)
	return created
}

func (s *OrderSuite) patchStatus(t *testing.T, token string, orderID uuid.UUID, status string) *nethttptest.ResponseRecorder {
	t.Helper()
	url := fmt.Sprintf(orderStatusURL, orderID.String())
	return httptest.PerformRequest(t, s.Router, http.MethodPatch, url, request.UpdateOrderStatusRequest{Status: status}, token)
}

// =============================================================================
// TestUpdateStatus - Fulfilment state machine API tests
// =============================================================================

func (s *OrderSuite) TestUpdateStatus() {
	s.Run("Normal case: Order walks every fulfilment stage", func() {
		t := s.T()

		productID := dbtest.CreateTestProduct(t, s.DB, "Canvas Sneaker", 2500, 10)
		token := s.token(t, uuid.New())
		created := s.placeOrder(t, token, productID, 1, nil)

		for _, next := range []string{"processing", "shipped", "delivered"} {
			w := s.patchStatus(t, token, created.ID, next)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())

			var updated response.OrderResponse
			err := httptest.DecodeResponseBody(t, w.Body, &updated)
			require.NoError(t, err)
			require.Equal(t, next, updated.Status)
		}
	})

	s.Run("Error case: Skipping a stage is rejected", func() {
		t := s.T()

		productID := dbtest.CreateTestProduct(t, s.DB, "Canvas Sneaker", 2500, 10)
		token := s.token(t, uuid.New())
		created := s.placeOrder(t, token, productID, 1, nil)

		w := s.patchStatus(t, token, created.ID, "shipped")
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())

		// Still at the starting stage
		gw := httptest.PerformRequest(t, s.Router, http.MethodGet, ordersURL+"/"+created.ID.String(), nil, token)
		require.Equal(t, http.StatusOK, gw.Code)
		var fetched response.OrderResponse
		err := httptest.DecodeResponseBody(t, gw.Body, &fetched)
		require.NoError(t, err)
		require.Equal(t, "confirmed", fetched.Status)
	})

	s.Run("Error case: Delivered orders are terminal", func() {
		t := s.T()

		productID := dbtest.CreateTestProduct(t, s.DB, "Canvas Sneaker", 2500, 10)
		token := s.token(t, uuid.New())
		created := s.placeOrder(t, token, productID, 1, nil)

		for _, next := range []string{"processing", "shipped", "delivered"} {
			w := s.patchStatus(t, token, created.ID, next)
			require.Equal(t, http.StatusOK, w.Code)
		}

		w := s.patchStatus(t, token, created.ID, "processing")
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	})

	s.Run("Error case: Unknown status is rejected at binding", func() {
		t := s.T()

		productID := dbtest.CreateTestProduct(t, s.DB, "Canvas Sneaker", 2500, 10)
		token := s.token(t, uuid.New())
		created := s.placeOrder(t, token, productID, 1, nil)

		w := s.patchStatus(t, token, created.ID, "refunded")
		require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	})

	s.Run("Error case: Missing order returns 404", func() {
		t := s.T()

		token := s.token(t, uuid.New())
		w := s.patchStatus(t, token, uuid.New(), "processing")
		require.Equal(t, http.StatusNotFound, w.Code, w.Body.String())
	})
}

// =============================================================================
// TestCancelOrder - Cancellation API tests
// =============================================================================

func (s *OrderSuite) TestCancelOrder() {
	s.Run("Normal case: Cancelling restores stock and coupon usage", func() {
		t := s.T()

		productID := dbtest.CreateTestProduct(t, s.DB, "Canvas Sneaker", 2500, 10)
		coupon := dbtest.PercentageCoupon("SAVE10", 10)
		couponID := dbtest.CreateTestCoupon(t, s.DB, coupon)

		token := s.token(t, uuid.New())
		code := "SAVE10"
		created := s.placeOrder(t, token, productID, 2, &code)

		require.Equal(t, int32(8), dbtest.ProductStock(t, s.DB, productID))
		require.Equal(t, int32(1), dbtest.CouponUsedCount(t, s.DB, couponID))

		url := fmt.Sprintf(orderCancelURL, created.ID.String())
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, url, nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var cancelled response.OrderResponse
		err := httptest.DecodeResponseBody(t, w.Body, &cancelled)
		require.NoError(t, err)
		require.Equal(t, "cancelled", cancelled.Status)

		require.Equal(t, int32(10), dbtest.ProductStock(t, s.DB, productID))
		require.Equal(t, int32(0), dbtest.CouponUsedCount(t, s.DB, couponID))
	})

	s.Run("Normal case: Shipped orders can still be cancelled", func() {
		t := s.T()

		productID := dbtest.CreateTestProduct(t, s.DB, "Canvas Sneaker", 2500, 10)
		token := s.token(t, uuid.New())
		created := s.placeOrder(t, token, productID, 1, nil)

		for _, next := range []string{"processing", "shipped"} {
			w := s.patchStatus(t, token, created.ID, next)
			require.Equal(t, http.StatusOK, w.Code)
		}

		url := fmt.Sprintf(orderCancelURL, created.ID.String())
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, url, nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	})

	s.Run("Error case: Delivered orders cannot be cancelled", func() {
		t := s.T()

		productID := dbtest.CreateTestProduct(t, s.DB, "Canvas Sneaker", 2500, 10)
		token := s.token(t, uuid.New())
		created := s.placeOrder(t, token, productID, 1, nil)

		for _, next := range []string{"processing", "shipped", "delivered"} {
			w := s.patchStatus(t, token, created.ID, next)
			require.Equal(t, http.StatusOK, w.Code)
		}

		url := fmt.Sprintf(orderCancelURL, created.ID.String())
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, url, nil, token)
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	})

	s.Run("Error case: Cannot cancel another user's order", func() {
		t := s.T()

		productID := dbtest.CreateTestProduct(t, s.DB, "Canvas Sneaker", 2500, 10)
		ownerToken := s.token(t, uuid.New())
		created := s.placeOrder(t, ownerToken, productID, 1, nil)

		strangerToken := s.token(t, uuid.New())
		url := fmt.Sprintf(orderCancelURL, created.ID.String())
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, url, nil, strangerToken)
		require.Equal(t, http.StatusNotFound, w.Code, w.Body.String())
	})
}

// =============================================================================
// TestGetOrder / TestListOrders - Query API tests
// =============================================================================

func (s *OrderSuite) TestGetOrder() {
	s.Run("Error case: Another user's order reads as not found", func() {
		t := s.T()

		productID := dbtest.CreateTestProduct(t, s.DB, "Canvas Sneaker", 2500, 10)
		ownerToken := s.token(t, uuid.New())
		created := s.placeOrder(t, ownerToken, productID, 1, nil)

		strangerToken := s.token(t, uuid.New())
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, ordersURL+"/"+created.ID.String(), nil, strangerToken)
		require.Equal(t, http.StatusNotFound, w.Code)
	})

	s.Run("Error case: Malformed order ID", func() {
		t := s.T()

		token := s.token(t, uuid.New())
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, ordersURL+"/not-a-uuid", nil, token)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func (s *OrderSuite) TestListOrders() {
	s.Run("Normal case: Only the caller's orders, newest first, limit honoured", func() {
		t := s.T()

		productID := dbtest.CreateTestProduct(t, s.DB, "Canvas Sneaker", 2500, 100)
		userID := uuid.New()
		token := s.token(t, userID)

		var ids []uuid.UUID
		for range 3 {
			created := s.placeOrder(t, token, productID, 1, nil)
			ids = append(ids, created.ID)
		}

		// Someone else's order must not leak into the list
		otherToken := s.token(t, uuid.New())
		s.placeOrder(t, otherToken, productID, 1, nil)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, ordersURL, nil, token)
		require.Equal(t, http.StatusOK, w.Code)

		var list []response.OrderListResponse
		err := httptest.DecodeResponseBody(t, w.Body, &list)
		require.NoError(t, err)
		require.Len(t, list, 3)

		lw := httptest.PerformRequest(t, s.Router, http.MethodGet, ordersURL+"?limit=2", nil, token)
		require.Equal(t, http.StatusOK, lw.Code)
		var limited []response.OrderListResponse
		err = httptest.DecodeResponseBody(t, lw.Body, &limited)
		require.NoError(t, err)
		require.Len(t, limited, 2)
	})
}
