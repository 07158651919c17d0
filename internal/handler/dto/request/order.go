package request

import (
	"storefront/internal/domain/order"
)

type ShippingAddressRequest struct {
	FullName   string `json:"full_name" binding:"required"`
	Line1      string `json:"line1" binding:"required"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city" binding:"required"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code" binding:"required"`
	Country    string `json:"country" binding:"required"`
	Phone      string `json:"phone,omitempty"`
}

func (r ShippingAddressRequest) ToDomain() (order.ShippingAddress, error) {
	return order.NewShippingAddress(
		r.FullName, r.Line1, r.Line2, r.City, r.State, r.PostalCode, r.Country, r.Phone,
	)
}

type PaymentInfoRequest struct {
	Method    string `json:"method" binding:"required"`
	Reference string `json:"reference,omitempty"`
}

func (r PaymentInfoRequest) ToDomain() (order.PaymentInfo, error) {
	return order.NewPaymentInfo(r.Method, r.Reference)
}

type CreateOrderRequest struct {
	Lines      []CartLineRequest      `json:"lines" binding:"required,min=1,dive"`
	CouponCode *string                `json:"coupon_code,omitempty"`
	Shipping   ShippingAddressRequest `json:"shipping" binding:"required"`
	Payment    PaymentInfoRequest     `json:"payment" binding:"required"`
}

func (r CreateOrderRequest) GetCouponCode() *string {
	return PriceCartRequest{CouponCode: r.CouponCode}.GetCouponCode()
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=processing shipped delivered cancelled"`
}
