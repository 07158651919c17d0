package response

import (
	"time"

	"storefront/internal/usecase/queries"

	"github.com/google/uuid"
)

type OrderItemResponse struct {
	ProductID      uuid.UUID `json:"productId"`
	Name           string    `json:"name"`
	Brand          string    `json:"brand"`
	Slug           string    `json:"slug"`
	ImageURL       string    `json:"imageUrl"`
	Size           string    `json:"size,omitempty"`
	Color          string    `json:"color,omitempty"`
	Quantity       int32     `json:"quantity"`
	UnitPriceCents int64     `json:"unitPriceCents"`
	DiscountCents  int64     `json:"discountCents"`
	TotalCents     int64     `json:"totalCents"`
}

type OrderResponse struct {
	ID              uuid.UUID           `json:"id"`
	Number          string              `json:"number"`
	Items           []OrderItemResponse `json:"items"`
	SubtotalCents   int64               `json:"subtotalCents"`
	DiscountCents   int64               `json:"discountCents"`
	GrandTotalCents int64               `json:"grandTotalCents"`
	CouponCode      *string             `json:"couponCode,omitempty"`
	Status          string              `json:"status"`
	ShippingName    string              `json:"shippingName"`
	ShippingLine1   string              `json:"shippingLine1"`
	ShippingLine2   *string             `json:"shippingLine2,omitempty"`
	ShippingCity    string              `json:"shippingCity"`
	ShippingState   *string             `json:"shippingState,omitempty"`
	ShippingPostal  string              `json:"shippingPostal"`
	ShippingCountry string              `json:"shippingCountry"`
	ShippingPhone   *string             `json:"shippingPhone,omitempty"`
	PaymentMethod   string              `json:"paymentMethod"`
	PaymentRef      *string             `json:"paymentRef,omitempty"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
}

type OrderListResponse struct {
	ID              uuid.UUID `json:"id"`
	Number          string    `json:"number"`
	Status          string    `json:"status"`
	ItemCount       int32     `json:"itemCount"`
	GrandTotalCents int64     `json:"grandTotalCents"`
	CreatedAt       time.Time `json:"createdAt"`
}

func FromOrderView(rm *queries.OrderView) *OrderResponse {
	items := make([]OrderItemResponse, len(rm.Items))
	for i, item := range rm.Items {
		items[i] = OrderItemResponse{
			ProductID:      item.ProductID,
			Name:           item.Name,
			Brand:          item.Brand,
			Slug:           item.Slug,
			ImageURL:       item.ImageURL,
			Size:           item.Size,
			Color:          item.Color,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
			DiscountCents:  item.DiscountCents,
			TotalCents:     item.TotalCents,
		}
	}

	return &OrderResponse{
		ID:              rm.ID,
		Number:          rm.Number,
		Items:           items,
		SubtotalCents:   rm.SubtotalCents,
		DiscountCents:   rm.DiscountCents,
		GrandTotalCents: rm.GrandTotalCents,
		CouponCode:      rm.CouponCode,
		Status:          rm.Status,
		ShippingName:    rm.ShippingName,
		ShippingLine1:   rm.ShippingLine1,
		ShippingLine2:   rm.ShippingLine2,
		ShippingCity:    rm.ShippingCity,
		ShippingState:   rm.ShippingState,
		ShippingPostal:  rm.ShippingPostal,
		ShippingCountry: rm.ShippingCountry,
		ShippingPhone:   rm.ShippingPhone,
		PaymentMethod:   rm.PaymentMethod,
		PaymentRef:      rm.PaymentRef,
		CreatedAt:       rm.CreatedAt,
		UpdatedAt:       rm.UpdatedAt,
	}
}

func FromOrderListItem(rm *queries.OrderListItem) *OrderListResponse {
	return &OrderListResponse{
		ID:              rm.ID,
		Number:          rm.Number,
		Status:          rm.Status,
		ItemCount:       rm.ItemCount,
		GrandTotalCents: rm.GrandTotalCents,
		CreatedAt:       rm.CreatedAt,
	}
}
