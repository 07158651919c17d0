package order

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrMissingShippingField = errors.New("missing required shipping field")
	ErrMissingPaymentField  = errors.New("missing required payment field")
)

// Number is the customer-facing order identifier, unique per order.
// The persistence boundary carries its own uniqueness constraint, so a
// collision fails the insert rather than corrupting history.
type Number string

// NewNumber allocates a fresh order number: a date prefix for human
// sorting plus 10 hex chars of randomness.
func NewNumber(now time.Time) Number {
	buf := make([]byte, 5)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing is effectively fatal elsewhere too; fall
		// back to a timestamp so order creation still proceeds.
		return Number(fmt.Sprintf("ORD-%s-%010d", now.Format("20060102"), now.UnixNano()%10000000000))
	}
	return Number(fmt.Sprintf("ORD-%s-%s", now.Format("20060102"), strings.ToUpper(hex.EncodeToString(buf))))
}

func (n Number) String() string { return string(n) }

// ShippingAddress is snapshotted onto the order at checkout; later
// address-book edits never alter past orders.
type ShippingAddress struct {
	fullName   string
	line1      string
	line2      string
	city       string
	state      string
	postalCode string
	country    string
	phone      string
}

func NewShippingAddress(fullName, line1, line2, city, state, postalCode, country, phone string) (ShippingAddress, error) {
	a := ShippingAddress{
		fullName:   strings.TrimSpace(fullName),
		line1:      strings.TrimSpace(line1),
		line2:      strings.TrimSpace(line2),
		city:       strings.TrimSpace(city),
		state:      strings.TrimSpace(state),
		postalCode: strings.TrimSpace(postalCode),
		country:    strings.TrimSpace(country),
		phone:      strings.TrimSpace(phone),
	}
	if a.fullName == "" || a.line1 == "" || a.city == "" || a.postalCode == "" || a.country == "" {
		return ShippingAddress{}, ErrMissingShippingField
	}
	return a, nil
}

func (a ShippingAddress) FullName() string   { return a.fullName }
func (a ShippingAddress) Line1() string      { return a.line1 }
func (a ShippingAddress) Line2() string      { return a.line2 }
func (a ShippingAddress) City() string       { return a.city }
func (a ShippingAddress) State() string      { return a.state }
func (a ShippingAddress) PostalCode() string { return a.postalCode }
func (a ShippingAddress) Country() string    { return a.country }
func (a ShippingAddress) Phone() string      { return a.phone }

// PaymentInfo is the non-sensitive payment snapshot (method and the
// processor's reference). Card data never reaches this service.
type PaymentInfo struct {
	method    string
	reference string
}

func NewPaymentInfo(method, reference string) (PaymentInfo, error) {
	p := PaymentInfo{
		method:    strings.TrimSpace(method),
		reference: strings.TrimSpace(reference),
	}
	if p.method == "" {
		return PaymentInfo{}, ErrMissingPaymentField
	}
	return p, nil
}

func (p PaymentInfo) Method() string    { return p.method }
func (p PaymentInfo) Reference() string { return p.reference }
