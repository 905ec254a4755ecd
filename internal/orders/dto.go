package orders

import (
	"time"

	"github.com/shopspring/decimal"
)

type CheckoutInput struct {
	AddressID     string `json:"addressId" validate:"omitempty,uuid4"`
	ContactMobile string `json:"contactMobile" validate:"omitempty,len=10,numeric"`
	DeliveryDate  string `json:"deliveryDate" validate:"required,datetime=2006-01-02"`
	DeliverySlot  string `json:"deliverySlot" validate:"omitempty,max=64"`
}

// UpdateStatusInput drives a fulfilment transition. ItemPrices carries
// the settled per-unit prices keyed by product id and is only honored
// on the move to packed.
type UpdateStatusInput struct {
	Status     string                     `json:"status" validate:"required"`
	ItemPrices map[string]decimal.Decimal `json:"itemPrices"`
}

// DeliveryOption is one selectable delivery day offered at checkout.
type DeliveryOption struct {
	Date  time.Time `json:"date"`
	Label string    `json:"label"`
}
