package api

import "github.com/shopspring/decimal"

// Payment is money one member spent for the group.
type Payment struct {
	ID        string          `json:"id"`
	GroupID   string          `json:"group_id"`
	Amount    decimal.Decimal `json:"amount"`
	Note      string          `json:"note"`
	PaidAt    int64           `json:"paid_at"`
	PayerName string          `json:"payer_name"`
	CreatedAt int64           `json:"created_at"`
}

type AddPaymentRequest struct {
	GroupID   string          `json:"group_id" validate:"required"`
	Amount    decimal.Decimal `json:"amount" validate:"gte=0"`
	Note      string          `json:"note" validate:"max=500"`
	PaidAt    int64           `json:"paid_at" validate:"gte=0"` // Unix seconds; 0 means now
	PayerName string          `json:"payer_name" validate:"required"`
}

type AddPaymentResponse struct {
	Payment *Payment `json:"payment"`
}

type GetPaymentRequest struct {
	GroupID   string `json:"group_id" validate:"required"`
	PaymentID string `json:"payment_id" validate:"required"`
}

type GetPaymentResponse struct {
	Payment *Payment `json:"payment"`
}

// ListPaymentsRequest selects payments with PaidAt in [From, To). Zero bounds are open.
type ListPaymentsRequest struct {
	GroupID string `json:"group_id" validate:"required"`
	From    int64  `json:"from" validate:"gte=0"`
	To      int64  `json:"to" validate:"gte=0"`
}

type ListPaymentsResponse struct {
	Payments   []*Payment      `json:"payments"`
	TotalSpent decimal.Decimal `json:"total_spent"`
}

type DeletePaymentRequest struct {
	GroupID   string `json:"group_id" validate:"required"`
	PaymentID string `json:"payment_id" validate:"required"`
}

type DeletePaymentResponse struct{}

type DeletePaymentsRequest struct {
	GroupID    string   `json:"group_id" validate:"required"`
	PaymentIDs []string `json:"payment_ids" validate:"min=1,max=500,dive,required"`
}

type DeletePaymentsResponse struct {
	Deleted int32 `json:"deleted"`
}
