package models

import (
	"time"

	"github.com/google/uuid"
)

type Payment struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID      uuid.UUID `gorm:"not null" json:"user_id"`
	Amount      float64   `gorm:"type:numeric(10,2);not null" json:"amount"`
	PaymentType string    `gorm:"size:30;not null" json:"payment_type"`       // room_rent | meal_plan | maintenance | security_deposit
	Status      string    `gorm:"size:20;not null;default:'pending'" json:"status"` // pending | processing | completed | failed | refunded

	PaymentMethod *string `gorm:"size:30" json:"payment_method"`

	// Local PAY- reference for manual payments, or the provider's
	// CheckoutRequestID once an STK push is accepted. The callback handler
	// reconciles by this value.
	ReferenceID string `gorm:"size:255;not null;index" json:"reference_id"`

	Description  string  `gorm:"type:text" json:"description"`
	MpesaReceipt *string `gorm:"size:50" json:"mpesa_receipt"`
	ReceiptURL   *string `gorm:"size:255" json:"receipt_url"`

	// Optional link back to the room booking being paid for.
	BookingID *uuid.UUID `json:"booking_id"`

	DueDate *time.Time `json:"due_date"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
