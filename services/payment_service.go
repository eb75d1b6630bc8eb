package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/antoniodasilva12/hostelmng/models"
	"github.com/antoniodasilva12/hostelmng/payments"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaymentStore persists payment rows for the orchestrator: the provisional
// record at initiation and the status transitions driven by the provider's
// asynchronous callback.
type PaymentStore interface {
	CreatePayment(payment *models.Payment) error
	FindPaymentByReference(reference string) (*models.Payment, error)
	MarkPaymentFailed(payment *models.Payment) error
	CompletePayment(payment *models.Payment) error
}

// StkPusher is the provider-facing half of the workflow.
type StkPusher interface {
	InitiateStkPush(ctx context.Context, phoneNumber string, amount float64, accountReference string) (*payments.StkPushResult, error)
}

type GormPaymentStore struct {
	DB *gorm.DB
}

func (s *GormPaymentStore) CreatePayment(payment *models.Payment) error {
	return s.DB.Create(payment).Error
}

func (s *GormPaymentStore) FindPaymentByReference(reference string) (*models.Payment, error) {
	var payment models.Payment
	if err := s.DB.Where("reference_id = ?", reference).First(&payment).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

func (s *GormPaymentStore) MarkPaymentFailed(payment *models.Payment) error {
	return s.DB.Save(payment).Error
}

// CompletePayment persists the completed payment and, when the payment names a
// room booking, flips that booking to paid in the same transaction.
func (s *GormPaymentStore) CompletePayment(payment *models.Payment) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(payment).Error; err != nil {
			return err
		}

		if payment.BookingID != nil {
			var booking models.RoomBooking
			if err := tx.First(&booking, "id = ?", payment.BookingID).Error; err != nil {
				return err
			}
			booking.PaymentStatus = "paid"
			if err := tx.Save(&booking).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// ErrPaymentRejected wraps a provider-side rejection so handlers can separate
// it from transport and persistence failures.
var ErrPaymentRejected = errors.New("payment rejected by provider")

type MobilePaymentInput struct {
	PhoneNumber      string
	Amount           float64
	AccountReference string
	PaymentType      string
	Description      string
	BookingID        *uuid.UUID
}

type PaymentService struct {
	Store PaymentStore
	Mpesa StkPusher
}

func NewPaymentService(db *gorm.DB, mpesa StkPusher) *PaymentService {
	return &PaymentService{
		Store: &GormPaymentStore{DB: db},
		Mpesa: mpesa,
	}
}

// InitiateMobilePayment drives one STK push attempt for a user and records the
// provisional outcome. On provider acceptance exactly one payment row is
// created with status processing and the provider's CheckoutRequestID as its
// reference; on rejection or transport failure nothing is written. Each call
// is an independent attempt: there is no retry and no dedup against earlier
// attempts for the same reference.
func (s *PaymentService) InitiateMobilePayment(ctx context.Context, userID uuid.UUID, input MobilePaymentInput) (*payments.StkPushResult, error) {
	if input.AccountReference == "" {
		input.AccountReference = userID.String()
	}

	result, err := s.Mpesa.InitiateStkPush(ctx, input.PhoneNumber, input.Amount, input.AccountReference)
	if err != nil {
		return nil, err
	}

	if !result.Accepted {
		return result, fmt.Errorf("%w: %s", ErrPaymentRejected, result.Description)
	}

	method := "mpesa"
	payment := models.Payment{
		UserID:        userID,
		Amount:        input.Amount,
		PaymentType:   input.PaymentType,
		Status:        "processing",
		PaymentMethod: &method,
		ReferenceID:   result.CheckoutRequestID,
		Description:   input.Description,
		BookingID:     input.BookingID,
	}

	if err := s.Store.CreatePayment(&payment); err != nil {
		log.Printf("🔥 STK push %s accepted but payment record not saved: %v", result.CheckoutRequestID, err)
		return nil, fmt.Errorf("failed to record payment: %v", err)
	}

	return result, nil
}

// ErrPaymentNotFound reports a callback whose CheckoutRequestID matches no
// local payment record.
var ErrPaymentNotFound = errors.New("payment record not found")

type CallbackOutcome int

const (
	CallbackCompleted CallbackOutcome = iota
	CallbackFailed
	CallbackAlreadyProcessed
)

// ConfirmMpesaResult applies the provider's asynchronous verdict to the
// provisional record created at initiation. A replay against an already
// completed payment is a no-op; a non-zero result code marks the payment
// failed; a zero result code completes it and stores the receipt number.
func (s *PaymentService) ConfirmMpesaResult(checkoutRequestID string, resultCode int, mpesaReceipt string) (*models.Payment, CallbackOutcome, error) {
	payment, err := s.Store.FindPaymentByReference(checkoutRequestID)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %s", ErrPaymentNotFound, checkoutRequestID)
	}

	if payment.Status == "completed" {
		return payment, CallbackAlreadyProcessed, nil
	}

	if resultCode != 0 {
		payment.Status = "failed"
		if err := s.Store.MarkPaymentFailed(payment); err != nil {
			return nil, 0, fmt.Errorf("failed to mark payment %s failed: %v", payment.ID, err)
		}
		return payment, CallbackFailed, nil
	}

	payment.Status = "completed"
	payment.MpesaReceipt = &mpesaReceipt
	if err := s.Store.CompletePayment(payment); err != nil {
		return nil, 0, fmt.Errorf("failed to complete payment %s: %v", payment.ID, err)
	}
	return payment, CallbackCompleted, nil
}
