package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/antoniodasilva12/hostelmng/models"
	"github.com/antoniodasilva12/hostelmng/payments"
	"github.com/google/uuid"
)

type mockPaymentStore struct {
	created   []models.Payment
	createErr error

	existing    *models.Payment
	findErr     error
	failed      []models.Payment
	failErr     error
	completed   []models.Payment
	completeErr error
}

func (m *mockPaymentStore) CreatePayment(payment *models.Payment) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.created = append(m.created, *payment)
	return nil
}

func (m *mockPaymentStore) FindPaymentByReference(reference string) (*models.Payment, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	if m.existing == nil || m.existing.ReferenceID != reference {
		return nil, errors.New("record not found")
	}
	payment := *m.existing
	return &payment, nil
}

func (m *mockPaymentStore) MarkPaymentFailed(payment *models.Payment) error {
	if m.failErr != nil {
		return m.failErr
	}
	m.failed = append(m.failed, *payment)
	return nil
}

func (m *mockPaymentStore) CompletePayment(payment *models.Payment) error {
	if m.completeErr != nil {
		return m.completeErr
	}
	m.completed = append(m.completed, *payment)
	return nil
}

type mockStkPusher struct {
	result *payments.StkPushResult
	err    error

	calls        int
	gotPhone     string
	gotAmount    float64
	gotReference string
}

func (m *mockStkPusher) InitiateStkPush(ctx context.Context, phoneNumber string, amount float64, accountReference string) (*payments.StkPushResult, error) {
	m.calls++
	m.gotPhone = phoneNumber
	m.gotAmount = amount
	m.gotReference = accountReference
	return m.result, m.err
}

func TestInitiateMobilePayment(t *testing.T) {
	userID := uuid.New()

	t.Run("Given the provider accepts When initiating Then exactly one processing record is created", func(t *testing.T) {
		store := &mockPaymentStore{}
		pusher := &mockStkPusher{result: &payments.StkPushResult{
			Accepted:          true,
			CheckoutRequestID: "ws_CO_191220191020363925",
			CustomerMessage:   "Success. Request accepted for processing",
			ResponseCode:      "0",
		}}
		svc := &PaymentService{Store: store, Mpesa: pusher}

		result, err := svc.InitiateMobilePayment(context.Background(), userID, MobilePaymentInput{
			PhoneNumber:      "0712345678",
			Amount:           500,
			AccountReference: "BOOK-001",
			PaymentType:      "room_rent",
		})
		if err != nil {
			t.Fatalf("InitiateMobilePayment() unexpected error: %v", err)
		}
		if result.CheckoutRequestID != "ws_CO_191220191020363925" {
			t.Errorf("CheckoutRequestID = %q", result.CheckoutRequestID)
		}

		if len(store.created) != 1 {
			t.Fatalf("created %d payment records, want 1", len(store.created))
		}
		p := store.created[0]
		if p.UserID != userID {
			t.Errorf("UserID = %s, want %s", p.UserID, userID)
		}
		if p.Amount != 500 {
			t.Errorf("Amount = %v, want 500", p.Amount)
		}
		if p.Status != "processing" {
			t.Errorf("Status = %q, want processing", p.Status)
		}
		if p.PaymentMethod == nil || *p.PaymentMethod != "mpesa" {
			t.Errorf("PaymentMethod = %v, want mpesa", p.PaymentMethod)
		}
		if p.ReferenceID != "ws_CO_191220191020363925" {
			t.Errorf("ReferenceID = %q, want ws_CO_191220191020363925", p.ReferenceID)
		}
		if p.PaymentType != "room_rent" {
			t.Errorf("PaymentType = %q, want room_rent", p.PaymentType)
		}
	})

	t.Run("Given the provider rejects When initiating Then no record is created and the reason surfaces", func(t *testing.T) {
		store := &mockPaymentStore{}
		pusher := &mockStkPusher{result: &payments.StkPushResult{
			Accepted:     false,
			ResponseCode: "1",
			Description:  "Insufficient funds",
		}}
		svc := &PaymentService{Store: store, Mpesa: pusher}

		result, err := svc.InitiateMobilePayment(context.Background(), userID, MobilePaymentInput{
			PhoneNumber: "0712345678",
			Amount:      500,
		})
		if err == nil {
			t.Fatal("InitiateMobilePayment() expected error for rejected push")
		}
		if !errors.Is(err, ErrPaymentRejected) {
			t.Errorf("error = %v, want ErrPaymentRejected", err)
		}
		if !strings.Contains(err.Error(), "Insufficient funds") {
			t.Errorf("error %q does not carry the provider description", err)
		}
		if result == nil || result.Description != "Insufficient funds" {
			t.Errorf("result = %+v, want rejection with description", result)
		}
		if len(store.created) != 0 {
			t.Errorf("created %d payment records, want 0", len(store.created))
		}
	})

	t.Run("Given a transport failure When initiating Then no record is created", func(t *testing.T) {
		store := &mockPaymentStore{}
		pusher := &mockStkPusher{err: errors.New("failed to send STK request: connection refused")}
		svc := &PaymentService{Store: store, Mpesa: pusher}

		result, err := svc.InitiateMobilePayment(context.Background(), userID, MobilePaymentInput{
			PhoneNumber: "0712345678",
			Amount:      500,
		})
		if err == nil {
			t.Fatal("InitiateMobilePayment() expected error for transport failure")
		}
		if errors.Is(err, ErrPaymentRejected) {
			t.Error("transport failure should not be classified as a provider rejection")
		}
		if result != nil {
			t.Errorf("result = %+v, want nil", result)
		}
		if len(store.created) != 0 {
			t.Errorf("created %d payment records, want 0", len(store.created))
		}
	})

	t.Run("Given the store fails after acceptance When initiating Then a persistence error is returned", func(t *testing.T) {
		store := &mockPaymentStore{createErr: errors.New("connection reset")}
		pusher := &mockStkPusher{result: &payments.StkPushResult{
			Accepted:          true,
			CheckoutRequestID: "ws_CO_1",
		}}
		svc := &PaymentService{Store: store, Mpesa: pusher}

		_, err := svc.InitiateMobilePayment(context.Background(), userID, MobilePaymentInput{
			PhoneNumber: "0712345678",
			Amount:      500,
		})
		if err == nil {
			t.Fatal("InitiateMobilePayment() expected error when record save fails")
		}
		if errors.Is(err, ErrPaymentRejected) {
			t.Error("persistence failure should not be classified as a provider rejection")
		}
		if !strings.Contains(err.Error(), "failed to record payment") {
			t.Errorf("error = %q, want a record-payment failure", err)
		}
	})

	t.Run("Given no account reference When initiating Then the user ID is used", func(t *testing.T) {
		store := &mockPaymentStore{}
		pusher := &mockStkPusher{result: &payments.StkPushResult{
			Accepted:          true,
			CheckoutRequestID: "ws_CO_3",
		}}
		svc := &PaymentService{Store: store, Mpesa: pusher}

		_, err := svc.InitiateMobilePayment(context.Background(), userID, MobilePaymentInput{
			PhoneNumber: "0712345678",
			Amount:      1200,
		})
		if err != nil {
			t.Fatalf("InitiateMobilePayment() unexpected error: %v", err)
		}
		if pusher.gotReference != userID.String() {
			t.Errorf("accountReference = %q, want %q", pusher.gotReference, userID.String())
		}
		if pusher.gotPhone != "0712345678" {
			t.Errorf("phoneNumber = %q, want 0712345678", pusher.gotPhone)
		}
		if pusher.gotAmount != 1200 {
			t.Errorf("amount = %v, want 1200", pusher.gotAmount)
		}
	})

	t.Run("Given two identical initiations When both are accepted Then two independent records exist", func(t *testing.T) {
		store := &mockPaymentStore{}
		pusher := &mockStkPusher{result: &payments.StkPushResult{
			Accepted:          true,
			CheckoutRequestID: "ws_CO_2",
		}}
		svc := &PaymentService{Store: store, Mpesa: pusher}

		input := MobilePaymentInput{
			PhoneNumber:      "0712345678",
			Amount:           500,
			AccountReference: "BOOK-001",
			PaymentType:      "room_rent",
		}
		for i := 0; i < 2; i++ {
			if _, err := svc.InitiateMobilePayment(context.Background(), userID, input); err != nil {
				t.Fatalf("attempt %d unexpected error: %v", i+1, err)
			}
		}
		if len(store.created) != 2 {
			t.Errorf("created %d payment records, want 2", len(store.created))
		}
		if pusher.calls != 2 {
			t.Errorf("pusher called %d times, want 2", pusher.calls)
		}
	})
}

func TestConfirmMpesaResult(t *testing.T) {
	userID := uuid.New()
	bookingID := uuid.New()

	processingPayment := func() *models.Payment {
		method := "mpesa"
		return &models.Payment{
			ID:            uuid.New(),
			UserID:        userID,
			Amount:        500,
			PaymentType:   "room_rent",
			Status:        "processing",
			PaymentMethod: &method,
			ReferenceID:   "ws_CO_191220191020363925",
			BookingID:     &bookingID,
		}
	}

	t.Run("Given a successful result When confirming Then the payment completes with the receipt number", func(t *testing.T) {
		store := &mockPaymentStore{existing: processingPayment()}
		svc := &PaymentService{Store: store}

		payment, outcome, err := svc.ConfirmMpesaResult("ws_CO_191220191020363925", 0, "NLJ7RT61SV")
		if err != nil {
			t.Fatalf("ConfirmMpesaResult() unexpected error: %v", err)
		}
		if outcome != CallbackCompleted {
			t.Errorf("outcome = %d, want CallbackCompleted", outcome)
		}
		if payment.Status != "completed" {
			t.Errorf("Status = %q, want completed", payment.Status)
		}
		if payment.MpesaReceipt == nil || *payment.MpesaReceipt != "NLJ7RT61SV" {
			t.Errorf("MpesaReceipt = %v, want NLJ7RT61SV", payment.MpesaReceipt)
		}

		if len(store.completed) != 1 {
			t.Fatalf("completed %d payments, want 1", len(store.completed))
		}
		if store.completed[0].BookingID == nil || *store.completed[0].BookingID != bookingID {
			t.Errorf("completed payment lost its booking reference")
		}
		if len(store.failed) != 0 {
			t.Errorf("marked %d payments failed, want 0", len(store.failed))
		}
	})

	t.Run("Given a non-zero result code When confirming Then the payment is marked failed", func(t *testing.T) {
		store := &mockPaymentStore{existing: processingPayment()}
		svc := &PaymentService{Store: store}

		payment, outcome, err := svc.ConfirmMpesaResult("ws_CO_191220191020363925", 1032, "")
		if err != nil {
			t.Fatalf("ConfirmMpesaResult() unexpected error: %v", err)
		}
		if outcome != CallbackFailed {
			t.Errorf("outcome = %d, want CallbackFailed", outcome)
		}
		if payment.Status != "failed" {
			t.Errorf("Status = %q, want failed", payment.Status)
		}
		if len(store.failed) != 1 {
			t.Errorf("marked %d payments failed, want 1", len(store.failed))
		}
		if len(store.completed) != 0 {
			t.Errorf("completed %d payments, want 0", len(store.completed))
		}
	})

	t.Run("Given an already completed payment When the callback replays Then nothing is written", func(t *testing.T) {
		existing := processingPayment()
		existing.Status = "completed"
		store := &mockPaymentStore{existing: existing}
		svc := &PaymentService{Store: store}

		_, outcome, err := svc.ConfirmMpesaResult("ws_CO_191220191020363925", 0, "NLJ7RT61SV")
		if err != nil {
			t.Fatalf("ConfirmMpesaResult() unexpected error: %v", err)
		}
		if outcome != CallbackAlreadyProcessed {
			t.Errorf("outcome = %d, want CallbackAlreadyProcessed", outcome)
		}
		if len(store.failed) != 0 || len(store.completed) != 0 {
			t.Errorf("replay wrote to the store: failed=%d completed=%d", len(store.failed), len(store.completed))
		}
	})

	t.Run("Given an unknown checkout request ID When confirming Then ErrPaymentNotFound is returned", func(t *testing.T) {
		store := &mockPaymentStore{existing: processingPayment()}
		svc := &PaymentService{Store: store}

		_, _, err := svc.ConfirmMpesaResult("ws_CO_unknown", 0, "")
		if err == nil {
			t.Fatal("ConfirmMpesaResult() expected error for unknown reference")
		}
		if !errors.Is(err, ErrPaymentNotFound) {
			t.Errorf("error = %v, want ErrPaymentNotFound", err)
		}
	})

	t.Run("Given the store cannot persist the failed status When confirming Then the error surfaces", func(t *testing.T) {
		store := &mockPaymentStore{existing: processingPayment(), failErr: errors.New("connection reset")}
		svc := &PaymentService{Store: store}

		_, _, err := svc.ConfirmMpesaResult("ws_CO_191220191020363925", 1032, "")
		if err == nil {
			t.Fatal("ConfirmMpesaResult() expected error when the failed status cannot be saved")
		}
	})
}
