package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/antoniodasilva12/hostelmng/models"
	"github.com/antoniodasilva12/hostelmng/payments"
	"github.com/antoniodasilva12/hostelmng/services"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

type stubPaymentStore struct {
	created   []models.Payment
	createErr error

	existing    *models.Payment
	failed      []models.Payment
	failErr     error
	completed   []models.Payment
	completeErr error
}

func (s *stubPaymentStore) CreatePayment(payment *models.Payment) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.created = append(s.created, *payment)
	return nil
}

func (s *stubPaymentStore) FindPaymentByReference(reference string) (*models.Payment, error) {
	if s.existing == nil || s.existing.ReferenceID != reference {
		return nil, errors.New("record not found")
	}
	payment := *s.existing
	return &payment, nil
}

func (s *stubPaymentStore) MarkPaymentFailed(payment *models.Payment) error {
	if s.failErr != nil {
		return s.failErr
	}
	s.failed = append(s.failed, *payment)
	return nil
}

func (s *stubPaymentStore) CompletePayment(payment *models.Payment) error {
	if s.completeErr != nil {
		return s.completeErr
	}
	s.completed = append(s.completed, *payment)
	return nil
}

type stubStkPusher struct {
	result *payments.StkPushResult
	err    error
}

func (s *stubStkPusher) InitiateStkPush(ctx context.Context, phoneNumber string, amount float64, accountReference string) (*payments.StkPushResult, error) {
	return s.result, s.err
}

// newStkPushTestApp mounts the initiation handler behind a stub auth layer so
// requests carry the JWT claims the handler reads from locals.
func newStkPushTestApp(userID uuid.UUID, store services.PaymentStore, pusher services.StkPusher) *fiber.App {
	PaymentSvc = &services.PaymentService{Store: store, Mpesa: pusher}

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"user_id": userID.String(),
			"role":    "student",
		})
		c.Locals("user", token)
		return c.Next()
	})
	app.Post("/payments/mpesa/stkpush", InitiateMpesaPayment)
	return app
}

func TestInitiateMpesaPaymentEndpoint(t *testing.T) {
	userID := uuid.New()

	t.Run("Given the provider accepts When posting an initiation Then the raw acknowledgement is returned", func(t *testing.T) {
		store := &stubPaymentStore{}
		app := newStkPushTestApp(userID, store, &stubStkPusher{result: &payments.StkPushResult{
			Accepted:          true,
			MerchantRequestID: "29115-34620561-1",
			CheckoutRequestID: "ws_CO_191220191020363925",
			ResponseCode:      "0",
			CustomerMessage:   "Success. Request accepted for processing",
		}})

		req := httptest.NewRequest("POST", "/payments/mpesa/stkpush",
			strings.NewReader(`{"phoneNumber":"0712345678","amount":500,"accountReference":"BOOK-001"}`))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test() error: %v", err)
		}
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}

		var body map[string]string
		raw, _ := io.ReadAll(resp.Body)
		if err := json.Unmarshal(raw, &body); err != nil {
			t.Fatalf("failed to decode response %s: %v", raw, err)
		}
		if body["CheckoutRequestID"] != "ws_CO_191220191020363925" {
			t.Errorf("CheckoutRequestID = %q", body["CheckoutRequestID"])
		}
		if body["ResponseCode"] != "0" {
			t.Errorf("ResponseCode = %q, want 0", body["ResponseCode"])
		}
		if body["CustomerMessage"] != "Success. Request accepted for processing" {
			t.Errorf("CustomerMessage = %q", body["CustomerMessage"])
		}

		if len(store.created) != 1 {
			t.Fatalf("created %d payment records, want 1", len(store.created))
		}
		if store.created[0].ReferenceID != "ws_CO_191220191020363925" {
			t.Errorf("ReferenceID = %q", store.created[0].ReferenceID)
		}
	})

	t.Run("Given the provider rejects When posting an initiation Then the provider description comes back with a 400", func(t *testing.T) {
		store := &stubPaymentStore{}
		app := newStkPushTestApp(userID, store, &stubStkPusher{result: &payments.StkPushResult{
			Accepted:     false,
			ResponseCode: "1",
			Description:  "Insufficient funds",
		}})

		req := httptest.NewRequest("POST", "/payments/mpesa/stkpush",
			strings.NewReader(`{"phoneNumber":"0712345678","amount":500}`))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test() error: %v", err)
		}
		if resp.StatusCode != fiber.StatusBadRequest {
			t.Fatalf("status = %d, want 400", resp.StatusCode)
		}

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		if body["error"] != "Insufficient funds" {
			t.Errorf("error = %q, want Insufficient funds", body["error"])
		}
		if len(store.created) != 0 {
			t.Errorf("created %d payment records, want 0", len(store.created))
		}
	})

	t.Run("Given a transport failure When posting an initiation Then a generic 500 hides the detail", func(t *testing.T) {
		store := &stubPaymentStore{}
		app := newStkPushTestApp(userID, store, &stubStkPusher{
			err: errors.New("mpesa authorization failed: token API returned status 401"),
		})

		req := httptest.NewRequest("POST", "/payments/mpesa/stkpush",
			strings.NewReader(`{"phoneNumber":"0712345678","amount":500}`))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test() error: %v", err)
		}
		if resp.StatusCode != fiber.StatusInternalServerError {
			t.Fatalf("status = %d, want 500", resp.StatusCode)
		}

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		if body["error"] != "Payment processing failed" {
			t.Errorf("error = %q, want Payment processing failed", body["error"])
		}
		if len(store.created) != 0 {
			t.Errorf("created %d payment records, want 0", len(store.created))
		}
	})

	t.Run("Given a missing phone number When posting an initiation Then validation rejects it", func(t *testing.T) {
		store := &stubPaymentStore{}
		app := newStkPushTestApp(userID, store, &stubStkPusher{result: &payments.StkPushResult{Accepted: true}})

		req := httptest.NewRequest("POST", "/payments/mpesa/stkpush",
			strings.NewReader(`{"amount":500}`))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test() error: %v", err)
		}
		if resp.StatusCode != fiber.StatusBadRequest {
			t.Fatalf("status = %d, want 400", resp.StatusCode)
		}
		if len(store.created) != 0 {
			t.Errorf("created %d payment records, want 0", len(store.created))
		}
	})

	t.Run("Given a zero amount When posting an initiation Then validation rejects it", func(t *testing.T) {
		store := &stubPaymentStore{}
		app := newStkPushTestApp(userID, store, &stubStkPusher{result: &payments.StkPushResult{Accepted: true}})

		req := httptest.NewRequest("POST", "/payments/mpesa/stkpush",
			strings.NewReader(`{"phoneNumber":"0712345678","amount":0}`))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test() error: %v", err)
		}
		if resp.StatusCode != fiber.StatusBadRequest {
			t.Fatalf("status = %d, want 400", resp.StatusCode)
		}
	})
}

// newCallbackTestApp mounts the callback receiver with stubbed side effects so
// the spawned receipt and notification goroutines never touch the database.
func newCallbackTestApp(t *testing.T, store *stubPaymentStore) *fiber.App {
	t.Helper()
	PaymentSvc = &services.PaymentService{Store: store}

	origReceipt, origNotify := generateReceipt, notifyUser
	generateReceipt = func(models.Payment) {}
	notifyUser = func(uuid.UUID, string, string, string) {}
	t.Cleanup(func() {
		generateReceipt, notifyUser = origReceipt, origNotify
	})

	app := fiber.New()
	app.Post("/payments/mpesa/callback", HandleMpesaCallback)
	return app
}

func callbackBody(checkoutRequestID string, resultCode int, receipt string) string {
	metadata := ""
	if receipt != "" {
		metadata = `,"CallbackMetadata":{"Item":[
			{"Name":"Amount","Value":500},
			{"Name":"MpesaReceiptNumber","Value":"` + receipt + `"},
			{"Name":"PhoneNumber","Value":254712345678}]}`
	}
	return `{"Body":{"stkCallback":{
		"MerchantRequestID":"29115-34620561-1",
		"CheckoutRequestID":"` + checkoutRequestID + `",
		"ResultCode":` + strconv.Itoa(resultCode) + `,
		"ResultDesc":"The service request is processed successfully."` + metadata + `}}}`
}

func postCallback(t *testing.T, app *fiber.App, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest("POST", "/payments/mpesa/callback", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error: %v", err)
	}
	return resp
}

func TestHandleMpesaCallbackEndpoint(t *testing.T) {
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

	t.Run("Given a success callback When received Then the payment completes with the receipt number", func(t *testing.T) {
		store := &stubPaymentStore{existing: processingPayment()}
		app := newCallbackTestApp(t, store)

		resp := postCallback(t, app, callbackBody("ws_CO_191220191020363925", 0, "NLJ7RT61SV"))
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}

		if len(store.completed) != 1 {
			t.Fatalf("completed %d payments, want 1", len(store.completed))
		}
		p := store.completed[0]
		if p.Status != "completed" {
			t.Errorf("Status = %q, want completed", p.Status)
		}
		if p.MpesaReceipt == nil || *p.MpesaReceipt != "NLJ7RT61SV" {
			t.Errorf("MpesaReceipt = %v, want NLJ7RT61SV", p.MpesaReceipt)
		}
		if p.BookingID == nil || *p.BookingID != bookingID {
			t.Errorf("completed payment lost its booking reference")
		}
		if len(store.failed) != 0 {
			t.Errorf("marked %d payments failed, want 0", len(store.failed))
		}
	})

	t.Run("Given a failure callback When received Then the payment is marked failed and acknowledged", func(t *testing.T) {
		store := &stubPaymentStore{existing: processingPayment()}
		app := newCallbackTestApp(t, store)

		resp := postCallback(t, app, callbackBody("ws_CO_191220191020363925", 1032, ""))
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}

		if len(store.failed) != 1 {
			t.Fatalf("marked %d payments failed, want 1", len(store.failed))
		}
		if store.failed[0].Status != "failed" {
			t.Errorf("Status = %q, want failed", store.failed[0].Status)
		}
		if len(store.completed) != 0 {
			t.Errorf("completed %d payments, want 0", len(store.completed))
		}
	})

	t.Run("Given an already completed payment When the callback replays Then it is a no-op 200", func(t *testing.T) {
		existing := processingPayment()
		existing.Status = "completed"
		store := &stubPaymentStore{existing: existing}
		app := newCallbackTestApp(t, store)

		resp := postCallback(t, app, callbackBody("ws_CO_191220191020363925", 0, "NLJ7RT61SV"))
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
		if len(store.failed) != 0 || len(store.completed) != 0 {
			t.Errorf("replay wrote to the store: failed=%d completed=%d", len(store.failed), len(store.completed))
		}
	})

	t.Run("Given an unknown CheckoutRequestID When the callback arrives Then a 404 is returned", func(t *testing.T) {
		store := &stubPaymentStore{existing: processingPayment()}
		app := newCallbackTestApp(t, store)

		resp := postCallback(t, app, callbackBody("ws_CO_unknown", 0, "NLJ7RT61SV"))
		if resp.StatusCode != fiber.StatusNotFound {
			t.Fatalf("status = %d, want 404", resp.StatusCode)
		}
	})

	t.Run("Given the failed status cannot be saved When the callback arrives Then a 500 is returned", func(t *testing.T) {
		store := &stubPaymentStore{existing: processingPayment(), failErr: errors.New("connection reset")}
		app := newCallbackTestApp(t, store)

		resp := postCallback(t, app, callbackBody("ws_CO_191220191020363925", 1032, ""))
		if resp.StatusCode != fiber.StatusInternalServerError {
			t.Fatalf("status = %d, want 500", resp.StatusCode)
		}
		if len(store.failed) != 0 {
			t.Errorf("store recorded a failed payment despite the save error")
		}
	})

	t.Run("Given the completion cannot be saved When the callback arrives Then a 500 is returned", func(t *testing.T) {
		store := &stubPaymentStore{existing: processingPayment(), completeErr: errors.New("connection reset")}
		app := newCallbackTestApp(t, store)

		resp := postCallback(t, app, callbackBody("ws_CO_191220191020363925", 0, "NLJ7RT61SV"))
		if resp.StatusCode != fiber.StatusInternalServerError {
			t.Fatalf("status = %d, want 500", resp.StatusCode)
		}
	})
}
