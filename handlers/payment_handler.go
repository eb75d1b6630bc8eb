package handlers

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/antoniodasilva12/hostelmng/database"
	"github.com/antoniodasilva12/hostelmng/models"
	"github.com/antoniodasilva12/hostelmng/services"
	"github.com/antoniodasilva12/hostelmng/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// PaymentSvc is wired in main once the database connection exists.
var PaymentSvc *services.PaymentService

// Asynchronous side effects behind variables so tests can stub them.
var (
	generateReceipt = services.GenerateReceipt
	notifyUser      = NotifyUser
)

type MpesaPaymentRequest struct {
	PhoneNumber      string  `json:"phoneNumber" validate:"required"`
	Amount           float64 `json:"amount" validate:"required,gt=0"`
	AccountReference string  `json:"accountReference,omitempty"`
	PaymentType      string  `json:"payment_type" validate:"omitempty,oneof=room_rent meal_plan maintenance security_deposit"`
	Description      string  `json:"description,omitempty"`
	BookingID        *string `json:"booking_id,omitempty" validate:"omitempty,uuid"`
}

// InitiateMpesaPayment drives one STK push attempt for the caller. The
// provider acknowledgement is returned raw on acceptance; a provider
// rejection surfaces the provider's description; everything else collapses
// into a generic processing failure.
func InitiateMpesaPayment(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var req MpesaPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	paymentType := req.PaymentType
	if paymentType == "" {
		paymentType = "room_rent"
	}

	var bookingID *uuid.UUID
	if req.BookingID != nil {
		id, _ := uuid.Parse(*req.BookingID)
		bookingID = &id
	}

	result, err := PaymentSvc.InitiateMobilePayment(c.Context(), userID, services.MobilePaymentInput{
		PhoneNumber:      req.PhoneNumber,
		Amount:           req.Amount,
		AccountReference: req.AccountReference,
		PaymentType:      paymentType,
		Description:      req.Description,
		BookingID:        bookingID,
	})
	if err != nil {
		if errors.Is(err, services.ErrPaymentRejected) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": result.Description})
		}
		log.Printf("🔥 M-Pesa payment initiation failed for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Payment processing failed"})
	}

	return c.JSON(fiber.Map{
		"MerchantRequestID": result.MerchantRequestID,
		"CheckoutRequestID": result.CheckoutRequestID,
		"ResponseCode":      result.ResponseCode,
		"CustomerMessage":   result.CustomerMessage,
	})
}

type MpesaCallbackPayload struct {
	Body struct {
		StkCallback struct {
			MerchantRequestID string `json:"MerchantRequestID"`
			CheckoutRequestID string `json:"CheckoutRequestID"`
			ResultCode        int    `json:"ResultCode"`
			ResultDesc        string `json:"ResultDesc"`
			CallbackMetadata  struct {
				Item []struct {
					Name  string      `json:"Name"`
					Value interface{} `json:"Value"`
				} `json:"Item"`
			} `json:"CallbackMetadata"`
		} `json:"stkCallback"`
	} `json:"Body"`
}

// HandleMpesaCallback reconciles the provider's asynchronous result with the
// provisional payment row created at initiation. Lookup is by reference_id,
// which holds the CheckoutRequestID for STK push payments.
func HandleMpesaCallback(c *fiber.Ctx) error {
	var payload MpesaCallbackPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse callback payload"})
	}

	stk := payload.Body.StkCallback
	log.Printf("Received M-Pesa callback for CheckoutRequestID: %s, ResultCode: %d", stk.CheckoutRequestID, stk.ResultCode)

	var mpesaReceipt string
	for _, item := range stk.CallbackMetadata.Item {
		if item.Name == "MpesaReceiptNumber" {
			if val, ok := item.Value.(string); ok {
				mpesaReceipt = val
				break
			}
		}
	}

	payment, outcome, err := PaymentSvc.ConfirmMpesaResult(stk.CheckoutRequestID, stk.ResultCode, mpesaReceipt)
	if err != nil {
		if errors.Is(err, services.ErrPaymentNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Payment record not found"})
		}
		log.Printf("🔥 CRITICAL: Error processing callback for CheckoutRequestID %s: %v", stk.CheckoutRequestID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process callback"})
	}

	switch outcome {
	case services.CallbackAlreadyProcessed:
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Callback already processed"})
	case services.CallbackFailed:
		go notifyUser(payment.UserID, "Payment failed",
			fmt.Sprintf("Your M-Pesa payment of KES %.2f was not completed: %s", payment.Amount, stk.ResultDesc), "error")
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Acknowledged failed payment"})
	}

	go generateReceipt(*payment)
	go notifyUser(payment.UserID, "Payment received",
		fmt.Sprintf("Your M-Pesa payment of KES %.2f has been confirmed.", payment.Amount), "success")

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Callback processed successfully"})
}

type CreatePaymentRequest struct {
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	PaymentType string  `json:"payment_type" validate:"required,oneof=room_rent meal_plan maintenance security_deposit"`
	Description string  `json:"description,omitempty"`
	BookingID   *string `json:"booking_id,omitempty" validate:"omitempty,uuid"`
}

// CreatePayment records a manual (non-mobile) payment with a locally
// generated reference and settles it after a short processing window.
func CreatePayment(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var req CreatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var bookingID *uuid.UUID
	if req.BookingID != nil {
		id, _ := uuid.Parse(*req.BookingID)
		bookingID = &id
	}

	payment := models.Payment{
		UserID:      userID,
		Amount:      req.Amount,
		PaymentType: req.PaymentType,
		Status:      "pending",
		ReferenceID: utils.GeneratePaymentReference(),
		Description: req.Description,
		BookingID:   bookingID,
	}

	if err := database.DB.Create(&payment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create payment"})
	}

	go settleManualPayment(payment.ID)

	return c.Status(fiber.StatusCreated).JSON(payment)
}

func settleManualPayment(paymentID uuid.UUID) {
	time.Sleep(2 * time.Second)

	var payment models.Payment
	if err := database.DB.First(&payment, "id = ?", paymentID).Error; err != nil {
		log.Printf("🔥 Failed to settle payment %s: %v", paymentID, err)
		return
	}

	payment.Status = "completed"
	if err := database.DB.Save(&payment).Error; err != nil {
		log.Printf("🔥 Failed to settle payment %s: %v", paymentID, err)
		return
	}

	go generateReceipt(payment)
	go notifyUser(payment.UserID, "Payment received",
		fmt.Sprintf("Your payment of KES %.2f has been confirmed.", payment.Amount), "success")
}

func ListMyPayments(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID := claims["user_id"].(string)

	var paymentList []models.Payment
	if err := database.DB.Where("user_id = ?", userID).Order("created_at desc").Find(&paymentList).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch payments"})
	}

	return c.JSON(paymentList)
}

func ListAllPayments(c *fiber.Ctx) error {
	query := database.DB.Order("created_at desc")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var paymentList []models.Payment
	if err := query.Find(&paymentList).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch payments"})
	}

	return c.JSON(paymentList)
}
