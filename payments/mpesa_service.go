package payments

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	config "github.com/antoniodasilva12/hostelmng/configs"
)

const (
	darajaTokenURL   = "https://sandbox.safaricom.co.ke/oauth/v1/generate"
	darajaStkPushURL = "https://sandbox.safaricom.co.ke/mpesa/stkpush/v1/processrequest"

	transactionTypePayBill = "CustomerPayBillOnline"
)

// MpesaService holds the Daraja credentials and endpoints for one merchant
// short code. Endpoints and clock are fields so tests can point the service
// at a fake provider.
type MpesaService struct {
	ConsumerKey     string
	ConsumerSecret  string
	ShortCode       string
	Passkey         string
	CallbackBaseURL string

	TokenURL   string
	StkPushURL string
	Client     *http.Client
	Now        func() time.Time
}

func NewMpesaService() *MpesaService {
	return &MpesaService{
		ConsumerKey:     config.Config("MPESA_CONSUMER_KEY"),
		ConsumerSecret:  config.Config("MPESA_CONSUMER_SECRET"),
		ShortCode:       config.Config("MPESA_SHORTCODE"),
		Passkey:         config.Config("MPESA_PASSKEY"),
		CallbackBaseURL: config.Config("WEBHOOK_BASE_URL"),
		TokenURL:        darajaTokenURL,
		StkPushURL:      darajaStkPushURL,
		Client:          &http.Client{Timeout: 10 * time.Second},
		Now:             time.Now,
	}
}

type StkPushRequest struct {
	BusinessShortCode string `json:"BusinessShortCode"`
	Password          string `json:"Password"`
	Timestamp         string `json:"Timestamp"`
	TransactionType   string `json:"TransactionType"`
	Amount            string `json:"Amount"`
	PartyA            string `json:"PartyA"`
	PartyB            string `json:"PartyB"`
	PhoneNumber       string `json:"PhoneNumber"`
	CallBackURL       string `json:"CallBackURL"`
	AccountReference  string `json:"AccountReference"`
	TransactionDesc   string `json:"TransactionDesc"`
}

// stkPushResponse covers both shapes Daraja answers with: the acknowledgement
// fields on acceptance and the errorCode/errorMessage pair on rejection.
type stkPushResponse struct {
	MerchantRequestID   string `json:"MerchantRequestID"`
	CheckoutRequestID   string `json:"CheckoutRequestID"`
	ResponseCode        string `json:"ResponseCode"`
	ResponseDescription string `json:"ResponseDescription"`
	CustomerMessage     string `json:"CustomerMessage"`
	ErrorCode           string `json:"errorCode"`
	ErrorMessage        string `json:"errorMessage"`
}

// StkPushResult is the decoded outcome of one initiation attempt: either the
// provider accepted it (Accepted true, CheckoutRequestID set) or rejected it
// (Accepted false, Description carries the provider's reason).
type StkPushResult struct {
	Accepted          bool
	MerchantRequestID string
	CheckoutRequestID string
	CustomerMessage   string
	ResponseCode      string
	Description       string
}

var nonNumericRegex = regexp.MustCompile(`[^0-9]`)

func SanitizeMpesaNumber(phone string) (string, error) {
	sanitized := nonNumericRegex.ReplaceAllString(phone, "")

	if (strings.HasPrefix(sanitized, "07") || strings.HasPrefix(sanitized, "01")) && len(sanitized) == 10 {
		return "254" + sanitized[1:], nil
	}
	if (strings.HasPrefix(sanitized, "7") || strings.HasPrefix(sanitized, "1")) && len(sanitized) == 9 {
		return "254" + sanitized, nil
	}
	if strings.HasPrefix(sanitized, "254") && len(sanitized) == 12 {
		return sanitized, nil
	}

	return "", errors.New("invalid M-Pesa phone number format")
}

// StkTimestamp formats t as the 14-digit YYYYMMDDHHMMSS stamp Daraja expects.
func StkTimestamp(t time.Time) string {
	return t.Format("20060102150405")
}

// StkPassword derives the one-time password for an STK push:
// base64(shortcode || passkey || timestamp).
func StkPassword(shortCode, passkey, timestamp string) string {
	return base64.StdEncoding.EncodeToString([]byte(shortCode + passkey + timestamp))
}

func (s *MpesaService) buildStkPushRequest(phone, amount, accountReference string) StkPushRequest {
	timestamp := StkTimestamp(s.Now())

	return StkPushRequest{
		BusinessShortCode: s.ShortCode,
		Password:          StkPassword(s.ShortCode, s.Passkey, timestamp),
		Timestamp:         timestamp,
		TransactionType:   transactionTypePayBill,
		Amount:            amount,
		PartyA:            phone,
		PartyB:            s.ShortCode,
		PhoneNumber:       phone,
		CallBackURL:       s.CallbackBaseURL + "/api/v1/payments/mpesa/callback",
		AccountReference:  accountReference,
		TransactionDesc:   fmt.Sprintf("Hostel Payment - %s", accountReference),
	}
}

// InitiateStkPush runs one end-to-end initiation attempt: token, payload,
// provider call. A non-nil error means the attempt never reached a provider
// verdict (transport, auth, malformed response); a provider rejection comes
// back as a result with Accepted false. No retries on any path.
func (s *MpesaService) InitiateStkPush(ctx context.Context, phoneNumber string, amount float64, accountReference string) (*StkPushResult, error) {
	accessToken, err := s.FetchAccessToken(ctx)
	if err != nil {
		return nil, err
	}

	sanitizedPhone, err := SanitizeMpesaNumber(phoneNumber)
	if err != nil {
		return nil, err
	}

	amountStr := strconv.FormatFloat(amount, 'f', 0, 64)
	payload := s.buildStkPushRequest(sanitizedPhone, amountStr, accountReference)

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal STK payload: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.StkPushURL, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create STK request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send STK request: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read STK response body: %v", err)
	}

	var stkResponse stkPushResponse
	if err := json.Unmarshal(respBody, &stkResponse); err != nil {
		return nil, fmt.Errorf("failed to unmarshal STK response: %v", err)
	}

	if stkResponse.ErrorCode != "" {
		log.Printf("M-Pesa STK push rejected: %s %s", stkResponse.ErrorCode, stkResponse.ErrorMessage)
		return &StkPushResult{
			Accepted:     false,
			ResponseCode: stkResponse.ErrorCode,
			Description:  stkResponse.ErrorMessage,
		}, nil
	}

	if stkResponse.ResponseCode != "0" {
		log.Printf("M-Pesa STK push initiation failed: %s", stkResponse.ResponseDescription)
		description := stkResponse.ResponseDescription
		if description == "" {
			description = "Payment initiation failed"
		}
		return &StkPushResult{
			Accepted:     false,
			ResponseCode: stkResponse.ResponseCode,
			Description:  description,
		}, nil
	}

	log.Println("✅ STK push initiated successfully for reference:", accountReference)
	return &StkPushResult{
		Accepted:          true,
		MerchantRequestID: stkResponse.MerchantRequestID,
		CheckoutRequestID: stkResponse.CheckoutRequestID,
		CustomerMessage:   stkResponse.CustomerMessage,
		ResponseCode:      stkResponse.ResponseCode,
		Description:       stkResponse.ResponseDescription,
	}, nil
}
