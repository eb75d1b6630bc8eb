package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"
	"time"

	config "github.com/antoniodasilva12/hostelmng/configs"
	"github.com/antoniodasilva12/hostelmng/database"
	"github.com/antoniodasilva12/hostelmng/models"
	"github.com/antoniodasilva12/hostelmng/notifications"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// GenerateReceipt renders a PDF receipt for a completed payment, uploads it
// and stores the URL on the payment row. Best effort: a receipt failure never
// rolls back the payment itself.
func GenerateReceipt(payment models.Payment) {
	if payment.Status != "completed" {
		return
	}

	var payer models.User
	if err := database.DB.First(&payer, "id = ?", payment.UserID).Error; err != nil {
		log.Printf("🔥 Receipt generation: payer %s not found: %v", payment.UserID, err)
		return
	}

	htmlData, err := generateReceiptHTML(payer.FullName, payment)
	if err != nil {
		log.Printf("🔥 Failed to generate receipt HTML: %v", err)
		return
	}

	pdfBytes, err := generatePDFFromHTML(htmlData)
	if err != nil {
		log.Printf("🔥 Failed to generate receipt PDF: %v", err)
		return
	}

	uploadURL, err := uploadReceiptToCloudinary(pdfBytes, payment.ID.String())
	if err != nil {
		log.Printf("🔥 Failed to upload receipt to Cloudinary: %v", err)
		return
	}

	payment.ReceiptURL = &uploadURL
	if err := database.DB.Save(&payment).Error; err != nil {
		log.Printf("🔥 Failed to store receipt URL for payment %s: %v", payment.ID, err)
		return
	}

	go notifications.SendEmail(payer.FullName, payer.Email, "Your Payment Receipt",
		fmt.Sprintf("<h1>Payment Received</h1><p>Your payment of KES %.2f has been confirmed.</p><p><a href='%s'>Download your receipt</a></p>", payment.Amount, uploadURL))

	log.Printf("✅ Generated and uploaded receipt for payment %s.", payment.ID)
}

func generateReceiptHTML(payerName string, payment models.Payment) (string, error) {
	tmpl, err := template.ParseFiles("templates/receipt.html")
	if err != nil {
		return "", err
	}

	receipt := ""
	if payment.MpesaReceipt != nil {
		receipt = *payment.MpesaReceipt
	}

	data := struct {
		PayerName   string
		Amount      string
		PaymentType string
		ReferenceID string
		Receipt     string
		PaidAt      string
	}{
		PayerName:   payerName,
		Amount:      fmt.Sprintf("KES %.2f", payment.Amount),
		PaymentType: payment.PaymentType,
		ReferenceID: payment.ReferenceID,
		Receipt:     receipt,
		PaidAt:      time.Now().Format("January 2, 2006"),
	}

	var renderedHTML bytes.Buffer
	if err := tmpl.Execute(&renderedHTML, data); err != nil {
		return "", err
	}
	return renderedHTML.String(), nil
}

func generatePDFFromHTML(htmlContent string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var pdfBuffer []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuffer, nil
}

func uploadReceiptToCloudinary(fileBytes []byte, paymentID string) (string, error) {
	cld, err := cloudinary.NewFromURL(config.Config("CLOUDINARY_URL"))
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	uploadParams := uploader.UploadParams{
		PublicID:     fmt.Sprintf("receipts/%s_%s", paymentID, uuid.New().String()),
		Folder:       "hostelmng_receipts",
		ResourceType: "raw",
	}

	uploadResult, err := cld.Upload.Upload(ctx, bytes.NewReader(fileBytes), uploadParams)
	if err != nil {
		return "", err
	}

	return uploadResult.SecureURL, nil
}
