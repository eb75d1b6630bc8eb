package jobs

import (
	"fmt"
	"log"
	"time"

	"github.com/antoniodasilva12/hostelmng/database"
	"github.com/antoniodasilva12/hostelmng/handlers"
	"github.com/antoniodasilva12/hostelmng/models"
)

// Payments accepted by the provider but never resolved by a callback would
// otherwise sit in processing forever. After a day the mobile prompt has long
// expired, so the watchdog fails them and tells the payer to try again.
const stalePaymentAge = 24 * time.Hour

func FailStalePayments() {
	log.Println("Running job: FailStalePayments...")

	cutoff := time.Now().Add(-stalePaymentAge)

	var stalePayments []models.Payment
	err := database.DB.
		Where("status = ? AND updated_at < ?", "processing", cutoff).
		Find(&stalePayments).Error
	if err != nil {
		log.Printf("Error checking for stale payments: %v", err)
		return
	}

	if len(stalePayments) == 0 {
		log.Println("No stale payments found.")
		return
	}

	for _, payment := range stalePayments {
		payment.Status = "failed"
		if err := database.DB.Save(&payment).Error; err != nil {
			log.Printf("Error failing stale payment %s: %v", payment.ID, err)
			continue
		}
		go handlers.NotifyUser(payment.UserID, "Payment expired",
			fmt.Sprintf("Your payment of KES %.2f was never confirmed and has been marked as failed. Please try again.", payment.Amount), "warning")
	}

	log.Printf("Marked %d stale payment(s) as failed.", len(stalePayments))
}
