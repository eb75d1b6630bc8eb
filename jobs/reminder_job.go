package jobs

import (
	"fmt"
	"log"
	"time"

	"github.com/antoniodasilva12/hostelmng/database"
	"github.com/antoniodasilva12/hostelmng/models"
	"github.com/antoniodasilva12/hostelmng/notifications"
)

// SendCheckInReminders emails students whose approved booking checks in
// tomorrow.
func SendCheckInReminders() {
	log.Println("Running job: SendCheckInReminders...")

	tomorrow := time.Now().AddDate(0, 0, 1)
	dayStart := time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 0, 0, 0, 0, tomorrow.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var bookings []models.RoomBooking
	err := database.DB.Preload("Student").Preload("Room").
		Where("status = ? AND check_in_date >= ? AND check_in_date < ?", "approved", dayStart, dayEnd).
		Find(&bookings).Error
	if err != nil {
		log.Printf("Error fetching bookings for check-in reminders: %v", err)
		return
	}

	for _, booking := range bookings {
		notifications.SendEmail(booking.Student.FullName, booking.Student.Email, "Check-in Reminder",
			fmt.Sprintf("<h1>See you tomorrow!</h1><p>Your check-in for room %s is scheduled for tomorrow. Please bring your student ID and booking reference.</p>", booking.Room.RoomNumber))
	}

	if len(bookings) > 0 {
		log.Printf("Sent %d check-in reminder(s).", len(bookings))
	}
}

// SendPaymentDueReminders emails payers whose pending payment falls due
// within the next three days.
func SendPaymentDueReminders() {
	log.Println("Running job: SendPaymentDueReminders...")

	now := time.Now()
	horizon := now.AddDate(0, 0, 3)

	var duePayments []models.Payment
	err := database.DB.
		Where("status = ? AND due_date IS NOT NULL AND due_date BETWEEN ? AND ?", "pending", now, horizon).
		Find(&duePayments).Error
	if err != nil {
		log.Printf("Error fetching due payments: %v", err)
		return
	}

	for _, payment := range duePayments {
		var payer models.User
		if err := database.DB.First(&payer, "id = ?", payment.UserID).Error; err != nil {
			continue
		}
		notifications.SendEmail(payer.FullName, payer.Email, "Payment Due Soon",
			fmt.Sprintf("<h1>Payment Reminder</h1><p>Your %s payment of KES %.2f is due on %s.</p>", payment.PaymentType, payment.Amount, payment.DueDate.Format("January 2, 2006")))
	}

	if len(duePayments) > 0 {
		log.Printf("Sent %d payment due reminder(s).", len(duePayments))
	}
}
