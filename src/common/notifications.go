package common

import (
	"castbook/src/db"
	"castbook/src/lib"
	"castbook/src/lib/mailer"
	"castbook/src/models"
	"castbook/src/types"
	"fmt"
	"log"
	"os"
)

// Notification emails are fire-and-forget: a failed send is logged and
// swallowed, never propagated to the caller or rolled back.

func notify(to []string, subject string, body string) {
	if len(to) == 0 {
		return
	}
	input := &lib.SendMailInput{
		From:     os.Getenv("MAILER_FROM"),
		FromName: os.Getenv("MAILER_FROM_NAME"),
		To:       to,
		Subject:  subject,
		Body:     body,
	}
	if err := mailer.NewMailerMessage(input); err != nil {
		log.Printf("Error sending notification %q: %s\n", subject, err.Error())
	}
}

func NotifyBookingStatus(booking *models.Booking) {
	var to []string
	if booking.Client != nil && booking.Client.Email != "" {
		to = append(to, booking.Client.Email)
	}
	to = append(to, talentEmailsForBooking(booking.ID)...)
	notify(to,
		fmt.Sprintf("Booking %s is now %s", booking.Code, booking.Status),
		fmt.Sprintf("The booking %q (%s) has moved to status %s.", booking.Title, booking.Code, booking.Status),
	)
}

func NotifyTalentRequests(booking *models.Booking, talentIDs []uint) {
	database := db.GetDb()
	var emails []string
	if err := database.
		Model(&models.User{}).
		Where("id IN (?)", talentIDs).
		Pluck("email", &emails).
		Error; err != nil {
		log.Printf("Error loading talent emails for booking [%s]: %s\n", booking.Code, err.Error())
		return
	}
	for _, email := range emails {
		notify([]string{email},
			fmt.Sprintf("Booking request: %s", booking.Title),
			fmt.Sprintf("You have been requested for booking %q (%s) in %s. Log in to accept or decline.", booking.Title, booking.Code, booking.Location),
		)
	}
}

func NotifyTalentResponse(link *models.BookingTalent) {
	var name, code string
	if link.Talent != nil {
		name = link.Talent.Name
	}
	if link.Booking != nil {
		code = link.Booking.Code
	}
	notify(adminEmails(),
		fmt.Sprintf("Talent %s booking request %s", link.RequestStatus, code),
		fmt.Sprintf("%s has %s the request for booking %s. Message: %s", name, link.RequestStatus, code, link.ResponseMessage),
	)
}

func NotifyContractSent(contract *models.Contract) {
	if contract.BookingTalent == nil || contract.BookingTalent.Talent == nil {
		return
	}
	notify([]string{contract.BookingTalent.Talent.Email},
		fmt.Sprintf("Contract ready for signing: %s", contract.Title),
		fmt.Sprintf("The contract %q is ready for your signature. Document: %s", contract.Title, contract.PdfURL),
	)
}

func NotifyContractSigned(contract *models.Contract) {
	to := adminEmails()
	if contract.Booking != nil && contract.Booking.Client != nil && contract.Booking.Client.Email != "" {
		to = append(to, contract.Booking.Client.Email)
	}
	notify(to,
		fmt.Sprintf("Contract signed: %s", contract.Title),
		fmt.Sprintf("The contract %q has been signed. Document: %s", contract.Title, contract.PdfURL),
	)
}

func NotifyContractReminder(contract *models.Contract) {
	if contract.BookingTalent == nil || contract.BookingTalent.Talent == nil {
		return
	}
	notify([]string{contract.BookingTalent.Talent.Email},
		fmt.Sprintf("Reminder: contract %s awaits your signature", contract.Title),
		fmt.Sprintf("The contract %q has reached its signing deadline and is still unsigned. Document: %s", contract.Title, contract.PdfURL),
	)
}

func adminEmails() []string {
	database := db.GetDb()
	var emails []string
	if err := database.
		Model(&models.User{}).
		Where("role = ?", string(types.ROLE_ADMIN)).
		Pluck("email", &emails).
		Error; err != nil {
		log.Printf("Error loading admin emails: %s\n", err.Error())
	}
	return emails
}

func talentEmailsForBooking(bookingID uint) []string {
	database := db.GetDb()
	var emails []string
	if err := database.
		Model(&models.BookingTalent{}).
		Joins("JOIN users ON users.id = booking_talents.talent_id").
		Where("booking_talents.booking_id = ? AND booking_talents.request_status = ?", bookingID, types.REQUEST_ACCEPTED).
		Pluck("users.email", &emails).
		Error; err != nil {
		log.Printf("Error loading talent emails for booking [%d]: %s\n", bookingID, err.Error())
	}
	return emails
}
