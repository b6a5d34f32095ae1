package service

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"path/filepath"
	"time"

	"diabcar/internal/db"
	"diabcar/internal/entities"
	"diabcar/internal/utils"
)

// SenderService turns booking status changes into customer email and SMS
// notifications. Sends run in the background; a failed delivery is
// logged and never fails the booking operation that triggered it.
type SenderService struct {
}

func NewSenderService() *SenderService {
	return &SenderService{}
}

func (s *SenderService) NotifyBookingStatus(user *db.User, car *db.Car, booking *db.Booking) {
	s.sendBookingEmail(user, car, booking)
	s.sendBookingSMS(user, booking)
}

func (s *SenderService) sendBookingEmail(user *db.User, car *db.Car, booking *db.Booking) {
	emailData := entities.BookingEmailData{
		UserName:    user.Name,
		BookingID:   booking.ID,
		CarName:     fmt.Sprintf("%s %s", car.Name, car.Model),
		StartDate:   utils.FormatDate(booking.StartDate),
		EndDate:     utils.FormatDate(booking.EndDate),
		TotalPrice:  booking.TotalPrice,
		Status:      booking.Status,
		CurrentYear: time.Now().UTC().Year(),
	}

	emailSubject := fmt.Sprintf("Your DiabCar booking #%d is %s", emailData.BookingID, emailData.Status)
	plainTextBody := fmt.Sprintf(
		"Hello %s,\n\nYour booking at DiabCar is %s.\n\n"+
			"Booking Details:\n"+
			"Booking ID: %d\n"+
			"Car: %s\n"+
			"Pick-up: %s\n"+
			"Return: %s\n"+
			"Total: %.2f\n\n"+
			"Thank you for choosing DiabCar.\n\n"+
			"DiabCar. All rights reserved.",
		emailData.UserName, emailData.Status, emailData.BookingID, emailData.CarName,
		emailData.StartDate, emailData.EndDate, emailData.TotalPrice,
	)

	tmplPath := filepath.Join("internal", "templates", "booking_email.html")
	tmpl, err := template.ParseFiles(tmplPath)
	if err != nil {
		log.Printf("ALERT: Could not parse HTML email template (%s): %v", tmplPath, err)
	}

	var htmlBody string
	if tmpl != nil {
		var htmlBodyBuffer bytes.Buffer
		if err := tmpl.Execute(&htmlBodyBuffer, emailData); err != nil {
			log.Printf("ALERT: Could not execute HTML email template for booking %d: %v", emailData.BookingID, err)
		}
		htmlBody = htmlBodyBuffer.String()
	}

	go func(toEmail, userName, subject, plainBody, htmlBodyContent string) {
		if errEmail := SendEmailWithSendGrid(toEmail, userName, subject, plainBody, htmlBodyContent); errEmail != nil {
			log.Printf("ALERT (async): Email delivery failed for booking %d: %v", emailData.BookingID, errEmail)
		}
	}(user.Email, emailData.UserName, emailSubject, plainTextBody, htmlBody)
}

func (s *SenderService) sendBookingSMS(user *db.User, booking *db.Booking) {
	smsMessage := fmt.Sprintf("DiabCar: Your booking #%d is %s!\nPick-up: %s.\nMore details in your email.",
		booking.ID, booking.Status, utils.FormatDate(booking.StartDate))

	go func(phone, body string) {
		if errSMS := SendSMS(phone, body); errSMS != nil {
			log.Printf("ALERT (async): SMS delivery failed for booking %d to %s: %v", booking.ID, phone, errSMS)
		}
	}(user.PhoneNumber, smsMessage)
}
