package service

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"

	"tricoterie/internal/db"
	"tricoterie/internal/entities"
)

// SenderService sends the owner their copy of each reservation, by SendGrid
// email and, when a number is configured, by Twilio SMS. Both are best effort;
// the customer-facing dispatch never waits on them.
type SenderService struct{}

func NewSenderService() *SenderService {
	return &SenderService{}
}

func (s *SenderService) NotifyOwner(reservation db.Reservation, status string) {
	parisLoc, errLoc := time.LoadLocation("Europe/Paris")
	if errLoc != nil {
		parisLoc = time.FixedZone("CET", 1*60*60) // fallback CET
	}

	startFormatted := ""
	if reservation.StartTime.Valid {
		startFormatted = reservation.StartTime.Time.In(parisLoc).Format("02 Jan 2006 15:04")
	}

	emailData := entities.ReservationEmailData{
		Nom:                reservation.Nom,
		Prenom:             reservation.Prenom,
		ReservationCode:    reservation.Code,
		Forfait:            reservation.Forfait,
		Variant:            reservation.Variant,
		StartTimeFormatted: startFormatted,
		Status:             status,
		CurrentYear:        time.Now().In(parisLoc).Year(),
	}

	subject := fmt.Sprintf("Réservation %s (%s) - %s %s", emailData.ReservationCode, status, emailData.Prenom, emailData.Nom)
	body := fmt.Sprintf(
		"Nouvelle réservation %s.\n\n"+
			"Code : %s\n"+
			"Client : %s %s (%s)\n"+
			"Formule : %s\n"+
			"Forfait : %s\n"+
			"Date : %s\n\n"+
			"Madame Tricote %d.",
		status, emailData.ReservationCode, emailData.Prenom, emailData.Nom, reservation.Email,
		emailData.Variant, emailData.Forfait, emailData.StartTimeFormatted, emailData.CurrentYear,
	)

	go func() {
		if err := SendEmailWithSendGrid(os.Getenv("OWNER_EMAIL"), "Madame Tricote", subject, body, ""); err != nil {
			log.Printf("ALERTE: owner email for reservation %s failed: %v", emailData.ReservationCode, err)
		}
	}()

	if ownerPhone := os.Getenv("OWNER_PHONE"); ownerPhone != "" {
		smsBody := fmt.Sprintf("Madame Tricote : réservation %s %s.\nDate : %s.\nDétails par email.",
			emailData.ReservationCode, status, emailData.StartTimeFormatted)
		go func() {
			if err := SendSMS(ownerPhone, smsBody); err != nil {
				log.Printf("ALERTE: owner SMS for reservation %s failed: %v", emailData.ReservationCode, err)
			}
		}()
	}
}

func SendEmailWithSendGrid(toEmailAddress, toName, subject, plainTextContent, htmlContent string) error {
	sendgridAPIKey := os.Getenv("SENDGRID_API_KEY")
	if sendgridAPIKey == "" {
		return fmt.Errorf("SENDGRID_API_KEY not set")
	}
	fromEmail := os.Getenv("SENDGRID_FROM_EMAIL")
	if fromEmail == "" {
		return fmt.Errorf("SENDGRID_FROM_EMAIL not set")
	}
	if toEmailAddress == "" {
		return fmt.Errorf("no recipient configured")
	}
	fromName := os.Getenv("SENDGRID_FROM_NAME")
	if fromName == "" {
		fromName = "Madame Tricote"
	}
	if htmlContent == "" {
		htmlContent = plainTextContent
	}

	from := mail.NewEmail(fromName, fromEmail)
	to := mail.NewEmail(toName, toEmailAddress)
	message := mail.NewSingleEmail(from, subject, to, plainTextContent, htmlContent)

	client := sendgrid.NewSendClient(sendgridAPIKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("sendgrid send failed: %w", err)
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return fmt.Errorf("sendgrid returned status %d: %s", response.StatusCode, response.Body)
	}
	log.Printf("Owner email sent to %s (subject: %s)", toEmailAddress, subject)
	return nil
}

func SendSMS(toNumber, messageBody string) error {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")
	fromNumber := os.Getenv("TWILIO_FROM_NUMBER")
	if accountSid == "" || authToken == "" || fromNumber == "" {
		return fmt.Errorf("twilio credentials not fully configured")
	}
	if !strings.HasPrefix(toNumber, "+") {
		log.Printf("SMS recipient '%s' is not in E.164 format, send may fail", toNumber)
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSid,
		Password: authToken,
	})

	params := &openapi.CreateMessageParams{}
	params.SetTo(toNumber)
	params.SetFrom(fromNumber)
	params.SetBody(messageBody)

	resp, err := client.Api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("failed to send SMS: %w", err)
	}
	if resp != nil && resp.Sid != nil {
		log.Printf("SMS sent to %s, message SID %s", toNumber, *resp.Sid)
	}
	return nil
}
