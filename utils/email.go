package utils

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	"storefront/models"
)

// Mailer sends customer notifications
type Mailer interface {
	SendOrderConfirmation(order models.Order) error
}

// EmailService handles sending emails using SendGrid
type EmailService struct {
	client *sendgrid.Client
	sender string
}

// NewMailer returns a SendGrid backed mailer, or one that only logs when no
// API key is configured.
func NewMailer(apiKey, sender string) Mailer {
	if apiKey == "" {
		zap.L().Warn("SENDGRID_API_KEY not set, order emails will only be logged")
		return LogMailer{}
	}
	return &EmailService{client: sendgrid.NewSendClient(apiKey), sender: sender}
}

// SendEmail sends a basic email to the specified recipient
func (es *EmailService) SendEmail(toName, toEmail, subject, htmlContent string) error {
	from := mail.NewEmail("SlayerForge", es.sender)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, htmlContent, htmlContent)

	response, err := es.client.Send(message)
	if err != nil {
		return errors.Wrap(err, "failed to send email")
	}
	if response.StatusCode >= 300 {
		return errors.Errorf("failed to send email: status %d", response.StatusCode)
	}
	zap.L().Info("email sent", zap.String("to", toEmail), zap.String("subject", subject))
	return nil
}

// SendOrderConfirmation sends an order confirmation email to the customer
func (es *EmailService) SendOrderConfirmation(order models.Order) error {
	subject := fmt.Sprintf("Order Confirmation %s", order.OrderNumber)
	return es.SendEmail(order.Customer.FullName, order.Customer.Email, subject, OrderConfirmationBody(order))
}

// OrderConfirmationBody renders the HTML body of the confirmation email.
func OrderConfirmationBody(order models.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<strong>Dear %s,</strong><br><br>", order.Customer.FullName)
	fmt.Fprintf(&b, "Thank you for your purchase! Your order (%s) has been placed successfully.<br><br>", order.OrderNumber)
	b.WriteString("<ul>")
	for _, item := range order.Items {
		fmt.Fprintf(&b, "<li>%s &times; %d: $%s</li>", item.Name, item.Quantity, item.Subtotal)
	}
	b.WriteString("</ul>")
	fmt.Fprintf(&b, "Total Amount: <strong>$%s</strong><br>", order.TotalAmount)
	fmt.Fprintf(&b, "Shipping to: %s, %s, %s %s<br><br>", order.Customer.Address, order.Customer.City, order.Customer.State, order.Customer.Pincode)
	b.WriteString("Thank you for shopping with us!")
	return b.String()
}

// LogMailer writes confirmations to the log instead of sending them
type LogMailer struct{}

func (LogMailer) SendOrderConfirmation(order models.Order) error {
	zap.L().Info("order confirmation (not sent)",
		zap.String("order", order.OrderNumber),
		zap.String("to", order.Customer.Email),
		zap.String("total", order.TotalAmount))
	return nil
}
