// internal/services/notification_service.go
package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/sirupsen/logrus"

	"github.com/letmemugyou/backend/internal/config"
	"github.com/letmemugyou/backend/internal/models"
)

// AdminEmailSource yields the admin notification address, empty when none
// is configured.
type AdminEmailSource interface {
	AdminEmail(ctx context.Context) string
}

// NotificationService renders and dispatches order emails. Without SMTP
// credentials it degrades to log-only stubs rather than failing checkout.
type NotificationService struct {
	config *config.Config
	admins AdminEmailSource
}

func NewNotificationService(cfg *config.Config, admins AdminEmailSource) *NotificationService {
	return &NotificationService{
		config: cfg,
		admins: admins,
	}
}

// NotifyOrderPlaced sends the customer confirmation and, when an admin
// address is configured, the admin notice. Called after commit; errors are
// logged, never propagated back into the checkout path.
func (s *NotificationService) NotifyOrderPlaced(ctx context.Context, order *models.Order) {
	if err := s.sendOrderConfirmation(order); err != nil {
		logrus.WithError(err).WithField("order_number", order.OrderNumber).
			Error("Failed to send order confirmation")
	}

	adminEmail := s.admins.AdminEmail(ctx)
	if adminEmail == "" {
		logrus.WithField("order_number", order.OrderNumber).
			Info("No admin email configured, skipping admin notification")
		return
	}

	if err := s.sendAdminNotification(adminEmail, order); err != nil {
		logrus.WithError(err).WithField("order_number", order.OrderNumber).
			Error("Failed to send admin notification")
	}
}

func (s *NotificationService) sendOrderConfirmation(order *models.Order) error {
	subject := fmt.Sprintf("Order Confirmation - %s", order.OrderNumber)

	body, err := renderTemplate(orderConfirmationTemplate, order)
	if err != nil {
		return fmt.Errorf("failed to render confirmation email: %w", err)
	}

	return s.sendEmail(order.Email, subject, body)
}

func (s *NotificationService) sendAdminNotification(adminEmail string, order *models.Order) error {
	subject := fmt.Sprintf("New Order: %s", order.OrderNumber)

	body, err := renderTemplate(adminNotificationTemplate, order)
	if err != nil {
		return fmt.Errorf("failed to render admin email: %w", err)
	}

	return s.sendEmail(adminEmail, subject, body)
}

func (s *NotificationService) sendEmail(to, subject, body string) error {
	if s.config.Email.SMTPHost == "" || s.config.Email.SMTPUsername == "" {
		// Stub mode: log instead of sending.
		logrus.WithFields(logrus.Fields{
			"to":      to,
			"subject": subject,
		}).Info("[EMAIL STUB] Would send email")
		return nil
	}

	auth := smtp.PlainAuth("", s.config.Email.SMTPUsername, s.config.Email.SMTPPassword, s.config.Email.SMTPHost)

	msg := []byte(fmt.Sprintf(
		"From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		s.config.Email.FromName, s.config.Email.FromEmail, to, subject, body))

	addr := fmt.Sprintf("%s:%s", s.config.Email.SMTPHost, s.config.Email.SMTPPort)
	if err := smtp.SendMail(addr, auth, s.config.Email.FromEmail, []string{to}, msg); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{"to": to, "subject": subject}).Info("Email sent")
	return nil
}

func renderTemplate(tmpl *template.Template, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var orderConfirmationTemplate = template.Must(template.New("order_confirmation").Parse(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
	<div style="background: #2c3e50; color: white; padding: 20px; text-align: center;">
		<h1 style="margin: 0;">&#9749; Let Me Mug You</h1>
	</div>
	<div style="padding: 30px;">
		<h2>Thank you for your order!</h2>
		<p>Hi {{.CustomerName}},</p>
		<p>We've received your order and will begin processing it shortly.</p>
		<div style="background: #f5f5f5; padding: 15px; border-radius: 8px; margin: 20px 0;">
			<strong>Order Number:</strong> {{.OrderNumber}}
		</div>
		<h3>Order Details</h3>
		<table style="width: 100%; border-collapse: collapse;">
			<thead>
				<tr style="background: #f5f5f5;">
					<th style="padding: 10px; text-align: left;">Item</th>
					<th style="padding: 10px; text-align: left;">Qty</th>
					<th style="padding: 10px; text-align: left;">Price</th>
				</tr>
			</thead>
			<tbody>
				{{range .Items}}
				<tr>
					<td style="padding: 10px; border-bottom: 1px solid #eee;">{{.ProductName}}</td>
					<td style="padding: 10px; border-bottom: 1px solid #eee;">{{.Quantity}}</td>
					<td style="padding: 10px; border-bottom: 1px solid #eee;">${{printf "%.2f" .LineTotal}}</td>
				</tr>
				{{end}}
			</tbody>
			<tfoot>
				<tr>
					<td colspan="2" style="padding: 10px; text-align: right;"><strong>Subtotal:</strong></td>
					<td style="padding: 10px;">${{printf "%.2f" .Subtotal}}</td>
				</tr>
				<tr>
					<td colspan="2" style="padding: 10px; text-align: right;"><strong>Tax:</strong></td>
					<td style="padding: 10px;">${{printf "%.2f" .Tax}}</td>
				</tr>
				<tr style="font-size: 1.2em;">
					<td colspan="2" style="padding: 10px; text-align: right;"><strong>Total:</strong></td>
					<td style="padding: 10px;"><strong>${{printf "%.2f" .Total}}</strong></td>
				</tr>
			</tfoot>
		</table>
		<h3>Shipping Address</h3>
		<p>
			{{.CustomerName}}<br>
			{{.AddressLine1}}<br>
			{{if .AddressLine2}}{{.AddressLine2}}<br>{{end}}
			{{.City}}, {{.State}} {{.ZipCode}}
		</p>
		<p style="margin-top: 30px;">If you have any questions, please reply to this email.</p>
		<p>Thank you for choosing Let Me Mug You!</p>
	</div>
</body>
</html>`))

var adminNotificationTemplate = template.Must(template.New("admin_notification").Parse(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif;">
	<h2>New Order Received</h2>
	<p><strong>Order Number:</strong> {{.OrderNumber}}</p>
	<p><strong>Customer:</strong> {{.CustomerName}} ({{.Email}})</p>
	<p><strong>Total:</strong> ${{printf "%.2f" .Total}}</p>
	<p><strong>Items:</strong> {{len .Items}}</p>
</body>
</html>`))
