package services

import (
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"

	"go.uber.org/zap"
)

// EmailConfig holds SMTP configuration.
type EmailConfig struct {
	SMTPServer  string
	SMTPPort    string
	SenderEmail string
	SenderPass  string
	SenderName  string
	Timeout     time.Duration
}

// EmailService sends transactional mail over SMTP.
type EmailService struct {
	cfg    EmailConfig
	logger *zap.Logger
}

func NewEmailService(cfg EmailConfig, logger *zap.Logger) *EmailService {
	return &EmailService{cfg: cfg, logger: logger}
}

// SendOrderReceipt mails a payment receipt to the customer. Callers
// treat failure as best-effort and only log it.
func (s *EmailService) SendOrderReceipt(to, orderID string, amount float64) error {
	if s.cfg.SenderEmail == "" || s.cfg.SenderPass == "" {
		return fmt.Errorf("SMTP configuration is missing")
	}

	subject := "Your TshirtShop order receipt"
	body := buildReceiptHTML(orderID, amount)
	from := fmt.Sprintf("%s <%s>", s.cfg.SenderName, s.cfg.SenderEmail)

	headers := map[string]string{
		"From":         from,
		"To":           to,
		"Subject":      subject,
		"MIME-Version": "1.0",
		"Content-Type": "text/html; charset=UTF-8",
	}
	var msg strings.Builder
	for key, value := range headers {
		fmt.Fprintf(&msg, "%s: %s\r\n", key, value)
	}
	msg.WriteString("\r\n" + body)

	if err := s.send(to, []byte(msg.String())); err != nil {
		s.logger.Warn("failed to send receipt email", zap.String("to", to), zap.Error(err))
		return err
	}
	return nil
}

// send delivers the message with an explicit dial timeout; smtp.SendMail
// offers none.
func (s *EmailService) send(to string, msg []byte) error {
	addr := s.cfg.SMTPServer + ":" + s.cfg.SMTPPort

	conn, err := net.DialTimeout("tcp", addr, s.cfg.Timeout)
	if err != nil {
		return fmt.Errorf("dialing smtp server: %w", err)
	}

	client, err := smtp.NewClient(conn, s.cfg.SMTPServer)
	if err != nil {
		conn.Close()
		return err
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: s.cfg.SMTPServer}); err != nil {
			return err
		}
	}
	if ok, _ := client.Extension("AUTH"); ok {
		auth := smtp.PlainAuth("", s.cfg.SenderEmail, s.cfg.SenderPass, s.cfg.SMTPServer)
		if err := client.Auth(auth); err != nil {
			return err
		}
	}

	if err := client.Mail(s.cfg.SenderEmail); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}

func buildReceiptHTML(orderID string, amount float64) string {
	return fmt.Sprintf(`<html>
<body style="font-family: Arial, sans-serif;">
  <h2>Thanks for your order!</h2>
  <p>We received your payment of <strong>$%.2f</strong> for order <strong>#%s</strong>.</p>
  <p>You will get another email once your order ships.</p>
  <p>— The TshirtShop Team</p>
</body>
</html>`, amount, orderID)
}
