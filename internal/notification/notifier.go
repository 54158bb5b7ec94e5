package notification

import (
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"github.com/frahmantamala/asset-lifecycle/internal"
	"github.com/frahmantamala/asset-lifecycle/internal/core/events"
)

// Mailer delivers return notices. The SMTP implementation is the only
// production one; tests swap in a recorder.
type Mailer interface {
	SendReturnNotice(event events.ReturnScheduled) error
}

// SMTPMailer sends plain-text return notices over SMTP. When disabled it
// logs the notice and reports success so offboarding never blocks on a
// mail server.
type SMTPMailer struct {
	config internal.NotificationConfig
	logger *slog.Logger

	// send is swappable for tests; defaults to smtp.SendMail.
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPMailer(config internal.NotificationConfig, logger *slog.Logger) *SMTPMailer {
	return &SMTPMailer{
		config: config,
		logger: logger,
		send:   smtp.SendMail,
	}
}

func (m *SMTPMailer) SendReturnNotice(event events.ReturnScheduled) error {
	if !m.config.Enabled {
		m.logger.Info("notifications disabled, logging return notice",
			"employee_id", event.EmployeeID,
			"employee_email", event.EmployeeEmail,
			"return_due_date", event.ReturnDueDate.Format("2006-01-02"),
			"asset_count", len(event.Assets))
		return nil
	}

	recipients := []string{event.EmployeeEmail}
	if event.ManagerEmail != "" {
		recipients = append(recipients, event.ManagerEmail)
	}

	msg := m.buildMessage(event, recipients)

	addr := fmt.Sprintf("%s:%d", m.config.SMTPHost, m.config.SMTPPort)
	var auth smtp.Auth
	if m.config.SMTPUser != "" {
		auth = smtp.PlainAuth("", m.config.SMTPUser, m.config.SMTPPassword, m.config.SMTPHost)
	}

	if err := m.send(addr, auth, m.config.FromEmail, recipients, msg); err != nil {
		m.logger.Error("failed to send return notice",
			"error", err,
			"employee_id", event.EmployeeID)
		return fmt.Errorf("failed to send return notice: %w", err)
	}

	m.logger.Info("return notice sent",
		"employee_id", event.EmployeeID,
		"recipients", len(recipients))
	return nil
}

func (m *SMTPMailer) buildMessage(event events.ReturnScheduled, recipients []string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", m.config.FromEmail)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(recipients, ", "))
	fmt.Fprintf(&b, "Subject: Asset return required by %s\r\n", event.ReturnDueDate.Format("2006-01-02"))
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "Hi %s,\r\n\r\n", event.EmployeeName)
	fmt.Fprintf(&b, "Following your resignation dated %s, please return the equipment below by %s:\r\n\r\n",
		event.ResignationDate.Format("2006-01-02"),
		event.ReturnDueDate.Format("2006-01-02"))

	for _, a := range event.Assets {
		fmt.Fprintf(&b, "  - %s %s %s (tag %s, condition %s)\r\n",
			a.DeviceType, a.Brand, a.Model, a.AssetTag, a.Condition)
	}

	b.WriteString("\r\nPlease hand everything to the IT service desk.\r\n")
	return []byte(b.String())
}
