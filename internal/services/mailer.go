package services

import (
	"errors"
	"fmt"

	gomail "gopkg.in/gomail.v2"
)

// ErrMailNotConfigured is returned when sender credentials are unset or still
// placeholders. Delivery is refused without attempting a network call.
var ErrMailNotConfigured = errors.New("email credentials not configured")

const mailSubject = "BMI Prescription Report - Your Assessment"

const mailBodyTemplate = `Dear %s,

Please find attached your BMI Prescription Report containing your complete health assessment.

Report includes:
- Patient details and measurements
- BMI value and health category
- Clinical recommendations
- Assessment charges and payment terms

This report has been generated based on your health measurements. We recommend reviewing it and consulting with a healthcare professional if you have any concerns.

Best regards,
LifeTrack Health Hub
BMI Health Tracker
`

// Mailer delivers generated documents over SMTP. Sends are synchronous with
// no retry; a failure is reported to the caller exactly once.
type Mailer struct {
	host     string
	port     int
	email    string
	password string
}

func NewMailer(host string, port int, email, password string) *Mailer {
	return &Mailer{host: host, port: port, email: email, password: password}
}

// Configured reports whether real credentials are present.
func (m *Mailer) Configured() bool {
	if m.email == "" || m.password == "" {
		return false
	}
	return m.email != "your_email@gmail.com" && m.password != "your_app_password"
}

// SendReport emails the document at pdfPath to the recipient as an
// attachment with the fixed subject and body template.
func (m *Mailer) SendReport(recipientEmail, recipientName, pdfPath string) error {
	if !m.Configured() {
		return ErrMailNotConfigured
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.email)
	msg.SetHeader("To", recipientEmail)
	msg.SetHeader("Subject", mailSubject)
	msg.SetBody("text/plain", fmt.Sprintf(mailBodyTemplate, recipientName))
	msg.Attach(pdfPath)

	dialer := gomail.NewDialer(m.host, m.port, m.email, m.password)
	dialer.SSL = m.port == 465

	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}
