package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// SMTPMailer sends like notifications to room owners. All sends are best
// effort; callers decide whether a failure matters.
type SMTPMailer struct {
	host     string
	port     int
	from     string
	password string
}

func NewSMTPMailer(host string, port int, from, password string) *SMTPMailer {
	return &SMTPMailer{host: host, port: port, from: from, password: password}
}

func (m *SMTPMailer) NotifyRoomLiked(ownerEmail, roomTitle, likerEmail string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", ownerEmail)
	msg.SetHeader("Subject", "Your room got a new like")
	msg.SetBody("text/plain", fmt.Sprintf("%s liked your room '%s'.", likerEmail, roomTitle))

	d := gomail.NewDialer(m.host, m.port, m.from, m.password)
	return d.DialAndSend(msg)
}
