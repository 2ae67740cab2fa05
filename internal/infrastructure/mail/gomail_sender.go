package mail

import (
	"fmt"

	"github.com/kazuo-app/kazuo-back/internal/notification"
	"github.com/kazuo-app/kazuo-back/pkg/config"
	gomail "gopkg.in/gomail.v2"
)

var _ notification.Mailer = (*Sender)(nil)

// Sender entrega correos vía SMTP usando gomail.
type Sender struct {
	dialer *gomail.Dialer
	from   string
}

// NewSender construye el sender con la configuración SMTP.
func NewSender(cfg config.SMTPConfig) *Sender {
	return &Sender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
	}
}

// Send envía un correo HTML. Abre y cierra la conexión SMTP por mensaje.
func (s *Sender) Send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)
	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("enviar correo a %s: %w", to, err)
	}
	return nil
}
