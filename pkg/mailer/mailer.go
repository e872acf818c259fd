package mailer

import (
	"github.com/pkg/errors"
	"gopkg.in/gomail.v2"
)

type Config struct {
	Host     string `yaml:"host" envconfig:"SMTP_HOST" default:"smtp.gmail.com"`
	Port     int    `yaml:"port" envconfig:"SMTP_PORT" default:"587"`
	Username string `yaml:"username" envconfig:"SMTP_USERNAME"`
	Password string `yaml:"password" envconfig:"SMTP_PASSWORD"`
	From     string `yaml:"from" envconfig:"SMTP_FROM"`
}

// Mailer delivers notifications over SMTP.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

func New(cfg Config) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

// Send blocks until the message is accepted by the SMTP server. An error
// means the message was not handed off; callers may retry safely.
func (m *Mailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return errors.Wrap(err, "smtp send")
	}
	return nil
}
