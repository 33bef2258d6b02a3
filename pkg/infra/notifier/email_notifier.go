package notifier

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/NeuralTrust/BotTracker/pkg/domain/alert"
	"github.com/sirupsen/logrus"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func (c SMTPConfig) configured() bool {
	return c.Host != "" && c.From != ""
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type emailNotifier struct {
	logger *logrus.Logger
	cfg    SMTPConfig
	send   sendFunc
}

// NewEmailNotifier sends through the configured relay. Without a relay the
// notification is only logged.
func NewEmailNotifier(logger *logrus.Logger, cfg SMTPConfig) Notifier {
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	return &emailNotifier{logger: logger, cfg: cfg, send: smtp.SendMail}
}

func (e *emailNotifier) Notify(ctx context.Context, n alert.Notification) error {
	if !e.cfg.configured() {
		e.logger.WithFields(logrus.Fields{
			"rule_id": n.RuleID,
			"to":      n.Destination,
		}).Warn("smtp relay not configured, email alert logged only: " + summary(n))
		return nil
	}
	if strings.ContainsAny(n.Destination, "\r\n") {
		return fmt.Errorf("invalid email destination")
	}

	msg := e.message(n)
	addr := net.JoinHostPort(e.cfg.Host, strconv.Itoa(e.cfg.Port))
	var auth smtp.Auth
	if e.cfg.Username != "" {
		auth = smtp.PlainAuth("", e.cfg.Username, e.cfg.Password, e.cfg.Host)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- e.send(addr, auth, e.cfg.From, []string{n.Destination}, msg)
	}()
	select {
	case <-ctx.Done():
		return fmt.Errorf("email delivery aborted: %w", ctx.Err())
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("email delivery failed: %w", err)
		}
		return nil
	}
}

func (e *emailNotifier) message(n alert.Notification) []byte {
	var b strings.Builder
	b.WriteString("From: " + e.cfg.From + "\r\n")
	b.WriteString("To: " + n.Destination + "\r\n")
	b.WriteString("Subject: AI bot traffic alert\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	b.WriteString(summary(n) + "\r\n")
	b.WriteString("Domain: " + n.DomainID.String() + "\r\n")
	b.WriteString("Triggered at: " + n.TriggeredAt.UTC().Format("2006-01-02 15:04:05 MST") + "\r\n")
	return []byte(b.String())
}
