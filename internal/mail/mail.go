package mail

import (
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"
)

type Sender interface {
	Send(to, subject, html string) error
}

// SmtpSender delivers mail through a plain SMTP relay.
type SmtpSender struct {
	name string
	from string
	addr string
	auth smtp.Auth
}

func NewSmtpSender(name, from, host, port, user, password string) *SmtpSender {
	return &SmtpSender{
		name: name,
		from: from,
		addr: host + ":" + port,
		auth: smtp.PlainAuth("", user, password, host),
	}
}

func (s *SmtpSender) Send(to, subject, html string) error {
	e := email.NewEmail()
	e.From = fmt.Sprintf("%s <%s>", s.name, s.from)
	e.To = []string{to}
	e.Subject = subject
	e.HTML = []byte(html)
	return e.Send(s.addr, s.auth)
}

// SendRecovery dispatches the password recovery link to the mailbox that
// requested it.
func SendRecovery(sender Sender, to, link string) error {
	return sender.Send(
		to,
		"Password Recovery 🔒",
		fmt.Sprintf(`<b>You have requested password recovery.</b> <a href=%s>Jump to recovery page!</a>`, link),
	)
}
