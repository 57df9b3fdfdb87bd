package smtp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/smtp"
	"strings"

	"techstore/logreport"
)

type Mailer interface {
	Send(to, cc, bcc []string, body, subject string, html bool) error
	ConnectionString() string
}

type Spec struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	Sender   string `json:"sender"`
	Auth     smtp.Auth
}

// NewSpec returns a Spec with authentication set up, or an error if the
// spec is unusable.
func NewSpec(host string, port int, user, password, sender string) (*Spec, error) {
	if user == "" {
		return nil, errors.New("user is required")
	}
	if password == "" {
		return nil, errors.New("password is required")
	}
	spec := &Spec{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		Sender:   sender,
	}
	spec.CreateAuth()
	return spec, nil
}

func (s *Spec) CreateAuth() {
	auth := smtp.PlainAuth(
		"",
		s.User,
		s.Password,
		s.Host,
	)

	s.Auth = auth
}

func (s *Spec) Send(to, cc, bcc []string, body, subject string, html bool) error {
	allRecipients := append(append(to, bcc...), cc...)
	err := smtp.SendMail(
		fmt.Sprintf("%v:%v", s.Host, s.Port),
		s.Auth,
		s.Sender,
		allRecipients,
		[]byte(s.createBody(to, cc, body, subject, html)),
	)

	if err != nil {
		logreport.Printf("\nerror sending email using %v:%v : %v", s.Host, s.Port, err)
	}

	return err
}

func (s *Spec) createBody(addresses, cc []string, body, subject string, html bool) string {
	b := fmt.Sprintf("From: %s\r\n", s.Sender)
	b += fmt.Sprintf("To: %s\r\n", strings.Join(addresses[:], ","))
	if len(cc) > 0 {
		b += fmt.Sprintf("Cc: %s\r\n", strings.Join(cc[:], ","))
	}
	if html {
		b += "MIME-Version: 1.0\r\n"
		b += "Content-type: text/html\r\n"
	}
	b += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	b += fmt.Sprintf("%s\r\n", body)
	return b
}

func (s *Spec) ConnectionString() string {
	spec, err := json.Marshal(s)

	if err != nil {
		logreport.Fatal(err)
	}

	return string(spec)
}
