package mail

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"techstore/config"
	"techstore/logreport"
	"techstore/model"
	"techstore/smtp"
)

const mailTemplate = `<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Strict//EN" "http://www.w3.org/TR/xhtml1/DTD/xhtml1-strict.dtd">
<html xmlns="http://www.w3.org/1999/xhtml">
 <head>
  <meta http-equiv="Content-Type" content="text/html; charset=utf-8"/>
	<meta name="viewport" content="width=device-width, initial-scale=1.0"/>
	<title>{{.Subject}}</title>
	<style type="text/css">
	 body{width:100% !important; -webkit-text-size-adjust:100%; -ms-text-size-adjust:100%; margin:0; padding:0;}
	</style>
 </head>
 <body>{{template "body" .}}</body>
</html>
`

// OrderLine is a pre-formatted order row for mail bodies.
type OrderLine struct {
	Name     string
	Quantity int64
	Price    string
}

type EmailTemplate struct {
	From      string
	To        string
	Subject   string
	StoreName string
	BaseURL   string
	Name      string
	Token     string
	Order     *model.Order
	Lines     []OrderLine
	Total     string
}

// NewEmailTemplate fills in the fields every mail shares.
func NewEmailTemplate(_smtp config.SMTP, to, name string) EmailTemplate {
	return EmailTemplate{
		From:      _smtp.Sender,
		To:        to,
		Name:      name,
		StoreName: "TechStore",
		BaseURL: fmt.Sprintf("%s://%s:%d",
			_smtp.EmailScheme, _smtp.EmailHost, _smtp.EmailPort),
	}
}

var pool = smtp.NewSmtpPool()

// render wraps the body template in the shared HTML shell.
func render(bodyTemplate string, context EmailTemplate) (string, error) {
	t := template.New("template")
	t, err := t.Parse(mailTemplate)
	if err != nil {
		return "", err
	}
	t, err = t.Parse(bodyTemplate)
	if err != nil {
		return "", err
	}
	var body bytes.Buffer
	err = t.Execute(&body, context)
	if err != nil {
		return "", err
	}
	return body.String(), nil
}

// Send renders the body template inside the shared HTML shell and hands the
// result to the mailer pool. With async set, delivery happens in the
// background and failures only get logged.
func Send(bodyTemplate string, context EmailTemplate, _smtp config.SMTP, async bool) error {
	body, err := render(bodyTemplate, context)
	if err != nil {
		return err
	}

	spec := &smtp.Spec{
		Host:     _smtp.Server,
		Port:     int(_smtp.Port),
		User:     _smtp.User,
		Password: _smtp.Password,
		Sender:   _smtp.Sender,
	}
	// Dev relays commonly run without authentication.
	if _smtp.User != "" {
		spec.CreateAuth()
	}
	mailer, err := pool.Connection(spec)
	if err != nil {
		return err
	}

	if async {
		go func() {
			if err := mailer.Send([]string{context.To}, nil, nil,
				body, context.Subject, true); err != nil {
				logreport.Printf("%s Error sending %q mail to %s: %v",
					config.System, context.Subject, context.To, err)
			}
		}()
		return nil
	}
	return mailer.Send([]string{context.To}, nil, nil,
		body, context.Subject, true)
}

// formatAmount renders cents for mail bodies, e.g. $799.00.
func formatAmount(cents int64, currency string) string {
	amount := fmt.Sprintf("%d.%02d", cents/100, cents%100)
	if currency == "" || currency == "usd" {
		return "$" + amount
	}
	return fmt.Sprintf("%s %s", amount, strings.ToUpper(currency))
}

// orderLines pre-formats an order's items and total for templates.
func orderLines(order *model.Order) ([]OrderLine, string) {
	lines := make([]OrderLine, 0, len(order.Items))
	for _, item := range order.Items {
		lines = append(lines, OrderLine{
			Name:     item.ProductName,
			Quantity: item.Quantity,
			Price:    formatAmount(item.UnitPriceCents*item.Quantity, order.Currency),
		})
	}
	return lines, formatAmount(order.TotalCents, order.Currency)
}
