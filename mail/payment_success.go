package mail

import (
	"techstore/config"
	"techstore/model"
)

const paymentSuccessTemplate = `{{define "body"}}
	<p>Hi {{if .Name}}{{.Name}}{{else}}there{{end}},</p>
	<p>
	  Payment of <b>{{.Total}}</b> for order <b>{{.Order.Code}}</b> went
	  through. We are getting it ready to ship.
	</p>
	<p>- The {{.StoreName}} Team</p>
{{end}}
`

func SendPaymentSucceededEmail(_smtp config.SMTP, order *model.Order, async bool) error {
	context := NewEmailTemplate(_smtp, order.Email, order.Name)
	context.Subject = "TechStore Payment Successful"
	context.Order = order
	context.Lines, context.Total = orderLines(order)
	err := Send(paymentSuccessTemplate, context, _smtp, async)
	if err != nil {
		return err
	}

	return nil
}
