package mail

import (
	"techstore/config"
	"techstore/model"
)

const paymentFailureTemplate = `{{define "body"}}
	<p>Hi {{if .Name}}{{.Name}}{{else}}there{{end}},</p>
	<p>
	  We could not collect payment for order <b>{{.Order.Code}}</b>.
	  Nothing has shipped and nothing was charged.
	</p>
	<p>
	  You can try again with a different card at
	  <a href="{{.BaseURL}}/checkout">{{.BaseURL}}/checkout</a>.
	</p>
	<p>- The {{.StoreName}} Team</p>
{{end}}
`

func SendPaymentFailedEmail(_smtp config.SMTP, order *model.Order, async bool) error {
	context := NewEmailTemplate(_smtp, order.Email, order.Name)
	context.Subject = "TechStore Payment Failed"
	context.Order = order
	err := Send(paymentFailureTemplate, context, _smtp, async)
	if err != nil {
		return err
	}

	return nil
}
