package mail

import (
	"techstore/config"
	"techstore/model"
)

const orderConfirmationTemplate = `{{define "body"}}
	<p>Hi {{if .Name}}{{.Name}}{{else}}there{{end}},</p>
	<p>We received your order <b>{{.Order.Code}}</b>. Here is what you asked for:</p>
	<table cellpadding="4">
	  {{range .Lines}}
	  <tr><td>{{.Name}}</td><td>x {{.Quantity}}</td><td align="right">{{.Price}}</td></tr>
	  {{end}}
	  <tr><td colspan="2"><b>Total</b></td><td align="right"><b>{{.Total}}</b></td></tr>
	</table>
	<p>
	  Shipping to: {{.Order.Address}}, {{.Order.City}} {{.Order.PostalCode}},
	  {{.Order.Country}}.
	</p>
	<p>- The {{.StoreName}} Team</p>
{{end}}
`

func SendOrderConfirmationEmail(_smtp config.SMTP, order *model.Order, async bool) error {
	context := NewEmailTemplate(_smtp, order.Email, order.Name)
	context.Subject = "Your TechStore order " + order.Code
	context.Order = order
	context.Lines, context.Total = orderLines(order)
	err := Send(orderConfirmationTemplate, context, _smtp, async)
	if err != nil {
		return err
	}

	return nil
}
