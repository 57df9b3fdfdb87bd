package mail

import (
	"techstore/config"
	"techstore/model"
)

const welcomeTemplate = `{{define "body"}}
	<p>Hi {{if .Name}}{{.Name}}{{else}}there{{end}},</p>
	<p>Thanks for creating your {{.StoreName}} account.</p>
	<p>
	  You can browse the catalog and check on your orders any time at
	  <a href="{{.BaseURL}}">{{.BaseURL}}</a>.
	</p>
	<p>- The {{.StoreName}} Team</p>
{{end}}
`

func SendWelcomeEmail(_smtp config.SMTP, customer *model.Customer, async bool) error {
	context := NewEmailTemplate(_smtp, customer.Email, customer.Name)
	context.Subject = "Welcome to TechStore!"
	err := Send(welcomeTemplate, context, _smtp, async)
	if err != nil {
		return err
	}

	return nil
}
