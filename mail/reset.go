package mail

import (
	"techstore/config"
	"techstore/model"
	apsql "techstore/sql"
)

const resetTemplate = `{{define "body"}}
  Click on the below link to reset your password:<br/>
  <a href="{{.BaseURL}}/account/reset?token={{.Token}}">reset password</a>
  <p>The link stops working after two hours.</p>
{{end}}
`

func SendResetEmail(_smtp config.SMTP, customer *model.Customer, tx *apsql.Tx, async bool) error {
	token, err := model.AddCustomerResetToken(tx, customer.Email)
	if err != nil {
		return err
	}

	context := NewEmailTemplate(_smtp, customer.Email, customer.Name)
	context.Subject = "TechStore Password Reset"
	context.Token = token
	err = Send(resetTemplate, context, _smtp, async)
	if err != nil {
		return err
	}

	return nil
}
