package shop

import (
	"database/sql"
	"errors"
	"net/http"

	"techstore/config"
	aperrors "techstore/errors"
	aphttp "techstore/http"
	"techstore/logreport"
	"techstore/mail"
	"techstore/model"
	apsql "techstore/sql"
)

func (s *Server) registerHandler(w http.ResponseWriter, r *http.Request) aphttp.Error {
	wrapped := struct {
		Customer *model.Customer `json:"customer"`
	}{}
	if httpErr := deserialize(&wrapped, r); httpErr != nil {
		return httpErr
	}
	if wrapped.Customer == nil {
		return aphttp.NewError(errors.New("Could not deserialize customer from JSON."),
			http.StatusBadRequest)
	}
	customer := wrapped.Customer

	validationErrors := customer.Validate(true)
	if !validationErrors.Empty() {
		return validationError{validationErrors}
	}

	var insertErr error
	err := s.db.DoInTransaction(func(tx *apsql.Tx) error {
		insertErr = customer.Insert(tx)
		return insertErr
	})
	if err != nil {
		if insertErr != nil {
			validationErrors = customer.ValidateFromDatabaseError(insertErr)
			if !validationErrors.Empty() {
				return validationError{validationErrors}
			}
		}
		logreport.Printf("%s Error inserting customer: %v\n%v", config.Shop, err, r)
		return aphttp.DefaultServerError()
	}

	if s.conf.SMTP.Configured() {
		if err := mail.SendWelcomeEmail(s.conf.SMTP, customer, true); err != nil {
			logreport.Printf("%s Error sending welcome email: %v", config.Shop, err)
		}
	}

	session := s.session(r)
	session.Values[customerIDKey] = customer.ID
	session.Save(r, w)

	w.WriteHeader(http.StatusCreated)
	wrappedOut := struct {
		Customer *model.Customer `json:"customer"`
	}{customer}
	return serialize(wrappedOut, w)
}

func (s *Server) loginHandler(w http.ResponseWriter, r *http.Request) aphttp.Error {
	var credentials struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if httpErr := deserialize(&credentials, r); httpErr != nil {
		return httpErr
	}

	customer, err := model.FindCustomerByEmail(s.db, credentials.Email)
	if err != nil {
		return aphttp.NewError(errors.New("No customer with that email."), 400)
	}
	if !customer.ValidPassword(credentials.Password) {
		return aphttp.NewError(errors.New("Invalid password."), 400)
	}

	session := s.session(r)
	session.Values[customerIDKey] = customer.ID
	session.Save(r, w)

	wrapped := struct {
		Customer *model.Customer `json:"customer"`
	}{customer}
	return serialize(wrapped, w)
}

func (s *Server) logoutHandler(w http.ResponseWriter, r *http.Request) aphttp.Error {
	session := s.session(r)
	delete(session.Values, customerIDKey)
	session.Save(r, w)

	w.WriteHeader(http.StatusOK)
	return nil
}

// requestResetHandler kicks off a password reset. It answers 200 whether
// or not the email belongs to a customer, so accounts can't be enumerated.
func (s *Server) requestResetHandler(w http.ResponseWriter, r *http.Request) aphttp.Error {
	var request struct {
		Email string `json:"email"`
	}
	if httpErr := deserialize(&request, r); httpErr != nil {
		return httpErr
	}

	if !s.conf.SMTP.Configured() && !s.devMode {
		return aphttp.NewError(errors.New("Mail is not configured."),
			http.StatusServiceUnavailable)
	}

	customer, err := model.FindCustomerByEmail(s.db, request.Email)
	if err == sql.ErrNoRows {
		w.WriteHeader(http.StatusOK)
		return nil
	} else if err != nil {
		logreport.Printf("%s Error finding customer: %v\n%v", config.Shop, err, r)
		return s.httpError(err)
	}

	err = s.db.DoInTransaction(func(tx *apsql.Tx) error {
		if s.conf.SMTP.Configured() {
			return mail.SendResetEmail(s.conf.SMTP, customer, tx, true)
		}
		// Dev fallback; the token lands in the log instead of an inbox.
		token, err := model.AddCustomerResetToken(tx, customer.Email)
		if err == nil {
			logreport.Printf("%s Password reset token for %s: %s",
				config.Shop, customer.Email, token)
		}
		return err
	})
	if err != nil {
		logreport.Printf("%s Error creating reset token: %v\n%v", config.Shop, err, r)
		return aphttp.DefaultServerError()
	}

	w.WriteHeader(http.StatusOK)
	return nil
}

func (s *Server) resetPasswordHandler(w http.ResponseWriter, r *http.Request) aphttp.Error {
	var request struct {
		Token                string `json:"token"`
		Password             string `json:"password"`
		PasswordConfirmation string `json:"password_confirmation"`
	}
	if httpErr := deserialize(&request, r); httpErr != nil {
		return httpErr
	}

	customer, err := model.FindCustomerByResetToken(s.db, request.Token)
	if err == sql.ErrNoRows {
		errs := make(aperrors.Errors)
		errs.Add("token", "is invalid or expired")
		return validationError{errs}
	} else if err != nil {
		logreport.Printf("%s Error finding customer: %v\n%v", config.Shop, err, r)
		return s.httpError(err)
	}

	customer.NewPassword = request.Password
	customer.NewPasswordConfirmation = request.PasswordConfirmation
	validationErrors := customer.Validate(false)
	if !validationErrors.Empty() {
		return validationError{validationErrors}
	}

	err = s.db.DoInTransaction(func(tx *apsql.Tx) error {
		return customer.ResetPassword(tx, request.Password)
	})
	if err != nil {
		logreport.Printf("%s Error resetting password: %v\n%v", config.Shop, err, r)
		return aphttp.DefaultServerError()
	}

	w.WriteHeader(http.StatusOK)
	return nil
}
