package shop

import (
	"encoding/json"
	"fmt"

	aperrors "techstore/errors"
)

// validationError renders storefront validation failures as
// {"errors": {field: [messages]}} with a 422.
type validationError struct {
	Errors aperrors.Errors `json:"errors"`
}

func (e validationError) Error() error {
	return nil
}

func (e validationError) Body() string {
	errorsJSON, err := json.MarshalIndent(e, "", "    ")
	if err != nil {
		return fmt.Sprintf("%s", e.Errors)
	}
	return string(errorsJSON)
}

func (e validationError) String() string {
	return e.Body()
}

func (e validationError) Code() int {
	return 422
}

// paymentRequiredError reports a declined charge. The order the checkout
// created is left pending and its code is included so the client can retry.
type paymentRequiredError struct {
	OrderCode string          `json:"order_code"`
	Errors    aperrors.Errors `json:"errors"`
}

func (e paymentRequiredError) Error() error {
	return nil
}

func (e paymentRequiredError) Body() string {
	errorsJSON, err := json.MarshalIndent(e, "", "    ")
	if err != nil {
		return fmt.Sprintf("%s", e.Errors)
	}
	return string(errorsJSON)
}

func (e paymentRequiredError) String() string {
	return e.Body()
}

func (e paymentRequiredError) Code() int {
	return 402
}
