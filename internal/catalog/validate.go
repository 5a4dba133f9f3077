package catalog

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the fields the cart relies on. Items coming from the store are
// validated again before they enter a cart, since rows can be edited by hand.
func (i Item) Validate() error {
	if err := validate.Struct(i); err != nil {
		return fmt.Errorf("invalid catalog item %q: %w", i.ID, err)
	}
	return nil
}
