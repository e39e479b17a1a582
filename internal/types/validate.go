package types

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Validate validates the resolved model. Factions live in an ordered map the
// validator cannot dive into, so each is validated on its own.
func (m *Module) Validate() error {
	validate := validator.New()
	if err := validate.Struct(m); err != nil {
		return err
	}
	for _, f := range m.Factions.Values() {
		if err := validate.Struct(f); err != nil {
			return fmt.Errorf("faction %s: %w", f.ID, err)
		}
	}
	return nil
}
