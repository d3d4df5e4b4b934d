package config

import (
	"github.com/grovetools/deck/errors"
	"github.com/grovetools/deck/schema"
)

// validateSchema checks cfg against the embedded deck.yml schema. Each
// violation is attached as a detail keyed by its JSON pointer.
func validateSchema(cfg *Config) error {
	validator, err := schema.Default()
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to load configuration schema")
	}
	err = validator.Validate(cfg)
	if err == nil {
		return nil
	}
	wrapped := errors.Wrap(err, errors.ErrCodeConfigInvalid, "schema validation failed")
	if violations, ok := err.(schema.Violations); ok {
		for _, v := range violations {
			wrapped = wrapped.WithDetail(v.Path, v.Message)
		}
	}
	return wrapped
}
