package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// flagNames maps struct namespaces to the flag users know them by.
var flagNames = map[string]string{
	"Configuration.Server.HTTPPort":            "http-port",
	"Configuration.Server.ServerMode":          "server mode",
	"Configuration.Store.Path":                 "store-path",
	"Configuration.Translator.Flavor":          "flavor",
	"Configuration.Translator.ParameterPrefix": "parameter-prefix",
	"Configuration.Translator.ResultLimit":     "result-limit",
	"Configuration.Translator.Workers":         "workers",
	"Configuration.LogLevel":                   "log-level",
	"Configuration.LogFormat":                  "log-format",
}

// Validate checks the tag constraints and the rules spanning several fields.
func Validate(c *Configuration) error {
	if err := validate.Struct(c); err != nil {
		var fieldErrors validator.ValidationErrors
		if !errors.As(err, &fieldErrors) {
			return err
		}

		messages := make([]string, 0, len(fieldErrors))
		for _, fe := range fieldErrors {
			name, ok := flagNames[fe.Namespace()]
			if !ok {
				name = fe.Field()
			}
			messages = append(messages, fmt.Sprintf("invalid %s: %v", name, fe.Value()))
		}
		return errors.New(strings.Join(messages, "; "))
	}

	if c.Auth.Enabled && c.Auth.SecretFile == "" {
		return errors.New("authentication-secret-file must be set when authentication is enabled")
	}

	return nil
}
