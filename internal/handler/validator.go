package handler

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Identity documents are alphanumeric, 5 to 20 characters.
var documentoPattern = regexp.MustCompile(`^[0-9A-Za-z-]{5,20}$`)

// RegisterValidators installs the custom binding rules on gin's
// validator engine. Call once at startup before serving requests.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}

	return v.RegisterValidation("documento", func(fl validator.FieldLevel) bool {
		return documentoPattern.MatchString(fl.Field().String())
	})
}
