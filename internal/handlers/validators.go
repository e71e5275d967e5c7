package handlers

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var otpPattern = regexp.MustCompile(`^\d{6}$`)

// RegisterValidators installs the custom binding rules used by the request
// DTOs. Call once at startup, before routes are served.
func RegisterValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("otp", func(fl validator.FieldLevel) bool {
			return otpPattern.MatchString(fl.Field().String())
		})
	}
}
