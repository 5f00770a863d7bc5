package api

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"climaterisk.app/pkg/validation"
)

// RegisterValidators adds the custom binding tags to gin's validator
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	return v.RegisterValidation("monthday", validateMonthDay)
}

// validateMonthDay accepts an MM-DD calendar day, Feb 29 included
func validateMonthDay(fl validator.FieldLevel) bool {
	_, _, err := validation.ParseMonthDay(fl.Field().String())
	return err == nil
}

// bindingErrorMessage turns a binding failure into a client-facing message
func bindingErrorMessage(err error) string {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return "invalid request format"
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			messages = append(messages, field+" is required")
		case "monthday":
			messages = append(messages, field+" must be a calendar day in MM-DD format")
		case "latitude":
			messages = append(messages, field+" must be between -90 and 90")
		case "longitude":
			messages = append(messages, field+" must be between -180 and 180")
		case "max":
			messages = append(messages, fmt.Sprintf("%s must be at most %s characters", field, fe.Param()))
		default:
			messages = append(messages, fmt.Sprintf("%s failed %s validation", field, fe.Tag()))
		}
	}
	return "invalid request: " + strings.Join(messages, "; ")
}
