package validator

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fullmoon/pkg/logger"
	"fullmoon/pkg/model"

	"github.com/go-playground/validator/v10"
)

const ClockLayout = "15:04"

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type FacilityValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewFacilityValidator(log *logger.Logger) *FacilityValidator {
	v := validator.New()

	if err := v.RegisterValidation("clock", validateClock); err != nil {
		log.Fatal("Failed to register 'clock' validator",
			"error", err,
		)
	}

	log.Info("Facility validator initialized successfully")

	return &FacilityValidator{
		validate: v,
		logger:   log,
	}
}

// validateClock accepts a 24-hour "HH:MM" time of day.
func validateClock(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if len(s) != len(ClockLayout) {
		return false
	}
	_, err := time.Parse(ClockLayout, s)
	return err == nil
}

func (v *FacilityValidator) Validate(facility *model.Facility) error {
	return v.check(facility)
}

func (v *FacilityValidator) ValidateUpdate(update *model.FacilityUpdate) error {
	return v.check(update)
}

func (v *FacilityValidator) ValidateBooking(booking *model.FacilityBooking) error {
	return v.check(booking)
}

func (v *FacilityValidator) check(s any) error {
	if err := v.validate.Struct(s); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func (v *FacilityValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), strings.ReplaceAll(err.Param(), " ", ", "))
		case "uri":
			message = fmt.Sprintf("%s must be a valid URL or upload path", err.Field())
		case "clock":
			message = fmt.Sprintf("%s must be a time in HH:MM format", err.Field())
		case "e164":
			message = fmt.Sprintf("%s must be a valid international phone number", err.Field())
		case "email":
			message = fmt.Sprintf("%s must be a valid email address", err.Field())
		case "mongodb":
			message = fmt.Sprintf("%s must be a valid MongoDB ObjectID", err.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
