package validator

import (
	"errors"
	"fmt"
	"strings"

	"fullmoon/pkg/logger"
	"fullmoon/pkg/model"

	"github.com/go-playground/validator/v10"
)

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

type RoomValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewRoomValidator(log *logger.Logger) *RoomValidator {
	v := validator.New()

	if err := v.RegisterValidation("room_type", validateRoomType); err != nil {
		log.Fatal("Failed to register 'room_type' validator",
			"error", err,
		)
	}

	log.Info("Room validator initialized successfully")

	return &RoomValidator{
		validate: v,
		logger:   log,
	}
}

func validateRoomType(fl validator.FieldLevel) bool {
	t, ok := fl.Field().Interface().(model.RoomType)
	if !ok {
		return false
	}
	return t.Valid()
}

func (v *RoomValidator) Validate(room *model.Room) error {
	return v.check(room)
}

func (v *RoomValidator) ValidateUpdate(update *model.RoomUpdate) error {
	return v.check(update)
}

func (v *RoomValidator) check(s any) error {
	if err := v.validate.Struct(s); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func (v *RoomValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
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
		case "gt":
			message = fmt.Sprintf("%s must be greater than %s", err.Field(), err.Param())
		case "uri":
			message = fmt.Sprintf("%s must be a valid URL or upload path", err.Field())
		case "mongodb":
			message = fmt.Sprintf("%s must be a valid MongoDB ObjectID", err.Field())
		case "room_type":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), roomTypeList())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}

func roomTypeList() string {
	types := model.RoomTypes()
	names := make([]string, 0, len(types))
	for _, t := range types {
		names = append(names, string(t))
	}
	return strings.Join(names, ", ")
}
