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

type PostValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewPostValidator(log *logger.Logger) *PostValidator {
	v := validator.New()

	if err := v.RegisterValidation("slug", validateSlug); err != nil {
		log.Fatal("Failed to register 'slug' validator",
			"error", err,
		)
	}

	log.Info("Blog validator initialized successfully")

	return &PostValidator{
		validate: v,
		logger:   log,
	}
}

// validateSlug accepts lowercase alphanumerics separated by single hyphens.
func validateSlug(fl validator.FieldLevel) bool {
	slug := fl.Field().String()
	if slug == "" || len(slug) > 100 {
		return false
	}
	if strings.HasPrefix(slug, "-") || strings.HasSuffix(slug, "-") || strings.Contains(slug, "--") {
		return false
	}
	for _, r := range slug {
		if !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '-') {
			return false
		}
	}
	return true
}

func (v *PostValidator) Validate(post *model.BlogPost) error {
	if err := v.check(post); err != nil {
		return err
	}
	if err := v.validate.Var(post.Slug, "slug"); err != nil {
		return ValidationErrors{{Field: "Slug", Message: "Title must contain at least one letter or digit"}}
	}
	return nil
}

func (v *PostValidator) ValidateUpdate(update *model.BlogPostUpdate) error {
	return v.check(update)
}

func (v *PostValidator) check(s any) error {
	if err := v.validate.Struct(s); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func (v *PostValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
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
		case "uri":
			message = fmt.Sprintf("%s must be a valid URL or upload path", err.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
