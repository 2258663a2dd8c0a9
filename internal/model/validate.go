package model

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Field messages for TweetRequest rule violations.
const (
	MsgAuthorTooLong  = "Author name cannot exceed 50 characters"
	MsgMessageTooLong = "Message cannot exceed 280 characters"
	MsgAuthorBlank    = "Author cannot be blank"
	MsgMessageBlank   = "Message cannot be blank"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared validator with the project's custom rules registered.
// "notblank" rejects strings that are empty after trimming whitespace.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
		validate = v
	})
	return validate
}

// Validate checks the request against its field rules.
func (r TweetRequest) Validate() error {
	return Validator().Struct(r)
}

// FieldErrors maps a Validate error to user-facing messages keyed by JSON
// field name. ok is false when err is not a validation failure.
func FieldErrors(err error) (fields map[string]string, ok bool) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, false
	}

	fields = make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fieldMessage(fe.Field(), fe.Tag())
	}
	return fields, true
}

func fieldMessage(field, tag string) string {
	switch field + "." + tag {
	case "author.max":
		return MsgAuthorTooLong
	case "message.max":
		return MsgMessageTooLong
	case "author.notblank":
		return MsgAuthorBlank
	case "message.notblank":
		return MsgMessageBlank
	}
	return field + " is invalid"
}
