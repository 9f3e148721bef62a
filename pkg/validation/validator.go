package validation

import (
	"encoding/json"
	"errors"
	"reflect"
	"sort"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Init configures the validator behind Gin's binding: JSON field names in
// errors plus the board's enum aliases.
func Init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		Register(v)
	}
}

// Register applies the tag name func and aliases to v.
func Register(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterAlias("pwd", "min=6")
	v.RegisterAlias("suggestion_status", "oneof=suggestion planned in-progress live")
	v.RegisterAlias("suggestion_category", "oneof=feature ui ux enhancement bug")
	v.RegisterAlias("role", "oneof=user admin")
}

// ToDetails converts binding errors into a map[field]message for the error envelope.
func ToDetails(err error) map[string]string {
	if err == nil {
		return nil
	}

	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	if errors.As(err, &se) || errors.As(err, &ute) {
		return map[string]string{"payload": "invalid json"}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			out[fe.Field()] = formatFieldError(fe)
		}
		return out
	}

	return map[string]string{"payload": "invalid payload"}
}

// Message flattens details into a single sentence for the msg field.
func Message(details map[string]string) string {
	if len(details) == 0 {
		return "Invalid request"
	}
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+" "+details[k])
	}
	return strings.Join(parts, ", ")
}

func formatFieldError(fe validator.FieldError) string {
	param := fe.Param()
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min":
		if isString(fe.Kind()) {
			return "must be at least " + param + " characters"
		}
		return "must be at least " + param
	case "max":
		if isString(fe.Kind()) {
			return "must be at most " + param + " characters"
		}
		return "must be at most " + param
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(param), ", ")
	case "pwd":
		return "must be at least 6 characters"
	case "suggestion_status":
		return "must be one of: suggestion, planned, in-progress, live"
	case "suggestion_category":
		return "must be one of: feature, ui, ux, enhancement, bug"
	case "role":
		return "must be one of: user, admin"
	case "url":
		return "must be a valid URL"
	case "alphanum":
		return "must contain only letters and numbers"
	default:
		return "is invalid"
	}
}

func isString(k reflect.Kind) bool {
	return k == reflect.String
}
