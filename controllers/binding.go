package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"sync"

	"tapr/pkg/resp"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// bcrypt ignores everything past this many bytes and x/crypto refuses it.
const maxPasswordBytes = 72

var setupValidator sync.Once

// useValidator makes validator report `staffId` instead of `StaffID` and
// registers the custom tags below.
func useValidator() {
	setupValidator.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("bcryptlen", func(fl validator.FieldLevel) bool {
			return len(fl.Field().String()) <= maxPasswordBytes
		})
		_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
			return isSlug(fl.Field().String())
		})
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
	})
}

// normalizer is implemented by requests that clean their input (trim
// names, emails) before validation sees it.
type normalizer interface {
	Normalize()
}

// bindJSON decodes the body into dst rejecting unknown fields, validates
// it, and writes the error response itself. It reports whether the
// handler should continue.
func bindJSON(c *gin.Context, dst any) bool {
	useValidator()

	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeDecodeError(c, err)
		return false
	}
	if dec.More() {
		resp.BadRequest(c, "Request body must contain a single JSON object")
		return false
	}
	if n, ok := dst.(normalizer); ok {
		n.Normalize()
	}

	if err := binding.Validator.ValidateStruct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			resp.Validation(c, fieldErrors(verrs))
			return false
		}
		resp.BadRequest(c, "Invalid request body")
		return false
	}
	return true
}

const unknownFieldPrefix = "json: unknown field "

func writeDecodeError(c *gin.Context, err error) {
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.Is(err, io.EOF):
		resp.BadRequest(c, "Request body is required")
	// encoding/json has no typed error for this; the wording is pinned by
	// TestBindJSON_BodyShape.
	case strings.HasPrefix(err.Error(), unknownFieldPrefix):
		field := strings.Trim(strings.TrimPrefix(err.Error(), unknownFieldPrefix), `"`)
		resp.Validation(c, []resp.FieldError{{Field: field, Message: "is not allowed"}})
	case errors.As(err, &typeErr) && typeErr.Field == "":
		resp.BadRequest(c, "Request body must be a JSON object")
	case errors.As(err, &typeErr):
		resp.Validation(c, []resp.FieldError{{Field: typeErr.Field, Message: "must be a " + jsonKind(typeErr.Type)}})
	default:
		resp.BadRequest(c, "Malformed JSON body")
	}
}

func jsonKind(t reflect.Type) string {
	switch t.Kind() {
	case reflect.Ptr:
		return jsonKind(t.Elem())
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Float32, reflect.Float64, reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32,
		reflect.Int64, reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "number"
	case reflect.Slice, reflect.Array:
		return "list"
	default:
		return "object"
	}
}

func fieldErrors(verrs validator.ValidationErrors) []resp.FieldError {
	out := make([]resp.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, resp.FieldError{Field: fe.Field(), Message: fieldMessage(fe)})
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	isString := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		if isString {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return "must be at least " + fe.Param()
	case "max":
		if isString {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return "must be at most " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "bcryptlen":
		return fmt.Sprintf("must be at most %d bytes", maxPasswordBytes)
	case "slug":
		return "must contain only lowercase letters, digits and hyphens"
	default:
		return "is invalid"
	}
}

func isSlug(s string) bool {
	if s == "" || s[0] == '-' || s[len(s)-1] == '-' {
		return false
	}
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '-' {
			return false
		}
	}
	return true
}
