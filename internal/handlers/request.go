package handlers

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/mroshb/friends_api/pkg/errors"
)

// ID is a request id. It accepts a JSON number or a numeric string; "" and
// null decode to zero so that `binding:"required"` reports them as missing.
type ID uint

func (id *ID) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*id = 0
		return nil
	}
	raw = strings.Trim(raw, `"`)
	if raw == "" {
		*id = 0
		return nil
	}

	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return &json.UnmarshalTypeError{Value: "string " + raw, Type: reflect.TypeOf(uint(0))}
	}
	*id = ID(n)
	return nil
}

var registerTagName sync.Once

// bindJSON decodes and validates the request body into req. Failures come
// back as a VALIDATION_ERROR keyed by JSON field name.
func bindJSON(c *gin.Context, req interface{}) error {
	registerTagName.Do(useJSONFieldNames)

	err := c.ShouldBindJSON(req)
	if stderrors.Is(err, io.EOF) {
		// An empty body is treated as {} so required fields are reported.
		err = binding.Validator.ValidateStruct(req)
	}
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if stderrors.As(err, &fieldErrs) {
		meta := make(map[string][]string, len(fieldErrs))
		for _, fe := range fieldErrs {
			meta[fe.Field()] = append(meta[fe.Field()], validationMessage(fe))
		}
		return errors.Validation(meta)
	}

	var typeErr *json.UnmarshalTypeError
	if stderrors.As(err, &typeErr) && typeErr.Field != "" {
		message := fmt.Sprintf("The %s field is invalid.", humanField(typeErr.Field))
		if typeErr.Type != nil && typeErr.Type.Kind() == reflect.Uint {
			message = fmt.Sprintf("The %s must be an integer.", humanField(typeErr.Field))
		}
		return errors.Validation(map[string][]string{typeErr.Field: {message}})
	}

	return errors.Validation(map[string][]string{"body": {"The request body must be valid JSON."}})
}

func validationMessage(fe validator.FieldError) string {
	field := humanField(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", field)
	case "email":
		return fmt.Sprintf("The %s must be a valid email address.", field)
	case "min":
		return fmt.Sprintf("The %s must be at least %s characters.", field, fe.Param())
	case "max":
		return fmt.Sprintf("The %s may not be greater than %s characters.", field, fe.Param())
	default:
		return fmt.Sprintf("The %s field is invalid.", field)
	}
}

func humanField(name string) string {
	return strings.ReplaceAll(name, "_", " ")
}

func useJSONFieldNames() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
}

// pathID parses a numeric route parameter. Anything else is reported as notFound.
func pathID(c *gin.Context, param string, notFound *errors.AppError) (uint, error) {
	n, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil || n == 0 {
		return 0, notFound
	}
	return uint(n), nil
}
