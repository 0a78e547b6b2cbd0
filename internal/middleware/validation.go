package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	apierrors "salespulse/internal/errors"
)

// QueryBinder fills structs from query parameters and validates them with
// their struct tags. Fields bind by their `query` tag.
type QueryBinder struct {
	validator *validator.Validate
}

// NewQueryBinder creates a binder reporting fields by query parameter name
func NewQueryBinder() *QueryBinder {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("query"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &QueryBinder{validator: v}
}

// Bind decodes r's query into dst, a pointer to struct, and validates it.
// Failures are *apierrors.APIError values ready for the error handler.
func (b *QueryBinder) Bind(r *http.Request, dst interface{}) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("bind target must be a pointer to struct, got %T", dst)
	}

	query := r.URL.Query()
	elem := rv.Elem()
	var bad []apierrors.ValidationError

	for i := 0; i < elem.NumField(); i++ {
		field := elem.Type().Field(i)
		name := strings.SplitN(field.Tag.Get("query"), ",", 2)[0]
		if name == "" || name == "-" || !query.Has(name) {
			continue
		}
		if err := setField(elem.Field(i), query.Get(name)); err != nil {
			bad = append(bad, apierrors.ValidationError{Field: name, Message: err.Error()})
		}
	}
	if len(bad) > 0 {
		return apierrors.NewValidationErrors(bad)
	}

	if err := b.validator.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		for _, fe := range verrs {
			bad = append(bad, apierrors.ValidationError{Field: fe.Field(), Message: formatValidationError(fe)})
		}
		return apierrors.NewValidationErrors(bad)
	}
	return nil
}

func setField(v reflect.Value, raw string) error {
	switch v.Kind() {
	case reflect.String:
		v.SetString(strings.TrimSpace(raw))
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("must be true or false")
		}
		v.SetBool(b)
	case reflect.Int, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("must be a valid integer")
		}
		v.SetInt(n)
	default:
		return fmt.Errorf("unsupported parameter type %s", v.Kind())
	}
	return nil
}

func formatValidationError(err validator.FieldError) string {
	field := err.Field()
	param := err.Param()

	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(param, " ", ", "))
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", field, param)
	default:
		return fmt.Sprintf("%s failed %s validation", field, err.Tag())
	}
}
