package scenario

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"

	"github.com/goliatone/go-pvsim/pkg/pverr"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report yaml key names, not Go field names.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		tag := field.Tag.Get("yaml")
		if tag == "" {
			return field.Name
		}
		name := strings.Split(tag, ",")[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate applies struct-tag defaults, checks declared field ranges, and
// checks block shape. Range violations come back as *pverr.InputRangeError
// with the yaml path as field name.
func (s *Scenario) Validate() error {
	if err := defaults.Set(s); err != nil {
		return fmt.Errorf("scenario: apply defaults: %w", err)
	}
	if err := validate.Struct(s); err != nil {
		return translateValidation(err)
	}
	return s.checkShape()
}

func translateValidation(err error) error {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return fmt.Errorf("scenario: validate: %w", err)
	}

	// The first violation is enough; field order follows the struct.
	fe := fieldErrors[0]
	switch fe.Tag() {
	case "gte", "min":
		return &pverr.InputRangeError{
			Field: fieldPath(fe),
			Value: numericValue(fe),
			Min:   mustParseParam(fe),
			Max:   math.Inf(1),
		}
	case "lte", "max":
		return &pverr.InputRangeError{
			Field: fieldPath(fe),
			Value: numericValue(fe),
			Min:   math.Inf(-1),
			Max:   mustParseParam(fe),
		}
	case "gt":
		return &pverr.InputRangeError{
			Field: fieldPath(fe),
			Value: numericValue(fe),
			Min:   mustParseParam(fe),
			Max:   math.Inf(1),
		}
	case "oneof":
		return fmt.Errorf("scenario: %s must be one of %s, got %v",
			fieldPath(fe), strings.ReplaceAll(fe.Param(), " ", ", "), fe.Value())
	default:
		return fmt.Errorf("scenario: %s failed %s validation", fieldPath(fe), fe.Tag())
	}
}

// fieldPath turns e.g. "Scenario.location.latitude" into
// "location.latitude".
func fieldPath(fe validator.FieldError) string {
	parts := strings.SplitN(fe.Namespace(), ".", 2)
	if len(parts) == 2 {
		return parts[1]
	}
	return fe.Field()
}

func numericValue(fe validator.FieldError) float64 {
	rv := reflect.ValueOf(fe.Value())
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int())
	default:
		return math.NaN()
	}
}

func mustParseParam(fe validator.FieldError) float64 {
	v, err := strconv.ParseFloat(fe.Param(), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// checkShape enforces the cross-field rules the tag language cannot
// express: hardware source exclusivity and the times block layout.
func (s *Scenario) checkShape() error {
	if s.System.Module != "" && len(s.System.ModuleParameters) > 0 {
		return fmt.Errorf("scenario: system block: module and module_parameters are mutually exclusive")
	}
	if s.System.Module == "" && len(s.System.ModuleParameters) == 0 {
		return fmt.Errorf("scenario: system block: one of module or module_parameters is required")
	}
	if s.System.Inverter != "" && len(s.System.InverterParameters) > 0 {
		return fmt.Errorf("scenario: system block: inverter and inverter_parameters are mutually exclusive")
	}
	if s.System.Inverter == "" && len(s.System.InverterParameters) == 0 {
		return fmt.Errorf("scenario: system block: one of inverter or inverter_parameters is required")
	}

	hasSpan := s.Times.Start != "" || s.Times.End != ""
	hasList := len(s.Times.List) > 0
	switch {
	case hasSpan && hasList:
		return fmt.Errorf("scenario: times block: start/end and list are mutually exclusive")
	case !hasSpan && !hasList:
		return fmt.Errorf("scenario: times block: a start/end span or an explicit list is required")
	case hasSpan && (s.Times.Start == "" || s.Times.End == ""):
		return fmt.Errorf("scenario: times block: start and end are both required")
	}

	if hasSpan {
		step, err := time.ParseDuration(s.Times.Step)
		if err != nil {
			return fmt.Errorf("scenario: times block: parse step: %w", err)
		}
		if step <= 0 {
			return fmt.Errorf("scenario: times block: step must be positive, got %s", step)
		}
	}
	return nil
}
