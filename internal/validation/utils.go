package validation

import (
	"reflect"
	"strings"

	"github.com/deppfellow/crm/internal/entity"
	"github.com/go-playground/validator/v10"
)

// CalendarDateTag accepts strings that ParseDate understands: YYYY-MM-DD
// naming a day that exists.
const CalendarDateTag = "calendardate"

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON name so clients see "first_name", not "FirstName".
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})

	if err := v.RegisterValidation(CalendarDateTag, isCalendarDate); err != nil {
		panic(err)
	}

	return v
}

func isCalendarDate(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}
	_, err := entity.ParseDate(fl.Field().String())
	return err == nil
}

// PositiveID rejects identifiers that storage can never have assigned.
func PositiveID(field string, id int64) error {
	if id <= 0 {
		return CustomValidationErrors{{Field: field, Message: "must be a positive integer"}}
	}
	return nil
}
