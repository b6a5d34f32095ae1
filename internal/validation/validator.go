package validation

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"diabcar/internal/entities"
	apperrors "diabcar/internal/errors"
	"diabcar/internal/utils"
)

// Validator wraps go-playground struct validation and the date checks
// that cannot be expressed as struct tags. Every method collects all
// violations before failing so the client gets one consolidated list.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	return &Validator{validate: validator.New()}
}

func (v *Validator) Struct(s interface{}) error {
	fields := v.structFields(s)
	if len(fields) > 0 {
		return apperrors.Validation(fields...)
	}
	return nil
}

// Booking validates a booking request and returns the parsed, day-
// normalized [start, end) interval.
func (v *Validator) Booking(req *entities.BookingRequest) (start, end time.Time, err error) {
	fields := v.structFields(req)

	start, end, dateFields := parseInterval(req.StartDate, req.EndDate)
	fields = append(fields, dateFields...)

	if len(fields) > 0 {
		return time.Time{}, time.Time{}, apperrors.Validation(fields...)
	}
	return start, end, nil
}

// Availability validates an availability probe and returns the parsed
// interval.
func (v *Validator) Availability(req *entities.AvailabilityRequest) (start, end time.Time, err error) {
	fields := v.structFields(req)

	start, end, dateFields := parseInterval(req.StartDate, req.EndDate)
	fields = append(fields, dateFields...)

	if len(fields) > 0 {
		return time.Time{}, time.Time{}, apperrors.Validation(fields...)
	}
	return start, end, nil
}

// BookingUpdate validates the optional fields of a booking update. Both
// dates must be supplied together so the interval stays well-formed.
func (v *Validator) BookingUpdate(req *entities.BookingUpdateRequest) (start, end time.Time, err error) {
	fields := v.structFields(req)

	if (req.StartDate == nil) != (req.EndDate == nil) {
		fields = append(fields, apperrors.FieldError{
			Field:   "start_date",
			Message: "start_date and end_date must be updated together",
		})
	} else if req.StartDate != nil {
		var dateFields []apperrors.FieldError
		start, end, dateFields = parseInterval(*req.StartDate, *req.EndDate)
		fields = append(fields, dateFields...)
	}

	if len(fields) > 0 {
		return time.Time{}, time.Time{}, apperrors.Validation(fields...)
	}
	return start, end, nil
}

func parseInterval(startValue, endValue string) (start, end time.Time, fields []apperrors.FieldError) {
	var startErr, endErr error
	start, startErr = utils.ParseDate(startValue)
	if startErr != nil {
		fields = append(fields, apperrors.FieldError{Field: "start_date", Message: "must be a valid date"})
	}
	end, endErr = utils.ParseDate(endValue)
	if endErr != nil {
		fields = append(fields, apperrors.FieldError{Field: "end_date", Message: "must be a valid date"})
	}
	if startErr == nil && endErr == nil && !start.Before(end) {
		fields = append(fields, apperrors.FieldError{
			Field:   "start_date",
			Message: "start date must be before the end date",
		})
	}
	return start, end, fields
}

func (v *Validator) structFields(s interface{}) []apperrors.FieldError {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []apperrors.FieldError{{Field: "request", Message: err.Error()}}
	}

	fields := make([]apperrors.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, apperrors.FieldError{
			Field:   jsonName(fe),
			Message: translate(fe),
		})
	}
	return fields
}

func translate(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "e164":
		return "must be a valid phone number in E.164 format"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

// jsonName lowercases the struct field name into the snake_case form the
// request uses, so field errors reference what the client actually sent.
func jsonName(fe validator.FieldError) string {
	switch fe.Field() {
	case "UserID":
		return "user_id"
	case "CarID":
		return "car_id"
	case "StartDate":
		return "start_date"
	case "EndDate":
		return "end_date"
	case "TotalPrice":
		return "total_price"
	case "PricePerDay":
		return "price_per_day"
	case "FuelType":
		return "fuel_type"
	case "PhoneNumber":
		return "phone_number"
	default:
		return snake(fe.Field())
	}
}

func snake(name string) string {
	out := make([]rune, 0, len(name)+4)
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				out = append(out, '_')
			}
			r += 'a' - 'A'
		}
		out = append(out, r)
	}
	return string(out)
}
