package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	errors "github.com/oltecnologia/analyst-management/internal"
)

// DateLayout is the wire format for all date fields.
const DateLayout = "2006-01-02"

// ParseDate parses a required YYYY-MM-DD field.
func ParseDate(field, value string) (time.Time, *errors.AppError) {
	if value == "" {
		return time.Time{}, errors.NewValidationFieldError(field, fmt.Sprintf("%s is required", field), errors.ErrCodeValidationFailed)
	}
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, errors.NewValidationFieldError(field, fmt.Sprintf("%s must be a valid date (YYYY-MM-DD)", field), errors.ErrCodeInvalidDate)
	}
	return t, nil
}

// ParseOptionalDate parses an optional YYYY-MM-DD field; nil input stays nil.
func ParseOptionalDate(field string, value *string) (*time.Time, *errors.AppError) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, appErr := ParseDate(field, *value)
	if appErr != nil {
		return nil, appErr
	}
	return &t, nil
}

// amountPattern restricts monetary input to plain decimal syntax. ParseFloat
// alone also accepts NaN, Inf, exponents and signs, none of which may end up
// stored as a salary.
var amountPattern = regexp.MustCompile(`^\d+(\.\d+)?$`)

// NormalizeAmount validates a required monetary decimal string and normalizes
// it to two decimal places ("5000" -> "5000.00").
func NormalizeAmount(field, value string) (string, *errors.AppError) {
	if value == "" {
		return "", errors.NewValidationFieldError(field, fmt.Sprintf("%s is required", field), errors.ErrCodeValidationFailed)
	}
	if !amountPattern.MatchString(value) {
		return "", errors.NewValidationFieldError(field, fmt.Sprintf("%s must be a non-negative decimal number", field), errors.ErrCodeInvalidAmount)
	}
	amount, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return "", errors.NewValidationFieldError(field, fmt.Sprintf("%s must be a non-negative decimal number", field), errors.ErrCodeInvalidAmount)
	}
	return strconv.FormatFloat(amount, 'f', 2, 64), nil
}

// NormalizeOptionalAmount applies NormalizeAmount to an optional field.
func NormalizeOptionalAmount(field string, value *string) (*string, *errors.AppError) {
	if value == nil || *value == "" {
		return nil, nil
	}
	normalized, appErr := NormalizeAmount(field, *value)
	if appErr != nil {
		return nil, appErr
	}
	return &normalized, nil
}

// Performance grades accepted for analysts.
var performanceGrades = map[string]struct{}{
	"excellent":         {},
	"good":              {},
	"average":           {},
	"needs_improvement": {},
}

// ValidatePerformance checks an optional performance grade.
func ValidatePerformance(value *string) *errors.AppError {
	if value == nil || *value == "" {
		return nil
	}
	if _, ok := performanceGrades[*value]; !ok {
		return errors.NewValidationFieldError("performance", "performance must be one of excellent, good, average, needs_improvement", errors.ErrCodeValidationFailed)
	}
	return nil
}
