package analysis

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the accepted date format for the time period step.
const DateLayout = "2006-01-02"

// ValidationError describes a single invalid field.
type ValidationError struct {
	Field  Field
	Reason string
}

func (e ValidationError) Error() string {
	return string(e.Field) + ": " + e.Reason
}

// ValidationErrors collects every field error found by Validate.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	parts := make([]string, len(e))
	for i, ve := range e {
		parts[i] = ve.Error()
	}
	return strings.Join(parts, "; ")
}

// For returns the first reason recorded for f, or "".
func (e ValidationErrors) For(f Field) string {
	for _, ve := range e {
		if ve.Field == f {
			return ve.Reason
		}
	}
	return ""
}

// OnStep returns the errors whose field is rendered at position i.
func (e ValidationErrors) OnStep(i int) ValidationErrors {
	var out ValidationErrors
	for _, ve := range e {
		if StepOf(ve.Field) == i {
			out = append(out, ve)
		}
	}
	return out
}

// Validate checks criteria for malformed numbers and dates and inverted
// ranges. Empty optional fields are valid. Returns nil when everything passes.
func Validate(c FilterCriteria) ValidationErrors {
	var errs ValidationErrors

	if !c.AgeRange.Valid() {
		errs = append(errs, ValidationError{FieldAgeRange, "unknown age range " + strconv.Quote(string(c.AgeRange))})
	}
	if !c.PurchaseFrequency.Valid() {
		errs = append(errs, ValidationError{FieldPurchaseFrequency, "unknown frequency " + strconv.Quote(string(c.PurchaseFrequency))})
	}

	minVal, minOK, minErr := parseAmount(c.MinPurchaseValue)
	if minErr != "" {
		errs = append(errs, ValidationError{FieldMinPurchaseValue, minErr})
	}
	maxVal, maxOK, maxErr := parseAmount(c.MaxPurchaseValue)
	if maxErr != "" {
		errs = append(errs, ValidationError{FieldMaxPurchaseValue, maxErr})
	}
	if minOK && maxOK && minVal > maxVal {
		errs = append(errs, ValidationError{FieldMaxPurchaseValue, "must be greater than or equal to min value"})
	}

	start, startOK, startErr := parseDate(c.StartDate)
	if startErr != "" {
		errs = append(errs, ValidationError{FieldStartDate, startErr})
	}
	end, endOK, endErr := parseDate(c.EndDate)
	if endErr != "" {
		errs = append(errs, ValidationError{FieldEndDate, endErr})
	}
	if startOK && endOK && start.After(end) {
		errs = append(errs, ValidationError{FieldEndDate, "must not be before start date"})
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// parseAmount returns (value, present, reason). reason is non-empty when the
// text is present but not a non-negative number.
func parseAmount(s string) (float64, bool, string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false, ""
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false, "must be a number"
	}
	if v < 0 {
		return 0, false, "must not be negative"
	}
	return v, true, ""
}

func parseDate(s string) (time.Time, bool, string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false, ""
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false, "must be a date (YYYY-MM-DD)"
	}
	return t, true, ""
}
