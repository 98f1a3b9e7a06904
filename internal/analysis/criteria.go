// Package analysis holds the New Analysis wizard: the step table, the filter
// criteria it accumulates, and the controller that walks the steps.
package analysis

// AgeBand is the buyer age bucket selected on the demographics step.
type AgeBand string

const (
	Age18To24 AgeBand = "18-24"
	Age25To34 AgeBand = "25-34"
	Age35To44 AgeBand = "35-44"
	Age45To54 AgeBand = "45-54"
	Age55Plus AgeBand = "55+"
)

// AgeBands lists every age band in display order.
var AgeBands = []AgeBand{Age18To24, Age25To34, Age35To44, Age45To54, Age55Plus}

// Label returns the human-readable option text.
func (a AgeBand) Label() string {
	return string(a) + " years"
}

// Valid reports whether a is one of the known bands.
func (a AgeBand) Valid() bool {
	for _, b := range AgeBands {
		if a == b {
			return true
		}
	}
	return false
}

// Frequency is the purchase frequency filter. The zero value means unset.
type Frequency string

const (
	FrequencyUnset     Frequency = ""
	FrequencyWeekly    Frequency = "weekly"
	FrequencyMonthly   Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
	FrequencyYearly    Frequency = "yearly"
)

// Frequencies lists every option in display order, unset first.
var Frequencies = []Frequency{
	FrequencyUnset,
	FrequencyWeekly,
	FrequencyMonthly,
	FrequencyQuarterly,
	FrequencyYearly,
}

// Label returns the human-readable option text.
func (f Frequency) Label() string {
	switch f {
	case FrequencyUnset:
		return "Select frequency"
	case FrequencyWeekly:
		return "Weekly"
	case FrequencyMonthly:
		return "Monthly"
	case FrequencyQuarterly:
		return "Quarterly"
	case FrequencyYearly:
		return "Yearly"
	default:
		return string(f)
	}
}

// Valid reports whether f is one of the known frequencies (including unset).
func (f Frequency) Valid() bool {
	for _, o := range Frequencies {
		if f == o {
			return true
		}
	}
	return false
}

// Field names a single FilterCriteria field. The values match the JSON keys so
// that MCP and CLI callers can address fields by the same names.
type Field string

const (
	FieldAgeRange          Field = "ageRange"
	FieldLocation          Field = "location"
	FieldMinPurchaseValue  Field = "minPurchaseValue"
	FieldMaxPurchaseValue  Field = "maxPurchaseValue"
	FieldPurchaseFrequency Field = "purchaseFrequency"
	FieldStartDate         Field = "startDate"
	FieldEndDate           Field = "endDate"
)

// Fields lists every criteria field in form order.
var Fields = []Field{
	FieldAgeRange,
	FieldLocation,
	FieldMinPurchaseValue,
	FieldMaxPurchaseValue,
	FieldPurchaseFrequency,
	FieldStartDate,
	FieldEndDate,
}

// Label returns the form label for a field.
func (f Field) Label() string {
	switch f {
	case FieldAgeRange:
		return "Age Range"
	case FieldLocation:
		return "Location"
	case FieldMinPurchaseValue:
		return "Min value"
	case FieldMaxPurchaseValue:
		return "Max value"
	case FieldPurchaseFrequency:
		return "Purchase Frequency"
	case FieldStartDate:
		return "Start date"
	case FieldEndDate:
		return "End date"
	default:
		return string(f)
	}
}

// FilterCriteria is the record the wizard accumulates and hands off on submit.
// Every field is always present; absence is the empty/default value.
type FilterCriteria struct {
	AgeRange          AgeBand   `json:"ageRange" yaml:"ageRange"`
	Location          string    `json:"location" yaml:"location"`
	MinPurchaseValue  string    `json:"minPurchaseValue" yaml:"minPurchaseValue"`
	MaxPurchaseValue  string    `json:"maxPurchaseValue" yaml:"maxPurchaseValue"`
	PurchaseFrequency Frequency `json:"purchaseFrequency" yaml:"purchaseFrequency"`
	StartDate         string    `json:"startDate" yaml:"startDate"`
	EndDate           string    `json:"endDate" yaml:"endDate"`
}

// DefaultCriteria returns the criteria a fresh wizard session starts from.
func DefaultCriteria() FilterCriteria {
	return FilterCriteria{AgeRange: Age18To24}
}

// Get returns the raw string value of a field, or "" for an unknown field.
func (c FilterCriteria) Get(f Field) string {
	switch f {
	case FieldAgeRange:
		return string(c.AgeRange)
	case FieldLocation:
		return c.Location
	case FieldMinPurchaseValue:
		return c.MinPurchaseValue
	case FieldMaxPurchaseValue:
		return c.MaxPurchaseValue
	case FieldPurchaseFrequency:
		return string(c.PurchaseFrequency)
	case FieldStartDate:
		return c.StartDate
	case FieldEndDate:
		return c.EndDate
	default:
		return ""
	}
}

// With returns a copy of c with a single field replaced. The second return is
// false (and c is returned unchanged) when f is not a known field.
// No validation happens here.
func (c FilterCriteria) With(f Field, value string) (FilterCriteria, bool) {
	switch f {
	case FieldAgeRange:
		c.AgeRange = AgeBand(value)
	case FieldLocation:
		c.Location = value
	case FieldMinPurchaseValue:
		c.MinPurchaseValue = value
	case FieldMaxPurchaseValue:
		c.MaxPurchaseValue = value
	case FieldPurchaseFrequency:
		c.PurchaseFrequency = Frequency(value)
	case FieldStartDate:
		c.StartDate = value
	case FieldEndDate:
		c.EndDate = value
	default:
		return c, false
	}
	return c, true
}
