package testfixtures

import (
	"time"

	"github.com/mark3labs/insightr/internal/analysis"
	"github.com/mark3labs/insightr/internal/store"
)

// Fixed test values for consistent rendering
const (
	FixedSeed     = 42
	FixedLocation = "Berlin"
)

var (
	FixedTime = time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
)

// SampleCriteria returns fully populated, valid criteria.
func SampleCriteria() analysis.FilterCriteria {
	return analysis.FilterCriteria{
		AgeRange:          analysis.Age25To34,
		Location:          FixedLocation,
		MinPurchaseValue:  "100",
		MaxPurchaseValue:  "500",
		PurchaseFrequency: analysis.FrequencyMonthly,
		StartDate:         "2024-01-01",
		EndDate:           "2024-06-30",
	}
}

// InvalidCriteria returns criteria with an inverted value range and a
// malformed end date.
func InvalidCriteria() analysis.FilterCriteria {
	c := SampleCriteria()
	c.MinPurchaseValue = "900"
	c.EndDate = "30/06/2024"
	return c
}

// SampleAnalysis returns a submitted analysis built from SampleCriteria.
func SampleAnalysis() *store.Analysis {
	c := SampleCriteria()
	return &store.Analysis{
		ID:          "cmfixture00000000000",
		Name:        store.NameFor(c),
		Criteria:    c,
		Source:      store.SourceTUI,
		SubmittedAt: FixedTime,
	}
}
