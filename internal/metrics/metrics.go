// Package metrics supplies the figures the dashboard displays.
package metrics

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/dustin/go-humanize"
)

// Card is one headline metric tile.
type Card struct {
	Title    string  `json:"title"`
	Value    float64 `json:"value"`
	Currency bool    `json:"currency"`
	SubValue string  `json:"sub_value,omitempty"`
	Icon     string  `json:"icon"`
}

// Display returns the formatted card value.
func (c Card) Display() string {
	if c.Currency {
		return FormatCurrency(c.Value)
	}
	return FormatCount(c.Value)
}

// Point is a labelled value in a single series.
type Point struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// GroupedPoint carries two series values for one category.
type GroupedPoint struct {
	Label     string  `json:"label"`
	New       float64 `json:"new"`
	Returning float64 `json:"returning"`
}

// SaleRow is one line of the sales history table.
type SaleRow struct {
	Client       string    `json:"client"`
	LTV          float64   `json:"ltv"`
	AvgTicket    float64   `json:"avg_ticket"`
	DaysActive   int       `json:"days_active"`
	LastPurchase time.Time `json:"last_purchase"`
}

// Source provides everything the dashboard renders.
type Source interface {
	Cards() []Card
	Revenue() []Point
	Categories() []Point
	Customers() []GroupedPoint
	Conversion() []Point
	Sales() []SaleRow
}

// Snapshot is a serializable copy of a Source.
type Snapshot struct {
	Cards      []Card         `json:"cards"`
	Revenue    []Point        `json:"revenue"`
	Categories []Point        `json:"categories"`
	Customers  []GroupedPoint `json:"customers"`
	Conversion []Point        `json:"conversion"`
	Sales      []SaleRow      `json:"sales"`
}

// Snap copies every series out of src.
func Snap(src Source) Snapshot {
	return Snapshot{
		Cards:      src.Cards(),
		Revenue:    src.Revenue(),
		Categories: src.Categories(),
		Customers:  src.Customers(),
		Conversion: src.Conversion(),
		Sales:      src.Sales(),
	}
}

// SampleSource serves fixed sample figures. Sales rows are drawn once from
// a seeded generator so repeated renders agree.
type SampleSource struct {
	sales []SaleRow
}

// salesRows is the number of sample clients in the sales table.
const salesRows = 5

// NewSampleSource builds a sample source. now stamps every LastPurchase.
func NewSampleSource(seed int64, now time.Time) *SampleSource {
	rng := rand.New(rand.NewSource(seed))
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	sales := make([]SaleRow, salesRows)
	for i := range sales {
		sales[i] = SaleRow{
			Client:       fmt.Sprintf("Client %d", i+1),
			LTV:          roundCents(rng.Float64() * 10000),
			AvgTicket:    roundCents(rng.Float64() * 1000),
			DaysActive:   rng.Intn(365),
			LastPurchase: day,
		}
	}
	return &SampleSource{sales: sales}
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

func (s *SampleSource) Cards() []Card {
	return []Card{
		{Title: "Total Revenue", Value: 2456789, Currency: true, SubValue: "+12.3% from last month", Icon: "$"},
		{Title: "First Purchase Revenue", Value: 892345, Currency: true, Icon: "▭"},
		{Title: "Recurring Purchase Revenue", Value: 1564444, Currency: true, Icon: "◰"},
		{Title: "Total Buyers", Value: 24589, SubValue: "+2,345 this month", Icon: "◉"},
		{Title: "Inactive Buyers", Value: 3456, Icon: "⊘"},
		{Title: "Total Transactions", Value: 89766, Icon: "▣"},
	}
}

func (s *SampleSource) Revenue() []Point {
	return []Point{
		{"Jan", 4000}, {"Feb", 3000}, {"Mar", 5000},
		{"Apr", 4500}, {"May", 6000}, {"Jun", 5500},
	}
}

func (s *SampleSource) Categories() []Point {
	return []Point{
		{"Electronics", 400}, {"Clothing", 300}, {"Books", 200}, {"Home", 278},
	}
}

func (s *SampleSource) Customers() []GroupedPoint {
	return []GroupedPoint{
		{"Jan", 400, 240}, {"Feb", 300, 139}, {"Mar", 500, 380},
		{"Apr", 450, 430}, {"May", 600, 520}, {"Jun", 550, 490},
	}
}

func (s *SampleSource) Conversion() []Point {
	return []Point{
		{"1", 65}, {"2", 68}, {"3", 62}, {"4", 72}, {"5", 66}, {"6", 70}, {"7", 75},
	}
}

// Sales returns a copy of the generated rows.
func (s *SampleSource) Sales() []SaleRow {
	out := make([]SaleRow, len(s.sales))
	copy(out, s.sales)
	return out
}

// FormatCurrency renders whole amounts as "$2,456,789" and fractional ones
// with cents, "$1,234.50".
func FormatCurrency(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	cents := int64(math.Round(v * 100))
	if cents%100 == 0 {
		return sign + "$" + humanize.Comma(cents/100)
	}
	return fmt.Sprintf("%s$%s.%02d", sign, humanize.Comma(cents/100), cents%100)
}

// FormatCount renders a count with thousands separators.
func FormatCount(v float64) string {
	return humanize.Comma(int64(v))
}
