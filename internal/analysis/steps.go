package analysis

// StepCount is the number of wizard steps.
const StepCount = 3

// Step is one page of the wizard.
type Step struct {
	Title       string
	Description string
}

// stepDef binds a step to the fields rendered on it.
type stepDef struct {
	Step
	fields []Field
}

// stepTable is indexed by position. The array length pins it to StepCount so
// every position has exactly one field subset.
var stepTable = [StepCount]stepDef{
	{
		Step: Step{
			Title:       "Buyer Demographics",
			Description: "Filter by customer age, location, and purchase history",
		},
		fields: []Field{FieldAgeRange, FieldLocation},
	},
	{
		Step: Step{
			Title:       "Purchase Behavior",
			Description: "Define purchase frequency and value ranges",
		},
		fields: []Field{FieldMinPurchaseValue, FieldMaxPurchaseValue, FieldPurchaseFrequency},
	},
	{
		Step: Step{
			Title:       "Time Period",
			Description: "Set the analysis timeframe",
		},
		fields: []Field{FieldStartDate, FieldEndDate},
	},
}

// Steps returns the ordered step list.
func Steps() []Step {
	steps := make([]Step, StepCount)
	for i, s := range stepTable {
		steps[i] = s.Step
	}
	return steps
}

// StepAt returns the step at position i. Out-of-range positions are clamped.
func StepAt(i int) Step {
	return stepTable[clamp(i)].Step
}

// FieldsAt returns the field subset rendered at position i.
// Out-of-range positions are clamped.
func FieldsAt(i int) []Field {
	src := stepTable[clamp(i)].fields
	out := make([]Field, len(src))
	copy(out, src)
	return out
}

// StepOf returns the position whose step renders f, or -1.
func StepOf(f Field) int {
	for i, s := range stepTable {
		for _, sf := range s.fields {
			if sf == f {
				return i
			}
		}
	}
	return -1
}

func clamp(i int) int {
	if i < 0 {
		return 0
	}
	if i > StepCount-1 {
		return StepCount - 1
	}
	return i
}
