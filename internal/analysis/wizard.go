package analysis

// Consumer receives submitted criteria. The value is a copy; the controller
// keeps no reference to it after the call.
type Consumer interface {
	Consume(FilterCriteria)
}

// ConsumerFunc adapts a function to Consumer.
type ConsumerFunc func(FilterCriteria)

// Consume calls f(c).
func (f ConsumerFunc) Consume(c FilterCriteria) { f(c) }

// Action is what the primary button does at the current position.
type Action int

const (
	ActionNone Action = iota
	ActionAdvance
	ActionSubmit
)

// Labels for the two buttons at the bottom of the wizard.
const (
	LabelNext          = "Next"
	LabelStartAnalysis = "Start Analysis"
	LabelPrevious      = "Previous"
)

// Controller drives a single wizard instance.
//
// States are positions 0..StepCount-1 plus closed. Advance and Retreat clamp
// silently at the ends; Submit only fires on the last step and closes the
// wizard. Every method is a no-op while closed.
type Controller struct {
	position int
	criteria FilterCriteria
	open     bool
	consumer Consumer
}

// NewController creates a closed controller that hands submissions to consumer.
// A nil consumer is allowed; submissions then only close the wizard.
func NewController(consumer Consumer) *Controller {
	return &Controller{
		criteria: DefaultCriteria(),
		consumer: consumer,
	}
}

// Open starts a fresh session at the first step with default criteria.
func (c *Controller) Open() {
	c.open = true
	c.position = 0
	c.criteria = DefaultCriteria()
}

// Close hides the wizard without submitting. Uncommitted edits are dropped
// the next time Open is called.
func (c *Controller) Close() {
	c.open = false
	c.position = 0
}

// IsOpen reports whether a session is active.
func (c *Controller) IsOpen() bool {
	return c.open
}

// Position returns the current step index.
func (c *Controller) Position() int {
	return c.position
}

// IsLast reports whether the wizard is on the final step.
func (c *Controller) IsLast() bool {
	return c.position == StepCount-1
}

// Step returns the current step.
func (c *Controller) Step() Step {
	return StepAt(c.position)
}

// Fields returns the fields rendered on the current step.
func (c *Controller) Fields() []Field {
	return FieldsAt(c.position)
}

// Criteria returns a snapshot of the accumulated criteria.
func (c *Controller) Criteria() FilterCriteria {
	return c.criteria
}

// Advance moves one step forward. Returns false when closed or already on
// the last step.
func (c *Controller) Advance() bool {
	if !c.open || c.position >= StepCount-1 {
		return false
	}
	c.position++
	return true
}

// Retreat moves one step back. Returns false when closed or already on the
// first step.
func (c *Controller) Retreat() bool {
	if !c.open || c.position <= 0 {
		return false
	}
	c.position--
	return true
}

// UpdateField merges one field into the criteria. Position and the other
// fields are untouched. Returns false for an unknown field or a closed wizard.
func (c *Controller) UpdateField(f Field, value string) bool {
	if !c.open {
		return false
	}
	next, ok := c.criteria.With(f, value)
	if !ok {
		return false
	}
	c.criteria = next
	return true
}

// Submit hands the criteria to the consumer and closes the wizard. It only
// fires on the last step; elsewhere it returns false and changes nothing.
func (c *Controller) Submit() bool {
	if !c.open || !c.IsLast() {
		return false
	}
	snapshot := c.criteria
	if c.consumer != nil {
		c.consumer.Consume(snapshot)
	}
	c.Close()
	return true
}

// PrimaryAction reports what the primary button would do without doing it.
func (c *Controller) PrimaryAction() Action {
	if !c.open {
		return ActionNone
	}
	if c.IsLast() {
		return ActionSubmit
	}
	return ActionAdvance
}

// PrimaryLabel returns the primary button label for the current step.
func (c *Controller) PrimaryLabel() string {
	if c.IsLast() {
		return LabelStartAnalysis
	}
	return LabelNext
}

// Primary fires the primary button: advance before the last step, submit on it.
func (c *Controller) Primary() Action {
	switch c.PrimaryAction() {
	case ActionAdvance:
		c.Advance()
		return ActionAdvance
	case ActionSubmit:
		c.Submit()
		return ActionSubmit
	default:
		return ActionNone
	}
}

// SecondaryVisible reports whether the Previous button is shown. It is
// hidden, not disabled, on the first step.
func (c *Controller) SecondaryVisible() bool {
	return c.position > 0
}

// Secondary fires the Previous button.
func (c *Controller) Secondary() bool {
	return c.Retreat()
}

// Progress returns one entry per step; entry i is filled when i <= position.
func (c *Controller) Progress() []bool {
	filled := make([]bool, StepCount)
	for i := range filled {
		filled[i] = i <= c.position
	}
	return filled
}
