package tui

import (
	"slices"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/ansi"
	"github.com/mark3labs/insightr/internal/analysis"
	"github.com/mark3labs/insightr/internal/tui/theme"
)

const (
	wizardMaxWidth = 72
	wizardMinWidth = 40
)

// fieldPlaceholders holds the hint text of every free-text field.
var fieldPlaceholders = map[analysis.Field]string{
	analysis.FieldLocation:         "Enter location",
	analysis.FieldMinPurchaseValue: "Min value",
	analysis.FieldMaxPurchaseValue: "Max value",
	analysis.FieldStartDate:        "YYYY-MM-DD",
	analysis.FieldEndDate:          "YYYY-MM-DD",
}

// fieldPairs lists fields drawn side by side with their partner.
var fieldPairs = map[analysis.Field]analysis.Field{
	analysis.FieldMinPurchaseValue: analysis.FieldMaxPurchaseValue,
	analysis.FieldStartDate:        analysis.FieldEndDate,
}

// WizardModal presents an analysis.Controller as the New Analysis dialog.
//
// Focus walks the fields of the current step, then the Previous button when
// it is shown, then the primary button. Enter on a field fires the primary
// button. Submission runs through the controller's consumer, which turns the
// criteria into a command returned from Update.
type WizardModal struct {
	ctrl     *analysis.Controller
	inputs   map[analysis.Field]*textinput.Model
	focus    int
	errs     analysis.ValidationErrors
	validate bool
	submit   func(analysis.FilterCriteria) tea.Cmd
	pending  tea.Cmd
	width    int
}

// NewWizardModal creates a closed wizard. submit receives the criteria when
// Start Analysis fires. With validate set, invalid criteria hold the
// submission and send the user back to the first step with an error.
func NewWizardModal(validate bool, submit func(analysis.FilterCriteria) tea.Cmd) *WizardModal {
	w := &WizardModal{
		inputs:   make(map[analysis.Field]*textinput.Model, len(fieldPlaceholders)),
		validate: validate,
		submit:   submit,
		width:    wizardMaxWidth,
	}
	w.ctrl = analysis.NewController(analysis.ConsumerFunc(func(c analysis.FilterCriteria) {
		if w.submit != nil {
			w.pending = w.submit(c)
		}
	}))
	for f, placeholder := range fieldPlaceholders {
		in := newFieldInput(placeholder)
		w.inputs[f] = &in
	}
	return w
}

func newFieldInput(placeholder string) textinput.Model {
	t := theme.Current()
	in := textinput.New()
	in.Placeholder = placeholder
	in.Prompt = ""
	in.SetStyles(textinput.Styles{
		Focused: textinput.StyleState{
			Text:        lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgBright)),
			Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgMuted)),
			Prompt:      lipgloss.NewStyle().Foreground(lipgloss.Color(t.Primary)),
		},
		Blurred: textinput.StyleState{
			Text:        lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgBase)),
			Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgMuted)),
			Prompt:      lipgloss.NewStyle().Foreground(lipgloss.Color(t.Border)),
		},
		Cursor: textinput.CursorStyle{
			Color: lipgloss.Color(t.Primary),
			Shape: tea.CursorBar,
			Blink: true,
		},
	})
	return in
}

// Controller exposes the wizard state machine.
func (w *WizardModal) Controller() *analysis.Controller {
	return w.ctrl
}

// IsVisible reports whether the wizard is open.
func (w *WizardModal) IsVisible() bool {
	return w.ctrl.IsOpen()
}

// Open starts a fresh session from the default criteria.
func (w *WizardModal) Open() tea.Cmd {
	w.ctrl.Open()
	for _, in := range w.inputs {
		in.SetValue("")
	}
	w.errs = nil
	w.pending = nil
	w.focus = 0
	return w.applyFocus()
}

// Close dismisses the wizard without submitting.
func (w *WizardModal) Close() {
	w.ctrl.Close()
	w.blurAll()
	w.errs = nil
}

// SetSize fits the dialog to the terminal width.
func (w *WizardModal) SetSize(width, height int) {
	w.width = max(wizardMinWidth, min(wizardMaxWidth, width-4))
}

// Errors returns the validation errors currently displayed.
func (w *WizardModal) Errors() analysis.ValidationErrors {
	return w.errs
}

// buttons returns the button labels in focus order.
func (w *WizardModal) buttons() []string {
	if w.ctrl.SecondaryVisible() {
		return []string{analysis.LabelPrevious, w.ctrl.PrimaryLabel()}
	}
	return []string{w.ctrl.PrimaryLabel()}
}

func (w *WizardModal) targetCount() int {
	return len(w.ctrl.Fields()) + len(w.buttons())
}

// focusedField returns the field under focus, or "" when a button has it.
func (w *WizardModal) focusedField() analysis.Field {
	fields := w.ctrl.Fields()
	if w.focus < len(fields) {
		return fields[w.focus]
	}
	return ""
}

// focusedButton returns the label of the button under focus, or "".
func (w *WizardModal) focusedButton() string {
	i := w.focus - len(w.ctrl.Fields())
	if b := w.buttons(); i >= 0 && i < len(b) {
		return b[i]
	}
	return ""
}

// Update handles input while the wizard is open.
func (w *WizardModal) Update(msg tea.Msg) tea.Cmd {
	if !w.IsVisible() {
		return nil
	}

	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return w.updateInput(msg)
	}

	switch keyMsg.String() {
	case "esc", "ctrl+w":
		w.Close()
		return nil
	case "tab", "down":
		w.focus = (w.focus + 1) % w.targetCount()
		return w.applyFocus()
	case "shift+tab", "up":
		w.focus = (w.focus - 1 + w.targetCount()) % w.targetCount()
		return w.applyFocus()
	case "enter":
		return w.activate()
	case "left", "right":
		if f := w.focusedField(); isSelector(f) {
			delta := 1
			if keyMsg.String() == "left" {
				delta = -1
			}
			w.cycle(f, delta)
			return nil
		}
	}
	return w.updateInput(msg)
}

// updateInput forwards msg to the focused text field and mirrors its value
// into the criteria.
func (w *WizardModal) updateInput(msg tea.Msg) tea.Cmd {
	f := w.focusedField()
	in, ok := w.inputs[f]
	if !ok {
		return nil
	}
	updated, cmd := in.Update(msg)
	*in = updated
	w.ctrl.UpdateField(f, in.Value())
	if w.errs != nil {
		w.errs = analysis.Validate(w.ctrl.Criteria())
	}
	return cmd
}

// activate fires the focused button, or the primary button from a field.
func (w *WizardModal) activate() tea.Cmd {
	if w.focusedButton() == analysis.LabelPrevious {
		w.ctrl.Secondary()
		w.focus = 0
		return w.applyFocus()
	}
	return w.primary()
}

func (w *WizardModal) primary() tea.Cmd {
	if w.ctrl.PrimaryAction() == analysis.ActionSubmit {
		w.errs = analysis.Validate(w.ctrl.Criteria())
		if len(w.errs) > 0 && w.validate {
			w.showFirstError()
			return w.applyFocus()
		}
	}

	switch w.ctrl.Primary() {
	case analysis.ActionAdvance:
		w.focus = 0
		return w.applyFocus()
	case analysis.ActionSubmit:
		cmd := w.pending
		w.pending = nil
		w.errs = nil
		w.blurAll()
		return cmd
	}
	return nil
}

// showFirstError retreats to the earliest step with an error and focuses
// the offending field.
func (w *WizardModal) showFirstError() {
	target := analysis.StepCount - 1
	for _, e := range w.errs {
		if s := analysis.StepOf(e.Field); s >= 0 && s < target {
			target = s
		}
	}
	for w.ctrl.Position() > target {
		if !w.ctrl.Retreat() {
			break
		}
	}
	w.focus = 0
	for i, f := range w.ctrl.Fields() {
		if w.errs.For(f) != "" {
			w.focus = i
			break
		}
	}
}

func isSelector(f analysis.Field) bool {
	return f == analysis.FieldAgeRange || f == analysis.FieldPurchaseFrequency
}

// cycle moves a selector field delta options along, wrapping at the ends.
func (w *WizardModal) cycle(f analysis.Field, delta int) {
	var options []string
	switch f {
	case analysis.FieldAgeRange:
		for _, a := range analysis.AgeBands {
			options = append(options, string(a))
		}
	case analysis.FieldPurchaseFrequency:
		for _, fr := range analysis.Frequencies {
			options = append(options, string(fr))
		}
	default:
		return
	}
	idx := max(0, slices.Index(options, w.ctrl.Criteria().Get(f)))
	idx = (idx + delta + len(options)) % len(options)
	w.ctrl.UpdateField(f, options[idx])
	if w.errs != nil {
		w.errs = analysis.Validate(w.ctrl.Criteria())
	}
}

// applyFocus focuses the text input under focus and blurs the rest.
func (w *WizardModal) applyFocus() tea.Cmd {
	if n := w.targetCount(); w.focus >= n {
		w.focus = n - 1
	}
	focused := w.focusedField()
	var cmd tea.Cmd
	for f, in := range w.inputs {
		if f == focused {
			cmd = in.Focus()
		} else {
			in.Blur()
		}
	}
	return cmd
}

func (w *WizardModal) blurAll() {
	for _, in := range w.inputs {
		in.Blur()
	}
}

// Draw renders the wizard centered over area.
func (w *WizardModal) Draw(scr uv.Screen, area uv.Rectangle) {
	if !w.IsVisible() {
		return
	}
	DrawCentered(scr, area, w.Render())
}

// Render builds the dialog.
func (w *WizardModal) Render() string {
	s := theme.Current().S()
	inner := w.width - s.Modal.GetHorizontalFrameSize()

	var b strings.Builder
	title := s.ModalTitle.Render("New Analysis")
	closeHint := s.Muted.Render("esc ✕")
	b.WriteString(title + strings.Repeat(" ", max(1, inner-lipgloss.Width(title)-lipgloss.Width(closeHint))) + closeHint)
	b.WriteString("\n\n")
	b.WriteString(w.renderProgress(inner))
	b.WriteString("\n\n")

	step := w.ctrl.Step()
	b.WriteString(s.Title.Render(step.Title) + "\n")
	b.WriteString(s.Muted.Render(step.Description) + "\n\n")

	fields := w.ctrl.Fields()
	for i := 0; i < len(fields); i++ {
		f := fields[i]
		if partner, ok := fieldPairs[f]; ok && i+1 < len(fields) && fields[i+1] == partner {
			half := (inner - sectionGap) / 2
			pair := equalize([]string{
				w.renderField(f, half, w.focus == i),
				w.renderField(partner, inner-sectionGap-half, w.focus == i+1),
			})
			b.WriteString(joinRow(pair...) + "\n")
			i++
			continue
		}
		b.WriteString(w.renderField(f, inner, w.focus == i) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(inner, lipgloss.Right, w.renderButtons()))

	return s.Modal.Width(w.width).Render(b.String())
}

// renderProgress draws one segment per step, filled up to the current one,
// with the step titles underneath.
func (w *WizardModal) renderProgress(width int) string {
	t := theme.Current()
	s := t.S()
	progress := w.ctrl.Progress()
	n := len(progress)
	segW := max(1, (width-(n-1))/n)

	bars := make([]string, n)
	titles := make([]string, n)
	for i, filled := range progress {
		seg := strings.Repeat("━", segW)
		if filled {
			bars[i] = theme.Gradient(seg, t.Primary, t.Secondary)
		} else {
			bars[i] = s.ProgressEmpty.Render(seg)
		}

		label := ansi.Truncate(analysis.StepAt(i).Title, segW, "…")
		label += strings.Repeat(" ", segW-ansi.StringWidth(label))
		if i == w.ctrl.Position() {
			titles[i] = s.StepActive.Render(label)
		} else {
			titles[i] = s.StepInactive.Render(label)
		}
	}
	return strings.Join(bars, " ") + "\n" + strings.Join(titles, " ")
}

func (w *WizardModal) renderField(f analysis.Field, width int, focused bool) string {
	s := theme.Current().S()
	c := w.ctrl.Criteria()

	box := s.Input
	if focused {
		box = s.InputFocused
	}
	reason := w.errs.For(f)
	if reason != "" {
		box = s.InputInvalid
	}
	innerW := max(1, width-box.GetHorizontalFrameSize())

	var value string
	switch f {
	case analysis.FieldAgeRange:
		value = selector(c.AgeRange.Label(), focused)
	case analysis.FieldPurchaseFrequency:
		value = selector(c.PurchaseFrequency.Label(), focused)
	default:
		in := w.inputs[f]
		in.SetWidth(innerW)
		value = in.View()
	}

	out := s.Label.Render(f.Label()) + "\n" + box.Width(width).Render(value)
	if reason != "" {
		out += "\n" + s.Error.Render(ansi.Truncate("✗ "+reason, width, "…"))
	}
	return out
}

// selector renders a cycling option as "‹ value ›".
func selector(label string, focused bool) string {
	s := theme.Current().S()
	arrow := s.Muted
	if focused {
		arrow = s.Accent
	}
	return arrow.Render("‹ ") + s.Text.Render(label) + arrow.Render(" ›")
}

func (w *WizardModal) renderButtons() string {
	s := theme.Current().S()
	focused := w.focusedButton()

	var parts []string
	for _, label := range w.buttons() {
		style := s.ButtonPrimary
		if label == analysis.LabelPrevious {
			style = s.ButtonSecondary
		}
		if label == focused {
			style = s.ButtonFocused
		}
		parts = append(parts, style.Render(label))
	}
	return strings.Join(parts, "  ")
}
