package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/lifeplan/internal/cli"
	"github.com/theirongolddev/lifeplan/internal/model"
	"github.com/theirongolddev/lifeplan/internal/projection"
	"github.com/theirongolddev/lifeplan/internal/store"
	"github.com/theirongolddev/lifeplan/internal/tui/components"
	"github.com/theirongolddev/lifeplan/internal/tui/theme"
)

const (
	targetFieldAge = iota
	targetFieldAsset
	targetFieldCount
)

// targetState tracks the target tab inputs and the last answer.
type targetState struct {
	inputs  [targetFieldCount]textinput.Model
	focus   int
	editing bool
	solving bool
	err     string

	solution *projection.Solution
	solved   projection.Target
	cached   bool
}

func newTargetState() targetState {
	age := textinput.New()
	age.Placeholder = "60"
	age.CharLimit = 3
	age.Width = 6
	age.SetValue("60")

	asset := textinput.New()
	asset.Placeholder = "10000 (万円)"
	asset.CharLimit = 12
	asset.Width = 14
	asset.SetValue("10000")

	return targetState{inputs: [targetFieldCount]textinput.Model{age, asset}}
}

// parse reads the inputs as a target. The asset is entered in 万円.
func (s targetState) parse() (projection.Target, error) {
	age, err := parseInt(s.inputs[targetFieldAge].Value())
	if err != nil || age <= 0 || age > model.MaxAge {
		return projection.Target{}, fmt.Errorf("age must be a whole number from 1 to %d", model.MaxAge)
	}
	asset, err := parseMan(s.inputs[targetFieldAsset].Value())
	if err != nil || asset < 0 {
		return projection.Target{}, errors.New("target must be an amount in 万円")
	}
	return projection.Target{Age: age, Asset: asset}, nil
}

func (a App) startTargetEdit() (tea.Model, tea.Cmd) {
	a.target.editing = true
	a.target.err = ""
	a.target.focus = targetFieldAge
	for i := range a.target.inputs {
		a.target.inputs[i].Blur()
	}
	cmd := a.target.inputs[a.target.focus].Focus()
	return a, cmd
}

func (a App) updateTargetInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			a.target.editing = false
			a.target.inputs[a.target.focus].Blur()
			return a, nil
		case "tab", "down", "shift+tab", "up":
			a.target.inputs[a.target.focus].Blur()
			a.target.focus = (a.target.focus + 1) % targetFieldCount
			return a, a.target.inputs[a.target.focus].Focus()
		case "enter":
			target, err := a.target.parse()
			if err != nil {
				a.target.err = err.Error()
				return a, nil
			}
			a.target.editing = false
			a.target.inputs[a.target.focus].Blur()
			a.target.solving = true
			a.target.err = ""
			q := store.Query{
				Plan:       a.plan.Clone(),
				Target:     target,
				Tables:     a.opts.Tables,
				Iterations: a.opts.Iterations,
				UpperBound: a.opts.UpperBound,
			}
			return a, tea.Batch(solveCmd(a.opts.Cache, q), a.spinner.Tick)
		}
	}

	var cmd tea.Cmd
	a.target.inputs[a.target.focus], cmd = a.target.inputs[a.target.focus].Update(msg)
	return a, cmd
}

func (a App) renderTargetTab(cw int) string {
	t := theme.Active
	ts := a.target

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	hintStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	errStyle := lipgloss.NewStyle().Foreground(t.Loss).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)

	var form strings.Builder
	labels := [targetFieldCount]string{"Target age", "Target assets (万円)"}
	for i, in := range ts.inputs {
		form.WriteString(labelStyle.Render(labels[i] + strings.Repeat(" ", max(1, 22-lipgloss.Width(labels[i])))))
		form.WriteString(in.View())
		form.WriteString("\n")
	}
	switch {
	case ts.err != "":
		form.WriteString(errStyle.Render(ts.err))
	case ts.editing:
		form.WriteString(hintStyle.Render("[tab] next field  [enter] solve  [esc] cancel"))
	default:
		form.WriteString(hintStyle.Render("[e] edit target"))
	}

	var b strings.Builder
	b.WriteString(components.ContentCard("Savings target", form.String(), cw))
	b.WriteString("\n")

	var result strings.Builder
	switch {
	case ts.solving:
		result.WriteString(a.spinner.View())
		result.WriteString(labelStyle.Render(" Searching for the monthly saving..."))
	case ts.solution == nil:
		result.WriteString(hintStyle.Render("No target solved yet."))
	default:
		sol := *ts.solution
		result.WriteString(labelStyle.Render(fmt.Sprintf("%s by age %d\n\n", cli.FormatYen(ts.solved.Asset), ts.solved.Age)))

		switch {
		case sol.Reached && sol.MonthlySaving == 0:
			result.WriteString(valueStyle.Foreground(t.Gain).Render("Already on track, no extra saving needed"))
		case sol.Reached:
			result.WriteString(labelStyle.Render("Save an extra "))
			result.WriteString(valueStyle.Render(cli.FormatYen(float64(sol.MonthlySaving))))
			result.WriteString(labelStyle.Render(" every month"))
			result.WriteString("\n")
			result.WriteString(labelStyle.Render("  reaching " + cli.FormatMan(sol.Achieved)))
		default:
			result.WriteString(valueStyle.Foreground(t.Loss).Render("Out of reach within " +
				cli.FormatYen(a.upperBound()) + " a month"))
		}
		result.WriteString("\n\n")

		result.WriteString(labelStyle.Render("Without extra saving  "))
		result.WriteString(valueStyle.Render(cli.FormatMan(sol.Baseline)))
		result.WriteString("\n")
		if ts.solved.Asset > 0 {
			barW := max(10, components.CardInnerWidth(cw)-8)
			result.WriteString(components.ProgressBar(sol.Baseline/ts.solved.Asset, barW))
		}
		if ts.cached {
			result.WriteString("\n")
			result.WriteString(hintStyle.Render("answer from cache · " + strconv.Itoa(sol.Iterations) + " iterations"))
		}
	}
	b.WriteString(components.ContentCard("Answer", result.String(), cw))
	return b.String()
}

func (a App) upperBound() float64 {
	if a.opts.UpperBound > 0 {
		return a.opts.UpperBound
	}
	return projection.DefaultUpperBound
}
