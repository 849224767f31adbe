package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/lifeplan/internal/config"
	"github.com/theirongolddev/lifeplan/internal/model"
	"github.com/theirongolddev/lifeplan/internal/projection"
	"github.com/theirongolddev/lifeplan/internal/store"
	"github.com/theirongolddev/lifeplan/internal/tui/components"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestApp(t *testing.T) App {
	t.Helper()
	p := model.DefaultPlan()
	a := NewApp(Options{Plan: &p, Tables: config.DefaultCostTables()})
	m, _ := a.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m.(App)
}

func press(t *testing.T, a App, msgs ...tea.Msg) (App, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	var m tea.Model = a
	for _, msg := range msgs {
		m, cmd = m.(App).Update(msg)
	}
	return m.(App), cmd
}

func TestTabAtXMatchesTabWidths(t *testing.T) {
	for active := range components.Tabs {
		a := App{activeTab: active}
		pos := 0
		for i, tab := range components.Tabs {
			w := lenName(tab) + 2
			if got := a.tabAtX(pos + w/2); got != i {
				t.Fatalf("active=%d x=%d -> tab=%d, want %d", active, pos+w/2, got, i)
			}
			pos += w + 1
		}
		if got := a.tabAtX(pos + 5); got != -1 {
			t.Fatalf("x past the last tab -> %d, want -1", got)
		}
	}
}

func lenName(tab components.Tab) int {
	return len(tab.Name)
}

func TestNewApp_ProjectsPlan(t *testing.T) {
	a := newTestApp(t)
	require.Len(t, a.snaps, model.MaxAge-30+1)
	assert.Equal(t, projection.Summarize(a.snaps), a.summary)
	assert.False(t, a.needSetup)
}

func TestNewApp_WithoutPlanStartsWizard(t *testing.T) {
	a := NewApp(Options{})
	assert.True(t, a.needSetup)
	require.NotNil(t, a.setupForm)
	// The starter plan is projected behind the wizard.
	assert.NotEmpty(t, a.snaps)
}

func TestKeys_SwitchTabs(t *testing.T) {
	a := newTestApp(t)

	a, _ = press(t, a, runes("f"))
	assert.Equal(t, tabCashFlow, a.activeTab)
	a, _ = press(t, a, runes("t"))
	assert.Equal(t, tabTarget, a.activeTab)
	a, _ = press(t, a, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, tabOverview, a.activeTab)
	a, _ = press(t, a, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, tabTarget, a.activeTab)
}

func TestKeys_Quit(t *testing.T) {
	_, cmd := press(t, newTestApp(t), runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestKeys_RetirementAgeRecomputes(t *testing.T) {
	a := newTestApp(t)
	before := a.summary.LifetimeIncome

	a, _ = press(t, a, runes("]"))
	assert.Equal(t, 66, a.plan.Primary.RetirementAge)
	assert.NotEqual(t, before, a.summary.LifetimeIncome)
	assert.Contains(t, a.flash, "66")

	a, _ = press(t, a, runes("["), runes("["))
	assert.Equal(t, 64, a.plan.Primary.RetirementAge)
}

func TestCashFlowScroll(t *testing.T) {
	a := newTestApp(t)
	a, _ = press(t, a, runes("f"), runes("j"), runes("j"))
	assert.Equal(t, 2, a.flow.offset)

	a, _ = press(t, a, runes("k"), runes("k"), runes("k"))
	assert.Equal(t, 0, a.flow.offset)

	a, _ = press(t, a, runes("G"))
	assert.Equal(t, len(a.snaps)-a.pageSize(), a.flow.offset)

	a, _ = press(t, a, runes("g"))
	assert.Equal(t, 0, a.flow.offset)
}

func TestTargetEditAndSolve(t *testing.T) {
	a := newTestApp(t)
	a, _ = press(t, a, runes("t"), runes("e"))
	require.True(t, a.target.editing)

	a, cmd := press(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, a.target.solving)
	assert.False(t, a.target.editing)

	q := store.Query{
		Plan:       a.plan,
		Target:     projection.Target{Age: 60, Asset: 100_000_000},
		Tables:     a.opts.Tables,
		Iterations: projection.DefaultIterations,
		UpperBound: projection.DefaultUpperBound,
	}
	msg := solveCmd(nil, q)()
	a, _ = press(t, a, msg)
	assert.False(t, a.target.solving)
	require.NotNil(t, a.target.solution)
	assert.Equal(t, projection.Solve(a.plan, q.Target, q.Tables), *a.target.solution)

	view := a.View()
	assert.Contains(t, view, "Answer")
}

func TestTargetEdit_RejectsBadAge(t *testing.T) {
	a := newTestApp(t)
	a, _ = press(t, a, runes("t"), runes("e"))
	a.target.inputs[targetFieldAge].SetValue("abc")

	a, _ = press(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, a.target.editing)
	assert.False(t, a.target.solving)
	assert.Contains(t, a.target.err, "age")

	a, _ = press(t, a, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, a.target.editing)
}

func TestView(t *testing.T) {
	a := newTestApp(t)
	view := a.View()
	assert.Contains(t, view, "Overview")
	assert.Contains(t, view, "Total assets by age")
	assert.Len(t, strings.Split(view, "\n"), 40)

	narrow, _ := press(t, a, tea.WindowSizeMsg{Width: 60, Height: 20})
	assert.Contains(t, narrow.View(), "too narrow")

	help, _ := press(t, a, runes("?"))
	assert.Contains(t, help.View(), "Keyboard Shortcuts")
}

func TestPlanValues_DefaultsRoundTrip(t *testing.T) {
	p, err := DefaultPlanValues().Plan()
	require.NoError(t, err)

	want := model.DefaultPlan()
	assert.Equal(t, want.Primary, p.Primary)
	assert.Equal(t, want.Housing, p.Housing)
	assert.Equal(t, want.Assets.Cash, p.Assets.Cash)
	assert.Equal(t, want.Assets.Recurring.MonthlyAmount, p.Assets.Recurring.MonthlyAmount)
	assert.Equal(t, 35, p.Assets.Recurring.DurationYears)
	assert.Nil(t, p.Spouse)
	assert.Empty(t, p.Children)
}

func TestPlanValues_Household(t *testing.T) {
	v := DefaultPlanValues()
	v.Age = "35"
	v.Spouse = true
	v.Children = "2"
	v.Salary = "650.5"
	v.Name = "  Sato family "

	p, err := v.Plan()
	require.NoError(t, err)
	assert.Equal(t, "Sato family", p.Name)
	require.NotNil(t, p.Spouse)
	assert.Equal(t, 35, p.Spouse.CurrentAge)
	require.Len(t, p.Children, 2)
	assert.Equal(t, "Child 2", p.Children[1].Name)
	assert.InDelta(t, 6_505_000, p.Primary.Salary, 1e-6)
}

func TestPlanValues_Rejects(t *testing.T) {
	v := DefaultPlanValues()
	v.Cash = "lots"
	_, err := v.Plan()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cash")

	v = DefaultPlanValues()
	v.Housing = "castle"
	_, err = v.Plan()
	var verr *model.ValidationError
	assert.ErrorAs(t, err, &verr)

	assert.Error(t, validAge("101"))
	assert.NoError(t, validAge("40"))
	assert.Error(t, validAmount("-1"))
	assert.NoError(t, validRate("2.5%"))
}
