// Package tui provides the interactive Bubble Tea dashboard for lifeplan.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/lifeplan/internal/config"
	"github.com/theirongolddev/lifeplan/internal/model"
	"github.com/theirongolddev/lifeplan/internal/planfile"
	"github.com/theirongolddev/lifeplan/internal/projection"
	"github.com/theirongolddev/lifeplan/internal/store"
	"github.com/theirongolddev/lifeplan/internal/tui/components"
	"github.com/theirongolddev/lifeplan/internal/tui/theme"
)

const (
	tabOverview = iota
	tabCashFlow
	tabTarget
)

const (
	minTerminalWidth = 80
	maxContentWidth  = 160
	minContentHeight = 5

	solveTimeout = 30 * time.Second
)

// Options configures a dashboard.
type Options struct {
	Plan       *model.HouseholdPlan // nil starts the plan wizard
	PlanPath   string               // where "s" and the wizard save the plan
	Tables     config.CostTables
	Cache      store.Cache
	Iterations int
	UpperBound float64
}

// solvedMsg carries a finished target search.
type solvedMsg struct {
	Target   projection.Target
	Solution projection.Solution
	Cached   bool
	CacheErr error
}

// App is the root Bubble Tea model.
type App struct {
	opts Options

	plan    model.HouseholdPlan
	snaps   []model.YearlySnapshot
	summary projection.Summary

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	flash     string

	flow   cashFlowState
	target targetState

	spinner spinner.Model

	// Plan wizard (huh form), shown when no plan was given
	setupForm *huh.Form
	setupVals PlanValues
	needSetup bool
}

// NewApp creates a new TUI app model.
func NewApp(opts Options) App {
	if opts.Tables.Education == nil {
		opts.Tables = config.DefaultCostTables()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	a := App{
		opts:    opts,
		spinner: sp,
		target:  newTargetState(),
	}

	if opts.Plan == nil {
		a.needSetup = true
		a.setupVals = DefaultPlanValues()
		a.setupForm = NewPlanForm(&a.setupVals)
		a.plan = model.DefaultPlan()
	} else {
		a.plan = opts.Plan.Clone()
	}
	a.recompute()
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.EnableMouseCellMotion}
	if a.setupForm != nil {
		cmds = append(cmds, a.setupForm.Init())
	}
	return tea.Batch(cmds...)
}

func (a *App) recompute() {
	a.snaps = projection.Project(a.plan, a.opts.Tables)
	a.summary = projection.Summarize(a.snaps)
	a.flow.clamp(len(a.snaps))
	// Any earlier answer was for a different plan.
	a.target.solution = nil
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		if a.showHelp || a.needSetup {
			return a, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			if a.activeTab == tabCashFlow {
				a.flow.scroll(-1, len(a.snaps))
			}
		case tea.MouseButtonWheelDown:
			if a.activeTab == tabCashFlow {
				a.flow.scroll(1, len(a.snaps))
			}
		case tea.MouseButtonLeft:
			if msg.Y == 0 {
				if tab := a.tabAtX(msg.X); tab >= 0 {
					a.activeTab = tab
				}
			}
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()
		if key == "ctrl+c" {
			return a, tea.Quit
		}

		if a.needSetup && a.setupForm != nil {
			return a.updateSetupForm(msg)
		}

		if a.activeTab == tabTarget && a.target.editing {
			return a.updateTargetInput(msg)
		}

		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}
		a.flash = ""

		switch key {
		case "q":
			return a, tea.Quit
		case "left", "shift+tab":
			a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
			return a, nil
		case "right", "tab":
			a.activeTab = (a.activeTab + 1) % len(components.Tabs)
			return a, nil
		case "[", "]":
			delta := 1
			if key == "[" {
				delta = -1
			}
			a.plan.Primary.RetirementAge = max(a.plan.Primary.CurrentAge, a.plan.Primary.RetirementAge+delta)
			a.recompute()
			a.flash = fmt.Sprintf("retirement age %d", a.plan.Primary.RetirementAge)
			return a, nil
		case "T":
			next := theme.Next()
			theme.SetActive(next.Name)
			a.flash = "theme " + next.Name
			return a, nil
		case "s":
			a.flash = a.savePlan()
			return a, nil
		}

		if len(key) == 1 {
			if idx := components.TabIdxByKey(rune(key[0])); idx >= 0 {
				a.activeTab = idx
				return a, nil
			}
		}

		switch a.activeTab {
		case tabCashFlow:
			a.flow.handleKey(key, len(a.snaps), a.pageSize())
		case tabTarget:
			if key == "enter" || key == "e" {
				return a.startTargetEdit()
			}
		}
		return a, nil

	case solvedMsg:
		a.target.solving = false
		sol := msg.Solution
		a.target.solution = &sol
		a.target.solved = msg.Target
		a.target.cached = msg.Cached
		if msg.CacheErr != nil {
			a.flash = "cache unavailable: " + msg.CacheErr.Error()
		}
		return a, nil

	case spinner.TickMsg:
		if a.target.solving {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	// Forward unhandled messages to the wizard (cursor blinks, etc.)
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	if a.target.editing {
		return a.updateTargetInput(msg)
	}
	return a, nil
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		plan, err := a.setupVals.Plan()
		if err != nil {
			a.flash = "plan not applied: " + err.Error()
		} else {
			a.plan = plan
			a.recompute()
			a.flash = a.savePlan()
		}
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	case huh.StateAborted:
		// Fall back to the starter plan.
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}
	return a, cmd
}

func (a App) savePlan() string {
	if a.opts.PlanPath == "" {
		return "no plan path configured"
	}
	if err := planfile.Save(a.opts.PlanPath, a.plan); err != nil {
		return "save failed: " + err.Error()
	}
	return "saved " + a.opts.PlanPath
}

func solveCmd(c store.Cache, q store.Query) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), solveTimeout)
		defer cancel()
		sol, hit, err := store.Solve(ctx, c, q)
		return solvedMsg{Target: q.Target, Solution: sol, Cached: hit, CacheErr: err}
	}
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

func (a App) pageSize() int {
	return max(1, a.height-8)
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if a.needSetup && a.setupForm != nil {
		return a.setupForm.View()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(5, a.height)
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  lifeplan needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)
	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")

	bindings := []struct{ key, desc string }{
		{"o f t", "Jump to tab"},
		{"← →", "Previous / Next tab"},
		{"j k", "Scroll the cash flow table"},
		{"g G", "First / last year"},
		{"e Enter", "Edit the target"},
		{"[ ]", "Retire a year earlier / later"},
		{"s", "Save the plan"},
		{"T", "Next theme"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}
	for _, bind := range bindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-8s", bind.key)),
			descStyle.Render(bind.desc))
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.activeTab, w)

	hints := "[?]help  [q]uit"
	if a.flash != "" {
		hints = a.flash
	}
	info := fmt.Sprintf("age %d → %d · retire %d",
		a.plan.Primary.CurrentAge, model.MaxAge, a.plan.Primary.RetirementAge)
	statusBar := components.RenderStatusBar(w, hints, info)

	contentH := max(minContentHeight, h-lipgloss.Height(header)-lipgloss.Height(statusBar))

	var content string
	switch a.activeTab {
	case tabOverview:
		content = a.renderOverviewTab(cw)
	case tabCashFlow:
		content = a.renderCashFlowTab(cw, contentH)
	case tabTarget:
		content = a.renderTargetTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Helpers ────────────────────────────────────────────────────

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
	}
	return strings.Join(lines, "\n")
}

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes follow the widths RenderTabBar draws.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW + 1 // separator
	}
	return -1
}
