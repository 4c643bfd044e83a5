// Package planui provides the Bubble Tea plan browser.
package planui

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verrev/revise/internal/model"
	"github.com/verrev/revise/internal/report"
)

const (
	tabOverview = iota
	tabShots
	tabHistory
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	shotTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
)

// Data carries everything the browser displays. Plans are ordered by shot.
type Data struct {
	User           string
	Plans          []model.SessionPlan
	Insights       report.RunInsights
	StartingScores map[string]float64
	Grades         map[string]float64
	History        []model.HistoryEntry
	Params         model.SessionParameters
	DryRun         bool
}

// Model implements the Bubble Tea plan browser.
type Model struct {
	data Data

	tabs         []string
	activeTab    int
	viewports    []viewport.Model
	historyTable table.Model
	historyBuilt bool

	width  int
	height int
}

// NewModel constructs a plan browser over an already generated run.
func NewModel(data Data) *Model {
	m := &Model{
		data: data,
		tabs: []string{"Overview", "Shots", "History"},
	}
	m.initViewports()
	m.initHistoryTable()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderTabContents()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			return m, tea.Quit
		}
		if m.activeTab == tabHistory {
			m.historyTable.Focus()
		} else {
			m.historyTable.Blur()
		}
		switch msg.String() {
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "g", "home":
			if m.activeTab == tabHistory {
				m.historyTable.GotoTop()
			} else {
				m.viewports[m.activeTab].GotoTop()
			}
			return m, nil
		case "G", "end":
			if m.activeTab == tabHistory {
				m.historyTable.GotoBottom()
			} else {
				m.viewports[m.activeTab].GotoBottom()
			}
			return m, nil
		default:
			if m.activeTab == tabHistory {
				var cmd tea.Cmd
				m.historyTable, cmd = m.historyTable.Update(msg)
				return m, cmd
			}
			vp := m.viewports[m.activeTab]
			var cmd tea.Cmd
			vp, cmd = vp.Update(msg)
			m.viewports[m.activeTab] = vp
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(bodyHeight), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) initViewports() {
	m.viewports = make([]viewport.Model, len(m.tabs))
	for i := range m.viewports {
		m.viewports[i] = viewport.New(0, 0)
	}
}

func (m *Model) initHistoryTable() {
	cols, rows := buildHistoryTableData(m.data.History)
	t := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithHeight(1),
	)
	t.SetStyles(historyTableStyles())
	m.historyTable = t
	m.historyBuilt = len(rows) > 0
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(activeNavStyle.Render("X"))
	if tabsHeight < 1 {
		tabsHeight = 1
	}
	headerHeight = tabsHeight + 1
	footerHeight = 1
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, vpHeight, _ := m.layoutHeights()
	for i := range m.viewports {
		m.viewports[i].Width = m.width
		m.viewports[i].Height = vpHeight
	}
	m.historyTable.SetWidth(m.width)
	m.historyTable.SetHeight(maxInt(1, vpHeight-1))
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	if count == 0 {
		return
	}
	next := m.activeTab + delta
	if next < 0 {
		next = count - 1
	}
	if next >= count {
		next = 0
	}
	m.activeTab = next
	if m.activeTab == tabHistory {
		m.historyTable.Focus()
	} else {
		m.historyTable.Blur()
	}
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	tabs := padLines(m.renderTabs(), m.width)
	summary := padLines(m.renderRunSummary(), m.width)
	return tabs + "\n" + summary
}

func (m *Model) renderRunSummary() string {
	mode := "saved"
	if m.data.DryRun {
		mode = "dry run"
	}
	summary := fmt.Sprintf("Run: user=%s  sessions=%d  session-time=%dm  break-time=%dm  shots=%d  mode=%s",
		m.data.User, m.data.Params.Count, m.data.Params.SessionTime, m.data.Params.BreakTime, m.data.Params.Shots, mode)
	summary = truncateLine(summary, m.width)
	return headerStyle.Render(summary)
}

func (m *Model) renderFooter() string {
	return headerStyle.Render("Nav: left/right  Scroll: up/down/pgup/pgdn  Top/bottom: g/G  Quit: q")
}

func (m *Model) renderBody(height int) string {
	if m.activeTab == tabHistory {
		if !m.historyBuilt {
			return fitLines("No history found.", m.width, height)
		}
		view := tableMutedStyle.Render(m.historyTable.View())
		return fitLines(view, m.width, height)
	}
	return fitLines(m.viewports[m.activeTab].View(), m.width, height)
}

func (m *Model) renderTabContents() {
	if len(m.viewports) == 0 {
		return
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.viewports[tabOverview].SetContent(renderOverview(m.data, width))
	m.viewports[tabShots].SetContent(renderShots(m.data.Plans, width))
}

func renderOverview(data Data, width int) string {
	if len(data.Plans) == 0 {
		return "No sessions generated."
	}
	cards := renderSummaryCards(data.Insights, data.Params, width)
	bars := renderScoreSection(data.StartingScores, width)
	grades := renderGradeSection(data.Grades)
	sections := []string{cards}
	if bars != "" {
		sections = append(sections, bars)
	}
	if grades != "" {
		sections = append(sections, grades)
	}
	return strings.TrimRight(strings.Join(sections, "\n\n"), "\n")
}

func renderSummaryCards(insights report.RunInsights, params model.SessionParameters, width int) string {
	streak := insights.LongestStreakSubject
	if streak == "" {
		streak = "N/A"
	}
	cards := []string{
		metricCard("Sessions", fmt.Sprintf("%d", insights.TotalSessions)),
		metricCard("Subjects", fmt.Sprintf("%d", insights.UniqueSubjects)),
		metricCard("Shots", fmt.Sprintf("%d", insights.Shots)),
		metricCard("Longest streak", fmt.Sprintf("%s x%d", streak, insights.LongestStreak)),
		metricCard("Suggested cap", fmt.Sprintf("%d (now %d)", insights.RecommendedSessionCap, params.Count)),
	}
	if width < 80 {
		return strings.Join(cards, "\n")
	}
	row1 := lipgloss.JoinHorizontal(lipgloss.Top, cards[0], cards[1], cards[2])
	row2 := lipgloss.JoinHorizontal(lipgloss.Top, cards[3], cards[4])
	return lipgloss.JoinVertical(lipgloss.Left, row1, row2)
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func renderScoreSection(scores map[string]float64, width int) string {
	if len(scores) == 0 {
		return ""
	}
	var buf bytes.Buffer
	if err := report.RenderScoreBars(&buf, "Starting scores (lowest is scheduled first):", scores, width, true); err != nil {
		return fmt.Sprintf("Failed to render scores: %v", err)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func renderGradeSection(grades map[string]float64) string {
	if len(grades) == 0 {
		return ""
	}
	var buf bytes.Buffer
	if err := report.RenderGradesTable(&buf, grades); err != nil {
		return fmt.Sprintf("Failed to render grades: %v", err)
	}
	return "Predicted grades:\n" + strings.TrimRight(buf.String(), "\n")
}

func renderShots(plans []model.SessionPlan, width int) string {
	if len(plans) == 0 {
		return "No sessions generated."
	}
	sections := make([]string, 0, len(plans))
	for i, plan := range plans {
		var b strings.Builder
		b.WriteString(shotTitleStyle.Render(fmt.Sprintf("Shot %d", i+1)))
		b.WriteByte('\n')
		for j, subject := range plan.Subjects {
			b.WriteString(truncateLine(fmt.Sprintf("%d. %s", j+1, subject), width))
			b.WriteByte('\n')
		}
		b.WriteString(headerStyle.Render(renderShotEntries(plan.NewEntries)))
		sections = append(sections, strings.TrimRight(b.String(), "\n"))
	}
	return strings.Join(sections, "\n\n")
}

func renderShotEntries(entries []model.HistoryEntry) string {
	revised := make([]string, 0, len(entries))
	penalised := make([]string, 0, len(entries))
	for _, entry := range entries {
		switch entry.Type {
		case model.EntryTypeRevision:
			revised = append(revised, entry.Subject)
		case model.EntryTypeNotStudied:
			penalised = append(penalised, entry.Subject)
		}
	}
	sort.Strings(penalised)
	line := fmt.Sprintf("Revised: %s", strings.Join(revised, ", "))
	if len(penalised) > 0 {
		line += fmt.Sprintf("  Skipped: %s", strings.Join(penalised, ", "))
	}
	return line
}

func buildHistoryTableData(entries []model.HistoryEntry) ([]table.Column, []table.Row) {
	columns := []table.Column{
		{Title: "Date", Width: 10},
		{Title: "Subject", Width: 24},
		{Title: "Type", Width: 12},
		{Title: "Score", Width: 7},
	}
	rows := make([]table.Row, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, table.Row{
			entry.Date,
			entry.Subject,
			entry.Type,
			fmt.Sprintf("%.1f", entry.Score),
		})
	}
	return columns, rows
}

func historyTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func padLines(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
