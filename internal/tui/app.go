package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/user/jobboard/internal/listing"
	"github.com/user/jobboard/internal/posting"
	"github.com/user/jobboard/internal/session"
)

type model struct {
	ctx         context.Context
	session     *session.Session
	searchInput textinput.Model
	cursor      int
	width       int
	height      int
	searching   bool
}

// card is one row of the listing. The same posting can appear twice, once
// per section.
type card struct {
	posting  posting.Posting
	promoted bool
}

type loadedMsg session.Loaded

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62"))

	searchStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	promotedSectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("214"))

	cardTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	overlayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("212")).
			Padding(1, 2)
)

func initialModel(ctx context.Context, sess *session.Session) model {
	ti := textinput.New()
	ti.Placeholder = "Search by Job Title"
	ti.CharLimit = 256
	ti.Width = 50

	return model{
		ctx:         ctx,
		session:     sess,
		searchInput: ti,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.load(),
	)
}

// load starts the session's one fetch. The result comes back as a
// loadedMsg so Apply runs on the update loop.
func (m model) load() tea.Cmd {
	run := m.session.Start(m.ctx)
	if run == nil {
		return nil
	}
	return func() tea.Msg {
		return loadedMsg(run())
	}
}

func (m model) cards() []card {
	v := m.session.View()
	if v.Empty() {
		return nil
	}
	cards := make([]card, 0, len(v.Promoted)+len(v.Others))
	for _, p := range v.Promoted {
		cards = append(cards, card{posting: p, promoted: true})
	}
	for _, p := range v.Others {
		cards = append(cards, card{posting: p})
	}
	return cards
}

func (m *model) moveCursor(delta int) {
	n := len(m.cards())
	if n == 0 {
		m.cursor = 0
		return
	}
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= n {
		m.cursor = n - 1
	}
}

func (m *model) selectCursor() {
	cards := m.cards()
	if m.cursor < len(cards) {
		m.session.Select(cards[m.cursor].posting.ID)
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.session.State() == listing.Viewing {
			return m.updateDetail(msg)
		}
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateList(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.searchInput.Width = max(msg.Width-20, 10)

	case loadedMsg:
		m.session.Apply(session.Loaded(msg))
		m.moveCursor(0)
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		m.searching = false
		m.searchInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)

	// Filter on every keystroke
	if term := m.searchInput.Value(); term != m.session.SearchTerm() {
		m.session.SetSearchTerm(term)
		m.cursor = 0
	}
	return m, cmd
}

func (m model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "/":
		m.searching = true
		m.searchInput.Focus()
		return m, textinput.Blink
	case "j", "down":
		m.moveCursor(1)
	case "k", "up":
		m.moveCursor(-1)
	case "g":
		m.cursor = 0
	case "G":
		m.moveCursor(len(m.cards()))
	case "enter":
		m.selectCursor()
	case "p":
		m.session.OpenSubmit()
	}
	return m, nil
}

// updateDetail handles keys while the overlay is open. Moving the cursor
// switches the overlay to the card under it.
func (m model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "backspace":
		m.session.Dismiss()
	case "o":
		m.session.OpenLink()
	case "j", "down":
		m.moveCursor(1)
		m.selectCursor()
	case "k", "up":
		m.moveCursor(-1)
		m.selectCursor()
	}
	return m, nil
}

func (m model) View() string {
	if p, ok := m.session.Selected(); ok {
		return m.detailView(p)
	}

	var b strings.Builder

	b.WriteString(headerStyle.Render("Job Board"))
	b.WriteString("\n")
	b.WriteString(searchStyle.Render(m.searchInput.View()))
	b.WriteString("\n\n")

	lines, focus := m.listingLines()
	avail := m.height - 7
	b.WriteString(strings.Join(window(lines, focus, avail), "\n"))
	b.WriteString("\n")

	helpStyle := mutedStyle.MarginTop(1)
	help := "[j/k]nav [g/G]top/end [/]search [Enter]details [p]ost or promote [q]uit"
	if m.searching {
		help = "[Esc/Enter]done searching [ctrl+c]quit"
	}
	b.WriteString(helpStyle.Render(help))

	return b.String()
}

// listingLines renders both sections and returns the index of the line
// holding the cursor.
func (m model) listingLines() ([]string, int) {
	if m.session.Loading() {
		return []string{mutedStyle.Render("Loading jobs...")}, 0
	}
	cards := m.cards()
	if len(cards) == 0 {
		return []string{"No jobs found."}, 0
	}

	var lines []string
	focus := 0
	inOthers := false
	for i, c := range cards {
		if i == 0 && c.promoted {
			lines = append(lines, promotedSectionStyle.Render("Promoted Jobs"))
		}
		if !c.promoted && !inOthers {
			inOthers = true
			if i > 0 {
				lines = append(lines, "")
			}
			lines = append(lines, sectionStyle.Render("All Other Job Listings"))
		}

		marker := "  "
		title := cardTitleStyle.Render(displayTitle(c.posting))
		if i == m.cursor {
			marker = cursorStyle.Render("> ")
			focus = len(lines)
		}
		lines = append(lines, marker+title)
		if summary := cardSummary(c.posting); summary != "" {
			lines = append(lines, "  "+mutedStyle.Render(summary))
		}
	}
	return lines, focus
}

func (m model) detailView(p posting.Posting) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(displayTitle(p)))
	b.WriteString("\n\n")
	for _, f := range []struct{ label, value string }{
		{"Description", p.Description},
		{"Company", p.Company},
		{"Compensation", p.Compensation},
		{"Type", p.Type},
		{"Location", p.Location},
		{"Status", p.Status},
	} {
		fmt.Fprintf(&b, "%s: %s\n", f.label, f.value)
	}
	if p.Link != "" {
		b.WriteString(mutedStyle.Render(p.Link))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("[o]visit job link [j/k]next/prev [Esc]close"))

	box := overlayStyle
	if m.width > 10 {
		box = box.Width(min(m.width-4, 80))
	}
	rendered := box.Render(b.String())
	if m.width == 0 || m.height == 0 {
		return rendered
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, rendered)
}

func displayTitle(p posting.Posting) string {
	if p.Title == "" {
		return "(untitled)"
	}
	return p.Title
}

// cardSummary joins the card attributes, skipping empty ones.
func cardSummary(p posting.Posting) string {
	parts := make([]string, 0, 5)
	for _, v := range []string{p.Company, p.Compensation, p.Location, p.Status, p.Type} {
		if v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, " · ")
}

// window returns at most height lines around focus. A height <= 0 means the
// terminal size is not known yet.
func window(lines []string, focus, height int) []string {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	start := focus - height/2
	if start < 0 {
		start = 0
	}
	if start+height > len(lines) {
		start = len(lines) - height
	}
	return lines[start : start+height]
}

// Run starts the TUI for sess and loads it in the background.
func Run(ctx context.Context, sess *session.Session) error {
	p := tea.NewProgram(initialModel(ctx, sess), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
