// Package display provides the terminal UI using Bubble Tea.
//
// The [UI] type manages a persistent status bar (signed-in user, page
// window, active filters) and an input prompt at the bottom of the
// terminal. All application output is printed above the rendered area
// via Program.Println / Printf, ensuring concurrent writes never garble
// the display.
package display

import (
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/cookbook/internal/catalog"
	"github.com/hammamikhairi/cookbook/internal/domain"
)

// ── Styles ───────────────────────────────────────────────────────

var (
	barBg = lipgloss.NewStyle().
		Background(lipgloss.Color("#27272a")).
		Foreground(lipgloss.Color("#a1a1aa"))

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bbf7d0"))

	anonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a")).
			Italic(true)

	pageCurrentStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#fde68a")).
				Bold(true)

	pageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a1a1aa"))

	filterStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bae6fd"))

	sepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#52525b"))

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8"))

	// ── Output styles (soft palette) ──

	// BannerStyle — muted slate for the startup banner.
	BannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8"))

	// Headings — soft mint for recipe titles and section headers.
	headingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bbf7d0"))

	// Primary text — light zinc for recipe lines.
	primaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4d4d8"))

	// Secondary text — dimmed zinc for hints, tips, metadata.
	secondaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a"))

	// Urgent — soft coral for errors/alerts.
	urgentOutputStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#fca5a5"))

	favStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fde68a"))

	userInputEchoStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#a1a1aa"))
)

// Status is the snapshot the bar renders. The UI polls StatusFunc once a
// second rather than having every mutation push updates.
type Status struct {
	User   string // display name, empty when signed out
	Page   int
	Total  int // total pages
	Window catalog.Window
	Filter domain.FilterState
}

// ── UI ───────────────────────────────────────────────────────────

// UI manages the terminal through Bubble Tea.
//
// Call [NewUI] then [UI.Run] (blocking). Other goroutines may safely
// call [UI.Println], [UI.Printf], and read from [UI.InputChan] at any
// time after [UI.WaitReady] returns.
type UI struct {
	program  *tea.Program
	inputCh  chan string
	readyCh  chan struct{}
	quitCh   chan struct{}
	statusFn func() Status
	done     atomic.Bool
}

// NewUI creates the display. statusFn supplies the bar content; it must
// be safe to call from the UI goroutine. Call Run() to start.
func NewUI(statusFn func() Status) *UI {
	return &UI{
		statusFn: statusFn,
		inputCh:  make(chan string, 16),
		readyCh:  make(chan struct{}),
		quitCh:   make(chan struct{}),
	}
}

// Println prints a line above the prompt. Thread-safe.
// If the program hasn't started yet, falls back to fmt.Println.
func (u *UI) Println(a ...interface{}) {
	if u.program != nil && !u.done.Load() {
		u.program.Println(a...)
	} else {
		fmt.Println(a...)
	}
}

// Printf prints formatted text above the prompt. Thread-safe.
// The output is printed on its own line (a trailing newline in the
// format string will produce an extra blank line).
func (u *UI) Printf(format string, a ...interface{}) {
	if u.program != nil && !u.done.Load() {
		u.program.Printf(format, a...)
	} else {
		fmt.Printf(format, a...)
	}
}

// InputChan returns completed user-input lines.
func (u *UI) InputChan() <-chan string { return u.inputCh }

// ── Styled print helpers ─────────────────────────────────────────
// These give output visual hierarchy with lipgloss colors.

// PrintHeading prints a section or recipe title line.
func (u *UI) PrintHeading(text string) {
	u.Println(headingStyle.Render("  " + text))
}

// PrintLine prints a primary content line.
func (u *UI) PrintLine(text string) {
	u.Println(primaryStyle.Render("  " + text))
}

// PrintHint prints a secondary/dimmed line.
func (u *UI) PrintHint(text string) {
	u.Println(secondaryStyle.Render("  " + text))
}

// PrintError prints an error line.
func (u *UI) PrintError(text string) {
	u.Println(urgentOutputStyle.Render("  " + text))
}

// PrintRecipeRow prints one browse-list row: index, favorite marker,
// title, and dimmed metadata.
func (u *UI) PrintRecipeRow(index int, r *domain.Recipe, favorited bool) {
	marker := "  "
	if favorited {
		marker = favStyle.Render("♥ ")
	}
	meta := fmt.Sprintf("%s · %s · %s · %dm", r.Cuisine, r.Category, r.Difficulty, r.PrepTime+r.CookTime)
	u.Println(fmt.Sprintf("  %s%s %s  %s",
		marker,
		secondaryStyle.Render(fmt.Sprintf("%2d.", index)),
		primaryStyle.Render(r.Title),
		secondaryStyle.Render(meta)))
}

// PrintUserInput echoes the user's typed command into the scrollback.
func (u *UI) PrintUserInput(text string) {
	u.Println(promptStyle.Render("cookbook") + secondaryStyle.Render("> ") + userInputEchoStyle.Render(text))
}

// WaitReady blocks until the Bubble Tea event loop is running.
func (u *UI) WaitReady() { <-u.readyCh }

// Quit tells Bubble Tea to exit.
func (u *UI) Quit() {
	if u.program != nil {
		u.program.Quit()
	}
}

// QuitChan is closed when Run returns.
func (u *UI) QuitChan() <-chan struct{} { return u.quitCh }

// Run starts the Bubble Tea event loop. Blocks until quit.
func (u *UI) Run() error {
	ti := textinput.New()
	// Use a plain-text prompt so the textinput width math stays correct.
	// Lipgloss-styled prompts add invisible ANSI bytes that break the
	// internal offset/scroll calculations for long input.
	ti.Prompt = "cookbook> "
	ti.PromptStyle = promptStyle
	ti.TextStyle = userInputEchoStyle
	ti.Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#94a3b8"))
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60 // updated on first WindowSizeMsg

	m := model{
		statusFn: u.statusFn,
		input:    ti,
		inputCh:  u.inputCh,
		readyCh:  u.readyCh,
		echoFn: func(v string) {
			u.PrintUserInput(v)
		},
	}

	u.program = tea.NewProgram(m)
	_, err := u.program.Run()
	u.done.Store(true)
	close(u.quitCh)
	return err
}

// ── Bubble Tea model ─────────────────────────────────────────────

type model struct {
	statusFn func() Status
	input    textinput.Model
	inputCh  chan<- string
	readyCh  chan struct{}
	echoFn   func(string) // prints user input into scrollback
	status   Status
	width    int
}

// Messages.
type tickMsg time.Time

func (m model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		tickCmd(),
		signalReady(m.readyCh),
	)
}

func signalReady(ch chan struct{}) tea.Cmd {
	return func() tea.Msg {
		close(ch)
		return nil
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEnter:
			v := m.input.Value()
			m.input.Reset()
			if strings.TrimSpace(v) != "" {
				m.inputCh <- v
				// Return a Cmd that prints the echo — this runs
				// outside Update so it won't deadlock on msgs.
				echoFn := m.echoFn
				return m, func() tea.Msg {
					echoFn(v)
					return nil
				}
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		// Let the text input use the full width minus the prompt ("cookbook> " = 10 chars).
		const promptLen = 10
		if msg.Width > promptLen {
			m.input.Width = msg.Width - promptLen
		}
		return m, nil

	case tickMsg:
		if m.statusFn != nil {
			m.status = m.statusFn()
		}
		return m, tea.Batch(tickCmd(), tea.SetWindowTitle(m.titleStr()))
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) titleStr() string {
	if m.status.User == "" {
		return "CookBook"
	}
	return "CookBook — " + m.status.User
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(m.renderBar())
	b.WriteByte('\n')

	// Blank line before prompt for visual separation.
	b.WriteByte('\n')
	b.WriteString(m.input.View())
	return b.String()
}

func (m model) renderBar() string {
	var parts []string

	if m.status.User != "" {
		parts = append(parts, userStyle.Render(m.status.User))
	} else {
		parts = append(parts, anonStyle.Render("guest"))
	}

	parts = append(parts, m.renderPager())

	if f := renderFilter(m.status.Filter); f != "" {
		parts = append(parts, filterStyle.Render(f))
	}

	content := " " + strings.Join(parts, sepStyle.Render("  │  ")) + " "

	w := m.width
	if w <= 0 {
		w = 80
	}
	return barBg.Width(w).Render(content)
}

// renderPager draws the bounded page window: "1 … 4 [5] 6 … 12".
func (m model) renderPager() string {
	s := m.status
	if s.Total <= 0 {
		return pageStyle.Render("page -")
	}

	var parts []string
	if s.Window.ShowFirst {
		parts = append(parts, pageStyle.Render("1"))
	}
	if s.Window.GapBefore {
		parts = append(parts, sepStyle.Render("…"))
	}
	for _, p := range s.Window.Pages {
		n := strconv.Itoa(p)
		if p == s.Page {
			parts = append(parts, pageCurrentStyle.Render("["+n+"]"))
		} else {
			parts = append(parts, pageStyle.Render(n))
		}
	}
	if s.Window.GapAfter {
		parts = append(parts, sepStyle.Render("…"))
	}
	if s.Window.ShowLast {
		parts = append(parts, pageStyle.Render(strconv.Itoa(s.Total)))
	}
	return strings.Join(parts, " ")
}

// renderFilter summarizes the active constraints for the bar.
func renderFilter(f domain.FilterState) string {
	var parts []string
	if q := strings.TrimSpace(f.Query); q != "" {
		parts = append(parts, fmt.Sprintf("%q", q))
	}
	if v := strings.TrimSpace(f.Cuisine); v != "" {
		parts = append(parts, "cuisine="+v)
	}
	if v := strings.TrimSpace(f.Category); v != "" {
		parts = append(parts, "category="+v)
	}
	if v := strings.TrimSpace(f.Difficulty); v != "" {
		parts = append(parts, "difficulty="+v)
	}
	return strings.Join(parts, " ")
}
