package repl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/dfprop/cli/cmd/exprenv"
	"github.com/ardnew/dfprop/lang"
	"github.com/ardnew/dfprop/log"
)

const (
	evalPrompt     = "➜ "
	defaultWidth   = 80
	maxSuggestions = 8
)

func helpMessage() string {
	return `
Type an expression to evaluate it against the document.
Document keys are top-level names; builtins include env(), cwd(),
path.*, file.*, mung.* and the expr-lang functions.

Commands:
  :help     Print this message
  :keys     List the document keys
  :reload   Resolve the document again
  :clear    Clear the screen
  :quit     Exit

Keys:
  Tab / Shift-Tab   Cycle completion candidates
  Esc               Dismiss candidates
  Up / Down         Browse history
  Ctrl+C            Clear the line, or exit on an empty line
  Ctrl+D            Exit
`
}

// Styles.
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	inputStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	selectedStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
)

// formatCommand formats the echo of a submitted line.
func formatCommand(input string) string {
	return promptStyle.Render(evalPrompt) + inputStyle.Render(input)
}

// Loader resolves the document a REPL session evaluates against.
type Loader func(context.Context) (*lang.Map, error)

type config struct {
	logger  log.Logger
	history string
	in      io.Reader
	out     io.Writer
}

// Option configures [Run].
type Option func(config) config

// WithHistory persists submitted lines to the file at path.
func WithHistory(path string) Option {
	return func(c config) config {
		c.history = path

		return c
	}
}

// WithLogger sets the session logger.
func WithLogger(logger log.Logger) Option {
	return func(c config) config {
		c.logger = logger

		return c
	}
}

// WithIO replaces the terminal input and output.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(c config) config {
		c.in, c.out = in, out

		return c
	}
}

// model is the Bubble Tea model for the REPL.
type model struct {
	ctx          context.Context
	load         Loader
	logger       log.Logger
	input        textinput.Model
	doc          *lang.Map
	env          map[string]any
	history      *History
	historyIdx   int
	matches      fuzzy.Matches // current fuzzy match results
	wordStart    int           // byte offset of current word start
	wordEnd      int           // byte offset of current word end
	suggIdx      int           // selected candidate index
	tabActive    bool          // whether user is tab-cycling
	preTabText   string        // input text before tab-cycling began
	preTabCursor int           // cursor position before tab-cycling began
	width        int
	quitting     bool
}

// Run loads a document and starts an interactive session over it.
func Run(ctx context.Context, load Loader, opts ...Option) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	var cfg config
	for _, opt := range opts {
		cfg = opt(cfg)
	}

	if load == nil {
		return ErrNoLoader
	}

	history := NewHistory(cfg.history)
	if err := history.Load(); err != nil {
		cfg.logger.WarnContext(ctx, "history not loaded", slog.Any("error", err))
	}

	m, err := newModel(ctx, load, history, cfg.logger)
	if err != nil {
		return err
	}

	popts := []tea.ProgramOption{tea.WithContext(ctx)}
	if cfg.in != nil {
		popts = append(popts, tea.WithInput(cfg.in))
	}

	if cfg.out != nil {
		popts = append(popts, tea.WithOutput(cfg.out))
	}

	_, err = tea.NewProgram(m, popts...).Run()

	return err
}

func newModel(
	ctx context.Context,
	load Loader,
	history *History,
	logger log.Logger,
) (model, error) {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(evalPrompt)
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = defaultWidth

	m := model{
		ctx:        ctx,
		load:       load,
		logger:     logger,
		input:      ti,
		history:    history,
		historyIdx: history.Len(),
		width:      defaultWidth,
	}

	if err := m.reload(); err != nil {
		return model{}, err
	}

	return m, nil
}

// reload resolves the document and rebuilds the environment.
func (m *model) reload() error {
	doc, err := m.load(m.ctx)
	if err != nil {
		return err
	}

	m.doc = doc
	m.env = exprenv.Make(doc)

	m.logger.TraceContext(m.ctx, "repl document loaded",
		slog.Int("entries", doc.Len()))

	return nil
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(msg.Width-len(evalPrompt)-2, 1)

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlD:
		m.quitting = true

		return m, tea.Quit

	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.Reset()
		m.clearMatches()

		return m, nil

	case tea.KeyEnter:
		return m.submit()

	case tea.KeyTab:
		m.cycle(1)

		return m, nil

	case tea.KeyShiftTab:
		m.cycle(-1)

		return m, nil

	case tea.KeyEsc:
		if m.tabActive {
			m.input.SetValue(m.preTabText)
			m.input.SetCursor(m.preTabCursor)
		}

		m.clearMatches()

		return m, nil

	case tea.KeyUp:
		m.recall(-1)

		return m, nil

	case tea.KeyDown:
		m.recall(1)

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)
	m.tabActive = false
	m.refresh()

	return m, cmd
}

// submit evaluates the current line or runs a control command.
func (m model) submit() (tea.Model, tea.Cmd) {
	line := strings.TrimSpace(m.input.Value())

	m.input.Reset()
	m.clearMatches()

	if line == "" {
		return m, nil
	}

	if err := m.history.Write(line); err != nil {
		m.logger.DebugContext(m.ctx, "history not saved", slog.Any("error", err))
	}

	m.historyIdx = m.history.Len()

	echo := tea.Println(formatCommand(line))

	if name, ok := strings.CutPrefix(line, ctrlPrefix); ok {
		return m.control(strings.TrimSpace(name), echo)
	}

	return m, tea.Sequence(echo, tea.Println(m.evaluate(line)))
}

// evaluate returns the styled result of expression line.
func (m model) evaluate(line string) string {
	out, err := exprenv.Eval(m.ctx, line, m.env)
	if err != nil {
		return errorStyle.Render("error: " + err.Error())
	}

	return resultStyle.Render(exprenv.Format(out))
}

// control runs a control command.
func (m model) control(name string, echo tea.Cmd) (tea.Model, tea.Cmd) {
	switch name {
	case "quit", "q", "exit":
		m.quitting = true

		return m, tea.Sequence(echo, tea.Quit)

	case "help", "h", "?":
		return m, tea.Sequence(echo, tea.Println(hintStyle.Render(helpMessage())))

	case "keys":
		return m, tea.Sequence(echo, tea.Println(strings.Join(m.doc.Keys(), " ")))

	case "reload":
		if err := m.reload(); err != nil {
			return m, tea.Sequence(echo, tea.Println(errorStyle.Render("error: "+err.Error())))
		}

		msg := fmt.Sprintf("reloaded %d entries", m.doc.Len())

		return m, tea.Sequence(echo, tea.Println(resultStyle.Render(msg)))

	case "clear":
		return m, tea.ClearScreen

	default:
		return m, tea.Sequence(echo,
			tea.Println(errorStyle.Render("unknown command: "+name)))
	}
}

// recall moves through history by delta. Moving past the newest entry
// clears the line.
func (m *model) recall(delta int) {
	idx := min(max(m.historyIdx+delta, 0), m.history.Len())
	if idx == m.historyIdx {
		return
	}

	m.historyIdx = idx
	m.clearMatches()

	line, err := m.history.Entry(idx)
	if err != nil {
		m.input.Reset()

		return
	}

	m.input.SetValue(line)
	m.input.SetCursor(len(line))
}

// refresh recomputes the completion candidates for the word at the cursor.
func (m *model) refresh() {
	value := m.input.Value()

	word, start, end := wordBounds(value, m.input.Position())
	m.wordStart, m.wordEnd = start, end
	m.suggIdx = 0

	var names []string

	switch {
	case strings.HasPrefix(value, ctrlPrefix):
		names = ctrlCommands

	case word == "" && parentPath(value, start) == "":
		m.matches = nil

		return

	default:
		names = candidates(m.env, parentPath(value, start))
	}

	m.matches = complete(word, names)
}

// cycle selects the next (delta > 0) or previous candidate and writes it
// into the line in place of the current word.
func (m *model) cycle(delta int) {
	if len(m.matches) == 0 {
		return
	}

	if !m.tabActive {
		m.tabActive = true
		m.preTabText = m.input.Value()
		m.preTabCursor = m.input.Position()

		if delta < 0 {
			m.suggIdx = len(m.matches) - 1
		} else {
			m.suggIdx = 0
		}
	} else {
		m.suggIdx = (m.suggIdx + delta + len(m.matches)) % len(m.matches)
	}

	pick := m.matches[m.suggIdx].Str
	text := m.preTabText[:m.wordStart] + pick + m.preTabText[m.wordEnd:]

	m.input.SetValue(text)
	m.input.SetCursor(m.wordStart + len(pick))
}

func (m *model) clearMatches() {
	m.matches = nil
	m.tabActive = false
	m.suggIdx = 0
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")

	switch {
	case len(m.matches) > 0:
		b.WriteString(m.suggestionsView())
		b.WriteString("\n")

	case m.historyIdx < m.history.Len():
		hint := fmt.Sprintf("history %d/%d", m.historyIdx+1, m.history.Len())
		b.WriteString(hintStyle.Render(hint))
		b.WriteString("\n")
	}

	return b.String()
}

// suggestionsView renders a window of candidates around the selection.
func (m model) suggestionsView() string {
	first := 0
	if m.suggIdx >= maxSuggestions {
		first = m.suggIdx - maxSuggestions + 1
	}

	last := min(first+maxSuggestions, len(m.matches))

	parts := make([]string, 0, last-first+1)

	for i := first; i < last; i++ {
		style := suggestionStyle
		if m.tabActive && i == m.suggIdx {
			style = selectedStyle
		}

		parts = append(parts, style.Render(m.matches[i].Str))
	}

	if rest := len(m.matches) - last; rest > 0 {
		parts = append(parts, hintStyle.Render(fmt.Sprintf("+%d", rest)))
	}

	return strings.Join(parts, " ")
}
