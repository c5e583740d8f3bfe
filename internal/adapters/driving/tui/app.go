package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// exchange is one question/answer pair in the transcript.
type exchange struct {
	question string
	answer   string
}

// answerMsg carries the answer to the last submitted question.
type answerMsg struct {
	question string
	answer   string
}

// App is the chat application model.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *Styles

	input      textinput.Model
	transcript viewport.Model
	exchanges  []exchange

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new chat application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	input := textinput.New()
	input.Placeholder = "Frage eingeben, z.B. \"liste räume\" oder \"hilfe\""
	input.Focus()
	input.CharLimit = 400

	return &App{
		ports:      ports,
		ctx:        context.Background(),
		styles:     DefaultStyles(),
		input:      input,
		transcript: viewport.New(80, 20),
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.setDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return a, tea.Quit
		case tea.KeyEnter:
			question := strings.TrimSpace(a.input.Value())
			if question == "" {
				return a, nil
			}
			a.input.SetValue("")
			return a, a.ask(question)
		default:
		}

	case answerMsg:
		a.exchanges = append(a.exchanges, exchange{
			question: msg.question,
			answer:   msg.answer,
		})
		a.transcript.SetContent(a.renderTranscript())
		a.transcript.GotoBottom()
		return a, nil
	}

	var inputCmd tea.Cmd
	a.input, inputCmd = a.input.Update(msg)
	if inputCmd != nil {
		cmds = append(cmds, inputCmd)
	}

	var vpCmd tea.Cmd
	a.transcript, vpCmd = a.transcript.Update(msg)
	if vpCmd != nil {
		cmds = append(cmds, vpCmd)
	}

	return a, tea.Batch(cmds...)
}

// ask answers a question against the current session's index.
// Answers arrive as messages so a watch-triggered reload between
// keystrokes is picked up on the next question.
func (a *App) ask(question string) tea.Cmd {
	return func() tea.Msg {
		session, ok := a.ports.Session.Current()
		if !ok {
			return answerMsg{
				question: question,
				answer:   "Kein Modell geladen. Bitte zuerst eine IFC-Datei laden.",
			}
		}
		return answerMsg{
			question: question,
			answer:   a.ports.Query.Answer(question, session.Index),
		}
	}
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	header := a.styles.Title.Render("Talk2BIM") + "  " + a.styles.Muted.Render(a.sessionLine())

	sections := []string{
		header,
		"",
		a.transcript.View(),
		"",
		a.styles.Border.Width(a.width - 4).Render(a.input.View()),
		a.styles.Muted.Render("enter: fragen · esc: beenden"),
	}

	if a.err != nil {
		sections = append(sections, a.styles.Error.Render("Error: "+a.err.Error()))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// sessionLine summarises the loaded model for the header.
func (a *App) sessionLine() string {
	session, ok := a.ports.Session.Current()
	if !ok {
		return "kein Modell geladen"
	}
	return fmt.Sprintf("%s · %d Räume · %d Objekte",
		session.Path, session.Index.Stats.Zones, session.Index.Stats.Items)
}

// renderTranscript formats all exchanges for the viewport.
func (a *App) renderTranscript() string {
	if len(a.exchanges) == 0 {
		return a.styles.Muted.Render("Noch keine Fragen gestellt.")
	}

	blocks := make([]string, 0, len(a.exchanges))
	for _, ex := range a.exchanges {
		blocks = append(blocks,
			a.styles.Question.Render("> "+ex.question)+"\n"+a.styles.Answer.Render(ex.answer))
	}
	return strings.Join(blocks, "\n\n")
}

// setDimensions sizes the components to the terminal.
func (a *App) setDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true

	a.input.Width = width - 8
	// Reserve space for header, input box and hint line.
	vpHeight := height - 8
	if vpHeight < 3 {
		vpHeight = 3
	}
	a.transcript.Width = width
	a.transcript.Height = vpHeight
	a.transcript.SetContent(a.renderTranscript())
}

// Transcript returns the rendered transcript, used by tests.
func (a *App) Transcript() []string {
	lines := make([]string, 0, len(a.exchanges)*2)
	for _, ex := range a.exchanges {
		lines = append(lines, ex.question, ex.answer)
	}
	return lines
}

// Run starts the chat application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Err returns the last error, if any.
func (a *App) Err() error {
	return a.err
}
