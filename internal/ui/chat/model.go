// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/rexidian/internal/model"
	"github.com/jeranaias/rexidian/internal/session"
	"github.com/jeranaias/rexidian/internal/ui/styles"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	maxInputChars = 4096
)

// Options configures the chat view.
type Options struct {
	// Theme defaults to styles.NewTheme().
	Theme *styles.Theme
	// RenderMarkdown renders assistant turns with glamour.
	RenderMarkdown bool
	// Tip is shown under the header when non-empty.
	Tip string
}

// transcript is shared between copies of Model; the controller's append
// hook writes to it.
type transcript struct {
	messages []model.Message
}

// Model is the Bubble Tea model for the chat view.
type Model struct {
	ctrl  *session.Controller
	sched *session.TeaScheduler
	keys  KeyMap

	theme          *styles.Theme
	markdown       *styles.Markdown
	renderMarkdown bool
	tip            string

	transcript *transcript
	viewport   viewport.Model
	input      textinput.Model

	width    int
	height   int
	quitting bool
}

// New builds the view and opens ctrl. Call it on the goroutine that will run
// the program, before the program starts.
func New(ctrl *session.Controller, sched *session.TeaScheduler, opts Options) Model {
	theme := opts.Theme
	if theme == nil {
		theme = styles.NewTheme()
	}

	ti := textinput.New()
	ti.Placeholder = "Ask about a recipe... (Enter to send, Esc to quit)"
	ti.Prompt = "> "
	ti.PromptStyle = theme.InputPrompt
	ti.CharLimit = maxInputChars
	ti.Focus()

	tr := &transcript{}
	ctrl.OnAppend(func(msg model.Message) {
		tr.messages = append(tr.messages, msg)
	})
	tr.messages = append(tr.messages, ctrl.Open()...)

	m := Model{
		ctrl:           ctrl,
		sched:          sched,
		keys:           DefaultKeyMap(),
		theme:          theme,
		renderMarkdown: opts.RenderMarkdown,
		tip:            opts.Tip,
		transcript:     tr,
		input:          ti,
		viewport:       viewport.New(defaultWidth, defaultHeight),
	}
	m.resize(defaultWidth, defaultHeight)
	return m
}

var _ tea.Model = Model{}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Messages returns the transcript shown so far.
func (m Model) Messages() []model.Message {
	out := make([]model.Message, len(m.transcript.messages))
	copy(out, m.transcript.messages)
	return out
}

// Quitting reports whether the user asked to leave.
func (m Model) Quitting() bool {
	return m.quitting
}

// resize lays out the view for a width x height terminal.
func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.markdown = styles.NewMarkdown(width-4, m.renderMarkdown)
	m.input.Width = width - 4

	// header + status bar + input line
	chrome := lipgloss.Height(m.headerView()) + 2
	vpHeight := height - chrome
	if vpHeight < 1 {
		vpHeight = 1
	}
	m.viewport.Width = width
	m.viewport.Height = vpHeight
	m.refresh()
}

// refresh re-renders the transcript and scrolls to the newest turn.
func (m *Model) refresh() {
	m.viewport.SetContent(m.transcriptView())
	m.viewport.GotoBottom()
}
