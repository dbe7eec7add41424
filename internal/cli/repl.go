// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/jeranaias/rexidian/internal/model"
	"github.com/jeranaias/rexidian/internal/recipe"
	"github.com/jeranaias/rexidian/internal/session"
	"github.com/jeranaias/rexidian/internal/settings"
	"github.com/jeranaias/rexidian/internal/tasks"
	"github.com/jeranaias/rexidian/internal/ui/styles"
)

const replPrompt = "you> "

// =============================================================================
// INPUT
// =============================================================================

// LineReader reads one line of input. *liner.State implements it.
type LineReader interface {
	Prompt(prompt string) (string, error)
}

// lineEditor provides input history and line editing for the REPL.
type lineEditor struct {
	line        *liner.State
	historyFile string
}

func newLineEditor(historyFile string) *lineEditor {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	e := &lineEditor{line: line, historyFile: historyFile}
	if f, err := os.Open(historyFile); err == nil {
		_, _ = line.ReadHistory(f)
		f.Close()
	}
	return e
}

// Prompt reads a line and records non-empty input in the history.
func (e *lineEditor) Prompt(prompt string) (string, error) {
	input, err := e.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		e.line.AppendHistory(input)
	}
	return input, nil
}

// Close saves the history with owner-only permissions and restores the
// terminal.
func (e *lineEditor) Close() {
	if err := os.MkdirAll(filepath.Dir(e.historyFile), 0700); err == nil {
		if f, err := os.OpenFile(e.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600); err == nil {
			_, _ = e.line.WriteHistory(f)
			f.Close()
		}
	}
	e.line.Close()
}

// scanReader reads lines from a non-interactive stream.
type scanReader struct {
	scanner *bufio.Scanner
}

func newScanReader(r io.Reader) *scanReader {
	return &scanReader{scanner: bufio.NewScanner(r)}
}

// Prompt returns the next line, or io.EOF at the end of input.
func (s *scanReader) Prompt(string) (string, error) {
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return s.scanner.Text(), nil
}

// syncWriter serializes writes from the loop and the prompt goroutine.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Printf(format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, format, args...)
}

// =============================================================================
// REPL
// =============================================================================

// repl is a line-mode chat over a task loop.
type repl struct {
	app      *App
	store    *settings.Store
	ctrl     *session.Controller
	loop     *tasks.Loop
	out      *syncWriter
	markdown *styles.Markdown
	echoUser bool
}

func runPlainChat(cmd *cobra.Command, app *App) error {
	store, err := app.Settings()
	if err != nil {
		return err
	}

	in := cmd.InOrStdin()
	interactive := in == os.Stdin && IsTTY()

	var reader LineReader
	if interactive {
		dir, err := app.Config.ResolvedDataDir()
		if err != nil {
			dir = os.TempDir()
		}
		editor := newLineEditor(filepath.Join(dir, "chat_history"))
		defer editor.Close()
		reader = editor
	} else {
		reader = newScanReader(in)
	}

	r := newREPL(app, store, cmd.OutOrStdout(), !interactive)
	return r.run(reader)
}

func newREPL(app *App, store *settings.Store, w io.Writer, echoUser bool) *repl {
	loop := tasks.NewLoop(app.Logger())
	r := &repl{
		app:      app,
		store:    store,
		loop:     loop,
		out:      &syncWriter{w: w},
		markdown: styles.NewMarkdown(GetTerminalWidth(), app.Config.UI.RenderMarkdown && IsStdoutTTY()),
		echoUser: echoUser,
	}
	r.ctrl = session.NewController(store, app.Responder(), loop,
		session.Config{ResponseDelay: app.Config.ResponseDelay.Duration}, app.Logger())
	r.ctrl.OnAppend(func(msg model.Message) {
		if msg.Role == model.RoleAssistant || r.echoUser {
			r.printMessage(msg)
		}
	})
	return r
}

// run reads lines until end of input or a quit command. At end of input the
// REPL waits for outstanding replies so they are printed.
func (r *repl) run(reader LineReader) error {
	defer r.loop.Stop()

	r.loop.Call(func() {
		for _, msg := range r.ctrl.Open() {
			r.printMessage(msg)
		}
	})
	if tip := cookingTip(r.app, r.store.Snapshot().ShowCookingTips); tip != "" {
		r.out.Printf("%s\n\n", TipStyle.Render(styles.StatusIndicators.Tip+" "+tip))
	}

	for {
		input, err := reader.Prompt(PromptStyle.Render(replPrompt))
		if err != nil {
			if err == io.EOF {
				r.waitForReplies()
			}
			break
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if strings.HasPrefix(input, "/") {
			if quit := r.handleSlashCommand(input); quit {
				break
			}
			continue
		}
		if strings.EqualFold(input, "exit") || strings.EqualFold(input, "quit") {
			break
		}

		r.loop.Call(func() { r.ctrl.Submit(input) })
	}

	var status session.Status
	r.loop.Call(func() {
		r.ctrl.Close()
		status = r.ctrl.GetStatus()
	})
	r.loop.Stop()
	r.printExitSummary(status)
	return nil
}

// waitForReplies blocks until no reply is pending, bounded by the reply
// delay plus a grace period.
func (r *repl) waitForReplies() {
	deadline := time.Now().Add(r.app.Config.ResponseDelay.Duration + 2*time.Second)
	for time.Now().Before(deadline) {
		pending := 0
		r.loop.Call(func() { pending = r.ctrl.GetStatus().PendingReplies })
		if pending == 0 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func (r *repl) printMessage(msg model.Message) {
	label := UserLabelStyle
	if msg.Role == model.RoleAssistant {
		label = AssistantLabelStyle
	}
	body := msg.Content
	if msg.Role == model.RoleAssistant {
		body = r.markdown.Render(body)
	}
	r.out.Printf("%s %s\n\n", label.Render(msg.Role.DisplayName()+":"), body)
}

// =============================================================================
// SLASH COMMANDS
// =============================================================================

// handleSlashCommand runs an in-chat command and reports whether to quit.
func (r *repl) handleSlashCommand(input string) bool {
	fields := strings.Fields(input)
	switch strings.ToLower(fields[0]) {
	case "/quit", "/q", "/exit":
		return true

	case "/help", "/h":
		r.out.Printf("%s\n", strings.Join([]string{
			"  /help, /h      Show available commands",
			"  /status, /s    Show session statistics",
			"  /recipe        Show a recipe template",
			"  /tip           Show a cooking tip",
			"  /clear         Clear the conversation history",
			"  /quit, /q      Exit chat",
		}, "\n"))

	case "/status", "/s":
		var status session.Status
		r.loop.Call(func() { status = r.ctrl.GetStatus() })
		r.out.Printf("%s %s  %s %d  %s %d\n",
			LabelStyle.Render("Session:"), status.SessionID,
			LabelStyle.Render("Messages:"), status.MessageCount,
			LabelStyle.Render("Pending:"), status.PendingReplies)

	case "/recipe":
		tmpl := recipe.Generate(r.store.Snapshot().DefaultServings)
		r.out.Printf("%s\n\n", r.markdown.Render(tmpl))

	case "/tip":
		r.out.Printf("%s\n", TipStyle.Render(recipe.RandomTip(r.app.Rand())))

	case "/clear":
		var err error
		r.loop.Call(func() { err = r.store.ClearHistory() })
		if err != nil {
			r.out.Printf("%s %v\n", ErrorStyle.Render("[Error]"), err)
		} else {
			r.out.Printf("%s\n", SuccessStyle.Render("Conversation history cleared."))
		}

	default:
		r.out.Printf("%s unknown command %s (try /help)\n", WarningStyle.Render("[!]"), fields[0])
	}
	return false
}

func (r *repl) printExitSummary(status session.Status) {
	r.out.Printf("%s %d messages, %s\n",
		SectionStyle.Render("Session ended:"),
		status.MessageCount,
		session.FormatDuration(status.Duration))
}
