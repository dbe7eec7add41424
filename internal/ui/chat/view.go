// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/rexidian/internal/model"
	"github.com/jeranaias/rexidian/internal/ui/styles"
	"github.com/jeranaias/rexidian/internal/util"
)

const brand = "Rexidian Recipe Assistant"

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.headerView(),
		m.viewport.View(),
		m.statusView(),
		m.input.View(),
	)
}

func (m Model) headerView() string {
	lines := []string{m.theme.HeaderTitle.Render(brand)}
	if m.tip != "" {
		tip := util.TruncateWidth(styles.StatusIndicators.Tip+" "+m.tip, m.width-2)
		lines = append(lines, m.theme.Tip.Render(tip))
	}
	return m.theme.Header.Width(m.width).Render(strings.Join(lines, "\n"))
}

func (m Model) transcriptView() string {
	blocks := make([]string, 0, len(m.transcript.messages))
	for _, msg := range m.transcript.messages {
		blocks = append(blocks, m.messageView(msg))
	}
	return strings.Join(blocks, "\n\n")
}

func (m Model) messageView(msg model.Message) string {
	label := m.theme.UserLabel
	if msg.Role == model.RoleAssistant {
		label = m.theme.AssistantLabel
	}
	head := label.Render(msg.Role.DisplayName()) + " " +
		m.theme.Timestamp.Render(msg.Time().Format("15:04"))

	body := msg.Content
	if msg.Role == model.RoleAssistant && m.markdown.Enabled() {
		body = m.markdown.Render(body)
	} else {
		body = m.theme.Body.Width(m.width - 2).Render(body)
	}
	return head + "\n" + body
}

func (m Model) statusView() string {
	status := m.ctrl.GetStatus()
	left := fmt.Sprintf("%d messages", status.MessageCount)
	if status.PendingReplies > 0 {
		left = styles.StatusIndicators.Pending + " thinking  " + left
	}

	var help []string
	for _, b := range m.keys.ShortHelp() {
		h := b.Help()
		help = append(help, h.Key+" "+h.Desc)
	}
	line := left + "  |  " + strings.Join(help, "  ")
	return m.theme.StatusBar.Width(m.width).Render(util.TruncateWidth(line, m.width-2))
}
