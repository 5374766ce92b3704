// Copyright 2026 The Roomsnap Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/roomsnap/roomsnap/summary"
)

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			Width(72)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("75"))

	aliasStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")).
			Width(10)

	encryptedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("114"))

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Italic(true)
)

// renderSummaries renders one bordered card per room, plus a trailing
// count line. An empty snapshot renders a single placeholder line.
func renderSummaries(summaries []summary.RoomSummary) string {
	if len(summaries) == 0 {
		return emptyStyle.Render("no joined rooms in sync response") + "\n"
	}

	var builder strings.Builder
	for _, room := range summaries {
		builder.WriteString(renderCard(room))
		builder.WriteString("\n")
	}
	builder.WriteString(fmt.Sprintf("%d room(s)\n", len(summaries)))
	return builder.String()
}

func renderCard(room summary.RoomSummary) string {
	header := titleStyle.Render(room.Name)
	if room.IsEncrypted {
		header += " " + encryptedStyle.Render("🔒 encrypted")
	}
	header += "\n" + aliasStyle.Render(room.CanonicalAlias+"  ·  "+room.RoomID.String())

	var lines []string
	lines = append(lines, header)
	lines = append(lines, labelStyle.Render("topic")+room.Topic)
	lines = append(lines, labelStyle.Render("last")+room.LastMessage)

	membersLine := fmt.Sprintf("%d", room.MemberCount)
	if len(room.Members) > 0 {
		membersLine += "  (" + strings.Join(room.Members, ", ") + ")"
	}
	lines = append(lines, labelStyle.Render("members")+membersLine)

	return cardStyle.Render(strings.Join(lines, "\n")) + "\n"
}
