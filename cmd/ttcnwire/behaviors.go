package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/wippyai/ttcn-runtime/encdec"
)

// configureBehaviors applies the YAML file and then the inline settings
// to reg.
func configureBehaviors(reg *encdec.Registry, file, inline string) error {
	if file != "" {
		settings, err := encdec.LoadConfig(file)
		if err != nil {
			return err
		}
		if err := reg.Apply(settings); err != nil {
			return err
		}
	}
	if inline != "" {
		settings, err := encdec.ParseSettings(inline)
		if err != nil {
			return err
		}
		return reg.Apply(settings)
	}
	return nil
}

func behaviorRows(reg *encdec.Registry) [][]string {
	var rows [][]string
	for _, t := range encdec.ErrorTypes() {
		if t == encdec.All {
			continue
		}
		cur, def := reg.Behavior(t), reg.DefaultBehavior(t)
		mark := ""
		if cur != def {
			mark = "*"
		}
		rows = append(rows, []string{t.String(), cur.String(), def.String(), mark})
	}
	return rows
}

// renderBehaviors prints the behavior table. Changed rows are marked in the
// last column and, when styled, highlighted.
func renderBehaviors(reg *encdec.Registry, styled bool) string {
	headers := []string{"TYPE", "BEHAVIOR", "DEFAULT", ""}
	rows := behaviorRows(reg)
	if !styled {
		var b strings.Builder
		for _, r := range append([][]string{headers}, rows...) {
			fmt.Fprintf(&b, "%-12s %-9s %-9s %s\n", r[0], r[1], r[2], r[3])
		}
		return b.String()
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(helpStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == table.HeaderRow:
				return style.Inherit(titleStyle)
			case rows[row][3] != "":
				return style.Inherit(resultStyle)
			}
			return style
		})
	return t.String() + "\n"
}
