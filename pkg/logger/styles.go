package logger

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	charmlog "github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
)

func getDefaultStyles(out io.Writer) *charmlog.Styles {
	styles := charmlog.DefaultStyles()
	if !isTerminal(out) {
		// no ANSI codes off a terminal
		styles.Levels[charmlog.DebugLevel] = lipgloss.NewStyle().SetString("DEBU")
		styles.Levels[charmlog.InfoLevel] = lipgloss.NewStyle().SetString("INFO")
		styles.Levels[charmlog.WarnLevel] = lipgloss.NewStyle().SetString("WARN")
		styles.Levels[charmlog.ErrorLevel] = lipgloss.NewStyle().SetString("ERRO")
		return styles
	}
	styles.Levels[charmlog.DebugLevel] = lipgloss.NewStyle().
		SetString("DEBU").
		Bold(true).
		Foreground(lipgloss.Color("63"))
	styles.Levels[charmlog.InfoLevel] = lipgloss.NewStyle().
		SetString("INFO").
		Bold(true).
		Foreground(lipgloss.Color("86"))
	styles.Levels[charmlog.WarnLevel] = lipgloss.NewStyle().
		SetString("WARN").
		Bold(true).
		Foreground(lipgloss.Color("192"))
	styles.Levels[charmlog.ErrorLevel] = lipgloss.NewStyle().
		SetString("ERRO").
		Bold(true).
		Foreground(lipgloss.Color("204"))
	styles.Key = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	return styles
}

func isTerminal(out io.Writer) bool {
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
