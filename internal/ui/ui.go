package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	newStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	trkStyle   = lipgloss.NewStyle().Faint(true)
	faintStyle = lipgloss.NewStyle().Faint(true)
)

func NewLine(w io.Writer, name, path string) {
	fmt.Fprintln(w, newStyle.Render("new")+"  "+name+"  "+faintStyle.Render(path))
}

func TrkLine(w io.Writer, name, path string) {
	fmt.Fprintln(w, trkStyle.Render("trk")+"  "+name+"  "+faintStyle.Render(path))
}

func ErrLine(w io.Writer, name, message string) {
	fmt.Fprintln(w, errStyle.Render("err")+"  "+name+"  "+message)
}

func SummaryLine(w io.Writer, specs, files int) {
	fmt.Fprintf(w, "synced %d specs from %d files\n", specs, files)
}

func ListRow(w io.Writer, name, path, status string, nameWidth, pathWidth int) {
	line := fmt.Sprintf("%-*s  %-*s  ", nameWidth, name, pathWidth, path)
	if status == "ok" {
		line += newStyle.Render(status)
	} else {
		line += errStyle.Render(status)
	}
	fmt.Fprintln(w, line)
}

func ShowHeader(w io.Writer, name, path, status string) {
	fmt.Fprintf(w, "%s  %s\n", name, faintStyle.Render(path))
	if status == "ok" {
		fmt.Fprintln(w, "status: "+newStyle.Render(status))
	} else {
		fmt.Fprintln(w, "status: "+errStyle.Render(status))
	}
}

func Bound(w io.Writer, name, rendered string) {
	fmt.Fprintf(w, "%s = %s\n", name, rendered)
}

// Diagnostic prints a positioned error followed by the offending input
// line with a caret under the reported column.
func Diagnostic(w io.Writer, input string, line, col int, message string) {
	fmt.Fprintln(w, errStyle.Render("error:")+" "+message)
	lines := strings.Split(input, "\n")
	if line < 1 || line > len(lines) {
		return
	}
	src := lines[line-1]
	fmt.Fprintln(w, "  "+src)
	// col counts runes, not bytes.
	if col >= 1 && col <= len([]rune(src))+1 {
		fmt.Fprintln(w, "  "+strings.Repeat(" ", col-1)+errStyle.Render("^"))
	}
}
