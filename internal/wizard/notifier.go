package wizard

import (
	"io"

	"github.com/fatih/color"
)

// Notifier shows the transient status of a generate call
type Notifier interface {
	Loading(message string)
	Success(message string)
	Failure(message string)
}

type ColorNotifier struct {
	writer  io.Writer
	loading *color.Color
	success *color.Color
	failure *color.Color
}

func NewColorNotifier(writer io.Writer) *ColorNotifier {
	return &ColorNotifier{
		writer:  writer,
		loading: color.New(color.FgYellow),
		success: color.New(color.FgGreen),
		failure: color.New(color.FgRed, color.Bold),
	}
}

func (n *ColorNotifier) Loading(message string) {
	_, _ = n.loading.Fprintln(n.writer, "… "+message)
}

func (n *ColorNotifier) Success(message string) {
	_, _ = n.success.Fprintln(n.writer, "✔ "+message)
}

func (n *ColorNotifier) Failure(message string) {
	_, _ = n.failure.Fprintln(n.writer, "✘ "+message)
}

type nopNotifier struct{}

func (nopNotifier) Loading(string) {}
func (nopNotifier) Success(string) {}
func (nopNotifier) Failure(string) {}
