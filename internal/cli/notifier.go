package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/Veraticus/backoffice/internal/common"
)

// Notifier prints operator notifications to a terminal and logs them.
type Notifier struct {
	w   io.Writer
	log common.LogNotifier
}

// NewNotifier creates a notifier writing to w, or stderr when w is nil.
func NewNotifier(w io.Writer) *Notifier {
	if w == nil {
		w = os.Stderr
	}
	return &Notifier{w: w}
}

// Error prints the operator-facing part of err.
func (n *Notifier) Error(err error, context string) {
	n.log.Error(err, context)
	_, _ = fmt.Fprintln(n.w, FormatError(context+": "+common.UserMessage(err)))
}

// Info prints message as a success line.
func (n *Notifier) Info(message string) {
	n.log.Info(message)
	_, _ = fmt.Fprintln(n.w, FormatSuccess(message))
}
