package evaluator

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// Presenter receives everything the program shows the user. Output order is
// part of the observable behavior, so all chaos draws that affect output
// happen before the Present call.
type Presenter interface {
	Present(obj Object)
	PresentError(msg string)
}

const (
	colorReset = "\x1b[0m"
	colorRed   = "\x1b[31m"
)

// ConsolePresenter writes values to out and errors to errOut, with ANSI color
// on the error channel only when it is an interactive terminal.
type ConsolePresenter struct {
	out    io.Writer
	errOut io.Writer
	color  bool
}

func NewConsolePresenter(out, errOut io.Writer) *ConsolePresenter {
	color := false
	if f, ok := errOut.(*os.File); ok {
		color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &ConsolePresenter{out: out, errOut: errOut, color: color}
}

func (p *ConsolePresenter) Present(obj Object) {
	fmt.Fprintln(p.out, obj.Inspect())
}

func (p *ConsolePresenter) PresentError(msg string) {
	if p.color {
		fmt.Fprintln(p.errOut, colorRed+msg+colorReset)
		return
	}
	fmt.Fprintln(p.errOut, msg)
}
