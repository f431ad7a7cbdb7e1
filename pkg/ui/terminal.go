package ui

import (
	"fmt"
	"io"
	"os"
)

// Printer writes styled status lines
type Printer struct {
	out    io.Writer
	styles styles
}

// NewPrinter creates a Printer for out
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out, styles: newStyles(out)}
}

// Stdout returns a Printer for standard output
func Stdout() *Printer {
	return NewPrinter(os.Stdout)
}

// Error prints an error message, with its cause when given
func (p *Printer) Error(msg string, err error) {
	if err != nil {
		msg = msg + ": " + err.Error()
	}
	fmt.Fprintln(p.out, p.styles.error.Render(msg))
}

// Success prints a success message
func (p *Printer) Success(msg string) {
	fmt.Fprintln(p.out, p.styles.success.Render(msg))
}

// Warning prints a warning message
func (p *Printer) Warning(msg string) {
	fmt.Fprintln(p.out, p.styles.warning.Render(msg))
}

// Info prints a label and value pair
func (p *Printer) Info(label, value string) {
	fmt.Fprintln(p.out, p.styles.label.Render(label)+p.styles.value.Render(value))
}

// Title prints a section heading
func (p *Printer) Title(text string) {
	fmt.Fprintln(p.out, p.styles.title.Render(text))
}
