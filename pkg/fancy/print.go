package fancy

import (
	"fmt"
	"io"

	"github.com/logrusorgru/aurora"
)

var (
	Info  = aurora.White
	Good  = aurora.Green
	Warn  = aurora.Yellow
	Error = aurora.Red
	Bold  = aurora.Bold
)

type Level = func(arg any) aurora.Value

// Printer writes leveled text, colored only when enabled.
type Printer struct {
	w     io.Writer
	color bool
}

func NewPrinter(w io.Writer, color bool) *Printer {
	return &Printer{w: w, color: color}
}

func (p *Printer) Sprint(level Level, args ...any) string {
	s := fmt.Sprint(args...)
	if !p.color {
		return s
	}
	return level(s).String()
}

func (p *Printer) Println(level Level, args ...any) {
	_, _ = fmt.Fprintln(p.w, p.Sprint(level, args...))
}

func (p *Printer) Printf(level Level, format string, args ...any) {
	_, _ = fmt.Fprint(p.w, p.Sprint(level, fmt.Sprintf(format, args...)))
}

func (p *Printer) Infof(format string, args ...any) {
	p.Printf(Info, format, args...)
}

func (p *Printer) Warnf(format string, args ...any) {
	p.Printf(Warn, format, args...)
}

func (p *Printer) Errorf(format string, args ...any) {
	p.Printf(Error, format, args...)
}
