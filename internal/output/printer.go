package output

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"github.com/njt/zermelo/libzermelo"
)

// ErrRender is returned when an appointment could not be written.
var ErrRender = errors.New("could not print appointment")

// PrinterOptions controls filtering and coloring.
type PrinterOptions struct {
	Filter
	// NoColor disables escape codes. When false, color is used if the
	// terminal supports it and NO_COLOR is not set.
	NoColor bool
}

// Printer writes classified, formatted appointments.
type Printer struct {
	out    io.Writer
	filter Filter
	colors map[Color]*color.Color
	logger *zap.Logger
}

// NewPrinter creates a printer writing to out.
func NewPrinter(out io.Writer, opts PrinterOptions, logger *zap.Logger) *Printer {
	if logger == nil {
		logger = zap.NewNop()
	}

	colors := map[Color]*color.Color{
		White:  color.New(color.FgWhite),
		Yellow: color.New(color.FgYellow),
		Red:    color.New(color.FgRed),
	}
	if opts.NoColor {
		for _, c := range colors {
			c.DisableColor()
		}
	}

	return &Printer{
		out:    out,
		filter: opts.Filter,
		colors: colors,
		logger: logger,
	}
}

// ForceColor emits escape codes even when out is not a terminal.
func (p *Printer) ForceColor() {
	for _, c := range p.colors {
		c.EnableColor()
	}
}

// Print writes one appointment block followed by a blank line. Hidden
// appointments write nothing and report printed=false.
func (p *Printer) Print(a *libzermelo.Appointment) (printed bool, err error) {
	class := Classify(a, p.filter)
	if !class.Visible {
		return false, nil
	}

	// The color is set before and reset after each block, so every block
	// starts from the terminal's default.
	if _, err := p.colors[class.Color].Fprintln(p.out, Format(a)); err != nil {
		return false, fmt.Errorf("%w: %w", ErrRender, err)
	}
	return true, nil
}

// PrintAll prints every appointment in order. A failure on one appointment is
// logged and does not stop the rest. It returns how many were printed.
func (p *Printer) PrintAll(appointments []*libzermelo.Appointment) int {
	count := 0
	for i, a := range appointments {
		printed, err := p.Print(a)
		if err != nil {
			p.logger.Warn("skipping appointment", zap.Int("index", i), zap.Error(err))
			continue
		}
		if printed {
			count++
		}
	}
	return count
}
