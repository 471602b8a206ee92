package output

import "github.com/njt/zermelo/libzermelo"

// Color is the foreground color an appointment is printed in.
type Color int

const (
	White Color = iota
	Yellow
	Red
)

func (c Color) String() string {
	switch c {
	case Yellow:
		return "yellow"
	case Red:
		return "red"
	default:
		return "white"
	}
}

// MarshalText encodes the color by name.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Filter controls which appointments are shown.
type Filter struct {
	HideCancelled bool
	ShowInvalid   bool
}

// Visible reports whether a passes the filter. Cancelled appointments are
// hidden only on request; invalid ones are hidden unless requested.
func (f Filter) Visible(a *libzermelo.Appointment) bool {
	if a.IsCancelled() && f.HideCancelled {
		return false
	}
	if a.IsInvalid() && !f.ShowInvalid {
		return false
	}
	return true
}

// ColorOf returns the display color of a. Red (cancelled or invalid) takes
// priority over Yellow (exam, modified, new or moved), which takes priority
// over White.
func ColorOf(a *libzermelo.Appointment) Color {
	switch {
	case a.IsCancelled(), a.IsInvalid():
		return Red
	case a.Kind() == libzermelo.TypeExam, a.IsChanged():
		return Yellow
	default:
		return White
	}
}

// Classification is the visibility and color decided for one appointment.
type Classification struct {
	Visible bool
	Color   Color
}

// Classify decides whether and in which color a is shown.
func Classify(a *libzermelo.Appointment, f Filter) Classification {
	return Classification{
		Visible: f.Visible(a),
		Color:   ColorOf(a),
	}
}
