package libzermelo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// AppointmentType is the kind of an appointment as reported by the portal.
type AppointmentType string

const (
	TypeUnknown  AppointmentType = "unknown"
	TypeLesson   AppointmentType = "lesson"
	TypeExam     AppointmentType = "exam"
	TypeActivity AppointmentType = "activity"
	TypeChoice   AppointmentType = "choice"
	TypeTalk     AppointmentType = "talk"
	TypeOther    AppointmentType = "other"
)

var appointmentTypes = map[string]AppointmentType{
	"unknown":  TypeUnknown,
	"lesson":   TypeLesson,
	"exam":     TypeExam,
	"activity": TypeActivity,
	"choice":   TypeChoice,
	"talk":     TypeTalk,
	"other":    TypeOther,
}

// ParseAppointmentType maps a portal type string onto a known type.
func ParseAppointmentType(s string) (AppointmentType, bool) {
	t, ok := appointmentTypes[strings.ToLower(strings.TrimSpace(s))]
	return t, ok
}

// Appointment is a single schedule entry. Every field is optional: a nil
// pointer means the portal did not send it, which is not the same as false
// or zero.
type Appointment struct {
	StartTimeSlot *int     `json:"startTimeSlot,omitempty"`
	EndTimeSlot   *int     `json:"endTimeSlot,omitempty"`
	Start         *int64   `json:"start,omitempty"`
	End           *int64   `json:"end,omitempty"`
	Subjects      []string `json:"subjects,omitempty"`
	Teachers      []string `json:"teachers,omitempty"`
	Locations     []string `json:"locations,omitempty"`
	Groups        []string `json:"groups,omitempty"`
	Remark        *string  `json:"remark,omitempty"`
	Type          *string  `json:"type,omitempty"`
	Cancelled     *bool    `json:"cancelled,omitempty"`
	Valid         *bool    `json:"valid,omitempty"`
	Modified      *bool    `json:"modified,omitempty"`
	New           *bool    `json:"new,omitempty"`
	Moved         *bool    `json:"moved,omitempty"`
}

// Kind returns the parsed appointment type, falling back to TypeOther when
// the type is absent or not recognised.
func (a *Appointment) Kind() AppointmentType {
	if a.Type == nil {
		return TypeOther
	}
	if t, ok := ParseAppointmentType(*a.Type); ok {
		return t
	}
	return TypeOther
}

// IsCancelled reports whether the portal marked the appointment cancelled.
func (a *Appointment) IsCancelled() bool {
	return a.Cancelled != nil && *a.Cancelled
}

// IsInvalid reports whether the portal explicitly marked the appointment
// invalid. An absent valid flag is not invalid.
func (a *Appointment) IsInvalid() bool {
	return a.Valid != nil && !*a.Valid
}

// IsChanged reports whether the appointment was modified, added or moved.
func (a *Appointment) IsChanged() bool {
	return isTrue(a.Modified) || isTrue(a.New) || isTrue(a.Moved)
}

func isTrue(b *bool) bool {
	return b != nil && *b
}

// Appointments retrieves the session user's appointments between start and
// end (inclusive, second precision).
func (c *Client) Appointments(ctx context.Context, session Session, start, end time.Time) ([]*Appointment, error) {
	if session.School == "" || session.AccessToken == "" {
		return nil, fmt.Errorf("%w: session requires a school and an access token", ErrFetch)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end %s is before start %s", ErrFetch, end, start)
	}

	params := url.Values{}
	params.Set("user", "~me")
	params.Set("start", strconv.FormatInt(start.Unix(), 10))
	params.Set("end", strconv.FormatInt(end.Unix(), 10))

	data, err := c.get(ctx, session, "/appointments?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}

	var appointments []*Appointment
	if len(data) == 0 || string(data) == "null" {
		return appointments, nil
	}
	if err := json.Unmarshal(data, &appointments); err != nil {
		return nil, fmt.Errorf("%w: failed to unmarshal appointments: %w", ErrFetch, err)
	}

	return appointments, nil
}
