package output

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/njt/zermelo/libzermelo"
)

// Format renders an appointment as a text block. Only lines for fields that
// are present are included, each terminated by a newline.
func Format(a *libzermelo.Appointment) string {
	var sb strings.Builder

	header := slotLabel(a) + timeRange(a)
	if header != "" {
		sb.WriteString(header)
		sb.WriteString("\n")
	}

	writeList(&sb, "Subjects", a.Subjects)
	writeList(&sb, "Teachers", a.Teachers)
	writeList(&sb, "Locations", a.Locations)
	writeList(&sb, "Groups", a.Groups)

	if a.Remark != nil && *a.Remark != "" {
		fmt.Fprintf(&sb, "! %s\n", RemarkText(*a.Remark))
	}

	return sb.String()
}

// slotLabel renders "#2" or "#2-4". The end slot is omitted when it equals
// the start slot or the start slot is absent.
func slotLabel(a *libzermelo.Appointment) string {
	if a.StartTimeSlot == nil {
		return ""
	}
	label := fmt.Sprintf("#%d", *a.StartTimeSlot)
	if a.EndTimeSlot != nil && *a.EndTimeSlot != *a.StartTimeSlot {
		label += fmt.Sprintf("-%d", *a.EndTimeSlot)
	}
	return label
}

// timeRange renders " H:MM" or " H:MM - H:MM". The end time is only shown
// together with a start time.
func timeRange(a *libzermelo.Appointment) string {
	if a.Start == nil {
		return ""
	}
	s := " " + Clock(*a.Start)
	if a.End != nil {
		s += " - " + Clock(*a.End)
	}
	return s
}

// Clock formats an epoch timestamp as H:MM. The hour is the UTC hour plus
// one, matching how the portal's times are displayed; it is not a timezone
// conversion.
func Clock(epoch int64) string {
	t := time.Unix(epoch, 0).UTC()
	return fmt.Sprintf("%d:%02d", t.Hour()+1, t.Minute())
}

func writeList(sb *strings.Builder, label string, values []string) {
	if len(values) == 0 {
		return
	}
	fmt.Fprintf(sb, "%s: %s\n", label, strings.Join(values, ", "))
}

// RemarkText prepares a remark for a single output line. Remarks containing
// HTML markup are converted to markdown text first; anything else is kept
// verbatim.
func RemarkText(remark string) string {
	if hasMarkup(remark) {
		remark = HTMLToMarkdown(remark)
	}
	remark = strings.ReplaceAll(remark, "\r\n", " ")
	return strings.ReplaceAll(remark, "\n", " ")
}

// markupTags are the elements the portal uses in formatted remarks.
var markupTags = map[atom.Atom]bool{
	atom.P:      true,
	atom.Div:    true,
	atom.Span:   true,
	atom.B:      true,
	atom.Strong: true,
	atom.I:      true,
	atom.Em:     true,
	atom.U:      true,
	atom.A:      true,
	atom.Ul:     true,
	atom.Ol:     true,
	atom.Li:     true,
	atom.H1:     true,
	atom.H2:     true,
	atom.H3:     true,
}

// hasMarkup reports whether s contains real HTML: a line break or rule, or a
// known element that is opened and closed again. Text such as "<5 vragen>"
// or an unclosed "a<b>c" is not markup.
func hasMarkup(s string) bool {
	if !strings.Contains(s, "<") {
		return false
	}

	open := make(map[atom.Atom]bool)
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return false
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			switch {
			case tok.DataAtom == atom.Br || tok.DataAtom == atom.Hr:
				return true
			case markupTags[tok.DataAtom]:
				open[tok.DataAtom] = true
			}
		case html.EndTagToken:
			if tok := z.Token(); open[tok.DataAtom] {
				return true
			}
		}
	}
}
