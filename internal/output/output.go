// Package output classifies, formats and prints appointments, either as
// colored text blocks or as JSON.
package output

import (
	"encoding/json"
	"io"
	"strings"
	"time"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"

	"github.com/njt/zermelo/libzermelo"
)

// markdown converts remark HTML. Escaping is disabled so literal "_" and "*"
// in the text are printed as written.
var markdown = converter.NewConverter(
	converter.WithPlugins(
		base.NewBasePlugin(),
		commonmark.NewCommonmarkPlugin(),
	),
	converter.WithEscapeMode(converter.EscapeModeDisabled),
)

// HTMLToMarkdown converts HTML content to Markdown.
// Returns the original content if conversion fails or content is empty.
func HTMLToMarkdown(html string) string {
	if html == "" {
		return ""
	}

	md, err := markdown.ConvertString(html)
	if err != nil {
		// Fall back to original content on error
		return html
	}

	return strings.TrimSpace(md)
}

// ClassifiedAppointment is an appointment with its display color.
type ClassifiedAppointment struct {
	*libzermelo.Appointment
	Color Color `json:"color"`
}

// ScheduleResponse is the JSON document printed with --json.
type ScheduleResponse struct {
	Start        time.Time                `json:"start"`
	End          time.Time                `json:"end"`
	Appointments []*ClassifiedAppointment `json:"appointments"`
	Count        int                      `json:"count"`
}

// FormatScheduleResponse keeps the appointments visible under f, in order.
func FormatScheduleResponse(start, end time.Time, appointments []*libzermelo.Appointment, f Filter) *ScheduleResponse {
	resp := &ScheduleResponse{
		Start:        start,
		End:          end,
		Appointments: []*ClassifiedAppointment{},
	}
	for _, a := range appointments {
		class := Classify(a, f)
		if !class.Visible {
			continue
		}
		resp.Appointments = append(resp.Appointments, &ClassifiedAppointment{
			Appointment: a,
			Color:       class.Color,
		})
	}
	resp.Count = len(resp.Appointments)
	return resp
}

// WriteJSON writes a value as JSON to the writer.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
