package ui

import (
	"strings"
	"time"

	"github.com/five82/avgang/internal/vasttrafik"
)

// Literal texts shown in place of data.
const (
	NoDepartures = "No departures found."
	UnknownTime  = "Unknown time"
)

// Column widths in cells: line, destination, platform, time.
const (
	lineWidth        = 8
	destinationWidth = 14
	platformWidth    = 9
	timeWidth        = 5
	columnGap        = 1
)

// Row is one rendered line of the departure board. A notice row carries only
// Notice and is used for the empty board.
type Row struct {
	Line        string
	Destination string
	Platform    string
	Time        string
	Notice      string
}

// IsNotice reports whether the row is a message rather than a departure.
func (r Row) IsNotice() bool {
	return r.Notice != ""
}

// BuildRows turns a departure list into board rows, keeping response order.
// An absent or empty list produces exactly one notice row.
func BuildRows(list vasttrafik.DepartureList, loc *time.Location) []Row {
	if list.Empty() {
		return []Row{{Notice: NoDepartures}}
	}
	rows := make([]Row, 0, len(list.Results))
	for _, d := range list.Results {
		rows = append(rows, Row{
			Line:        "linje " + d.LineName(),
			Destination: "till " + d.Destination(),
			Platform:    "Läge " + d.Platform(),
			Time:        formatDepartureTime(d, loc),
		})
	}
	return rows
}

func formatDepartureTime(d vasttrafik.Departure, loc *time.Location) string {
	t, ok := d.ParsedEstimatedTime(loc)
	if !ok {
		return UnknownTime
	}
	return t.Format("15:04")
}

// Fields returns the four fixed-width cells of the row.
func (r Row) Fields() [4]string {
	return [4]string{
		fit(r.Line, lineWidth),
		fit(r.Destination, destinationWidth),
		fit(r.Platform, platformWidth),
		fit(r.Time, timeWidth),
	}
}

// String renders the row as plain text, used by `avgang once`.
func (r Row) String() string {
	if r.IsNotice() {
		return r.Notice
	}
	fields := r.Fields()
	return strings.TrimRight(strings.Join(fields[:], strings.Repeat(" ", columnGap)), " ")
}

// rowWidth is the width of a fully padded departure row.
func rowWidth() int {
	return lineWidth + destinationWidth + platformWidth + timeWidth + 3*columnGap
}
