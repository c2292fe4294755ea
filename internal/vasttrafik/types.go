package vasttrafik

import (
	"strings"
	"time"
)

// Fallback texts shown when the API omits a field.
const (
	UnknownLine        = "Unknown line"
	UnknownDestination = "Unknown destination"
	UnknownPlatform    = "Unknown platform"
)

// Credentials is the API key/secret pair issued by the Västtrafik developer portal.
type Credentials struct {
	Key    string
	Secret string
}

// tokenResponse mirrors the OAuth token endpoint payload.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

// departuresResponse mirrors /stop-areas/{gid}/departures. Results is a pointer so
// a missing key can be told apart from an empty array. Pagination is not followed.
type departuresResponse struct {
	Results *[]Departure `json:"results"`
}

// DepartureList is the result of a single departures query.
type DepartureList struct {
	Results []Departure
	// HasResults is false when the response carried no "results" key.
	HasResults bool
}

// Empty reports whether there is nothing to display.
func (l DepartureList) Empty() bool {
	return !l.HasResults || len(l.Results) == 0
}

// Departure is one transit event at the stop area. Every field is optional.
type Departure struct {
	EstimatedTime  *string         `json:"estimatedTime"`
	ServiceJourney *ServiceJourney `json:"serviceJourney"`
	StopPoint      *StopPoint      `json:"stopPoint"`
}

// ServiceJourney carries line and direction details.
type ServiceJourney struct {
	Line             *Line             `json:"line"`
	DirectionDetails *DirectionDetails `json:"directionDetails"`
}

// Line identifies the route.
type Line struct {
	ShortName *string `json:"shortName"`
}

// DirectionDetails holds the destination text.
type DirectionDetails struct {
	FullDirection *string `json:"fullDirection"`
}

// StopPoint is the platform within the stop area.
type StopPoint struct {
	Platform *string `json:"platform"`
}

// LineName returns the line short name or UnknownLine.
func (d Departure) LineName() string {
	if d.ServiceJourney != nil && d.ServiceJourney.Line != nil && d.ServiceJourney.Line.ShortName != nil {
		return *d.ServiceJourney.Line.ShortName
	}
	return UnknownLine
}

// Destination returns the full direction text or UnknownDestination.
func (d Departure) Destination() string {
	if d.ServiceJourney != nil && d.ServiceJourney.DirectionDetails != nil && d.ServiceJourney.DirectionDetails.FullDirection != nil {
		return *d.ServiceJourney.DirectionDetails.FullDirection
	}
	return UnknownDestination
}

// Platform returns the platform label or UnknownPlatform.
func (d Departure) Platform() string {
	if d.StopPoint != nil && d.StopPoint.Platform != nil {
		return *d.StopPoint.Platform
	}
	return UnknownPlatform
}

// naiveLayout matches timestamps sent without a UTC offset.
const naiveLayout = "2006-01-02T15:04:05"

// ParsedEstimatedTime parses EstimatedTime. A value with a UTC offset keeps
// that offset, so the clock time is the one the API sent. Offset-less values
// are read in loc. ok is false when the field is missing or malformed.
func (d Departure) ParsedEstimatedTime(loc *time.Location) (t time.Time, ok bool) {
	if d.EstimatedTime == nil {
		return time.Time{}, false
	}
	return parseTime(*d.EstimatedTime, loc)
}

func parseTime(value string, loc *time.Location) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, true
	}
	// Fractional seconds are accepted by Parse even though the layout has none.
	if t, err := time.ParseInLocation(naiveLayout, value, loc); err == nil {
		return t, true
	}
	return time.Time{}, false
}
