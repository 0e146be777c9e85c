package domain

import (
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	UnknownWitness   = "Unknown User"
	UnknownAreaLabel = "Location not found"
)

// Address is the subset of a reverse-geocoded place used to label an alert.
type Address struct {
	City   string
	Street string
}

// Report is the record written for every accident alert.
// It embeds the nearest headquarters of each category at the time of the alert.
type Report struct {
	ReportID    uuid.UUID
	WitnessName string
	Location    Coordinates
	AreaLabel   string
	EvidenceURL string
	ReportedAt  time.Time
	Police      NearestResult
	Rescue      NearestResult
}

func NewReport(witness string, loc Coordinates, areaLabel string, evidenceURL string, reportedAt time.Time, d Dispatch) *Report {
	return &Report{
		ReportID:    uuid.New(),
		WitnessName: FormatWitnessName(witness),
		Location:    loc,
		AreaLabel:   areaLabel,
		EvidenceURL: strings.TrimSpace(evidenceURL),
		ReportedAt:  reportedAt.UTC(),
		Police:      d.Police,
		Rescue:      d.Rescue,
	}
}

// FormatWitnessName capitalizes the first letter of every space-separated word.
// A blank name is reported as UnknownWitness.
func FormatWitnessName(raw string) string {
	words := strings.Split(raw, " ")
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		if size == 0 {
			continue
		}
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}

	name := strings.TrimSpace(strings.Join(words, " "))
	if name == "" {
		return UnknownWitness
	}
	return name
}

// FormatAreaLabel renders an address as "city, street".
func FormatAreaLabel(addr *Address) string {
	if addr == nil {
		return UnknownAreaLabel
	}

	parts := make([]string, 0, 2)
	for _, p := range []string{addr.City, addr.Street} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return UnknownAreaLabel
	}
	return strings.Join(parts, ", ")
}

// Message is the confirmation shown to the reporter once the alert is sent.
func (r *Report) Message() string {
	var b strings.Builder
	b.WriteString("Area Name: ")
	b.WriteString(r.AreaLabel)
	b.WriteString("\nLatitude: ")
	b.WriteString(strconv.FormatFloat(r.Location.Lat, 'f', -1, 64))
	b.WriteString("\nLongitude: ")
	b.WriteString(strconv.FormatFloat(r.Location.Lon, 'f', -1, 64))
	b.WriteString("\n\nMessage is sent to the nearest Police and Rescuers!")
	b.WriteString("\n\nMessage alerted by: ")
	b.WriteString(r.WitnessName)
	return b.String()
}
