package posting

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Promotion is decided once at ingestion and never re-derived.
type Promotion int

const (
	NotPromoted Promotion = iota
	Promoted
)

func (p Promotion) String() string {
	if p == Promoted {
		return "promoted"
	}
	return "not_promoted"
}

func (p Promotion) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Promotion) UnmarshalText(text []byte) error {
	switch string(text) {
	case "promoted":
		*p = Promoted
	case "not_promoted", "":
		*p = NotPromoted
	default:
		return fmt.Errorf("unknown promotion %q", text)
	}
	return nil
}

// Posting is one job listing. Treat it as a value: nothing mutates a
// Posting after FromRecord builds it.
type Posting struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Company      string    `json:"company,omitempty"`
	Compensation string    `json:"compensation,omitempty"`
	Location     string    `json:"location,omitempty"`
	Status       string    `json:"status,omitempty"`
	Type         string    `json:"type,omitempty"`
	Description  string    `json:"description,omitempty"`
	Link         string    `json:"link,omitempty"`
	Promotion    Promotion `json:"promotion"`
}

func (p Posting) IsPromoted() bool {
	return p.Promotion == Promoted
}

// Record matches one element of the record store's "records" array.
type Record struct {
	ID     string                     `json:"id"`
	Fields map[string]json.RawMessage `json:"fields"`
}

// UnmarshalJSON never fails: an element that is not an object, or whose
// fields are not an object, decodes to a record with nothing in it so one
// bad element cannot drop the whole collection.
func (r *Record) UnmarshalJSON(data []byte) error {
	*r = Record{}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil
	}
	r.ID = attr(obj, "id")

	if raw, ok := obj["fields"]; ok {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err == nil {
			r.Fields = fields
		}
	}
	return nil
}

// promotedLiteral is the only value of the promoting field that counts.
const promotedLiteral = "true"

// FromRecord converts a raw record without validating it. Missing fields
// become empty strings; see attr for the other fallbacks.
func FromRecord(r Record) Posting {
	return Posting{
		ID:           r.ID,
		Title:        attr(r.Fields, "title"),
		Company:      attr(r.Fields, "company"),
		Compensation: attr(r.Fields, "compensation"),
		Location:     attr(r.Fields, "location"),
		Status:       attr(r.Fields, "status"),
		Type:         attr(r.Fields, "type"),
		Description:  attr(r.Fields, "description"),
		Link:         attr(r.Fields, "link"),
		Promotion:    promotion(r.Fields["promoting"]),
	}
}

func FromRecords(records []Record) []Posting {
	postings := make([]Posting, 0, len(records))
	for _, r := range records {
		postings = append(postings, FromRecord(r))
	}
	return postings
}

// promotion only accepts the JSON string "true". A JSON boolean true, "TRUE"
// or 1 are all NotPromoted.
func promotion(raw json.RawMessage) Promotion {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return NotPromoted
	}
	if s == promotedLiteral {
		return Promoted
	}
	return NotPromoted
}

// attr reads a field as display text. Strings are returned as is, null and
// absent fields as "", anything else as its compact JSON text.
func attr(fields map[string]json.RawMessage, name string) string {
	raw, ok := fields[name]
	if !ok {
		return ""
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return strings.TrimSpace(string(raw))
	}
	return buf.String()
}
