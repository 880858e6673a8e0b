package catalogdomain

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Shape identifies which wire shape a raw edition record arrived in.
type Shape string

const (
	// ShapeNested carries the parents as `competition: {..., event: {...}}`.
	ShapeNested Shape = "nested"
	// ShapeFlattened carries parent fields side by side with prefixed names.
	ShapeFlattened Shape = "flattened"
)

// DetectShape picks the nested branch only when a non-null competition
// object is present.
func DetectShape(raw map[string]any) Shape {
	if _, ok := raw["competition"].(map[string]any); ok {
		return ShapeNested
	}
	return ShapeFlattened
}

// NormalizeJSON decodes a raw edition record and normalizes it. Undecodable
// input yields an all-default record.
func NormalizeJSON(data []byte) (NormalizedEdition, Shape) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return NormalizedEdition{}, ShapeFlattened
	}
	return Normalize(raw), DetectShape(raw)
}

// Normalize maps a raw edition record in either shape onto the canonical
// structure. It never fails: anything missing or mistyped becomes the zero
// value of its field.
func Normalize(raw map[string]any) NormalizedEdition {
	out := NormalizedEdition{Edition: editionSection(raw)}

	if comp, ok := raw["competition"].(map[string]any); ok {
		out.Competition = nestedCompetition(comp)
		if out.Competition.ID == uuid.Nil {
			out.Competition.ID = out.Edition.CompetitionID
		}
		if event, ok := comp["event"].(map[string]any); ok {
			out.Event = nestedEvent(event)
		}
		if out.Event.ID == uuid.Nil {
			out.Event.ID = out.Competition.EventID
		}
		return out
	}

	out.Competition = flattenedCompetition(raw)
	out.Event = flattenedEvent(raw)
	if out.Competition.EventID == uuid.Nil {
		out.Competition.EventID = out.Event.ID
	}
	return out
}

func editionSection(raw map[string]any) EditionFields {
	return EditionFields{
		ID:                   uuidField(raw, "id"),
		CompetitionID:        uuidField(raw, "competitionId", "competition_id"),
		Year:                 intValue(raw, "year"),
		Slug:                 stringField(raw, "slug"),
		Distance:             floatField(raw, "distance"),
		Elevation:            intField(raw, "elevation"),
		MaxParticipants:      intField(raw, "maxParticipants", "max_participants"),
		City:                 optionalString(raw, "city"),
		CurrentParticipants:  intValue(raw, "currentParticipants", "current_participants"),
		Status:               Status(strings.ToUpper(stringField(raw, "status"))),
		RegistrationStatus:   RegistrationStatus(strings.ToUpper(stringField(raw, "registrationStatus", "registration_status"))),
		RegistrationOpensAt:  timeField(raw, "registrationOpensAt", "registration_opens_at"),
		RegistrationClosesAt: timeField(raw, "registrationClosesAt", "registration_closes_at"),
		StartDate:            timeField(raw, "startDate", "start_date"),
		EndDate:              timeField(raw, "endDate", "end_date"),
	}
}

func nestedCompetition(comp map[string]any) CompetitionFields {
	return CompetitionFields{
		ID:                  uuidField(comp, "id"),
		EventID:             uuidField(comp, "eventId", "event_id"),
		Name:                stringField(comp, "name"),
		Slug:                stringField(comp, "slug"),
		Type:                CompetitionType(strings.ToUpper(stringField(comp, "type"))),
		BaseDistance:        floatField(comp, "baseDistance", "base_distance"),
		BaseElevation:       intField(comp, "baseElevation", "base_elevation"),
		BaseMaxParticipants: intField(comp, "baseMaxParticipants", "base_max_participants"),
		Status:              stringField(comp, "status"),
	}
}

func nestedEvent(event map[string]any) EventFields {
	return EventFields{
		ID:      uuidField(event, "id"),
		Name:    stringField(event, "name"),
		Slug:    stringField(event, "slug"),
		City:    stringField(event, "city"),
		Country: stringField(event, "country"),
	}
}

func flattenedCompetition(raw map[string]any) CompetitionFields {
	return CompetitionFields{
		ID:                  uuidField(raw, "competitionId", "competition_id"),
		EventID:             uuidField(raw, "eventId", "event_id"),
		Name:                stringField(raw, "competitionName", "competition_name"),
		Slug:                stringField(raw, "competitionSlug", "competition_slug"),
		Type:                CompetitionType(strings.ToUpper(stringField(raw, "competitionType", "competition_type"))),
		BaseDistance:        floatField(raw, "competitionBaseDistance", "baseDistance", "base_distance"),
		BaseElevation:       intField(raw, "competitionBaseElevation", "baseElevation", "base_elevation"),
		BaseMaxParticipants: intField(raw, "competitionBaseMaxParticipants", "baseMaxParticipants", "base_max_participants"),
		Status:              stringField(raw, "competitionStatus", "competition_status"),
	}
}

func flattenedEvent(raw map[string]any) EventFields {
	return EventFields{
		ID:      uuidField(raw, "eventId", "event_id"),
		Name:    stringField(raw, "eventName", "event_name"),
		Slug:    stringField(raw, "eventSlug", "event_slug"),
		City:    stringField(raw, "eventCity", "event_city"),
		Country: stringField(raw, "eventCountry", "event_country"),
	}
}

// lookup returns the first non-nil value among keys.
func lookup(raw map[string]any, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := raw[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func stringField(raw map[string]any, keys ...string) string {
	v, ok := lookup(raw, keys...)
	if !ok {
		return ""
	}
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	case json.Number:
		return s.String()
	default:
		return ""
	}
}

func optionalString(raw map[string]any, keys ...string) *string {
	v, ok := lookup(raw, keys...)
	if !ok {
		return nil
	}
	switch s := v.(type) {
	case string:
		return &s
	case []byte:
		str := string(s)
		return &str
	default:
		return nil
	}
}

func uuidField(raw map[string]any, keys ...string) uuid.UUID {
	v, ok := lookup(raw, keys...)
	if !ok {
		return uuid.Nil
	}
	switch id := v.(type) {
	case uuid.UUID:
		return id
	case string:
		if parsed, err := uuid.Parse(id); err == nil {
			return parsed
		}
	case []byte:
		if len(id) == 16 {
			if parsed, err := uuid.FromBytes(id); err == nil {
				return parsed
			}
		}
		if parsed, err := uuid.ParseBytes(id); err == nil {
			return parsed
		}
	}
	return uuid.Nil
}

func floatField(raw map[string]any, keys ...string) *float64 {
	v, ok := lookup(raw, keys...)
	if !ok {
		return nil
	}
	f, ok := toFloat(v)
	if !ok {
		return nil
	}
	return &f
}

func intField(raw map[string]any, keys ...string) *int {
	f := floatField(raw, keys...)
	if f == nil {
		return nil
	}
	n := int(math.Round(*f))
	return &n
}

func intValue(raw map[string]any, keys ...string) int {
	if n := intField(raw, keys...); n != nil {
		return *n
	}
	return 0
}

func toFloat(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	case []byte:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(string(n)), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func timeField(raw map[string]any, keys ...string) *time.Time {
	v, ok := lookup(raw, keys...)
	if !ok {
		return nil
	}
	switch t := v.(type) {
	case time.Time:
		return &t
	case string:
		for _, layout := range []string{time.RFC3339Nano, time.DateTime, time.DateOnly} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return &parsed
			}
		}
	}
	return nil
}
