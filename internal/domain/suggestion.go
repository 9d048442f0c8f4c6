package domain

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"

	"github.com/goccy/go-json"
)

// ErrMalformedSuggestion is returned when a response element lacks one of the
// exported fields or carries it with the wrong JSON shape.
var ErrMalformedSuggestion = errors.New("malformed suggestion")

// Columns is the fixed CSV header, in output order.
var Columns = []string{"_id", "name", "type", "latitude", "longitude"}

// RawSuggestion is one undecoded element of the suggest response array.
type RawSuggestion = json.RawMessage

// Text is an opaque field value rendered as text.
type Text string

// Suggestion is the decoded form of one response element.
type Suggestion struct {
	ID        Text
	Name      Text
	Type      Text
	Latitude  Text
	Longitude Text
}

// Fields returns the CSV row for the suggestion, aligned with Columns.
func (s Suggestion) Fields() []string {
	return []string{
		string(s.ID),
		string(s.Name),
		string(s.Type),
		string(s.Latitude),
		string(s.Longitude),
	}
}

// FormatCoordinate renders a coordinate in plain decimal notation.
func FormatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Wire shapes. Fields stay raw so a missing key can be told apart from null.

type wireSuggestion struct {
	ID          json.RawMessage `json:"_id"`
	Name        json.RawMessage `json:"name"`
	Type        json.RawMessage `json:"type"`
	GeoPosition json.RawMessage `json:"geo_position"`
}

type wireGeoPosition struct {
	Latitude  json.RawMessage `json:"latitude"`
	Longitude json.RawMessage `json:"longitude"`
}

// ParseSuggestion extracts the exported fields from a raw response element.
func ParseSuggestion(raw RawSuggestion) (Suggestion, error) {
	var w wireSuggestion
	if !isObject(raw) {
		return Suggestion{}, fmt.Errorf("%w: element is not an object", ErrMalformedSuggestion)
	}
	if err := json.Unmarshal(raw, &w); err != nil {
		return Suggestion{}, fmt.Errorf("%w: %v", ErrMalformedSuggestion, err)
	}

	var (
		s   Suggestion
		err error
	)
	if s.ID, err = parseText("_id", w.ID); err != nil {
		return Suggestion{}, err
	}
	if s.Name, err = parseText("name", w.Name); err != nil {
		return Suggestion{}, err
	}
	if s.Type, err = parseText("type", w.Type); err != nil {
		return Suggestion{}, err
	}

	if !isObject(w.GeoPosition) {
		return Suggestion{}, fmt.Errorf("%w: geo_position is not an object", ErrMalformedSuggestion)
	}
	var geo wireGeoPosition
	if err := json.Unmarshal(w.GeoPosition, &geo); err != nil {
		return Suggestion{}, fmt.Errorf("%w: geo_position: %v", ErrMalformedSuggestion, err)
	}
	if s.Latitude, err = parseCoordinate("latitude", geo.Latitude); err != nil {
		return Suggestion{}, err
	}
	if s.Longitude, err = parseCoordinate("longitude", geo.Longitude); err != nil {
		return Suggestion{}, err
	}
	return s, nil
}

func parseText(field string, raw json.RawMessage) (Text, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "", fmt.Errorf("%w: missing %s", ErrMalformedSuggestion, field)
	}
	if raw[0] != '"' {
		return Text(raw), nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrMalformedSuggestion, field, err)
	}
	return Text(s), nil
}

// parseCoordinate renders a number with FormatCoordinate. An explicit null is
// kept as the literal text "null", the same as for the text fields.
func parseCoordinate(field string, raw json.RawMessage) (Text, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "", fmt.Errorf("%w: missing geo_position.%s", ErrMalformedSuggestion, field)
	}
	if bytes.Equal(raw, jsonNull) {
		return Text(jsonNull), nil
	}
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", fmt.Errorf("%w: geo_position.%s is not a number", ErrMalformedSuggestion, field)
	}
	return Text(FormatCoordinate(v)), nil
}

var jsonNull = []byte("null")

func isObject(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '{'
}
