// Package domain models the position-suggest API payload and its CSV rendering.
//
// # Data Source
//
// The suggest endpoint answers a free-text place query with a JSON array, one
// object per matching position, in relevance order:
//
//	GET http://api.goeuro.com/api/v2/position/suggest/en/Berlin
//
//	[
//	  {
//	    "_id": 376217,
//	    "name": "Berlin",
//	    "type": "location",
//	    "geo_position": {"latitude": 52.52437, "longitude": 13.41053}
//	  }
//	]
//
// Only the five fields exported to CSV are read. Everything else in the object
// (iata codes, country, distance, ...) is ignored.
//
// # Field Rendering
//
// "_id", "name" and "type" are treated as opaque text: strings are unquoted,
// any other JSON value (the API returns numeric ids) keeps its literal JSON
// text. See [Text].
//
// Coordinates are rendered in plain decimal notation with the shortest
// representation that round-trips: 52.5 → "52.5", 13 → "13", never exponent
// form. See [FormatCoordinate]. A null coordinate is written as "null", like
// a null text field.
//
// # Late Field Access
//
// The API client only guarantees the body is a JSON array. Each element stays
// a [RawSuggestion] until it is written, and [ParseSuggestion] reports a
// missing or mistyped field as [ErrMalformedSuggestion]. A malformed element is
// therefore a write failure, not a fetch failure.
package domain
