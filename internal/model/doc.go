// Package model defines the CSMarketAPI response entities and the strict
// JSON decoding rules that go with them.
//
// Every entity implements json.Unmarshaler. Decoding fails with a *DecodeError
// when a required field is missing (ErrMissingField) or when a value has the
// wrong type or format (ErrInvalidValue). Nullable numbers decode null to a
// nil pointer, never to zero.
//
// Endpoints that answer with a top-level JSON array (history, items, markets,
// currency rates) are wrapped in an entity with an Items field; those entities
// encode back to the same top-level array.
package model
