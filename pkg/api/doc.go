// Package api defines the domain types served by the canteen service
// (recipes, ingredients, tags, lists, users) and the error taxonomy
// used across transport and storage.
//
// Error bodies are part of the external interface: clients match on the
// exact message strings, so APIError serializes to the flat
// {"error": "...", "required": [...]} shape rather than a nested
// envelope.
package api
