// Package api serves the recipe query endpoints over HTTP.
//
// Routes, mounted under /api/recipes:
//
//	GET  /dropdown-options   vocabulary options for the filter UI
//	POST /search             {"query": "..."} -> search.Response
//	GET  /validate?query=... search.Validation
//	GET  /presets            preset queries
//	GET  /{id}               one recipe
//
// Errors are JSON objects {"error": "..."}.
package api
