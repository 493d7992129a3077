// Package catalog is the TMDB client used to look up titles for rooms.
//
// It exposes movie, TV and multi search, title details, per-title
// recommendations and genre discovery. Poster paths are expanded into full
// URLs using the configured image base. Options allow tests to point the client
// at an httptest server.
package catalog
