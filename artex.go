// Package artex extracts the article from a web page: the body text,
// title, authors, publish date, top image and canonical URL, plus an
// extractive summary and keyword list derived from the recovered text.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, charset/, sqlite/).
package artex
