// Package toolindex crawls paginated AI-tool directory listings, enriches
// each discovered tool with structured detail extraction and multilingual
// translations, and persists the results as per-tool JSON records plus
// per-category CSV exports.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency or concern (e.g., fetchfox/, goquery/,
// openrouter/, fs/, crawl/).
package toolindex
