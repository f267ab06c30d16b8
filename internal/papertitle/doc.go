// Package papertitle extracts structured metadata from free-form past paper
// titles.
//
// Uploaded papers arrive with author-chosen names such as
// "DBMS CAT-1 A1 2023.pdf" or "[CSE2005] Operating Systems FAT G2 2022-2023".
// Parse pulls out the exam type, slot, year or academic year, course code and
// course name, and produces a clean title with metadata tokens trimmed from
// both ends. Every field is optional; parsing never fails and has no state.
//
// The same token classifier drives boundary stripping and course name
// extraction, so a clean title always re-parses to itself.
package papertitle
