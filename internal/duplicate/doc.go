// Package duplicate flags past paper uploads that re-submit a paper already
// in the store under a different title.
//
// Two uploads are the same paper when they share a stored file, or when their
// parsed titles name the same course code and agree on exam type, slot and
// year. Missing metadata is treated as a wildcard, so sparse titles still
// match their fuller counterparts; moderators override the occasional false
// positive.
//
// Classifier.Check runs the store-backed flow used when a moderator approves
// an upload: a file reference lookup, then a bounded course-code candidate
// search, or an exact title lookup when the title carries no course code.
// IsDuplicate applies the same rules to a single pair of records.
package duplicate
