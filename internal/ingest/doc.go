// Package ingest turns local PDF files and HTML index pages into pending
// papers.
//
// Uploads get a content-addressed file reference so byte-identical files are
// caught by the duplicate check at approval time. Index pages are scanned for
// PDF links; each link becomes a pending paper referencing its resolved URL.
package ingest
