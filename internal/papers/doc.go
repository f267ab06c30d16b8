// Package papers persists uploaded past papers and their tags in SQLite.
//
// The Store owns the database connection, schema initialization, and the
// moderation state of each paper (pending until a moderator clears it). It
// also implements duplicate.Source, answering the read-only candidate queries
// the duplicate classifier runs during approval.
//
// Mutations take an advisory file lock next to the database so concurrent
// paperdesk invocations serialize their writes. Schema changes bump the
// version in schema.go; users delete the database to adopt the new schema.
package papers
