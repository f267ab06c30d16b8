// Package moderation implements the moderator actions on uploaded papers.
//
// Approval runs the duplicate classifier before clearing a paper; a detected
// duplicate leaves the paper pending and reports the stored paper it matched.
// Moderators may override the check. The remaining actions edit the stored
// paper directly: rename, retitle into the canonical title format, tag, and
// delete.
package moderation
