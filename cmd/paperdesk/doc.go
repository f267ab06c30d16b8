// Package main hosts the paperdesk CLI entrypoint and command graph.
//
// The Cobra command tree exposes the title parser and duplicate check as
// standalone tools, and the moderation workflow (add, import, pending,
// approve, rename, retitle, tag, delete) against the local paper database.
// Configuration, logging, and store setup are resolved lazily in the shared
// command context so commands that only parse titles never touch disk.
package main
