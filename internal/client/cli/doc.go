// Package cli provides the NexaBoard command-line client.
//
// It wires configuration, the local session database, the REST client and
// the task services, then exposes them two ways: one-shot cobra subcommands
// (nexaboard tasks list --status pending) and an interactive REPL that starts
// when no subcommand is given.
//
// Every entry point bootstraps the persisted session first. A remembered
// identity is shown immediately while the profile is refreshed in the
// background; a rejected token signs the user out.
//
// See NewRootCommand, App and runREPL for details.
package cli
