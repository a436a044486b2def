// Package cli provides the interactive Course Manager command-line client.
//
// It wires configuration, the local store, the state managers and the
// background writers, and exposes them through a cobra command tree:
//
//	coursemgr                interactive shell
//	coursemgr export [file]  write a JSON backup
//	coursemgr import <file>  restore a JSON backup
//	coursemgr version        build information
//
// Inside the shell, commands are gated on the session: guests can register
// and log in, users manage their own courses and topics, and the
// administrator additionally manages other users and their courses. Courses
// and topics are addressed by their number in the last listing or by an id
// prefix. See App.commands for the full table and runREPL for the loop.
package cli
