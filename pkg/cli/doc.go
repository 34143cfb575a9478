/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package cli implements the implindex command-line interface.
//
// # Commands
//
// list - Print the implementor index:
//
//	implindex list [--fragment SRC]... [--trait T] [--output FILE] [--format yaml|json|table]
//
// Publishes every fragment source on the board, attaches a fresh index and
// prints it. Tables compiled into the binary (pkg/fragments/...) were
// published during init and are delivered when the index attaches.
//
// render - Convert a fragment:
//
//	implindex render --fragment SRC [--trait T] [--format script|json|yaml] [--output FILE]
//
// serve - Run the HTTP API (see pkg/server):
//
//	implindex serve [--address ADDR] [--port PORT]
//
// # Global Flags
//
//	--log-level    debug, info, warn, error (env LOG_LEVEL)
//	--help, -h     Show command help
//	--version, -v  Show version information
//
// # Environment Variables
//
//	LOG_LEVEL       logging verbosity
//	IMPLINDEX_MODE  queue (default) keeps every table published before the
//	                index attaches; slot keeps only the last one
//	PORT            serve listen port
//
// # Exit Codes
//
//	0  Success
//	1  Error (invalid arguments, unreadable fragment, conflicting consumer)
package cli
