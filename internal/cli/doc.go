// Package cli is the interactive wallet client.
//
// It wires configuration, the SQLite store and the wallet service into a
// read-eval-print loop. Passes arrive through the JSON importer; everything
// else (tagging, grouping, archiving, sorting, drag reordering, barcode export)
// is a REPL command. Type "help" at the prompt for the list.
//
// The REPL is started via App.Run(ctx, in), which blocks until the user exits
// or ctx is cancelled. See runREPL for the dispatch table.
package cli
