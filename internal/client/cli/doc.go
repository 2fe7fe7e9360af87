// Package cli provides the interactive reception desk client.
//
// It wires configuration, local storage, the request pipeline, the realtime
// channel and an interactive REPL. Typical flow: try a silent refresh from
// the stored refresh cookie, connect the channel, then execute user
// commands while live events are printed as they arrive.
//
// Key features:
//   - Register / Login / Logout / WhoAmI
//   - Patients: list, add, delete
//   - Practitioners: list, add
//   - Encounters: list (optionally per practitioner), book, change status
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
