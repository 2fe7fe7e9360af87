// Package migrations embeds the desk client's SQLite schema.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
