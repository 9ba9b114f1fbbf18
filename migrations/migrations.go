// Package migrations embeds the PostgreSQL schema of the vocabulary source.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
