// Package migrations holds the schema for the index snapshot tables.
package migrations

import "embed"

// FS holds the numbered up and down scripts, applied in name order.
//
//go:embed *.sql
var FS embed.FS
