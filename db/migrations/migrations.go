// Package migrations embeds the budget engine schema.
package migrations

import "embed"

// FS holds the numbered up/down SQL files read by the iofs source driver.
//
//go:embed *.sql
var FS embed.FS

// Version is the schema version the binary expects. Bump it together with
// every new migration pair.
const Version uint = 1
