// Package migrations embeds the report schema so the server, the migrate
// command and the integration tests apply the same files.
package migrations

import "embed"

// FS holds the numbered up/down migration pairs
//
//go:embed *.sql
var FS embed.FS
