// Package db embeds the schema migrations of the postgres session store.
package db

import "embed"

//go:embed migrations/*.sql
var Migrations embed.FS
