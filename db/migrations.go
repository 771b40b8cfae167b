// Package db embeds the SQL migration files so production builds carry
// their own schema.
package db

import "embed"

//go:embed migrations/*.sql
var Migrations embed.FS
