// Package db holds the schema migrations and the sqlc generated query layer.
package db

import "embed"

// Migrations contains the versioned golang-migrate files
//
//go:embed migrations/*.sql
var Migrations embed.FS
