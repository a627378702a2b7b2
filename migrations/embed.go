// Package migrations содержит SQL миграции, вшитые в бинарь
package migrations

import "embed"

//go:embed postgres/*.sql
var PostgresMigrations embed.FS
