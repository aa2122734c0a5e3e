// Package migrations — SQL-миграции схемы, встраиваются в бинарь.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
