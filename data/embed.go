package data

import (
	_ "embed"
)

//go:embed initdb/mariadb/001-seed-roles.sql
var SeedRolesMariaDB string
