package schema

import _ "embed"

// DDL creates the tables zbxstats needs in a standalone SQLite store.
// A real Zabbix database already carries them.
//
//go:embed schema.sql
var DDL string
