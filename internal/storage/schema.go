// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

// Schema creates the issue tables. Timestamps are unix nanoseconds.
const Schema = `
CREATE TABLE IF NOT EXISTS issues (
	id          TEXT PRIMARY KEY,
	statement   TEXT NOT NULL,
	description TEXT NOT NULL,
	frequency   INTEGER NOT NULL DEFAULT 0,
	created_at  INTEGER NOT NULL,
	updated_at  INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS solutions (
	issue_id TEXT NOT NULL REFERENCES issues(id) ON DELETE CASCADE,
	position INTEGER NOT NULL,
	link     TEXT NOT NULL,
	remark   TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (issue_id, link)
);

CREATE TABLE IF NOT EXISTS tags (
	issue_id TEXT NOT NULL REFERENCES issues(id) ON DELETE CASCADE,
	name     TEXT NOT NULL,
	PRIMARY KEY (issue_id, name)
);

CREATE INDEX IF NOT EXISTS idx_tags_name ON tags(name);
`

// pragmas configure the connection. Foreign keys are required for the
// cascading deletes.
var pragmas = []string{
	"PRAGMA journal_mode=WAL",
	"PRAGMA synchronous=NORMAL",
	"PRAGMA temp_store=MEMORY",
	"PRAGMA foreign_keys=ON",
	"PRAGMA busy_timeout=5000",
}
