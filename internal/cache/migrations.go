package cache

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS folders (
	id          INTEGER PRIMARY KEY,
	name        TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	locked      INTEGER NOT NULL DEFAULT 0 CHECK(locked IN (0, 1)),
	todo_count  INTEGER NOT NULL DEFAULT 0,
	created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	fetched_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS current_folder (
	slot       INTEGER PRIMARY KEY CHECK(slot = 1),
	folder_id  INTEGER NOT NULL,
	folder     TEXT NOT NULL,
	todos      TEXT NOT NULL DEFAULT '[]',
	fetched_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_folders_name ON folders(name);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
}
