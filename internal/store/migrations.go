package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
//
// Date and time-of-day columns are TEXT: the driver would otherwise turn
// DATE values into time.Time and the client compares them as strings.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS departments (
	id    TEXT PRIMARY KEY,
	name  TEXT NOT NULL,
	color TEXT NOT NULL DEFAULT '#666666'
);

CREATE TABLE IF NOT EXISTS priorities (
	id    TEXT PRIMARY KEY,
	name  TEXT NOT NULL,
	color TEXT NOT NULL DEFAULT '#666666',
	level INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS statuses (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	color       TEXT NOT NULL DEFAULT '#666666',
	category    TEXT NOT NULL CHECK (category IN ('task', 'handover')),
	order_index INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS schedules (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	title         TEXT NOT NULL,
	department_id TEXT NOT NULL,
	date          TEXT NOT NULL,
	time          TEXT NOT NULL DEFAULT '',
	description   TEXT NOT NULL DEFAULT '',
	duration      INTEGER NOT NULL DEFAULT 60,
	created_at    DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS handovers (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	department_id TEXT NOT NULL,
	title         TEXT NOT NULL,
	description   TEXT NOT NULL DEFAULT '',
	priority_id   TEXT NOT NULL,
	status_id     TEXT NOT NULL,
	created_at    DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS tasks (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	title         TEXT NOT NULL,
	department_id TEXT NOT NULL,
	description   TEXT NOT NULL DEFAULT '',
	priority_id   TEXT NOT NULL,
	status_id     TEXT NOT NULL,
	due_date      TEXT NOT NULL DEFAULT '',
	assignee      TEXT NOT NULL DEFAULT '',
	completed     INTEGER NOT NULL DEFAULT 0,
	created_at    DATETIME NOT NULL
);

-- Comments and attachments point at their owner by (item_type, item_id)
-- with no foreign key, so deleting the owner leaves them in place.
CREATE TABLE IF NOT EXISTS comments (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	item_type   TEXT NOT NULL CHECK (item_type IN ('task', 'handover')),
	item_id     INTEGER NOT NULL,
	author_name TEXT NOT NULL DEFAULT '',
	content     TEXT NOT NULL,
	created_at  DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS attachments (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	item_type    TEXT NOT NULL CHECK (item_type IN ('task', 'handover', 'schedule')),
	item_id      INTEGER NOT NULL,
	file_name    TEXT NOT NULL,
	storage_path TEXT NOT NULL,
	size_bytes   INTEGER NOT NULL DEFAULT 0,
	mime_type    TEXT NOT NULL DEFAULT '',
	uploaded_by  TEXT NOT NULL DEFAULT '',
	created_at   DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_comments_item ON comments(item_type, item_id);
CREATE INDEX IF NOT EXISTS idx_attachments_item ON attachments(item_type, item_id);
CREATE INDEX IF NOT EXISTS idx_schedules_date ON schedules(date);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
	{
		version: 2,
		sql: `
CREATE TABLE IF NOT EXISTS blobs (
	id           TEXT PRIMARY KEY,
	path         TEXT NOT NULL UNIQUE,
	content_type TEXT NOT NULL DEFAULT 'application/octet-stream',
	size_bytes   INTEGER NOT NULL DEFAULT 0,
	data         BLOB NOT NULL,
	created_at   DATETIME NOT NULL
);

INSERT INTO schema_version (version) VALUES (2);
`,
	},
	{
		version: 3,
		sql: `
INSERT OR IGNORE INTO departments (id, name, color) VALUES
	('general', '庶務係', '#4A90E2'),
	('fire', '警防係', '#E74C3C'),
	('prevention', '予防係', '#F39C12'),
	('emergency', '救急・救助係', '#27AE60'),
	('machinery', '機械係', '#9B59B6');

INSERT OR IGNORE INTO priorities (id, name, color, level) VALUES
	('urgent', '緊急', '#DC3545', 4),
	('high', '重要度高', '#FD7E14', 3),
	('medium', '重要度中', '#FFC107', 2),
	('low', '重要度低', '#28A745', 1);

INSERT OR IGNORE INTO statuses (id, name, color, category, order_index) VALUES
	('task_todo', '未着手', '#6C757D', 'task', 1),
	('task_in_progress', '進行中', '#007BFF', 'task', 2),
	('task_completed', '完了', '#28A745', 'task', 3),
	('handover_pending', '未対応', '#DC3545', 'handover', 1),
	('handover_in_progress', '対応中', '#FFC107', 'handover', 2),
	('handover_completed', '対応済', '#28A745', 'handover', 3);

INSERT INTO schema_version (version) VALUES (3);
`,
	},
}
