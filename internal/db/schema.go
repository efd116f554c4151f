package db

// SchemaSQL is the complete schema for the run-history database.
const SchemaSQL = `
-- Batch runs
CREATE TABLE IF NOT EXISTS runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	schema_path TEXT NOT NULL,
	status TEXT NOT NULL CHECK(status IN ('success', 'partial', 'failed')),
	modules INTEGER NOT NULL DEFAULT 0,
	entities INTEGER NOT NULL DEFAULT 0,
	started_at DATETIME NOT NULL,
	finished_at DATETIME NOT NULL
);

-- Individual steps of a run
CREATE TABLE IF NOT EXISTS run_steps (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id INTEGER NOT NULL,
	position INTEGER NOT NULL,
	step_type TEXT NOT NULL CHECK(step_type IN ('module', 'entity')),
	name TEXT NOT NULL,
	status TEXT NOT NULL CHECK(status IN ('generated', 'skipped')),
	FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_run_steps_run ON run_steps(run_id);
`
