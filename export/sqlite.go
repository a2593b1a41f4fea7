package export

import (
	"database/sql"
	"fmt"
	"os"

	_ "modernc.org/sqlite"

	"github.com/cobrasuicida/srf2025-scraper/model"
)

const sqliteSchema = `
CREATE TABLE scrape_info (
	extraction_time TEXT NOT NULL,
	source TEXT,
	total_contributions INTEGER NOT NULL,
	sessions_processed INTEGER NOT NULL
);

CREATE TABLE sessions (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	position INTEGER NOT NULL
);

CREATE TABLE papers (
	contribution_id INTEGER PRIMARY KEY,
	contribution_code TEXT NOT NULL,
	type TEXT NOT NULL,
	title TEXT NOT NULL,
	date_time TEXT NOT NULL,
	abstract TEXT NOT NULL,
	footnotes TEXT NOT NULL,
	session_id TEXT NOT NULL REFERENCES sessions(id),
	session TEXT NOT NULL,
	page INTEGER NOT NULL
);

CREATE TABLE anomalies (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	severity TEXT NOT NULL,
	kind TEXT NOT NULL,
	session_id TEXT,
	contribution_code TEXT,
	page INTEGER,
	message TEXT
);

CREATE INDEX idx_papers_session ON papers(session_id);
CREATE INDEX idx_papers_code ON papers(contribution_code);
`

// WriteSQLite writes the catalog and its anomalies into a fresh SQLite
// database at path. An existing file at path is replaced. Duplicate
// contribution codes are representable (codes are indexed, not unique)
// because flagged duplicates stay in the catalog.
func WriteSQLite(catalog *model.Catalog, anomalies model.Anomalies, path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing stale database: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec(sqliteSchema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`INSERT INTO scrape_info (extraction_time, source, total_contributions, sessions_processed)
		 VALUES (?, ?, ?, ?)`,
		catalog.Info.ExtractionTime.Format(timeLayout),
		catalog.Info.Source,
		catalog.Info.TotalContributions,
		catalog.Info.SessionsProcessed,
	); err != nil {
		return fmt.Errorf("insert scrape_info: %w", err)
	}

	insertSession, err := tx.Prepare(`INSERT INTO sessions (id, name, position) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare session insert: %w", err)
	}
	defer insertSession.Close()

	insertPaper, err := tx.Prepare(
		`INSERT INTO papers (contribution_id, contribution_code, type, title, date_time,
		                     abstract, footnotes, session_id, session, page)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare paper insert: %w", err)
	}
	defer insertPaper.Close()

	for i, s := range catalog.Sessions {
		if _, err := insertSession.Exec(s.ID, s.Name, i); err != nil {
			return fmt.Errorf("insert session %s: %w", s.ID, err)
		}
		for _, p := range s.Papers {
			if _, err := insertPaper.Exec(
				p.ContributionID, p.ContributionCode, p.Type, p.Title, p.DateTime,
				p.Abstract, p.Footnotes, s.ID, p.Session, p.Page,
			); err != nil {
				return fmt.Errorf("insert paper %s: %w", p.ContributionCode, err)
			}
		}
	}

	insertAnomaly, err := tx.Prepare(
		`INSERT INTO anomalies (severity, kind, session_id, contribution_code, page, message)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare anomaly insert: %w", err)
	}
	defer insertAnomaly.Close()

	for _, a := range anomalies {
		if _, err := insertAnomaly.Exec(
			a.Severity.String(), a.Kind, a.SessionID, a.ContributionCode, a.Page, a.Message,
		); err != nil {
			return fmt.Errorf("insert anomaly: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// ReadSQLiteCounts re-reads the run counters from a database produced by
// [WriteSQLite], mainly for verification after a publish step.
func ReadSQLiteCounts(path string) (papers, sessions int, err error) {
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?mode=ro", path))
	if err != nil {
		return 0, 0, fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := db.QueryRow(`SELECT COUNT(*) FROM papers`).Scan(&papers); err != nil {
		return 0, 0, fmt.Errorf("count papers: %w", err)
	}
	if err := db.QueryRow(`SELECT COUNT(*) FROM sessions`).Scan(&sessions); err != nil {
		return 0, 0, fmt.Errorf("count sessions: %w", err)
	}
	return papers, sessions, nil
}
