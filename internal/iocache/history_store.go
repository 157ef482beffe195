package iocache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/docu3c/autocodex/internal/contract"
	"github.com/docu3c/autocodex/schema"
)

// Table names for review history tracking.
const (
	reviewRunsTable  = "autocodex_review_runs"
	fileRecordsTable = "autocodex_file_records"
)

// HistoryStoreImpl implements the HistoryStore interface.
type HistoryStoreImpl struct {
	db         *sql.DB
	backend    schema.DatabaseBackend
	driverName string
}

var _ contract.HistoryStore = &HistoryStoreImpl{} // Compile-time check

// NewHistoryStore creates a new HistoryStore with the specified backend.
func NewHistoryStore(backend schema.DatabaseBackend, connStr string) (contract.HistoryStore, error) {
	var db *sql.DB
	var err error
	var driverName string

	switch backend {
	case schema.SQLiteBackend:
		driverName = "sqlite3"
		dbPath := connStr
		if dbPath == "" {
			dbPath = GetHistoryDBFilePath()
		}
		db, err = sql.Open(driverName, dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite database at %q: %w. Check that the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		driverName = "mysql"
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open MySQL database: %w. Check connection string format: user:password@tcp(host:port)/dbname", err)
		}

	case schema.PostgreSQLBackend:
		driverName = "pgx"
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open PostgreSQL database: %w. Check connection string format: host=localhost port=5432 user=postgres dbname=mydb", err)
		}

	case schema.NoneBackend:
		// Return a no-op store for disabled tracking
		return &HistoryStoreImpl{
			db:         nil,
			backend:    backend,
			driverName: "",
		}, nil

	default:
		return nil, fmt.Errorf("unsupported backend: %s", backend)
	}

	// Ping to verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database: %w. Check that the server is running and connection parameters are valid", backend, err)
	}

	// Create the table schemas
	if err := createHistoryTables(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create history tables: %w", err)
	}

	return &HistoryStoreImpl{
		db:         db,
		backend:    backend,
		driverName: driverName,
	}, nil
}

// createHistoryTables creates the review history tracking tables.
func createHistoryTables(db *sql.DB, backend schema.DatabaseBackend) error {
	tables := []struct {
		name  string
		query string
	}{
		{reviewRunsTable, getCreateReviewRunsQuery(backend)},
		{fileRecordsTable, getCreateFileRecordsQuery(backend)},
	}

	for _, table := range tables {
		if _, err := db.Exec(table.query); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table.name, err)
		}
	}

	return nil
}

// getCreateReviewRunsQuery returns the CREATE TABLE query for autocodex_review_runs.
func getCreateReviewRunsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(reviewRunsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				start_time DATETIME(6) NOT NULL,
				end_time DATETIME(6),
				files_total INT,
				config_params TEXT
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGSERIAL PRIMARY KEY,
				start_time TIMESTAMPTZ NOT NULL,
				end_time TIMESTAMPTZ,
				files_total INT,
				config_params TEXT
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER PRIMARY KEY AUTOINCREMENT,
				start_time TEXT NOT NULL,
				end_time TEXT,
				files_total INTEGER,
				config_params TEXT
			);
		`, quotedTableName)
	}
}

// getCreateFileRecordsQuery returns the CREATE TABLE query for autocodex_file_records.
func getCreateFileRecordsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(fileRecordsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT NOT NULL,
				file_path VARCHAR(512) NOT NULL,
				language VARCHAR(50) NOT NULL,
				review_time DATETIME(6) NOT NULL,
				lines_of_code INT NOT NULL,
				complexity INT NOT NULL,
				maintainability DOUBLE NOT NULL,
				duplication INT NOT NULL,
				lint_score DOUBLE NOT NULL,
				issue_count INT NOT NULL,
				PRIMARY KEY (run_id, file_path)
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT NOT NULL,
				file_path TEXT NOT NULL,
				language TEXT NOT NULL,
				review_time TIMESTAMPTZ NOT NULL,
				lines_of_code INT NOT NULL,
				complexity INT NOT NULL,
				maintainability DOUBLE PRECISION NOT NULL,
				duplication INT NOT NULL,
				lint_score DOUBLE PRECISION NOT NULL,
				issue_count INT NOT NULL,
				PRIMARY KEY (run_id, file_path)
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER NOT NULL,
				file_path TEXT NOT NULL,
				language TEXT NOT NULL,
				review_time TEXT NOT NULL,
				lines_of_code INTEGER NOT NULL,
				complexity INTEGER NOT NULL,
				maintainability REAL NOT NULL,
				duplication INTEGER NOT NULL,
				lint_score REAL NOT NULL,
				issue_count INTEGER NOT NULL,
				PRIMARY KEY (run_id, file_path)
			);
		`, quotedTableName)
	}
}

// BeginRun creates a new review run and returns its unique ID.
func (hs *HistoryStoreImpl) BeginRun(startTime time.Time, configParams map[string]any) (int64, error) {
	// Skip for NoneBackend
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return 0, nil
	}

	// Serialize config params to JSON
	configJSON, err := json.Marshal(configParams)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal config params: %w", err)
	}

	quotedTableName := quoteTableName(reviewRunsTable, hs.backend)

	var runID int64
	switch hs.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(`INSERT INTO %s (start_time, config_params) VALUES ($1, $2) RETURNING run_id`, quotedTableName)
		err = hs.db.QueryRow(query, startTime, string(configJSON)).Scan(&runID)
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (start_time, config_params) VALUES (?, ?)`, quotedTableName)
		var result sql.Result
		result, err = hs.db.Exec(query, formatTime(startTime, hs.backend), string(configJSON))
		if err != nil {
			return 0, err
		}
		runID, err = result.LastInsertId()
	}

	if err != nil {
		return 0, fmt.Errorf("failed to insert review run: %w", err)
	}

	return runID, nil
}

// EndRun updates the review run with completion data.
func (hs *HistoryStoreImpl) EndRun(runID int64, endTime time.Time, totalFiles int) error {
	// Skip for NoneBackend
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return nil
	}

	quotedTableName := quoteTableName(reviewRunsTable, hs.backend)

	var updateQuery string
	var args []any

	switch hs.backend {
	case schema.PostgreSQLBackend:
		updateQuery = fmt.Sprintf(`UPDATE %s SET end_time = $1, files_total = $2 WHERE run_id = $3`, quotedTableName)
		args = []any{endTime, totalFiles, runID}
	default: // SQLite and MySQL
		updateQuery = fmt.Sprintf(`UPDATE %s SET end_time = ?, files_total = ? WHERE run_id = ?`, quotedTableName)
		args = []any{formatTime(endTime, hs.backend), totalFiles, runID}
	}

	if _, err := hs.db.Exec(updateQuery, args...); err != nil {
		return fmt.Errorf("failed to update review run: %w", err)
	}

	return nil
}

// RecordFile stores per-file metrics for a reviewed file.
func (hs *HistoryStoreImpl) RecordFile(runID int64, rec schema.FileRecord) error {
	// Skip for NoneBackend
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return nil
	}

	quotedTableName := quoteTableName(fileRecordsTable, hs.backend)

	var query string
	switch hs.backend {
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`
			INSERT INTO %s (run_id, file_path, language, review_time, lines_of_code,
			                complexity, maintainability, duplication, lint_score, issue_count)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`, quotedTableName)
	default: // SQLite and MySQL
		query = fmt.Sprintf(`
			INSERT INTO %s (run_id, file_path, language, review_time, lines_of_code,
			                complexity, maintainability, duplication, lint_score, issue_count)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, quotedTableName)
	}

	args := []any{
		runID, rec.Path, rec.Language, formatTime(rec.ReviewTime, hs.backend), rec.LinesOfCode,
		rec.Complexity, rec.Maintainability, rec.Duplication, rec.LintScore, rec.IssueCount,
	}

	if _, err := hs.db.Exec(query, args...); err != nil {
		return fmt.Errorf("failed to insert file record: %w", err)
	}

	return nil
}

// GetAllRuns retrieves all review runs from the store, oldest first.
func (hs *HistoryStoreImpl) GetAllRuns() ([]schema.RunRecord, error) {
	// Skip for NoneBackend
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return nil, nil
	}

	quotedTableName := quoteTableName(reviewRunsTable, hs.backend)
	query := fmt.Sprintf("SELECT run_id, start_time, end_time, files_total, config_params FROM %s ORDER BY run_id", quotedTableName)

	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query review runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.RunRecord

	for rows.Next() {
		var record schema.RunRecord
		var filesTotal sql.NullInt64

		switch hs.backend {
		case schema.SQLiteBackend:
			var startTimeStr string
			var endTimeStr *string
			if err := rows.Scan(&record.RunID, &startTimeStr, &endTimeStr, &filesTotal, &record.ConfigParams); err != nil {
				return nil, fmt.Errorf("failed to scan review run: %w", err)
			}
			startTime, err := time.Parse(time.RFC3339Nano, startTimeStr)
			if err != nil {
				return nil, fmt.Errorf("failed to parse start_time: %w", err)
			}
			record.StartTime = startTime
			if endTimeStr != nil {
				endTime, err := time.Parse(time.RFC3339Nano, *endTimeStr)
				if err != nil {
					return nil, fmt.Errorf("failed to parse end_time: %w", err)
				}
				record.EndTime = &endTime
			}
		default: // MySQL and PostgreSQL
			if err := rows.Scan(&record.RunID, &record.StartTime, &record.EndTime, &filesTotal, &record.ConfigParams); err != nil {
				return nil, fmt.Errorf("failed to scan review run: %w", err)
			}
		}

		if filesTotal.Valid {
			record.FilesTotal = int(filesTotal.Int64)
		}
		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating review runs: %w", err)
	}

	return results, nil
}

// GetAllFileRecords retrieves all per-file records from the store, grouped by run.
func (hs *HistoryStoreImpl) GetAllFileRecords() ([]schema.FileRecord, error) {
	// Skip for NoneBackend
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return nil, nil
	}

	quotedTableName := quoteTableName(fileRecordsTable, hs.backend)
	query := fmt.Sprintf(`SELECT run_id, file_path, language, review_time, lines_of_code,
    complexity, maintainability, duplication, lint_score, issue_count
    FROM %s ORDER BY run_id, file_path`, quotedTableName)

	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query file records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.FileRecord

	for rows.Next() {
		var record schema.FileRecord

		switch hs.backend {
		case schema.SQLiteBackend:
			var reviewTimeStr string
			if err := rows.Scan(&record.RunID, &record.Path, &record.Language, &reviewTimeStr,
				&record.LinesOfCode, &record.Complexity, &record.Maintainability,
				&record.Duplication, &record.LintScore, &record.IssueCount); err != nil {
				return nil, fmt.Errorf("failed to scan file record: %w", err)
			}
			reviewTime, err := time.Parse(time.RFC3339Nano, reviewTimeStr)
			if err != nil {
				return nil, fmt.Errorf("failed to parse review_time: %w", err)
			}
			record.ReviewTime = reviewTime
		default: // MySQL and PostgreSQL
			if err := rows.Scan(&record.RunID, &record.Path, &record.Language, &record.ReviewTime,
				&record.LinesOfCode, &record.Complexity, &record.Maintainability,
				&record.Duplication, &record.LintScore, &record.IssueCount); err != nil {
				return nil, fmt.Errorf("failed to scan file record: %w", err)
			}
		}

		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating file records: %w", err)
	}

	return results, nil
}

// Close closes the underlying connection.
func (hs *HistoryStoreImpl) Close() error {
	if hs.db != nil {
		return hs.db.Close()
	}
	return nil
}

// GetStatus returns status information about the history store.
func (hs *HistoryStoreImpl) GetStatus() (schema.HistoryStatus, error) {
	status := schema.HistoryStatus{
		Backend:    string(hs.backend),
		Connected:  hs.db != nil,
		TableSizes: make(map[string]int64),
	}

	if hs.backend == schema.NoneBackend || hs.db == nil {
		return status, nil
	}

	// Get total runs
	runsQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(reviewRunsTable, hs.backend))
	row := hs.db.QueryRow(runsQuery)
	if err := row.Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns > 0 {
		// Get last run info
		lastRunQuery := fmt.Sprintf("SELECT run_id, start_time FROM %s ORDER BY run_id DESC LIMIT 1", quoteTableName(reviewRunsTable, hs.backend))
		row = hs.db.QueryRow(lastRunQuery)

		switch hs.backend {
		case schema.SQLiteBackend:
			var lastRunID int64
			var lastRunTimeStr string
			if err := row.Scan(&lastRunID, &lastRunTimeStr); err != nil {
				return status, fmt.Errorf("failed to get last run info: %w", err)
			}
			status.LastRunID = lastRunID
			lastRunTime, err := time.Parse(time.RFC3339Nano, lastRunTimeStr)
			if err != nil {
				return status, fmt.Errorf("failed to parse last run time: %w", err)
			}
			status.LastRunTime = lastRunTime
		default: // MySQL and PostgreSQL store as native datetime
			if err := row.Scan(&status.LastRunID, &status.LastRunTime); err != nil {
				return status, fmt.Errorf("failed to get last run info: %w", err)
			}
		}

		// Get oldest run time
		oldestRunQuery := fmt.Sprintf("SELECT start_time FROM %s ORDER BY run_id ASC LIMIT 1", quoteTableName(reviewRunsTable, hs.backend))
		row = hs.db.QueryRow(oldestRunQuery)

		switch hs.backend {
		case schema.SQLiteBackend:
			var oldestRunTimeStr string
			if err := row.Scan(&oldestRunTimeStr); err != nil {
				return status, fmt.Errorf("failed to get oldest run time: %w", err)
			}
			oldestRunTime, err := time.Parse(time.RFC3339Nano, oldestRunTimeStr)
			if err != nil {
				return status, fmt.Errorf("failed to parse oldest run time: %w", err)
			}
			status.OldestRunTime = oldestRunTime
		default: // MySQL and PostgreSQL store as native datetime
			if err := row.Scan(&status.OldestRunTime); err != nil {
				return status, fmt.Errorf("failed to get oldest run time: %w", err)
			}
		}

		// Get total files reviewed
		filesQuery := fmt.Sprintf("SELECT COALESCE(SUM(files_total), 0) FROM %s", quoteTableName(reviewRunsTable, hs.backend))
		row = hs.db.QueryRow(filesQuery)
		if err := row.Scan(&status.TotalFilesReviewed); err != nil {
			return status, fmt.Errorf("failed to get total files reviewed: %w", err)
		}
	}

	// Get table sizes
	tables := []string{reviewRunsTable, fileRecordsTable}
	for _, table := range tables {
		quotedTable := quoteTableName(table, hs.backend)
		countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quotedTable)
		row = hs.db.QueryRow(countQuery)
		var count int64
		if err := row.Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}

	return status, nil
}

// formatTime converts a time.Time to the appropriate format for the backend.
func formatTime(t time.Time, backend schema.DatabaseBackend) any {
	switch backend {
	case schema.SQLiteBackend:
		return t.Format(time.RFC3339Nano)
	default:
		return t
	}
}
