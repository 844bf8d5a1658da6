package storage

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"mcra/internal/domain"
	reporterrors "mcra/internal/errors"
)

var validTableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,63}$`)

// MySQLSink inserts report rows into a MySQL table, one transaction per suite.
type MySQLSink struct {
	db    *sql.DB
	table string
	info  RunInfo
	now   func() time.Time
}

// OpenMySQLSink connects to dsn and creates table if it does not exist.
func OpenMySQLSink(ctx context.Context, dsn, table string, info RunInfo) (*MySQLSink, error) {
	if !IsValidTableName(table) {
		return nil, reporterrors.Configf("invalid table name: %q", table)
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database server: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database server: %w", err)
	}

	sink := &MySQLSink{db: db, table: table, info: info, now: time.Now}
	if _, err := db.ExecContext(ctx, sink.createTableQuery()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table %s: %w", table, err)
	}
	return sink, nil
}

// WriteSuite inserts the suite's rows atomically.
func (s *MySQLSink) WriteSuite(suite string, outcomes []domain.TestOutcome) error {
	if len(outcomes) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin insert for %s: %w", suite, err)
	}
	stmt, err := tx.Prepare(s.insertQuery())
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare insert for %s: %w", suite, err)
	}
	defer stmt.Close()

	createdAt := s.now().UTC()
	for i := range outcomes {
		if _, err := stmt.Exec(s.rowArgs(&outcomes[i], createdAt)...); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert %s row for %s: %w", suite, outcomes[i].TestFile, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit %s rows: %w", suite, err)
	}
	return nil
}

// Close closes the connection pool.
func (s *MySQLSink) Close() error {
	return s.db.Close()
}

func (s *MySQLSink) createTableQuery() string {
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS `%s` ("+
		"id BIGINT AUTO_INCREMENT PRIMARY KEY, "+
		"run_id CHAR(36) NOT NULL, "+
		"run_date DATE NOT NULL, "+
		"test_file VARCHAR(512) NOT NULL, "+
		"suite VARCHAR(64) NOT NULL, "+
		"platform VARCHAR(128) NOT NULL, "+
		"version VARCHAR(64) NOT NULL, "+
		"status VARCHAR(32) NOT NULL, "+
		"preview_features TEXT, "+
		"errmsg_kind VARCHAR(16) NOT NULL, "+
		"errmsg MEDIUMTEXT, "+
		"created_at DATETIME NOT NULL, "+
		"INDEX idx_run (run_id), "+
		"INDEX idx_suite_status (suite, status))", s.table)
}

func (s *MySQLSink) insertQuery() string {
	return fmt.Sprintf("INSERT INTO `%s` "+
		"(run_id, run_date, test_file, suite, platform, version, status, preview_features, errmsg_kind, errmsg, created_at) "+
		"VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)", s.table)
}

func (s *MySQLSink) rowArgs(o *domain.TestOutcome, createdAt time.Time) []any {
	return []any{
		s.info.RunID,
		s.info.Date,
		o.TestFile,
		o.Suite,
		o.Platform,
		o.Version,
		o.Status,
		s.info.PreviewFeatures,
		o.ErrMsg.Kind.String(),
		o.ErrMsg.Text(),
		createdAt,
	}
}

// IsValidTableName accepts plain identifiers only, since the name is
// interpolated into DDL.
func IsValidTableName(name string) bool {
	return validTableName.MatchString(name)
}
