// Package store caches prior analyze/format results keyed by source
// content hash and rule-set hash, so repeated CI invocations over
// unchanged files skip re-parsing. Uses gorm/gorm-sqlite for connection
// setup and migration-at-open, with a single-table cache schema rather
// than a full multi-table run ledger.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/oxhq/styler/internal/rule"
)

// Diagnostic is the cacheable projection of a rule.Violation: enough to
// reproduce the report without re-running the rule engine.
type Diagnostic struct {
	RuleID   string `json:"ruleId"`
	Severity int    `json:"severity"`
	Start    int    `json:"start"`
	End      int    `json:"end"`
	Message  string `json:"message"`
}

// RunRecord is one cached analyze/format outcome for a given source
// content, keyed by the hash of its bytes plus the hash of the active
// rule-set configuration (a config change invalidates every record).
type RunRecord struct {
	gorm.Model
	SourceHash      string `gorm:"size:64;uniqueIndex:idx_source_ruleset"`
	RuleSetHash     string `gorm:"size:64;uniqueIndex:idx_source_ruleset"`
	LanguageVersion int
	FormattedHash   string
	Diagnostics     datatypes.JSONType[[]Diagnostic]
}

// Store wraps a gorm-backed SQLite database holding the run-history
// cache.
type Store struct {
	db *gorm.DB
}

// Open opens (creating if necessary) the cache database at path,
// applying migrations via gorm.AutoMigrate the way
// internal/db/migrate.go applies its schema at connection time.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("creating cache directory %s: %w", dir, err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("opening cache database %s: %w", path, err)
	}

	if err := db.AutoMigrate(&RunRecord{}); err != nil {
		return nil, fmt.Errorf("migrating cache database: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Lookup returns the cached record for (sourceHash, ruleSetHash), and
// whether one was found.
func (s *Store) Lookup(sourceHash, ruleSetHash string) (*RunRecord, bool, error) {
	var rec RunRecord
	err := s.db.Where("source_hash = ? AND rule_set_hash = ?", sourceHash, ruleSetHash).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return &rec, true, nil
}

// Save upserts rec keyed by (SourceHash, RuleSetHash), overwriting any
// previous entry for the same key.
func (s *Store) Save(rec RunRecord) error {
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "source_hash"}, {Name: "rule_set_hash"}},
		DoUpdates: clause.AssignmentColumns([]string{"language_version", "formatted_hash", "diagnostics", "updated_at"}),
	}).Create(&rec).Error
}

// NewDiagnostics wraps diags for storage in RunRecord.Diagnostics.
func NewDiagnostics(diags []Diagnostic) datatypes.JSONType[[]Diagnostic] {
	return datatypes.NewJSONType(diags)
}

// ViolationsToDiagnostics projects rule violations into the cacheable
// Diagnostic shape.
func ViolationsToDiagnostics(violations []rule.Violation) []Diagnostic {
	out := make([]Diagnostic, 0, len(violations))
	for _, v := range violations {
		out = append(out, Diagnostic{
			RuleID:   v.RuleID,
			Severity: int(v.Severity),
			Start:    v.Range.Start,
			End:      v.Range.End,
			Message:  v.Message,
		})
	}
	return out
}
