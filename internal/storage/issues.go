// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/jeranaias/saveit/internal/model"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrIndexOutOfRange is returned when an index does not address a listed issue.
	ErrIndexOutOfRange = errors.New("the issue index provided is invalid")

	// ErrDuplicateIssue is returned when an equivalent issue already exists.
	ErrDuplicateIssue = errors.New("this issue already exists")

	// ErrDuplicateSolution is returned when the issue already has the link.
	ErrDuplicateSolution = errors.New("this solution already exists for the issue")

	// ErrTagNotFound is returned when no issue carries the tag being renamed.
	ErrTagNotFound = errors.New("no issue has this tag")
)

// =============================================================================
// ISSUE STORE
// =============================================================================

// IssueStore persists issues and remembers the last listing shown to the
// user. Indexes passed to Get, Delete and friends are 1-based positions in
// that listing.
type IssueStore struct {
	db     *sql.DB
	logger *zap.Logger
	now    func() time.Time

	mu       sync.Mutex
	sortType model.SortType
	view     []string // issue IDs of the current listing, in order
	filtered bool     // view holds Find results rather than every issue
}

// Open opens (creating if needed) the issue database at path.
func Open(path string, logger *zap.Logger) (*IssueStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}
	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &IssueStore{
		db:     db,
		logger: logger.Named("storage"),
		now:    time.Now,
	}, nil
}

// Close closes the database.
func (s *IssueStore) Close() error {
	return s.db.Close()
}

// SetSortType changes the order used when the listing is rebuilt after a
// mutation.
func (s *IssueStore) SetSortType(sortType model.SortType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sortType = sortType
}

// Count returns the number of stored issues.
func (s *IssueStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM issues").Scan(&n)
	return n, err
}

// =============================================================================
// LISTING
// =============================================================================

// List returns every issue ordered by sortType and makes that the current
// listing.
func (s *IssueStore) List(ctx context.Context, sortType model.SortType) ([]model.Issue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	issues, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	model.SortIssues(issues, sortType)
	s.sortType = sortType
	s.setView(issues, false)
	return issues, nil
}

// All returns every issue, oldest first. The current listing is unchanged.
func (s *IssueStore) All(ctx context.Context) ([]model.Issue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadAll(ctx)
}

// Find returns the issues whose statement, description or tags contain any
// of keywords, case-insensitively, and makes them the current listing.
func (s *IssueStore) Find(ctx context.Context, keywords []string) ([]model.Issue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	var found []model.Issue
	for _, issue := range all {
		if matchesAny(&issue, keywords) {
			found = append(found, issue)
		}
	}
	model.SortIssues(found, s.sortType)
	s.setView(found, true)
	return found, nil
}

func matchesAny(issue *model.Issue, keywords []string) bool {
	haystack := strings.ToLower(issue.Statement + "\n" + issue.Description + "\n" + strings.Join(issue.Tags, "\n"))
	for _, kw := range keywords {
		if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" && strings.Contains(haystack, kw) {
			return true
		}
	}
	return false
}

// Listing returns the current listing without changing it.
func (s *IssueStore) Listing(ctx context.Context) ([]model.Issue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureView(ctx); err != nil {
		return nil, err
	}
	issues := make([]model.Issue, 0, len(s.view))
	for _, id := range s.view {
		issue, err := s.load(ctx, id)
		if err != nil {
			return nil, err
		}
		issues = append(issues, issue)
	}
	return issues, nil
}

// Get returns the issue at the 1-based index of the current listing.
func (s *IssueStore) Get(ctx context.Context, index int) (model.Issue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.resolve(ctx, index)
	if err != nil {
		return model.Issue{}, err
	}
	return s.load(ctx, id)
}

// =============================================================================
// MUTATIONS
// =============================================================================

// Add stores a new issue and resets the listing to show every issue.
func (s *IssueStore) Add(ctx context.Context, issue model.Issue) (model.Issue, error) {
	issue.Tags = model.NormalizeTags(issue.Tags)
	if err := issue.Validate(); err != nil {
		return model.Issue{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.loadAll(ctx)
	if err != nil {
		return model.Issue{}, err
	}
	for i := range all {
		if all[i].IsSameIssue(&issue) {
			return model.Issue{}, ErrDuplicateIssue
		}
	}

	now := s.now()
	issue.ID = uuid.NewString()
	issue.CreatedAt = now
	issue.UpdatedAt = now

	err = s.withTx(ctx, func(tx *sql.Tx) error {
		return insertIssue(ctx, tx, &issue)
	})
	if err != nil {
		return model.Issue{}, err
	}
	s.logger.Debug("issue added", zap.String("id", issue.ID), zap.String("statement", issue.Statement))

	if err := s.refreshView(ctx); err != nil {
		return model.Issue{}, err
	}
	return issue, nil
}

// Delete removes the issue at index and returns it.
func (s *IssueStore) Delete(ctx context.Context, index int) (model.Issue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.resolve(ctx, index)
	if err != nil {
		return model.Issue{}, err
	}
	issue, err := s.load(ctx, id)
	if err != nil {
		return model.Issue{}, err
	}
	if _, err := s.db.ExecContext(ctx, "DELETE FROM issues WHERE id = ?", id); err != nil {
		return model.Issue{}, fmt.Errorf("failed to delete issue: %w", err)
	}
	s.view = append(s.view[:index-1:index-1], s.view[index:]...)
	s.logger.Debug("issue deleted", zap.String("id", id))
	return issue, nil
}

// AddTags adds tags to the issue at index. Tags it already has are ignored.
func (s *IssueStore) AddTags(ctx context.Context, index int, tags []string) (model.Issue, error) {
	for _, tag := range tags {
		if err := model.ValidateTag(tag); err != nil {
			return model.Issue{}, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.resolve(ctx, index)
	if err != nil {
		return model.Issue{}, err
	}
	err = s.withTx(ctx, func(tx *sql.Tx) error {
		for _, tag := range model.NormalizeTags(tags) {
			if _, err := tx.ExecContext(ctx,
				"INSERT OR IGNORE INTO tags (issue_id, name) VALUES (?, ?)", id, tag); err != nil {
				return fmt.Errorf("failed to add tag: %w", err)
			}
		}
		return s.touch(ctx, tx, id)
	})
	if err != nil {
		return model.Issue{}, err
	}
	return s.load(ctx, id)
}

// AddSolution appends a solution to the issue at index.
func (s *IssueStore) AddSolution(ctx context.Context, index int, solution model.Solution) (model.Issue, error) {
	if err := solution.Validate(); err != nil {
		return model.Issue{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.resolve(ctx, index)
	if err != nil {
		return model.Issue{}, err
	}
	issue, err := s.load(ctx, id)
	if err != nil {
		return model.Issue{}, err
	}
	if issue.HasSolution(solution.Link) {
		return model.Issue{}, ErrDuplicateSolution
	}

	err = s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO solutions (issue_id, position, link, remark) VALUES (?, ?, ?, ?)",
			id, len(issue.Solutions), solution.Link, solution.Remark); err != nil {
			return fmt.Errorf("failed to add solution: %w", err)
		}
		return s.touch(ctx, tx, id)
	})
	if err != nil {
		return model.Issue{}, err
	}
	return s.load(ctx, id)
}

// RefactorTag renames oldTag to newTag on every issue and returns how many
// issues changed. Issues that already carry newTag just lose oldTag.
func (s *IssueStore) RefactorTag(ctx context.Context, oldTag, newTag string) (int, error) {
	if err := model.ValidateTag(oldTag); err != nil {
		return 0, err
	}
	if err := model.ValidateTag(newTag); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var changed int
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		ids, err := queryStrings(ctx, tx, "SELECT issue_id FROM tags WHERE name = ?", oldTag)
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			return ErrTagNotFound
		}
		for _, id := range ids {
			if _, err := tx.ExecContext(ctx,
				"INSERT OR IGNORE INTO tags (issue_id, name) VALUES (?, ?)", id, newTag); err != nil {
				return fmt.Errorf("failed to rename tag: %w", err)
			}
			if err := s.touch(ctx, tx, id); err != nil {
				return err
			}
		}
		if oldTag != newTag {
			if _, err := tx.ExecContext(ctx, "DELETE FROM tags WHERE name = ?", oldTag); err != nil {
				return fmt.Errorf("failed to rename tag: %w", err)
			}
		}
		changed = len(ids)
		return nil
	})
	if err != nil {
		return 0, err
	}
	s.logger.Debug("tag refactored", zap.String("old", oldTag), zap.String("new", newTag), zap.Int("issues", changed))
	return changed, nil
}

// IncrementFrequency records that the issue at index was selected.
func (s *IssueStore) IncrementFrequency(ctx context.Context, index int) (model.Issue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.resolve(ctx, index)
	if err != nil {
		return model.Issue{}, err
	}
	if _, err := s.db.ExecContext(ctx,
		"UPDATE issues SET frequency = frequency + 1 WHERE id = ?", id); err != nil {
		return model.Issue{}, fmt.Errorf("failed to update frequency: %w", err)
	}
	return s.load(ctx, id)
}

// SeedSamples stores the sample issues when the database is empty and
// returns how many were added.
func (s *IssueStore) SeedSamples(ctx context.Context) (int, error) {
	n, err := s.Count(ctx)
	if err != nil || n > 0 {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	samples := model.SampleIssues()
	err = s.withTx(ctx, func(tx *sql.Tx) error {
		base := s.now()
		for i := range samples {
			issue := &samples[i]
			issue.ID = uuid.NewString()
			issue.Tags = model.NormalizeTags(issue.Tags)
			issue.CreatedAt = base.Add(time.Duration(i) * time.Millisecond)
			issue.UpdatedAt = issue.CreatedAt
			if err := insertIssue(ctx, tx, issue); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	s.logger.Info("seeded sample issues", zap.Int("count", len(samples)))
	return len(samples), s.refreshView(ctx)
}

// =============================================================================
// CANDIDATE SOURCE
// =============================================================================

// CurrentTagSet returns every distinct tag name in use.
func (s *IssueStore) CurrentTagSet() []string {
	tags, err := queryStrings(context.Background(), s.db, "SELECT DISTINCT name FROM tags ORDER BY name")
	if err != nil {
		s.logger.Warn("failed to read tag set", zap.Error(err))
		return nil
	}
	return tags
}

// CurrentIssueStatementSet returns the statement of every issue.
func (s *IssueStore) CurrentIssueStatementSet() []string {
	statements, err := queryStrings(context.Background(), s.db, "SELECT statement FROM issues ORDER BY statement")
	if err != nil {
		s.logger.Warn("failed to read statement set", zap.Error(err))
		return nil
	}
	return statements
}

// =============================================================================
// HELPERS
// =============================================================================

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func queryStrings(ctx context.Context, q queryer, query string, args ...any) ([]string, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (s *IssueStore) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *IssueStore) touch(ctx context.Context, tx *sql.Tx, id string) error {
	if _, err := tx.ExecContext(ctx,
		"UPDATE issues SET updated_at = ? WHERE id = ?", s.now().UnixNano(), id); err != nil {
		return fmt.Errorf("failed to update timestamp: %w", err)
	}
	return nil
}

func insertIssue(ctx context.Context, tx *sql.Tx, issue *model.Issue) error {
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO issues (id, statement, description, frequency, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		issue.ID, issue.Statement, issue.Description, issue.Frequency,
		issue.CreatedAt.UnixNano(), issue.UpdatedAt.UnixNano()); err != nil {
		return fmt.Errorf("failed to insert issue: %w", err)
	}
	for i, sol := range issue.Solutions {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO solutions (issue_id, position, link, remark) VALUES (?, ?, ?, ?)",
			issue.ID, i, sol.Link, sol.Remark); err != nil {
			return fmt.Errorf("failed to insert solution: %w", err)
		}
	}
	for _, tag := range issue.Tags {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO tags (issue_id, name) VALUES (?, ?)", issue.ID, tag); err != nil {
			return fmt.Errorf("failed to insert tag: %w", err)
		}
	}
	return nil
}

// loadAll reads every issue with its solutions and tags.
func (s *IssueStore) loadAll(ctx context.Context) ([]model.Issue, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, statement, description, frequency, created_at, updated_at FROM issues ORDER BY created_at")
	if err != nil {
		return nil, fmt.Errorf("failed to query issues: %w", err)
	}
	defer rows.Close()

	var issues []model.Issue
	byID := make(map[string]int)
	for rows.Next() {
		issue, err := scanIssue(rows)
		if err != nil {
			return nil, err
		}
		byID[issue.ID] = len(issues)
		issues = append(issues, issue)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	solRows, err := s.db.QueryContext(ctx,
		"SELECT issue_id, link, remark FROM solutions ORDER BY issue_id, position")
	if err != nil {
		return nil, fmt.Errorf("failed to query solutions: %w", err)
	}
	defer solRows.Close()
	for solRows.Next() {
		var id string
		var sol model.Solution
		if err := solRows.Scan(&id, &sol.Link, &sol.Remark); err != nil {
			return nil, err
		}
		if i, ok := byID[id]; ok {
			issues[i].Solutions = append(issues[i].Solutions, sol)
		}
	}
	if err := solRows.Err(); err != nil {
		return nil, err
	}
	solRows.Close()

	tagRows, err := s.db.QueryContext(ctx, "SELECT issue_id, name FROM tags ORDER BY issue_id, name")
	if err != nil {
		return nil, fmt.Errorf("failed to query tags: %w", err)
	}
	defer tagRows.Close()
	for tagRows.Next() {
		var id, name string
		if err := tagRows.Scan(&id, &name); err != nil {
			return nil, err
		}
		if i, ok := byID[id]; ok {
			issues[i].Tags = append(issues[i].Tags, name)
		}
	}
	return issues, tagRows.Err()
}

// load reads one issue by ID.
func (s *IssueStore) load(ctx context.Context, id string) (model.Issue, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, statement, description, frequency, created_at, updated_at FROM issues WHERE id = ?", id)
	issue, err := scanIssue(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Issue{}, ErrIndexOutOfRange
	}
	if err != nil {
		return model.Issue{}, err
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT link, remark FROM solutions WHERE issue_id = ? ORDER BY position", id)
	if err != nil {
		return model.Issue{}, fmt.Errorf("failed to query solutions: %w", err)
	}
	for rows.Next() {
		var sol model.Solution
		if err := rows.Scan(&sol.Link, &sol.Remark); err != nil {
			rows.Close()
			return model.Issue{}, err
		}
		issue.Solutions = append(issue.Solutions, sol)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return model.Issue{}, err
	}

	issue.Tags, err = queryStrings(ctx, s.db, "SELECT name FROM tags WHERE issue_id = ? ORDER BY name", id)
	if err != nil {
		return model.Issue{}, err
	}
	return issue, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanIssue(row scanner) (model.Issue, error) {
	var issue model.Issue
	var created, updated int64
	if err := row.Scan(&issue.ID, &issue.Statement, &issue.Description,
		&issue.Frequency, &created, &updated); err != nil {
		return model.Issue{}, err
	}
	issue.CreatedAt = time.Unix(0, created)
	issue.UpdatedAt = time.Unix(0, updated)
	return issue, nil
}

// =============================================================================
// LISTING STATE
// =============================================================================

func (s *IssueStore) setView(issues []model.Issue, filtered bool) {
	s.view = make([]string, len(issues))
	for i := range issues {
		s.view[i] = issues[i].ID
	}
	s.filtered = filtered
}

// refreshView rebuilds the listing from every issue in the current order.
func (s *IssueStore) refreshView(ctx context.Context) error {
	issues, err := s.loadAll(ctx)
	if err != nil {
		return err
	}
	model.SortIssues(issues, s.sortType)
	s.setView(issues, false)
	return nil
}

func (s *IssueStore) ensureView(ctx context.Context) error {
	if s.view == nil {
		return s.refreshView(ctx)
	}
	return nil
}

// resolve maps a 1-based listing index to an issue ID.
func (s *IssueStore) resolve(ctx context.Context, index int) (string, error) {
	if err := s.ensureView(ctx); err != nil {
		return "", err
	}
	if index < 1 || index > len(s.view) {
		return "", fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	return s.view[index-1], nil
}
