package library

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"pagesync/internal/config"
)

// ErrNotFound indicates the requested manga is not in the tracker.
var ErrNotFound = errors.New("library: manga not found")

// Store manages tracker persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
	lock *flock.Flock
}

// Open initializes or connects to the tracker database. An advisory file
// lock next to the database serializes concurrent pagesync invocations.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	lock := flock.New(filepath.Join(cfg.Paths.LogDir, "library.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire library lock: %w", err)
	}
	if !locked {
		return nil, errors.New("library database is locked by another pagesync process")
	}

	dbPath := filepath.Join(cfg.Paths.LogDir, "library.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath, lock: lock}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, err
	}

	return store, nil
}

// Close closes the database connection and releases the advisory lock.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	var err error
	if s.db != nil {
		err = s.db.Close()
	}
	if s.lock != nil {
		if unlockErr := s.lock.Unlock(); unlockErr != nil && err == nil {
			err = unlockErr
		}
	}
	return err
}

// Path returns the on-disk database location.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

// AddManga inserts or updates a manga by slug and returns its record.
func (s *Store) AddManga(ctx context.Context, slug, title string) (*Manga, error) {
	if slug == "" {
		return nil, errors.New("slug is required")
	}
	if title == "" {
		title = slug
	}
	now := timestamp()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO manga (slug, title, status, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?)
         ON CONFLICT(slug) DO UPDATE SET
             title = excluded.title,
             updated_at = excluded.updated_at`,
		slug, title, StatusWishlist, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert manga: %w", err)
	}
	return s.GetBySlug(ctx, slug)
}

const mangaColumns = `m.id, m.slug, m.title, m.status, m.created_at, m.updated_at,
    (SELECT COUNT(DISTINCT c.number) FROM chapters c WHERE c.manga_id = m.id) AS prepared_chapters`

func scanManga(row interface{ Scan(...any) error }) (*Manga, error) {
	var m Manga
	err := row.Scan(&m.ID, &m.Slug, &m.Title, &m.Status, &m.CreatedAt, &m.UpdatedAt, &m.PreparedChapters)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// GetBySlug fetches one manga by slug.
func (s *Store) GetBySlug(ctx context.Context, slug string) (*Manga, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+mangaColumns+` FROM manga m WHERE m.slug = ?`, slug)
	m, err := scanManga(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, slug)
	}
	if err != nil {
		return nil, fmt.Errorf("query manga: %w", err)
	}
	return m, nil
}

// List returns every tracked manga ordered by slug.
func (s *Store) List(ctx context.Context) ([]Manga, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+mangaColumns+` FROM manga m ORDER BY m.slug`)
	if err != nil {
		return nil, fmt.Errorf("list manga: %w", err)
	}
	defer rows.Close()

	var result []Manga
	for rows.Next() {
		m, err := scanManga(rows)
		if err != nil {
			return nil, fmt.Errorf("scan manga: %w", err)
		}
		result = append(result, *m)
	}
	return result, rows.Err()
}

// SetStatus updates a manga's lifecycle status.
func (s *Store) SetStatus(ctx context.Context, slug string, status Status) error {
	if !ValidStatus(status) {
		return fmt.Errorf("invalid status %q", status)
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE manga SET status = ?, updated_at = ? WHERE slug = ?`,
		status, timestamp(), slug)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, slug)
	}
	return nil
}

// RecordChapter upserts one prepared chapter archive for a language.
func (s *Store) RecordChapter(ctx context.Context, mangaID int64, number, lang, archivePath string, pageCount int) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO chapters (manga_id, number, language, archive_path, page_count, prepared_at)
         VALUES (?, ?, ?, ?, ?, ?)
         ON CONFLICT(manga_id, number, language) DO UPDATE SET
             archive_path = excluded.archive_path,
             page_count = excluded.page_count,
             prepared_at = excluded.prepared_at`,
		mangaID, number, lang, archivePath, pageCount, timestamp(),
	)
	if err != nil {
		return fmt.Errorf("record chapter: %w", err)
	}
	return nil
}

// Chapters returns every prepared chapter archive for a manga, ordered by
// chapter number then language.
func (s *Store) Chapters(ctx context.Context, mangaID int64) ([]ChapterRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, manga_id, number, language, archive_path, page_count, prepared_at
         FROM chapters WHERE manga_id = ?
         ORDER BY CAST(number AS REAL), language`, mangaID)
	if err != nil {
		return nil, fmt.Errorf("list chapters: %w", err)
	}
	defer rows.Close()

	var result []ChapterRecord
	for rows.Next() {
		var c ChapterRecord
		if err := rows.Scan(&c.ID, &c.MangaID, &c.Number, &c.Language, &c.ArchivePath, &c.PageCount, &c.PreparedAt); err != nil {
			return nil, fmt.Errorf("scan chapter: %w", err)
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

// RecordRun persists one alignment run's statistics.
func (s *Store) RecordRun(ctx context.Context, run RunRecord) error {
	if run.RunID == "" {
		return errors.New("run id is required")
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO alignment_runs (
            run_id, manga_id, chapter_number, total_pages, matched,
            only_a, only_b, avg_distance, threshold, created_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.RunID, run.MangaID, run.ChapterNumber, run.TotalPages, run.Matched,
		run.OnlyA, run.OnlyB, run.AvgDistance, run.Threshold, timestamp(),
	)
	if err != nil {
		return fmt.Errorf("record alignment run: %w", err)
	}
	return nil
}

// Runs returns the alignment run history for a manga, newest first.
func (s *Store) Runs(ctx context.Context, mangaID int64) ([]RunRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, run_id, manga_id, chapter_number, total_pages, matched,
                only_a, only_b, avg_distance, threshold, created_at
         FROM alignment_runs WHERE manga_id = ?
         ORDER BY created_at DESC`, mangaID)
	if err != nil {
		return nil, fmt.Errorf("list alignment runs: %w", err)
	}
	defer rows.Close()

	var result []RunRecord
	for rows.Next() {
		var r RunRecord
		if err := rows.Scan(&r.ID, &r.RunID, &r.MangaID, &r.ChapterNumber, &r.TotalPages, &r.Matched,
			&r.OnlyA, &r.OnlyB, &r.AvgDistance, &r.Threshold, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan alignment run: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}
