package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"
)

// RepoStore is the smart repository database. It is kept on raw
// database/sql because the chunk queries lean on pgvector operators
// that GORM cannot express cleanly.
type RepoStore struct {
	db *sql.DB
}

// RepoFile is a row in repository_files
type RepoFile struct {
	ID              int64     `json:"id"`
	Filename        string    `json:"filename"`
	FilePath        string    `json:"file_path"`
	FileType        string    `json:"file_type"`
	SubjectCode     string    `json:"subject_code"`
	Semester        int       `json:"semester"`
	Unit            int       `json:"unit"`
	UploaderRole    string    `json:"uploader_role"`
	UploaderID      string    `json:"uploader_id"`
	Status          string    `json:"status"`
	Visibility      string    `json:"visibility"`
	ModerationScore float64   `json:"moderation_score"`
	ModerationFlags string    `json:"moderation_flags"`
	UploadedAt      time.Time `json:"uploaded_at"`
}

// Chunk is a row in doc_chunks awaiting insertion
type Chunk struct {
	FileID     int64
	ChunkIndex int
	Section    string
	Content    string
	Embedding  []float32
}

// ChunkHit is a retrieved chunk with its vector distance to the query
type ChunkHit struct {
	FileID      int64   `json:"file_id"`
	Filename    string  `json:"filename"`
	SubjectCode string  `json:"subject_code"`
	FileType    string  `json:"file_type"`
	ChunkIndex  int     `json:"chunk_index"`
	Section     string  `json:"section"`
	Content     string  `json:"content"`
	Distance    float64 `json:"distance"`
}

// StartRepo opens the repository database from a connection URL
func StartRepo(databaseURL string) (*RepoStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		log.Println("Unable to open repository database:", err)
		return nil, err
	}

	db.SetMaxIdleConns(5)
	db.SetMaxOpenConns(25)
	db.SetConnMaxLifetime(time.Hour)

	log.Println("Successfully connected to repository PostgreSQL Database.")
	return &RepoStore{db: db}, nil
}

// Init creates the repository schema. The vector extension must be
// installable by the connecting role.
func (s *RepoStore) Init() error {
	log.Println("Initializing repository database schema...")

	stmts := []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,
		`CREATE TABLE IF NOT EXISTS repository_files (
			id               BIGSERIAL PRIMARY KEY,
			filename         TEXT NOT NULL,
			file_path        TEXT NOT NULL,
			file_type        TEXT NOT NULL,
			subject_code     TEXT NOT NULL DEFAULT 'UNKNOWN',
			semester         INTEGER NOT NULL DEFAULT 6,
			unit             INTEGER NOT NULL DEFAULT 1,
			uploader_role    TEXT NOT NULL,
			uploader_id      TEXT NOT NULL DEFAULT '',
			status           TEXT NOT NULL DEFAULT 'pending',
			visibility       TEXT NOT NULL DEFAULT 'private',
			moderation_score DOUBLE PRECISION NOT NULL DEFAULT 0,
			moderation_flags TEXT NOT NULL DEFAULT '',
			uploaded_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_repository_files_subject ON repository_files (subject_code)`,
		`CREATE INDEX IF NOT EXISTS idx_repository_files_status ON repository_files (status)`,
		`CREATE TABLE IF NOT EXISTS doc_chunks (
			id           BIGSERIAL PRIMARY KEY,
			file_id      BIGINT NOT NULL REFERENCES repository_files(id) ON DELETE CASCADE,
			subject_code TEXT NOT NULL DEFAULT 'UNKNOWN',
			file_type    TEXT NOT NULL DEFAULT '',
			chunk_index  INTEGER NOT NULL,
			section      TEXT NOT NULL DEFAULT '',
			content      TEXT NOT NULL,
			embedding    vector(384)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_doc_chunks_file ON doc_chunks (file_id)`,
		`CREATE INDEX IF NOT EXISTS idx_doc_chunks_subject ON doc_chunks (subject_code)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("repository schema init failed: %w", err)
		}
	}

	log.Println("Repository database schema ready.")
	return nil
}

// Close closes the database connection
func (s *RepoStore) Close() error {
	log.Println("Closing repository PostgreSQL connection...")
	return s.db.Close()
}

// HealthCheck verifies the database connection is alive
func (s *RepoStore) HealthCheck() error {
	return s.db.Ping()
}

// formatVector renders an embedding as a pgvector literal, e.g. "[0.1,0.2]"
func formatVector(v []float32) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, f := range v {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(float64(f), 'f', -1, 32))
	}
	b.WriteByte(']')
	return b.String()
}

// InsertFile inserts a repository file row and returns its ID
func (s *RepoStore) InsertFile(ctx context.Context, f *RepoFile) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO repository_files
			(filename, file_path, file_type, subject_code, semester, unit,
			 uploader_role, uploader_id, status, visibility, moderation_score, moderation_flags)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		 RETURNING id`,
		f.Filename, f.FilePath, f.FileType, f.SubjectCode, f.Semester, f.Unit,
		f.UploaderRole, f.UploaderID, f.Status, f.Visibility, f.ModerationScore, f.ModerationFlags,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	f.ID = id
	return id, nil
}

// GetFile fetches a repository file by ID
func (s *RepoStore) GetFile(ctx context.Context, id int64) (*RepoFile, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, filename, file_path, file_type, subject_code, semester, unit,
		        uploader_role, uploader_id, status, visibility, moderation_score, moderation_flags, uploaded_at
		 FROM repository_files WHERE id = $1`, id)
	return scanRepoFile(row)
}

// UpdateFileStatus sets review status and visibility for a file
func (s *RepoStore) UpdateFileStatus(ctx context.Context, id int64, status, visibility string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE repository_files SET status = $1, visibility = $2 WHERE id = $3`,
		status, visibility, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListFiles returns repository files, optionally filtered by status
// and/or subject code. Empty filter values match everything.
func (s *RepoStore) ListFiles(ctx context.Context, status, subjectCode string, limit int) ([]*RepoFile, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, filename, file_path, file_type, subject_code, semester, unit,
		        uploader_role, uploader_id, status, visibility, moderation_score, moderation_flags, uploaded_at
		 FROM repository_files
		 WHERE ($1 = '' OR status = $1)
		   AND ($2 = '' OR subject_code = $2)
		 ORDER BY uploaded_at DESC
		 LIMIT $3`, status, subjectCode, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var files []*RepoFile
	for rows.Next() {
		f, err := scanRepoFile(rows)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

// ListFilesBySubject returns a subject's files, optionally narrowed to
// one unit (unit <= 0 matches all units)
func (s *RepoStore) ListFilesBySubject(ctx context.Context, subjectCode string, unit int) ([]*RepoFile, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, filename, file_path, file_type, subject_code, semester, unit,
		        uploader_role, uploader_id, status, visibility, moderation_score, moderation_flags, uploaded_at
		 FROM repository_files
		 WHERE subject_code = $1
		   AND ($2 <= 0 OR unit = $2)
		 ORDER BY uploaded_at DESC`, subjectCode, unit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var files []*RepoFile
	for rows.Next() {
		f, err := scanRepoFile(rows)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

// PendingReview returns student uploads awaiting an admin decision
func (s *RepoStore) PendingReview(ctx context.Context) ([]*RepoFile, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, filename, file_path, file_type, subject_code, semester, unit,
		        uploader_role, uploader_id, status, visibility, moderation_score, moderation_flags, uploaded_at
		 FROM repository_files
		 WHERE uploader_role = 'student' AND status = 'ai_reviewed'
		 ORDER BY uploaded_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var files []*RepoFile
	for rows.Next() {
		f, err := scanRepoFile(rows)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

// InsertChunks writes a document's chunks in a single transaction so a
// half-indexed file never becomes visible to retrieval.
func (s *RepoStore) InsertChunks(ctx context.Context, chunks []Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// subject_code and file_type are copied from the owning file row so
	// scoped retrieval never needs the join
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO doc_chunks (file_id, subject_code, file_type, chunk_index, section, content, embedding)
		 SELECT f.id, f.subject_code, f.file_type, $2, $3, $4, $5::vector
		 FROM repository_files f WHERE f.id = $1`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, ch := range chunks {
		if _, err := stmt.ExecContext(ctx, ch.FileID, ch.ChunkIndex, ch.Section, ch.Content, formatVector(ch.Embedding)); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// DeleteChunksForFile removes all chunks belonging to a file
func (s *RepoStore) DeleteChunksForFile(ctx context.Context, fileID int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM doc_chunks WHERE file_id = $1`, fileID)
	return err
}

// Filenames returns the set of filenames known to the repository. The
// resubmission sweep uses it to spot approved portal files whose
// hand-off never landed.
func (s *RepoStore) Filenames(ctx context.Context) (map[string]struct{}, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT filename FROM repository_files`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := make(map[string]struct{})
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names[name] = struct{}{}
	}
	return names, rows.Err()
}

// CountChunksForFile returns how many chunks a file has indexed
func (s *RepoStore) CountChunksForFile(ctx context.Context, fileID int64) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM doc_chunks WHERE file_id = $1`, fileID).Scan(&n)
	return n, err
}

// SearchChunksByFile returns the nearest chunks of one document
func (s *RepoStore) SearchChunksByFile(ctx context.Context, embedding []float32, fileID int64, limit int) ([]ChunkHit, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT c.file_id, f.filename, c.subject_code, c.file_type, c.chunk_index, c.section, c.content,
		        c.embedding <-> $1::vector AS distance
		 FROM doc_chunks c
		 JOIN repository_files f ON f.id = c.file_id
		 WHERE c.file_id = $2
		 ORDER BY distance ASC
		 LIMIT $3`, formatVector(embedding), fileID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanChunkHits(rows)
}

// SearchChunksBySubject returns the nearest chunks across every indexed
// document of one subject
func (s *RepoStore) SearchChunksBySubject(ctx context.Context, embedding []float32, subjectCode string, limit int) ([]ChunkHit, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT c.file_id, f.filename, c.subject_code, c.file_type, c.chunk_index, c.section, c.content,
		        c.embedding <-> $1::vector AS distance
		 FROM doc_chunks c
		 JOIN repository_files f ON f.id = c.file_id
		 WHERE c.subject_code = $2
		 ORDER BY distance ASC
		 LIMIT $3`, formatVector(embedding), subjectCode, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanChunkHits(rows)
}

// SearchChunksGlobal returns the nearest chunks across the whole repository
func (s *RepoStore) SearchChunksGlobal(ctx context.Context, embedding []float32, limit int) ([]ChunkHit, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT c.file_id, f.filename, c.subject_code, c.file_type, c.chunk_index, c.section, c.content,
		        c.embedding <-> $1::vector AS distance
		 FROM doc_chunks c
		 JOIN repository_files f ON f.id = c.file_id
		 ORDER BY distance ASC
		 LIMIT $2`, formatVector(embedding), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanChunkHits(rows)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRepoFile(r rowScanner) (*RepoFile, error) {
	var f RepoFile
	err := r.Scan(&f.ID, &f.Filename, &f.FilePath, &f.FileType, &f.SubjectCode, &f.Semester, &f.Unit,
		&f.UploaderRole, &f.UploaderID, &f.Status, &f.Visibility, &f.ModerationScore, &f.ModerationFlags, &f.UploadedAt)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func scanChunkHits(rows *sql.Rows) ([]ChunkHit, error) {
	var hits []ChunkHit
	for rows.Next() {
		var h ChunkHit
		if err := rows.Scan(&h.FileID, &h.Filename, &h.SubjectCode, &h.FileType, &h.ChunkIndex, &h.Section, &h.Content, &h.Distance); err != nil {
			return nil, err
		}
		hits = append(hits, h)
	}
	return hits, rows.Err()
}
