// Package sqlite 将目录条目导入 SQLite 的 publications 表，按记录标识 upsert。
// 每个输入文件对应一个事务：Commit 提交，Abort 回滚。
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"rusmarc/pkg/contract"
)

// Options: SQLite Writer 选项。
type Options struct {
	// Path: 数据库文件路径（必需）。
	Path string `json:"path"`
	// Journal: 日志模式，默认 WAL。
	Journal string `json:"journal,omitempty"`
	// Replace: 为 true 时 Begin 先删除同一 file_id 的旧行。
	Replace bool `json:"replace,omitempty"`
}

// Store 实现 contract.Writer。
type Store struct {
	db      *sql.DB
	replace bool
	mu      sync.Mutex
}

var _ contract.Writer = (*Store)(nil)

// Open 打开（必要时创建）数据库并初始化表结构。
func Open(opts *Options) (*Store, error) {
	if opts == nil || strings.TrimSpace(opts.Path) == "" {
		return nil, fmt.Errorf("%w: path required", contract.ErrInvalidInput)
	}
	journal := opts.Journal
	if journal == "" {
		journal = "WAL"
	}
	if dir := filepath.Dir(opts.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", opts.Path+"?_journal_mode="+journal+"&_synchronous=NORMAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// 单写者：事务串行
	db.SetMaxOpenConns(1)

	s := &Store{db: db, replace: opts.Replace}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return s, nil
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS publications (
		key TEXT PRIMARY KEY,
		record_id TEXT,
		file_id TEXT NOT NULL,
		idx INTEGER NOT NULL,
		line INTEGER NOT NULL,
		persistent_id TEXT,
		version TEXT,
		isbn TEXT,
		issn TEXT,
		title TEXT,
		responsibility TEXT,
		languages TEXT,
		country TEXT,
		place TEXT,
		publisher TEXT,
		date TEXT,
		extent TEXT,
		fields INTEGER NOT NULL,
		malformed INTEGER NOT NULL,
		skipped INTEGER NOT NULL,
		errors TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_publications_file ON publications(file_id, idx);
	CREATE INDEX IF NOT EXISTS idx_publications_title ON publications(title);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close 关闭数据库。
func (s *Store) Close() error { return s.db.Close() }

// Begin 为 id 开启事务。同一时刻仅一个工件持有事务，其余 Begin 等待。
func (s *Store) Begin(ctx context.Context, id contract.FileID) (contract.Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	a := &artifact{store: s, tx: tx}
	if s.replace {
		if _, err := tx.ExecContext(ctx, `DELETE FROM publications WHERE file_id = ?`, string(id)); err != nil {
			a.finish()
			return nil, fmt.Errorf("delete previous rows: %w", err)
		}
	}
	a.stmt, err = tx.PrepareContext(ctx, upsertSQL)
	if err != nil {
		a.finish()
		return nil, fmt.Errorf("prepare statement: %w", err)
	}
	return a, nil
}

const upsertSQL = `
	INSERT INTO publications (key, record_id, file_id, idx, line, persistent_id, version, isbn, issn,
		title, responsibility, languages, country, place, publisher, date, extent,
		fields, malformed, skipped, errors)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(key) DO UPDATE SET
		record_id = excluded.record_id, file_id = excluded.file_id, idx = excluded.idx,
		line = excluded.line, persistent_id = excluded.persistent_id, version = excluded.version,
		isbn = excluded.isbn, issn = excluded.issn, title = excluded.title,
		responsibility = excluded.responsibility, languages = excluded.languages,
		country = excluded.country, place = excluded.place, publisher = excluded.publisher,
		date = excluded.date, extent = excluded.extent, fields = excluded.fields,
		malformed = excluded.malformed, skipped = excluded.skipped, errors = excluded.errors
`

// Key 返回条目的主键：有记录标识时使用之，否则退化为 file_id#index。
func Key(e contract.Entry) string {
	if e.RecordID != "" {
		return e.RecordID
	}
	return fmt.Sprintf("%s#%d", e.FileID, e.Index)
}

type artifact struct {
	store *Store
	tx    *sql.Tx
	stmt  *sql.Stmt
	done  bool
}

var errFinished = errors.New("artifact already finished")

func (a *artifact) Put(ctx context.Context, e contract.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if a.done {
		return errFinished
	}
	_, err := a.stmt.ExecContext(ctx,
		Key(e), nullable(e.RecordID), string(e.FileID), e.Index, e.Line,
		nullable(e.PersistentID), nullable(e.Version), list(e.ISBN), list(e.ISSN),
		nullable(e.Title), nullable(e.Responsibility), list(e.Languages),
		nullable(e.Country), nullable(e.Place), nullable(e.Publisher), nullable(e.Date), nullable(e.Extent),
		e.Fields, e.Malformed, e.Skipped, list(e.Errors),
	)
	if err != nil {
		return fmt.Errorf("upsert %s: %w", Key(e), err)
	}
	return nil
}

func (a *artifact) Commit() error {
	if a.done {
		return errFinished
	}
	defer a.finish()
	_ = a.stmt.Close()
	if err := a.tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (a *artifact) Abort() error {
	if a.done {
		return nil
	}
	defer a.finish()
	if a.stmt != nil {
		_ = a.stmt.Close()
	}
	if err := a.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return err
	}
	return nil
}

// finish 释放写锁；事务若仍未结束则回滚。
func (a *artifact) finish() {
	if a.done {
		return
	}
	a.done = true
	_ = a.tx.Rollback()
	a.store.mu.Unlock()
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// list 以 JSON 数组存储多值属性；空列表存 NULL。
func list(vs []string) sql.NullString {
	if len(vs) == 0 {
		return sql.NullString{}
	}
	b, _ := json.Marshal(vs)
	return sql.NullString{String: string(b), Valid: true}
}

// Publication 为 publications 表中的一行（查询用）。
type Publication struct {
	Key       string
	RecordID  string
	FileID    string
	Index     int64
	Title     string
	ISBN      []string
	Date      string
	Skipped   int
	Malformed int
}

// Lookup 按主键查询；不存在时返回 sql.ErrNoRows。
func (s *Store) Lookup(ctx context.Context, key string) (*Publication, error) {
	var (
		p Publication
		rid, title, isbn, dt sql.NullString
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT key, record_id, file_id, idx, title, isbn, date, skipped, malformed
		FROM publications WHERE key = ?
	`, key).Scan(&p.Key, &rid, &p.FileID, &p.Index, &title, &isbn, &dt, &p.Skipped, &p.Malformed)
	if err != nil {
		return nil, err
	}
	p.RecordID, p.Title, p.Date = rid.String, title.String, dt.String
	if isbn.Valid {
		if err := json.Unmarshal([]byte(isbn.String), &p.ISBN); err != nil {
			return nil, fmt.Errorf("decode isbn: %w", err)
		}
	}
	return &p, nil
}

// Count 返回 publications 行数。
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM publications`).Scan(&n)
	return n, err
}
