package loginstore

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/nao1215/refreshgate/pkg/migration"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SQLiteStore はログイン済みIDをSQLiteに保存する。
// プロセスを再起動しても登録は残る。
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLiteStore はpathのSQLiteデータベースを開き、スキーマを適用する。
// pathに":memory:"を指定した場合はプロセス内のみのDBになる。
func OpenSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, errors.New("SQLiteのパスが指定されていません")
	}

	dsn := path
	if path != ":memory:" {
		dsn = "file:" + path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("データベース接続に失敗: %w", err)
	}
	// SQLiteは単一ライターのため接続を1本に絞る
	db.SetMaxOpenConns(1)

	if _, err := migration.Run(ctx, db, migrationsFS, "migrations"); err != nil {
		db.Close()
		return nil, fmt.Errorf("スキーマ初期化に失敗: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// IsLoggedIn はidが登録されているかを返す。
func (s *SQLiteStore) IsLoggedIn(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return false, nil
	}
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM logged_in_ids WHERE user_id = ?)`, id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("ログイン状態の取得に失敗: %w", err)
	}
	return exists, nil
}

// Add はidを登録する。
func (s *SQLiteStore) Add(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `INSERT INTO logged_in_ids (user_id) VALUES (?)`, id); err != nil {
		return fmt.Errorf("ログインIDの登録に失敗: %w", err)
	}
	return nil
}

// Remove はidに一致する登録をすべて削除する。
func (s *SQLiteStore) Remove(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM logged_in_ids WHERE user_id = ?`, id); err != nil {
		return fmt.Errorf("ログインIDの削除に失敗: %w", err)
	}
	return nil
}

// Close はデータベース接続を閉じる。
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
