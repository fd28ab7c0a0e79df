package loginstore

import (
	"context"
	"errors"
	"fmt"
)

// Kind はログイン済みIDの保存先の種類。
type Kind string

const (
	// KindMemory はプロセス内のスライスに保存する。
	KindMemory Kind = "memory"
	// KindCache はgo-cacheに保存する。
	KindCache Kind = "cache"
	// KindSQLite はSQLiteファイルに保存する。
	KindSQLite Kind = "sqlite"
)

// ErrUnknownKind は未知の保存先が指定された場合のエラー。
var ErrUnknownKind = errors.New("未知のログインストア種別です")

// Store はログイン済みのセッションIDを管理する。
// 実装は並行に呼び出されても安全でなければならない。
type Store interface {
	// IsLoggedIn はidが登録されているかを返す。空文字列は常にfalse。
	IsLoggedIn(ctx context.Context, id string) (bool, error)
	// Add はidを登録する。重複登録は拒否しない。
	Add(ctx context.Context, id string) error
	// Remove はidに一致する登録をすべて取り除く。未登録の場合は何もしない。
	Remove(ctx context.Context, id string) error
	// Close は保存先のリソースを解放する。
	Close() error
}

// Options はNewに渡す設定。
type Options struct {
	// Kind は保存先の種類。空の場合はKindMemory。
	Kind Kind
	// SQLitePath はKindSQLiteの場合のデータベースファイルのパス。
	SQLitePath string
}

// New はoptsに応じたStoreを生成する。
func New(ctx context.Context, opts Options) (Store, error) {
	switch opts.Kind {
	case "", KindMemory:
		return NewMemoryStore(), nil
	case KindCache:
		return NewCacheStore(), nil
	case KindSQLite:
		return OpenSQLiteStore(ctx, opts.SQLitePath)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, opts.Kind)
	}
}
