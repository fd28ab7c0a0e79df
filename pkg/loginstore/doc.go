// Package loginstore はログイン済みセッションIDの登録簿を提供する。
//
// 保存先はメモリ、go-cache、SQLiteから選べる。どの実装も並行アクセスに
// 対して安全で、リクエストハンドラへ明示的に渡して使う。
package loginstore
