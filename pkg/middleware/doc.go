// Package middleware はGinベースのHTTPサーバーで使用する共通ミドルウェアを提供する。
//
// パニックリカバリ、logrusによるリクエストログ、Cookie付きリクエストを
// 許可するCORS設定を含む。
package middleware
