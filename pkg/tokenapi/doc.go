// Package tokenapi はトークン発行APIのクライアント側の処理を提供する。
//
// APIキーを使って短期トークンを発行させ、レスポンスのtokenフィールドだけを
// 呼び出し元に返す。TTL表記（"15m"は15分、"2"は2時間）の解釈も担う。
package tokenapi
