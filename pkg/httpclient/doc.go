// Package httpclient は外部APIとのHTTP通信を行うクライアントを提供する。
//
// トークン発行APIへのリクエストなど、サーバー側から外部へ送る
// JSONリクエストの送信方法とタイムアウトの扱いを統一する。
package httpclient
