// Package tokenstub はトークン発行APIの開発用スタブを提供する。
//
// POST /v1/tokens でAPIキーを検証し、指定されたTTLで失効するHS256の
// JWTを返す。サンプルアプリを外部APIなしで動かすために使う。
package tokenstub
