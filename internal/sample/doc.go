// Package sample はCookieによる疑似ログインとトークンリフレッシュを行う
// サンプルWebアプリの内部実装を提供する。
//
// プラグインが利用するリフレッシュURLを、ログイン済みのセッションだけに
// 公開する方法を示す。CookieのセッションIDは署名されておらず、
// 認証の仕組みとしては安全ではない。
package sample
