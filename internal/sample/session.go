package sample

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SessionCookieName はセッションIDを保存するCookieのキー。
const SessionCookieName = "user_id"

// sessionID はリクエストのCookieからセッションIDを取り出す。
// Cookieが無い場合は空文字列を返す。
func sessionID(c *gin.Context) string {
	id, err := c.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return id
}

// setSessionID はセッションIDをCookieに設定する。
// 署名も有効期限も付けない。ブラウザを閉じるまで有効なセッションCookieになる。
func setSessionID(c *gin.Context, id string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, id, 0, "/", "", false, true)
}

// redirectBack はRefererへリダイレクトする。Refererが無い場合はトップページへ戻す。
func redirectBack(c *gin.Context) {
	location := c.GetHeader("Referer")
	if location == "" {
		location = "/"
	}
	c.Redirect(http.StatusFound, location)
}
