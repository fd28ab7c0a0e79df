package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// unmatchedRoute はどのルートにも一致しなかったリクエストのpathとして出力する値。
const unmatchedRoute = "(unmatched)"

// RequestLogger はリクエストごとにアクセスログを出力するGinミドルウェアを返す。
// CookieとAuthorizationヘッダーは出力しない。
// pathには実際のURLではなくルートのパターンを出力し、パスに含まれるIDを残さない。
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := log.WithFields(log.Fields{
			"method":  c.Request.Method,
			"path":    routeOf(c),
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
			"client":  c.ClientIP(),
		})
		switch status := c.Writer.Status(); {
		case status >= 500:
			entry.Error("リクエスト処理")
		case status >= 400:
			entry.Warn("リクエスト処理")
		default:
			entry.Info("リクエスト処理")
		}
	}
}

// routeOf はリクエストが一致したルートのパターンを返す。
func routeOf(c *gin.Context) string {
	if route := c.FullPath(); route != "" {
		return route
	}
	return unmatchedRoute
}
