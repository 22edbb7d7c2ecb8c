package handlers

import (
	"fmt"
	"html"
	"net/http"

	"github.com/gin-gonic/gin"
)

// The approve/deny links land in a browser, so outcomes render as small
// standalone HTML pages rather than JSON.

func renderPage(c *gin.Context, status int, accent, heading, message string) {
	page := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>%s</title></head>
<body style="font-family:Arial,Helvetica,sans-serif;background:#f6f6f6;margin:0;padding:48px 16px">
  <div style="max-width:480px;margin:0 auto;background:#fff;border-radius:8px;padding:32px;text-align:center;border-top:6px solid %s">
    <h1 style="font-size:22px;margin:0 0 12px">%s</h1>
    <p style="color:#555;margin:0">%s</p>
  </div>
</body>
</html>`, html.EscapeString(heading), accent, html.EscapeString(heading), html.EscapeString(message))

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.String(status, page)
}

func renderSuccessPage(c *gin.Context, heading, message string) {
	renderPage(c, http.StatusOK, "#16a34a", heading, message)
}

func renderInfoPage(c *gin.Context, heading, message string) {
	renderPage(c, http.StatusOK, "#2563eb", heading, message)
}

func renderErrorPage(c *gin.Context, status int, heading, message string) {
	renderPage(c, status, "#dc2626", heading, message)
}
