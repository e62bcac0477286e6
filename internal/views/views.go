// Package views holds the server-rendered HTML pages.
package views

import (
	"embed"
	"net/http"

	"notez-be/pkg/utils"

	"github.com/gofiber/template/html/v2"
)

//go:embed layouts notes auth media error.html
var FS embed.FS

// NewEngine returns a template engine over the embedded pages.
func NewEngine(reload bool) *html.Engine {
	engine := html.NewFileSystem(http.FS(FS), ".html")
	engine.Reload(reload)
	engine.AddFunc("contentHTML", utils.ContentHTML)
	return engine
}
