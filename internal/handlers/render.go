package handlers

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/loganlanou/reqres-dashboard/views/layout"
)

// Render renders a templ component and writes it to the response
func Render(c echo.Context, component templ.Component) error {
	return component.Render(c.Request().Context(), c.Response().Writer)
}

// RenderPage wraps body in the site layout, consuming any pending flash
// message, and writes it with status.
func RenderPage(c echo.Context, status int, siteURL, title string, body templ.Component) error {
	meta := layout.NewPageMeta(c, siteURL, title)
	flash := popFlash(c)

	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(status)

	return Render(c, layout.Base(meta, flash, body))
}

func renderOK(c echo.Context, siteURL, title string, body templ.Component) error {
	return RenderPage(c, http.StatusOK, siteURL, title, body)
}
