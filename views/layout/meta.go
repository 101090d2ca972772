package layout

import (
	"strings"

	"github.com/labstack/echo/v4"
)

const siteName = "User Directory"

// PageMeta contains the head metadata for a page
type PageMeta struct {
	Title        string
	Description  string
	SiteName     string
	CanonicalURL string
}

// NewPageMeta creates a PageMeta with site-wide defaults for the current request
func NewPageMeta(c echo.Context, siteURL, title string) PageMeta {
	return PageMeta{
		Title:        title,
		Description:  "Browse, edit and remove users from the directory",
		SiteName:     siteName,
		CanonicalURL: BuildAbsoluteURL(siteURL, c.Request().URL.Path),
	}
}

func (pm PageMeta) FullTitle() string {
	if pm.Title == "" {
		return pm.SiteName
	}
	return pm.Title + " - " + pm.SiteName
}

// BuildAbsoluteURL converts a relative path to an absolute URL
func BuildAbsoluteURL(siteURL, path string) string {
	// Handle empty path
	if path == "" {
		return siteURL
	}

	// Handle already absolute URLs
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}

	siteURL = strings.TrimRight(siteURL, "/")
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return siteURL + path
}
