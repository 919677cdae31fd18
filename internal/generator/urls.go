package generator

import (
	"fmt"
	"strings"

	urlkit "github.com/goliatone/go-urlkit"
)

const siteRouteGroup = "site"

// Routes builds absolute URLs for the generated site. Named artifact routes
// go through a go-urlkit route group so the URL layout stays configurable in
// one place; page locations join the base URL with the page's permalink.
type Routes struct {
	manager *urlkit.RouteManager
	baseURL string
}

// NewRoutes constructs the site route group from the configured base URL.
func NewRoutes(baseURL string) *Routes {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		base = "http://localhost"
	}
	manager := urlkit.NewRouteManager(&urlkit.Config{
		Groups: []urlkit.GroupConfig{
			{
				Name:    siteRouteGroup,
				BaseURL: base,
				Paths: artifactPaths,
			},
		},
	})
	return &Routes{manager: manager, baseURL: base}
}

// BaseURL returns the normalized site base URL.
func (r *Routes) BaseURL() string {
	return r.baseURL
}

// PageURL returns the absolute URL for a page permalink.
func (r *Routes) PageURL(permalink string) string {
	route := strings.TrimSpace(permalink)
	if route == "" {
		route = "/"
	}
	if !strings.HasPrefix(route, "/") {
		route = "/" + route
	}
	return r.baseURL + route
}

// SitemapURL returns the absolute sitemap location.
func (r *Routes) SitemapURL() string {
	return r.artifactURL("sitemap")
}

// RobotsURL returns the absolute robots.txt location.
func (r *Routes) RobotsURL() string {
	return r.artifactURL("robots")
}

var artifactPaths = map[string]string{
	"sitemap": "/sitemap.xml",
	"robots":  "/robots.txt",
}

func (r *Routes) artifactURL(route string) string {
	url, err := r.buildArtifactURL(route)
	if err != nil || strings.TrimSpace(url) == "" {
		return r.baseURL + artifactPaths[route]
	}
	return url
}

func (r *Routes) buildArtifactURL(route string) (url string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("generator: route %q: %v", route, rec)
		}
	}()
	return r.manager.Group(siteRouteGroup).Builder(route).Build()
}
