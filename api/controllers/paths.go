package controllers

import (
	"net/url"
	"strings"
)

const (
	catalogPath     = "/compradores/"
	buyerLoginPath  = "/compradores/login/"
	sellerLoginPath = "/login/"
	homePath        = "/"
)

// localPath returns raw as a path on this host, or "" when it points elsewhere.
func localPath(raw, host string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	if u.Host != "" && !strings.EqualFold(u.Host, host) {
		return ""
	}
	if !strings.HasPrefix(u.Path, "/") || strings.HasPrefix(u.Path, "//") {
		return ""
	}
	if u.RawQuery != "" {
		return u.Path + "?" + u.RawQuery
	}
	return u.Path
}
