// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"fmt"
	"net/url"
	"strings"
)

// FixHotlinkURL rewrites image URLs served from a "download." media host
// onto the language-specific main domain. The media host sits behind
// hotlink protection and answers 403 once the browser upgrades the scheme
// to HTTPS; the same files are reachable under /w/images/ on the main
// domain (e.g. download.vikidia.org/vikidia/fr/images/… becomes
// fr.vikidia.org/w/images/…). URLs not matching this exact shape pass
// through unchanged.
func FixHotlinkURL(raw string) string {
	if !strings.Contains(raw, "download.") {
		return raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	site, ok := strings.CutPrefix(u.Hostname(), "download.")
	if !ok || site == "" {
		return raw
	}
	siteName, _, _ := strings.Cut(site, ".")

	parts := strings.Split(strings.TrimPrefix(u.Path, "/"), "/")
	if len(parts) < 4 || parts[0] != siteName || parts[2] != "images" {
		return raw
	}
	lang := parts[1]
	rest := strings.Join(parts[3:], "/")
	return fmt.Sprintf("https://%s.%s/w/images/%s", lang, site, rest)
}
