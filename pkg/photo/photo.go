package photo

import (
	"context"
	"strings"
)

func isAbsolute(key string) bool {
	return strings.HasPrefix(key, "http://") || strings.HasPrefix(key, "https://")
}

// Static serves photos from a fixed base URL, e.g. a CDN or the API's own /photos route.
// Keys that already are URLs are returned untouched.
type Static struct {
	BaseURL string
}

func (s Static) PhotoURL(_ context.Context, key string) string {
	if key == "" || isAbsolute(key) || s.BaseURL == "" {
		return key
	}
	return strings.TrimRight(s.BaseURL, "/") + "/" + strings.TrimLeft(key, "/")
}
