package utils

import "net/url"

const defaultRedirect = "/"

// SafeRedirect validates a caller-supplied return path. Anything that is not
// a same-origin absolute path falls back: empty values, paths not starting
// with "/", and protocol-relative "//" prefixes.
func SafeRedirect(to, fallback string) string {
	if fallback == "" {
		fallback = defaultRedirect
	}
	if to == "" {
		return fallback
	}
	if to[0] != '/' {
		return fallback
	}
	if len(to) >= 2 && to[1] == '/' {
		return fallback
	}
	return to
}

// QueryEscape escapes a value for use in a query string.
func QueryEscape(v string) string {
	return url.QueryEscape(v)
}
