package domain

import "strings"

// ResolveRepository determines the owner/repo slug for GitHub operations.
// An explicit override wins unconditionally; otherwise the origin remote URL
// is parsed, recognizing SSH (git@github.com:owner/repo) and HTTPS
// (https://github.com/owner/repo) forms with an optional .git suffix.
// Any other form yields the empty string; callers must treat that as fatal
// for GitHub operations.
func ResolveRepository(override, remoteURL string) string {
	if override != "" {
		return override
	}
	url := strings.TrimSpace(remoteURL)
	if !strings.Contains(url, "github.com") {
		return ""
	}
	url = strings.TrimSuffix(url, ".git")
	if rest, ok := strings.CutPrefix(url, "git@github.com:"); ok {
		return validSlug(rest)
	}
	if _, rest, ok := strings.Cut(url, "github.com/"); ok {
		return validSlug(rest)
	}
	return ""
}

// validSlug returns the slug if it has the owner/repo shape, else "".
func validSlug(s string) string {
	s = strings.Trim(s, "/")
	parts := strings.Split(s, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return ""
	}
	return s
}
