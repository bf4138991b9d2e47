package cv

import (
	"regexp"
	"strings"
)

var protocolRegex = regexp.MustCompile(`(?i)^https?://`)

func ensureProtocol(value string) string {
	if value == "" {
		return ""
	}
	if protocolRegex.MatchString(value) {
		return value
	}
	return "https://" + value
}

// GitHubURL turns a GitHub handle, slug, or URL into a canonical profile
// URL. "@user", "user", "github.com/user" and full URLs are accepted.
func GitHubURL(value string) string {
	trimmed := strings.TrimPrefix(strings.TrimSpace(value), "@")
	if trimmed == "" {
		return ""
	}
	if strings.Contains(trimmed, "github.com") {
		return ensureProtocol(trimmed)
	}
	slug := protocolRegex.ReplaceAllString(trimmed, "")
	slug = strings.TrimPrefix(slug, "github.com/")
	return "https://github.com/" + slug
}

// LinkedInURL turns a LinkedIn handle, slug, or URL into a canonical
// profile URL.
func LinkedInURL(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}
	if strings.Contains(trimmed, "linkedin.com") {
		return ensureProtocol(trimmed)
	}
	slug := strings.TrimPrefix(trimmed, "@")
	slug = strings.TrimPrefix(slug, "in/")
	return "https://www.linkedin.com/in/" + slug
}

// WebsiteURL prefixes a bare domain with https://.
func WebsiteURL(value string) string {
	return ensureProtocol(strings.TrimSpace(value))
}
