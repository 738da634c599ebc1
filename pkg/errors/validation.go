package errors

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"
)

// maxIdentifierLength bounds graph and URL identifiers. VirusTotal graph IDs
// and URL SHA-256 identifiers are far shorter; anything longer is a typo.
const maxIdentifierLength = 256

// identifierRegex matches VirusTotal object identifiers: graph IDs
// ("g2b2c..."), SHA-256 hex digests, and unpadded base64url URL IDs.
var identifierRegex = regexp.MustCompile(`^[A-Za-z0-9_=-]+$`)

// ValidateIdentifier checks that id can be placed in an API path segment.
// kind names the identifier in the error message ("graph", "url").
func ValidateIdentifier(kind, id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "%s id cannot be empty", kind)
	}
	if len(id) > maxIdentifierLength {
		return New(ErrCodeInvalidInput, "%s id too long (max %d characters)", kind, maxIdentifierLength)
	}
	if !identifierRegex.MatchString(id) {
		return New(ErrCodeInvalidInput, "invalid %s id: %q", kind, id)
	}
	return nil
}

// ValidateOutputPath validates the export destination. Absolute and
// relative paths are both fine; empty paths and control characters are not.
func ValidateOutputPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return New(ErrCodeInvalidInput, "output file cannot be empty")
	}
	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "output file contains invalid characters")
		}
	}
	return nil
}

// ValidateBaseURL validates an API base URL override.
// It ensures the URL parses and has a safe scheme (http or https).
func ValidateBaseURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return Wrap(ErrCodeInvalidInput, err, "invalid URL %q", rawURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}
	if u.Host == "" {
		return New(ErrCodeInvalidInput, "URL must include a host")
	}
	return nil
}
