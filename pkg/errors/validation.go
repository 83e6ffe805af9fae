package errors

import (
	"net/url"
	"strings"
	"unicode"
)

// ValidateCoordinate validates one coordinate part (group, artifact, or
// version) for use as both a URL path segment and a cache directory name.
//
// The validation rules are intentionally conservative:
//   - No empty parts
//   - No control characters or whitespace
//   - No path separators (/ or \)
//   - No parent directory references (..)
//   - Maximum length of 256 characters
//
// An empty part is a configuration error; anything else is a malformed descriptor.
func ValidateCoordinate(field, value string) error {
	if value == "" {
		return New(ErrCodeInvalidConfiguration, "%s cannot be empty", field)
	}

	if len(value) > 256 {
		return New(ErrCodeMalformedDescriptor, "%s too long (max 256 characters)", field)
	}

	for _, r := range value {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeMalformedDescriptor, "%s contains invalid characters: %q", field, value)
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"/",    // URL and POSIX separator
		"\\",   // Windows separator
		"\x00", // Null byte
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(value, pattern) {
			return New(ErrCodeMalformedDescriptor, "%s contains invalid characters: %q", field, pattern)
		}
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL parses, uses an http or https scheme, and names a host.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return Wrap(ErrCodeInvalidInput, err, "invalid URL %q", rawURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme: %q", rawURL)
	}
	if u.Host == "" {
		return New(ErrCodeInvalidInput, "URL must include a host: %q", rawURL)
	}

	return nil
}

// ValidateManifestFilename validates a manifest filename for safety.
// It ensures the filename names a TOML file.
func ValidateManifestFilename(filename string) error {
	if filename == "" {
		return New(ErrCodeInvalidManifest, "manifest filename cannot be empty")
	}

	if !strings.HasSuffix(filename, ".toml") {
		return New(ErrCodeInvalidManifest, "manifest must be a .toml file: %q", filename)
	}

	return nil
}
