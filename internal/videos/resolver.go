package videos

import (
	"regexp"
	"strings"
)

var (
	watchParamPattern = regexp.MustCompile(`[?&](?:v|vi)=([A-Za-z0-9_-]+)`)
	bareIDPattern     = regexp.MustCompile(`^[A-Za-z0-9_-]{6,}$`)
)

// ResolveID extracts the video identifier from the first v= or vi= query
// parameter of a watch URL.
func ResolveID(rawURL string) (string, error) {
	match := watchParamPattern.FindStringSubmatch(rawURL)
	if match == nil {
		return "", &MalformedURLError{URL: rawURL}
	}
	return match[1], nil
}

// ResolveReference accepts either a watch URL or a bare video identifier.
func ResolveReference(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if bareIDPattern.MatchString(ref) {
		return ref, nil
	}
	return ResolveID(ref)
}
