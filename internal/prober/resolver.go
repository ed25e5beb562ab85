package prober

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/moamenhredeen/oasprobe/internal/models"
)

// DefaultScheme is used when a target does not name one
const DefaultScheme = "https"

var (
	placeholderPattern = regexp.MustCompile(`\{([^{}]+)\}`)
	versionPattern     = regexp.MustCompile(`^v[0-9]+$`)
)

// Target is the unresolved location of one operation
type Target struct {
	Scheme   string
	Host     string
	BasePath string
	Path     string // path template
}

// Resolved is the final URL of one operation
type Resolved struct {
	URL     string
	Version string // version token moved in front of the path, if any
}

// Placeholders returns the placeholder names of a path template in order
func Placeholders(template string) []string {
	var names []string
	for _, m := range placeholderPattern.FindAllStringSubmatch(template, -1) {
		names = append(names, m[1])
	}
	return names
}

// ResolveURL builds the URL for an operation:
//  1. every {name} placeholder with a value in pathValues is substituted;
//  2. the first version token (v1, v2, ...) found in basePath, then in the
//     path, is moved right after the host and removed from where it was found;
//  3. query values, when present, are appended sorted by key and percent-encoded.
//
// Any brace left in the path is percent-encoded, so the URL never contains "{".
func ResolveURL(t Target, pathValues, queryValues models.Values) Resolved {
	path := substitute(t.Path, pathValues)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	basePath := strings.TrimRight(t.BasePath, "/")
	if basePath != "" && !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}

	var version string
	if i := versionSegment(basePath); i >= 0 {
		version = segmentAt(basePath, i)
		basePath = removeSegment(basePath, i)
	} else if i := versionSegment(path); i >= 0 {
		version = segmentAt(path, i)
		path = removeSegment(path, i)
		if path == "" {
			path = "/"
		}
	}

	full := basePath + path
	if version != "" {
		full = "/" + version + full
	}

	scheme := t.Scheme
	if scheme == "" {
		scheme = DefaultScheme
	}

	u := url.URL{
		Scheme: scheme,
		Host:   t.Host,
		Path:   full,
	}
	if len(queryValues) > 0 {
		q := url.Values{}
		for name, v := range queryValues {
			q.Add(name, v.Encode())
		}
		u.RawQuery = q.Encode()
	}

	return Resolved{URL: u.String(), Version: version}
}

func substitute(template string, values models.Values) string {
	return placeholderPattern.ReplaceAllStringFunc(template, func(m string) string {
		name := m[1 : len(m)-1]
		if v, ok := values[name]; ok {
			return v.Encode()
		}
		return m
	})
}

// versionSegment returns the index of the first version token in p, or -1
func versionSegment(p string) int {
	for i, seg := range strings.Split(p, "/") {
		if versionPattern.MatchString(seg) {
			return i
		}
	}
	return -1
}

func segmentAt(p string, i int) string {
	return strings.Split(p, "/")[i]
}

func removeSegment(p string, i int) string {
	segs := strings.Split(p, "/")
	segs = append(segs[:i], segs[i+1:]...)
	return strings.Join(segs, "/")
}
