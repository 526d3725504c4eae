package github

import (
	"fmt"
	"strings"
)

// Scheme is the URI scheme for GitHub roots.
const Scheme = "github"

// Root identifies a directory (or file) in a repository at a ref.
type Root struct {
	Owner string
	Repo  string
	Path  string
	Ref   string
}

// ParseRoot parses github://owner/repo[/path][@ref].
func ParseRoot(uri string) (Root, error) {
	rest, ok := strings.CutPrefix(uri, Scheme+"://")
	if !ok {
		return Root{}, fmt.Errorf("%w: %s", ErrInvalidRoot, uri)
	}

	var root Root
	if i := strings.LastIndex(rest, "@"); i != -1 {
		root.Ref = rest[i+1:]
		rest = rest[:i]
	}

	parts := strings.SplitN(strings.Trim(rest, "/"), "/", 3)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return Root{}, fmt.Errorf("%w: %s", ErrInvalidRoot, uri)
	}
	root.Owner, root.Repo = parts[0], parts[1]
	if len(parts) == 3 {
		root.Path = strings.Trim(parts[2], "/")
	}
	return root, nil
}

// String formats the root back into URI form.
func (r Root) String() string {
	s := fmt.Sprintf("%s://%s/%s", Scheme, r.Owner, r.Repo)
	if r.Path != "" {
		s += "/" + r.Path
	}
	if r.Ref != "" {
		s += "@" + r.Ref
	}
	return s
}
