// Package envid resolves which environment the dashboard should display
// from the attributes and browser-style location context handed to the
// widget at startup. Resolution is purely syntactic: no network calls.
package envid

import (
	"net/url"
	"strings"
)

// Identity names a target environment either directly by id or by its
// (stack, cluster) name pair. Once a session starts loading, its identity
// is fixed; picking a different environment replaces it wholesale.
type Identity struct {
	ID      string
	Stack   string
	Cluster string
}

// Direct reports whether the identity carries a concrete environment id.
func (id Identity) Direct() bool {
	return id.ID != ""
}

// Named reports whether the identity carries a resolvable name pair.
func (id Identity) Named() bool {
	return id.Stack != "" && id.Cluster != ""
}

// Resolvable reports whether the identity is enough to start a session.
func (id Identity) Resolvable() bool {
	return id.Direct() || id.Named()
}

var idParams = []string{"clusterId", "cluster_id"}

// Resolve determines the target identity from explicit attributes and the
// current location. The first source that yields an answer wins: explicit
// id, explicit name pair, an id query parameter, the
// /projects/{stack}/environments/{cluster} pattern in the path, then the
// same pattern in the fragment. A location that parses badly or matches
// nothing reports false, which sends the caller into the picker flow.
func Resolve(explicit Identity, location string) (Identity, bool) {
	if explicit.Direct() {
		return Identity{ID: explicit.ID}, true
	}
	if explicit.Named() {
		return Identity{Stack: explicit.Stack, Cluster: explicit.Cluster}, true
	}
	if location == "" {
		return Identity{}, false
	}
	u, err := url.Parse(location)
	if err != nil {
		return Identity{}, false
	}
	query := u.Query()
	for _, param := range idParams {
		if v := query.Get(param); v != "" {
			return Identity{ID: v}, true
		}
	}
	if id, ok := matchProjectPath(u.EscapedPath()); ok {
		return id, true
	}
	fragment := u.Fragment
	if cut := strings.Index(fragment, "?"); cut >= 0 {
		fragment = fragment[:cut]
	}
	if id, ok := matchProjectPath(fragment); ok {
		return id, true
	}
	return Identity{}, false
}

// matchProjectPath scans path segments for the
// projects/{stack}/environments/{cluster} shape and percent-decodes the
// captured names. Undecodable segments do not match.
func matchProjectPath(path string) (Identity, bool) {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	for i := 0; i+3 < len(segments); i++ {
		if segments[i] != "projects" || segments[i+2] != "environments" {
			continue
		}
		stack, err := url.PathUnescape(segments[i+1])
		if err != nil || stack == "" {
			continue
		}
		cluster, err := url.PathUnescape(segments[i+3])
		if err != nil || cluster == "" {
			continue
		}
		return Identity{Stack: stack, Cluster: cluster}, true
	}
	return Identity{}, false
}
