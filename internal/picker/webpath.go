// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package picker

import "strings"

// WebPath rewrites an absolute file path into a URL path by removing every
// occurrence of docRoot that ends at a path boundary and converting
// backslashes to forward slashes. Both arguments are normalised to forward
// slashes first so that a root written with either separator style is
// recognised. A root that is only a prefix of a longer directory name
// ("/srv/pub" in "/srv/public") is left alone.
func WebPath(absPath, docRoot string) string {
	p := toSlash(absPath)
	root := strings.TrimSuffix(toSlash(docRoot), "/")
	if root == "" {
		return p
	}

	var b strings.Builder
	for {
		i := strings.Index(p, root)
		if i < 0 {
			break
		}
		end := i + len(root)
		if end == len(p) || p[end] == '/' {
			b.WriteString(p[:i])
		} else {
			b.WriteString(p[:end])
		}
		p = p[end:]
	}
	b.WriteString(p)
	return b.String()
}

func toSlash(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}
