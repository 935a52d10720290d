// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package device classifies requesting clients as mobile or desktop.
package device

import (
	"regexp"
	"strings"

	"github.com/samber/lo"
)

// Kind is the device class derived from a client identity string.
type Kind int

const (
	Desktop Kind = iota
	Mobile
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	if k == Mobile {
		return "mobile"
	}
	return "desktop"
}

// DefaultMobileKeywords is the vocabulary of tokens that mark a User-Agent as mobile.
// Tokens are literal; "up.browser" matches a dot, not any character.
var DefaultMobileKeywords = []string{
	"android", "avantgo", "blackberry", "bolt", "boost", "cricket", "docomo",
	"fone", "hiptop", "mini", "mobi", "palm", "phone", "pie", "tablet",
	"up.browser", "up.link", "webos", "wos",
}

// Classifier matches client identity strings against a fixed keyword vocabulary.
type Classifier struct {
	pattern *regexp.Regexp
}

// NewClassifier compiles a case-insensitive matcher for the given keywords.
// An empty vocabulary falls back to DefaultMobileKeywords.
func NewClassifier(keywords []string) *Classifier {
	tokens := lo.Uniq(lo.FilterMap(keywords, func(k string, _ int) (string, bool) {
		k = strings.TrimSpace(k)
		return regexp.QuoteMeta(k), k != ""
	}))
	if len(tokens) == 0 {
		return NewClassifier(DefaultMobileKeywords)
	}
	return &Classifier{
		pattern: regexp.MustCompile("(?i)(" + strings.Join(tokens, "|") + ")"),
	}
}

// Classify returns Mobile when the identity contains any vocabulary token.
// An empty identity is treated as absent and classified as Desktop.
func (c *Classifier) Classify(identity string) Kind {
	if identity == "" {
		return Desktop
	}
	if c.pattern.MatchString(identity) {
		return Mobile
	}
	return Desktop
}
