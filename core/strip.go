package core

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Normalizer rewrites a build output filename into its logical name.
// A nil Normalizer means no transform is configured.
type Normalizer func(filename string) string

// StripHash compiles pattern and returns a Normalizer that removes or masks the
// content hash it matches. An empty pattern returns a nil Normalizer.
//
// When the pattern has capturing groups, every group that participated in the
// match is replaced in place by asterisks of the same length, so
// "foo.abcde.chunk.js" becomes "foo.*****.chunk.js". Without groups, or when no
// group participated, the whole match is deleted.
func StripHash(pattern string) (Normalizer, error) {
	if pattern == "" {
		return nil, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid strip-hash pattern '%s': %w", pattern, err)
	}
	return NewNormalizer(re), nil
}

// NewNormalizer wraps an already compiled hash pattern. A nil pattern returns
// a nil Normalizer.
func NewNormalizer(re *regexp.Regexp) Normalizer {
	if re == nil {
		return nil
	}
	return func(filename string) string {
		return stripMatch(re, filename)
	}
}

// stripMatch applies re to filename exactly once.
func stripMatch(re *regexp.Regexp, filename string) string {
	loc := re.FindStringSubmatchIndex(filename)
	if loc == nil {
		return filename
	}
	start, end := loc[0], loc[1]

	// Groups that did not participate report -1 and are ignored
	var groups [][2]int
	for i := 2; i+1 < len(loc); i += 2 {
		if loc[i] >= 0 {
			groups = append(groups, [2]int{loc[i], loc[i+1]})
		}
	}

	if len(groups) == 0 {
		return filename[:start] + filename[end:]
	}

	var sb strings.Builder
	sb.Grow(len(filename))
	cursor := 0
	for _, g := range groups {
		// Nested groups overlap an earlier mask
		if g[0] < cursor {
			continue
		}
		sb.WriteString(filename[cursor:g[0]])
		sb.WriteString(strings.Repeat("*", utf8.RuneCountInString(filename[g[0]:g[1]])))
		cursor = g[1]
	}
	sb.WriteString(filename[cursor:])
	return sb.String()
}
