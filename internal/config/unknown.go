package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

// maxLevenshteinDistance is the maximum edit distance for "did you mean?"
// suggestions when unknown config keys are detected.
const maxLevenshteinDistance = 3

// knownKeys lists the valid keys of each config section. Slices are sorted
// so suggestions are deterministic when two candidates tie.
var knownKeys = map[string][]string{
	"api":     {"base_url", "timeout", "user_agent"},
	"logging": {"log_format", "log_level"},
	"storage": {"backend", "path"},
	"uploads": {"max_image_size", "parallel_uploads"},
}

// knownSections is the sorted list of section names.
var knownSections = func() []string {
	sections := make([]string, 0, len(knownKeys))
	for s := range knownKeys {
		sections = append(sections, s)
	}

	slices.Sort(sections)

	return sections
}()

// checkUnknownKeys inspects TOML metadata for undecoded keys and returns
// an error with "did you mean?" suggestions for each unknown key.
func checkUnknownKeys(md *toml.MetaData) error {
	var errs []error

	reported := make(map[string]bool)

	for _, key := range md.Undecoded() {
		id := key.String()
		if _, ok := knownKeys[key[0]]; !ok {
			id = key[0] // one report per unknown section
		}

		if reported[id] {
			continue
		}

		reported[id] = true

		errs = append(errs, buildKeyError(md, key))
	}

	return errors.Join(errs...)
}

// buildKeyError describes one undecoded key. A misspelled section reports
// once for the section rather than once per key inside it.
func buildKeyError(md *toml.MetaData, key toml.Key) error {
	section := key[0]

	known, ok := knownKeys[section]
	if ok {
		return unknownWithSuggestion("key", strings.Join(key, "."), qualify(section, known))
	}

	if md.Type(section) != "Hash" {
		// A key written outside its table: suggest where it belongs.
		if suggestion := closestQualified(section); suggestion != "" {
			return fmt.Errorf("unknown config key %q, did you mean %q?", section, suggestion)
		}

		return fmt.Errorf("unknown config key %q", section)
	}

	return unknownWithSuggestion("section", section, knownSections)
}

func unknownWithSuggestion(kind, name string, known []string) error {
	if suggestion := closestMatch(name, known); suggestion != "" {
		return fmt.Errorf("unknown config %s %q, did you mean %q?", kind, name, suggestion)
	}

	return fmt.Errorf("unknown config %s %q", kind, name)
}

// closestQualified matches a bare key against every section's keys and
// returns the winner as "section.key".
func closestQualified(name string) string {
	best, bestDist := "", maxLevenshteinDistance+1

	for _, section := range knownSections {
		for _, k := range knownKeys[section] {
			if d := levenshtein(name, k); d < bestDist {
				best, bestDist = section+"."+k, d
			}
		}
	}

	return best
}

func qualify(section string, keys []string) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = section + "." + k
	}

	return out
}

// closestMatch finds the closest known key by Levenshtein distance.
// Returns empty string if no match is within maxLevenshteinDistance.
func closestMatch(unknown string, known []string) string {
	best := ""
	bestDist := maxLevenshteinDistance + 1

	for _, k := range known {
		if d := levenshtein(unknown, k); d < bestDist {
			bestDist = d
			best = k
		}
	}

	return best
}

// levenshtein computes the edit distance between two strings using a
// single-row table.
func levenshtein(a, b string) int {
	if a == "" {
		return len(b)
	}

	if b == "" {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)

	for j := range prev {
		prev[j] = j
	}

	for i := range len(a) {
		curr[0] = i + 1

		for j := range len(b) {
			cost := 1
			if a[i] == b[j] {
				cost = 0
			}

			curr[j+1] = min(curr[j]+1, prev[j+1]+1, prev[j]+cost)
		}

		prev, curr = curr, prev
	}

	return prev[len(b)]
}
