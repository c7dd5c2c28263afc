// Package commands classifies raw user input and parses generation
// command arguments.
package commands

import "strings"

// flagDelimiter separates the main prompt from flag fragments in a
// generation command tail, e.g. "a cat --aspect-ratio 1:1".
const flagDelimiter = " --"

// ParseGenerationArgs splits a generation command tail into the main prompt
// and a flag map. Each " --" fragment is split at its first whitespace into
// key and value; fragments without whitespace, and entries whose key or
// value trims to empty, are dropped silently. Duplicate keys keep the last
// occurrence. There are no failure cases.
func ParseGenerationArgs(tail string) (string, map[string]string) {
	segments := strings.Split(tail, flagDelimiter)
	mainPrompt := strings.TrimSpace(segments[0])

	params := map[string]string{}
	for _, segment := range segments[1:] {
		idx := strings.IndexFunc(segment, func(r rune) bool {
			return r == ' ' || r == '\t' || r == '\n' || r == '\r'
		})
		if idx < 0 {
			continue
		}
		key := strings.TrimSpace(segment[:idx])
		value := strings.TrimSpace(segment[idx+1:])
		if key == "" || value == "" {
			continue
		}
		params[key] = value
	}

	return mainPrompt, params
}
