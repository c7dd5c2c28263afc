package commands

import "strings"

// Kind identifies which pathway a raw input routes to.
type Kind int

const (
	KindChat Kind = iota
	KindImage
	KindVideo
	// KindUsageWarning is a generation command with an empty remainder:
	// show usage, push nothing, call nothing.
	KindUsageWarning
)

// Route is the classification result for one raw input.
type Route struct {
	Kind Kind
	// Text is the raw input, passed verbatim on the chat pathway.
	Text string
	// Prompt is the effective generation prompt (image or video pathway).
	Prompt string
	// Params holds the parsed --flag values (image or video pathway).
	Params map[string]string
}

var commandTokens = []string{"generate", "/generate"}

// ClassifyInput routes trimmed raw input to one of the pathways. The
// command token match is case-insensitive; the remainder keeps its original
// casing. An attached image forces the chat pathway, which is the only one
// that accepts attachments.
func ClassifyInput(text string, hasImage bool) Route {
	tail, ok := stripCommandPrefix(text)
	if !ok || hasImage {
		return Route{Kind: KindChat, Text: text}
	}

	if strings.TrimSpace(tail) == "" {
		return Route{Kind: KindUsageWarning, Text: text}
	}

	mainPrompt, params := ParseGenerationArgs(tail)

	if videoPrompt, ok := stripVideoPrefix(mainPrompt); ok {
		return Route{Kind: KindVideo, Text: text, Prompt: videoPrompt, Params: params}
	}

	return Route{Kind: KindImage, Text: text, Prompt: mainPrompt, Params: params}
}

// stripCommandPrefix matches the command token followed by a space, or the
// bare token alone. Bare matters because callers trim the input, so
// "generate " arrives as "generate" and must still read as a command with
// an empty remainder.
func stripCommandPrefix(text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, token := range commandTokens {
		if lower == token {
			return "", true
		}
		if strings.HasPrefix(lower, token+" ") {
			return text[len(token)+1:], true
		}
	}
	return "", false
}

// stripVideoPrefix reports whether the main prompt selects the video
// pathway, and if so strips the leading "video" and an optional "of ".
func stripVideoPrefix(mainPrompt string) (string, bool) {
	lower := strings.ToLower(mainPrompt)
	if !strings.HasPrefix(lower, "video") {
		return "", false
	}
	rest := strings.TrimSpace(mainPrompt[len("video"):])
	if strings.HasPrefix(strings.ToLower(rest), "of ") {
		rest = strings.TrimSpace(rest[len("of "):])
	}
	return rest, true
}
