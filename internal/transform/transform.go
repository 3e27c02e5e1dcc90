// Package transform holds the pure text operations behind the chat echo path
// and the /process endpoint.
package transform

import "regexp"

// Prefix is prepended to every echoed message.
const Prefix = "bhola "

var urlRe = regexp.MustCompile(`https?://\S+`)

// Process returns the input with the fixed prefix prepended. Deterministic,
// no failure modes.
func Process(text string) string {
	return Prefix + text
}

// FindURL returns the first http/https token in text, if any.
func FindURL(text string) (string, bool) {
	match := urlRe.FindString(text)
	return match, match != ""
}
