package cli

import "regexp"

// ansiRegex matches ANSI escape sequences (colors, cursor movement, etc.)
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// StripANSI removes ANSI escape codes from a string.
// Some IOS-XE terminal monitors emit formatting sequences that would
// otherwise confuse line-oriented parsing.
func StripANSI(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}
