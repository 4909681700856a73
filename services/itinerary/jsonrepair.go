package itinerary

import (
	"regexp"
	"strings"
)

var fencePattern = regexp.MustCompile("```(?:json)?\\n?")

// StripMarkdownFences removes the code fences the model sometimes wraps its
// JSON in despite being told not to.
func StripMarkdownFences(raw string) string {
	return strings.TrimSpace(fencePattern.ReplaceAllString(raw, ""))
}

var trailingCommaPattern = regexp.MustCompile(`,\s*([}\]])`)

// RepairJSON applies best-effort fixes to almost-JSON model output: trims
// prose around the outermost object or array, drops trailing commas, and
// closes unbalanced braces and brackets. The result may still fail to parse;
// callers must treat that as a payload error.
func RepairJSON(raw string) string {
	s := StripMarkdownFences(raw)

	start := strings.IndexAny(s, "{[")
	if start >= 0 {
		end := strings.LastIndexAny(s, "}]")
		if end > start {
			s = s[start : end+1]
		} else {
			s = s[start:]
		}
	}

	s = trailingCommaPattern.ReplaceAllString(s, "$1")

	var stack []byte
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				stack = append(stack, '}')
			}
		case '[':
			if !inString {
				stack = append(stack, ']')
			}
		case '}', ']':
			if !inString && len(stack) > 0 && stack[len(stack)-1] == c {
				stack = stack[:len(stack)-1]
			}
		}
	}
	if inString {
		s += `"`
	}
	for i := len(stack) - 1; i >= 0; i-- {
		s += string(stack[i])
	}
	return s
}
