package data

import (
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
)

var (
	dashLetter = regexp.MustCompile(`-([a-z])`)
	upperASCII = regexp.MustCompile(`[A-Z]`)
)

// CamelCase converts "user-name" to "userName". Only a dash followed by a
// lower-case letter is folded.
func CamelCase(s string) string {
	return dashLetter.ReplaceAllStringFunc(s, func(m string) string {
		return strings.ToUpper(m[1:])
	})
}

// DashedName converts "userName" to "user-name".
func DashedName(s string) string {
	return upperASCII.ReplaceAllStringFunc(s, func(m string) string {
		return "-" + strings.ToLower(m)
	})
}

// AttrName returns the data-* attribute name for a key.
func AttrName(key string) string {
	return "data-" + DashedName(CamelCase(key))
}

// Decode returns the JSON value of s when s is valid JSON, s otherwise.
// Numbers decode as float64, objects as map[string]any, arrays as []any.
func Decode(s string) any {
	if !gjson.Valid(s) {
		return s
	}
	return gjson.Parse(s).Value()
}
