package server

import "strings"

var scriptEscaper = strings.NewReplacer(
	"&", `\u0026`,
	"<", `\u003c`,
	">", `\u003e`,
	"\u2028", `\u2028`,
	"\u2029", `\u2029`,
)

// EscapeScriptJSON makes JSON safe to embed as a raw value in an HTML script.
// The result is still valid JSON and evaluates to the same value.
func EscapeScriptJSON(json string) string {
	return scriptEscaper.Replace(json)
}
