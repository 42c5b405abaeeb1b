package extractor

import "strings"

// noiseReplacer strips the formatting noise models wrap around update lines:
// code fences, the literal "plaintext" fence label, parentheses, angle
// brackets and every quote variant (escaped, straight, curly). Underscores
// become spaces so snake_cased values compare equal to their spaced form.
// Longer tokens are listed first so `\"` wins over `"`.
var noiseReplacer = strings.NewReplacer(
	"```", "",
	"plaintext", "",
	"`", "",
	"(", "",
	")", "",
	"<", "",
	">", "",
	"_", " ",
	"\\\"", "",
	"\"", "",
	"'", "",
	"“", "", // “
	"”", "", // ”
	"‘", "", // ‘
	"’", "", // ’
)

// Normalize cleans one raw LLM line (or a whole multi-line reply; newlines
// are preserved). Normalizing twice yields the same result as once.
func Normalize(text string) string {
	return strings.TrimSpace(noiseReplacer.Replace(text))
}
