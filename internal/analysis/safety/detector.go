// Package safety detects crisis language in user messages. A match
// forces the fixed crisis response regardless of the active persona.
package safety

import "strings"

// triggerTerms are matched case-insensitively as substrings of the
// user's message. The set is Portuguese because that is the product's
// language; accented and unaccented spellings are both listed.
var triggerTerms = []string{
	"suicídio",
	"suicidio",
	"se matar",
	"me matar",
	"morte",
	"morrer",
	"cortar",
	"abuso",
	"violência",
	"violencia",
}

// Response is the fixed crisis message, returned verbatim whenever a
// trigger term is found.
const Response = `🚨 **ATENÇÃO: Risco Identificado**

Sua vida é preciosa. Por favor, busque ajuda imediata:

*   **SAMU:** 192
*   **Polícia:** 190
*   **Bombeiros:** 193
*   **CVV:** 188 (Apoio Emocional 24h)

Não hesite em ligar para esses números. Deus te ama e há esperança.`

// Detect reports whether text contains any trigger term, along with
// the first term matched.
func Detect(text string) (string, bool) {
	normalized := strings.ToLower(text)
	for _, term := range triggerTerms {
		if strings.Contains(normalized, term) {
			return term, true
		}
	}
	return "", false
}
