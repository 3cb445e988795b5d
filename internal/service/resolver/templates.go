package resolver

import (
	"fmt"

	"github.com/gospia/gospia/backend/internal/model/persona"
)

// replyParts are the persona-flavored sections of a canned reply. The
// closing prayer is shared across all personas.
type replyParts struct {
	Intro     string
	Body      string
	Scripture string
}

const closingPrayer = "Vamos orar: Senhor, abençoe esta vida, traga paz e direção. Em nome de Jesus, Amém."

// personaParts overrides the default sections for specific pastors.
// Fields left empty keep the default.
var personaParts = map[string]replyParts{
	"eduardo": {
		Intro:     "Graça e paz. Vamos olhar para as Escrituras com profundidade.",
		Body:      "A teologia reformada nos lembra da soberania de Deus sobre todas as coisas.",
		Scripture: "> \"Porque dele, e por ele, e para ele são todas as coisas.\" (Romanos 11:36)",
	},
	"mario": {
		Intro: "Olá, família. Como posso ajudar seu lar hoje?",
		Body:  "A família é o primeiro ministério. Precisamos cuidar do nosso lar com amor e paciência.",
	},
	"tiago": {
		Intro: "E aí! Tamo junto.",
		Body:  "A vida é cheia de desafios, mas você tem um propósito gigante.",
	},
}

// partsFor resolves the reply sections for a persona. Personas without
// an override, including unrecognized ids, fall back to the default
// sections with the persona's own name in the greeting.
func partsFor(p persona.Persona) replyParts {
	parts := replyParts{
		Intro:     fmt.Sprintf("A paz do Senhor. Sou o %s.", p.Name),
		Body:      "Entendo o que você está passando. A Bíblia nos ensina a confiar no Senhor em todos os momentos.",
		Scripture: "> \"Confia no Senhor de todo o teu coração e não te estribes no teu próprio entendimento.\" (Provérbios 3:5)",
	}

	override, ok := personaParts[p.ID]
	if !ok {
		return parts
	}
	if override.Intro != "" {
		parts.Intro = override.Intro
	}
	if override.Body != "" {
		parts.Body = override.Body
	}
	if override.Scripture != "" {
		parts.Scripture = override.Scripture
	}
	return parts
}
