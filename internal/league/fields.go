package league

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Field is one of the sections every league proposal must contain.
type Field struct {
	Name     string
	keywords []string
}

// Fields are the sections the system instruction asks for, in order.
var Fields = []Field{
	{Name: "Nombre de la liga", keywords: []string{"nombre", "liga", "torneo", "copa"}},
	{Name: "Deporte o videojuego", keywords: []string{"deporte", "videojuego", "juego", "disciplina"}},
	{Name: "Número de equipos o jugadores", keywords: []string{"equipos", "jugadores", "participantes"}},
	{Name: "Formato de competición", keywords: []string{"formato", "sistema de competicion", "modalidad"}},
	{Name: "Calendario o enfrentamientos", keywords: []string{"calendario", "enfrentamientos", "jornada", "partidos", "rondas"}},
	{Name: "Reglas de puntuación", keywords: []string{"puntuacion", "puntos", "reglas"}},
}

// Missing returns the fields no keyword of which appears in text.
// Matching ignores case and accents.
func Missing(text string) []Field {
	folded := fold(text)
	var missing []Field
	for _, f := range Fields {
		if !f.presentIn(folded) {
			missing = append(missing, f)
		}
	}
	return missing
}

func (f Field) presentIn(folded string) bool {
	for _, kw := range f.keywords {
		if strings.Contains(folded, kw) {
			return true
		}
	}
	return false
}

func fold(s string) string {
	// transformers keep state, so a new chain is built on every call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}
