package main

import (
	"math/rand"
	"regexp"
)

var examples = map[string]string{
	"Describe a league in your own words": `ligas "Liga de fútbol con 8 equipos, ida y vuelta"`,
	"Pipe a description from a file":      `cat torneo.txt | ligas --raw > liga.md`,
	"Load a description from a URL":       `ligas https://example.com/torneo.txt`,
	"Serve the generator on the web":      `ligas serve --addr :7860 --rate-limit 1`,
	"Check that your API key works":       `ligas probe --mask`,
}

func randomExample() string {
	keys := make([]string, 0, len(examples))
	for k := range examples {
		keys = append(keys, k)
	}
	desc := keys[rand.Intn(len(keys))] //nolint:gosec
	return desc
}

var cliArgsRe = regexp.MustCompile(`(?:--|-)[a-z-]+`)

// cheapHighlighting colors the flags of an example command line.
func cheapHighlighting(s styles, code string) string {
	return cliArgsRe.ReplaceAllStringFunc(code, func(flag string) string {
		return s.Flag.Render(flag)
	})
}
