package main

import (
	"context"
	"errors"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/ligas/internal/league"
)

const (
	customDescription  = ""
	descriptionExample = "Ejemplo: Dragones, Tigres, Halcones, Lobos"
	descriptionLines   = 6
)

// descriptionOptions lists the canned examples after the free text entry.
func descriptionOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(league.Examples)+1)
	opts = append(opts, huh.NewOption("Escribir mi propia descripción", customDescription))
	for _, ex := range league.Examples {
		opts = append(opts, huh.NewOption(ex, ex))
	}
	return opts
}

// askDescription asks for a league description with a form.
func askDescription(ctx context.Context) (string, error) {
	var choice, text string
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("¿Qué liga quieres generar?").
				Options(descriptionOptions()...).
				Value(&choice),
		),
		huh.NewGroup(
			huh.NewText().
				Title("Describe tu liga").
				Placeholder(descriptionExample).
				Lines(descriptionLines).
				Value(&text),
		).WithHideFunc(func() bool { return choice != customDescription }),
	).RunWithContext(ctx)
	if errors.Is(err, huh.ErrUserAborted) {
		return "", ligasError{err, "Generation canceled."}
	}
	if err != nil {
		return "", ligasError{err, "Could not read the league description."}
	}
	if choice != customDescription {
		return choice, nil
	}
	return text, nil
}
