// Package league turns a one-line description of a sports or video game
// league into a full league proposal using a generation provider.
package league

import (
	"context"
	"time"

	"github.com/charmbracelet/ligas/internal/proto"
	"github.com/charmbracelet/ligas/internal/provider"
)

// Defaults for the generation call.
const (
	DefaultModel       = "gemini-2.5-flash"
	DefaultTemperature = 0.9
	DefaultMaxTokens   = 2048
)

// SystemInstruction is sent with every request.
const SystemInstruction = `Eres un asistente que crea ligas deportivas o de videojuegos a partir de la información
que proporciona el usuario en un único mensaje.

Cada solicitud es independiente y no debes asumir contexto previo.

Tu respuesta debe incluir siempre:
- Nombre de la liga
- Deporte o videojuego
- Número de equipos o jugadores
- Formato de competición
- Calendario o enfrentamientos resumidos
- Reglas básicas de puntuación

Si el usuario solo proporciona nombres, utilízalos como participantes y completa
el resto de la información de forma coherente.
Si faltan datos, rellénalos con opciones razonables.
La respuesta debe ser clara, ordenada y fácil de leer.`

// Config holds the generation parameters.
type Config struct {
	Model       string
	Temperature float64
	MaxTokens   int64
	Timeout     time.Duration
}

// DefaultConfig returns the default generation parameters.
func DefaultConfig() Config {
	return Config{
		Model:       DefaultModel,
		Temperature: DefaultTemperature,
		MaxTokens:   DefaultMaxTokens,
	}
}

// Generator sends league descriptions to a provider.
type Generator struct {
	client provider.Client
	config Config
}

// New creates a Generator. Zero values in config are replaced by the
// defaults.
func New(client provider.Client, config Config) *Generator {
	def := DefaultConfig()
	if config.Model == "" {
		config.Model = def.Model
	}
	if config.Temperature == 0 {
		config.Temperature = def.Temperature
	}
	if config.MaxTokens == 0 {
		config.MaxTokens = def.MaxTokens
	}
	return &Generator{
		client: client,
		config: config,
	}
}

// Config returns the generation parameters in use.
func (g *Generator) Config() Config { return g.config }

// Request builds the request sent for the given input.
func (g *Generator) Request(input string) proto.Request {
	temp := g.config.Temperature
	maxTokens := g.config.MaxTokens
	return proto.Request{
		Model:             g.config.Model,
		Input:             input,
		SystemInstruction: SystemInstruction,
		Temperature:       &temp,
		MaxTokens:         &maxTokens,
	}
}

// Generate runs one generation. It never panics on provider failures:
// errors are captured in the returned Result.
func (g *Generator) Generate(ctx context.Context, input string) (result proto.Result) {
	defer func() {
		if r := recover(); r != nil {
			result = proto.Result{Kind: proto.KindUnknown, Err: panicError{r}}
		}
	}()

	if g.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.config.Timeout)
		defer cancel()
	}

	text, err := g.client.Generate(ctx, g.Request(input))
	if err != nil {
		return proto.Result{Kind: Classify(err), Err: err}
	}
	return proto.Result{Text: text}
}
