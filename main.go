package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/ligas/internal/league"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/x/editor"
	mcobra "github.com/muesli/mango-cobra"
	"github.com/muesli/roff"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Build vars.
var (
	//nolint: gochecknoglobals
	Version   = ""
	CommitSHA = ""
)

const outputWordWrap = 80

func buildVersion() string {
	if Version != "" {
		if len(CommitSHA) >= 7 { //nolint:mnd
			return Version + " (" + CommitSHA[:7] + ")"
		}
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Sum != "" {
		return info.Main.Version
	}
	return "unknown (built from source)"
}

func newRootCmd(cfg *Config) *cobra.Command {
	root := &cobra.Command{
		Use:           "ligas [DESCRIPTION]",
		Args:          cobra.ArbitraryArgs,
		Short:         "Generate sports and video game leagues with Gemini",
		Long:          "ligas turns a free description of a league into its name, sport, participants, format, schedule and rules.",
		Version:       buildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Example:       randomExample(),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Prefix = strings.Join(args, " ")
			return runRoot(cmd, cfg)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&cfg.API, "api", cfg.API, stdoutStyles().FlagDesc.Render(help["api"]))
	flags.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, stdoutStyles().FlagDesc.Render(help["base-url"]))
	flags.StringVarP(&cfg.Model, "model", "m", cfg.Model, stdoutStyles().FlagDesc.Render(help["model"]))
	flags.Float64Var(&cfg.Temperature, "temp", cfg.Temperature, stdoutStyles().FlagDesc.Render(help["temp"]))
	flags.Int64Var(&cfg.MaxTokens, "max-tokens", cfg.MaxTokens, stdoutStyles().FlagDesc.Render(help["max-tokens"]))
	flags.Var(newDurationFlag(cfg.Timeout, &cfg.Timeout), "timeout", stdoutStyles().FlagDesc.Render(help["timeout"]))
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, stdoutStyles().FlagDesc.Render(help["log-level"]))

	local := root.Flags()
	local.BoolVarP(&cfg.Raw, "raw", "r", cfg.Raw, stdoutStyles().FlagDesc.Render(help["raw"]))
	local.BoolVarP(&cfg.Quiet, "quiet", "q", cfg.Quiet, stdoutStyles().FlagDesc.Render(help["quiet"]))
	local.BoolVarP(&cfg.Copy, "copy", "c", cfg.Copy, stdoutStyles().FlagDesc.Render(help["copy"]))
	local.BoolVar(&cfg.Settings, "settings", false, stdoutStyles().FlagDesc.Render(help["settings"]))
	local.BoolVar(&cfg.ResetSettings, "reset-settings", false, stdoutStyles().FlagDesc.Render(help["reset-settings"]))
	local.BoolVar(&cfg.Dirs, "dirs", false, stdoutStyles().FlagDesc.Render(help["dirs"]))
	root.MarkFlagsMutuallyExclusive("settings", "reset-settings", "dirs")

	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return newFlagParseError(err)
	})
	root.SetUsageFunc(usageFunc)
	root.SetVersionTemplate("{{.Version}}\n")

	root.AddCommand(newServeCmd(cfg), newProbeCmd(cfg), newManCmd(root))
	return root
}

func newManCmd(root *cobra.Command) *cobra.Command {
	return &cobra.Command{
		Use:                   "man",
		Short:                 "Generates manpages",
		SilenceUsage:          true,
		DisableFlagsInUseLine: true,
		Hidden:                true,
		Args:                  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			manPage, err := mcobra.NewManPage(1, root)
			if err != nil {
				//nolint:wrapcheck
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), manPage.Build(roff.NewDocument()))
			//nolint:wrapcheck
			return err
		},
	}
}

func runRoot(cmd *cobra.Command, cfg *Config) error {
	switch {
	case cfg.Settings:
		return editSettings(cfg.SettingsPath)
	case cfg.ResetSettings:
		backup, err := resetSettings(cfg.SettingsPath)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.ErrOrStderr(), "Settings restored to defaults. Previous settings saved to", backup)
		return nil
	case cfg.Dirs:
		fmt.Fprintf(cmd.OutOrStdout(), "Configuration: %s\n", filepath.Dir(cfg.SettingsPath))
		return nil
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	stdin, err := readStdin(cmd.InOrStdin())
	if err != nil {
		return err
	}
	if cfg.Prefix == "" && stdin == "" {
		if !isInputTTY() || !isOutputTTY() {
			return cmd.Usage()
		}
		if cfg.Prefix, err = askDescription(ctx); err != nil {
			return err
		}
	}

	gen, err := newGenerator(ctx, cfg)
	if err != nil {
		return err
	}
	logger.Debug("generating", "api", cfg.API, "model", cfg.Model)

	m, err := runGeneration(ctx, cfg, gen, stdin)
	if err != nil {
		return err
	}
	if err := m.Err(); err != nil {
		logger.Debug("generation failed", "kind", m.Kind, "err", err)
		return err
	}
	if len(m.Missing) > 0 {
		logger.Debug("answer is missing fields", "count", len(m.Missing))
		fmt.Fprintln(cmd.ErrOrStderr(), missingNotice(stderrStyles(), m.Missing))
	}
	return printOutput(cmd.OutOrStdout(), cfg, m.Output)
}

func runGeneration(ctx context.Context, cfg *Config, gen generator, stdin string) (*Ligas, error) {
	opts := []tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithOutput(stderrRenderer().Output()),
		tea.WithInput(nil),
	}
	if cfg.Quiet || !isErrTTY() {
		opts = append(opts, tea.WithoutRenderer())
	} else if isInputTTY() {
		opts = append(opts, tea.WithInputTTY())
	}

	model, err := tea.NewProgram(newLigas(ctx, cfg, gen, stdin), opts...).Run()
	if err := programError(err); err != nil {
		return nil, err
	}
	m, ok := model.(*Ligas)
	if !ok || (m.error == nil && m.state != doneState) {
		return nil, ligasError{context.Canceled, "Generation canceled."}
	}
	return m, nil
}

// programError reports Bubble Tea failures. Interrupts and kills are
// cancellations, not failures.
func programError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, tea.ErrInterrupted), errors.Is(err, tea.ErrProgramKilled):
		return ligasError{context.Canceled, "Generation canceled."}
	default:
		return ligasError{err, "Couldn't start Bubble Tea program."}
	}
}

// missingNotice tells which required fields the answer lacks.
func missingNotice(s styles, missing []league.Field) string {
	names := make([]string, 0, len(missing))
	for _, f := range missing {
		names = append(names, f.Name)
	}
	return s.Warning.Render("La respuesta no incluye: " + strings.Join(names, ", "))
}

func printOutput(w io.Writer, cfg *Config, out string) error {
	if cfg.Copy {
		if err := clipboard.WriteAll(out); err != nil {
			return ligasError{err, "Could not copy to clipboard."}
		}
	}

	if !cfg.Raw && isOutputTTY() {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(outputWordWrap),
		)
		if err != nil {
			return ligasError{err, "Could not create the markdown renderer."}
		}
		rendered, err := r.Render(out)
		if err != nil {
			return ligasError{err, "Could not render the league."}
		}
		out = rendered
	} else if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}

	_, err := io.WriteString(w, out)
	if err != nil {
		return ligasError{err, "Could not write the league."}
	}
	return nil
}

func editSettings(path string) error {
	c, err := editor.Cmd("ligas", path)
	if err != nil {
		return ligasError{err, "Could not edit your settings file."}
	}
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	if err := c.Run(); err != nil {
		return ligasError{err, fmt.Sprintf(
			"Missing %s.",
			stderrStyles().InlineCode.Render("$EDITOR"),
		)}
	}
	fmt.Fprintln(os.Stderr, "Wrote config file to:", path)
	return nil
}

func newLogger(cfg *Config) (*log.Logger, error) {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, ligasError{err, fmt.Sprintf(
			"Invalid log level %s.",
			stderrStyles().InlineCode.Render(cfg.LogLevel),
		)}
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		Prefix:          "ligas",
		ReportTimestamp: true,
	}), nil
}

func usageFunc(cmd *cobra.Command) error {
	s := stdoutStyles()
	out := cmd.OutOrStdout()

	appName := cmd.Root().Name()
	if stdoutRenderer().ColorProfile() == termenv.TrueColor {
		appName = makeGradientText(s.AppName, appName)
	}
	useLine := strings.TrimPrefix(cmd.UseLine(), cmd.Root().Name())
	fmt.Fprintf(out, "Usage:\n  %s%s\n", appName, s.CliArgs.Render(useLine))

	if cmd.HasAvailableSubCommands() {
		fmt.Fprintln(out, "\nCommands:")
		for _, c := range cmd.Commands() {
			if !c.IsAvailableCommand() {
				continue
			}
			fmt.Fprintf(out, "  %s  %s\n", s.Flag.Render(rpad(c.Name(), c.NamePadding())), s.FlagDesc.Render(c.Short))
		}
	}

	printFlags(out, s, "Flags:", cmd.LocalFlags())
	printFlags(out, s, "Global Flags:", cmd.InheritedFlags())

	if cmd == cmd.Root() && cmd.Example != "" {
		fmt.Fprintf(
			out,
			"\nExample:\n  %s\n  %s\n",
			s.Comment.Render("# "+cmd.Example),
			cheapHighlighting(s, examples[cmd.Example]),
		)
	}
	return nil
}

func printFlags(w io.Writer, s styles, title string, flags *pflag.FlagSet) {
	if !flags.HasAvailableFlags() {
		return
	}
	type line struct{ name, desc string }
	var lines []line
	width := 0
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		name := s.Flag.Render("--" + f.Name)
		if f.Shorthand != "" {
			name = s.Flag.Render("-"+f.Shorthand) + s.FlagComma.String() + " " + name
		}
		width = max(width, lipgloss.Width(name))
		lines = append(lines, line{name, f.Usage})
	})

	fmt.Fprintf(w, "\n%s\n", title)
	for _, l := range lines {
		fmt.Fprintf(w, "  %s%s  %s\n", l.name, strings.Repeat(" ", width-lipgloss.Width(l.name)), l.desc)
	}
}

func rpad(s string, padding int) string {
	return fmt.Sprintf("%-*s", padding, s)
}

func handleError(w io.Writer, err error) {
	s := stderrStyles()

	var reason, details string
	var ferr flagParseError
	var lerr ligasError
	switch {
	case errors.As(err, &ferr):
		reason = fmt.Sprintf(ferr.ReasonFormat(), s.InlineCode.Render(ferr.Flag()))
		details = fmt.Sprintf(
			"Check out %s %s",
			s.InlineCode.Render("ligas -h"),
			s.Comment.Render("for help."),
		)
	case errors.As(err, &lerr):
		reason = lerr.Reason()
		details = s.ErrorDetails.Render(lerr.Error())
	default:
		details = s.ErrorDetails.Render(err.Error())
	}

	fmt.Fprintf(w, "\n%s\n\n", s.ErrPadding.Render(s.ErrorHeader.String(), reason))
	fmt.Fprintf(w, "%s\n\n", s.ErrPadding.Render(details))
}

func main() {
	cfg := defaultConfig()
	// Man pages and completions must not depend on the settings file.
	if !isManCmd(os.Args) && !isCompletionCmd(os.Args) {
		var err error
		if cfg, err = ensureConfig(); err != nil {
			handleError(os.Stderr, err)
			os.Exit(1)
		}
	}

	if err := newRootCmd(&cfg).ExecuteContext(context.Background()); err != nil {
		if errCanceled(err) {
			os.Exit(1)
		}
		handleError(os.Stderr, err)
		os.Exit(1)
	}
}

func isCompletionCmd(args []string) bool {
	if len(args) <= 1 {
		return false
	}
	if args[1] == "__complete" {
		return true
	}
	if args[1] != "completion" {
		return false
	}
	if len(args) == 3 { //nolint:mnd
		_, ok := map[string]any{
			"bash":       nil,
			"fish":       nil,
			"zsh":        nil,
			"powershell": nil,
			"-h":         nil,
			"--help":     nil,
			"help":       nil,
		}[args[2]]
		return ok
	}
	if len(args) == 4 { //nolint:mnd
		_, ok := map[string]any{
			"-h":     nil,
			"--help": nil,
		}[args[3]]
		return ok
	}
	return false
}

func isManCmd(args []string) bool {
	if len(args) == 2 { //nolint:mnd
		return args[1] == "man"
	}
	if len(args) == 3 && args[1] == "man" { //nolint:mnd
		_, ok := map[string]any{
			"-h":     nil,
			"--help": nil,
		}[args[2]]
		return ok
	}
	return false
}
