package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"academy/internal/domain/validation"
	"academy/internal/infra"
)

type rootOptions struct {
	logLevel string
	lang     string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "veo3",
		Short: "VEO3 Academy prompt tools",
		Long: `Offline access to the academy's prompt tools:

  veo3 compile   Build a Veo 3 prompt from a YAML or JSON form
  veo3 guidance  Generate a system prompt for a topic
  veo3 chat      Ask the course assistant a question`,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.logLevel, "log", "warn", "Log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&opts.lang, "lang", "pt-BR", "Language of validation messages")

	root.AddCommand(
		newCompileCmd(opts),
		newGuidanceCmd(opts),
		newChatCmd(opts),
	)
	return root
}

// logger writes to stderr so command output stays pipeable.
func (o *rootOptions) logger() *infra.Logger {
	level, err := zerolog.ParseLevel(o.logLevel)
	if err != nil {
		level = zerolog.WarnLevel
	}
	l := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).
		With().
		Timestamp().
		Logger()
	return &l
}

// describe renders validation failures one per line in the chosen language.
func (o *rootOptions) describe(verrs validation.Errors) string {
	out := ""
	for _, fe := range verrs.Localize(validation.MatchLocale(o.lang)) {
		out += "  - " + fe.Field + ": " + fe.Message + "\n"
	}
	return out
}
