package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"academy/internal/domain/validation"
	"academy/internal/infra"
	"academy/internal/providers/guidance"
)

func newGuidanceCmd(root *rootOptions) *cobra.Command {
	var topic string
	cmd := &cobra.Command{
		Use:   "guidance",
		Short: "Generate a system prompt that teaches another model to write Veo 3 prompts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := infra.LoadToolConfig()
			if err != nil {
				return err
			}
			logger := root.logger()
			gen := guidance.NewHuggingFace(guidance.Options{
				APIKey:         cfg.HFAPIKey,
				BaseURL:        cfg.HFBaseURL,
				Logger:         logger,
				RequestTimeout: cfg.GuidanceTimeout,
				MaxRetries:     cfg.GuidanceRetries,
				OnFallback: func(reason string, err error) {
					logger.Warn().Str("reason", reason).Msg("using the fallback instruction")
				},
			})
			text, err := gen.Generate(cmd.Context(), topic)
			var verrs validation.Errors
			if errors.As(err, &verrs) {
				return fmt.Errorf("invalid topic:\n%s", root.describe(verrs))
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
			return err
		},
	}
	cmd.Flags().StringVarP(&topic, "topic", "t", "", "Topic or kind of video the instruction is for")
	_ = cmd.MarkFlagRequired("topic")
	return cmd
}
