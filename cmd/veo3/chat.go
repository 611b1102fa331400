package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"academy/internal/domain/validation"
	"academy/internal/infra"
	"academy/internal/providers/chat"
)

func newChatCmd(root *rootOptions) *cobra.Command {
	var (
		question string
		provider string
	)
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Ask the course assistant a question",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := infra.LoadToolConfig()
			if err != nil {
				return err
			}
			if provider == "" {
				provider = cfg.ChatProvider
			}
			responder, err := chat.New(cmd.Context(), chat.Options{
				Provider:      provider,
				OpenAIAPIKey:  cfg.OpenAIAPIKey,
				OpenAIModel:   cfg.OpenAIModel,
				OpenAIBaseURL: cfg.OpenAIBaseURL,
				GeminiAPIKey:  cfg.GoogleAPIKey,
				GeminiModel:   cfg.GeminiModel,
				Logger:        root.logger(),
			})
			if err != nil {
				return err
			}
			answer, err := responder.Answer(cmd.Context(), question)
			var verrs validation.Errors
			if errors.As(err, &verrs) {
				return fmt.Errorf("invalid question:\n%s", root.describe(verrs))
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), answer)
			return err
		},
	}
	cmd.Flags().StringVarP(&question, "question", "q", "", "The question to ask")
	cmd.Flags().StringVar(&provider, "provider", "", "local, openai or gemini (defaults to CHAT_PROVIDER)")
	_ = cmd.MarkFlagRequired("question")
	return cmd
}
