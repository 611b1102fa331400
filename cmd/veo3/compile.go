package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"academy/internal/domain/validation"
	"academy/internal/domain/veo3"
)

func newCompileCmd(root *rootOptions) *cobra.Command {
	var (
		file     string
		output   string
		custom   bool
		sections bool
	)
	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Compile a Veo 3 prompt from a request file",
		Long: `Reads a prompt request (YAML, or JSON when the file ends in .json) and
prints the compiled prompt. Use --file - to read from stdin and --custom for
the reduced form.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				return fmt.Errorf("--file is required")
			}
			data, err := readInput(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}

			var raw veo3.RawPromptRequest
			if custom {
				var form veo3.CustomPromptForm
				if err := unmarshalRequest(file, data, &form); err != nil {
					return err
				}
				raw = form.Raw()
			} else if err := unmarshalRequest(file, data, &raw); err != nil {
				return err
			}

			req, err := veo3.Validate(raw)
			var verrs validation.Errors
			if errors.As(err, &verrs) {
				return fmt.Errorf("invalid request:\n%s", root.describe(verrs))
			}
			if err != nil {
				return err
			}

			var out string
			if sections {
				var b strings.Builder
				for _, s := range veo3.Sections(req) {
					fmt.Fprintf(&b, "# %s\n%s\n\n", s.Name, strings.Join(s.Lines, "\n\n"))
				}
				out = b.String()
			} else {
				out = veo3.Compile(req)
			}
			root.logger().Debug().Int("chars", validation.Length(out)).Str("video_type", req.VideoType).Msg("compiled prompt")

			if output == "" {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
				return err
			}
			if err := os.WriteFile(output, []byte(out), 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Request file (YAML or JSON), - for stdin")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the prompt to this file instead of stdout")
	cmd.Flags().BoolVar(&custom, "custom", false, "Treat the file as the reduced custom form")
	cmd.Flags().BoolVar(&sections, "sections", false, "Print the prompt split into named sections")
	return cmd
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read request: %w", err)
	}
	return data, nil
}

func unmarshalRequest(path string, data []byte, v any) error {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := json.Unmarshal(data, v); err != nil {
			return fmt.Errorf("parse request: %w", err)
		}
		return nil
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse request: %w", err)
	}
	return nil
}
