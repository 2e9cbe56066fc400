package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/danielolaszy/jit/internal/config"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newConfigCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configure JIRA connection settings",
		Long:  `Interactively set up the JIRA URL, email, and API token. Settings are saved to ~/.config/jit/config.yaml.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			envFile, _ := cmd.Flags().GetString("env-file")
			existing, err := config.Load(envFile)
			if err != nil {
				existing = &config.Config{}
			}

			out := cmd.OutOrStdout()
			reader := bufio.NewReader(cmd.InOrStdin())

			baseURL := prompt(out, reader, "JIRA URL (e.g., https://your-org.atlassian.net)", existing.BaseURL)
			email := prompt(out, reader, "Email", existing.UserEmail)

			fmt.Fprint(out, "API Token (input hidden): ")
			token, err := readSecret(cmd.InOrStdin(), reader)
			fmt.Fprintln(out)
			if err != nil {
				return fmt.Errorf("reading token: %w", err)
			}
			if token == "" {
				token = existing.APIToken
			}

			cfg := &config.Config{
				BaseURL:     strings.TrimRight(baseURL, "/"),
				UserEmail:   email,
				APIToken:    token,
				SprintField: existing.SprintField,

				PersonalAccessToken: existing.PersonalAccessToken,
			}
			if cfg.SprintField == config.DefaultSprintField {
				cfg.SprintField = ""
			}

			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}

			if path == "" {
				path = config.DefaultPath()
			}
			if err := config.Save(cfg, path); err != nil {
				return err
			}

			fmt.Fprintf(out, "Configuration saved to %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "file to write (default ~/.config/jit/config.yaml)")
	return cmd
}

// prompt asks for a value, showing and returning current when the answer is
// empty.
func prompt(out io.Writer, reader *bufio.Reader, label, current string) string {
	if current != "" {
		fmt.Fprintf(out, "%s [%s]: ", label, current)
	} else {
		fmt.Fprintf(out, "%s: ", label)
	}

	answer, _ := reader.ReadString('\n')
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return current
	}
	return answer
}

// readSecret reads without echo from a terminal, or a plain line otherwise.
func readSecret(in io.Reader, reader *bufio.Reader) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		secret, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(secret)), nil
	}

	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
