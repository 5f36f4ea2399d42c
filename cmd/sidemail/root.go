package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/sidemail/sidemail-go"
)

// globalOptions are the persistent flags shared by all commands.
type globalOptions struct {
	apiKey  string
	host    string
	envFile string
	debug   bool
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "sidemail",
		Short: "Send emails and manage contacts with the Sidemail API",
		Long: `sidemail is a command line client for the Sidemail API.

The API key is read from --api-key or the SIDEMAIL_API_KEY environment
variable. A .env file in the working directory is loaded first.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadEnvFile(opts.envFile)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.apiKey, "api-key", "", "Sidemail API key (default $SIDEMAIL_API_KEY)")
	cmd.PersistentFlags().StringVar(&opts.host, "host", sidemail.DefaultHost, "API host")
	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file to load, ignored if missing")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "log every API request")

	cmd.AddCommand(newEmailCmd(opts))
	cmd.AddCommand(newContactsCmd(opts))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "sidemail version %s (sdk %s)\n", version, sidemail.Version())
		},
	}
}

// loadEnvFile loads path into the environment without overriding existing variables.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}

	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}

	return nil
}

// newClient builds an API client from the global flags.
func (o *globalOptions) newClient(cmd *cobra.Command) (*sidemail.Client, error) {
	level := slog.LevelInfo
	if o.debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	client, err := sidemail.New(o.apiKey,
		sidemail.WithHost(o.host),
		sidemail.WithLogger(logger),
		sidemail.WithUserAgent(fmt.Sprintf("sidemail-cli/%s", version)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// toProps converts key=value flags into template or custom props.
func toProps(m map[string]string) map[string]any {
	if len(m) == 0 {
		return nil
	}

	props := make(map[string]any, len(m))
	for k, v := range m {
		props[k] = v
	}
	return props
}
