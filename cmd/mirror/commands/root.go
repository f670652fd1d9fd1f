// Package commands implements the CLI commands for mirror.
package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.trai.ch/mirror/internal/adapters/logger"
	"go.trai.ch/mirror/internal/build"
	"go.trai.ch/mirror/internal/core/domain"
)

// CLI represents the command line interface for mirror.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Run(ctx context.Context, configPath string) error
	Plan(ctx context.Context, configPath string, w io.Writer) error
	Watch(ctx context.Context, configPath string, window time.Duration) error
	Clean(ctx context.Context, configPath string) error
	SetLogFormat(f logger.Format)
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	c := &CLI{app: a}

	rootCmd := &cobra.Command{
		Use:           "mirror",
		Short:         "Mirror a media library, transcoding audio on the way",
		Long:          "mirror keeps an output tree in line with an input tree: audio is transcoded\nthrough an external tool, other files are copied and stale output is pruned.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			raw, _ := cmd.Flags().GetString("log-format")
			f, err := logger.ParseFormat(raw)
			if err != nil {
				return err
			}
			c.app.SetLogFormat(f)
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Run(cmd.Context(), configPath(cmd))
		},
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().StringP("config", "c", domain.ConfigFileName, "Path to the configuration file")
	rootCmd.PersistentFlags().String("log-format", string(logger.FormatAuto), "Log format: auto, pretty or json")

	c.rootCmd = rootCmd

	rootCmd.AddCommand(c.newRunCmd())
	rootCmd.AddCommand(c.newPlanCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

func configPath(cmd *cobra.Command) string {
	path, _ := cmd.Flags().GetString("config")
	return path
}
