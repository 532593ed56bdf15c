package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/matheuskafuri/dexterm/internal/update"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	flagConfig  string
	flagLogFile string
	flagSearch  string
	flagTypes   []string
)

var rootCmd = &cobra.Command{
	Use:   "dexterm",
	Short: "Terminal Pokédex browser",
	Long: `dexterm browses the PokéAPI catalog from the terminal: search by name,
filter by type and page through cards.

The root command opens the landing view, which stays empty until you search
or pick a type. Use "dexterm browse" to start with the full catalog listed.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd.Context(), true)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "path to the JSON log file (default $XDG_STATE_HOME/dexterm/dexterm.log)")

	for _, c := range []*cobra.Command{rootCmd, browseCmd, listCmd} {
		c.Flags().StringVar(&flagSearch, "search", "", "preload a name search")
		c.Flags().StringSliceVar(&flagTypes, "type", nil, "preload type filters (repeatable or comma separated)")
	}

	versionCmd.Flags().BoolVar(&flagCheck, "check", false, "check GitHub for a newer release")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(typesCmd)
}

var flagCheck bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "dexterm %s (commit: %s, built: %s)\n", version, commit, date)
		if !flagCheck {
			return
		}
		if r := update.NewChecker("", nil).Check(cmd.Context(), version); r != nil {
			fmt.Fprintf(out, "A newer release is available: %s %s\n", r.LatestVersion, r.URL)
		}
	},
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}
