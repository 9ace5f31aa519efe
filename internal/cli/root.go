package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mbland/team-hub/internal/config"
)

func NewRootCommand(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "teamhub",
		Short: "Cross-reference team site data",
		Long: `Team Hub builds the data layer of a team site: it loads the team,
project, working group, location, and snippet collections from a data
directory, links them to each other, and writes the cross-referenced
result as cycle-free JSON the site generator can consume.`,
	}

	buildCmd := &cobra.Command{
		Use:   "build [path]",
		Short: "Cross-reference the data directory and write site data",
		Args:  cobra.MaximumNArgs(1),
		RunE:  RunBuild,
	}
	buildCmd.Flags().String("config", "", "Config file (default: <path>/"+config.FileName+")")
	buildCmd.Flags().String("out", "", "Output directory (overrides config)")
	buildCmd.Flags().String("format", "", "Output format: json|jsonl (overrides config)")
	buildCmd.Flags().Bool("json", false, "Print machine-readable run summary")

	checkCmd := &cobra.Command{
		Use:   "check [path]",
		Short: "Report data-quality problems without writing output",
		Args:  cobra.MaximumNArgs(1),
		RunE:  RunCheck,
	}
	checkCmd.Flags().String("config", "", "Config file (default: <path>/"+config.FileName+")")
	checkCmd.Flags().Bool("json", false, "Print machine-readable check output")
	checkCmd.Flags().Bool("strict", false, "Exit non-zero when problems are found")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("teamhub %s\n", version)
		},
	}

	rootCmd.AddCommand(
		buildCmd,
		checkCmd,
		versionCmd,
	)

	return rootCmd
}
