package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	version string
	commit  string
	date    string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "hackathon",
	Short: "Hackathon - concurrent producer/student simulation",
	Long: `Hackathon simulates a bounded hackathon: idea generators and package
downloaders feed one shared event queue, and students adopt ideas, collect
packages and build.

Students stop through a circulating WorkDone sentinel rather than a central
coordinator. At the end of every run the checksums of what was produced and
what was built must agree, whatever the interleaving.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = versionString()
}

func versionString() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)
}

func init() {
	rootCmd.AddCommand(newRunCmd(), newVersionCmd())
}
