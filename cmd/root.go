package cmd

import (
	"fmt"
	"os"

	"github.com/ValentinKolb/rMutex/cmd/bench"
	"github.com/ValentinKolb/rMutex/cmd/demo"
	"github.com/ValentinKolb/rMutex/cmd/util"
	"github.com/spf13/cobra"
)

const (
	Version = "1.0.0"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "rmutex",
		Short: "reentrant, cancellable mutex",
		Long: fmt.Sprintf(`rMutex (v%s)

A reentrant mutual exclusion lock for Go with context cancellation
and time-bounded acquisition, plus a manager for named locks.`, Version),
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of rMutex",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "rMutex v%s\n", Version)
		},
	}
)

func init() {
	// load .env files and environment variables once for the whole command tree
	cobra.OnInitialize(util.InitConfig)

	// Add Commands
	RootCmd.AddCommand(bench.BenchCmd)
	RootCmd.AddCommand(demo.DemoCmd)
	RootCmd.AddCommand(versionCmd)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
