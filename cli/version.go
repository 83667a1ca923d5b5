package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

var (
	Version   string
	BuildTime string
)

func versionString() string {
	v := Version
	if v == "" {
		v = "dev"
	}
	return v
}

var versionCommand = &cobra.Command{
	Use:   "version",
	Short: "print the poolwatch build",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "poolwatch", versionString())
		if BuildTime != "" {
			fmt.Fprintln(out, "built:", BuildTime)
		}
		fmt.Fprintln(out, "go:", runtime.Version())
	},
}

func init() {
	rootCmd.AddCommand(versionCommand)
}
