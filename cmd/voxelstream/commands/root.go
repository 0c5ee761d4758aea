// Package commands implements the voxelstream CLI.
package commands

import (
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "voxelstream",
	Short: "Streaming voxel world engine",
	Long: `voxelstream loads, generates, and persists a chunked voxel world
around a moving viewer, meshing each chunk with greedy quad merging.

Use "voxelstream [command] --help" for more information about a command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called once from main.main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml/json/toml, default: built-in defaults + VOXELSTREAM_* env)")
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(inspectCmd)
}
