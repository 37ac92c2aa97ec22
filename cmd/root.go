// Package cmd wires the kiln command-line interface.
package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/kilnbuild/kiln/pkg/logger"
	"github.com/kilnbuild/kiln/pkg/settings"
)

var (
	rootVerbose bool
	rootDir     string

	log          *logrus.Logger
	userSettings settings.Settings
)

var rootCmd = &cobra.Command{
	Use:   "kiln",
	Short: "A build tool for small C projects",
	Long: `Kiln builds C projects described by a Kilnfile.

A project keeps its sources under src/ and its manifest in a Kilnfile
at the project root. Kiln compiles every .c file it finds, links the
result into a binary or library, and stops at the first command that
fails.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log = logger.New(os.Stderr, rootVerbose)

		userSettings = settings.Default()
		if path, err := settings.Path(); err == nil {
			s, err := settings.Load(path)
			if err != nil {
				log.WithError(err).Warn("Ignoring unreadable settings")
			} else {
				userSettings = s
			}
		}
		applyColor(userSettings.Color)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&rootVerbose, "verbose", "v", false, "Enable debug output")
	rootCmd.PersistentFlags().StringVarP(&rootDir, "directory", "C", "", "Run as if started in this directory")
}

// Execute runs the root command and returns the error for main to map
// onto an exit code.
func Execute() error {
	return rootCmd.Execute()
}

// projectDir resolves the project root a command operates on: the
// --directory flag when given, the working directory otherwise.
func projectDir() (string, error) {
	if rootDir != "" {
		return rootDir, nil
	}
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}
	return dir, nil
}
