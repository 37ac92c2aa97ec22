package cmd

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/kilnbuild/kiln/pkg/settings"
)

func init() {
	rootCmd.AddCommand(newConfigCmd())
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change kiln settings",
		Long: `Settings live in a TOML file under the user config directory and
only affect kiln itself, never how a project builds.

Known keys:
  color         Styled output: auto, always or never
  new.type      Default project type for kiln new
  new.standard  Default C standard for kiln new
  new.version   Default initial version for kiln new`,
	}

	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigSetCmd())
	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigPathCmd())

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the current settings",
		Args:  cobra.NoArgs,
		RunE:  runConfigShow,
	}
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one setting",
		Long: `Change one setting and write the settings file.

Example:
  kiln config set new.standard gnu11
  kiln config set color never`,
		Args: cobra.ExactArgs(2),
		RunE: runConfigSet,
	}
}

func newConfigInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a settings file with the defaults",
		Args:  cobra.NoArgs,
		RunE:  runConfigInit,
	}
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the settings file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := settings.Path()
			if err != nil {
				return fmt.Errorf("failed to locate settings: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path, err := settings.Path()
	if err != nil {
		return fmt.Errorf("failed to locate settings: %w", err)
	}

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}

	if err := settings.Save(path, settings.Default()); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	path, err := settings.Path()
	if err != nil {
		return fmt.Errorf("failed to locate settings: %w", err)
	}

	s, err := settings.Load(path)
	if err != nil {
		return err
	}

	data, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, faintStyle.Render(path))
	fmt.Fprint(out, string(data))
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	path, err := settings.Path()
	if err != nil {
		return fmt.Errorf("failed to locate settings: %w", err)
	}

	s, err := settings.Load(path)
	if err != nil {
		return err
	}

	if err := s.Set(key, value); err != nil {
		return err
	}
	if err := settings.Save(path, s); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", key, value)
	return nil
}
