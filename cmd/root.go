package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/byxorna/sieve/pkg/app"
	"github.com/byxorna/sieve/pkg/runtime"
	"github.com/byxorna/sieve/pkg/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var (
	flags = struct {
		ConfigFile  string
		Debug       bool
		NoAltScreen bool
	}{}

	// logFile is open while --debug logging is on
	logFile *os.File

	root = &cobra.Command{
		Use:   "sieve",
		Short: "Sieve is a terminal based directory of rooms, people and groups",
		Args:  cobra.MaximumNArgs(0),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			m, err := app.New(ctx, flags.ConfigFile, !flags.NoAltScreen)
			if err != nil {
				return err
			}
			m.GlamourStyle = ui.GlamourStyle()

			opts := []tea.ProgramOption{}
			if m.UseAltScreen {
				opts = append(opts, tea.WithAltScreen())
			}
			_, err = tea.NewProgram(m, opts...).Run()
			return err
		},
	}
)

// setupLogging sends the log to sieve's runtime directory with --debug and
// discards it otherwise, since the terminal belongs to the UI.
func setupLogging() error {
	if !flags.Debug {
		log.SetOutput(io.Discard)
		return nil
	}

	path, err := runtime.LogFile()
	if err != nil {
		return fmt.Errorf("unable to locate log file: %w", err)
	}
	f, err := tea.LogToFile(path, "sieve")
	if err != nil {
		return fmt.Errorf("unable to open log file %s: %w", path, err)
	}
	logFile = f
	return nil
}

// closeLog stops logging to the debug log file, if one is open.
func closeLog() error {
	if logFile == nil {
		return nil
	}
	log.SetOutput(io.Discard)
	err := logFile.Close()
	logFile = nil
	return err
}

func init() {
	root.PersistentFlags().StringVarP(&flags.ConfigFile, "config", "c", "~/.sieve.yaml", "configuration file")
	root.PersistentFlags().BoolVarP(&flags.Debug, "debug", "d", false, "log to "+runtime.LogName+" in the runtime directory")
	root.Flags().BoolVar(&flags.NoAltScreen, "inline", false, "render inline instead of using the alternate screen")
	root.AddCommand(search)
}

func Execute() {
	err := root.Execute()
	if cerr := closeLog(); cerr != nil {
		fmt.Fprintln(os.Stderr, cerr)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
