// Command weathering runs and inspects particle fragmentation simulations.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime/pprof"

	"github.com/spf13/cobra"

	"github.com/phil-mansfield/weathering/io"
	"github.com/phil-mansfield/weathering/logging"
)

var version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "weathering",
		Short: "Particle fragmentation (weathering) simulations",
		Long: `weathering simulates the repeated splitting of a parent material into
ever smaller rectangular particles and records how the number, volume, and
surface area of the particles evolve.

Start with 'weathering example-config > run.cfg', edit the file, and then
'weathering run run.cfg'.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("log-level", "info",
		"Log level: debug, info, warn, or error")
	rootCmd.PersistentFlags().String("log-file", "",
		"Write log output to this file instead of stderr")

	rootCmd.AddCommand(
		newRunCmd(),
		newAnalyzeCmd(),
		newPlotCmd(),
		newRunsCmd(),
		newExampleConfigCmd(),
	)
	return rootCmd
}

// FileGroup holds the files a command writes as a side effect: its log and
// its CPU profile.
type FileGroup struct {
	log, prof *os.File
	logger    *slog.Logger
}

// NewFileGroup opens the log and profile files named by con. The profile is
// started immediately and stopped by Close.
func NewFileGroup(con *io.SharedConfig, cmd *cobra.Command) (*FileGroup, error) {
	fg := &FileGroup{}

	if con.ValidLogFile() {
		f, err := os.Create(con.LogFile)
		if err != nil {
			return nil, fmt.Errorf("failed to create log file: %w", err)
		}
		fg.log = f
		fg.logger = logging.New(con.LogLevel, f)
	} else {
		fg.logger = logging.New(con.LogLevel, cmd.ErrOrStderr())
	}

	if con.ValidProfileFile() {
		f, err := os.Create(con.ProfileFile)
		if err != nil {
			fg.Close()
			return nil, fmt.Errorf("failed to create profile file: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			f.Close()
			fg.Close()
			return nil, fmt.Errorf("failed to start profile: %w", err)
		}
		fg.prof = f
	}

	return fg, nil
}

// Logger returns the logger writing to the group's log.
func (fg *FileGroup) Logger() *slog.Logger { return fg.logger }

// Close stops profiling and closes every open file.
func (fg *FileGroup) Close() error {
	var first error
	if fg.prof != nil {
		pprof.StopCPUProfile()
		if err := fg.prof.Close(); err != nil {
			first = err
		}
		fg.prof = nil
	}
	if fg.log != nil {
		if err := fg.log.Close(); err != nil && first == nil {
			first = err
		}
		fg.log = nil
	}
	return first
}

// sharedFromFlags reads the logging flags that every command accepts.
func sharedFromFlags(cmd *cobra.Command) *io.SharedConfig {
	level, _ := cmd.Flags().GetString("log-level")
	logFile, _ := cmd.Flags().GetString("log-file")
	return &io.SharedConfig{LogLevel: level, LogFile: logFile}
}
