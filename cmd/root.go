package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gochimney/internal/version"
)

var (
	verbose    bool
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "gochimney",
	Short: "RC Chimney Design Tool",
	Long: `gochimney - Go Reinforced Concrete Chimney Designer

A CLI tool for the structural design of self-supporting reinforced
concrete chimneys based on IS 4998, IS 875 (Part 3) and IS 1893.

The shell is divided into levels from the top down to the base. For
every level the tool computes:
  - Section properties and self-weight of the shell
  - Wind forces, shears and moments (IS 875 Part 3)
  - Seismic forces, shears and moments (IS 1893)
  - Axial load, governing moment and extreme fibre stresses

Results can be exported as CSV, XLSX and PDF, and plotted.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := log.InfoLevel
		if verbose {
			level = log.DebugLevel
		}
		cmd.SetContext(withLogger(cmd.Context(), newLogger(cmd.ErrOrStderr(), level)))
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Fprintln(out, "  ║                                                           ║")
		fmt.Fprintf(out, "  ║   %s v%-*s║\n", version.Name, 54-len(version.Name), version.Version)
		fmt.Fprintln(out, "  ║   Go Reinforced Concrete Chimney Designer                 ║")
		fmt.Fprintf(out, "  ║   %-56s║\n", "Alexius S. Academia ©  "+version.Year)
		fmt.Fprintln(out, "  ║                                                           ║")
		fmt.Fprintln(out, "  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  A CLI tool for the design of reinforced concrete chimneys")
		fmt.Fprintf(out, "  based on %s.\n", strings.Join(version.Codes, ", "))
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  Features:")
		fmt.Fprintln(out, "    • Level grid generation for cylindrical and tapered shells")
		fmt.Fprintln(out, "    • Self-weight by simple or frustum method")
		fmt.Fprintln(out, "    • Wind and seismic shear and moment at every level")
		fmt.Fprintln(out, "    • Extreme fibre stress check with tension flagging")
		fmt.Fprintln(out, "    • CSV, XLSX and PDF reports, ASCII and image plots")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  Use 'gochimney --help' to see available commands.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  ─────────────────────────────────────────────────────────────")
		fmt.Fprintf(out, "  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Fprintln(out)
	},
}

// Execute runs the root command until it finishes or the process is
// interrupted
func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "TOML file with the design parameters")
}
