package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gochimney/internal/chimney"
)

// Each sheet command prints one stage of the calculation. They all run the
// full pipeline, since later stages read the columns of earlier ones.

var (
	deadLoadDesign designFlags
	windDesign     designFlags
	seismicDesign  designFlags
	stressDesign   designFlags
)

var deadLoadCmd = sheetCommand("deadload", "Print section properties and self-weight per level",
	`Print the dead load sheet: segment height, diameters, thickness, annular
section properties, shell weight, user loads and the total weight of each
level.`,
	&deadLoadDesign,
	func(w io.Writer, res *chimney.Result) { printGeometry(w, res.Table) },
)

var windCmd = sheetCommand("wind", "Print wind forces, shears and moments per level",
	`Print the wind load sheet per IS 875 (Part 3): height factor k2, design
wind speed Vz, design pressure pz, and the force, shear and moment at each
level.

Examples:
  gochimney wind --vb 50 --cd 0.7
  gochimney wind stack.json`,
	&windDesign,
	func(w io.Writer, res *chimney.Result) { printWind(w, res.Table) },
)

var seismicCmd = sheetCommand("seismic", "Print seismic forces, shears and moments per level",
	`Print the seismic load sheet per IS 1893 (equivalent static method):
height above base, W·h², lateral force, shear and moment at each level, and
the horizontal coefficient Ah and base shear.

Examples:
  gochimney seismic --zone V --importance 1.5 --reduction 3`,
	&seismicDesign,
	printSeismic,
)

var stressCmd = sheetCommand("stress", "Print axial load, design moment and stresses per level",
	`Print the stress sheet: cumulative axial load, governing moment (the
larger of wind and seismic), direct and bending stresses, the extreme fibre
stresses and the section status.`,
	&stressDesign,
	func(w io.Writer, res *chimney.Result) { printStress(w, res.Table) },
)

func sheetCommand(use, short, long string, design *designFlags, show func(io.Writer, *chimney.Result)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use + " [project file]",
		Short: short,
		Long:  long,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wb, err := openWorkbook(cmd, args, design)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			show(out, wb.Result())
			return nil
		},
	}
	design.register(cmd)
	return cmd
}

func init() {
	rootCmd.AddCommand(deadLoadCmd, windCmd, seismicCmd, stressCmd)
}
