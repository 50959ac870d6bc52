package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gochimney/internal/chimney"
	"github.com/alexiusacademia/gochimney/internal/config"
	"github.com/alexiusacademia/gochimney/internal/iscode"
	"github.com/alexiusacademia/gochimney/internal/project"
	"github.com/alexiusacademia/gochimney/internal/workbook"
)

// designFlags override the configured parameters when set on the command line
type designFlags struct {
	name string

	// Geometry
	height    float64
	diameter  float64
	thickness float64
	taper     float64
	step      float64
	density   float64
	legacy    bool

	// Loads and material
	windSpeed  float64
	k1         float64
	k3         float64
	cd         float64
	zone       string
	importance float64
	reduction  float64
	saG        float64
	grade      string
	selfWeight string
}

// geometryFlags rebuild the grid of a saved project when set
var geometryFlags = []string{"height", "diameter", "thickness", "taper", "step", "density", "legacy-levels"}

func (f *designFlags) register(cmd *cobra.Command) {
	d := chimney.DefaultParams()
	flags := cmd.Flags()

	flags.StringVar(&f.name, "name", "Chimney", "Project name")

	flags.Float64VarP(&f.height, "height", "H", d.Geometry.TotalHeight, "Total shell height (m)")
	flags.Float64VarP(&f.diameter, "diameter", "d", d.Geometry.TopInnerDiameter, "Inner diameter at the top (m)")
	flags.Float64VarP(&f.thickness, "thickness", "t", d.Geometry.Thickness, "Shell thickness (m)")
	flags.Float64Var(&f.taper, "taper", 0, "Taper ratio X in 1:X (0 for a cylindrical shell)")
	flags.Float64Var(&f.step, "step", d.Geometry.SegmentStep, "Segment height between levels (m)")
	flags.Float64Var(&f.density, "density", d.Geometry.Density, "Concrete density (t/m³)")
	flags.BoolVar(&f.legacy, "legacy-levels", false, "Use the fixed 30.3 m to -3.0 m station list")

	flags.Float64Var(&f.windSpeed, "vb", d.Wind.BasicSpeed, "Basic wind speed Vb (m/s)")
	flags.Float64Var(&f.k1, "k1", d.Wind.K1, "Risk coefficient k1")
	flags.Float64Var(&f.k3, "k3", d.Wind.K3, "Topography factor k3")
	flags.Float64Var(&f.cd, "cd", d.Wind.Cd, "Drag coefficient Cd")
	flags.StringVar(&f.zone, "zone", "", "Seismic zone (II, III, IV or V)")
	flags.Float64Var(&f.importance, "importance", d.Seismic.Importance, "Importance factor I")
	flags.Float64Var(&f.reduction, "reduction", d.Seismic.ResponseReduction, "Response reduction factor R")
	flags.Float64Var(&f.saG, "sa-g", d.Seismic.SpectralCoefficient, "Spectral acceleration coefficient Sa/g")
	flags.StringVar(&f.grade, "grade", d.Grade, "Concrete grade (M20 to M40)")
	flags.StringVar(&f.selfWeight, "self-weight", string(d.SelfWeight), "Self-weight method (auto, simple or frustum)")
}

// apply copies every flag the user set onto p
func (f *designFlags) apply(cmd *cobra.Command, p *chimney.Params) error {
	changed := cmd.Flags().Changed

	if changed("height") {
		p.Geometry.TotalHeight = f.height
	}
	if changed("diameter") {
		p.Geometry.TopInnerDiameter = f.diameter
	}
	if changed("thickness") {
		p.Geometry.Thickness = f.thickness
	}
	if changed("taper") {
		p.Geometry.TaperRatio = f.taper
	}
	if changed("step") {
		p.Geometry.SegmentStep = f.step
		p.Geometry.Elevations = nil
	}
	if changed("density") {
		p.Geometry.Density = f.density
	}
	if f.legacy {
		p.Geometry.Elevations = append([]float64(nil), chimney.LegacyElevations...)
	}

	if changed("vb") {
		p.Wind.BasicSpeed = f.windSpeed
	}
	if changed("k1") {
		p.Wind.K1 = f.k1
	}
	if changed("k3") {
		p.Wind.K3 = f.k3
	}
	if changed("cd") {
		p.Wind.Cd = f.cd
	}
	if changed("zone") {
		z, ok := iscode.Zones[strings.ToUpper(strings.TrimSpace(f.zone))]
		if !ok {
			return fmt.Errorf("unknown seismic zone %q (choose from %s)", f.zone, strings.Join(zoneNames(), ", "))
		}
		p.Seismic.ZoneFactor = z
	}
	if changed("importance") {
		p.Seismic.Importance = f.importance
	}
	if changed("reduction") {
		p.Seismic.ResponseReduction = f.reduction
	}
	if changed("sa-g") {
		p.Seismic.SpectralCoefficient = f.saG
	}
	if changed("grade") {
		if _, err := iscode.Grade(f.grade); err != nil {
			return err
		}
		p.Grade = f.grade
	}
	if changed("self-weight") {
		policy, err := chimney.ParsePolicy(f.selfWeight)
		if err != nil {
			return err
		}
		p.SelfWeight = policy
	}

	return p.Geometry.Validate()
}

// params loads the configuration file and applies the command line on top
func (f *designFlags) params(cmd *cobra.Command) (chimney.Params, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return chimney.Params{}, err
	}
	p, err := cfg.Params()
	if err != nil {
		return chimney.Params{}, fmt.Errorf("config: %w", err)
	}
	if err := f.apply(cmd, &p); err != nil {
		return chimney.Params{}, err
	}
	return p, nil
}

// openWorkbook opens the project named in args, or generates one from the
// configuration and flags when no project is given
func openWorkbook(cmd *cobra.Command, args []string, f *designFlags) (*workbook.Workbook, error) {
	logger := loggerFromContext(cmd.Context())
	prog := newProgress(logger)

	if len(args) > 0 {
		doc, err := project.LoadFromFile(args[0])
		if err != nil {
			return nil, err
		}
		wb, err := workbook.Open(doc, logger)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", args[0], err)
		}
		if f != nil {
			if err := f.override(cmd, wb); err != nil {
				return nil, fmt.Errorf("%s: %w", args[0], err)
			}
		}
		prog.done("project analysed", "path", args[0], "levels", len(wb.Grid()))
		return wb, nil
	}

	p, err := f.params(cmd)
	if err != nil {
		return nil, err
	}
	wb, err := workbook.New(f.name, p, logger)
	if err != nil {
		return nil, err
	}
	prog.done("chimney generated", "height", p.Geometry.TotalHeight, "levels", len(wb.Grid()))
	return wb, nil
}

// override applies the flags the user set to an opened project. Geometry
// flags rebuild the grid, which discards edits made to it.
func (f *designFlags) override(cmd *cobra.Command, wb *workbook.Workbook) error {
	if cmd.Flags().NFlag() == 0 {
		return nil
	}
	p := wb.Params()
	if err := f.apply(cmd, &p); err != nil {
		return err
	}
	if err := wb.SetParams(p); err != nil {
		return err
	}
	for _, name := range geometryFlags {
		if cmd.Flags().Changed(name) {
			loggerFromContext(cmd.Context()).Warn("geometry changed, regenerating grid", "flag", name)
			return wb.Regenerate()
		}
	}
	return nil
}

func zoneNames() []string {
	names := make([]string, 0, len(iscode.Zones))
	for z := range iscode.Zones {
		names = append(names, z)
	}
	sort.Slice(names, func(i, j int) bool { return iscode.Zones[names[i]] < iscode.Zones[names[j]] })
	return names
}
