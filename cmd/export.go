package cmd

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gonum.org/v1/plot"

	"github.com/alexiusacademia/gochimney/internal/chimney"
	"github.com/alexiusacademia/gochimney/internal/diagram"
	"github.com/alexiusacademia/gochimney/internal/report"
	"github.com/alexiusacademia/gochimney/internal/workbook"
)

// exportFlags select the report files written after an analysis
type exportFlags struct {
	csv        string
	xlsx       string
	pdf        string
	plotDir    string
	plotFormat string
}

func (e *exportFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&e.csv, "csv", "", "Write the full calculation table as CSV")
	flags.StringVar(&e.xlsx, "xlsx", "", "Write the calculation workbook as XLSX")
	flags.StringVar(&e.pdf, "pdf", "", "Write the calculation report as PDF")
	flags.StringVar(&e.plotDir, "plot", "", "Directory for moment, stress and shell plots")
	flags.StringVar(&e.plotFormat, "plot-format", "png", "Plot format (png, svg or pdf)")
}

func (e *exportFlags) write(cmd *cobra.Command, wb *workbook.Workbook) error {
	logger := loggerFromContext(cmd.Context())
	res := wb.Result()
	doc := wb.Document()

	rep := report.Report{
		Name:      doc.Meta.Name,
		ID:        doc.Meta.ID,
		Params:    wb.Params(),
		Result:    res,
		Generated: time.Now(),
	}

	if e.csv != "" {
		if err := report.SaveCSV(e.csv, res.Table); err != nil {
			return err
		}
		logger.Info("csv written", "path", e.csv)
	}
	if e.xlsx != "" {
		if err := report.SaveXLSX(e.xlsx, rep); err != nil {
			return err
		}
		logger.Info("workbook written", "path", e.xlsx)
	}
	if e.pdf != "" {
		figures, err := reportFigures(res)
		if err != nil {
			return err
		}
		if err := report.SavePDF(e.pdf, rep, figures...); err != nil {
			return err
		}
		logger.Info("report written", "path", e.pdf, "figures", len(figures))
	}
	if e.plotDir != "" {
		if err := savePlots(e.plotDir, e.plotFormat, res); err != nil {
			return err
		}
		logger.Info("plots written", "dir", e.plotDir, "format", e.plotFormat)
	}
	return nil
}

type namedPlot struct {
	name  string
	title string
	plot  *plot.Plot
}

func resultPlots(res *chimney.Result) ([]namedPlot, error) {
	moment, err := diagram.MomentPlot(res.Table)
	if err != nil {
		return nil, err
	}
	stress, err := diagram.StressPlot(res.Table, permissible(res))
	if err != nil {
		return nil, err
	}
	shell, err := diagram.ShellPlot(res.Table)
	if err != nil {
		return nil, err
	}
	return []namedPlot{
		{"moment", "Bending moments", moment},
		{"stress", "Extreme fibre stresses", stress},
		{"shell", "Shell profile", shell},
	}, nil
}

func reportFigures(res *chimney.Result) ([]report.Figure, error) {
	if len(res.Table) < 2 {
		return nil, nil
	}
	plots, err := resultPlots(res)
	if err != nil {
		return nil, err
	}

	figures := make([]report.Figure, 0, len(plots))
	for _, np := range plots {
		png, err := diagram.PNG(np.plot)
		if err != nil {
			return nil, fmt.Errorf("%s plot: %w", np.name, err)
		}
		figures = append(figures, report.Figure{Title: np.title, PNG: png})
	}
	return figures, nil
}

func savePlots(dir, format string, res *chimney.Result) error {
	format = strings.TrimPrefix(strings.ToLower(format), ".")
	switch format {
	case "png", "svg", "pdf":
	default:
		return fmt.Errorf("unsupported plot format %q (choose png, svg or pdf)", format)
	}

	plots, err := resultPlots(res)
	if err != nil {
		return err
	}
	for _, np := range plots {
		if err := diagram.Save(np.plot, filepath.Join(dir, np.name+"."+format)); err != nil {
			return fmt.Errorf("%s plot: %w", np.name, err)
		}
	}
	return nil
}

// permissible returns the allowable compression in tf/m², 0 without a grade
func permissible(res *chimney.Result) float64 {
	if res.Material == nil {
		return 0
	}
	return res.Material.SigmaTonne
}
