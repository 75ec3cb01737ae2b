package calib

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/epifit/calibration-core/pkg/utils"
)

// ResultFileName is the output file written into the configured output
// directory
const ResultFileName = "posterior_quantiles.tsv"

// Row summarizes the posterior of one free dimension
type Row struct {
	Name string
	P025 float64
	P25  float64
	P50  float64
	P75  float64
	P975 float64
}

// ResultTable holds one row per free dimension
type ResultTable struct {
	Rows []Row
}

// Summarize computes per-dimension posterior quantiles over the accepted
// particle population, linearly interpolated so an even-sized population's
// median is the midpoint of the two central particles. Dimension names are
// positional placeholders (x1, x2, ...); schema names are not propagated.
// TODO: carry the schema's param/policy-field paths into the row names.
func Summarize(particles [][]float64) *ResultTable {
	if len(particles) == 0 {
		return &ResultTable{}
	}

	dim := len(particles[0])
	table := &ResultTable{Rows: make([]Row, 0, dim)}

	for d := 0; d < dim; d++ {
		values := make([]float64, len(particles))
		for i, p := range particles {
			values[i] = p[d]
		}

		table.Rows = append(table.Rows, Row{
			Name: fmt.Sprintf("x%d", d+1),
			P025: utils.Percentile(values, 2.5),
			P25:  utils.Percentile(values, 25),
			P50:  utils.Percentile(values, 50),
			P75:  utils.Percentile(values, 75),
			P975: utils.Percentile(values, 97.5),
		})
	}
	return table
}

// Write writes the table as tab-delimited text with a header row
func (t *ResultTable) Write(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "name\tp025\tp25\tp50\tp75\tp975"); err != nil {
		return err
	}
	for _, row := range t.Rows {
		_, err := fmt.Fprintf(w, "%s\t%g\t%g\t%g\t%g\t%g\n",
			row.Name, row.P025, row.P25, row.P50, row.P75, row.P975)
		if err != nil {
			return err
		}
	}
	return nil
}

// WriteFile persists the table into the output directory, creating the
// directory if needed
func (t *ResultTable) WriteFile(outputDir string) (string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output dir %s: %w", outputDir, err)
	}

	path := filepath.Join(outputDir, ResultFileName)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create result file %s: %w", path, err)
	}
	defer f.Close()

	if err := t.Write(f); err != nil {
		return "", fmt.Errorf("failed to write result file %s: %w", path, err)
	}
	return path, nil
}
