package datagen

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"popcli/internal/dataset"
)

var (
	productLines = []string{"Product Line A", "Product Line B", "Product Line C", "Product Line D"}
	regions      = []string{"East", "South", "North", "West"}
	riskLevels   = []string{"Low Risk", "Medium Risk", "High Risk"}
)

// Columns is the header of every generated period file.
var Columns = []string{
	"product_line", "region", "risk_level",
	"risk_amount", "loan_amount", "risk_count", "customer_count", "revenue",
}

// Config controls one generation run.
type Config struct {
	Seed        int64
	PriorRows   int
	CurrentRows int
	FilePrefix  string
	PriorDate   string
	CurrentDate string
	OutputDir   string
}

// DefaultConfig returns a reproducible two-period setup with the current
// period trending slightly above the prior one.
func DefaultConfig() Config {
	return Config{
		Seed:        42,
		PriorRows:   200,
		CurrentRows: 220,
		FilePrefix:  "data",
		PriorDate:   "2023-09-30",
		CurrentDate: "2023-10-31",
		OutputDir:   ".",
	}
}

// Generator produces synthetic period files: three dimension columns and
// five metric columns, with loan_amount deliberately tiered so interval
// cutpoints split it into populated buckets.
type Generator struct {
	logger *slog.Logger
	cfg    Config
	rng    *rand.Rand
}

// New creates a generator. The configured seed makes output reproducible.
func New(logger *slog.Logger, cfg Config) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{
		logger: logger.With(slog.String("component", "datagen")),
		cfg:    cfg,
		rng:    rand.New(rand.NewSource(cfg.Seed)),
	}
}

// Run writes both period files and returns their paths.
func (g *Generator) Run() (priorPath, currentPath string, err error) {
	if err := os.MkdirAll(g.cfg.OutputDir, 0755); err != nil {
		return "", "", fmt.Errorf("failed to create output directory: %w", err)
	}

	// the current period trends a few percent above the prior one, so
	// dimension comparisons show believable growth
	priorPath = g.periodPath(g.cfg.PriorDate)
	if err := g.writePeriod(priorPath, g.cfg.PriorRows, 1.0); err != nil {
		return "", "", err
	}

	currentPath = g.periodPath(g.cfg.CurrentDate)
	if err := g.writePeriod(currentPath, g.cfg.CurrentRows, 1.08); err != nil {
		return "", "", err
	}

	g.logger.Info("generated period files",
		slog.String("prior", priorPath),
		slog.String("current", currentPath),
		slog.Int("prior_rows", g.cfg.PriorRows),
		slog.Int("current_rows", g.cfg.CurrentRows))
	return priorPath, currentPath, nil
}

func (g *Generator) periodPath(date string) string {
	return filepath.Join(g.cfg.OutputDir, dataset.PeriodFileName(g.cfg.FilePrefix, date, ".xlsx"))
}

func (g *Generator) writePeriod(path string, rows int, uplift float64) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	header := make([]interface{}, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i := 0; i < rows; i++ {
		record := g.record(uplift)
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to resolve cell name: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &record); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

func (g *Generator) record(uplift float64) []interface{} {
	return []interface{}{
		g.pick(productLines),
		g.pick(regions),
		g.pick(riskLevels),
		round2(g.riskAmount() * g.drift(uplift)),
		round2(g.loanAmount() * g.drift(uplift)),
		g.rng.Intn(50) + 1,
		g.rng.Intn(100) + 5,
		round2(g.uniform(5000, 300000) * g.drift(uplift)),
	}
}

// riskAmount draws from four overlapping bands so values spread across a
// wide range instead of clustering.
func (g *Generator) riskAmount() float64 {
	switch g.rng.Intn(4) {
	case 0:
		return g.uniform(1_000, 50_000)
	case 1:
		return g.uniform(50_000, 200_000)
	case 2:
		return g.uniform(200_000, 800_000)
	default:
		return g.uniform(800_000, 2_000_000)
	}
}

// loanAmount draws from four clearly separated tiers. Cutpoints at the
// tier boundaries produce well-populated interval buckets.
func (g *Generator) loanAmount() float64 {
	switch g.rng.Intn(4) {
	case 0:
		return g.uniform(10_000, 100_000)
	case 1:
		return g.uniform(100_000, 500_000)
	case 2:
		return g.uniform(500_000, 1_500_000)
	default:
		return g.uniform(1_500_000, 5_000_000)
	}
}

// drift scatters the uplift factor a little per cell.
func (g *Generator) drift(uplift float64) float64 {
	if uplift == 1.0 {
		return 1.0
	}
	return uplift * g.uniform(0.97, 1.05)
}

func (g *Generator) pick(values []string) string {
	return values[g.rng.Intn(len(values))]
}

func (g *Generator) uniform(lo, hi float64) float64 {
	return lo + g.rng.Float64()*(hi-lo)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
