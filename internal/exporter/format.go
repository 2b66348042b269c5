package exporter

import (
	"fmt"

	"popcli/internal/analysis"
)

// ReportFileName returns the conventional name for a comparison report:
// comparison_<mode>_<current>_vs_<prior>.<ext>.
func ReportFileName(mode analysis.Mode, currentDate, priorDate, ext string) string {
	return fmt.Sprintf("comparison_%s_%s_vs_%s.%s", mode, currentDate, priorDate, ext)
}
