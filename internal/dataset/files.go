package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"popcli/internal/errors"
)

// DateFormat is the ISO date layout used in period file names.
const DateFormat = "2006-01-02"

// periodExtensions are tried in order when resolving a period file.
var periodExtensions = []string{".xlsx", ".csv"}

// ValidateDate checks that s is a valid YYYY-MM-DD date.
func ValidateDate(s string) error {
	if _, err := time.Parse(DateFormat, strings.TrimSpace(s)); err != nil {
		return errors.NewAppValidationError(fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", s))
	}
	return nil
}

// PeriodFileName returns the conventional file name for a period snapshot:
// <prefix>_<date><ext>.
func PeriodFileName(prefix, date, ext string) string {
	return fmt.Sprintf("%s_%s%s", prefix, strings.TrimSpace(date), ext)
}

// FindPeriodFile resolves the period file for the given prefix and date in
// dir, trying the supported extensions in order.
func FindPeriodFile(dir, prefix, date string) (string, error) {
	if err := ValidateDate(date); err != nil {
		return "", err
	}

	for _, ext := range periodExtensions {
		path := filepath.Join(dir, PeriodFileName(prefix, date, ext))
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", errors.NewNotFoundError(
		fmt.Sprintf("period file %s_%s (.xlsx or .csv) in %s", prefix, date, dir))
}

// Load reads a period file into a Dataset, dispatching on the extension.
func Load(path string) (*Dataset, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return LoadExcel(path)
	case ".csv":
		return LoadCSV(path)
	default:
		return nil, errors.NewParsingError(fmt.Sprintf("unsupported file type: %s", path), nil)
	}
}
