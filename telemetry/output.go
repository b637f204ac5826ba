package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/sphmap/config"
)

// Output appends run records to runs.csv in an output directory and
// snapshots the configuration next to them.
type Output struct {
	dir           string
	runsFile      *os.File
	headerWritten bool
}

// NewOutput creates the output directory and opens runs.csv. Returns
// nil if dir is empty (output disabled); the nil receiver is safe to
// use.
func NewOutput(dir string) (*Output, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, "runs.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating runs.csv: %w", err)
	}

	return &Output{dir: dir, runsFile: f}, nil
}

// WriteConfig saves the current configuration as YAML.
func (o *Output) WriteConfig(cfg *config.Config) error {
	if o == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(o.dir, "config.yaml"))
}

// WriteRun appends one run record to runs.csv.
func (o *Output) WriteRun(r RunStats) error {
	if o == nil {
		return nil
	}

	records := []RunStats{r}
	if !o.headerWritten {
		if err := gocsv.Marshal(records, o.runsFile); err != nil {
			return fmt.Errorf("writing run record: %w", err)
		}
		o.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, o.runsFile); err != nil {
		return fmt.Errorf("writing run record: %w", err)
	}
	return nil
}

// Dir returns the output directory path.
func (o *Output) Dir() string {
	if o == nil {
		return ""
	}
	return o.dir
}

// Close closes the run log.
func (o *Output) Close() error {
	if o == nil || o.runsFile == nil {
		return nil
	}
	return o.runsFile.Close()
}
