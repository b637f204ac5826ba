package points

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
)

// record is one CSV row of a particle snapshot.
type record struct {
	X      float64 `csv:"x"`
	Y      float64 `csv:"y"`
	Weight float64 `csv:"weight"`
	Hsml   float64 `csv:"hsml"`
}

// ReadCSV loads a snapshot from a CSV file with columns x, y and
// optionally weight and hsml. If the weight column is absent (all
// zero), weights default to 1 so the map is a number density. Absent
// hsml stays zero; estimate it with EstimateHsml before splatting.
func ReadCSV(path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot: %w", err)
	}
	defer f.Close()

	var records []record
	if err := gocsv.UnmarshalFile(f, &records); err != nil {
		return nil, fmt.Errorf("parsing snapshot %s: %w", path, err)
	}

	s := NewSet(len(records))
	allZeroWeight := true
	for _, r := range records {
		if r.Weight != 0 {
			allZeroWeight = false
		}
		s.Append(r.X, r.Y, r.Weight, r.Hsml)
	}
	if allZeroWeight {
		s.UniformWeights()
	}
	return s, nil
}

// WriteCSV saves the snapshot with columns x, y, weight, hsml.
func (s *Set) WriteCSV(path string) error {
	if err := s.Validate(); err != nil {
		return err
	}

	records := make([]record, s.Len())
	for k := range records {
		records[k] = record{X: s.X[k], Y: s.Y[k], Weight: s.Weight[k], Hsml: s.Hsml[k]}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating snapshot: %w", err)
	}
	defer f.Close()

	if err := gocsv.Marshal(records, f); err != nil {
		return fmt.Errorf("writing snapshot %s: %w", path, err)
	}
	return nil
}
