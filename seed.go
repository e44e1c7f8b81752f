package bricks

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var seedYAML []byte

// Seed returns the records of the default collection, used when no collection
// has been saved yet or the saved one cannot be read.
func Seed() []RawRecord {
	records, err := decodeYAML(seedYAML)
	if err != nil {
		// the seed is embedded, it is checked by the tests.
		panic(err)
	}
	return records
}

// decodeYAML reads a YAML sequence of records.
func decodeYAML(data []byte) ([]RawRecord, error) {
	var records []RawRecord
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("cannot parse YAML records: %w", err)
	}
	return records, nil
}
