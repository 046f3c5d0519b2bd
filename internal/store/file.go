package store

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/benchmeter/benchmeter/internal/bench"
)

// Save dumps a suite to path as a JSON document. Without replace, an
// existing destination is never overwritten: the error satisfies
// errors.Is(err, fs.ErrExist). The document is fully encoded before the
// destination is opened, so an encoding failure never damages an existing
// file, and the handle is released on every exit path.
func Save(path string, suite *bench.Suite, replace bool) error {
	data, err := json.MarshalIndent(encodeSuite(suite), "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode suite: %w", err)
	}
	data = append(data, '\n')

	flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if replace {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}

	suite.SetFilename(path)
	return nil
}

// Load reads a JSON document and reconstructs the suite through the model
// constructors, re-validating every invariant. Malformed documents fail
// with an error satisfying errors.Is(err, ErrInvalidDocument).
func Load(path string) (*bench.Suite, error) {
	// #nosec G304 - controlled path from CLI
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var doc suiteDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	suite, err := decodeSuite(doc)
	if err != nil {
		return nil, err
	}
	suite.SetFilename(path)
	return suite, nil
}

// SaveBenchmark dumps a single benchmark as a one-entry suite document.
func SaveBenchmark(path string, b *bench.Benchmark, replace bool) error {
	suite, err := bench.NewSuite([]*bench.Benchmark{b})
	if err != nil {
		return err
	}
	return Save(path, suite, replace)
}

// LoadBenchmark reads a document expected to hold exactly one benchmark.
func LoadBenchmark(path string) (*bench.Benchmark, error) {
	suite, err := Load(path)
	if err != nil {
		return nil, err
	}
	if suite.Len() != 1 {
		return nil, fmt.Errorf("%w: expected exactly one benchmark in %s, found %d",
			ErrInvalidDocument, path, suite.Len())
	}
	return suite.Benchmarks()[0], nil
}
