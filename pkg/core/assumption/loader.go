package assumption

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hjson/hjson-go/v4"
	"gopkg.in/yaml.v2"

	"dcf_valuation/pkg/core/valuation"
)

// Load reads a scenario file, dispatching on extension: .yaml/.yml, or
// .hjson/.json (HJSON is a superset of JSON, so plain JSON loads too).
// Fields omitted by the file keep their Default() values, then the merged
// set is derived and validated.
func Load(path string) (Set, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return LoadYAML(path)
	case ".hjson", ".json":
		return LoadHJSON(path)
	default:
		return Set{}, fmt.Errorf("unsupported scenario file extension: %s", path)
	}
}

// LoadYAML reads a YAML scenario file over Default().
func LoadYAML(path string) (Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Set{}, fmt.Errorf("failed to read scenario %s: %w", path, err)
	}
	set := Default()
	if err := yaml.Unmarshal(data, &set); err != nil {
		return Set{}, fmt.Errorf("failed to parse scenario %s: %w", path, err)
	}
	return finish(set)
}

// LoadHJSON reads an HJSON scenario file over Default(). HJSON permits
// comments and relaxed syntax, which suits hand-authored scenarios.
func LoadHJSON(path string) (Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Set{}, fmt.Errorf("failed to read scenario %s: %w", path, err)
	}
	set := Default()
	if err := hjson.Unmarshal(data, &set); err != nil {
		return Set{}, fmt.Errorf("failed to parse scenario %s: %w", path, err)
	}
	return finish(set)
}

// finish resolves derived fields and validates the loaded set.
func finish(set Set) (Set, error) {
	if set.WACCBuildup != nil {
		set.WACCMean = valuation.CalculateWACC(*set.WACCBuildup).WACC
	}
	if err := set.Validate(); err != nil {
		return Set{}, err
	}
	return set, nil
}
