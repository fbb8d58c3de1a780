package facts

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadSeed reads a YAML file with a top level `facts` list
func LoadSeed(path string) ([]Fact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var file struct {
		Facts []Fact `yaml:"facts"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}

	for i, f := range file.Facts {
		if f.VotesInteresting < 0 || f.VotesMindBlowing < 0 || f.VotesFalse < 0 {
			return nil, fmt.Errorf("seed fact %d: %w", i, ErrInvalidVotes)
		}
	}

	return file.Facts, nil
}
