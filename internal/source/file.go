package source

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sensordonut/sensordonut/internal/config"
	"github.com/sensordonut/sensordonut/pkg/types"
)

type fileSource struct {
	src config.Source
}

func (s *fileSource) ID() string { return s.src.ID }

// Fetch re-reads the state file on every call.
func (s *fileSource) Fetch(ctx context.Context) ([]types.LiveValue, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	values, err := ReadStates(s.src.Path)
	if err != nil {
		return nil, fmt.Errorf("file %q: %w", s.src.ID, err)
	}
	return values, nil
}

// ReadStates loads a list of state records from a .json, .yaml or .yml file.
// Files with any other extension are tried as YAML, which also accepts JSON.
func ReadStates(path string) ([]types.LiveValue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	records, err := ParseStates(data, strings.ToLower(filepath.Ext(path)) == ".json")
	if err != nil {
		return nil, err
	}
	return toLiveValues(records), nil
}

// ParseStates decodes a list of state records. When asJSON is false the data
// is decoded as YAML.
func ParseStates(data []byte, asJSON bool) ([]types.StateRecord, error) {
	var records []types.StateRecord
	if asJSON {
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("parse json: %w", err)
		}
		return records, nil
	}
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return records, nil
}
