package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Definition represents a scratch org definition file. Only the fields
// orgctl itself inspects are typed; everything else lands in Extra and
// passes through to the provisioning API untouched.
type Definition struct {
	OrgName       string                     `json:"orgName"`
	Edition       string                     `json:"edition"`
	AdminEmail    string                     `json:"adminEmail,omitempty"`
	HasSampleData bool                       `json:"hasSampleData,omitempty"`
	Features      []string                   `json:"features,omitempty"`
	Settings      json.RawMessage            `json:"settings,omitempty"`
	Extra         map[string]json.RawMessage `json:"-"`
}

// typedDefinitionFields are the keys decoded into Definition itself;
// everything else in the file is an Extra field.
var typedDefinitionFields = []string{
	"orgName", "edition", "adminEmail", "hasSampleData", "features", "settings",
}

// Validate checks that the Definition is valid.
func (d *Definition) Validate() error {
	if d.Edition == "" {
		return fmt.Errorf("edition is required")
	}
	return nil
}

// LoadDefinition loads a scratch org definition from a JSON file.
func LoadDefinition(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition file: %w", err)
	}

	var def Definition
	if err := json.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("failed to parse definition file: %w", err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("failed to parse definition file: %w", err)
	}
	for _, key := range typedDefinitionFields {
		delete(fields, key)
	}
	if len(fields) > 0 {
		def.Extra = fields
	}

	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("invalid definition file: %w", err)
	}

	return &def, nil
}
