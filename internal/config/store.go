package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	securejoin "github.com/cyphar/filepath-securejoin"
)

// OrgMetadata is the locally stored record for a provisioned scratch org.
type OrgMetadata struct {
	Alias       string `json:"alias"`
	Username    string `json:"username"`
	OrgID       string `json:"orgId"`
	DevHub      string `json:"devHub"`
	InstanceURL string `json:"instanceUrl"`
	AuthToken   string `json:"authToken,omitempty"`
	CreatedAt   string `json:"createdAt"`
	ExpiresAt   string `json:"expiresAt,omitempty"`
	IsDefault   bool   `json:"isDefault,omitempty"`
}

// orgPath resolves the metadata file path for an alias, refusing names
// that would escape the orgs directory.
func orgPath(orgsDir, alias string) (string, error) {
	if err := ValidateAlias(alias); err != nil {
		return "", err
	}
	return securejoin.SecureJoin(orgsDir, alias+".json")
}

// LoadOrg loads metadata for a stored org by alias.
func LoadOrg(orgsDir, alias string) (*OrgMetadata, error) {
	metaPath, err := orgPath(orgsDir, alias)
	if err != nil {
		return nil, fmt.Errorf("invalid org alias: %w", err)
	}
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, fmt.Errorf("org not found: %s", alias)
	}

	var metadata OrgMetadata
	if err := json.Unmarshal(data, &metadata); err != nil {
		return nil, fmt.Errorf("failed to parse org metadata: %w", err)
	}

	return &metadata, nil
}

// SaveOrg saves metadata for an org.
func SaveOrg(orgsDir string, metadata *OrgMetadata) error {
	if err := os.MkdirAll(orgsDir, 0755); err != nil {
		return fmt.Errorf("failed to create orgs directory: %w", err)
	}

	metaPath, err := orgPath(orgsDir, metadata.Alias)
	if err != nil {
		return fmt.Errorf("invalid org alias: %w", err)
	}
	data, err := json.MarshalIndent(metadata, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	if err := os.WriteFile(metaPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write metadata: %w", err)
	}

	return nil
}

// DeleteOrg removes the stored metadata for an org.
func DeleteOrg(orgsDir, alias string) error {
	metaPath, err := orgPath(orgsDir, alias)
	if err != nil {
		return fmt.Errorf("invalid org alias: %w", err)
	}
	return os.Remove(metaPath)
}

// ListOrgs returns all stored org metadata.
func ListOrgs(orgsDir string) ([]*OrgMetadata, error) {
	entries, err := os.ReadDir(orgsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read orgs directory: %w", err)
	}

	var orgs []*OrgMetadata
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		alias := strings.TrimSuffix(entry.Name(), ".json")
		metadata, err := LoadOrg(orgsDir, alias)
		if err != nil {
			continue
		}
		orgs = append(orgs, metadata)
	}

	return orgs, nil
}

// OrgExists checks if a stored org exists.
func OrgExists(orgsDir, alias string) bool {
	metaPath, err := orgPath(orgsDir, alias)
	if err != nil {
		return false
	}
	_, err = os.Stat(metaPath)
	return err == nil
}

// SetDefaultOrg marks the given alias as the default org, clearing the
// flag on all other stored orgs.
func SetDefaultOrg(orgsDir, alias string) error {
	orgs, err := ListOrgs(orgsDir)
	if err != nil {
		return err
	}

	found := false
	for _, org := range orgs {
		wantDefault := org.Alias == alias
		if wantDefault {
			found = true
		}
		if org.IsDefault == wantDefault {
			continue
		}
		org.IsDefault = wantDefault
		if err := SaveOrg(orgsDir, org); err != nil {
			return err
		}
	}

	if !found {
		return fmt.Errorf("org not found: %s", alias)
	}
	return nil
}

// DefaultOrg returns the stored org marked as default, or nil.
func DefaultOrg(orgsDir string) (*OrgMetadata, error) {
	orgs, err := ListOrgs(orgsDir)
	if err != nil {
		return nil, err
	}
	for _, org := range orgs {
		if org.IsDefault {
			return org, nil
		}
	}
	return nil, nil
}
