package catalog

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	DefaultAPIVersion = "backstage.io/v1alpha1"
	DefaultKind       = "Component"
	DefaultOwner      = "Harness_Account_All_Users"

	// ServicesDir is the directory holding one subdirectory per repository
	ServicesDir = "services"

	// FileName is the descriptor file written into each service directory
	FileName = "catalog-info.yaml"
)

// NewComponent builds the descriptor for one repository
func NewComponent(org, name, sourceURL string) Component {
	return Component{
		APIVersion: DefaultAPIVersion,
		Kind:       DefaultKind,
		Metadata: Metadata{
			Name: name,
			Tags: []string{"auto-generated"},
			Annotations: Annotations{
				SourceLocation: "url:" + sourceURL,
				ProjectSlug:    org + "/" + name,
			},
		},
		Spec: Spec{
			Type:      "service",
			Lifecycle: "experimental",
			Owner:     DefaultOwner,
			System:    org,
		},
	}
}

// Render marshals the descriptor. Output is deterministic for
// identical inputs, so regenerated files are byte-identical.
func (c Component) Render() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshalling descriptor: %w", err)
	}
	return data, nil
}

// Write renders the descriptor for one repository and writes it below
// baseDir, creating the service directory if needed. Existing files
// are overwritten. The written path is returned.
func Write(baseDir, org, name, sourceURL string) (string, error) {
	dir := filepath.Join(baseDir, ServicesDir, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating service directory: %w", err)
	}

	data, err := NewComponent(org, name, sourceURL).Render()
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing descriptor file: %w", err)
	}

	return path, nil
}

// ScanServices lists the immediate subdirectories of baseDir/services,
// skipping the excluded name. Plain files are ignored.
func ScanServices(baseDir, exclude string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(baseDir, ServicesDir))
	if err != nil {
		return nil, fmt.Errorf("reading services directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if entry.Name() == exclude {
			continue
		}
		names = append(names, entry.Name())
	}

	return names, nil
}
