package catalog

// Component represents one catalog-info.yaml descriptor
type Component struct {
	APIVersion string   `yaml:"apiVersion"`
	Kind       string   `yaml:"kind"`
	Metadata   Metadata `yaml:"metadata"`
	Spec       Spec     `yaml:"spec"`
}

// Metadata contains the component metadata
type Metadata struct {
	Name        string      `yaml:"name"`
	Tags        []string    `yaml:"tags"`
	Annotations Annotations `yaml:"annotations"`
}

// Annotations carries the portal-relevant source annotations.
// A struct instead of a map keeps the marshalled key order stable.
type Annotations struct {
	SourceLocation string `yaml:"backstage.io/source-location"`
	ProjectSlug    string `yaml:"github.com/project-slug"`
}

// Spec contains the component specification
type Spec struct {
	Type      string `yaml:"type"`
	Lifecycle string `yaml:"lifecycle"`
	Owner     string `yaml:"owner"`
	System    string `yaml:"system"`
}
