package cmd

// SyncConfig holds configuration for the sync command
type SyncConfig struct {
	// GitHub organization
	Org     string
	Pattern string

	// Page size for repository listing
	PageSize int

	// Selected actions
	Create   bool
	Register bool
	Publish  bool
	DryRun   bool

	// Portal configuration
	Account string
	APIKey  string

	// Git configuration
	Branch   string
	GitUser  string
	GitToken string

	// SelfRepo is the invoking repository's own name, excluded from
	// listing, generation and registration
	SelfRepo string

	// BaseDir is the directory holding the services/ tree
	BaseDir string

	// Mode control
	Interactive bool
}
