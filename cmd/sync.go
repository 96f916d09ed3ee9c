package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// Styles for terminal output
var (
	successStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))
)

var (
	syncOrg      string
	syncPattern  string
	syncPageSize int

	syncCreate   bool
	syncRegister bool
	syncRunAll   bool

	syncAPIKey  string
	syncAccount string
	syncBranch  string

	syncGitUser  string
	syncGitToken string

	syncDryRun  bool
	syncPush    bool
	syncAssume  bool
	syncNonInt  bool
	syncBaseDir string
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Generate and register catalog descriptors",
	Long: `Lists the repositories of a GitHub organization via a GitHub App
installation, writes a catalog-info.yaml descriptor per repository under
services/, and registers the committed descriptors with the developer
portal. Exactly one of --create, --register or --run-all selects the
action.`,
	Run: runSync,
}

func init() {
	syncCmd.Flags().StringVar(&syncOrg, "org", "", "GitHub organization name")
	syncCmd.Flags().StringVar(&syncPattern, "repo-pattern", "", "Optional pattern to filter repositories (matched at the start of the lowercased name)")
	syncCmd.Flags().IntVar(&syncPageSize, "page-size", 100, "Repository listing page size")

	syncCmd.Flags().BoolVar(&syncCreate, "create", false, "Create or update catalog-info.yaml files")
	syncCmd.Flags().BoolVar(&syncRegister, "register", false, "Register existing catalog-info.yaml files")
	syncCmd.Flags().BoolVar(&syncRunAll, "run-all", false, "Create, publish and register in one run")

	syncCmd.Flags().StringVar(&syncAPIKey, "api-key", "", "Portal API key (default: $HARNESS_API_KEY)")
	syncCmd.Flags().StringVar(&syncAccount, "account", "", "Portal account identifier (default: $HARNESS_ACCOUNT)")
	syncCmd.Flags().StringVar(&syncBranch, "branch", "main", "Target branch for registered descriptor URLs")

	syncCmd.Flags().StringVar(&syncGitUser, "git-user", "", "Git user for push (default: $GIT_USER or $GITHUB_USER)")
	syncCmd.Flags().StringVar(&syncGitToken, "git-token", "", "Git token for push (default: $GIT_TOKEN or $GITHUB_TOKEN)")

	syncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "Print descriptors without writing files")
	syncCmd.Flags().BoolVar(&syncPush, "push", false, "Commit and push services/ after creating descriptors")
	syncCmd.Flags().BoolVarP(&syncAssume, "yes", "y", false, "Skip the registration confirmation")
	syncCmd.Flags().BoolVar(&syncNonInt, "non-interactive", false, "Force non-interactive mode")
	syncCmd.Flags().StringVar(&syncBaseDir, "base-dir", ".", "Directory holding the services/ tree")

	rootCmd.AddCommand(syncCmd)
}

// validateActions enforces that exactly one action switch is set
func validateActions(create, register, runAll bool) error {
	selected := 0
	for _, b := range []bool{create, register, runAll} {
		if b {
			selected++
		}
	}
	if selected != 1 {
		return fmt.Errorf("exactly one of --create, --register or --run-all must be set")
	}
	return nil
}

// validateInputs checks the mode-specific required inputs
func validateInputs(config *SyncConfig) error {
	if config.Org == "" {
		return fmt.Errorf("GitHub organization required: set --org")
	}
	if config.Register {
		if config.Account == "" {
			return fmt.Errorf("portal account required: set --account or HARNESS_ACCOUNT")
		}
		if config.APIKey == "" {
			return fmt.Errorf("portal API key required: set --api-key or HARNESS_API_KEY")
		}
	}
	return nil
}

func runSync(cmd *cobra.Command, args []string) {
	fmt.Println(logo)

	if err := validateActions(syncCreate, syncRegister, syncRunAll); err != nil {
		fmt.Println(errorStyle.Render(err.Error()))
		os.Exit(1)
	}

	// Environment fallbacks for portal credentials
	if syncAPIKey == "" {
		syncAPIKey = os.Getenv("HARNESS_API_KEY")
	}
	if syncAccount == "" {
		syncAccount = os.Getenv("HARNESS_ACCOUNT")
	}

	config := &SyncConfig{
		Org:      syncOrg,
		Pattern:  syncPattern,
		PageSize: syncPageSize,
		Create:   syncCreate || syncRunAll,
		Register: syncRegister || syncRunAll,
		Publish:  syncPush || syncRunAll,
		Account:  syncAccount,
		APIKey:   syncAPIKey,
		Branch:   syncBranch,
		GitUser:  syncGitUser,
		GitToken: syncGitToken,
		DryRun:   syncDryRun,
		BaseDir:  syncBaseDir,
		SelfRepo: invokingRepoName(),
	}

	// Auto-detect: interactive if TTY, non-interactive otherwise
	if syncNonInt || syncAssume {
		config.Interactive = false
	} else {
		config.Interactive = isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	if err := validateInputs(config); err != nil {
		fmt.Println(errorStyle.Render(err.Error()))
		os.Exit(1)
	}

	if config.Create {
		created, err := createDescriptors(config)
		if err != nil {
			fmt.Println(errorStyle.Render(err.Error()))
			os.Exit(1)
		}
		fmt.Println("----------")
		fmt.Println(successStyle.Render(fmt.Sprintf("Total YAML files created or updated: %d", created)))
	}

	if config.Publish && !config.DryRun {
		// Best-effort: publish errors are reported but never abort the run
		if err := publishServices(config); err != nil {
			fmt.Println(warnStyle.Render(fmt.Sprintf("Publish skipped: %v", err)))
		}
	}

	if config.Register {
		results, err := registerDescriptors(config)
		if err != nil {
			fmt.Println(errorStyle.Render(err.Error()))
			os.Exit(1)
		}
		printRegistrationSummary(results)
	}
}

// invokingRepoName returns the lowercased name of the working directory,
// used for self-exclusion
func invokingRepoName() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return strings.ToLower(filepath.Base(cwd))
}
