package cmd

import (
	"fmt"

	"github.com/stuttgart-things/catalog-sync/internal/catalog"
	"github.com/stuttgart-things/catalog-sync/internal/githubapp"
)

// createDescriptors authenticates as the GitHub App, lists the
// organization's repositories and writes one descriptor per repository.
// Returns the number of descriptors created or updated.
func createDescriptors(config *SyncConfig) (int, error) {
	appID, installationID, keyPath, err := githubapp.ResolveAppConfig()
	if err != nil {
		return 0, err
	}

	client := githubapp.NewClient(appID, installationID, keyPath)

	fmt.Printf("Generating assertion for App ID: %s\n", appID)
	assertion, err := client.GenerateJWT()
	if err != nil {
		return 0, err
	}

	fmt.Printf("Fetching installation token for Installation ID: %s\n", installationID)
	token, err := client.InstallationToken(assertion)
	if err != nil {
		return 0, err
	}

	fmt.Printf("Fetching repositories for organization: %s\n", config.Org)
	repos, listErr := client.ListRepositories(config.Org, token, githubapp.ListOptions{
		Exclude:  config.SelfRepo,
		Pattern:  config.Pattern,
		PageSize: config.PageSize,
	})
	if listErr != nil {
		// partial listing: keep what was accumulated before the failing page
		fmt.Println(warnStyle.Render(fmt.Sprintf("Listing truncated: %v", listErr)))
	}

	fmt.Printf("Total repositories fetched: %d\n\n", len(repos))

	created := 0
	for _, repo := range repos {
		fmt.Printf("Processing repository: %s\n", repo.Name)

		if config.DryRun {
			data, err := catalog.NewComponent(config.Org, repo.Name, repo.HTMLURL).Render()
			if err != nil {
				return created, err
			}
			fmt.Println(string(data))
			created++
			continue
		}

		if _, err := catalog.Write(config.BaseDir, config.Org, repo.Name, repo.HTMLURL); err != nil {
			return created, fmt.Errorf("writing descriptor for %s: %w", repo.Name, err)
		}
		created++
	}

	return created, nil
}
