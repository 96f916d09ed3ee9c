package cmd

import (
	"errors"
	"fmt"

	"github.com/stuttgart-things/catalog-sync/internal/catalog"
	"github.com/stuttgart-things/catalog-sync/internal/gitops"
)

// commitMessage is the fixed message used for descriptor commits
const commitMessage = "Adding YAMLs"

// publishServices commits and pushes the services/ tree to the
// configured branch's remote. Called best-effort by runSync.
func publishServices(config *SyncConfig) error {
	user, token := gitops.ResolveCredentials(config.GitUser, config.GitToken)

	p, err := gitops.Open(config.BaseDir, user, token)
	if err != nil {
		return err
	}

	fmt.Println("Pushing YAMLs...")
	if err := p.AddServices(catalog.ServicesDir); err != nil {
		return err
	}

	if err := p.Commit(commitMessage); err != nil {
		if errors.Is(err, gitops.ErrNothingToPublish) {
			fmt.Println("No descriptor changes to commit.")
			return nil
		}
		return err
	}

	if err := p.Push("origin"); err != nil {
		return err
	}

	fmt.Println(successStyle.Render("Pushed successfully"))
	return nil
}
