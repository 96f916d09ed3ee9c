package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/charmbracelet/huh"
	"github.com/stuttgart-things/catalog-sync/internal/catalog"
	"github.com/stuttgart-things/catalog-sync/internal/portal"
)

// registerDescriptors scans the services/ tree and registers each
// descriptor with the portal. Per-repository failures are counted and
// do not stop the loop.
func registerDescriptors(config *SyncConfig) ([]portal.Result, error) {
	names, err := catalog.ScanServices(config.BaseDir, config.SelfRepo)
	if err != nil {
		return nil, err
	}

	if len(names) == 0 {
		fmt.Println("No descriptors found under services/.")
		return nil, nil
	}

	if config.Interactive {
		ok, err := confirmRegistration(len(names))
		if err != nil {
			return nil, err
		}
		if !ok {
			fmt.Println("Cancelled.")
			return nil, nil
		}
	}

	client := portal.NewClient(config.Account, config.APIKey)

	fmt.Println("Registering YAML files...")
	var results []portal.Result
	for _, name := range names {
		target := portal.TargetURL(config.Org, config.SelfRepo, config.Branch, name)

		outcome, err := client.RegisterLocation(name, target)
		switch outcome {
		case portal.OutcomeRegistered:
			fmt.Printf("Location registered for file: %s\n", name)
		case portal.OutcomeRefreshed:
			fmt.Printf("Location already exists for file: %s. Refreshing it\n", name)
		default:
			fmt.Println(errorStyle.Render(fmt.Sprintf("Failed to register location for file: %s. Error: %v", name, err)))
		}

		results = append(results, portal.Result{Name: name, Outcome: outcome, Err: err})
	}

	return results, nil
}

// confirmRegistration asks before calling the portal API
func confirmRegistration(count int) (bool, error) {
	confirm := true
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Register %d descriptor(s)?", count)).
				Description("This will call the portal catalog API").
				Affirmative("Yes, register").
				Negative("Cancel").
				Value(&confirm),
		),
	)

	if err := form.Run(); err != nil {
		return false, err
	}
	return confirm, nil
}

// printRegistrationSummary prints the per-repository outcome table and
// the final counts
func printRegistrationSummary(results []portal.Result) {
	if len(results) == 0 {
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tOUTCOME")
	fmt.Fprintln(w, "----\t-------")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%s\n", r.Name, r.Outcome)
	}
	w.Flush()

	succeeded, failed := 0, 0
	for _, r := range results {
		if r.Outcome.Success() {
			succeeded++
		} else {
			failed++
		}
	}

	fmt.Println("----------")
	fmt.Println(successStyle.Render(fmt.Sprintf("Registrations processed: %d succeeded, %d failed", succeeded, failed)))
}
