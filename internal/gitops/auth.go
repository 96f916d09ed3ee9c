package gitops

import "os"

// ResolveCredentials gets git push credentials from flags or environment.
// Missing credentials are not an error: the publisher is best-effort and
// commits work without them.
func ResolveCredentials(user, token string) (string, string) {
	if user == "" {
		user = os.Getenv("GIT_USER")
		if user == "" {
			user = os.Getenv("GITHUB_USER")
		}
	}
	if token == "" {
		token = os.Getenv("GIT_TOKEN")
		if token == "" {
			token = os.Getenv("GITHUB_TOKEN")
		}
	}
	return user, token
}
