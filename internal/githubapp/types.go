package githubapp

// Repository is one entry of an organization repository listing.
// Name is stored lowercased.
type Repository struct {
	Name    string `json:"name"`
	HTMLURL string `json:"html_url"`
}

// accessTokenResponse is the body of a successful installation token exchange
type accessTokenResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}
