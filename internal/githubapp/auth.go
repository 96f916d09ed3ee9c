package githubapp

import (
	"encoding/json"
	"encoding/pem"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// assertionLifetime is the validity window of the signed app assertion
const assertionLifetime = 10 * time.Minute

// ResolveAppConfig gets the GitHub App identity from the environment
func ResolveAppConfig() (appID, installationID, privateKeyPath string, err error) {
	appID = os.Getenv("GITHUB_APP_ID")
	installationID = os.Getenv("GITHUB_INSTALLATION_ID")
	privateKeyPath = os.Getenv("GITHUB_PRIVATE_KEY_PATH")

	if appID == "" || installationID == "" || privateKeyPath == "" {
		return "", "", "", fmt.Errorf("GitHub App credentials required:\nset GITHUB_APP_ID, GITHUB_INSTALLATION_ID and GITHUB_PRIVATE_KEY_PATH environment variables")
	}

	return appID, installationID, privateKeyPath, nil
}

// GenerateJWT builds and signs the short-lived app assertion.
// The signing algorithm follows the key type: RS256 for RSA keys,
// ES256 for EC keys.
func (c *Client) GenerateJWT() (string, error) {
	keyData, err := os.ReadFile(c.PrivateKeyPath)
	if err != nil {
		return "", fmt.Errorf("reading private key: %w", err)
	}

	key, method, err := parseSigningKey(keyData)
	if err != nil {
		return "", err
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(assertionLifetime)),
		Issuer:    c.AppID,
	}

	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		return "", fmt.Errorf("signing assertion: %w", err)
	}

	return token, nil
}

// parseSigningKey decodes a PEM private key and picks the matching JWT method
func parseSigningKey(data []byte) (any, jwt.SigningMethod, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, nil, fmt.Errorf("parsing private key: no PEM block found")
	}

	if key, err := jwt.ParseRSAPrivateKeyFromPEM(data); err == nil {
		return key, jwt.SigningMethodRS256, nil
	}

	if key, err := jwt.ParseECPrivateKeyFromPEM(data); err == nil {
		return key, jwt.SigningMethodES256, nil
	}

	return nil, nil, fmt.Errorf("parsing private key: unsupported key type")
}

// InstallationToken exchanges the app assertion for a scoped installation token
func (c *Client) InstallationToken(assertion string) (string, error) {
	url := fmt.Sprintf("%s/app/installations/%s/access_tokens", c.BaseURL, c.InstallationID)

	req, err := http.NewRequest(http.MethodPost, url, nil)
	if err != nil {
		return "", fmt.Errorf("building token request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+assertion)
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("token exchange returned %d: %s", resp.StatusCode, string(body))
	}

	var tokenResp accessTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}

	return tokenResp.Token, nil
}
