package registryapi

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/distribution/reference"
	"github.com/google/go-containerregistry/pkg/authn"
	"github.com/google/go-containerregistry/pkg/name"

	"github.com/bnema/registry-cli/internal/domain"
)

// ParseEndpoint turns host[:port], http://host[:port] or https://host[:port]
// into a registry name. An http scheme forces plain HTTP.
func ParseEndpoint(endpoint string) (name.Registry, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return name.Registry{}, fmt.Errorf("%w: registry endpoint is required", domain.ErrInvalidConfig)
	}

	raw := endpoint
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return name.Registry{}, fmt.Errorf("%w: registry endpoint %q: %v", domain.ErrInvalidConfig, endpoint, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return name.Registry{}, fmt.Errorf("%w: unsupported registry scheme %q", domain.ErrInvalidConfig, u.Scheme)
	}
	if strings.Trim(u.Path, "/") != "" || u.RawQuery != "" || u.User != nil {
		return name.Registry{}, fmt.Errorf("%w: registry endpoint %q must not carry a path, query or credentials", domain.ErrInvalidConfig, endpoint)
	}

	opts := []name.Option{name.StrictValidation}
	if u.Scheme == "http" {
		opts = append(opts, name.Insecure)
	}

	reg, err := name.NewRegistry(u.Host, opts...)
	if err != nil {
		return name.Registry{}, fmt.Errorf("%w: registry endpoint %q: %v", domain.ErrInvalidConfig, endpoint, err)
	}
	return reg, nil
}

// ParseLogin parses USER:PASSWORD into a basic authenticator.
// Surrounding quotes are trimmed from both parts.
func ParseLogin(login string) (authn.Authenticator, error) {
	user, password, ok := strings.Cut(login, ":")
	user = trimQuotes(user)
	password = trimQuotes(password)
	if !ok || user == "" || password == "" {
		return nil, fmt.Errorf("%w: please provide --login in the form USER:PASSWORD", domain.ErrInvalidCredentials)
	}
	return &authn.Basic{Username: user, Password: password}, nil
}

func trimQuotes(s string) string {
	return strings.Trim(strings.TrimSpace(s), `"'`)
}

// ValidateRepository checks a repository path such as "team/app".
func ValidateRepository(repository string) error {
	if repository == "" {
		return fmt.Errorf("%w: empty name", domain.ErrInvalidRepositoryName)
	}
	if _, err := reference.WithName(repository); err != nil {
		return fmt.Errorf("%w: %q: %v", domain.ErrInvalidRepositoryName, repository, err)
	}
	return nil
}
