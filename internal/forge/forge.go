package forge

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/raphi011/arbor/internal/config"
	"github.com/raphi011/arbor/internal/identity"
)

// ErrUnknownHost indicates no URL templates are registered for a host.
var ErrUnknownHost = errors.New("no URL templates for host")

// PageKind selects which repository page a URL points to.
type PageKind int

const (
	// PageHome is the repository landing page.
	PageHome PageKind = iota
	// PagePullRequest is a pull request (GitHub) or merge request
	// (GitLab); one logical kind, host-specific path.
	PagePullRequest
	// PageIssue is an issue page.
	PageIssue
)

// String returns the kind's CLI keyword.
func (k PageKind) String() string {
	switch k {
	case PagePullRequest:
		return "pr"
	case PageIssue:
		return "issue"
	default:
		return "home"
	}
}

// githubTemplates covers github.com and GitHub Enterprise hosts.
var githubTemplates = config.HostTemplates{
	Home:  "https://{host}/{owner}/{repo}",
	PR:    "https://{host}/{owner}/{repo}/pull/{number}",
	Issue: "https://{host}/{owner}/{repo}/issues/{number}",
}

// gitlabTemplates covers gitlab.com and self-hosted GitLab instances.
var gitlabTemplates = config.HostTemplates{
	Home:  "https://{host}/{owner}/{repo}",
	PR:    "https://{host}/{owner}/{repo}/-/merge_requests/{number}",
	Issue: "https://{host}/{owner}/{repo}/-/issues/{number}",
}

// templatesFor picks the template set for a host. Configured hosts win;
// known public hosts and recognizable self-hosted instances follow.
func templatesFor(host string, hosts map[string]config.HostTemplates) (config.HostTemplates, bool) {
	if tpl, ok := hosts[host]; ok {
		return tpl, true
	}

	switch {
	case host == "github.com", strings.HasPrefix(host, "github."):
		return githubTemplates, true
	case host == "gitlab.com", strings.Contains(host, "gitlab"):
		return gitlabTemplates, true
	}

	return config.HostTemplates{}, false
}

// Resolve builds the browser URL for a repository page. hosts holds the
// configured per-host template overrides.
//
// For PagePullRequest and PageIssue a number <= 0 resolves to the listing
// page for that kind instead of a specific item. PageHome does not use
// number.
func Resolve(id identity.Identity, hosts map[string]config.HostTemplates, kind PageKind, number int) (string, error) {
	tpl, ok := templatesFor(id.Host, hosts)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownHost, id.Host)
	}

	var pattern string
	switch kind {
	case PagePullRequest:
		pattern = tpl.PR
	case PageIssue:
		pattern = tpl.Issue
	default:
		pattern = tpl.Home
	}
	if pattern == "" {
		return "", fmt.Errorf("%w: %s has no %s template", ErrUnknownHost, id.Host, kind)
	}

	if kind != PageHome && number <= 0 {
		// Listing page: drop the trailing "/{number}" element.
		pattern = strings.TrimSuffix(pattern, "/{number}")
	}

	url := expand(pattern, id, number)
	if strings.Contains(url, "{") {
		return "", fmt.Errorf("template for %s left unresolved placeholders: %s", id.Host, url)
	}
	return url, nil
}

// HomeFromRemote derives a browsable home page directly from a remote URL,
// for hosts without templates. Only the home page degrades this way; PR
// and issue paths are host-specific and require a template.
func HomeFromRemote(remote string) (string, error) {
	id, err := identity.ParseRemote(remote)
	if err != nil {
		return "", err
	}
	if strings.HasPrefix(remote, "http://") {
		return expand("http://{host}/{owner}/{repo}", id, 0), nil
	}
	return expand("https://{host}/{owner}/{repo}", id, 0), nil
}

func expand(pattern string, id identity.Identity, number int) string {
	url := strings.ReplaceAll(pattern, "{host}", id.Host)
	url = strings.ReplaceAll(url, "{owner}", id.OwnerString())
	url = strings.ReplaceAll(url, "{repo}", id.Name)
	if number > 0 {
		url = strings.ReplaceAll(url, "{number}", strconv.Itoa(number))
	}
	return url
}
