// Package forge resolves repository identities to browser URLs.
//
// Hosts differ in terminology and path shape (GitHub "pull requests" vs
// GitLab "merge requests"); the resolver exposes one logical
// [PagePullRequest] kind and maps it per host. github.com and gitlab.com
// are built in, self-hosted instances are recognized by host name
// heuristics ("github." prefix, "gitlab" anywhere) or configured
// explicitly via [hosts.DOMAIN] template sections in the config file.
//
// For unknown hosts the home page can still be derived from a full remote
// URL with [HomeFromRemote]; PR and issue pages cannot, their path shape
// is host-specific.
package forge
