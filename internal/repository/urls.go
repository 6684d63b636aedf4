package repository

import (
	"fmt"
	"net/url"
	"strings"
)

// RemoteRef identifies a remote repository independently of the transport
// used to reach it. A reference parsed from any accepted form normalizes to
// the same RemoteRef, and every transport URL can be derived from it.
type RemoteRef struct {
	Host  string
	Owner string
	Repo  string
}

// ParseRemoteRef parses a repository reference in any of the accepted forms:
//
//   - anonymous HTTPS:  https://github.com/owner/repo.git
//   - SSH:              git@github.com:owner/repo.git
//   - token HTTPS:      https://<token>:x-oauth-basic@github.com/owner/repo.git
//
// The trailing ".git" suffix is optional in all forms. Embedded credentials
// are discarded during normalization; tokens are re-applied only when a
// token transport URL is derived.
//
// Returns a MalformedReferenceError when the reference fits none of the
// forms or is missing the owner or repository component.
func ParseRemoteRef(raw string) (RemoteRef, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return RemoteRef{}, &MalformedReferenceError{Raw: raw, Reason: "empty reference"}
	}

	if strings.HasPrefix(trimmed, "git@") {
		return parseSSHRef(raw, trimmed)
	}

	if strings.HasPrefix(trimmed, "https://") || strings.HasPrefix(trimmed, "http://") {
		return parseHTTPRef(raw, trimmed)
	}

	return RemoteRef{}, &MalformedReferenceError{
		Raw:    raw,
		Reason: "expected an https:// URL or a git@host:owner/repo form",
	}
}

// parseSSHRef handles the scp-like form git@host:owner/repo(.git).
func parseSSHRef(raw, trimmed string) (RemoteRef, error) {
	rest := strings.TrimPrefix(trimmed, "git@")
	host, path, ok := strings.Cut(rest, ":")
	if !ok || host == "" {
		return RemoteRef{}, &MalformedReferenceError{Raw: raw, Reason: "missing host in SSH reference"}
	}

	owner, repo, err := splitOwnerRepo(path)
	if err != nil {
		return RemoteRef{}, &MalformedReferenceError{Raw: raw, Reason: err.Error()}
	}
	return RemoteRef{Host: host, Owner: owner, Repo: repo}, nil
}

// parseHTTPRef handles https URLs, with or without embedded credentials.
func parseHTTPRef(raw, trimmed string) (RemoteRef, error) {
	u, err := url.Parse(trimmed)
	if err != nil {
		return RemoteRef{}, &MalformedReferenceError{Raw: raw, Reason: fmt.Sprintf("invalid URL: %v", err)}
	}
	if u.Hostname() == "" {
		return RemoteRef{}, &MalformedReferenceError{Raw: raw, Reason: "missing host"}
	}

	owner, repo, err := splitOwnerRepo(strings.TrimPrefix(u.Path, "/"))
	if err != nil {
		return RemoteRef{}, &MalformedReferenceError{Raw: raw, Reason: err.Error()}
	}
	return RemoteRef{Host: u.Hostname(), Owner: owner, Repo: repo}, nil
}

func splitOwnerRepo(path string) (string, string, error) {
	path = strings.TrimSuffix(strings.Trim(path, "/"), ".git")
	parts := strings.Split(path, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("expected owner/repo path, got %q", path)
	}
	return parts[0], parts[1], nil
}

// Name returns the short repository name used for the local checkout
// directory.
func (r RemoteRef) Name() string {
	return r.Repo
}

// HTTPS returns the anonymous HTTPS transport URL.
func (r RemoteRef) HTTPS() string {
	return fmt.Sprintf("https://%s/%s/%s.git", r.Host, r.Owner, r.Repo)
}

// SSH returns the scp-like SSH transport URL.
func (r RemoteRef) SSH() string {
	return fmt.Sprintf("git@%s:%s/%s.git", r.Host, r.Owner, r.Repo)
}

// TokenHTTPS returns the HTTPS transport URL with the token embedded as the
// username and the fixed "x-oauth-basic" password, as GitHub expects for
// personal access tokens.
func (r RemoteRef) TokenHTTPS(token string) string {
	return fmt.Sprintf("https://%s:x-oauth-basic@%s/%s/%s.git", token, r.Host, r.Owner, r.Repo)
}

// SameRepo reports whether the given remote URL, in any accepted form,
// refers to the same repository as this reference. Unparseable URLs never
// match.
func (r RemoteRef) SameRepo(remoteURL string) bool {
	other, err := ParseRemoteRef(remoteURL)
	if err != nil {
		return false
	}
	return r == other
}
