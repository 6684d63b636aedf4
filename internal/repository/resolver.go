package repository

import (
	"os"

	"adtsetup/internal/logging"

	"github.com/go-git/go-git/v6/plumbing/transport"
	githttp "github.com/go-git/go-git/v6/plumbing/transport/http"
	gitssh "github.com/go-git/go-git/v6/plumbing/transport/ssh"
)

// TransportForm identifies one of the transport encodings a RemoteRef can
// be reached through.
type TransportForm int

const (
	TransportAnonymous TransportForm = iota // anonymous HTTPS
	TransportSSH                            // SSH with agent/key auth
	TransportToken                          // HTTPS with a personal access token
)

func (f TransportForm) String() string {
	switch f {
	case TransportAnonymous:
		return "anonymous https"
	case TransportSSH:
		return "ssh"
	case TransportToken:
		return "token https"
	default:
		return "unknown"
	}
}

// AcquireMode selects between an initial clone and an update of an existing
// checkout.
type AcquireMode int

const (
	ModeClone AcquireMode = iota
	ModeUpdate
)

func (m AcquireMode) String() string {
	if m == ModeUpdate {
		return "update"
	}
	return "clone"
}

// transportAttempt is one entry in the credential chain: a transport URL
// plus a lazy auth constructor. Auth is built only when the attempt runs so
// a missing SSH agent costs nothing unless the anonymous attempt failed.
type transportAttempt struct {
	form TransportForm
	url  string
	auth func() (transport.AuthMethod, error)
}

// Resolver acquires repositories by walking an ordered credential chain:
// anonymous HTTPS first, then SSH, then token-authenticated HTTPS when a
// token is configured. The first transport to succeed wins; if every
// transport fails the resolver returns an AcquisitionExhaustedError that
// records each attempt.
type Resolver struct {
	token  string
	git    gitRunner
	logger *logging.AppLogger

	// sshAuth builds the SSH auth method; overridable in tests.
	sshAuth func() (transport.AuthMethod, error)
}

// NewResolver creates a Resolver. token may be empty, in which case the
// token transport is omitted from the chain.
func NewResolver(token string, logger *logging.AppLogger) *Resolver {
	return &Resolver{
		token:   token,
		git:     &goGitRunner{logger: logger},
		logger:  logger,
		sshAuth: defaultSSHAuth,
	}
}

// defaultSSHAuth authenticates as the conventional "git" user through the
// running SSH agent, picking up whatever keys the user has loaded.
func defaultSSHAuth() (transport.AuthMethod, error) {
	return gitssh.NewSSHAgentAuth("git")
}

// chain builds the ordered transport attempts for a reference.
func (r *Resolver) chain(ref RemoteRef) []transportAttempt {
	attempts := []transportAttempt{
		{
			form: TransportAnonymous,
			url:  ref.HTTPS(),
			auth: func() (transport.AuthMethod, error) { return nil, nil },
		},
		{
			form: TransportSSH,
			url:  ref.SSH(),
			auth: r.sshAuth,
		},
	}

	if r.token != "" {
		token := r.token
		attempts = append(attempts, transportAttempt{
			form: TransportToken,
			url:  ref.HTTPS(),
			auth: func() (transport.AuthMethod, error) {
				return &githttp.BasicAuth{Username: token, Password: "x-oauth-basic"}, nil
			},
		})
	}
	return attempts
}

// Acquire clones or updates the repository at dest, trying each transport
// in chain order. It returns the transport that succeeded.
//
// A failed clone can leave a partial checkout behind; the destination is
// removed before the next transport tries, so each attempt starts from the
// same state.
func (r *Resolver) Acquire(ref RemoteRef, dest string, mode AcquireMode) (TransportForm, error) {
	var failures []AttemptFailure

	for _, attempt := range r.chain(ref) {
		auth, err := attempt.auth()
		if err != nil {
			failures = append(failures, AttemptFailure{Transport: attempt.form, Err: err})
			if r.logger != nil {
				r.logger.Debug("Transport unavailable", "transport", attempt.form.String(), "error", err)
			}
			continue
		}

		var opErr error
		switch mode {
		case ModeUpdate:
			opErr = r.git.Update(dest, attempt.url, auth)
		default:
			opErr = r.git.Clone(attempt.url, auth, dest)
		}

		if opErr == nil {
			if r.logger != nil {
				r.logger.Info("Repository acquired",
					"repo", ref.Name(),
					"mode", mode.String(),
					"transport", attempt.form.String())
			}
			return attempt.form, nil
		}

		failures = append(failures, AttemptFailure{Transport: attempt.form, Err: opErr})
		if r.logger != nil {
			r.logger.Warn("Transport attempt failed",
				"repo", ref.Name(),
				"transport", attempt.form.String(),
				"error", opErr)
		}

		if mode == ModeClone {
			os.RemoveAll(dest)
		}
	}

	return 0, &AcquisitionExhaustedError{Ref: ref, Mode: mode, Attempts: failures}
}
