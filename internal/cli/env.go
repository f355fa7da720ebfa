// env.go wires the shared collaborators every command needs: config,
// HTTP client, token store, session manager, status reporter, audit log.
package cli

import (
	"fmt"
	"time"

	"github.com/spoke-dev/spoke/internal/api"
	"github.com/spoke-dev/spoke/internal/audit"
	"github.com/spoke-dev/spoke/internal/config"
	"github.com/spoke-dev/spoke/internal/resource"
	"github.com/spoke-dev/spoke/internal/session"
	"github.com/spoke-dev/spoke/internal/status"
)

// env bundles the collaborators shared by all commands. One env is built
// per invocation; the session token is restored from the store so commands
// compose across processes.
type env struct {
	Config  *config.Config
	Client  *api.Client
	Status  *status.Reporter
	Session *session.Manager
	Deps    resource.Deps
}

func buildEnv() (*env, error) {
	dir, err := config.DefaultDir()
	if err != nil {
		return nil, fmt.Errorf("resolving config directory: %w", err)
	}

	cfg, err := config.ReadConfig(dir)
	if err != nil {
		// Config not found or invalid, use defaults
		cfg = config.DefaultConfig()
	}
	if apiURL != "" {
		cfg.APIURL = apiURL
	}

	client := api.New(cfg.APIURL, time.Duration(cfg.TimeoutSeconds)*time.Second)
	reporter := status.NewReporter()
	store := session.NewStore(dir)

	// Audit logging is best-effort; a read-only home directory only
	// costs the log, never the command.
	logger, err := audit.NewLogger(dir)
	if err != nil {
		logger = nil
	}

	sess := session.NewManager(client, reporter, store, logger)
	if token, err := store.Load(); err == nil && token != "" {
		client.SetToken(token)
	}

	return &env{
		Config:  cfg,
		Client:  client,
		Status:  reporter,
		Session: sess,
		Deps: resource.Deps{
			Client: client,
			Status: reporter,
			Audit:  logger,
		},
	}, nil
}

// reportOutcome prints the status line the operation produced, and turns
// error-kind outcomes into a non-zero exit through the returned error.
func reportOutcome(e *env) error {
	s := e.Status.Current()
	if s.Kind == status.Error {
		return fmt.Errorf("%s", s.Text)
	}
	if s.Text != "" {
		fmt.Println(s.Text)
	}
	return nil
}
