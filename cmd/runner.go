package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
	"google.golang.org/api/option"

	"github.com/lilpaoo/jimbo/internal/auth"
	"github.com/lilpaoo/jimbo/internal/services"
	"github.com/lilpaoo/jimbo/internal/session"
	"github.com/lilpaoo/jimbo/internal/shared"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	backend    *services.Backend
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer

	// newController is swappable so tests can inject fakes.
	newController func(ctx context.Context) (*session.Controller, error)
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config        *shared.Config
	Backend       *services.Backend
	HTTPClient    *http.Client
	Logger        *log.Logger
	Output        io.Writer
	NewController func(ctx context.Context) (*session.Controller, error)
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.Backend == nil {
		opts.Backend = services.NewBackend(opts.Config.Backend.BaseURL, opts.HTTPClient, opts.Logger)
	}

	r := &Runner{
		config:     opts.Config,
		backend:    opts.Backend,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
	}

	r.newController = opts.NewController
	if r.newController == nil {
		r.newController = r.buildController
	}

	return r
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, loginCommand, planCommand, nutritionCommand, checkinCommand,
		chatCommand, evaluateCommand, exercisesCommand, analyzeCommand, dataCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// buildController wires the default session controller: the real
// backend, a browser-consent granter, and a cloud store constructed
// lazily after the first successful grant.
func (r *Runner) buildController(ctx context.Context) (*session.Controller, error) {
	clientID := r.config.Google.ClientID
	if clientID == "" {
		// The backend publishes the OAuth client for thin clients
		// that ship without one.
		settings, err := r.backend.Settings(ctx)
		if err == nil && settings.GoogleClientID != "" {
			clientID = settings.GoogleClientID
		}
	}

	var granter auth.Granter
	var cloud session.CloudStore
	if clientID != "" {
		webGranter, err := auth.NewWebGranter(clientID, r.config.Google.ClientSecret, r.config.Google.RedirectURI, r.logger)
		if err != nil {
			return nil, err
		}
		granter = webGranter
		cloud = &lazyCloud{granter: granter, logger: r.logger}
	}

	return session.NewController(session.Options{
		Backend:  r.backend,
		Cloud:    cloud,
		Granter:  granter,
		Logger:   r.logger,
		FilePath: r.config.Export.Path,
	}), nil
}

// signIn starts the session per the command's identity flags: --tester
// for a local session, --token for a cloud one.
func (r *Runner) signIn(ctx context.Context, sess *session.Controller, cmd *cli.Command) error {
	if cmd.Bool("tester") {
		return sess.SignInAsTester()
	}

	token := cmd.String("token")
	if token == "" {
		return fmt.Errorf("%w: pass --token for a cloud session or --tester for a local one", shared.ErrMissingArgument)
	}

	claims, err := auth.DecodeIdentity(token)
	if err != nil {
		return err
	}
	return sess.SignInWithIdentity(ctx, claims)
}

// openSession builds a controller, signs in, and loads persisted data.
func (r *Runner) openSession(ctx context.Context, cmd *cli.Command) (*session.Controller, error) {
	sess, err := r.newController(ctx)
	if err != nil {
		return nil, err
	}
	if err := r.signIn(ctx, sess, cmd); err != nil {
		return nil, err
	}

	summary, err := sess.LoadAll(ctx)
	if err != nil {
		// A load failure should not strand the user; they can still
		// generate and save fresh plans.
		r.logger.Warn("could not load saved data", "err", err)
		return sess, nil
	}
	if summary.PlansLoaded > 0 || summary.CheckInsLoaded > 0 {
		r.logger.Info("loaded saved data", "plans", summary.PlansLoaded, "check_ins", summary.CheckInsLoaded)
	}
	return sess, nil
}

// lazyCloud defers cloud store construction until after the first
// grant, when an authenticated HTTP client exists.
type lazyCloud struct {
	granter auth.Granter
	logger  *log.Logger
	opts    []option.ClientOption
	store   *services.CloudStore
}

func (l *lazyCloud) get(ctx context.Context) (*services.CloudStore, error) {
	if l.store != nil {
		return l.store, nil
	}
	store, err := services.NewCloudStore(ctx, l.granter.Client(ctx), l.logger, l.opts...)
	if err != nil {
		return nil, err
	}
	l.store = store
	return store, nil
}

func (l *lazyCloud) FindDocument(ctx context.Context, name string) (string, error) {
	store, err := l.get(ctx)
	if err != nil {
		return "", err
	}
	return store.FindDocument(ctx, name)
}

func (l *lazyCloud) CreateDocument(ctx context.Context, name string, sheetNames []string) (string, error) {
	store, err := l.get(ctx)
	if err != nil {
		return "", err
	}
	return store.CreateDocument(ctx, name, sheetNames)
}

func (l *lazyCloud) BatchRead(ctx context.Context, documentID string, ranges []string) ([][][]any, error) {
	store, err := l.get(ctx)
	if err != nil {
		return nil, err
	}
	return store.BatchRead(ctx, documentID, ranges)
}

func (l *lazyCloud) BatchWrite(ctx context.Context, documentID string, writes []services.RangeWrite) error {
	store, err := l.get(ctx)
	if err != nil {
		return err
	}
	return store.BatchWrite(ctx, documentID, writes)
}

func (l *lazyCloud) ClearRange(ctx context.Context, documentID, rng string) error {
	store, err := l.get(ctx)
	if err != nil {
		return err
	}
	return store.ClearRange(ctx, documentID, rng)
}

func (l *lazyCloud) AppendRow(ctx context.Context, documentID, rng string, row []any) error {
	store, err := l.get(ctx)
	if err != nil {
		return err
	}
	return store.AppendRow(ctx, documentID, rng, row)
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
