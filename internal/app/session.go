package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bft-labs/comptree/internal/manifest"
	"github.com/bft-labs/comptree/internal/watch"
	"github.com/bft-labs/comptree/pkg/log"
	"github.com/bft-labs/comptree/pkg/registry"
	"github.com/bft-labs/comptree/pkg/tree"
)

// ShutdownTimeout is the maximum time Stop waits for the watcher.
const ShutdownTimeout = 10 * time.Second

// SessionConfig describes where a session's tree comes from.
type SessionConfig struct {
	Manifest string
	Format   manifest.Format
	Debounce time.Duration
}

// Session owns one component tree built from a manifest. All tree access
// goes through the session's mutex, since reloads triggered by the watcher
// run on their own goroutine.
type Session struct {
	cfg       SessionConfig
	logger    log.Logger
	lifecycle *Lifecycle
	observer  *TreeLogger

	build func(*tree.Tree, manifest.Manifest) (*tree.Component, error)

	mu     sync.Mutex
	tree   *tree.Tree
	root   *tree.Component
	closed bool

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// SessionOption configures a Session.
type SessionOption func(*sessionOptions)

type sessionOptions struct {
	registry registry.Registry[*tree.Component]
	emitter  EventEmitter
}

// WithRegistry sets the registry for the session's tree. Defaults to the
// process-wide registry.
func WithRegistry(r registry.Registry[*tree.Component]) SessionOption {
	return func(o *sessionOptions) {
		o.registry = r
	}
}

// WithEventEmitter sets a handler for session state changes.
func WithEventEmitter(e EventEmitter) SessionOption {
	return func(o *sessionOptions) {
		o.emitter = e
	}
}

// NewSession creates a session. Nothing is loaded until Load or Start.
func NewSession(cfg SessionConfig, logger log.Logger, opts ...SessionOption) *Session {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	var o sessionOptions
	for _, opt := range opts {
		opt(&o)
	}

	treeOpts := []tree.Option{tree.WithLogger(logger)}
	if o.registry != nil {
		treeOpts = append(treeOpts, tree.WithRegistry(o.registry))
	}

	return &Session{
		cfg:       cfg,
		logger:    logger,
		lifecycle: NewLifecycle(logger, o.emitter),
		observer:  NewTreeLogger(logger),
		tree:      tree.New(treeOpts...),
		build:     manifest.Build,
	}
}

// Load builds the tree from the manifest, replacing any current tree.
// When the manifest cannot be read or built the current tree is kept.
func (s *Session) Load() error {
	return s.load(false)
}

// load replaces the current tree. A reload is dropped once Close has run,
// so a change picked up just before Stop cannot outlive the session.
func (s *Session) load(reload bool) error {
	m, err := manifest.LoadFormat(s.cfg.Manifest, s.cfg.Format)
	if err != nil {
		return fmt.Errorf("load manifest: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if reload && s.closed {
		s.logger.Debug("reload dropped, session closed", log.String("manifest", s.cfg.Manifest))
		return nil
	}

	root, err := s.build(s.tree, m)
	if err != nil {
		return fmt.Errorf("build tree: %w", err)
	}
	if s.root != nil {
		s.tree.Destroy(s.root)
	}
	s.observer.Attach(root)
	s.root = root
	s.closed = false

	s.logger.Info("tree loaded",
		log.String("manifest", s.cfg.Manifest),
		log.String("root", root.Name()),
		log.Int("components", m.Count()),
	)
	return nil
}

// Reload rebuilds the tree from the manifest and logs failures. It is the
// watcher's change callback and does nothing unless the session is running.
func (s *Session) Reload() {
	if s.lifecycle.State() != StateRunning {
		return
	}
	if err := s.load(true); err != nil {
		s.logger.Error("reload failed", log.Err(err))
	}
}

// Root returns the current root, or nil.
func (s *Session) Root() *tree.Component {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.root
}

// Names returns the qualified names of the current tree, depth first.
func (s *Session) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.root == nil {
		return nil
	}
	var names []string
	s.root.Walk(func(c *tree.Component) bool {
		names = append(names, c.QualifiedName())
		return true
	})
	return names
}

// Lookup resolves a qualified name in the session's registry.
func (s *Session) Lookup(qualifiedName string) (*tree.Component, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree.Lookup(qualifiedName)
}

// Snapshot describes the current tree.
func (s *Session) Snapshot() (manifest.Manifest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.root == nil {
		return manifest.Manifest{}, ErrNotLoaded
	}
	return manifest.Snapshot(s.tree, s.root), nil
}

// Observer returns the session's notification logger.
func (s *Session) Observer() *TreeLogger {
	return s.observer
}

// Close destroys the current tree. It is safe to call more than once.
// Reloads still in flight are dropped; Load or Start build a tree again.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	if s.root == nil {
		return
	}
	s.tree.Destroy(s.root)
	s.root = nil
	s.logger.Info("tree destroyed", log.String("manifest", s.cfg.Manifest))
}

// Status returns the session state.
func (s *Session) Status() State {
	return s.lifecycle.State()
}

// Start loads the tree and watches the manifest, reloading on change,
// until Stop is called or ctx is canceled.
func (s *Session) Start(ctx context.Context) error {
	if !s.lifecycle.CanStart() {
		return ErrAlreadyRunning
	}
	if err := s.lifecycle.TransitionTo(StateStarting, "Start() called"); err != nil {
		return err
	}

	if err := s.Load(); err != nil {
		_ = s.lifecycle.TransitionTo(StateCrashed, "initial load failed")
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	w := watch.New(s.cfg.Manifest, s.cfg.Debounce, s.Reload, s.logger)

	errCh := make(chan error, 1)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		err := w.Run(runCtx)
		if err != nil {
			s.logger.Error("watcher stopped", log.Err(err))
			_ = s.lifecycle.TransitionTo(StateCrashed, err.Error())
		}
		errCh <- err
	}()

	select {
	case <-w.Ready():
	case err := <-errCh:
		if err != nil {
			cancel()
			s.Close()
			return fmt.Errorf("watch manifest: %w", err)
		}
	}
	return s.lifecycle.TransitionTo(StateRunning, "watching manifest")
}

// Stop halts the watcher and destroys the tree.
func (s *Session) Stop() error {
	if !s.lifecycle.CanStop() {
		return ErrNotRunning
	}
	if err := s.lifecycle.TransitionTo(StateStopping, "Stop() called"); err != nil {
		return err
	}
	if s.cancel != nil {
		s.cancel()
	}

	err := s.waitWithTimeout(ShutdownTimeout)
	s.Close()

	if err != nil {
		_ = s.lifecycle.TransitionTo(StateCrashed, "shutdown timeout")
		return err
	}
	return s.lifecycle.TransitionTo(StateStopped, "graceful shutdown")
}

func (s *Session) waitWithTimeout(timeout time.Duration) error {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		s.logger.Warn("shutdown timeout, forcing exit", log.Any("timeout", timeout))
		return ErrShutdownTimeout
	}
}
