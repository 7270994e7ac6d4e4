package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/bft-labs/comptree/internal/manifest"
	"github.com/bft-labs/comptree/pkg/log"
	"github.com/bft-labs/comptree/pkg/registry"
	"github.com/bft-labs/comptree/pkg/tree"
)

const initialManifest = `
[root]
name = "root"

[[root.children]]
name = "widget"

[[root.children]]
name = "widget"
`

const changedManifest = `
[root]
name = "panel"

[[root.children]]
name = "button"
`

func writeManifest(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
}

func newTestSession(t *testing.T, content string, opts ...SessionOption) (*Session, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tree.toml")
	writeManifest(t, path, content)

	opts = append([]SessionOption{WithRegistry(registry.NewMap[*tree.Component]())}, opts...)
	s := NewSession(SessionConfig{
		Manifest: path,
		Format:   manifest.FormatTOML,
		Debounce: 50 * time.Millisecond,
	}, log.NewNoopLogger(), opts...)
	return s, path
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestSession_LoadAndClose(t *testing.T) {
	s, _ := newTestSession(t, initialManifest)

	if err := s.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := []string{"root", "root.widget", "root.widget_0"}
	if got := s.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
	if c, ok := s.Lookup("root.widget_0"); !ok || c.Name() != "widget_0" {
		t.Errorf("Lookup(root.widget_0) = %v, %v", c, ok)
	}

	root := s.Root()
	s.Close()
	s.Close()

	if root.State() != tree.StateDestroyed {
		t.Errorf("root state = %v, want Destroyed", root.State())
	}
	if _, ok := s.Lookup("root"); ok {
		t.Error("registry entry survived Close")
	}
	if s.Names() != nil {
		t.Error("Names() not empty after Close")
	}
	if got := s.Observer().Count(tree.KindFree); got != 3 {
		t.Errorf("free notifications = %d, want 3", got)
	}
}

func TestSession_LoadReplacesTree(t *testing.T) {
	s, path := newTestSession(t, initialManifest)
	if err := s.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	old := s.Root()

	writeManifest(t, path, changedManifest)
	if err := s.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	defer s.Close()

	if old.State() != tree.StateDestroyed {
		t.Error("previous tree not destroyed")
	}
	if got := s.Names(); !reflect.DeepEqual(got, []string{"panel", "panel.button"}) {
		t.Errorf("Names() = %v", got)
	}
}

func TestSession_LoadKeepsTreeOnBadManifest(t *testing.T) {
	s, path := newTestSession(t, initialManifest)
	if err := s.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	defer s.Close()

	writeManifest(t, path, "[root\n")
	if err := s.Load(); err == nil {
		t.Fatal("Load() accepted a malformed manifest")
	}
	if s.Root() == nil || s.Root().Name() != "root" {
		t.Error("current tree replaced after failed load")
	}
}

func TestSession_Snapshot(t *testing.T) {
	s, _ := newTestSession(t, initialManifest)

	if _, err := s.Snapshot(); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("Snapshot() error = %v, want ErrNotLoaded", err)
	}

	if err := s.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	defer s.Close()

	m, err := s.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	want := manifest.Manifest{Root: manifest.Node{
		Name:     "root",
		Children: []manifest.Node{{Name: "widget"}, {Name: "widget_0"}},
	}}
	if !reflect.DeepEqual(m, want) {
		t.Errorf("Snapshot() = %+v, want %+v", m, want)
	}
	if got := s.Observer().Count(tree.KindSerialize); got != 3 {
		t.Errorf("serialize notifications = %d, want 3", got)
	}
	if got := s.Observer().Count(tree.KindAdded); got != 0 {
		t.Errorf("added notifications = %d, want 0 (observer attached after build)", got)
	}
}

func TestSession_StartReloadsOnChange(t *testing.T) {
	emitter := &mockEmitter{}
	s, path := newTestSession(t, initialManifest, WithEventEmitter(emitter))

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if s.Status() != StateRunning {
		t.Fatalf("Status() = %v, want Running", s.Status())
	}
	if err := s.Start(context.Background()); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("second Start() error = %v, want ErrAlreadyRunning", err)
	}

	writeManifest(t, path, changedManifest)
	waitFor(t, func() bool {
		root := s.Root()
		return root != nil && root.Name() == "panel"
	})

	if err := s.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if s.Status() != StateStopped {
		t.Errorf("Status() = %v, want Stopped", s.Status())
	}
	if s.Root() != nil {
		t.Error("tree survived Stop")
	}
	if err := s.Stop(); !errors.Is(err, ErrNotRunning) {
		t.Errorf("second Stop() error = %v, want ErrNotRunning", err)
	}

	var states []State
	for _, e := range emitter.Events() {
		states = append(states, e.current)
	}
	want := []State{StateStarting, StateRunning, StateStopping, StateStopped}
	if !reflect.DeepEqual(states, want) {
		t.Errorf("transitions = %v, want %v", states, want)
	}
}

func TestSession_StartFailsOnBadManifest(t *testing.T) {
	s, _ := newTestSession(t, "root:\n")

	if err := s.Start(context.Background()); err == nil {
		t.Fatal("Start() succeeded with an invalid manifest")
	}
	if s.Status() != StateCrashed {
		t.Errorf("Status() = %v, want Crashed", s.Status())
	}
}

func TestTreeLogger_FollowsAddedComponents(t *testing.T) {
	tr := tree.New(tree.WithRegistry(registry.NewMap[*tree.Component]()))
	root := tr.Create(nil)
	tr.SetName(root, "root")
	o := NewTreeLogger(log.NewNoopLogger())
	o.Attach(root)

	child := tr.Create(root)
	tr.SetName(child, "child")
	tr.Create(child)

	if got := o.Count(tree.KindAdded); got != 2 {
		t.Errorf("added = %d, want 2", got)
	}

	tr.Destroy(child)
	if got := o.Count(tree.KindFree); got != 2 {
		t.Errorf("free = %d, want 2", got)
	}

	o.Reset()
	tr.Destroy(root)
	if got := o.Count(tree.KindFree); got != 1 {
		t.Errorf("free after reset = %d, want 1", got)
	}
}

func TestSession_ReloadAfterStopIsDropped(t *testing.T) {
	reg := registry.NewMap[*tree.Component]()
	s, _ := newTestSession(t, initialManifest, WithRegistry(reg))

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := s.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}

	// A debounced reload that passed the running check before Stop
	// reaches the build only afterwards.
	if err := s.load(true); err != nil {
		t.Fatalf("late reload error = %v", err)
	}
	if s.Root() != nil {
		t.Error("tree rebuilt after Stop returned")
	}
	if reg.Len() != 0 {
		t.Errorf("registry holds %v after Stop", reg.Names())
	}

	// An explicit Load still works on a stopped session.
	if err := s.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	defer s.Close()
	if s.Root() == nil {
		t.Error("Load() after Stop did not build a tree")
	}
}

func TestSession_LoadKeepsTreeWhenBuildFails(t *testing.T) {
	reg := registry.NewMap[*tree.Component]()
	s, _ := newTestSession(t, initialManifest, WithRegistry(reg))
	if err := s.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	defer s.Close()
	old := s.Root()

	errBuild := errors.New("build failed")
	s.build = func(*tree.Tree, manifest.Manifest) (*tree.Component, error) {
		return nil, errBuild
	}
	if err := s.Load(); !errors.Is(err, errBuild) {
		t.Fatalf("Load() error = %v, want %v", err, errBuild)
	}

	if s.Root() != old || old.State() != tree.StateLive {
		t.Error("current tree replaced or destroyed after failed build")
	}
	if got, ok := s.Lookup("root.widget_0"); !ok || got.Owner() != old {
		t.Errorf("Lookup(root.widget_0) = %v, %v", got, ok)
	}
}

func TestSession_ReloadRegistersNewTree(t *testing.T) {
	reg := registry.NewMap[*tree.Component]()
	s, _ := newTestSession(t, initialManifest, WithRegistry(reg))
	if err := s.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	old := s.Root()

	if err := s.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got, ok := s.Lookup("root"); !ok || got != s.Root() || got == old {
		t.Errorf("Lookup(root) = %v, %v, want the new root", got, ok)
	}
	if reg.Len() != 3 {
		t.Errorf("registry holds %v, want 3 entries", reg.Names())
	}

	s.Close()
	if reg.Len() != 0 {
		t.Errorf("registry holds %v after Close", reg.Names())
	}
}
