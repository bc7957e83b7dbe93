// Package app wires the hoverlay runtime together: one document, the
// shared event bus, per-kind configuration defaults with live reload, and
// the set of trigger controllers attached to host elements.
package app

import (
	"sync"

	"github.com/mfields/hoverlay/internal/clock"
	"github.com/mfields/hoverlay/internal/config"
	"github.com/mfields/hoverlay/internal/config/loader"
	"github.com/mfields/hoverlay/internal/config/notify"
	"github.com/mfields/hoverlay/internal/config/watcher"
	"github.com/mfields/hoverlay/internal/dom"
	"github.com/mfields/hoverlay/internal/event"
	"github.com/mfields/hoverlay/internal/logging"
	"github.com/mfields/hoverlay/internal/overlay"
	"github.com/mfields/hoverlay/internal/trigger"
)

// Option configures an App.
type Option func(*App)

// WithLogger sets the application logger.
func WithLogger(l *logging.Logger) Option {
	return func(a *App) { a.log = l }
}

// WithBus sets the shared event bus. Without it the app creates one.
func WithBus(b event.Bus) Option {
	return func(a *App) { a.bus = b }
}

// WithClock sets the timer source for all controllers.
func WithClock(clk clock.Clock) Option {
	return func(a *App) { a.clk = clk }
}

// WithDefaultsPath sets the defaults file consulted by LoadDefaults and
// WatchDefaults.
func WithDefaultsPath(path string) Option {
	return func(a *App) { a.defaultsPath = path }
}

// WithDocument supplies an existing document instead of a fresh one.
func WithDocument(doc *dom.Document) Option {
	return func(a *App) { a.doc = doc }
}

// binding remembers what a controller was attached with so a defaults
// reload can recompute its effective props.
type binding struct {
	kind  overlay.Kind
	props config.Props
}

// App owns the shared overlay infrastructure.
type App struct {
	mu sync.Mutex

	doc *dom.Document
	bus event.Bus
	clk clock.Clock
	log *logging.Logger

	defaultsPath string
	defaults     map[string]config.Props

	notifier *notify.Notifier
	watch    *watcher.Watcher

	controllers map[string]*trigger.Controller
	bindings    map[string]binding

	closed bool
}

// New creates an app. Missing collaborators are created with defaults.
func New(opts ...Option) *App {
	a := &App{
		defaults:    make(map[string]config.Props),
		notifier:    notify.New(),
		controllers: make(map[string]*trigger.Controller),
		bindings:    make(map[string]binding),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.doc == nil {
		a.doc = dom.NewDocument()
	}
	if a.bus == nil {
		a.bus = event.NewBus()
	}
	if a.clk == nil {
		a.clk = clock.System()
	}
	if a.log == nil {
		a.log = logging.Discard()
	}
	a.log = a.log.WithComponent("app")
	return a
}

// Document returns the app's document.
func (a *App) Document() *dom.Document {
	return a.doc
}

// Bus returns the shared event bus.
func (a *App) Bus() event.Bus {
	return a.bus
}

// Notifier returns the configuration change notifier.
func (a *App) Notifier() *notify.Notifier {
	return a.notifier
}

// Attach creates a controller for the host element. Effective props are
// built from the kind's built-in defaults, the loaded defaults file
// section for the kind, and finally the caller's props.
func (a *App) Attach(kind overlay.Kind, host *dom.Element, props config.Props) (*trigger.Controller, error) {
	a.mu.Lock()
	merged := a.effectivePropsLocked(kind, props)
	a.mu.Unlock()

	ctrl, err := trigger.New(kind, host, merged,
		trigger.WithBus(a.bus),
		trigger.WithClock(a.clk),
		trigger.WithLogger(a.log),
	)
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		ctrl.Destroy()
		return nil, ErrClosed
	}
	a.controllers[ctrl.ID()] = ctrl
	a.bindings[ctrl.ID()] = binding{kind: kind, props: props}
	a.mu.Unlock()

	a.log.Debug("attached %s controller %s", kind, ctrl.ID())
	return ctrl, nil
}

// Detach destroys the controller with the given id. Unknown ids are a
// no-op.
func (a *App) Detach(id string) {
	a.mu.Lock()
	ctrl := a.controllers[id]
	delete(a.controllers, id)
	delete(a.bindings, id)
	a.mu.Unlock()

	if ctrl != nil {
		ctrl.Destroy()
	}
}

// Controller returns the attached controller with the given id, nil if
// unknown.
func (a *App) Controller(id string) *trigger.Controller {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.controllers[id]
}

// Controllers returns all attached controllers.
func (a *App) Controllers() []*trigger.Controller {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]*trigger.Controller, 0, len(a.controllers))
	for _, c := range a.controllers {
		out = append(out, c)
	}
	return out
}

// LoadDefaults reads the defaults file, refreshes every attached
// controller with its recomputed effective props, and fires a reload
// notification. Without a defaults path it is a no-op.
func (a *App) LoadDefaults() error {
	a.mu.Lock()
	path := a.defaultsPath
	a.mu.Unlock()
	if path == "" {
		return nil
	}

	defaults, err := loader.Defaults(path)
	if err != nil {
		return err
	}

	a.mu.Lock()
	a.defaults = defaults
	type refresh struct {
		ctrl  *trigger.Controller
		props config.Props
	}
	refreshes := make([]refresh, 0, len(a.controllers))
	for id, ctrl := range a.controllers {
		b := a.bindings[id]
		refreshes = append(refreshes, refresh{ctrl: ctrl, props: a.effectivePropsLocked(b.kind, b.props)})
	}
	a.mu.Unlock()

	for _, r := range refreshes {
		r.ctrl.Refresh(r.props)
	}
	a.notifier.NotifyReload(path)
	a.log.Info("defaults loaded from %s (%d kinds)", path, len(defaults))
	return nil
}

// WatchDefaults starts live reload of the defaults file. Reload errors
// are logged, not fatal; the previous defaults stay in effect.
func (a *App) WatchDefaults() error {
	a.mu.Lock()
	path := a.defaultsPath
	running := a.watch != nil
	a.mu.Unlock()
	if path == "" || running {
		return nil
	}

	w, err := watcher.New(path, func(p string) {
		if err := a.LoadDefaults(); err != nil {
			a.log.Warn("defaults reload failed: %v", err)
		}
	})
	if err != nil {
		return err
	}

	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return w.Close()
	}
	a.watch = w
	a.mu.Unlock()
	return nil
}

// Close tears everything down: the watcher, every controller, the
// notifier and the bus.
func (a *App) Close() error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil
	}
	a.closed = true
	w := a.watch
	a.watch = nil
	ctrls := make([]*trigger.Controller, 0, len(a.controllers))
	for _, c := range a.controllers {
		ctrls = append(ctrls, c)
	}
	a.controllers = make(map[string]*trigger.Controller)
	a.bindings = make(map[string]binding)
	a.mu.Unlock()

	var err error
	if w != nil {
		err = w.Close()
	}
	for _, c := range ctrls {
		c.Destroy()
	}
	a.notifier.Close()
	a.bus.Close()
	return err
}

// effectivePropsLocked merges built-in kind defaults, the loaded defaults
// section and the caller's props, in that order. Caller holds the lock.
func (a *App) effectivePropsLocked(kind overlay.Kind, props config.Props) config.Props {
	merged := config.DefaultsFor(kind.String())
	if d, ok := a.defaults[kind.String()]; ok {
		merged = merged.Merge(d)
	}
	return merged.Merge(props)
}
