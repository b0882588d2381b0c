package session

import (
	"fmt"
	"log"
	"sync"

	"github.com/godbus/dbus/v5"
)

const (
	logindService  = "org.freedesktop.login1"
	sessionPath    = dbus.ObjectPath("/org/freedesktop/login1/session/auto")
	sessionIface   = "org.freedesktop.login1.Session"
	propsInterface = "org.freedesktop.DBus.Properties"
	propLockedHint = "LockedHint"
	propIdleHint   = "IdleHint"
)

// RealSource tracks the calling process's logind session. LockedHint maps to
// the user-unlock state, IdleHint (inverted) to screen interactivity.
type RealSource struct {
	conn *dbus.Conn

	mu          sync.Mutex
	unlocked    bool
	interactive bool

	events chan Event
	done   chan struct{}
}

// NewRealSource connects to the system bus and subscribes to session
// property changes.
func NewRealSource() (*RealSource, error) {
	conn, err := dbus.SystemBus()
	if err != nil {
		return nil, fmt.Errorf("connect system bus: %w", err)
	}

	s := &RealSource{
		conn:   conn,
		events: make(chan Event, 16),
		done:   make(chan struct{}),
	}

	obj := conn.Object(logindService, sessionPath)
	s.unlocked = !s.boolProp(obj, propLockedHint, false)
	s.interactive = !s.boolProp(obj, propIdleHint, false)

	if err := conn.AddMatchSignal(
		dbus.WithMatchInterface(propsInterface),
		dbus.WithMatchMember("PropertiesChanged"),
		dbus.WithMatchObjectPath(sessionPath),
	); err != nil {
		return nil, fmt.Errorf("subscribe session properties: %w", err)
	}

	signals := make(chan *dbus.Signal, 16)
	conn.Signal(signals)
	go s.watch(signals)
	return s, nil
}

// IsUserUnlocked reports whether the session is not locked.
func (s *RealSource) IsUserUnlocked() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unlocked
}

// IsInteractive reports whether the screen is on.
func (s *RealSource) IsInteractive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interactive
}

// Events returns the transition channel.
func (s *RealSource) Events() <-chan Event {
	return s.events
}

// Close stops the watcher, which closes the events channel.
func (s *RealSource) Close() error {
	close(s.done)
	return nil
}

func (s *RealSource) watch(signals <-chan *dbus.Signal) {
	defer close(s.events)
	for {
		select {
		case <-s.done:
			return
		case sig, ok := <-signals:
			if !ok {
				return
			}
			for _, ev := range s.apply(sig) {
				select {
				case s.events <- ev:
				case <-s.done:
					return
				}
			}
		}
	}
}

// apply folds a PropertiesChanged signal into the cached state and returns
// the transitions it caused.
func (s *RealSource) apply(sig *dbus.Signal) []Event {
	if sig.Name != propsInterface+".PropertiesChanged" || len(sig.Body) < 2 {
		return nil
	}
	iface, _ := sig.Body[0].(string)
	if iface != sessionIface {
		return nil
	}
	changed, ok := sig.Body[1].(map[string]dbus.Variant)
	if !ok {
		return nil
	}

	var events []Event
	s.mu.Lock()
	if v, ok := changed[propLockedHint]; ok {
		if locked, ok := v.Value().(bool); ok && s.unlocked == locked {
			s.unlocked = !locked
			events = append(events, Event{Kind: EventUnlockChanged})
		}
	}
	if v, ok := changed[propIdleHint]; ok {
		if idle, ok := v.Value().(bool); ok && s.interactive == idle {
			s.interactive = !idle
			if s.interactive {
				events = append(events, Event{Kind: EventScreenOn})
			} else {
				events = append(events, Event{Kind: EventScreenOff})
			}
		}
	}
	s.mu.Unlock()
	return events
}

func (s *RealSource) boolProp(obj dbus.BusObject, name string, fallback bool) bool {
	v, err := obj.GetProperty(sessionIface + "." + name)
	if err != nil {
		log.Printf("session: get %s: %v", name, err)
		return fallback
	}
	b, ok := v.Value().(bool)
	if !ok {
		return fallback
	}
	return b
}
