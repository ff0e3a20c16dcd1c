package screen

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/looplab/fsm"
)

// Screen is one of the mutually exclusive steady screens.
type Screen string

const (
	ScreenHome      Screen = "home"
	ScreenTrips     Screen = "trips"
	ScreenExplorer  Screen = "explorer"
	ScreenCommunity Screen = "community"
	ScreenService   Screen = "service"
)

var Screens = []Screen{ScreenHome, ScreenTrips, ScreenExplorer, ScreenCommunity, ScreenService}

// Overlay is drawn over the steady screen without replacing it.
type Overlay string

const (
	OverlayNone           Overlay = "none"
	OverlayProfile        Overlay = "profile"
	OverlayAddTrip        Overlay = "add-trip"
	OverlayAddRestaurant  Overlay = "add-restaurant"
	OverlayAddMaintenance Overlay = "add-maintenance"
)

var (
	ErrUnknownScreen  = errors.New("unknown screen")
	ErrUnknownOverlay = errors.New("unknown overlay")
)

func ParseScreen(s string) (Screen, error) {
	for _, sc := range Screens {
		if string(sc) == s {
			return sc, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownScreen, s)
}

func ParseOverlay(s string) (Overlay, error) {
	switch o := Overlay(s); o {
	case OverlayNone, OverlayProfile, OverlayAddTrip, OverlayAddRestaurant, OverlayAddMaintenance:
		return o, nil
	case "":
		return OverlayNone, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownOverlay, s)
}

func navigateEvent(s Screen) string {
	return "navigate_" + string(s)
}

// Machine holds the steady screen as an FSM and the overlay alongside it.
// Initial state is home with no overlay; there is no terminal state.
type Machine struct {
	mu      sync.RWMutex
	fsm     *fsm.FSM
	overlay Overlay
}

func NewMachine() *Machine {
	all := make([]string, len(Screens))
	for i, s := range Screens {
		all[i] = string(s)
	}

	events := make(fsm.Events, 0, len(Screens))
	for _, s := range Screens {
		events = append(events, fsm.EventDesc{Name: navigateEvent(s), Src: all, Dst: string(s)})
	}

	return &Machine{
		fsm:     fsm.NewFSM(string(ScreenHome), events, fsm.Callbacks{}),
		overlay: OverlayNone,
	}
}

func (m *Machine) Screen() Screen {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Screen(m.fsm.Current())
}

func (m *Machine) Overlay() Overlay {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.overlay
}

// Navigate moves to s. Navigating to the current screen is a no-op. The
// overlay is left as is.
func (m *Machine) Navigate(ctx context.Context, s Screen) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if Screen(m.fsm.Current()) == s {
		return nil
	}
	event := navigateEvent(s)
	if !m.fsm.Can(event) {
		return fmt.Errorf("%w: %q", ErrUnknownScreen, s)
	}
	if err := m.fsm.Event(ctx, event); err != nil {
		return fmt.Errorf("trigger event %s: %w", event, err)
	}
	return nil
}

func (m *Machine) OpenOverlay(o Overlay) error {
	o, err := ParseOverlay(string(o))
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.overlay = o
	return nil
}

func (m *Machine) CloseOverlay() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.overlay = OverlayNone
}
