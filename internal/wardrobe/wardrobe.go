// Package wardrobe persists the companion profile and its equipped
// accessories. Storage goes through gdata so the same code works on
// desktop and mobile; when gdata cannot open, the store keeps everything
// in memory for the lifetime of the process.
package wardrobe

import (
	"errors"
	"fmt"
	"maps"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/companion/internal/avatar"
	"github.com/vovakirdan/companion/internal/registry"
)

const (
	profileObject   = "companion"
	profileProperty = "profile"
)

// ErrLocked is returned when equipping an item above the companion's level.
var ErrLocked = errors.New("wardrobe: item locked")

// document is the YAML payload saved through gdata.
type document struct {
	Name     string            `yaml:"name"`
	Energy   int               `yaml:"energy"`
	Level    int               `yaml:"level"`
	Equipped map[string]string `yaml:"equipped,omitempty"`
}

// Store holds the profile. It is safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	manager *gdata.Manager // nil in memory-only mode
	logger  *log.Logger
	profile avatar.Profile
}

// Open opens the gdata-backed store for appName and loads the saved
// profile. Any failure to open storage degrades to memory-only mode.
func Open(appName string, logger *log.Logger) *Store {
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		if logger != nil {
			logger.Warn("wardrobe storage unavailable, using memory", "err", err)
		}
		manager = nil
	}
	s := NewStore(manager, logger)
	if err := s.Load(); err != nil && logger != nil {
		logger.Warn("wardrobe load failed, using defaults", "err", err)
	}
	return s
}

// NewStore wraps an already opened manager. A nil manager keeps the
// profile in memory only.
func NewStore(manager *gdata.Manager, logger *log.Logger) *Store {
	return &Store{
		manager: manager,
		logger:  logger,
		profile: avatar.DefaultProfile(),
	}
}

// Persistent reports whether changes survive the process.
func (s *Store) Persistent() bool {
	return s.manager != nil
}

// Load replaces the in-memory profile with the saved one.
// A missing save leaves the default profile in place.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.manager == nil || !s.manager.ObjectPropExists(profileObject, profileProperty) {
		return nil
	}

	data, err := s.manager.LoadObjectProp(profileObject, profileProperty)
	if err != nil {
		return fmt.Errorf("wardrobe: cannot load profile: %w", err)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("wardrobe: cannot decode profile: %w", err)
	}

	p := avatar.DefaultProfile()
	if doc.Name != "" {
		p.Name = doc.Name
	}
	p.Energy = doc.Energy
	if doc.Level > 0 {
		p.Level = doc.Level
	}
	p.Customization = doc.Equipped
	s.profile = p
	return nil
}

// Profile returns a copy of the current profile.
func (s *Store) Profile() avatar.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.profile
	p.Customization = maps.Clone(s.profile.Customization)
	return p
}

// SetName renames the companion and saves. Surrounding space is trimmed.
func (s *Store) SetName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("wardrobe: empty name")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.profile.Name = name
	return s.saveLocked()
}

// SetStats updates energy and level and saves. Energy is clamped to 0-100
// and level to at least 1.
func (s *Store) SetStats(energy, level int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.profile.Energy = max(0, min(100, energy))
	s.profile.Level = max(1, level)
	return s.saveLocked()
}

// Equip puts itemID into slot and saves. The item must exist, belong to
// slot and be unlocked at the current level.
func (s *Store) Equip(slot, itemID string) error {
	it, err := registry.Lookup(itemID)
	if err != nil {
		return err
	}
	if string(it.Slot) != slot {
		return fmt.Errorf("wardrobe: %s is a %s item, not %s", itemID, it.Slot, slot)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !it.Unlocked(s.profile.Level) {
		return fmt.Errorf("%w: %s needs level %d", ErrLocked, itemID, it.MinLevel)
	}
	if s.profile.Customization == nil {
		s.profile.Customization = make(map[string]string)
	}
	s.profile.Customization[slot] = itemID
	return s.saveLocked()
}

// Unequip empties slot and saves.
func (s *Store) Unequip(slot string) error {
	if !registry.ValidSlot(registry.Slot(slot)) {
		return fmt.Errorf("wardrobe: unknown slot %q", slot)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.profile.Customization, slot)
	return s.saveLocked()
}

func (s *Store) saveLocked() error {
	if s.manager == nil {
		return nil
	}

	data, err := yaml.Marshal(document{
		Name:     s.profile.Name,
		Energy:   s.profile.Energy,
		Level:    s.profile.Level,
		Equipped: s.profile.Customization,
	})
	if err != nil {
		return fmt.Errorf("wardrobe: cannot encode profile: %w", err)
	}

	if err := s.manager.SaveObjectProp(profileObject, profileProperty, data); err != nil {
		return fmt.Errorf("wardrobe: cannot save profile: %w", err)
	}
	if s.logger != nil {
		s.logger.Debug("profile saved", "level", s.profile.Level, "equipped", len(s.profile.Customization))
	}
	return nil
}
