package domain

import (
	"fmt"
	"sort"

	"github.com/adrienmarchand/schedcore/internal/timeutil"
	"github.com/adrienmarchand/schedcore/internal/workhours"
)

// Entity is a participant (a person) with its own effective work hours.
// The formatted name is the entity's identity; it is unique within an
// EntityStore and disjoint from every group name in the same model (I3).
type Entity struct {
	name        string
	mail        string
	sendMail    bool
	customHours *workhours.Store
}

// NewEntity creates an entity with empty custom work hours. lockChecker is
// forwarded to the custom-hours store so §4.2's locking rule applies to it
// the same way it applies to the global store.
func NewEntity(name, mail string, sendMail bool, lockChecker workhours.LockChecker) *Entity {
	return &Entity{
		name:        name,
		mail:        mail,
		sendMail:    sendMail,
		customHours: workhours.New(lockChecker),
	}
}

func (e *Entity) Name() string          { return e.name }
func (e *Entity) Mail() string          { return e.mail }
func (e *Entity) SendMail() bool        { return e.sendMail }
func (e *Entity) CustomHours() *workhours.Store { return e.customHours }

// SetMail updates the contact mail address. Pure metadata: never invalidates caches.
func (e *Entity) SetMail(mail string) { e.mail = mail }

// SetSendMail toggles whether this entity should be mailed. Pure metadata.
func (e *Entity) SetSendMail(sendMail bool) { e.sendMail = sendMail }

// EntityStore is the name -> Entity mapping of §4.3, first paragraph.
type EntityStore struct {
	byName map[string]*Entity
}

// NewEntityStore creates an empty EntityStore.
func NewEntityStore() *EntityStore {
	return &EntityStore{byName: make(map[string]*Entity)}
}

// Add registers a new entity. Fails ErrDuplicateName if the name is already
// used by an entity or (per nameInUse) a group.
func (s *EntityStore) Add(name, mail string, sendMail bool, nameInUse func(string) bool, lockChecker workhours.LockChecker) (*Entity, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: entity name must not be empty", ErrDuplicateName)
	}
	if _, exists := s.byName[name]; exists || (nameInUse != nil && nameInUse(name)) {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	e := NewEntity(name, mail, sendMail, lockChecker)
	s.byName[name] = e
	return e, nil
}

// Get returns the entity with the given name.
func (s *EntityStore) Get(name string) (*Entity, error) {
	e, ok := s.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: entity %q", ErrNotFound, name)
	}
	return e, nil
}

// Has reports whether an entity with this name exists.
func (s *EntityStore) Has(name string) bool {
	_, ok := s.byName[name]
	return ok
}

// Remove deletes the entity with the given name. Cascading into activities
// and groups is the caller's (collection's) responsibility, per §4.3: "the
// collection is the single writer of the activity state".
func (s *EntityStore) Remove(name string) error {
	if _, ok := s.byName[name]; !ok {
		return fmt.Errorf("%w: entity %q", ErrNotFound, name)
	}
	delete(s.byName, name)
	return nil
}

// Rename moves an entity from old to new, atomically. Cascading is the
// caller's responsibility.
func (s *EntityStore) Rename(oldName, newName string, nameInUse func(string) bool) error {
	e, ok := s.byName[oldName]
	if !ok {
		return fmt.Errorf("%w: entity %q", ErrNotFound, oldName)
	}
	if oldName == newName {
		return nil
	}
	if _, exists := s.byName[newName]; exists || (nameInUse != nil && nameInUse(newName)) {
		return fmt.Errorf("%w: %q", ErrDuplicateName, newName)
	}
	delete(s.byName, oldName)
	e.name = newName
	s.byName[newName] = e
	return nil
}

// SortedNames returns every entity name in ascending order.
func (s *EntityStore) SortedNames() []string {
	names := make([]string, 0, len(s.byName))
	for name := range s.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// EffectiveIntervals returns the entity's custom work hours if non-empty,
// else the supplied global work hours (GLOSSARY: "Effective work hours").
func (s *EntityStore) EffectiveIntervals(name string, global *workhours.Store) ([]timeutil.TimeInterval, error) {
	e, err := s.Get(name)
	if err != nil {
		return nil, err
	}
	if custom := e.CustomHours().Intervals(); len(custom) > 0 {
		return custom, nil
	}
	return global.Intervals(), nil
}
