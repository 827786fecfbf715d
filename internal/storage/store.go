package storage

import (
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/aanand-mishra/contacts-api/internal/types"
)

// Store implements Storage on top of a Backend.
//
// Every operation is a full read-modify-write cycle: load the collection,
// apply the change, save the collection. mu serialises those cycles so two
// concurrent writers cannot both read the old collection and have the
// second save silently drop the first one's change.
type Store struct {
	mu      sync.Mutex
	backend Backend
}

var _ Storage = (*Store)(nil)

// New returns a Store persisting through backend.
func New(backend Backend) *Store {
	return &Store{backend: backend}
}

// List returns the whole collection in stored order.
func (s *Store) List() ([]types.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	contacts, err := s.backend.Load()
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	if contacts == nil {
		contacts = make([]types.Contact, 0)
	}
	return contacts, nil
}

// Get returns the contact with the given id, or ErrNotFound.
func (s *Store) Get(id string) (types.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	contacts, err := s.backend.Load()
	if err != nil {
		return types.Contact{}, fmt.Errorf("get contact: %w", err)
	}

	i := indexOf(contacts, id)
	if i < 0 {
		return types.Contact{}, ErrNotFound
	}
	return contacts[i], nil
}

// Create validates in, assigns a fresh uuid and appends the new contact.
func (s *Store) Create(in types.ContactInput) (types.Contact, error) {
	if err := Validate(in); err != nil {
		return types.Contact{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	contacts, err := s.backend.Load()
	if err != nil {
		return types.Contact{}, fmt.Errorf("create contact: %w", err)
	}

	c := types.Contact{
		ID:         uuid.NewString(),
		Name:       in.Name,
		Phone:      in.Phone,
		Email:      in.Email,
		Bookmarked: in.Bookmarked,
	}

	if err := s.backend.Save(append(contacts, c)); err != nil {
		return types.Contact{}, fmt.Errorf("create contact: %w", err)
	}
	return c, nil
}

// Update validates in like Create and replaces every field of the
// contact with the given id except the id itself.
func (s *Store) Update(id string, in types.ContactInput) (types.Contact, error) {
	if err := Validate(in); err != nil {
		return types.Contact{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	contacts, err := s.backend.Load()
	if err != nil {
		return types.Contact{}, fmt.Errorf("update contact: %w", err)
	}

	i := indexOf(contacts, id)
	if i < 0 {
		return types.Contact{}, ErrNotFound
	}

	c := &contacts[i]
	c.Name = in.Name
	c.Phone = in.Phone
	c.Email = in.Email
	c.Bookmarked = in.Bookmarked

	if err := s.backend.Save(contacts); err != nil {
		return types.Contact{}, fmt.Errorf("update contact: %w", err)
	}
	return *c, nil
}

// Delete removes the contact with the given id, or returns ErrNotFound.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	contacts, err := s.backend.Load()
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}

	before := len(contacts)
	contacts = slices.DeleteFunc(contacts, func(c types.Contact) bool { return c.ID == id })
	if len(contacts) == before {
		return ErrNotFound
	}

	if err := s.backend.Save(contacts); err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	return nil
}

func indexOf(contacts []types.Contact, id string) int {
	return slices.IndexFunc(contacts, func(c types.Contact) bool { return c.ID == id })
}
