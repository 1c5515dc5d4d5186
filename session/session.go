// Package session owns the server-held form-page instances: one FormState
// plus one reconciler per open page.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"FIC_Backend/formstate"
	"FIC_Backend/models"
	"FIC_Backend/reconciler"
	"FIC_Backend/store"
)

var ErrNotFound = errors.New("session not found")

// Session is one open form page. Back or Front is set depending on FormType;
// mu serializes remote applies against user edits, standing in for the
// single UI event loop of the original form.
type Session struct {
	ID       string
	FormType string

	mu      sync.Mutex
	back    *formstate.BackFormState
	front   *formstate.FrontFormState
	rec     *reconciler.Reconciler
	notices []string
}

// Snapshot is the JSON view of a session returned to clients.
type Snapshot struct {
	ID       string   `json:"id"`
	FormType string   `json:"form_type"`
	VIN      string   `json:"vin"`
	State    any      `json:"state"`
	Notices  []string `json:"notices"`
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{ID: s.ID, FormType: s.FormType, Notices: append([]string(nil), s.notices...)}
	if s.back != nil {
		copied := *s.back
		snap.VIN = copied.VIN
		snap.State = copied
	} else {
		copied := *s.front
		items := make(map[string]formstate.InspectionRow, len(copied.Items))
		for k, v := range copied.Items {
			items[k] = v
		}
		copied.Items = items
		snap.VIN = copied.VIN
		snap.State = copied
	}
	return snap
}

// applyPending decodes a claimed record's data payload and merges it. Reached
// only from the reconciler, after a successful claim.
func (s *Session) applyPending(rec models.PendingUpdate) (formstate.ApplyResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.FormType {
	case models.FormTypeBack:
		var p formstate.BackFormPayload
		if len(rec.Data) > 0 {
			if err := json.Unmarshal(rec.Data, &p); err != nil {
				return formstate.ApplyResult{}, fmt.Errorf("decode back form data: %w", err)
			}
		}
		p.VIN = rec.VIN
		p.Section = rec.Section
		return s.back.Apply(p), nil
	case models.FormTypeFront:
		var p formstate.TrunkTailgatePayload
		if len(rec.Data) > 0 {
			if err := json.Unmarshal(rec.Data, &p); err != nil {
				return formstate.ApplyResult{}, fmt.Errorf("decode trunk/tailgate data: %w", err)
			}
		}
		p.VIN = rec.VIN
		return s.front.Apply(p), nil
	}
	return formstate.ApplyResult{}, fmt.Errorf("unknown form type %q", s.FormType)
}

func (s *Session) addNotice(res formstate.ApplyResult) {
	s.mu.Lock()
	s.notices = append(s.notices, res.Summary())
	s.mu.Unlock()
}

// EditBack applies a direct user edit to a back-form session.
func (s *Session) EditBack(e formstate.BackFormEdit) (formstate.ApplyResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.back == nil {
		return formstate.ApplyResult{}, fmt.Errorf("session %s is not a back form", s.ID)
	}
	return s.back.ApplyEdit(e), nil
}

// EditFront applies a direct user edit to a front-form session.
func (s *Session) EditFront(e formstate.FrontFormEdit) (formstate.ApplyResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.front == nil {
		return formstate.ApplyResult{}, fmt.Errorf("session %s is not a front form", s.ID)
	}
	return s.front.ApplyEdit(e), nil
}

// Manager tracks open sessions against one pending store.
type Manager struct {
	store store.PendingStore

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager(st store.PendingStore) *Manager {
	return &Manager{store: st, sessions: make(map[string]*Session)}
}

// Open creates the default state for a page, activates its reconciler
// (catch-up then subscribe) and registers the session.
func (m *Manager) Open(ctx context.Context, formType, vin string) (*Session, error) {
	if !models.ValidFormType(formType) {
		return nil, fmt.Errorf("invalid form type %q", formType)
	}
	s := &Session{ID: uuid.NewString(), FormType: formType}
	switch formType {
	case models.FormTypeBack:
		s.back = formstate.NewBackFormState(vin)
	case models.FormTypeFront:
		s.front = formstate.NewFrontFormState(vin)
	}
	s.rec = reconciler.New(m.store, formType, s.applyPending, s.addNotice)
	if err := s.rec.Activate(ctx); err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s, nil
}

func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// Close tears the reconciler down and forgets the session. State is not
// persisted anywhere; a reopened page starts from defaults plus whatever is
// still unprocessed in the store.
func (m *Manager) Close(id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	m.mu.Unlock()
	if !ok {
		return ErrNotFound
	}
	s.rec.Teardown()
	return nil
}

// CloseAll tears down every open session, for shutdown.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	all := make([]*Session, 0, len(m.sessions))
	for id, s := range m.sessions {
		all = append(all, s)
		delete(m.sessions, id)
	}
	m.mu.Unlock()
	for _, s := range all {
		s.rec.Teardown()
	}
}
