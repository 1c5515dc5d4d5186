package controllers_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"FIC_Backend/models"
	"FIC_Backend/store"
)

// fakeStore is an in-memory PendingStore. Insert notifies subscribers the
// way the Postgres trigger does, so the session end-to-end tests run the
// whole submit -> notify -> apply pipeline over HTTP.
type fakeStore struct {
	mu        sync.Mutex
	recs      map[string]*models.PendingUpdate
	order     []string
	subs      map[string][]chan models.PendingUpdate
	insertErr error
	nextID    int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		recs: make(map[string]*models.PendingUpdate),
		subs: make(map[string][]chan models.PendingUpdate),
	}
}

func (f *fakeStore) Insert(_ context.Context, rec *models.PendingUpdate) error {
	f.mu.Lock()
	if f.insertErr != nil {
		err := f.insertErr
		f.mu.Unlock()
		return err
	}
	if rec.ID == "" {
		f.nextID++
		rec.ID = fmt.Sprintf("rec-%d", f.nextID)
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	cp := *rec
	f.recs[rec.ID] = &cp
	f.order = append(f.order, rec.ID)
	subs := append([]chan models.PendingUpdate(nil), f.subs[rec.FormType]...)
	f.mu.Unlock()
	for _, ch := range subs {
		ch <- cp
	}
	return nil
}

func (f *fakeStore) FetchUnprocessed(_ context.Context, formType string) ([]models.PendingUpdate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.PendingUpdate
	for _, id := range f.order {
		rec := f.recs[id]
		if rec.FormType == formType && !rec.Processed {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (f *fakeStore) Claim(_ context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.recs[id]
	if !ok || rec.Processed {
		return false, nil
	}
	now := time.Now().UTC()
	rec.Processed = true
	rec.ProcessedAt = &now
	return true, nil
}

func (f *fakeStore) List(_ context.Context, q store.ListQuery) ([]models.PendingUpdate, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.PendingUpdate
	for _, id := range f.order {
		rec := f.recs[id]
		if q.FormType != "" && rec.FormType != q.FormType {
			continue
		}
		if q.Processed != nil && rec.Processed != *q.Processed {
			continue
		}
		out = append(out, *rec)
	}
	return out, int64(len(out)), nil
}

func (f *fakeStore) Subscribe(formType string) (<-chan models.PendingUpdate, func(), error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan models.PendingUpdate, 16)
	f.subs[formType] = append(f.subs[formType], ch)
	var once sync.Once
	cancel := func() {
		once.Do(func() {
			f.mu.Lock()
			subs := f.subs[formType]
			for i, c := range subs {
				if c == ch {
					f.subs[formType] = append(subs[:i], subs[i+1:]...)
					break
				}
			}
			f.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel, nil
}

func (f *fakeStore) inserted() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.recs)
}

func (f *fakeStore) record(i int) models.PendingUpdate {
	f.mu.Lock()
	defer f.mu.Unlock()
	return *f.recs[f.order[i]]
}
