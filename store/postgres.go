package store

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"FIC_Backend/models"
)

// NotifyChannel is the Postgres NOTIFY channel the insert trigger fires on.
const NotifyChannel = "fic_pending_updates"

const subscriberBuffer = 16

// PostgresStore backs PendingStore with the fic_pending_updates table and a
// single pq.Listener whose notifications fan out to per-form-type
// subscribers.
type PostgresStore struct {
	db       *gorm.DB
	listener *pq.Listener

	mu     sync.Mutex
	nextID int
	subs   map[string]map[int]chan models.PendingUpdate // form_type -> subscriber id -> chan
	closed bool
}

// NewPostgresStore starts listening on NotifyChannel. The DSN must match the
// one the gorm connection uses; pq handles reconnects itself, and records
// inserted while disconnected stay unprocessed until the next catch-up.
func NewPostgresStore(db *gorm.DB, dsn string) (*PostgresStore, error) {
	s := &PostgresStore{
		db:   db,
		subs: make(map[string]map[int]chan models.PendingUpdate),
	}
	s.listener = pq.NewListener(dsn, 10*time.Second, time.Minute, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			log.Printf("pending store listener event %v: %v", ev, err)
		}
	})
	if err := s.listener.Listen(NotifyChannel); err != nil {
		_ = s.listener.Close()
		return nil, err
	}
	go s.dispatch()
	return s, nil
}

func (s *PostgresStore) Insert(ctx context.Context, rec *models.PendingUpdate) error {
	return s.db.WithContext(ctx).Create(rec).Error
}

func (s *PostgresStore) FetchUnprocessed(ctx context.Context, formType string) ([]models.PendingUpdate, error) {
	var recs []models.PendingUpdate
	// id breaks created_at ties so replays are deterministic across
	// activations.
	err := s.db.WithContext(ctx).
		Where("form_type = ? AND processed = ?", formType, false).
		Order("created_at ASC, id ASC").
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return recs, nil
}

// Claim is a compare-and-set on the processed flag. Only the caller whose
// update actually flipped the row gets true; everyone else must skip.
func (s *PostgresStore) Claim(ctx context.Context, id string) (bool, error) {
	now := time.Now().UTC()
	tx := s.db.WithContext(ctx).
		Model(&models.PendingUpdate{}).
		Where("id = ? AND processed = ?", id, false).
		Updates(map[string]any{"processed": true, "processed_at": now})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected == 1, nil
}

func (s *PostgresStore) List(ctx context.Context, q ListQuery) ([]models.PendingUpdate, int64, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Size < 1 || q.Size > 200 {
		q.Size = 20
	}
	d := s.db.WithContext(ctx).Model(&models.PendingUpdate{})
	if q.FormType != "" {
		d = d.Where("form_type = ?", q.FormType)
	}
	if q.Processed != nil {
		d = d.Where("processed = ?", *q.Processed)
	}
	var total int64
	if err := d.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var recs []models.PendingUpdate
	offset := (q.Page - 1) * q.Size
	if err := d.Order("created_at DESC").Limit(q.Size).Offset(offset).Find(&recs).Error; err != nil {
		return nil, 0, err
	}
	return recs, total, nil
}

func (s *PostgresStore) Subscribe(formType string) (<-chan models.PendingUpdate, func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, nil, errors.New("pending store closed")
	}
	if s.subs[formType] == nil {
		s.subs[formType] = make(map[int]chan models.PendingUpdate)
	}
	id := s.nextID
	s.nextID++
	ch := make(chan models.PendingUpdate, subscriberBuffer)
	s.subs[formType][id] = ch

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if c, ok := s.subs[formType][id]; ok {
			delete(s.subs[formType], id)
			close(c)
		}
	}
	return ch, cancel, nil
}

// Close stops the listener and closes every subscriber channel.
func (s *PostgresStore) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	for _, subs := range s.subs {
		for id, ch := range subs {
			delete(subs, id)
			close(ch)
		}
	}
	s.mu.Unlock()
	return s.listener.Close()
}

// insertNotice is the trigger's notify payload: id and form type only, so
// the payload stays far under the NOTIFY size cap no matter how large the
// form data is.
type insertNotice struct {
	ID       string `json:"id"`
	FormType string `json:"form_type"`
}

func parseInsertNotice(extra string) (insertNotice, error) {
	var n insertNotice
	if err := json.Unmarshal([]byte(extra), &n); err != nil {
		return insertNotice{}, err
	}
	if n.ID == "" {
		return insertNotice{}, errors.New("notify payload missing id")
	}
	return n, nil
}

// dispatch consumes insert notices and fans the rows out. The row is fetched
// by id only when someone is subscribed to its form type. A failed fetch or
// a full subscriber buffer drops the notification; the record stays
// unprocessed and the next catch-up picks it up.
func (s *PostgresStore) dispatch() {
	for n := range s.listener.Notify {
		if n == nil {
			// pq sends nil after a reconnect; nothing to parse.
			continue
		}
		notice, err := parseInsertNotice(n.Extra)
		if err != nil {
			log.Printf("pending store: bad notify payload: %v", err)
			continue
		}
		s.mu.Lock()
		chans := make([]chan models.PendingUpdate, 0, len(s.subs[notice.FormType]))
		for _, ch := range s.subs[notice.FormType] {
			chans = append(chans, ch)
		}
		s.mu.Unlock()
		if len(chans) == 0 {
			continue
		}
		var rec models.PendingUpdate
		if err := s.db.First(&rec, "id = ?", notice.ID).Error; err != nil {
			log.Printf("pending store: fetch notified row %s: %v", notice.ID, err)
			continue
		}
		for _, ch := range chans {
			select {
			case ch <- rec:
			default:
				log.Printf("pending store: subscriber full, dropping notify for %s", rec.ID)
			}
		}
	}
}
