// Package web serves Bubble 2048 over HTTP: a JSON API for sessions and a
// WebSocket for live play.
package web

import (
	"context"
	"errors"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/bubble2048/internal/config"
	"github.com/vovakirdan/bubble2048/internal/games/bubble2048"
)

// Errors exposed by the service layer.
var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrUnknownDirection = errors.New("unknown direction")
)

// BestStore persists best scores. *storage.Store satisfies it.
type BestStore interface {
	BestScore(gameID string) (int, error)
	SaveBestScore(gameID string, score int) error
}

// Options configure a Service.
type Options struct {
	// Config supplies the rules; difficulty presets are applied on top.
	Config config.GameConfig
	// Store is optional. Without it best scores live only in memory.
	Store BestStore
	// Seed makes session RNGs reproducible: session n uses Seed+n.
	// Zero seeds from the clock.
	Seed   int64
	Logger *log.Logger
}

// SessionView is the JSON form of a session.
type SessionView struct {
	ID string `json:"id"`
	bubble2048.State
	MaxTile int       `json:"max_tile"`
	Moves   int       `json:"moves"`
	Created time.Time `json:"created"`
	Updated time.Time `json:"updated"`
}

// TurnView is the JSON form of one played turn.
type TurnView struct {
	Direction string `json:"direction"`
	bubble2048.TurnResult
	Session SessionView `json:"session"`
}

// Event is pushed to WebSocket subscribers of a session.
type Event struct {
	Type    string       `json:"type"` // "state" or "turn"
	Session *SessionView `json:"session,omitempty"`
	Turn    *TurnView    `json:"turn,omitempty"`
}

type subscriber struct {
	ch        chan Event
	closeOnce sync.Once
}

func (s *subscriber) close() { s.closeOnce.Do(func() { close(s.ch) }) }

// entry is one live session. mu serialises all access to session.
type entry struct {
	mu      sync.Mutex
	id      string
	session *bubble2048.Session
	created time.Time
	updated time.Time
}

func (e *entry) viewLocked() SessionView {
	grid := e.session.Grid()
	return SessionView{
		ID:      e.id,
		State:   e.session.State(),
		MaxTile: bubble2048.MaxTile(grid),
		Moves:   e.session.Moves(),
		Created: e.created,
		Updated: e.updated,
	}
}

// Service owns the in-memory sessions and their subscribers.
type Service struct {
	mu       sync.Mutex
	sessions map[string]*entry
	subs     map[string]map[*subscriber]struct{}
	counter  int64

	cfg    config.GameConfig
	store  BestStore
	seed   int64
	logger *log.Logger
}

// NewService creates a service with the given options.
func NewService(opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Service{
		sessions: make(map[string]*entry),
		subs:     make(map[string]map[*subscriber]struct{}),
		cfg:      opts.Config,
		store:    opts.Store,
		seed:     opts.Seed,
		logger:   logger,
	}
}

// Create starts a new session. An empty difficulty keeps the configured
// rules; unknown names are treated the same way.
func (s *Service) Create(difficulty string) (SessionView, error) {
	cfg := s.cfg
	if difficulty != "" {
		config.ApplyPreset(&cfg, config.ParseDifficultyPreset(difficulty))
	}

	s.mu.Lock()
	s.counter++
	seed := s.seed + s.counter
	s.mu.Unlock()
	if s.seed == 0 {
		seed = time.Now().UnixNano()
	}

	best := 0
	if s.store != nil {
		b, err := s.store.BestScore(bubble2048.GameID)
		if err != nil {
			s.logger.Warn("could not load best score", "error", err)
		}
		best = b
	}

	now := time.Now()
	e := &entry{
		id:      uuid.NewString(),
		session: bubble2048.NewSession(rand.New(rand.NewSource(seed)), bubble2048.RulesFromConfig(cfg), best),
		created: now,
		updated: now,
	}

	view := e.viewLocked()

	s.mu.Lock()
	s.sessions[e.id] = e
	s.mu.Unlock()

	s.logger.Info("session created", "session", e.id, "difficulty", difficulty)
	return view, nil
}

func (s *Service) lookup(id string) (*entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return e, nil
}

// Get returns the current view of a session.
func (s *Service) Get(id string) (SessionView, error) {
	e, err := s.lookup(id)
	if err != nil {
		return SessionView{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.viewLocked(), nil
}

// Move plays one turn. Refused input (a lost game, or a won game that was
// not continued) is reported through TurnResult.Accepted, not as an error.
func (s *Service) Move(id, direction string) (TurnView, error) {
	dir, err := bubble2048.ParseDirection(direction)
	if err != nil {
		return TurnView{}, ErrUnknownDirection
	}
	e, err := s.lookup(id)
	if err != nil {
		return TurnView{}, err
	}

	e.mu.Lock()
	res := e.session.Move(dir)
	if res.Moved {
		e.updated = time.Now()
	}
	turn := TurnView{Direction: dir.String(), TurnResult: res, Session: e.viewLocked()}
	e.mu.Unlock()

	if res.BestChanged {
		s.saveBest(turn.Session.BestScore)
	}
	if res.Moved {
		s.publish(id, Event{Type: "turn", Turn: &turn})
	}
	return turn, nil
}

// Continue acknowledges a win so the session accepts moves again.
func (s *Service) Continue(id string) (SessionView, error) {
	return s.mutate(id, (*bubble2048.Session).Continue)
}

// Reset starts a new game in the session. The best score is kept.
func (s *Service) Reset(id string) (SessionView, error) {
	return s.mutate(id, (*bubble2048.Session).NewGame)
}

func (s *Service) mutate(id string, fn func(*bubble2048.Session)) (SessionView, error) {
	e, err := s.lookup(id)
	if err != nil {
		return SessionView{}, err
	}
	e.mu.Lock()
	fn(e.session)
	e.updated = time.Now()
	view := e.viewLocked()
	e.mu.Unlock()

	s.publish(id, Event{Type: "state", Session: &view})
	return view, nil
}

// Delete removes a session and disconnects its subscribers.
func (s *Service) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	s.removeLocked(id)
	return nil
}

func (s *Service) removeLocked(id string) {
	delete(s.sessions, id)
	for sub := range s.subs[id] {
		sub.close()
	}
	delete(s.subs, id)
}

// Len returns the number of live sessions.
func (s *Service) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Prune removes sessions idle for longer than maxIdle and returns how
// many were removed.
func (s *Service) Prune(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, e := range s.sessions {
		e.mu.Lock()
		idle := e.updated.Before(cutoff)
		e.mu.Unlock()
		if idle {
			s.removeLocked(id)
			removed++
		}
	}
	if removed > 0 {
		s.logger.Info("pruned idle sessions", "count", removed)
	}
	return removed
}

// RunJanitor prunes idle sessions every interval until ctx is done.
func (s *Service) RunJanitor(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Prune(maxIdle)
		}
	}
}

// Subscribe registers for events of a session. The channel is closed when
// the subscriber falls behind, the session is deleted or ctx is done.
func (s *Service) Subscribe(ctx context.Context, id string) (<-chan Event, func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return nil, nil, ErrSessionNotFound
	}
	set := s.subs[id]
	if set == nil {
		set = make(map[*subscriber]struct{})
		s.subs[id] = set
	}
	sub := &subscriber{ch: make(chan Event, 8)}
	set[sub] = struct{}{}

	var once sync.Once
	unsub := func() {
		once.Do(func() {
			s.mu.Lock()
			if set, ok := s.subs[id]; ok {
				delete(set, sub)
			}
			s.mu.Unlock()
			sub.close()
		})
	}
	go func() {
		<-ctx.Done()
		unsub()
	}()
	return sub.ch, unsub, nil
}

// publish fans an event out to the session's subscribers and drops the
// ones that cannot keep up.
func (s *Service) publish(id string, ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for sub := range s.subs[id] {
		select {
		case sub.ch <- ev:
		default:
			sub.close()
			delete(s.subs[id], sub)
			s.logger.Warn("dropped slow subscriber", "session", id)
		}
	}
}

func (s *Service) saveBest(best int) {
	if s.store == nil {
		return
	}
	if err := s.store.SaveBestScore(bubble2048.GameID, best); err != nil {
		s.logger.Warn("could not save best score", "error", err)
	}
}
