package services

import (
	"sync"

	"github.com/pranav-builds/jobtrackr/internal/domain"
)

// FeedEvent is one collection change, pushed to every live subscriber of the
// owning user. Type is one of created, updated, status_changed, deleted.
// Job is nil for deletions.
type FeedEvent struct {
	Type  string            `json:"type"`
	JobID string            `json:"job_id"`
	Job   *domain.JobRecord `json:"job,omitempty"`
}

// FeedService fans collection changes out to per-owner subscribers. It backs
// the SSE endpoint: a client subscribes, re-fetches the collection on every
// event, and recomputes its views from that fresh snapshot. Events carry no
// ordering guarantee beyond channel order; last write observed wins.
type FeedService struct {
	mu   sync.Mutex
	subs map[string]map[chan FeedEvent]struct{}
}

func NewFeedService() *FeedService {
	return &FeedService{
		subs: make(map[string]map[chan FeedEvent]struct{}),
	}
}

// Subscribe registers a listener for one owner's changes. The returned cancel
// func must be called when the client goes away; it closes the channel.
func (s *FeedService) Subscribe(ownerID string) (<-chan FeedEvent, func()) {
	ch := make(chan FeedEvent, 16)

	s.mu.Lock()
	if s.subs[ownerID] == nil {
		s.subs[ownerID] = make(map[chan FeedEvent]struct{})
	}
	s.subs[ownerID][ch] = struct{}{}
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		if set, ok := s.subs[ownerID]; ok {
			if _, live := set[ch]; live {
				delete(set, ch)
				close(ch)
			}
			if len(set) == 0 {
				delete(s.subs, ownerID)
			}
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

// Publish delivers an event to every subscriber of ownerID. Delivery is
// best-effort and never blocks a mutation: a subscriber whose buffer is full
// misses the event and catches up on its next fetch.
func (s *FeedService) Publish(ownerID string, ev FeedEvent) {
	if ownerID == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for ch := range s.subs[ownerID] {
		select {
		case ch <- ev:
		default:
		}
	}
}

// SubscriberCount reports how many live subscribers an owner has.
func (s *FeedService) SubscriberCount(ownerID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs[ownerID])
}
