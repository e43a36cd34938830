package outbox

import (
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
	"golang.org/x/sync/errgroup"

	"github.com/arenborg/discordrest/discord"
	"github.com/arenborg/discordrest/internal/syncedmap"
	"github.com/arenborg/discordrest/rest"
)

// Service manages one queue and sender per named destination channel.
type Service struct {
	client  *rest.Client
	db      *bolt.DB
	senders *syncedmap.SyncedMap[string, *Sender]
	queues  *syncedmap.SyncedMap[string, *Queue]
}

// NewService returns a service storing its queues in the given database.
func NewService(client *rest.Client, db *bolt.DB) *Service {
	return &Service{
		client:  client,
		db:      db,
		senders: syncedmap.New[string, *Sender](),
		queues:  syncedmap.New[string, *Queue](),
	}
}

// AddDestination registers a named destination and starts its sender.
func (s *Service) AddDestination(name string) error {
	q, err := NewQueue(s.db, name)
	if err != nil {
		return err
	}
	s.queues.Store(name, q)
	snd := NewSender(s.client, q, name)
	s.senders.Store(name, snd)
	snd.Start()
	return nil
}

// Enqueue adds a message for the named destination.
func (s *Service) Enqueue(name string, channelID discord.Snowflake, m Message) error {
	q, ok := s.queues.Load(name)
	if !ok {
		return fmt.Errorf("unknown outbox destination: %s", name)
	}
	m.ChannelID = channelID
	m.QueuedAt = time.Now().UTC()
	v, err := m.MarshalBytes()
	if err != nil {
		return err
	}
	return q.Put(v)
}

// Stats reports per-destination queue sizes and send counts.
func (s *Service) Stats() []DestinationStats {
	out := make([]DestinationStats, 0, s.senders.Len())
	for name, snd := range s.senders.Clone() {
		q, _ := s.queues.Load(name)
		sent, errs, last := snd.Stats()
		out = append(out, DestinationStats{
			Name:      name,
			Queued:    q.Size(),
			SentCount: sent,
			ErrCount:  errs,
			SentLast:  last,
		})
	}
	return out
}

// DestinationStats describes the state of one destination.
type DestinationStats struct {
	Name      string
	Queued    int
	SentCount int64
	ErrCount  int64
	SentLast  time.Time
}

// Close shuts down all senders gracefully.
func (s *Service) Close() {
	var g errgroup.Group
	for _, snd := range s.senders.Clone() {
		g.Go(func() error {
			snd.Close()
			return nil
		})
	}
	_ = g.Wait()
}
