package outbox

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"math/rand/v2"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/arenborg/discordrest/rest"
)

const (
	backoffBase = 2.0
	backoffMax  = 120 * time.Second
)

// A Sender drains one queue and posts its messages through the REST client.
// Transport failures are retried with exponential backoff, permanently
// rejected messages (4xx) are discarded.
type Sender struct {
	client    *rest.Client
	name      string
	queue     *Queue
	shutdown  chan struct{} // commence shutdown
	done      chan struct{} // shutdown completed
	errCount  atomic.Int64
	sentCount atomic.Int64
	sentLast  atomic.Int64 // unix seconds
}

// NewSender returns a sender draining the given queue.
func NewSender(client *rest.Client, queue *Queue, name string) *Sender {
	return &Sender{
		client:   client,
		name:     name,
		queue:    queue,
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (s *Sender) Name() string {
	return s.name
}

// Stats returns the number of sent messages, the number of errors and the
// time of the last successful send.
func (s *Sender) Stats() (sent int64, errs int64, last time.Time) {
	if v := s.sentLast.Load(); v != 0 {
		last = time.Unix(v, 0).UTC()
	}
	return s.sentCount.Load(), s.errCount.Load(), last
}

// Close conducts a graceful shutdown of the sender.
func (s *Sender) Close() {
	s.shutdown <- struct{}{}
	<-s.done
}

// Start starts draining the queue in the background.
// Call Close to shut the sender down gracefully.
func (s *Sender) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		<-s.shutdown
		cancel()
		<-stopped
		s.done <- struct{}{}
	}()
	go func() {
		myLog := slog.With("outbox", s.name)
		myLog.Info("Started", "queued", s.queue.Size())
	loop:
		for {
			v, err := s.queue.GetWithContext(ctx)
			if errors.Is(err, context.Canceled) {
				break
			} else if err != nil {
				myLog.Error("Failed to read from queue", "error", err)
				continue
			}
			m, err := UnmarshalMessage(v)
			if err != nil {
				myLog.Error("Failed to de-serialize message. Discarding", "error", err, "data", string(v))
				continue
			}
			var attempt int
			for {
				if ctx.Err() != nil {
					// Put the message back so it is not lost across the restart.
					if err := s.queue.Put(v); err != nil {
						myLog.Error("Failed to re-queue message", "error", err)
					}
					break loop
				}
				attempt++
				_, err = s.client.SendMessage(ctx, m.ChannelID, m.Params())
				if err == nil {
					break
				}
				s.errCount.Add(1)
				if discardable(err) {
					myLog.Error("Message rejected. Discarding", "error", err, "channel", m.ChannelID)
					break
				}
				d := backoffJitter(attempt)
				myLog.Error("Failed to send message. Retrying", "error", err, "attempt", attempt, "wait", d)
				select {
				case <-ctx.Done():
				case <-time.After(d):
				}
			}
			if err == nil {
				s.sentCount.Add(1)
				s.sentLast.Store(time.Now().Unix())
				myLog.Info("Posted message", "channel", m.ChannelID, "queued", s.queue.Size())
			}
		}
		myLog.Info("Stopped")
		stopped <- struct{}{}
	}()
}

// discardable reports whether an error is permanent for this message,
// so retrying it can not succeed.
func discardable(err error) bool {
	var (
		unauthorized *rest.UnauthorizedError
		forbidden    *rest.ForbiddenError
		notFound     *rest.NotFoundError
		srvErr       *rest.ServerError
		httpErr      *rest.HTTPError
	)
	switch {
	case errors.As(err, &unauthorized), errors.As(err, &forbidden), errors.As(err, &notFound):
		return true
	case errors.As(err, &srvErr):
		return false
	case errors.As(err, &httpErr):
		return httpErr.Status >= http.StatusBadRequest && httpErr.Status < http.StatusInternalServerError
	}
	return false
}

func backoffJitter(attempt int) time.Duration {
	d := time.Duration(math.Pow(backoffBase, float64(attempt))) * time.Second
	d = min(d, backoffMax)
	return d/2 + rand.N(d/2)
}
