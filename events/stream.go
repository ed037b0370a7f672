package events

import (
	"context"
	"errors"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// ErrStreamClosed is returned by Wait when the stream ended without a
// terminal event, which happens when it was closed by the reader.
var ErrStreamClosed = errors.New("events: stream closed before a terminal event")

// Event is one progress notification. Which fields are set depends on Name:
// TxHash on *_TRANSACTION_HASH, Confirmation and Receipt on *_CONFIRMATION,
// Receipt on *_RECEIPT and Err on ERROR.
type Event struct {
	Name         Name
	TxHash       common.Hash
	Confirmation uint64
	Receipt      *types.Receipt
	Err          *Error
}

// Stream is the ordered event sequence of a single operation. Readers range
// over Events until it is closed; the producer side uses Emit and Finish.
type Stream struct {
	ch   chan Event
	quit chan struct{}
	once sync.Once
}

// NewStream creates an empty stream.
func NewStream() *Stream {
	return &Stream{
		ch:   make(chan Event),
		quit: make(chan struct{}),
	}
}

// Events returns the channel delivering the events in order. It is closed
// after the terminal event.
func (s *Stream) Events() <-chan Event {
	return s.ch
}

// Close stops the delivery of further events. Transactions already sent to
// the ledger are not affected.
func (s *Stream) Close() {
	s.once.Do(func() { close(s.quit) })
}

// Closed is closed once Close was called, directly or through the
// cancellation of the operation's context.
func (s *Stream) Closed() <-chan struct{} {
	return s.quit
}

// Emit delivers ev, blocking until it is received. It returns false if the
// reader closed the stream instead.
func (s *Stream) Emit(ev Event) bool {
	select {
	case <-s.quit:
		return false
	default:
	}
	select {
	case s.ch <- ev:
		return true
	case <-s.quit:
		return false
	}
}

// Fail emits the terminal ERROR event carrying err.
func (s *Stream) Fail(err *Error) bool {
	return s.Emit(Event{Name: ErrorName, Err: err})
}

// Finish ends the sequence. It must be called exactly once, by the producer.
func (s *Stream) Finish() {
	close(s.ch)
}

// Wait consumes the stream until its terminal event and returns the final
// receipt, or the *Error carried by an ERROR event.
func (s *Stream) Wait(ctx context.Context) (*types.Receipt, error) {
	for {
		select {
		case ev, ok := <-s.ch:
			if !ok {
				return nil, ErrStreamClosed
			}
			if ev.Err != nil {
				return ev.Receipt, ev.Err
			}
			if ev.Name.IsReceipt() {
				return ev.Receipt, nil
			}
		case <-ctx.Done():
			s.Close()
			return nil, ctx.Err()
		}
	}
}
