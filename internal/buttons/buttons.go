// Package buttons turns physical or injected input into dice roller actions.
package buttons

import (
	"context"
	"sync"
)

type Action string

const (
	Roll         Action = "roll"
	QuickRoll    Action = "quickroll"
	ClearHistory Action = "clear"
	CountUp      Action = "count_up"
	CountDown    Action = "count_down"
	SidesNext    Action = "sides_next"
	SidesPrev    Action = "sides_prev"
	Exit         Action = "exit"
)

// Event is one input action. Preset is the 0-based quick-roll index and is
// only meaningful for QuickRoll.
type Event struct {
	Action Action
	Preset int
}

type Buttons interface {
	Start(ctx context.Context) error
	Stop() error
	Events() <-chan Event
}

type NoopButtons struct{ ch chan Event }

func NewNoopButtons() *NoopButtons { return &NoopButtons{ch: make(chan Event)} }

func (n *NoopButtons) Start(ctx context.Context) error { return nil }
func (n *NoopButtons) Stop() error                     { close(n.ch); return nil }
func (n *NoopButtons) Events() <-chan Event            { return n.ch }

// ChanButtons delivers events injected with Send. The web remote and tests
// use it.
type ChanButtons struct {
	ch chan Event

	mu     sync.Mutex
	closed bool
}

func NewChanButtons(buffer int) *ChanButtons {
	return &ChanButtons{ch: make(chan Event, buffer)}
}

func (c *ChanButtons) Start(ctx context.Context) error { return nil }

func (c *ChanButtons) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.ch)
	}
	return nil
}

func (c *ChanButtons) Events() <-chan Event { return c.ch }

// Send queues ev. It reports false when the driver is stopped or the buffer
// is full.
func (c *ChanButtons) Send(ev Event) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.ch <- ev:
		return true
	default:
		return false
	}
}
