// Package componentbus implements the typed request/response message
// runtime the mempool actor is reached through (the gateway and the mock
// batcher are its clients). One actor owns its state and reads a bounded FIFO
// channel of envelopes; callers get a Client handle that allocates a
// one-shot reply channel per call.
package componentbus

import (
	"context"
	"fmt"
)

// envelope pairs one request with the one-shot channel its response is
// delivered on.
type envelope[Req, Resp any] struct {
	request Req
	reply   chan Resp
}

// Bus is the bounded FIFO channel between a component's clients and its
// single server loop. done is closed when the server loop exits, letting
// clients detect a terminated server without sending on a closed channel
// (which would panic).
type Bus[Req, Resp any] struct {
	requests  chan envelope[Req, Resp]
	done      chan struct{}
	component string
}

// NewBus creates a bus with the given inbound capacity.
func NewBus[Req, Resp any](component string, capacity int) *Bus[Req, Resp] {
	return &Bus[Req, Resp]{
		requests:  make(chan envelope[Req, Resp], capacity),
		done:      make(chan struct{}),
		component: component,
	}
}

// Client is the caller-facing handle: send(req) -> resp.
type Client[Req, Resp any] struct {
	bus *Bus[Req, Resp]
}

// NewClient returns a Client bound to bus.
func NewClient[Req, Resp any](bus *Bus[Req, Resp]) *Client[Req, Resp] {
	return &Client[Req, Resp]{bus: bus}
}

// Send enqueues req and blocks until the server replies, ctx is canceled,
// or the channel is closed/abandoned. It suspends at two points: enqueueing
// the request, and awaiting the reply.
func (c *Client[Req, Resp]) Send(ctx context.Context, req Req) (Resp, error) {
	var zero Resp
	reply := make(chan Resp, 1)
	env := envelope[Req, Resp]{request: req, reply: reply}

	// Check for a terminated server first: otherwise a free buffer slot would
	// accept the envelope and the call would end as ErrChannelNoResponse.
	select {
	case <-c.bus.done:
		return zero, &ErrChannelSendError{Component: c.bus.component}
	default:
	}

	select {
	case c.bus.requests <- env:
	case <-c.bus.done:
		return zero, &ErrChannelSendError{Component: c.bus.component}
	case <-ctx.Done():
		return zero, ctx.Err()
	}

	select {
	case resp := <-reply:
		return resp, nil
	case <-c.bus.done:
		// The server may have exited between accepting our envelope and
		// replying; drain once more in case the reply beat the shutdown.
		select {
		case resp := <-reply:
			return resp, nil
		default:
			return zero, &ErrChannelNoResponse{Component: c.bus.component}
		}
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// HandlerFunc executes one request and returns its response. The server
// loop never calls a CPU-heavy handler inline; handlers that need to
// offload do so themselves (e.g. the compiler's worker pool).
type HandlerFunc[Req, Resp any] func(ctx context.Context, req Req) Resp

// Serve runs the server loop until ctx is canceled or the bus is closed. It
// must be launched as its own goroutine by the caller: one actor, one task.
func Serve[Req, Resp any](ctx context.Context, bus *Bus[Req, Resp], handle HandlerFunc[Req, Resp]) {
	defer close(bus.done)
	for {
		select {
		case env, ok := <-bus.requests:
			if !ok {
				return
			}
			resp := handle(ctx, env.request)
			// The reply channel is buffered with capacity 1, so this never
			// blocks even if the client has already given up on ctx
			// cancellation: the server never retries or blocks on an
			// abandoned reply channel.
			env.reply <- resp
		case <-ctx.Done():
			return
		}
	}
}

// Close signals the server loop to drain and stop accepting new requests.
// Safe to call once.
func (b *Bus[Req, Resp]) Close() { close(b.requests) }

// String names the bus for diagnostics.
func (b *Bus[Req, Resp]) String() string { return fmt.Sprintf("componentbus(%s)", b.component) }
