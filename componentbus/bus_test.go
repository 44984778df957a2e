package componentbus

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// TestMain verifies that no Serve goroutine outlives its test, since a
// leaked actor loop here would mean a leaked actor loop in the running
// node too.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestSendReceivesResponse(t *testing.T) {
	bus := NewBus[int, int]("double", 4)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go Serve(ctx, bus, func(_ context.Context, req int) int { return req * 2 })

	client := NewClient(bus)
	resp, err := client.Send(context.Background(), 21)
	require.NoError(t, err)
	require.Equal(t, 42, resp)
}

func TestSendAfterServerStoppedReturnsChannelSendError(t *testing.T) {
	bus := NewBus[int, int]("double", 1)
	ctx, cancel := context.WithCancel(context.Background())

	go Serve(ctx, bus, func(_ context.Context, req int) int { return req })
	cancel()
	time.Sleep(20 * time.Millisecond)

	_, err := NewClient(bus).Send(context.Background(), 1)
	require.Error(t, err)
	var sendErr *ErrChannelSendError
	require.ErrorAs(t, err, &sendErr)
}

func TestSendRespectsCallerContextCancellation(t *testing.T) {
	bus := NewBus[int, int]("slow", 0)
	callCtx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(bus).Send(callCtx, 1)
	require.ErrorIs(t, err, context.Canceled)
}
