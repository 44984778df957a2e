package componentbus

import (
	"context"

	"github.com/starknet-sequencer/mempool/core/types"
)

// MempoolRequest is the tagged request variant the mempool actor accepts:
// either an AddTransaction or a GetTransactions call. Exactly one of
// AddTx/GetTxsN is set.
type MempoolRequest struct {
	AddTx   *types.MempoolInput
	GetTxsN *int
}

// MempoolResponse is the tagged response variant. Exactly one of Err,
// Transactions is meaningful, selected by which request field was set.
type MempoolResponse struct {
	Err          error
	Transactions []types.ThinTransaction
}

// MempoolServer is what the mempool actor's handle_request implements;
// componentbus.Serve calls it once per request.
type MempoolServer interface {
	AddTx(input types.MempoolInput) error
	GetTxs(n int) []types.ThinTransaction
}

// NewMempoolHandler adapts a MempoolServer to a componentbus HandlerFunc,
// dispatching on which field of the request is set.
func NewMempoolHandler(server MempoolServer) HandlerFunc[MempoolRequest, MempoolResponse] {
	return func(_ context.Context, req MempoolRequest) MempoolResponse {
		switch {
		case req.AddTx != nil:
			return MempoolResponse{Err: server.AddTx(*req.AddTx)}
		case req.GetTxsN != nil:
			return MempoolResponse{Transactions: server.GetTxs(*req.GetTxsN)}
		default:
			return MempoolResponse{Err: &ErrUnexpectedResponse{Component: "mempool"}}
		}
	}
}

// MempoolClient is the gateway-facing handle to the mempool actor, wrapping
// a generic Client with the mempool's concrete message schema.
type MempoolClient struct {
	client *Client[MempoolRequest, MempoolResponse]
}

// NewMempoolClient builds a MempoolClient bound to bus.
func NewMempoolClient(bus *Bus[MempoolRequest, MempoolResponse]) *MempoolClient {
	return &MempoolClient{client: NewClient(bus)}
}

// AddTx implements gateway.MempoolSubmitter: a single round trip to the
// mempool actor's AddTransaction handler.
func (c *MempoolClient) AddTx(ctx context.Context, input types.MempoolInput) error {
	resp, err := c.client.Send(ctx, MempoolRequest{AddTx: &input})
	if err != nil {
		return err
	}
	return resp.Err
}

// GetTxs calls the mempool actor's GetTransactions handler, the envelope
// a downstream batcher polls through.
func (c *MempoolClient) GetTxs(ctx context.Context, n int) ([]types.ThinTransaction, error) {
	resp, err := c.client.Send(ctx, MempoolRequest{GetTxsN: &n})
	if err != nil {
		return nil, err
	}
	if resp.Err != nil {
		return nil, resp.Err
	}
	return resp.Transactions, nil
}
