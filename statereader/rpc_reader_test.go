package statereader

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/starknet-sequencer/mempool/common/felt"
)

func sampleAddress() felt.Felt {
	return felt.FromUint64(0x1234)
}

type jsonrpcRequest struct {
	Method string            `json:"method"`
	ID     json.RawMessage   `json:"id"`
	Params []json.RawMessage `json:"params"`
}

func jsonrpcServer(t *testing.T, handlers map[string]func(params []json.RawMessage) (any, *jsonrpcError)) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req jsonrpcRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		resp := map[string]any{"jsonrpc": "2.0", "id": json.RawMessage(req.ID)}
		handler, ok := handlers[req.Method]
		if !ok {
			resp["error"] = map[string]any{"code": -32601, "message": "method not found"}
		} else if result, rpcErr := handler(req.Params); rpcErr != nil {
			resp["error"] = map[string]any{"code": rpcErr.Code, "message": rpcErr.Message}
		} else {
			resp["result"] = result
		}

		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
}

type jsonrpcError struct {
	Code    int
	Message string
}

func TestGetNonceAtTranslatesContractAddressNotFoundToZero(t *testing.T) {
	server := jsonrpcServer(t, map[string]func(params []json.RawMessage) (any, *jsonrpcError){
		"starknet_getNonce": func(params []json.RawMessage) (any, *jsonrpcError) {
			return nil, &jsonrpcError{Code: rpcErrorContractAddressNotFound, Message: "Contract not found"}
		},
	})
	defer server.Close()

	factory, err := DialRPCReaderFactory(context.Background(), server.URL)
	require.NoError(t, err)

	nonce, err := factory.ReaderAtLatestBlock().GetNonceAt(context.Background(), sampleAddress())
	require.NoError(t, err)
	require.EqualValues(t, 0, nonce)
}

func TestGetBlockInfoTranslatesBlockNotFound(t *testing.T) {
	server := jsonrpcServer(t, map[string]func(params []json.RawMessage) (any, *jsonrpcError){
		"starknet_getBlockWithTxHashes": func(params []json.RawMessage) (any, *jsonrpcError) {
			return nil, &jsonrpcError{Code: rpcErrorBlockNotFound, Message: "Block not found"}
		},
	})
	defer server.Close()

	factory, err := DialRPCReaderFactory(context.Background(), server.URL)
	require.NoError(t, err)

	_, err = factory.ReaderAtBlock(7).GetBlockInfo(context.Background())
	require.Error(t, err)
	var notFound *ErrBlockNotFound
	require.ErrorAs(t, err, &notFound)
}

func TestGetBlockInfoParsesGasPrices(t *testing.T) {
	server := jsonrpcServer(t, map[string]func(params []json.RawMessage) (any, *jsonrpcError){
		"starknet_getBlockWithTxHashes": func(params []json.RawMessage) (any, *jsonrpcError) {
			return map[string]any{
				"block_number":      uint64(42),
				"timestamp":         uint64(1700000000),
				"sequencer_address": sampleAddress().Hex(),
				"l1_gas_price": map[string]any{
					"price_in_wei": "0x3b9aca00",
					"price_in_fri": "0x5f5e100",
				},
				"l1_data_gas_price": map[string]any{
					"price_in_wei": "0x1",
					"price_in_fri": "0x1",
				},
				"l1_da_mode": "CALLDATA",
			}, nil
		},
	})
	defer server.Close()

	factory, err := DialRPCReaderFactory(context.Background(), server.URL)
	require.NoError(t, err)

	info, err := factory.ReaderAtLatestBlock().GetBlockInfo(context.Background())
	require.NoError(t, err)
	require.EqualValues(t, 42, info.BlockNumber)
	require.EqualValues(t, 0x3b9aca00, info.GasPrices.EthL1)
	require.EqualValues(t, 0x5f5e100, info.GasPrices.StrkL1)
	require.False(t, info.UseKZGDataAvail)
}
