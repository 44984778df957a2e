package gateway

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/ethereum/go-ethereum/log"
	"github.com/google/uuid"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"github.com/starknet-sequencer/mempool/componentbus"
	"github.com/starknet-sequencer/mempool/core/types"
)

// MempoolSubmitter is what the HTTP layer hands an admitted transaction to:
// the client-side handle for the mempool actor's add_tx call.
type MempoolSubmitter interface {
	AddTx(ctx context.Context, input types.MempoolInput) error
}

// Server is the gateway's HTTP front door: POST /add_tx and GET /is_alive.
// It is the single place external errors get turned into status codes.
type Server struct {
	pipeline *Pipeline
	mempool  MempoolSubmitter
	handler  http.Handler
}

// NewServer wires the pipeline and mempool submitter behind a CORS-wrapped
// mux, the same shape go-ethereum's node package wraps its RPC handler in.
func NewServer(pipeline *Pipeline, mempool MempoolSubmitter, allowedOrigins []string) *Server {
	mux := http.NewServeMux()
	s := &Server{pipeline: pipeline, mempool: mempool}
	limiter := rate.NewLimiter(rate.Limit(defaultAddTxRPS), defaultAddTxBurst)
	mux.HandleFunc("/add_tx", rateLimitMiddleware(limiter, s.handleAddTx))
	mux.HandleFunc("/is_alive", s.handleIsAlive)

	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodPost, http.MethodGet},
		AllowedHeaders: []string{"Content-Type"},
	})
	s.handler = c.Handler(mux)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

type addTxWireEnvelope struct {
	Type    string `json:"type"`
	Version string `json:"version"`
}

func (s *Server) handleAddTx(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	requestID := uuid.New().String()

	body, err := io.ReadAll(io.LimitReader(r.Body, 8<<20))
	if err != nil {
		http.Error(w, "failed to read request body", http.StatusBadRequest)
		return
	}

	var envelope addTxWireEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		http.Error(w, "malformed json", http.StatusBadRequest)
		return
	}

	tx, err := types.UnmarshalTransactionJSON(body)
	if err != nil {
		http.Error(w, "malformed transaction: "+err.Error(), http.StatusBadRequest)
		return
	}

	log.Debug("Received add_tx request", "request_id", requestID, "type", envelope.Type)

	txHash, input, err := s.pipeline.Admit(r.Context(), envelope.Version, tx)
	if err != nil {
		writeError(w, requestID, err)
		return
	}

	if err := s.mempool.AddTx(r.Context(), input); err != nil {
		writeError(w, requestID, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	encoded, _ := json.Marshal(txHash.Hex())
	_, _ = w.Write(encoded)
}

func (s *Server) handleIsAlive(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// writeError maps a typed pipeline/mempool error to a status code. The HTTP
// boundary is the single place these errors get converted to status codes.
func writeError(w http.ResponseWriter, requestID string, err error) {
	status := statusForError(err)
	log.Warn("Rejected transaction", "request_id", requestID, "error", err, "status", status)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

func statusForError(err error) int {
	switch err.(type) {
	case *ErrInternalCompilation,
		*componentbus.ErrChannelSendError,
		*componentbus.ErrChannelNoResponse,
		*componentbus.ErrUnexpectedResponse:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}
