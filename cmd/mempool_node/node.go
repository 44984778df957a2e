package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/ethereum/go-ethereum/log"

	"github.com/starknet-sequencer/mempool/batcher"
	"github.com/starknet-sequencer/mempool/componentbus"
	"github.com/starknet-sequencer/mempool/gateway"
	"github.com/starknet-sequencer/mempool/mempool"
	"github.com/starknet-sequencer/mempool/sierracompiler"
	"github.com/starknet-sequencer/mempool/statereader"
)

const defaultBatcherInterval = 2 * time.Second

// node holds every wired component for the lifetime of one process: one
// actor per component type, started as its own goroutine.
type node struct {
	cfg      nodeConfig
	ctx      context.Context
	pool     *mempool.Pool
	bus      *componentbus.Bus[componentbus.MempoolRequest, componentbus.MempoolResponse]
	server   *gateway.Server
	batcher  *batcher.MockBatcher
	cancelFn context.CancelFunc
}

func newNode(cfg nodeConfig) (*node, error) {
	ctx, cancel := context.WithCancel(context.Background())

	readerFactory, err := statereader.DialRPCReaderFactory(ctx, cfg.StateReaderRPCURL)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("mempool_node: dialing state reader: %w", err)
	}

	compiler := sierracompiler.NewCompiler(cfg.Compiler, cfg.CompilerMaxWorkers)
	pipeline := gateway.NewPipeline(cfg.Stateless, cfg.Stateful, compiler, readerFactory)

	pool := mempool.New()
	bus := componentbus.NewBus[componentbus.MempoolRequest, componentbus.MempoolResponse]("mempool", cfg.MempoolChannelCap)
	mempoolClient := componentbus.NewMempoolClient(bus)

	n := &node{cfg: cfg, ctx: ctx, pool: pool, bus: bus, cancelFn: cancel}

	if cfg.MempoolExecute {
		go componentbus.Serve(ctx, bus, componentbus.NewMempoolHandler(pool))
		mockBatcher := batcher.New(mempoolClient, 16, defaultBatcherInterval)
		n.batcher = mockBatcher
		go mockBatcher.Run(ctx)
	} else {
		log.Info("Mempool actor disabled at boot (mempool.execute=false)")
	}

	if cfg.GatewayExecute {
		n.server = gateway.NewServer(pipeline, mempoolClient, []string{"*"})
	} else {
		log.Info("Gateway actor disabled at boot (gateway.execute=false)")
	}

	return n, nil
}

func (n *node) listenAddr() string {
	return fmt.Sprintf("%s:%d", n.cfg.Network.IP, n.cfg.Network.Port)
}

// run starts the HTTP gateway and blocks until it exits, or, when the
// gateway actor is disabled, blocks until an interrupt signal arrives so
// any still-running actors (e.g. the mempool) keep serving. Actor tasks
// are launched at boot and shut down gracefully when their bus is closed.
func (n *node) run() error {
	defer n.cancelFn()
	if !n.cfg.GatewayExecute {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt)
		select {
		case <-sigCh:
		case <-n.ctx.Done():
		}
		return nil
	}
	addr := n.listenAddr()
	log.Info("Starting mempool node HTTP gateway", "addr", addr)
	return http.ListenAndServe(addr, n.server)
}
