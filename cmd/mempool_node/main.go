// Command mempool_node boots the transaction-admission and mempool core: the
// HTTP gateway, the Sierra-to-Casm compiler pool, the state reader, the
// in-memory mempool actor, and the mock batcher that drains it, wired
// together over the component bus.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ethereum/go-ethereum/log"

	_ "go.uber.org/automaxprocs"
)

func main() {
	app := &cli.App{
		Name:  "mempool_node",
		Usage: "starknet-style sequencer transaction-admission and mempool core",
		Flags: nodeFlags,
		Commands: []*cli.Command{
			dumpConfigCommand,
		},
		Action: runAction,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runAction(ctx *cli.Context) error {
	setupLogging(ctx)

	cfg, err := buildConfig(ctx)
	if err != nil {
		return fmt.Errorf("mempool_node: loading config: %w", err)
	}

	n, err := newNode(cfg)
	if err != nil {
		return err
	}
	return n.run()
}

// setupLogging wires go-ethereum's slog-backed logger to either a
// colorable terminal writer or a rotating file, matching the
// cmd/geth-style verbosity/json/file flag trio.
func setupLogging(ctx *cli.Context) {
	var writer io.Writer = colorable.NewColorableStderr()
	useColor := isatty.IsTerminal(os.Stderr.Fd())

	if path := ctx.String(logFileFlag.Name); path != "" {
		writer = &lumberjack.Logger{
			Filename:   path,
			MaxSize:    100,
			MaxBackups: 5,
			MaxAge:     28,
		}
		useColor = false
	}

	level := log.FromLegacyLevel(ctx.Int(verbosityFlag.Name))

	var handler log.Handler
	if ctx.Bool(logJSONFlag.Name) {
		handler = log.JSONHandler(writer)
	} else {
		handler = log.NewTerminalHandler(writer, useColor)
	}
	log.SetDefault(log.NewLogger(log.LvlFilterHandler(level, handler)))
}
