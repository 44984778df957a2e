package main

import "github.com/urfave/cli/v2"

var (
	configFileFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "TOML configuration file path",
	}
	httpAddrFlag = &cli.StringFlag{
		Name:  "http.addr",
		Usage: "HTTP listen address for the gateway",
		Value: "0.0.0.0",
	}
	httpPortFlag = &cli.IntFlag{
		Name:  "http.port",
		Usage: "HTTP listen port for the gateway",
		Value: 8080,
	}
	mempoolCapacityFlag = &cli.IntFlag{
		Name:  "mempool.channel-capacity",
		Usage: "bounded channel capacity for the mempool actor's inbound requests",
		Value: 32,
	}
	compilerMaxConcurrentFlag = &cli.IntFlag{
		Name:  "compiler.max-concurrent",
		Usage: "maximum number of in-flight Sierra-to-Casm compilations",
		Value: 4,
	}
	stateReaderEndpointFlag = &cli.StringFlag{
		Name:  "state-reader.endpoint",
		Usage: "JSON-RPC endpoint URL the state reader dials",
		Value: "http://127.0.0.1:9545",
	}
	verbosityFlag = &cli.IntFlag{
		Name:  "verbosity",
		Usage: "log verbosity: 0=crit, 1=error, 2=warn, 3=info, 4=debug, 5=trace",
		Value: 3,
	}
	logJSONFlag = &cli.BoolFlag{
		Name:  "log.json",
		Usage: "emit logs as JSON instead of human-readable terminal output",
	}
	logFileFlag = &cli.StringFlag{
		Name:  "log.file",
		Usage: "rotate logs to this file path instead of stderr (uses lumberjack for rotation)",
	}
	gatewayExecuteFlag = &cli.BoolFlag{
		Name:  "gateway.execute",
		Usage: "start the HTTP gateway actor",
		Value: true,
	}
	mempoolExecuteFlag = &cli.BoolFlag{
		Name:  "mempool.execute",
		Usage: "start the in-memory mempool actor and its batcher poller",
		Value: true,
	}
)

var nodeFlags = []cli.Flag{
	configFileFlag,
	httpAddrFlag,
	httpPortFlag,
	mempoolCapacityFlag,
	compilerMaxConcurrentFlag,
	stateReaderEndpointFlag,
	verbosityFlag,
	logJSONFlag,
	logFileFlag,
	gatewayExecuteFlag,
	mempoolExecuteFlag,
}
