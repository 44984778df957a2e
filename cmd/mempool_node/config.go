package main

import (
	"os"
	"reflect"

	"github.com/naoina/toml"
	"github.com/urfave/cli/v2"

	"github.com/starknet-sequencer/mempool/gateway"
	"github.com/starknet-sequencer/mempool/sierracompiler"
)

// tomlSettings matches the field-name/key conventions go-ethereum's own
// cmd/geth/config.go uses for its TOML config file: field names pass
// through unchanged. Unrecognized config keys are ignored, not reported
// as errors.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string { return key },
	FieldToKey:    func(rt reflect.Type, field string) string { return field },
	MissingField: func(rt reflect.Type, field string) error {
		return nil
	},
}

// NetworkConfig is the gateway's HTTP listen address.
type NetworkConfig struct {
	IP   string
	Port uint16
}

// nodeConfig is the top-level config file shape: one section per wired
// component. GatewayExecute/MempoolExecute let either actor be disabled
// independently at boot, e.g. to run a mempool-only or gateway-only node
// in tests.
type nodeConfig struct {
	Network            NetworkConfig
	Stateless          gateway.StatelessConfig
	Stateful           gateway.StatefulConfig
	Compiler           sierracompiler.Config
	MempoolChannelCap  int
	CompilerMaxWorkers int
	StateReaderRPCURL  string
	GatewayExecute     bool
	MempoolExecute     bool
}

func defaultNodeConfig() nodeConfig {
	return nodeConfig{
		Network:            NetworkConfig{IP: "0.0.0.0", Port: 8080},
		Stateless:          gateway.DefaultStatelessConfig(),
		Stateful:           gateway.DefaultStatefulConfig(),
		Compiler:           sierracompiler.DefaultConfig(),
		MempoolChannelCap:  32,
		CompilerMaxWorkers: 4,
		StateReaderRPCURL:  "http://127.0.0.1:9545",
		GatewayExecute:     true,
		MempoolExecute:     true,
	}
}

// loadConfigFile reads and decodes a TOML config file into cfg, the same
// pattern go-ethereum's loadConfig uses.
func loadConfigFile(path string, cfg *nodeConfig) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	err = tomlSettings.NewDecoder(f).Decode(cfg)
	if _, ok := err.(*toml.LineError); ok {
		return err
	}
	return err
}

// applyFlags overlays CLI flag values on top of the file-loaded (or
// default) configuration, CLI taking precedence when explicitly set.
func applyFlags(ctx *cli.Context, cfg *nodeConfig) {
	if ctx.IsSet(httpAddrFlag.Name) {
		cfg.Network.IP = ctx.String(httpAddrFlag.Name)
	}
	if ctx.IsSet(httpPortFlag.Name) {
		cfg.Network.Port = uint16(ctx.Int(httpPortFlag.Name))
	}
	if ctx.IsSet(mempoolCapacityFlag.Name) {
		cfg.MempoolChannelCap = ctx.Int(mempoolCapacityFlag.Name)
	}
	if ctx.IsSet(compilerMaxConcurrentFlag.Name) {
		cfg.CompilerMaxWorkers = ctx.Int(compilerMaxConcurrentFlag.Name)
	}
	if ctx.IsSet(stateReaderEndpointFlag.Name) {
		cfg.StateReaderRPCURL = ctx.String(stateReaderEndpointFlag.Name)
	}
	if ctx.IsSet(gatewayExecuteFlag.Name) {
		cfg.GatewayExecute = ctx.Bool(gatewayExecuteFlag.Name)
	}
	if ctx.IsSet(mempoolExecuteFlag.Name) {
		cfg.MempoolExecute = ctx.Bool(mempoolExecuteFlag.Name)
	}
}

func buildConfig(ctx *cli.Context) (nodeConfig, error) {
	cfg := defaultNodeConfig()
	if path := ctx.String(configFileFlag.Name); path != "" {
		if err := loadConfigFile(path, &cfg); err != nil {
			return cfg, err
		}
	}
	applyFlags(ctx, &cfg)
	return cfg, nil
}
