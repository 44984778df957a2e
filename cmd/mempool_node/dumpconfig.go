package main

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"
)

// dumpConfigCommand prints the effective configuration (file + flag
// overlay) as a table, the operational counterpart to cmd/geth's
// "dumpconfig" subcommand.
var dumpConfigCommand = &cli.Command{
	Name:  "dumpconfig",
	Usage: "print the effective configuration and exit",
	Flags: nodeFlags,
	Action: func(ctx *cli.Context) error {
		cfg, err := buildConfig(ctx)
		if err != nil {
			return err
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Section", "Field", "Value"})

		table.Append([]string{"network", "ip", cfg.Network.IP})
		table.Append([]string{"network", "port", fmt.Sprintf("%d", cfg.Network.Port)})
		table.Append([]string{"stateless", "max_calldata_length", fmt.Sprintf("%d", cfg.Stateless.MaxCalldataLength)})
		table.Append([]string{"stateless", "max_signature_length", fmt.Sprintf("%d", cfg.Stateless.MaxSignatureLength)})
		table.Append([]string{"stateless", "max_bytecode_size", fmt.Sprintf("%d", cfg.Stateless.MaxBytecodeSize)})
		table.Append([]string{"stateless", "max_raw_class_size", fmt.Sprintf("%d", cfg.Stateless.MaxRawClassSize)})
		table.Append([]string{"stateful", "chain_id", cfg.Stateful.ChainInfo.ChainID})
		table.Append([]string{"stateful", "validate_max_n_steps", fmt.Sprintf("%d", cfg.Stateful.ValidateMaxNSteps)})
		table.Append([]string{"compiler", "max_concurrent_workers", fmt.Sprintf("%d", cfg.CompilerMaxWorkers)})
		table.Append([]string{"mempool", "channel_capacity", fmt.Sprintf("%d", cfg.MempoolChannelCap)})
		table.Append([]string{"state-reader", "rpc_endpoint", cfg.StateReaderRPCURL})
		table.Append([]string{"modules", "gateway_execute", fmt.Sprintf("%t", cfg.GatewayExecute)})
		table.Append([]string{"modules", "mempool_execute", fmt.Sprintf("%t", cfg.MempoolExecute)})

		table.Render()
		return nil
	},
}
