package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"flacmirror/internal/config"
	"flacmirror/internal/deps"
)

func newDepsCommand() *cobra.Command {
	var configPath string
	var encType string

	cmd := &cobra.Command{
		Use:   "deps",
		Short: "Report availability of the external encoder tools",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format := encType
			if format == "" {
				cfg, _, _, err := config.Load(configPath)
				if err != nil {
					return err
				}
				format = cfg.Encoder.Type
			}
			reqs := deps.ForFormat(format)
			if reqs == nil {
				return fmt.Errorf("unsupported output format %q", format)
			}

			rows := make([][]string, 0, len(reqs))
			missing := 0
			for _, status := range deps.CheckBinaries(reqs) {
				state := "available"
				if !status.Available {
					state = status.Detail
					if !status.Optional {
						missing++
					}
				}
				need := "required"
				if status.Optional {
					need = "optional"
				}
				rows = append(rows, []string{status.Command, need, state})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Tool", "Need", "Status"}, rows))

			if missing > 0 {
				return fmt.Errorf("%d required tool(s) missing for the %s encoder", missing, format)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "configuration file path")
	cmd.Flags().StringVarP(&encType, "type", "t", "", "output transcode format to check (default: configured format)")
	return cmd
}
