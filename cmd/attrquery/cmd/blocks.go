package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/krew-solutions/ascetic-attr-go/asceticattr/vso"
)

func newBlocksCmd(v *viper.Viper) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "blocks",
		Short: "Print the VSO query blocks for a query document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := readTree(v, cmd.InOrStdin(), file)
			if err != nil {
				return err
			}
			blocks, err := vso.Blocks(tree)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(blocks)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "-", "query document, - for stdin")
	return cmd
}
