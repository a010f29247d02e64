package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/krew-solutions/ascetic-attr-go/asceticattr/catalog"
)

type compiledQuery struct {
	SQL    string `yaml:"sql"`
	Params []any  `yaml:"params"`
}

func newCompileCmd(v *viper.Viper) *cobra.Command {
	var file string
	var limit int
	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Print the SQL search for a query document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := readTree(v, cmd.InOrStdin(), file)
			if err != nil {
				return err
			}
			compiler, err := newCompiler(v)
			if err != nil {
				return err
			}
			sql, params, err := catalog.NewSearch(tree, compiler, catalog.WithLimit(limit)).SQL()
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			defer enc.Close()
			return enc.Encode(compiledQuery{SQL: sql, Params: params})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "-", "query document, - for stdin")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of ids, 0 for no limit")
	return cmd
}
