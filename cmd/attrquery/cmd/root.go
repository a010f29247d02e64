package cmd

import (
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	attr "github.com/krew-solutions/ascetic-attr-go/asceticattr/attr/domain"
	"github.com/krew-solutions/ascetic-attr-go/asceticattr/attr/domain/query"
	"github.com/krew-solutions/ascetic-attr-go/asceticattr/attr/infrastructure"
	"github.com/krew-solutions/ascetic-attr-go/asceticattr/catalog"
	"github.com/krew-solutions/ascetic-attr-go/asceticattr/vso"
)

type rootOpts struct {
	cfgFile     string
	debugModeOn bool
}

var longRootCmdDescription = `attrquery turns attribute query documents into VSO query blocks
or SQL, and searches an observation table with them.

A document is a YAML mapping of field names to values, combined with
$and, $or and $xor:

  instrument: {$or: [eit, aia]}
  time: {start: 2010-01-01, end: 2010-01-02}
`

// NewRootCmd builds the command tree. Each call has its own configuration.
func NewRootCmd() *cobra.Command {
	v := viper.New()
	opts := &rootOpts{}

	rootCmd := &cobra.Command{
		Use:           "attrquery",
		Short:         "Compile and run attribute queries.",
		Long:          longRootCmdDescription,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(v, opts)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.cfgFile, "config", "", "config file (yaml, json or toml)")
	flags.BoolVarP(&opts.debugModeOn, "debug", "d", false, "turn on debug mode")
	flags.String("log-level", "info", "log level")
	flags.String("table", catalog.DefaultTable, "observation table")
	flags.String("placeholder", "dollar", "SQL placeholder style: dollar or question")
	flags.Bool("strict", false, "fail on any colliding branch when combining alternatives")
	for key, name := range map[string]string{
		"log.level":       "log-level",
		"sql.table":       "table",
		"sql.placeholder": "placeholder",
		"query.strict":    "strict",
	} {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}

	rootCmd.AddCommand(newCompileCmd(v), newBlocksCmd(v), newSearchCmd(v))
	return rootCmd
}

// Execute runs the command tree against os.Args.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		logrus.Errorf("attrquery: %v", err)
		os.Exit(1)
	}
}

// initConfig reads the config file and ATTRQUERY_* environment variables,
// then sets up logging.
func initConfig(v *viper.Viper, opts *rootOpts) error {
	v.SetEnvPrefix("ATTRQUERY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetDefault("database.driver", "pgx")

	if opts.cfgFile != "" {
		v.SetConfigFile(opts.cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return errors.Wrapf(err, "read config %s", opts.cfgFile)
		}
	}

	level, err := logrus.ParseLevel(v.GetString("log.level"))
	if err != nil {
		return errors.Wrap(err, "log.level")
	}
	if opts.debugModeOn {
		level = logrus.DebugLevel
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return nil
}

func readTree(v *viper.Viper, in io.Reader, file string) (attr.Attr, error) {
	var data []byte
	var err error
	if file == "-" {
		data, err = io.ReadAll(in)
	} else {
		data, err = os.ReadFile(file)
	}
	if err != nil {
		return nil, errors.Wrap(err, "read query")
	}

	var parserOpts []query.ParserOption
	if v.GetBool("query.strict") {
		parserOpts = append(parserOpts, query.WithStrictAnd())
	}
	tree, err := query.NewParser(vso.Schema(), parserOpts...).ParseYAML(data)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", file)
	}
	logrus.Debugf("query tree: %s", tree)
	return tree, nil
}

func newCompiler(v *viper.Viper) (*infrastructure.Compiler, error) {
	placeholder, err := infrastructure.ParsePlaceholder(v.GetString("sql.placeholder"))
	if err != nil {
		return nil, err
	}
	return catalog.NewCompiler(v.GetString("sql.table"), infrastructure.WithPlaceholder(placeholder)), nil
}
