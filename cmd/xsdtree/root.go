package main

import (
	"net/http"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/IndependentIP/xsd-reader/internal/commandline"
	"github.com/IndependentIP/xsd-reader/xsd"
)

const defaultDepth = 3

// An app holds the settings shared by all subcommands.
type app struct {
	cfgFile string
	v       *viper.Viper
	log     *logrus.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New(), log: logrus.New()}
	cmd := &cobra.Command{
		Use:           "xsdtree",
		Short:         "Inspect XML Schema documents and the documents they import",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is $HOME/.xsdtree.yaml)")
	flags.BoolP("debug", "d", false, "log how references are resolved")
	flags.Duration("timeout", xsd.DefaultTimeout, "timeout for fetching documents over HTTP")
	flags.Int("depth", defaultDepth, "levels of nesting to expand")
	a.bind(flags.Lookup("debug"), flags.Lookup("timeout"), flags.Lookup("depth"))

	cmd.AddCommand(
		newElementsCmd(a),
		newTypesCmd(a),
		newImportsCmd(a),
		newFindCmd(a),
		newDumpCmd(a),
	)
	return cmd
}

// bind makes the value of each flag available through the app's
// configuration, under the flag's name.
func (a *app) bind(flags ...*pflag.Flag) {
	for _, f := range flags {
		if err := a.v.BindPFlag(f.Name, f); err != nil {
			panic(err)
		}
	}
}

// initConfig reads the config file and environment, and sets up
// logging.
func (a *app) initConfig(cmd *cobra.Command) error {
	a.log.SetOutput(cmd.ErrOrStderr())
	a.v.SetEnvPrefix("xsdtree")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	if a.cfgFile != "" {
		path, err := homedir.Expand(a.cfgFile)
		if err != nil {
			return err
		}
		a.v.SetConfigFile(path)
		if err := a.v.ReadInConfig(); err != nil {
			return errors.Wrapf(err, "read config %s", path)
		}
	} else if home, err := homedir.Dir(); err == nil {
		a.v.AddConfigPath(home)
		a.v.SetConfigName(".xsdtree")
		a.v.SetConfigType("yaml")
		if err := a.v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return errors.Wrap(err, "read config")
			}
		}
	}

	a.log.SetLevel(logrus.WarnLevel)
	if a.v.GetBool("debug") {
		a.log.SetLevel(logrus.DebugLevel)
	}
	if used := a.v.ConfigFileUsed(); used != "" {
		a.log.Debugf("using config file %s", used)
	}
	return nil
}

func (a *app) open(location string) (*xsd.Reader, error) {
	loader := xsd.SchemeLoader{
		File: xsd.FileLoader{},
		HTTP: xsd.HTTPLoader{Client: &http.Client{Timeout: a.v.GetDuration("timeout")}},
	}
	return xsd.Open(location, xsd.WithLoader(loader), xsd.LogOutput(a.log))
}

// lookup opens the document at location and returns the construct
// at path, or its schema if path is empty.
func (a *app) lookup(location, path string) (*xsd.Reader, *xsd.Node, error) {
	r, err := a.open(location)
	if err != nil {
		return nil, nil, err
	}
	steps := commandline.SplitPath(path)
	n := r.Schema().Lookup(steps...)
	if n == nil {
		return nil, nil, errors.Errorf("%s: nothing at %q", location, path)
	}
	return r, n, nil
}

func pathArg(args []string) string {
	if len(args) > 1 {
		return args[1]
	}
	return ""
}
