package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-i2p/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/titellus/geonetwork-pnf/lib/config"
)

var log = logger.GetGoI2PLogger()

const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitConfigError = 2
	ExitLayoutError = 3
)

type appContext struct {
	properties []string
}

// NewRootCmd builds the geonetwork-pnf command tree.
func NewRootCmd() *cobra.Command {
	ctx := &appContext{}
	cmd := &cobra.Command{
		Use:   "geonetwork-pnf",
		Short: "Resolve and serve the data directory of a catalogue node",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.InitConfig(); err != nil {
				return newExitCodeError(ExitConfigError, err)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&config.CfgFile, "config", "", "config file (default $HOME/"+config.BaseDirName+"/config.yaml)")
	flags.String("webapp-dir", "", "web application directory (default current directory)")
	flags.String("webapp-name", config.DefaultWebappName, "web application name, prefix of the lookup keys")
	flags.String("node-id", config.DefaultNodeID, "node identifier")
	flags.Bool("default-node", true, "share the unsuffixed data directory")
	flags.StringArrayVarP(&ctx.properties, "property", "D", nil, "runtime property key=value, repeatable")

	bind := map[string]string{
		"webapp.dir":   "webapp-dir",
		"webapp.name":  "webapp-name",
		"node.id":      "node-id",
		"node.default": "default-node",
	}
	for key, flag := range bind {
		if err := viper.BindPFlag(key, flags.Lookup(flag)); err != nil {
			log.WithError(err).WithField("flag", flag).Warn("cannot bind flag")
		}
	}

	cmd.AddCommand(newResolveCmd(ctx))
	cmd.AddCommand(newServeCmd(ctx))

	return cmd
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return mapExitCode(err)
	}
	return ExitOK
}

func mapExitCode(err error) int {
	var codeErr *exitCodeError
	if errors.As(err, &codeErr) {
		return codeErr.code
	}
	return ExitFailure
}

type exitCodeError struct {
	code int
	err  error
}

func newExitCodeError(code int, err error) *exitCodeError {
	return &exitCodeError{code: code, err: err}
}

func (e *exitCodeError) Error() string {
	return e.err.Error()
}

func (e *exitCodeError) Unwrap() error {
	return e.err
}
