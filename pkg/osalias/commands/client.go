package commands

import (
	"context"
	"os"

	"emperror.dev/errors"
	"github.com/rancher/opni-osalias/pkg/config"
	"github.com/rancher/opni-osalias/pkg/config/v1beta1"
	"github.com/rancher/opni-osalias/pkg/logger"
	"github.com/rancher/opni-osalias/pkg/opensearch/opensearch"
	"github.com/spf13/cobra"
)

// ClientFlags holds the connection settings shared by every command that
// talks to the cluster. Explicit flags take precedence over the config file.
type ClientFlags struct {
	ConfigPath         string
	Addresses          []string
	Username           string
	Password           string
	CACertFile         string
	InsecureSkipVerify bool
	LogLevel           string
}

func ConfigureClientCommand(cmd *cobra.Command, f *ClientFlags) {
	cmd.PersistentFlags().StringVarP(&f.ConfigPath, "config", "c", "", "Path to an OpensearchClientConfig file (default: auto-detect)")
	cmd.PersistentFlags().StringSliceVarP(&f.Addresses, "address", "a", nil, "Opensearch URL (may be repeated)")
	cmd.PersistentFlags().StringVarP(&f.Username, "username", "u", "", "Basic auth username")
	cmd.PersistentFlags().StringVar(&f.Password, "password", "", "Basic auth password (or set "+v1beta1.PasswordEnvVar+")")
	cmd.PersistentFlags().StringVar(&f.CACertFile, "ca-cert", "", "Path to a PEM encoded CA bundle")
	cmd.PersistentFlags().BoolVar(&f.InsecureSkipVerify, "insecure-skip-verify", false, "Skip TLS certificate verification")
	cmd.PersistentFlags().StringVar(&f.LogLevel, "log-level", "", "Log level (debug|info|warn|error)")
}

// Resolve merges the config file, if any, with the environment and the
// flags that were set on cmd, in that order of increasing precedence.
func (f *ClientFlags) Resolve(cmd *cobra.Command) (*v1beta1.OpensearchClientConfigSpec, error) {
	spec := &v1beta1.OpensearchClientConfigSpec{}

	level, err := logger.ParseLevel(f.LogLevel)
	if err != nil {
		return nil, err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logger.AddToContext(ctx, logger.New(logger.WithLogLevel(level), logger.WithWriter(cmd.ErrOrStderr())))

	path := f.ConfigPath
	if path == "" {
		found, err := config.FindConfig()
		switch {
		case err == nil:
			path = found
		case !errors.Is(err, config.ErrConfigNotFound):
			return nil, err
		}
	}
	if path != "" {
		cfg, err := config.LoadClientConfig(ctx, path)
		if err != nil {
			return nil, err
		}
		spec = &cfg.Spec
	} else {
		spec.ApplyEnvironment()
	}

	flags := cmd.Flags()
	if flags.Changed("address") {
		spec.URLs = f.Addresses
	}
	if flags.Changed("username") {
		spec.Username = f.Username
	}
	if flags.Changed("password") {
		spec.Password = f.Password
	}
	if flags.Changed("ca-cert") {
		spec.CACertFile = f.CACertFile
	}
	if flags.Changed("insecure-skip-verify") {
		spec.InsecureSkipVerify = f.InsecureSkipVerify
	}
	if flags.Changed("log-level") {
		spec.LogLevel = f.LogLevel
	}
	spec.SetDefaults()
	return spec, nil
}

func (f *ClientFlags) NewClient(cmd *cobra.Command, opts ...opensearch.ClientOption) (*opensearch.Client, logger.ExtendedSugaredLogger, error) {
	spec, err := f.Resolve(cmd)
	if err != nil {
		return nil, nil, err
	}
	level, err := logger.ParseLevel(spec.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	lg := logger.New(logger.WithLogLevel(level), logger.WithWriter(cmd.ErrOrStderr()))

	var caCert []byte
	if spec.CACertFile != "" {
		caCert, err = os.ReadFile(spec.CACertFile)
		if err != nil {
			return nil, nil, errors.Wrap(err, "failed to read ca cert")
		}
	}

	client, err := opensearch.NewClient(opensearch.ClientConfig{
		URLs:               spec.URLs,
		Username:           spec.Username,
		Password:           spec.Password,
		CACert:             caCert,
		InsecureSkipVerify: spec.InsecureSkipVerify,
		MaxRetries:         spec.MaxRetries,
		DisableRetry:       spec.DisableRetry,
	}, append([]opensearch.ClientOption{opensearch.WithLogger(lg)}, opts...)...)
	if err != nil {
		return nil, nil, err
	}
	return client, lg, nil
}
