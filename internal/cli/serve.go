package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inklab/inkdoc/internal/server"
	"github.com/inklab/inkdoc/pkg/store"
)

// newServeCmd creates the serve command.
func newServeCmd() *cobra.Command {
	var (
		listen  string
		backend string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the document HTTP API",
		Long: `Serve runs the document HTTP API until interrupted.

The persistence backend comes from the config file (memory, file, redis
or mongo) and can be overridden with --store. Connection details for
redis and mongo are read from the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			cfg := configFromContext(ctx)

			if listen == "" {
				listen = cfg.Listen
			}
			if backend == "" {
				backend = cfg.Store
			}

			st, err := buildStore(ctx, backend, cfg)
			if err != nil {
				return err
			}
			defer func() {
				if err := st.Close(); err != nil {
					logger.Warn("closing store", "err", err)
				}
			}()

			logger.Info("starting server", "store", backend)
			printInfo("serving document API on %s (%s store)", listen, backend)

			return server.New(st, logger).ListenAndServe(ctx, listen)
		},
	}

	cmd.Flags().StringVarP(&listen, "listen", "l", "", "listen address (default from config)")
	cmd.Flags().StringVar(&backend, "store", "", "persistence backend: memory, file, redis, mongo (default from config)")
	return cmd
}

// buildStore constructs the persistence backend named by kind.
func buildStore(ctx context.Context, kind string, cfg Config) (store.Store, error) {
	switch kind {
	case "memory":
		return store.NewMemoryStore(), nil
	case "file":
		return store.NewFileStore(cfg.StoreDir)
	case "redis":
		return store.NewRedisStore(ctx, store.RedisConfig{Addr: cfg.RedisAddr})
	case "mongo":
		return store.NewMongoStore(ctx, store.MongoConfig{URI: cfg.MongoURI})
	case "null":
		return store.NewNullStore(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q (want memory, file, redis or mongo)", kind)
	}
}
