package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hupe1980/sparsegrid"
	"github.com/hupe1980/sparsegrid/blobstore"
	"github.com/hupe1980/sparsegrid/blobstore/minio"
	"github.com/hupe1980/sparsegrid/blobstore/s3"
	"github.com/hupe1980/sparsegrid/internal/cache"
	"github.com/hupe1980/sparsegrid/internal/config"
	"github.com/hupe1980/sparsegrid/internal/resource"
)

// app holds what every subcommand needs once the configuration is loaded.
type app struct {
	cfg    *config.Config
	logger *sparsegrid.Logger
	store  *sparsegrid.Store
	opts   []sparsegrid.Option
}

type rootFlags struct {
	configPath string
	backend    string
	root       string
	bucket     string
	prefix     string
	logLevel   string
	workers    int
}

func newRootCmd() *cobra.Command {
	var (
		flags rootFlags
		a     app
	)

	cmd := &cobra.Command{
		Use:           "sparsegrid",
		Short:         "Inspect, combine and evaluate interpolation grids",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd, flags)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", os.Getenv("SPARSEGRID_CONFIG"), "YAML configuration file")
	pf.StringVar(&flags.backend, "backend", "", "store backend: local, memory, minio or s3")
	pf.StringVar(&flags.root, "root", "", "directory of the local backend")
	pf.StringVar(&flags.bucket, "bucket", "", "bucket of the minio and s3 backends")
	pf.StringVar(&flags.prefix, "prefix", "", "key prefix inside the bucket")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn or error")
	pf.IntVarP(&flags.workers, "workers", "j", 0, "maximum number of concurrent convolutions")

	cmd.AddCommand(
		newLsCmd(&a),
		newRmCmd(&a),
		newInfoCmd(&a),
		newSubgridsCmd(&a),
		newMergeCmd(&a),
		newScaleCmd(&a),
		newOptimizeCmd(&a),
		newDeleteCmd(&a),
		newConvolveCmd(&a),
		newBasisCmd(&a),
		newCCCmd(&a),
		newToyCmd(&a),
	)
	return cmd
}

func (a *app) init(cmd *cobra.Command, flags rootFlags) error {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return err
	}

	f := cmd.Flags()
	if f.Changed("backend") {
		cfg.Store.Backend = flags.backend
	}
	if f.Changed("root") {
		cfg.Store.Root = flags.root
	}
	if f.Changed("bucket") {
		cfg.Store.Bucket = flags.bucket
	}
	if f.Changed("prefix") {
		cfg.Store.Prefix = flags.prefix
	}
	if f.Changed("log-level") {
		cfg.Log.Level = flags.logLevel
	}
	if f.Changed("workers") {
		cfg.Resources.MaxWorkers = int64(flags.workers)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, _ := cfg.LogLevel()
	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler = slog.NewTextHandler(cmd.ErrOrStderr(), handlerOpts)
	if strings.EqualFold(cfg.Log.Format, "json") {
		handler = slog.NewJSONHandler(cmd.ErrOrStderr(), handlerOpts)
	}
	a.logger = sparsegrid.NewLogger(handler)

	compression, _ := cfg.Compression()
	cd, _ := cfg.Codec()

	a.opts = []sparsegrid.Option{
		sparsegrid.WithLogger(a.logger),
		sparsegrid.WithCodec(cd),
		sparsegrid.WithCompression(compression),
		sparsegrid.WithResourceConfig(cfg.Resources),
	}

	blobs, err := openBlobStore(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.store = sparsegrid.NewStore(blobs, a.opts...)
	return nil
}

func openBlobStore(ctx context.Context, cfg *config.Config) (blobstore.BlobStore, error) {
	var (
		blobs blobstore.BlobStore
		err   error
	)

	sc := cfg.Store
	switch sc.Backend {
	case config.BackendLocal:
		blobs = blobstore.NewLocalStore(sc.Root)
	case config.BackendMemory:
		blobs = blobstore.NewMemoryStore()
	case config.BackendMinIO:
		blobs, err = minio.Dial(sc.Endpoint, sc.AccessKey, sc.SecretKey, sc.Secure, sc.Bucket, sc.Prefix)
	case config.BackendS3:
		opts := []s3.Option{s3.WithPrefix(sc.Prefix)}
		if sc.Region != "" {
			opts = append(opts, s3.WithRegion(sc.Region))
		}
		if sc.Endpoint != "" {
			opts = append(opts, s3.WithEndpoint(sc.Endpoint))
		}
		blobs, err = s3.New(ctx, sc.Bucket, opts...)
	default:
		err = fmt.Errorf("unknown store backend %q", sc.Backend)
	}
	if err != nil {
		return nil, err
	}

	if sc.CacheBytes > 0 {
		rc := resource.NewController(cfg.Resources)
		blobs = blobstore.NewCachingStore(blobs, cache.NewLRU(sc.CacheBytes, rc))
	}
	return blobs, nil
}
