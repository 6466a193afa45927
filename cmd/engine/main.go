package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/lintang-b-s/navigatorx-transit/pkg/engine"
	"github.com/lintang-b-s/navigatorx-transit/pkg/http"
	"github.com/lintang-b-s/navigatorx-transit/pkg/http/usecases"
	"github.com/lintang-b-s/navigatorx-transit/pkg/logger"
	"github.com/lintang-b-s/navigatorx-transit/pkg/snapshot"
	"github.com/lintang-b-s/navigatorx-transit/pkg/spatialindex"
	"github.com/lintang-b-s/navigatorx-transit/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	snapshotPath = flag.String("snapshot", "", "transit network snapshot (.json, .yaml), overrides SNAPSHOT_PATH")
	useRateLimit = flag.Bool("rate_limit", false, "enable the global rate limiter (RATE_LIMIT_RPS, RATE_LIMIT_BURST)")
)

func main() {
	flag.Parse()
	if err := util.ReadConfig(); err != nil {
		panic(err)
	}
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer logger.Sync() //nolint:errcheck // ignore

	path := viper.GetString("SNAPSHOT_PATH")
	if *snapshotPath != "" {
		path = *snapshotPath
	}
	snap, err := snapshot.LoadFile(path)
	if err != nil {
		logger.Fatal("could not load transit network snapshot", zap.String("path", path), zap.Error(err))
	}

	routingEngine, err := engine.NewEngine(snap.Stops, snap.Routes, logger, viper.GetInt("RESULT_CACHE_SIZE"))
	if err != nil {
		logger.Fatal("could not create routing engine", zap.Error(err))
	}

	rtree := spatialindex.NewRtree()
	rtree.Build(snap.Stops, logger)

	routingService := usecases.NewRoutingService(logger, routingEngine, rtree,
		viper.GetFloat64("NEAREST_STOP_RADIUS_KM"), viper.GetInt("BATCH_WORKERS"))

	api := http.NewServer(logger)

	ctx, cleanup, err := NewContext()
	if err != nil {
		panic(err)
	}
	if _, err := api.Use(ctx, logger, *useRateLimit, routingService); err != nil {
		logger.Fatal("could not start api", zap.Error(err))
	}
	go reloadOnHangup(ctx, logger, path, routingService)

	sig := http.GracefulShutdown()
	cleanup()
	if err := api.Wait(); err != nil {
		logger.Error("api stopped with error", zap.Error(err))
	}

	logger.Info("Navigatorx Transit Engine Server Stopped", zap.String("signal", sig.String()))
}

// reloadOnHangup. SIGHUP reloads the snapshot file. a file that fails to load keeps the current network.
func reloadOnHangup(ctx context.Context, log *zap.Logger, path string, routingService *usecases.RoutingService) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
			log.Info("reloading transit network snapshot", zap.String("path", path))
			snap, err := snapshot.LoadFile(path)
			if err != nil {
				log.Error("could not reload snapshot, keeping the current network", zap.String("path", path), zap.Error(err))
				continue
			}
			if err := routingService.ReplaceSnapshot(snap.Stops, snap.Routes); err != nil {
				log.Error("could not replace snapshot", zap.Error(err))
			}
		}
	}
}

func NewContext() (context.Context, func(), error) {
	ctx, cancel := context.WithCancel(context.Background())
	cb := func() {
		cancel()
	}

	return ctx, cb, nil
}
