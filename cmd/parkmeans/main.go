// Command parkmeans clusters synthetic Gaussian blobs with the parallel
// k-means core and reports timings.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hupe1980/parkmeans"
	"github.com/hupe1980/parkmeans/resource"
	"github.com/hupe1980/parkmeans/snapshot"
	"github.com/hupe1980/parkmeans/testutil"
)

var (
	points     = flag.Int("m", 100_000, "Number of points")
	dims       = flag.Int("n", 32, "Dimensions per point")
	clusters   = flag.Int("k", 8, "Number of clusters")
	epsilon    = flag.Float64("epsilon", 0.1, "Per-cluster cost tolerance")
	workers    = flag.Int("workers", parkmeans.DefaultWorkers, "Assignment workers")
	maxIter    = flag.Int("max-iterations", 0, "Iteration cap (0 = until converged)")
	spread     = flag.Float64("spread", 1.0, "Standard deviation of each blob")
	seed       = flag.Int64("seed", 42, "RNG seed")
	out        = flag.String("out", "", "Write a snapshot of the model to this file")
	compressor = flag.String("compression", "zstd", "Snapshot compression: none, lz4 or zstd")
	verbose    = flag.Bool("v", false, "Log every iteration")
)

func main() {
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context) error {
	comp, err := parseCompression(*compressor)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}

	rng := testutil.NewRNG(*seed)

	start := time.Now()
	data, _, _ := rng.GaussianBlobs(*points, *dims, *clusters, *spread)
	centroids := rng.SeedCentroids(data, *points, *dims, *clusters)
	assignments := make([]int, *points)
	fmt.Printf("generated %d x %d points in %v\n", *points, *dims, time.Since(start))

	metrics := &parkmeans.BasicMetricsCollector{}

	c, err := parkmeans.New(
		parkmeans.WithWorkers(*workers),
		parkmeans.WithMaxIterations(*maxIter),
		parkmeans.WithLogger(parkmeans.NewTextLogger(level)),
		parkmeans.WithMetricsCollector(metrics),
		parkmeans.WithResourceController(resource.NewController(resource.Config{
			MaxWorkers: int64(*workers),
		})),
	)
	if err != nil {
		return err
	}

	start = time.Now()
	res, err := c.Cluster(ctx, data, centroids, assignments, *points, *dims, *clusters, *epsilon)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	stats := metrics.GetStats()
	fmt.Printf("%s after %d iterations in %v (total cost %.4f)\n", res.Termination, res.Iterations, elapsed, res.TotalCost())
	fmt.Printf("avg per iteration: assign %v, update %v, cost %v\n",
		time.Duration(stats.AssignAvgNanos), time.Duration(stats.UpdateAvgNanos), time.Duration(stats.CostAvgNanos))
	for k := range res.K() {
		fmt.Printf("  cluster %d: %d points, cost %.4f\n", k, res.Counts[k], res.Costs[k])
	}
	if empty := res.EmptyClusters(); len(empty) > 0 {
		fmt.Printf("empty clusters: %v\n", empty)
	}

	if *out == "" {
		return nil
	}

	start = time.Now()
	if err := snapshot.SaveFile(ctx, *out, snapshot.FromResult(res), snapshot.WithCompression(comp)); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	fmt.Printf("wrote %s in %v\n", *out, time.Since(start))

	return nil
}

func parseCompression(s string) (snapshot.Compression, error) {
	switch s {
	case "none":
		return snapshot.CompressionNone, nil
	case "lz4":
		return snapshot.CompressionLZ4, nil
	case "zstd":
		return snapshot.CompressionZSTD, nil
	default:
		return 0, fmt.Errorf("unknown compression %q", s)
	}
}
