// Command kdindex-demo builds KD-tree indices over random point clouds and
// runs a nearest-neighbor query against each, reporting memory use before
// and after the builds.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/klauspost/cpuid/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/TrevorS/kdindex"
	"github.com/TrevorS/kdindex/memusage"
	"github.com/TrevorS/kdindex/pointcloud"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "kdindex-demo:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("kdindex-demo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "YAML config file")
	points := fs.Int("n", 0, "number of random points")
	leaf := fs.Int("leaf", 0, "max points per leaf for the first index")
	k := fs.Int("k", 0, "neighbors to query")
	seed := fs.Uint64("seed", 0, "random seed (0 = time based)")
	formats := fs.String("formats", "", "comma-separated point formats: float32,float64,float16,r3")
	logLevel := fs.String("log-level", "", "debug, info, warn or error")
	metricsAddr := fs.String("metrics-addr", "", "serve Prometheus metrics on this address after the run")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := defaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = loadConfig(*configPath); err != nil {
			return err
		}
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "n":
			cfg.Points = *points
		case "leaf":
			cfg.LeafSize = *leaf
		case "k":
			cfg.K = *k
		case "seed":
			cfg.Seed = *seed
		case "formats":
			cfg.Formats = strings.Split(*formats, ",")
		case "log-level":
			cfg.LogLevel = *logLevel
		case "metrics-addr":
			cfg.MetricsAddr = *metricsAddr
		}
	})
	if err := cfg.validate(); err != nil {
		return err
	}

	level, _ := cfg.slogLevel()
	var handler slog.Handler = slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(stderr, &slog.HandlerOptions{Level: level})
	}
	d := &demo{
		cfg:     cfg,
		out:     stdout,
		logger:  kdindex.NewLogger(handler),
		reg:     prometheus.NewRegistry(),
		rng:     newRNG(cfg.Seed),
		started: time.Now(),
	}
	d.metrics = kdindex.NewPrometheusCollector(d.reg, "kdindex_demo")

	fmt.Fprintf(stdout, "cpu: %s (%d physical cores)\n", cpuid.CPU.BrandName, cpuid.CPU.PhysicalCores)

	for _, format := range cfg.Formats {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := d.runFormat(format); err != nil {
			return fmt.Errorf("%s: %w", format, err)
		}
	}

	if cfg.MetricsAddr != "" {
		return d.serveMetrics(ctx)
	}
	return nil
}

type demo struct {
	cfg     Config
	out     io.Writer
	logger  *kdindex.Logger
	metrics kdindex.MetricsCollector
	reg     *prometheus.Registry
	rng     *rand.Rand
	started time.Time
}

func newRNG(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed>>32|seed<<32))
}

func (d *demo) runFormat(format string) error {
	q := d.cfg.Query
	n := d.cfg.Points
	switch format {
	case "float32":
		cloud := pointcloud.Generate(n, float32(d.cfg.MaxRange), d.rng)
		query := pointcloud.Point[float32]{float32(q[0]), float32(q[1]), float32(q[2])}
		return runDemo[*pointcloud.Point[float32], float32](d, format, cloud, &query)
	case "float64":
		cloud := pointcloud.Generate(n, d.cfg.MaxRange, d.rng)
		query := pointcloud.Point[float64](q)
		return runDemo[*pointcloud.Point[float64], float64](d, format, cloud, &query)
	case "float16":
		cloud := pointcloud.GenerateHalf(n, float32(d.cfg.MaxRange), d.rng)
		query := pointcloud.NewHalfPoint(float32(q[0]), float32(q[1]), float32(q[2]))
		return runDemo[*pointcloud.HalfPoint, float32](d, format, cloud, &query)
	case "r3":
		cloud := &pointcloud.VecCloud{Vecs: make([]r3.Vec, n)}
		for i := range cloud.Vecs {
			cloud.Vecs[i] = r3.Scale(d.cfg.MaxRange, r3.Vec{X: d.rng.Float64(), Y: d.rng.Float64(), Z: d.rng.Float64()})
		}
		query := pointcloud.Vec{X: q[0], Y: q[1], Z: q[2]}
		return runDemo[*pointcloud.Vec, float64](d, format, cloud, &query)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

// runDemo builds one index with the configured leaf size and one with the
// library defaults over the same adaptor, then queries both.
func runDemo[P kdindex.Point[P, T], T kdindex.Coord](d *demo, name string, src kdindex.Source[P], query P) error {
	fmt.Fprintf(d.out, "== %s: %d points\n", name, src.Len())
	d.dumpMemUsage()

	a := kdindex.NewAdaptor[P, T](src)

	cfg1 := kdindex.DefaultConfig[T]()
	cfg1.MaxLeafSize = d.cfg.LeafSize
	cfg1.Logger = d.logger
	cfg1.Metrics = d.metrics
	index1, err := kdindex.New(3, a, cfg1)
	if err != nil {
		return err
	}

	cfg2 := kdindex.DefaultConfig[T]()
	cfg2.Logger = d.logger
	cfg2.Metrics = d.metrics
	index2, err := kdindex.New(3, a, cfg2)
	if err != nil {
		return err
	}

	d.dumpMemUsage()

	for _, index := range []*kdindex.Index[P, T]{index1, index2} {
		neighbors, err := index.KNN(query, d.cfg.K)
		if err != nil {
			return err
		}
		fmt.Fprintf(d.out, "knnSearch(nn=%d): \n", d.cfg.K)
		for _, nb := range neighbors {
			fmt.Fprintf(d.out, "ret_index=%d out_dist_sqr=%v\n", nb.Index, nb.Dist)
		}
	}
	return nil
}

func (d *demo) dumpMemUsage() {
	fmt.Fprintf(d.out, "mem: %s\n", memusage.Read())
}

func (d *demo) serveMetrics(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(d.reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: d.cfg.MetricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	d.logger.InfoContext(ctx, "serving metrics", "addr", d.cfg.MetricsAddr, "uptime", time.Since(d.started))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
