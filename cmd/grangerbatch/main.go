package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/kbukum/grangerbatch/batch"
	"github.com/kbukum/grangerbatch/bootstrap"
	"github.com/kbukum/grangerbatch/config"
	"github.com/kbukum/grangerbatch/jobs"
	"github.com/kbukum/grangerbatch/logger"
	"github.com/kbukum/grangerbatch/observability"
	"github.com/kbukum/grangerbatch/util"
	"github.com/kbukum/grangerbatch/version"
	"github.com/kbukum/grangerbatch/workspace"
)

func main() {
	all := flag.Bool("all", false, "run all analysis types")
	matrix := flag.Bool("matrix", false, "run matrix visualizations")
	network := flag.Bool("network", false, "run network visualizations")
	nodal := flag.Bool("nodal", false, "run nodal visualizations")
	pairwise := flag.Bool("pairwise", false, "run pairwise visualizations")
	globalMetrics := flag.Bool("global-metrics", false, "run global metrics visualizations")

	inputDir := flag.String("input", "", "input directory containing connectivity data (default: input)")
	outputDir := flag.String("output", "", "output directory for results (default: output)")
	concurrent := flag.Int("concurrent", 0, "maximum concurrent processes (default: 2)")

	configFile := flag.String("config", "", "explicit config.yml path")
	manifestFile := flag.String("manifest", "", "YAML manifest of job type overrides and additions")
	logLevel := flag.String("log-level", "", "log level (debug, info, warn, error)")
	logFormat := flag.String("log-format", "", "log format (json, console)")
	list := flag.Bool("list", false, "list available analysis types and exit")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Banner("grangerbatch"))
		return
	}

	var cfg config.Config
	var loaderOpts []config.LoaderOption
	if *configFile != "" {
		loaderOpts = append(loaderOpts, config.WithConfigFile(*configFile))
	}
	if err := config.LoadConfig("grangerbatch", &cfg, loaderOpts...); err != nil {
		die("load config: %v", err)
	}

	// Flags override whatever the config files provided.
	cfg.Batch.InputDir = util.Coalesce(*inputDir, cfg.Batch.InputDir)
	cfg.Batch.OutputDir = util.Coalesce(*outputDir, cfg.Batch.OutputDir)
	cfg.Batch.ManifestFile = util.Coalesce(*manifestFile, cfg.Batch.ManifestFile)
	cfg.Logging.Level = util.Coalesce(*logLevel, cfg.Logging.Level)
	cfg.Logging.Format = util.Coalesce(*logFormat, cfg.Logging.Format)
	cfg.Version = util.Coalesce(cfg.Version, version.GetShortVersion())
	if flagWasSet("concurrent") {
		if *concurrent <= 0 {
			die("invalid configuration: batch.max_concurrent: must be at least 1")
		}
		cfg.Batch.MaxConcurrent = *concurrent
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		die("invalid configuration: %v", err)
	}

	logger.Init(cfg.Logging)
	log := logger.New(&cfg.Logging, cfg.Name)

	defs, err := loadCatalog(cfg.Batch.ManifestFile)
	if err != nil {
		die("%v", err)
	}
	registry := jobs.BuildRegistry(defs, func(d jobs.Definition) batch.Executor {
		return jobs.WithLogging(jobs.NewCommandExecutor(d), d.ID, log)
	})

	if *list {
		printCatalog(registry)
		return
	}

	selected := selectJobs(registry, selection{
		all:      *all,
		matrix:   *matrix,
		network:  *network,
		nodal:    *nodal,
		pairwise: *pairwise,
		global:   *globalMetrics,
	}, cfg.Batch.Jobs)
	if len(selected) == 0 {
		fmt.Fprintln(os.Stderr, "❌ No analysis types selected!")
		fmt.Fprintln(os.Stderr, "Use --help to see available options")
		fmt.Fprintln(os.Stderr, "Use --all to run all analyses")
		os.Exit(1)
	}

	selectedJobs, err := registry.ResolveAll(selected)
	if err != nil {
		die("%v", err)
	}

	runner := bootstrap.NewRunner(cfg.Name, cfg.Version, bootstrap.WithLogger(log))

	coordOpts := []batch.CoordinatorOption{batch.WithLogger(log)}
	if cfg.Telemetry.Enabled {
		obs, err := initTelemetry(context.Background(), &cfg, runner)
		if err != nil {
			die("init telemetry: %v", err)
		}
		coordOpts = append(coordOpts, batch.WithObserver(obs))
	}

	coordinator := batch.NewCoordinator(registry, workspace.New(), coordOpts...)
	req := batch.Request{
		JobIDs:      selected,
		InputDir:    cfg.Batch.InputDir,
		OutputDir:   cfg.Batch.OutputDir,
		Concurrency: cfg.Batch.MaxConcurrent,
	}

	reporter := batch.NewReporter()
	fmt.Print(reporter.RenderStart(selectedJobs, req.InputDir, req.OutputDir, req.Concurrency))

	var result *batch.Result
	err = runner.RunTask(context.Background(), func(ctx context.Context) error {
		var execErr error
		result, execErr = coordinator.Execute(ctx, req)
		return execErr
	})
	if err != nil {
		die("%v", err)
	}

	fmt.Print(reporter.Render(result))
	if result.Failed() > 0 {
		os.Exit(1)
	}
}

// flagWasSet reports whether the named flag was given on the command line.
func flagWasSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

// loadCatalog builds the job catalog: the builtin analysis types plus any
// manifest overrides and additions.
func loadCatalog(manifestFile string) ([]jobs.Definition, error) {
	defs := jobs.Builtins()
	if manifestFile == "" {
		return defs, nil
	}
	m, err := jobs.LoadManifest(manifestFile)
	if err != nil {
		return nil, err
	}
	return m.Apply(defs)
}

type selection struct {
	all      bool
	matrix   bool
	network  bool
	nodal    bool
	pairwise bool
	global   bool
}

// selectJobs resolves which job ids to run: selection flags first, then the
// config preselection, deduplicated in launch order.
func selectJobs(reg *batch.Registry, sel selection, configured []string) []string {
	if sel.all {
		return reg.AllIDs()
	}

	var ids []string
	if sel.matrix {
		ids = append(ids, jobs.Matrix)
	}
	if sel.network {
		ids = append(ids, jobs.Network)
	}
	if sel.nodal {
		ids = append(ids, jobs.Nodal)
	}
	if sel.pairwise {
		ids = append(ids, jobs.Pairwise)
	}
	if sel.global {
		ids = append(ids, jobs.Global)
	}
	if len(ids) == 0 {
		ids = configured
	}
	return util.Unique(ids)
}

func printCatalog(reg *batch.Registry) {
	fmt.Println("Available analysis types:")
	for _, jt := range reg.All() {
		fmt.Printf("  %-10s %s: %s\n", jt.ID, jt.Name, jt.Description)
	}
}

// initTelemetry wires OTLP trace and metric export and returns an observer
// for the coordinator. Providers are shut down through the runner's stop
// hooks so buffered spans are flushed on exit.
func initTelemetry(ctx context.Context, cfg *config.Config, runner *bootstrap.Runner) (*observability.TelemetryObserver, error) {
	tp, err := observability.InitTracer(ctx, observability.TracerConfig{
		ServiceName:    cfg.Name,
		ServiceVersion: cfg.Version,
		Environment:    cfg.Environment,
		Endpoint:       cfg.Telemetry.Endpoint,
		Insecure:       cfg.Telemetry.Insecure,
		SampleRate:     cfg.Telemetry.SampleRate,
	})
	if err != nil {
		return nil, err
	}
	mp, err := observability.InitMeter(ctx, observability.MeterConfig{
		ServiceName:    cfg.Name,
		ServiceVersion: cfg.Version,
		Environment:    cfg.Environment,
		Endpoint:       cfg.Telemetry.Endpoint,
		Insecure:       cfg.Telemetry.Insecure,
	})
	if err != nil {
		return nil, err
	}
	runner.OnStop(
		func(ctx context.Context) error { return tp.Shutdown(ctx) },
		func(ctx context.Context) error { return mp.Shutdown(ctx) },
	)

	metrics, err := observability.NewBatchMetrics(observability.Meter(cfg.Name))
	if err != nil {
		return nil, err
	}
	return observability.NewTelemetryObserver(cfg.Name, metrics), nil
}

func die(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "❌ "+format+"\n", args...)
	os.Exit(1)
}
