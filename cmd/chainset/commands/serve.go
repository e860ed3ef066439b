package commands

import (
	"net/http"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"git.home.luguber.info/inful/chainset/internal/config"
	"git.home.luguber.info/inful/chainset/internal/metrics"
	"git.home.luguber.info/inful/chainset/internal/registry"
	"git.home.luguber.info/inful/chainset/internal/reporter"
	"git.home.luguber.info/inful/chainset/internal/server"
)

// ServeCmd implements the 'serve' command.
type ServeCmd struct {
	Addr string `short:"a" help:"Listen address (overrides server.addr)"`
}

func (s *ServeCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig(g)
	if err != nil {
		return err
	}
	if s.Addr != "" {
		cfg.Server.Addr = s.Addr
	}
	return RunServe(g, cfg)
}

// RunServe wires the registry, metrics, reporter, and HTTP API, and serves until
// the global context is cancelled.
func RunServe(g *Global, cfg *config.Config) error {
	logger := g.logger()

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	var metricsHandler http.Handler
	if cfg.Metrics.Enabled {
		promReg := prom.NewRegistry()
		promReg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		recorder = metrics.NewPrometheusRecorder(promReg)
		metricsHandler = metrics.HTTPHandler(promReg)
	}
	reg := registry.New(recorder, cfg.SetOptions()...)

	if interval := cfg.Reporter.IntervalDuration(); interval > 0 {
		rep, err := reporter.New(reg, interval, logger)
		if err != nil {
			return err
		}
		if err := rep.Start(); err != nil {
			return err
		}
		defer func() {
			if err := rep.Stop(); err != nil {
				logger.Warn("Reporter shutdown failed", "error", err)
			}
		}()
	}

	srv := server.NewServer(server.Options{
		Config:         cfg.Server,
		Registry:       reg,
		MetricsHandler: metricsHandler,
		MetricsPath:    cfg.Metrics.Path,
		Logger:         logger,
	})
	return srv.Run(g.context())
}
