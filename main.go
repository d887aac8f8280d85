package main

import (
	"context"
	"io"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"sync"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	jaeger "github.com/uber/jaeger-client-go"
	jaegercfg "github.com/uber/jaeger-client-go/config"
	jprom "github.com/uber/jaeger-lib/metrics/prometheus"

	"github.com/estafette/teamcity-build-status-exporter/api"
	"github.com/estafette/teamcity-build-status-exporter/clients/teamcityapi"
	"github.com/estafette/teamcity-build-status-exporter/services/exporter"
)

const app = "teamcity-build-status-exporter"

var (
	version   string
	branch    string
	revision  string
	buildDate string
	goVersion = runtime.Version()
)

var (
	// flags
	teamcityURL           = kingpin.Flag("teamcity-url", "The base url of the TeamCity server.").Envar("TEAMCITY_URL").String()
	teamcityToken         = kingpin.Flag("teamcity-token", "The token to authenticate calls to the TeamCity rest api with.").Envar("TEAMCITY_TOKEN").String()
	teamcityTemplateIDs   = kingpin.Flag("teamcity-template-ids", "Comma-separated ids of the templates whose inheriting build configurations are exported.").Envar("TEAMCITY_TEMPLATE_IDS").String()
	scrapeIntervalSeconds = kingpin.Flag("scrape-interval-seconds", "The number of seconds between poll cycles against TeamCity.").Envar("SCRAPE_INTERVAL").Default("600").Int()
	fetchConcurrency      = kingpin.Flag("fetch-concurrency", "The maximum number of concurrent calls to the TeamCity rest api per cycle.").Envar("FETCH_CONCURRENCY").Default("10").Int()
	listenAddress         = kingpin.Flag("listen-address", "The address to listen on for metrics and probe requests.").Envar("LISTEN_ADDRESS").Default(":8000").String()
	metricsPath           = kingpin.Flag("metrics-path", "The path to listen for Prometheus metrics requests.").Envar("METRICS_PATH").Default("/metrics").String()
	logLevel              = kingpin.Flag("log-level", "The minimum severity to log.").Envar("LOG_LEVEL").Default("info").String()
)

func main() {

	// parse command line parameters
	kingpin.Parse()

	// configure json logging
	initLogging()

	config := &api.APIConfig{
		TeamCity: &api.TeamCityConfig{
			ServerURL:   *teamcityURL,
			Token:       *teamcityToken,
			TemplateIDs: api.SplitTemplateIDs(*teamcityTemplateIDs),
		},
		Poller: &api.PollerConfig{
			Interval:         time.Duration(*scrapeIntervalSeconds) * time.Second,
			FetchConcurrency: *fetchConcurrency,
		},
		Server: &api.ServerConfig{
			ListenAddress: *listenAddress,
			MetricsPath:   *metricsPath,
		},
	}

	// configuration errors are fatal before anything starts serving
	if err := config.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	closer := initJaeger(app)
	defer closer.Close()

	// define channels and waitgroup to gracefully shutdown the application
	sigs := make(chan os.Signal, 1)
	stop := make(chan struct{})
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	wg := &sync.WaitGroup{}

	// the store is the only shared state between the poll loop and scrapes
	store := exporter.NewStore()
	prometheus.MustRegister(exporter.NewBuildStatusCollector(store))

	teamcityapiClient := teamcityapi.NewTracingClient(teamcityapi.NewLoggingClient(teamcityapi.NewMetricsClient(
		teamcityapi.NewClient(config),
		api.NewRequestCounter("teamcityapi"),
		api.NewRequestHistogram("teamcityapi"),
	)))

	exporterService := exporter.NewTracingService(exporter.NewLoggingService(exporter.NewMetricsService(
		exporter.NewService(config, teamcityapiClient, store),
		api.NewRequestCounter("exporter"),
		api.NewRequestHistogram("exporter"),
	)))

	// start polling in the background
	pollLoop := exporter.NewPollLoop(config, exporterService)
	pollLoop.Run(stop, wg)

	// serve metrics and probes
	srv := handleRequests(config)

	// wait for graceful shutdown to finish
	<-sigs
	log.Debug().Msg("Shutting down...")

	// shut down gracefully
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Graceful server shutdown failed")
	}

	log.Debug().Msg("Stopping goroutines...")
	close(stop)

	log.Debug().Msg("Awaiting waitgroup...")
	wg.Wait()

	log.Info().Msg("Server gracefully stopped")
}

func initLogging() {

	// log as severity for stackdriver logging to recognize the level
	zerolog.LevelFieldName = "severity"

	level, err := zerolog.ParseLevel(*logLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// set some default fields added to all logs
	log.Logger = zerolog.New(os.Stdout).With().
		Timestamp().
		Str("app", app).
		Str("version", version).
		Logger()

	// use zerolog for any logs sent via standard log library
	stdlog.SetFlags(0)
	stdlog.SetOutput(log.Logger)

	// log startup message
	log.Info().
		Str("branch", branch).
		Str("revision", revision).
		Str("buildDate", buildDate).
		Str("goVersion", goVersion).
		Msgf("Starting %v...", app)
}

// initJaeger returns an instance of the Jaeger Tracer configured via JAEGER_* environment variables
func initJaeger(service string) io.Closer {

	cfg, err := jaegercfg.FromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("Generating Jaeger config from environment variables failed")
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = service
	}

	closer, err := cfg.InitGlobalTracer(cfg.ServiceName, jaegercfg.Logger(jaeger.StdLogger), jaegercfg.Metrics(jprom.New()))
	if err != nil {
		log.Fatal().Err(err).Msg("Generating Jaeger tracer failed")
	}

	return closer
}

func createRouter() *gin.Engine {

	// run gin in release mode and other defaults
	gin.SetMode(gin.ReleaseMode)
	gin.DefaultWriter = log.Logger
	gin.DisableConsoleColor()

	// Creates a router without any middleware by default
	router := gin.New()

	// Logging middleware
	router.Use(ZeroLogMiddleware())

	// Recovery middleware recovers from any panics and writes a 500 if there was one.
	router.Use(gin.Recovery())

	// Gzip middleware
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	// liveness and readiness
	router.GET("/liveness", func(c *gin.Context) {
		c.String(http.StatusOK, "I'm alive!")
	})
	router.GET("/readiness", func(c *gin.Context) {
		c.String(http.StatusOK, "I'm ready!")
	})

	return router
}

func handleRequests(config *api.APIConfig) *http.Server {

	log.Debug().
		Str("address", config.Server.ListenAddress).
		Str("path", config.Server.MetricsPath).
		Msg("Serving Prometheus metrics...")

	// create and init router
	router := createRouter()

	// serving a scrape only reads the currently installed snapshot, it never polls
	router.GET(config.Server.MetricsPath, gin.WrapH(promhttp.Handler()))

	// instantiate server instead of using router.Run in order to handle graceful shutdown
	srv := &http.Server{
		Addr:           config.Server.ListenAddress,
		Handler:        router,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Starting gin router failed")
		}
	}()

	return srv
}
