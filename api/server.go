package api

import (
	"context"
	"errors"
	"fmt"
	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"
	"github.com/mrcliffo/nfl-market-pulse/api/controllers"
	"github.com/mrcliffo/nfl-market-pulse/api/transport"
	"github.com/mrcliffo/nfl-market-pulse/logging"
	"github.com/mrcliffo/nfl-market-pulse/markets"
	"github.com/mrcliffo/nfl-market-pulse/metrics"
	"github.com/mrcliffo/nfl-market-pulse/voting"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

type Server struct {
	config *Config
}

func NewServer(config *Config) *Server {
	return &Server{
		config: config,
	}
}

func (s *Server) Start() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, err := OpenBackend(ctx, s.config.StorageConfig)
	if err != nil {
		logging.Log.Errorf("failed to open storage: %v", err)
		panic("failed to open storage")
	}
	defer func() {
		if err := backend.Close(); err != nil {
			logging.Log.Errorf("failed to close storage: %v", err)
		}
	}()

	m := metrics.New("")
	client := markets.NewClient(s.config.GammaURL, s.config.ClobURL,
		markets.WithTimeout(s.config.Timeout),
		markets.WithPageSize(s.config.PageSize),
		markets.WithMaxConcurrency(s.config.MaxConcurrency),
		markets.WithKeywords(s.config.Keywords),
		markets.WithMetrics(m),
	)

	r := BuildRouter(gin.ReleaseMode, backend, client, m)

	//Do not run lambda helper locally
	if os.Getenv("APP_ENV") == "local" {
		startLocal(ctx, r, s.config.Port)
	} else {
		startLambda(r)
	}
}

// BuildRouter wires the controllers over the given storage and market source.
func BuildRouter(ginMode string, backend *Backend, source controllers.MarketSource, m *metrics.Metrics) *gin.Engine {
	r := transport.NewRouter(ginMode)

	aggregator := voting.NewAggregator(backend.Votes, backend.Counters, m)
	reporter := voting.NewReporter(backend.Votes, backend.Counters, backend.Name, m)

	//Register controllers
	controllers.NewHealthController(reporter).RegisterRoutes(r)
	controllers.NewVotingController(aggregator).RegisterRoutes(r)
	controllers.NewResultsController(reporter).RegisterRoutes(r)
	controllers.NewMarketsController(source).RegisterRoutes(r)

	if m != nil {
		r.GET("/metrics", gin.WrapH(m.Handler()))
	}

	return r
}

// StartLambda sets up for AWS Lambda
func startLambda(engine *gin.Engine) {
	ginLambda := ginadapter.NewV2(engine)

	handler := func(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
		logging.Log.Infof("Lambda handler triggered on path: %s", req.RawPath)
		return ginLambda.ProxyWithContext(ctx, req)
	}

	logging.Log.Info("Starting lambda")
	lambda.Start(handler)
}

// StartLocal serves HTTP until ctx is cancelled, then drains in-flight requests.
func startLocal(ctx context.Context, engine *gin.Engine, port int) {
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logging.Log.Errorf("Failed to shut down server: %v", err)
		}
	}()

	logging.Log.Info(fmt.Sprintf("Starting server on http://localhost:%d", port))

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logging.Log.Fatalf("Failed to run server: %v", err)
	}
	logging.Log.Info("Server stopped")
}
