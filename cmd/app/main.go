package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"routing/cmd"
	amqpin "routing/internal/adapters/in/amqp"
	amqpout "routing/internal/adapters/out/amqp"
	"routing/internal/core/application/usecases/commands"
	"routing/internal/core/application/usecases/queries"
	"routing/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	amqp "github.com/rabbitmq/amqp091-go"
)

const shutdownTimeout = 10 * time.Second

func main() {
	instancePath := flag.String("instance", "", "build a plan from this instance file, print its report and exit")
	withPaths := flag.Bool("paths", false, "also print the trip of every vehicle")
	flag.Parse()

	configs := getConfigs()
	logger := newLogger(configs.LogLevel, configs.LogFormat)
	app := cmd.NewCompositionRoot(configs, logger)

	if *instancePath != "" {
		if err := printInstance(&app, *instancePath, *withPaths); err != nil {
			log.Fatalf("Failed to report instance: %v", err)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if configs.AMQPURL != "" {
		conn, err := amqp.Dial(configs.AMQPURL)
		if err != nil {
			log.Fatalf("Failed to connect to broker: %v", err)
		}
		defer conn.Close()

		startBrokerWorkers(ctx, &app, conn, configs, *withPaths, logger)
	}

	startWebServer(ctx, &app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	loadDotEnv()
	config := cmd.Config{
		HTTPPort:               envOr("HTTP_PORT", "8080"),
		CORSAllowedOrigins:     strings.Split(envOr("CORS_ALLOWED_ORIGINS", "*"), ","),
		AMQPURL:                os.Getenv("AMQP_URL"),
		AMQPSolutionExchange:   envOr("AMQP_SOLUTION_EXCHANGE", amqpin.DefaultExchange),
		AMQPSolutionQueue:      envOr("AMQP_SOLUTION_QUEUE", amqpin.DefaultQueue),
		AMQPSolutionRoutingKey: envOr("AMQP_SOLUTION_ROUTING_KEY", amqpin.DefaultRoutingKey),
		AMQPPlanExchange:       envOr("AMQP_PLAN_EXCHANGE", amqpout.DefaultExchange),
		AMQPPlanRoutingKey:     envOr("AMQP_PLAN_ROUTING_KEY", amqpout.DefaultRoutingKey),
		InstanceInboxDir:       os.Getenv("INSTANCE_INBOX_DIR"),
		InstanceImportSchedule: envOr("INSTANCE_IMPORT_SCHEDULE", jobs.DefaultImportSchedule),
		LogLevel:               envOr("LOG_LEVEL", "info"),
		LogFormat:              envOr("LOG_FORMAT", "text"),
	}
	return config
}

// loadDotEnv reads .env when present. Variables already set in the
// environment win.
func loadDotEnv() {
	err := godotenv.Load(".env")
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func newLogger(level, format string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}

	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func printInstance(app *cmd.CompositionRoot, path string, withPaths bool) error {
	ctx := context.Background()

	command, err := commands.NewBuildPlanFromFileCommand(path)
	if err != nil {
		return err
	}
	p, err := app.CreateBuildPlanFromFileCommandHandler().Handle(ctx, command)
	if err != nil {
		return err
	}

	query, err := queries.NewGetPlanReportQuery(p, withPaths)
	if err != nil {
		return err
	}
	report, err := app.CreateGetPlanReportQueryHandler().Handle(ctx, query)
	if err != nil {
		return err
	}

	printer := app.CreateReportPrinter(os.Stdout)
	if err := printer.PrintMetrics(report); err != nil {
		return err
	}
	if withPaths {
		return printer.PrintPaths(report)
	}
	return nil
}

// startBrokerWorkers runs the solution consumer and, with an inbox configured,
// the instance import job. Each worker gets its own channel.
func startBrokerWorkers(
	ctx context.Context,
	app *cmd.CompositionRoot,
	conn *amqp.Connection,
	configs cmd.Config,
	withPaths bool,
	logger *slog.Logger,
) {
	consumerChannel, err := conn.Channel()
	if err != nil {
		log.Fatalf("Failed to open consumer channel: %v", err)
	}
	consumer := app.CreateSolutionConsumer(consumerChannel, os.Stdout, withPaths)
	if err := consumer.DeclareTopology(configs.AMQPSolutionExchange, configs.AMQPSolutionRoutingKey); err != nil {
		log.Fatalf("Failed to declare solution topology: %v", err)
	}
	go func() {
		if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.ErrorContext(ctx, "Solution consumer stopped", "error", err)
		}
	}()

	if configs.InstanceInboxDir == "" {
		return
	}

	publisherChannel, err := conn.Channel()
	if err != nil {
		log.Fatalf("Failed to open publisher channel: %v", err)
	}
	publisher := app.CreatePlanPublisher(publisherChannel)
	if err := publisher.DeclareTopology(); err != nil {
		log.Fatalf("Failed to declare plan topology: %v", err)
	}

	jobManager := jobs.NewJobManager(app.CreateInstanceImportJob(publisher))
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	go func() {
		<-ctx.Done()
		jobManager.StopAll()
	}()
}

func startWebServer(ctx context.Context, app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.HideBanner = true
	if err := app.CreateHTTPServer().Register(ctx, e); err != nil {
		log.Fatalf("Failed to register routes: %v", err)
	}

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		e.Logger.Fatal(err)
	}
}
