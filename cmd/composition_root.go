package cmd

import (
	"io"
	"log/slog"

	amqpin "routing/internal/adapters/in/amqp"
	"routing/internal/adapters/in/http"
	amqpout "routing/internal/adapters/out/amqp"
	"routing/internal/adapters/out/console"
	"routing/internal/adapters/out/tsplib"
	"routing/internal/core/application/usecases/commands"
	"routing/internal/core/application/usecases/queries"
	"routing/internal/core/domain/services"
	"routing/internal/core/ports"
	"routing/internal/jobs"
)

type CompositionRoot struct {
	configs  Config
	reader   ports.InstanceReader
	matrices services.MatrixBuilder
	logger   *slog.Logger
}

func NewCompositionRoot(configs Config, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		configs:  configs,
		reader:   tsplib.NewReader(),
		matrices: services.NewMatrixBuilder(),
		logger:   logger,
	}
}

func (c *CompositionRoot) CreateBuildPlanFromFileCommandHandler() commands.BuildPlanFromFileCommandHandler {
	return commands.NewBuildPlanFromFileCommandHandler(c.reader, c.matrices)
}

func (c *CompositionRoot) CreateBuildPlanFromTextCommandHandler() commands.BuildPlanFromTextCommandHandler {
	return commands.NewBuildPlanFromTextCommandHandler(c.reader, c.matrices)
}

func (c *CompositionRoot) CreateBuildPlanFromPayloadCommandHandler() commands.BuildPlanFromPayloadCommandHandler {
	return commands.NewBuildPlanFromPayloadCommandHandler(c.matrices)
}

func (c *CompositionRoot) CreateGetPlanReportQueryHandler() queries.GetPlanReportQueryHandler {
	return queries.NewGetPlanReportQueryHandler()
}

func (c *CompositionRoot) CreateReportPrinter(out io.Writer) *console.ReportPrinter {
	return console.NewReportPrinter(out)
}

func (c *CompositionRoot) CreateHTTPServer() *http.Server {
	return http.NewServer(
		c.CreateBuildPlanFromPayloadCommandHandler(),
		c.CreateBuildPlanFromTextCommandHandler(),
		c.CreateGetPlanReportQueryHandler(),
		c.configs.CORSAllowedOrigins,
		c.logger,
	)
}

func (c *CompositionRoot) CreatePlanPublisher(channel amqpout.Channel) *amqpout.PlanPublisher {
	return amqpout.NewPlanPublisher(channel, c.configs.AMQPPlanExchange, c.configs.AMQPPlanRoutingKey, c.logger)
}

func (c *CompositionRoot) CreateSolutionConsumer(channel amqpin.Channel, out io.Writer, withPaths bool) *amqpin.SolutionConsumer {
	return amqpin.NewSolutionConsumer(
		channel,
		c.configs.AMQPSolutionQueue,
		c.CreateBuildPlanFromPayloadCommandHandler(),
		c.CreateGetPlanReportQueryHandler(),
		c.CreateReportPrinter(out),
		withPaths,
		c.logger,
	)
}

func (c *CompositionRoot) CreateInstanceImportJob(publisher ports.PlanPublisher) *jobs.InstanceImportJob {
	return jobs.NewInstanceImportJob(
		c.CreateBuildPlanFromFileCommandHandler(),
		publisher,
		c.configs.InstanceInboxDir,
		c.configs.InstanceImportSchedule,
		c.logger,
	)
}
