package cmd

type Config struct {
	HTTPPort               string
	CORSAllowedOrigins     []string
	AMQPURL                string
	AMQPSolutionExchange   string
	AMQPSolutionQueue      string
	AMQPSolutionRoutingKey string
	AMQPPlanExchange       string
	AMQPPlanRoutingKey     string
	InstanceInboxDir       string
	InstanceImportSchedule string
	LogLevel               string
	LogFormat              string
}
