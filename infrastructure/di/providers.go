package di

import (
	"context"
	"fmt"
	"time"

	"tomato-backend/application/commands"
	"tomato-backend/application/commands/bus"
	commandhandlers "tomato-backend/application/commands/handlers"
	"tomato-backend/application/ports"
	"tomato-backend/application/queries"
	querybus "tomato-backend/application/queries/bus"
	queryhandlers "tomato-backend/application/queries/handlers"
	"tomato-backend/application/services"
	"tomato-backend/infrastructure/config"
	"tomato-backend/infrastructure/messaging/eventbridge"
	"tomato-backend/infrastructure/persistence/dynamodb"
	"tomato-backend/pkg/observability"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-xray-sdk-go/instrumentation/awsv2"
	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config          *config.Config
	Logger          *zap.Logger
	TodoRepo        ports.TodoRepository
	AimRepo         ports.AimRepository
	TomatoRepo      ports.TomatoRepository
	EventBus        ports.EventBus
	Cache           ports.Cache
	Metrics         *observability.Metrics
	ProgressService *services.ProgressService
	CommandBus      *bus.CommandBus
	QueryBus        *querybus.QueryBus
}

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideAWSConfig creates AWS configuration, instrumented with X-Ray when
// tracing is enabled
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
	if err != nil {
		return aws.Config{}, err
	}

	if cfg.EnableTracing {
		awsv2.AWSV2Instrumentor(&awsCfg.APIOptions)
	}

	return awsCfg, nil
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideEventBridgeClient creates an EventBridge client
func ProvideEventBridgeClient(awsCfg aws.Config) *awseventbridge.Client {
	return awseventbridge.NewFromConfig(awsCfg)
}

// ProvideCloudWatchClient creates a CloudWatch client
func ProvideCloudWatchClient(awsCfg aws.Config) *awscloudwatch.Client {
	return awscloudwatch.NewFromConfig(awsCfg)
}

// ProvideTodoRepository creates a todo repository
func ProvideTodoRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.TodoRepository {
	return dynamodb.NewTodoRepository(client, cfg.DynamoDBTable, logger)
}

// ProvideAimRepository creates an aim repository
func ProvideAimRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.AimRepository {
	return dynamodb.NewAimRepository(client, cfg.DynamoDBTable, logger)
}

// ProvideTomatoRepository creates a session record repository
func ProvideTomatoRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.TomatoRepository {
	return dynamodb.NewTomatoRepository(client, cfg.DynamoDBTable, cfg.TodoIndexName, logger)
}

// ProvideEventBus creates an event bus
func ProvideEventBus(client *awseventbridge.Client, cfg *config.Config, logger *zap.Logger) ports.EventBus {
	return eventbridge.NewEventBridgePublisher(client, cfg.EventBusName, logger)
}

// ProvideMetrics creates a metrics instance. Without EnableMetrics the
// instance carries no client and every call is a no-op.
func ProvideMetrics(client *awscloudwatch.Client, cfg *config.Config) *observability.Metrics {
	namespace := fmt.Sprintf("Tomato/%s", cfg.Environment)
	if !cfg.EnableMetrics {
		return observability.NewMetrics(namespace, nil)
	}
	return observability.NewMetrics(namespace, client)
}

// ProvideInMemoryCache creates a cache for query results
func ProvideInMemoryCache(cfg *config.Config) ports.Cache {
	return NewInMemoryCache(time.Duration(cfg.StatsCacheTTL) * time.Second)
}

// ProvideProgressService creates the progress aggregation service
func ProvideProgressService(
	aimRepo ports.AimRepository,
	tomatoRepo ports.TomatoRepository,
	eventBus ports.EventBus,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *services.ProgressService {
	return services.NewProgressService(aimRepo, tomatoRepo, eventBus, metrics, logger)
}

// ProvideCommandBus creates a command bus with all handlers registered
func ProvideCommandBus(
	todoRepo ports.TodoRepository,
	aimRepo ports.AimRepository,
	tomatoRepo ports.TomatoRepository,
	eventBus ports.EventBus,
	progress *services.ProgressService,
	logger *zap.Logger,
) *bus.CommandBus {
	commandBus := bus.NewCommandBus()

	addTodo := commandhandlers.NewAddTodoHandler(todoRepo, eventBus, logger)
	commandBus.Register(commands.AddTodoCommand{}, bus.CommandHandlerFunc(func(ctx context.Context, cmd bus.Command) error {
		c, ok := cmd.(commands.AddTodoCommand)
		if !ok {
			return fmt.Errorf("invalid command type")
		}
		return addTodo.Handle(ctx, c)
	}))

	updateTodo := commandhandlers.NewUpdateTodoHandler(todoRepo, eventBus, logger)
	commandBus.Register(commands.UpdateTodoCommand{}, bus.CommandHandlerFunc(func(ctx context.Context, cmd bus.Command) error {
		c, ok := cmd.(commands.UpdateTodoCommand)
		if !ok {
			return fmt.Errorf("invalid command type")
		}
		return updateTodo.Handle(ctx, c)
	}))

	deleteTodo := commandhandlers.NewDeleteTodoHandler(todoRepo, logger)
	commandBus.Register(commands.DeleteTodoCommand{}, bus.CommandHandlerFunc(func(ctx context.Context, cmd bus.Command) error {
		c, ok := cmd.(commands.DeleteTodoCommand)
		if !ok {
			return fmt.Errorf("invalid command type")
		}
		return deleteTodo.Handle(ctx, c)
	}))

	resetDaily := commandhandlers.NewResetDailyStateHandler(todoRepo, logger)
	commandBus.Register(commands.ResetDailyStateCommand{}, bus.CommandHandlerFunc(func(ctx context.Context, cmd bus.Command) error {
		c, ok := cmd.(commands.ResetDailyStateCommand)
		if !ok {
			return fmt.Errorf("invalid command type")
		}
		return resetDaily.Handle(ctx, c)
	}))

	addAim := commandhandlers.NewAddAimHandler(aimRepo, eventBus, logger)
	commandBus.Register(commands.AddAimCommand{}, bus.CommandHandlerFunc(func(ctx context.Context, cmd bus.Command) error {
		c, ok := cmd.(commands.AddAimCommand)
		if !ok {
			return fmt.Errorf("invalid command type")
		}
		return addAim.Handle(ctx, c)
	}))

	updateAim := commandhandlers.NewUpdateAimHandler(aimRepo, logger)
	commandBus.Register(commands.UpdateAimCommand{}, bus.CommandHandlerFunc(func(ctx context.Context, cmd bus.Command) error {
		c, ok := cmd.(commands.UpdateAimCommand)
		if !ok {
			return fmt.Errorf("invalid command type")
		}
		return updateAim.Handle(ctx, c)
	}))

	deleteAim := commandhandlers.NewDeleteAimHandler(aimRepo, logger)
	commandBus.Register(commands.DeleteAimCommand{}, bus.CommandHandlerFunc(func(ctx context.Context, cmd bus.Command) error {
		c, ok := cmd.(commands.DeleteAimCommand)
		if !ok {
			return fmt.Errorf("invalid command type")
		}
		return deleteAim.Handle(ctx, c)
	}))

	setAimProgress := commandhandlers.NewSetAimProgressHandler(progress)
	commandBus.Register(commands.SetAimProgressCommand{}, bus.CommandHandlerFunc(func(ctx context.Context, cmd bus.Command) error {
		c, ok := cmd.(commands.SetAimProgressCommand)
		if !ok {
			return fmt.Errorf("invalid command type")
		}
		return setAimProgress.Handle(ctx, c)
	}))

	addRecord := commandhandlers.NewAddTomatoRecordHandler(tomatoRepo, todoRepo, logger)
	commandBus.Register(commands.AddTomatoRecordCommand{}, bus.CommandHandlerFunc(func(ctx context.Context, cmd bus.Command) error {
		c, ok := cmd.(commands.AddTomatoRecordCommand)
		if !ok {
			return fmt.Errorf("invalid command type")
		}
		return addRecord.Handle(ctx, c)
	}))

	updateRecord := commandhandlers.NewUpdateTomatoRecordHandler(tomatoRepo, todoRepo, eventBus, logger)
	commandBus.Register(commands.UpdateTomatoRecordCommand{}, bus.CommandHandlerFunc(func(ctx context.Context, cmd bus.Command) error {
		c, ok := cmd.(commands.UpdateTomatoRecordCommand)
		if !ok {
			return fmt.Errorf("invalid command type")
		}
		return updateRecord.Handle(ctx, c)
	}))

	return commandBus
}

// ProvideQueryBus creates a query bus with all handlers registered. The
// statistics handler is wrapped with the read-through cache.
func ProvideQueryBus(
	todoRepo ports.TodoRepository,
	aimRepo ports.AimRepository,
	tomatoRepo ports.TomatoRepository,
	cache ports.Cache,
	logger *zap.Logger,
) *querybus.QueryBus {
	queryBus := querybus.NewQueryBus()

	getTodos := queryhandlers.NewGetTodosHandler(todoRepo, logger)
	queryBus.Register(queries.GetTodosQuery{}, querybus.QueryHandlerFunc(func(ctx context.Context, query querybus.Query) (interface{}, error) {
		q, ok := query.(queries.GetTodosQuery)
		if !ok {
			return nil, fmt.Errorf("invalid query type")
		}
		return getTodos.Handle(ctx, q)
	}))

	getAims := queryhandlers.NewGetAimsHandler(aimRepo, logger)
	queryBus.Register(queries.GetAimsQuery{}, querybus.QueryHandlerFunc(func(ctx context.Context, query querybus.Query) (interface{}, error) {
		q, ok := query.(queries.GetAimsQuery)
		if !ok {
			return nil, fmt.Errorf("invalid query type")
		}
		return getAims.Handle(ctx, q)
	}))

	getRecords := queryhandlers.NewGetTomatoRecordsHandler(tomatoRepo, logger)
	queryBus.Register(queries.GetTomatoRecordsQuery{}, querybus.QueryHandlerFunc(func(ctx context.Context, query querybus.Query) (interface{}, error) {
		q, ok := query.(queries.GetTomatoRecordsQuery)
		if !ok {
			return nil, fmt.Errorf("invalid query type")
		}
		return getRecords.Handle(ctx, q)
	}))

	getStats := queryhandlers.NewGetStatisticsHandler(todoRepo, aimRepo, tomatoRepo, logger)
	cachedStats := querybus.NewCachingHandler(querybus.QueryHandlerFunc(func(ctx context.Context, query querybus.Query) (interface{}, error) {
		q, ok := query.(queries.GetStatisticsQuery)
		if !ok {
			return nil, fmt.Errorf("invalid query type")
		}
		return getStats.Handle(ctx, q)
	}), cache)
	queryBus.Register(queries.GetStatisticsQuery{}, cachedStats)

	return queryBus
}
