package deps

import (
	"context"
	"dashboard/internal/config"
	dl "dashboard/internal/core/domain/logging"
	drl "dashboard/internal/core/domain/rate_limiter"
	duow "dashboard/internal/core/domain/unit_of_work"
	"dashboard/internal/core/domain/user"
	uow "dashboard/internal/db/unit_of_work"
	dbuser "dashboard/internal/db/user"
	"dashboard/internal/implementations/email"
	"dashboard/internal/implementations/logging"
	passwordhasher "dashboard/internal/implementations/password_hasher"
	passwordresettoken "dashboard/internal/implementations/password_reset_token"
	ratelimiter "dashboard/internal/implementations/rate_limiter"
	"dashboard/internal/rabbitmq"
	passwordresetlink "dashboard/internal/rabbitmq/publishers/password_reset_link"
	"fmt"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v9"
	"github.com/jackc/pgx/v4/pgxpool"
)

type Deps struct {
	Config    *config.Config
	AwsConfig aws.Config
	Logger    dl.Logger

	DB       *pgxpool.Pool
	Redis    *redis.Client
	Rabbitmq *rabbitmq.Connection

	Now func() time.Time

	UnitOfWork     duow.UnitOfWork
	UserRepository user.UserRepository

	RateLimiter drl.RateLimiter

	EmailSender                 *email.EmailSender
	PasswordHasher              user.PasswordHasher
	PasswordResetTokenGenerator user.PasswordResetTokenGenerator
	PasswordResetLinkSender     user.PasswordResetLinkSender
}

// InitDeps wires everything the HTTP server needs.
func InitDeps() (*Deps, func()) {
	deps := &Deps{}

	deps.initConfig()
	closeLogger := deps.initLogger()
	flushSentry := deps.initSentry()

	closePgxPool := deps.initPgxPool()
	closeRedisClient := deps.initRedisClient()

	deps.Now = func() time.Time { return time.Now().UTC() }

	deps.UnitOfWork = uow.NewPgxUnitOfWork(deps.DB)
	deps.UserRepository = dbuser.NewPgxRepository(deps.DB)
	deps.RateLimiter = ratelimiter.NewRedis(deps.Redis, deps.Logger, deps.Now)
	deps.PasswordHasher = passwordhasher.NewBcrypt(deps.Config.Secret, deps.Config.BcryptHasherCost)
	deps.PasswordResetTokenGenerator = passwordresettoken.NewUUID()

	closeLinkSender := deps.initPasswordResetLinkSender()

	return deps, shutdown(
		closeLinkSender,
		closeRedisClient,
		closePgxPool,
		flushSentry,
		closeLogger,
	)
}

// InitMailerDeps wires the queue consumer that delivers reset links by email.
func InitMailerDeps() (*Deps, func()) {
	deps := &Deps{}

	deps.initConfig()
	if err := deps.Config.ValidateMailer(); err != nil {
		panic(err)
	}
	closeLogger := deps.initLogger()
	flushSentry := deps.initSentry()
	deps.initAwsConfig()
	deps.initEmailSender()
	closeRabbitmqConn := deps.initRabbitmqConnection()

	return deps, shutdown(closeRabbitmqConn, flushSentry, closeLogger)
}

// shutdown runs all but the last close func concurrently, the last one
// (the logger) runs after the rest have finished.
func shutdown(closeFuncs ...func()) func() {
	return func() {
		last := len(closeFuncs) - 1

		var wg sync.WaitGroup
		wg.Add(last)
		for _, closeFunc := range closeFuncs[:last] {
			closeFunc := closeFunc
			go func() {
				closeFunc()
				wg.Done()
			}()
		}
		wg.Wait()

		closeFuncs[last]()
	}
}

func (deps *Deps) initConfig() {
	config, err := config.Load()
	if err != nil {
		panic(err)
	}
	deps.Config = config
}

func (deps *Deps) initAwsConfig() {
	cfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithRegion(deps.Config.AwsRegion),
		awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				deps.Config.AwsAccessKey,
				deps.Config.AwsSecretKey,
				"",
			),
		),
		awsConfig.WithRetryer(func() aws.Retryer {
			return retry.AddWithMaxAttempts(
				retry.AddWithMaxBackoffDelay(retry.NewStandard(), time.Second*5),
				3,
			)
		}),
	)
	if err != nil {
		panic(err)
	}
	deps.AwsConfig = cfg
}

func (deps *Deps) initEmailSender() {
	deps.EmailSender = email.NewEmailSender(
		deps.AwsConfig,
		deps.Config.AwsEmailSender,
		deps.Config.AwsEmailPasswordResetTemplate,
	)
}

func (deps *Deps) initLogger() func() {
	logger := logging.NewZapLogger(deps.Config.IsTestMode)
	deps.Logger = logger
	return func() { logger.Sync() }
}

func (deps *Deps) initPgxPool() func() {
	db, err := pgxpool.Connect(context.Background(), deps.Config.PostgresqlURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to DB.", dl.Entry("err", err))
		panic(err)
	}
	deps.DB = db
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down DB connection.")
		db.Close()
		deps.Logger.Info(context.Background(), "DB connection shut down.")
	}
}

func (deps *Deps) initRedisClient() func() {
	redisOpt, err := redis.ParseURL(deps.Config.RedisURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not parse Redis URL.", dl.Entry("err", err))
		panic(err)
	}
	redisClient := redis.NewClient(redisOpt)
	deps.Redis = redisClient
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down Redis client.")
		redisClient.Close()
		deps.Logger.Info(context.Background(), "Redis client shut down.")
	}
}

func (deps *Deps) initRabbitmqConnection() func() {
	rabbitmqConnection, err := rabbitmq.Dial(deps.Config.RabbitmqURL, deps.Logger)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to RabbitMQ.", dl.Entry("err", err))
		panic("could not connect to RabbitMQ")
	}
	deps.Rabbitmq = rabbitmqConnection
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down RabbitMQ connection.")
		rabbitmqConnection.Close()
		deps.Logger.Info(context.Background(), "RabbitMQ connection shut down.")
	}
}

func (deps *Deps) initPasswordResetLinkSender() func() {
	switch deps.Config.NotificationTransport {
	case config.NotificationTransportRabbitMQ:
		closeRabbitmqConn := deps.initRabbitmqConnection()
		closeChannel := deps.initRabbitmqPasswordResetLinkPublisher()
		return func() {
			closeChannel()
			closeRabbitmqConn()
		}
	default:
		deps.initAwsConfig()
		deps.initEmailSender()
		deps.PasswordResetLinkSender = deps.EmailSender
		return func() {}
	}
}

func (deps *Deps) initRabbitmqPasswordResetLinkPublisher() func() {
	rabbitmqChannel, err := deps.Rabbitmq.Channel()
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ channel.", dl.Entry("err", err))
		panic(err)
	}

	queue := deps.Config.RabbitmqPasswordResetQueue
	if err := rabbitmqChannel.DeclareQueue(queue); err != nil {
		deps.Logger.Error(
			context.Background(),
			"Could not create RabbitMQ queue.",
			dl.Entry("err", err),
			dl.Entry("queue", queue),
		)
		panic(err)
	}

	deps.PasswordResetLinkSender = passwordresetlink.NewRabbitMQ(deps.Logger, rabbitmqChannel, queue)
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down password reset link publisher.")
		rabbitmqChannel.Close()
		deps.Logger.Info(context.Background(), "Password reset link publisher shut down.")
	}
}

func (deps *Deps) initSentry() func() {
	if deps.Config.SentryDsn != nil {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              deps.Config.SentryDsn.String(),
			TracesSampleRate: 0.01,
		})
		if err != nil {
			panic(fmt.Sprintf("could not init Sentry: %v\n", err))
		}
		deps.Logger.Info(context.Background(), "Sentry has been successfully initialized.")
		return func() {
			ok := sentry.Flush(5 * time.Second)
			deps.Logger.Info(context.Background(), "Sentry events flushed.", dl.Entry("ok", ok))
		}
	}

	deps.Logger.Info(context.Background(), "Sentry is disabled.")
	return func() {}
}
