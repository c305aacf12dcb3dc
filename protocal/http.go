package protocal

import (
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang-connect-line/configs"
	httpAdapter "golang-connect-line/internal/adapters/input/http"
	lineAdapter "golang-connect-line/internal/adapters/output/line"
	"golang-connect-line/internal/adapters/output/memory"
	"golang-connect-line/internal/adapters/output/postgres"
	"golang-connect-line/internal/adapters/output/transport"
	"golang-connect-line/internal/application"
	"golang-connect-line/internal/ports/output"
	"golang-connect-line/pkg/database_driver/gorm"
	"golang-connect-line/pkg/logger"
	"golang-connect-line/pkg/metrics"

	swagger "github.com/arsmn/fiber-swagger/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
	gormio "gorm.io/gorm"
)

type config struct {
	ENV string `mapstructure:"env"`
}

// ServeHTTP func
func ServeHTTP() error {
	var cfg config
	flag.StringVar(&cfg.ENV, "env", "", "the environment to use")
	flag.Parse()
	configs.InitViper("./configs", cfg.ENV)
	conf := configs.GetViper()

	if err := logger.Init(conf.Log); err != nil {
		return err
	}
	logrus.Info(conf.App.Env)

	m := metrics.New()
	metrics.SetGlobal(m)

	app := fiber.New()
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept,Authorization",
	}))
	app.Use(metrics.Middleware())

	repo, db, err := narrowcastRepository(conf)
	if err != nil {
		return err
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		for range c {
			logrus.Println("Gracefull shut down ...")
			if db != nil {
				gorm.DisconnectPostgres(db)
			}
			err := app.ShutdownWithTimeout(10 * time.Second)
			if err != nil {
				logrus.Println("Error when shutdown server: ", err)
			}
		}
	}()

	// Output adapters
	lineClient, err := lineAdapter.NewLineClientAdapter(
		transport.NewHTTPTransportAdapter(conf.Line.TimeoutSeconds),
		conf.Line.BaseURL,
		conf.Line.ChannelToken,
	)
	if err != nil {
		logrus.Fatalf("Failed to create LINE client: %v", err)
	}

	// Application services
	messagingSrv := application.NewMessagingService(lineClient, repo)
	audienceSrv := application.NewAudienceService(lineClient)
	richMenuSrv := application.NewRichMenuService(lineClient)
	lineWebhookSrv := application.NewLineWebhookService(lineClient)

	// Input adapters
	hdl := httpAdapter.New(messagingSrv, audienceSrv, richMenuSrv, db)
	lineWebhookHdl := httpAdapter.NewLineWebhookHandler(lineWebhookSrv, conf.Line.ChannelSecret)

	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/health", hdl.HealthCheck)
	app.Get("/metrics", metrics.Handler(m))

	httpAdapter.Routes(app.Group("/v1/api"), hdl)

	webhook := app.Group("/webhook")
	{
		webhook.Post("/line", lineWebhookHdl.HandleWebhook)
	}

	logrus.Println("Listerning on port: ", conf.App.Port)
	return app.Listen(":" + conf.App.Port)
}

// narrowcastRepository picks the record store named by storage.driver. The
// returned *gorm.DB is nil for the memory store.
func narrowcastRepository(conf *configs.Config) (output.NarrowcastRepository, *gormio.DB, error) {
	if conf.Storage.IsMemoryStorage() {
		retention := time.Duration(conf.Storage.RetentionMinutes) * time.Minute
		logrus.Infof("Tracking narrowcasts in memory, retention %s", retention)
		return memory.NewNarrowcastRepository(retention), nil, nil
	}

	dbConGorm, err := gorm.ConnectToPostgreSQL(
		conf.Postgres.Host,
		conf.Postgres.Port,
		conf.Postgres.Username,
		conf.Postgres.Password,
		conf.Postgres.DbName,
		conf.Postgres.SSLMode,
	)
	if err != nil {
		return nil, nil, err
	}
	return postgres.NewNarrowcastRepository(dbConGorm.Postgres), dbConGorm.Postgres, nil
}
