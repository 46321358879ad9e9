package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	paho_mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/jackc/pgx/v5"
	"github.com/robfig/cron/v3"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/anicoll/homgar-integration/internal/pkg/cache"
	"github.com/anicoll/homgar-integration/internal/pkg/config"
	"github.com/anicoll/homgar-integration/internal/pkg/database"
	"github.com/anicoll/homgar-integration/internal/pkg/database/migration"
	"github.com/anicoll/homgar-integration/internal/pkg/devices"
	"github.com/anicoll/homgar-integration/internal/pkg/homgar"
	"github.com/anicoll/homgar-integration/internal/pkg/model"
	"github.com/anicoll/homgar-integration/internal/pkg/mqtt"
	"github.com/anicoll/homgar-integration/internal/pkg/publisher"
)

func HomgarCommand(ctx *cli.Context) error {
	cfg := &config.Config{
		HomgarCfg: &config.HomgarConfig{
			Email:        ctx.String("homgar-email"),
			Password:     ctx.String("homgar-password"),
			AreaCode:     ctx.String("homgar-area-code"),
			APIBase:      ctx.String("homgar-api-base"),
			CacheFile:    ctx.String("cache-file"),
			PollInterval: ctx.Duration("poll-interval"),
		},
		MqttCfg: &config.MqttConfig{
			Host:     ctx.String("mqtt-host"),
			Username: ctx.String("mqtt-user"),
			Password: ctx.String("mqtt-pass"),
		},
		DatabaseURL:      ctx.String("database-url"),
		MigrationsFolder: ctx.String("migrations-folder"),
		LogLevel:         ctx.String("log-level"),
	}

	return run(ctx.Context, cfg)
}

func run(ctx context.Context, cfg *config.Config) error {
	errorChan := make(chan error, 1000)
	var err error

	eg, ctx := errgroup.WithContext(ctx)
	logCfg := zap.NewProductionConfig()

	logCfg.Level, err = zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logCfg.OutputPaths = []string{"stdout"}
	logCfg.ErrorOutputPaths = []string{"stdout"}
	logCfg.Sampling = nil
	logger := zap.Must(logCfg.Build(zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel)))
	defer func() {
		_ = logger.Sync() // flushes buffer, if any.
	}()
	zap.ReplaceGlobals(logger)

	creds, err := cache.Load(cfg.HomgarCfg.CacheFile)
	if err != nil {
		return err
	}

	if err := migration.Migrate(cfg.DatabaseURL, cfg.MigrationsFolder); err != nil {
		return err
	}
	conn, err := pgx.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	db := database.NewDatabase(conn)
	defer db.Close()

	if err := publisher.RegisterPublisher("postgres", db); err != nil {
		return err
	}

	if cfg.MqttCfg.Host != "" {
		opts := paho_mqtt.NewClientOptions().
			AddBroker(cfg.MqttCfg.Host).
			SetUsername(cfg.MqttCfg.Username).
			SetPassword(cfg.MqttCfg.Password).
			SetClientID("homgar-integration")
		mqttSvc := mqtt.New(paho_mqtt.NewClient(opts))
		if err := mqttSvc.Connect(); err != nil {
			return err
		}
		if err := publisher.RegisterPublisher("mqtt", mqttSvc); err != nil {
			return err
		}
	}

	svc := homgar.New(cfg.HomgarCfg, creds)

	eg.Go(func() error {
		return cronDbCleanup(db, errorChan)
	})

	eg.Go(func() error {
		return pollLoop(ctx, svc, cfg.HomgarCfg, errorChan)
	})

	eg.Go(func() error {
		// handle any async errors from the poll and cron jobs
		for {
			select {
			case err := <-errorChan:
				if errors.Is(err, errCron) {
					logger.Error("cron error", zap.Error(err))
					return err
				}
				logger.Error("async error", zap.Error(err))
			case <-ctx.Done():
				logger.Info("context done")
				return ctx.Err()
			}
		}
	})

	return eg.Wait()
}

var (
	errCron = errors.New("cron error")
	errPoll = errors.New("poll error")
)

func pollLoop(ctx context.Context, svc HomgarService, cfg *config.HomgarConfig, errChan chan error) error {
	if err := pollOnce(ctx, svc, cfg); err != nil {
		return err
	}

	c := cron.New()
	if _, err := c.AddFunc(fmt.Sprintf("@every %s", cfg.PollInterval), func() {
		if err := pollOnce(context.Background(), svc, cfg); err != nil {
			zap.L().Error("poll failed", zap.Error(err))
			errChan <- errPoll
		}
	}); err != nil {
		return err
	}

	c.Run()
	return nil
}

// pollOnce runs one full poll cycle: refresh the login, walk every home and
// hub, apply the latest status to the device tree and publish the decoded
// readings.
func pollOnce(ctx context.Context, svc HomgarService, cfg *config.HomgarConfig) error {
	if err := svc.EnsureLoggedIn(ctx, cfg.Email, cfg.Password); err != nil {
		return err
	}

	homes, err := svc.GetHomes(ctx)
	if err != nil {
		return err
	}

	for _, home := range homes {
		hubs, err := svc.GetDevicesForHome(ctx, home.HID)
		if err != nil {
			return err
		}
		for _, hub := range hubs {
			if err := svc.UpdateDeviceStatus(ctx, hub); err != nil {
				return err
			}

			toPublish := make(map[model.Device][]model.DeviceStatus)
			for _, dev := range append([]devices.Device{hub}, hub.Tree().Subdevices...) {
				pubDev := devices.PublisherDevice(dev)
				if err := publisher.RegisterDevice(&pubDev); err != nil {
					return err
				}
				toPublish[pubDev] = dev.Readings()
			}

			publishCtx, cancel := context.WithTimeout(ctx, time.Second*5)
			err := publisher.PublishData(publishCtx, toPublish)
			cancel()
			if err != nil {
				return err
			}
			zap.L().Info("updated hub", zap.Int64("hid", home.HID), zap.String("hub", hub.String()))
		}
	}
	return nil
}

func cronDbCleanup(db *database.Database, errChan chan error) error {
	if err := cleanupOnce(context.Background(), db); err != nil {
		return err
	}

	// CRON automation
	c := cron.New()
	if _, err := c.AddFunc("0 3 * * *", func() {
		if err := cleanupOnce(context.Background(), db); err != nil {
			zap.L().Error("error cleaning up database", zap.Error(err))
			errChan <- errCron
			return
		}
	}); err != nil {
		return err
	}

	c.Run()
	return nil
}

// cleanupOnce drops aged-out rows and reports which sensors survive with a
// current value.
func cleanupOnce(ctx context.Context, db *database.Database) error {
	if err := db.Cleanup(ctx); err != nil {
		return err
	}
	latest, err := db.GetLatestProperties(ctx)
	if err != nil {
		return err
	}
	zap.L().Info("cleaned up old readings",
		zap.Int("sensors", len(latest)),
		zap.Strings("identifiers", latest.Identifiers()))
	return nil
}
