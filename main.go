package main

import (
	"log"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/anicoll/homgar-integration/cmd"
)

func main() {
	app := &cli.App{
		Name:   "homgar-controller",
		Usage:  "poller for HomGar irrigation and weather devices",
		Action: cmd.HomgarCommand,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "homgar-email",
				EnvVars:  []string{"HOMGAR_EMAIL"},
				Required: true,
			},
			&cli.StringFlag{
				Name:     "homgar-password",
				EnvVars:  []string{"HOMGAR_PASSWORD"},
				Required: true,
			},
			&cli.StringFlag{
				Name:    "homgar-area-code",
				EnvVars: []string{"HOMGAR_AREA_CODE"},
				Value:   "31",
			},
			&cli.StringFlag{
				Name:    "homgar-api-base",
				EnvVars: []string{"HOMGAR_API_BASE"},
				Value:   "https://region3.homgarus.com",
			},
			&cli.StringFlag{
				Name:    "cache-file",
				EnvVars: []string{"HOMGAR_CACHE_FILE"},
				Value:   "",
			},
			&cli.StringFlag{
				Name:    "mqtt-host",
				EnvVars: []string{"MQTT_HOST"},
				Value:   "",
			},
			&cli.StringFlag{
				Name:    "mqtt-pass",
				EnvVars: []string{"MQTT_PASS"},
				Value:   "",
			},
			&cli.StringFlag{
				Name:    "mqtt-user",
				EnvVars: []string{"MQTT_USER"},
				Value:   "",
			},
			&cli.StringFlag{
				Name:     "database-url",
				EnvVars:  []string{"DATABASE_URL"},
				Required: true,
			},
			&cli.StringFlag{
				Name:     "migrations-folder",
				EnvVars:  []string{"MIGRATIONS_FOLDER"},
				Required: true,
			},
			&cli.DurationFlag{
				Name:    "poll-interval",
				EnvVars: []string{"POLL_INTERVAL"},
				Value:   5 * time.Minute,
			},
			&cli.StringFlag{
				Name:    "log-level",
				EnvVars: []string{"LOG_LEVEL"},
				Value:   "INFO",
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
