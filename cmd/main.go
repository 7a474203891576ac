package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"
	"gopkg.in/natefinch/lumberjack.v2"
)

type VersionTags struct {
	Version   string
	GitCommit string
	BuildDate string
	BuildOS   string
}

var logLevel string
var logFile string

func Main(info VersionTags) {
	app := NewApp(info)
	err := app.Run(os.Args)
	if err != nil {
		logrus.Fatal(err)
	}
}

func NewApp(info VersionTags) *cli.App {
	app := cli.NewApp()

	app.EnableBashCompletion = true

	app.Name = "rulecheck"
	app.Usage = "check messages against numbered grammar rules"
	app.Version = info.Version
	app.Metadata = map[string]interface{}{
		"commit": info.GitCommit,
		"date":   info.BuildDate,
		"os":     info.BuildOS,
	}

	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:        "log-level",
			Usage:       "one of panic, fatal, error, warn, info, debug or trace",
			EnvVar:      "RULECHECK_LOG_LEVEL",
			Value:       "info",
			Destination: &logLevel,
		},
		cli.StringFlag{
			Name:        "log-file",
			Usage:       "write logs to a rotating file instead of stderr",
			TakesFile:   true,
			Destination: &logFile,
		},
	}
	app.Before = setupLogging

	app.Commands = []cli.Command{
		countCommand,
		compareCommand,
		patternCommand,
		dumpCommand,
		genCommand,
	}
	return app
}

func setupLogging(c *cli.Context) error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return err
	}
	logrus.SetLevel(level)
	if logFile != "" {
		logrus.SetOutput(&lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		})
	}
	return nil
}
