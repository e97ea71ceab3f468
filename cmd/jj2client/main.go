package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"jj2client/internal/bot"
	"jj2client/internal/config"
	"jj2client/internal/dispatch"
	"jj2client/internal/packet"
	"jj2client/internal/session"
	"jj2client/internal/transport"
)

func main() {
	app := &cli.App{
		Name:  "jj2client",
		Usage: "connect to a Jazz Jackrabbit 2 server as a spectator-style bot",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "jj2client.yaml",
				Usage:   "path to the client's YAML config file",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		zerolog.New(os.Stderr).With().Timestamp().Logger().Fatal().Err(err).Msg("jj2client exited")
	}
}

func run(c *cli.Context) error {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).With().Timestamp().Logger()

	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}

	sess := session.New()
	sess.LocalPlayers = cfg.LocalPlayers

	var driver *transport.Driver
	root := bot.BuildRoot(sess, func() {
		log.Info().Msg("server dropped client_id, closing connection")
		if driver != nil {
			driver.Close()
		}
	})
	botProto := bot.BuildBot(root, sess)
	for _, p := range []*dispatch.Protocol{root, botProto} {
		p.OnError = func(pkt packet.Payload, err error) {
			log.Error().Err(err).Str("event", pkt.EventName()).Msg("handler error")
		}
		p.OnUnknownCase = func(pkt packet.Payload) {
			log.Warn().Str("event", pkt.EventName()).Msg("packet not supported by this protocol")
		}
	}
	root.Configure(cfg.SessionConfig())

	driver, err = transport.Dial(cfg.Server.Host, cfg.Server.Port, sess, root, log)
	if err != nil {
		return err
	}
	log.Info().Str("host", cfg.Server.Host).Int("port", cfg.Server.Port).Msg("connected")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return driver.Shutdown(ctx)
}
