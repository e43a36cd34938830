/*
Discordsend is a CLI tool for sending messages to Discord through the REST API.

Usage:

	discordsend [global options] command [command options]

Commands are:

	whoami   verify the configured token and show the bot identity
	send     post a message to a channel immediately
	queue    add a message to the persistent outbox
	drain    run the outbox senders until interrupted
	stats    show outbox statistics
	help, h  Shows a list of commands or help for one command

Global flags are:

	--config value  path to the configuration file
	--help, -h      show help
	--version, -v   print the version
*/
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"
	bolt "go.etcd.io/bbolt"

	"github.com/arenborg/discordrest/discord"
	"github.com/arenborg/discordrest/internal/config"
	"github.com/arenborg/discordrest/internal/consoletable"
	"github.com/arenborg/discordrest/outbox"
	"github.com/arenborg/discordrest/rest"
)

const (
	configFilename  = "discordsend.toml"
	dbFileName      = "discordsend.db"
	boltOpenTimeout = 5 * time.Second
)

// Overwritten with current tag when released
var Version = "0.2.0"

func main() {
	var cfg config.Config
	var client *rest.Client
	app := &cli.App{
		Name:    "discordsend",
		Usage:   "send messages to Discord through the REST API",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "path to the configuration file",
				Value: ".",
			},
		},
		Before: func(ctx *cli.Context) error {
			p := filepath.Join(ctx.String("config"), configFilename)
			var err error
			cfg, err = config.FromFile(p)
			if err != nil {
				return fmt.Errorf("config error: %w", err)
			}
			slog.SetLogLoggerLevel(cfg.App.LoggerLevel())
			opts := []rest.Option{
				rest.WithAPIVersion(cfg.App.APIVersion),
				rest.WithLocale(cfg.App.Locale),
				rest.WithHTTPClient(&http.Client{Timeout: time.Duration(cfg.App.Timeout) * time.Second}),
			}
			proxyURL, err := cfg.Proxy.ProxyURL()
			if err != nil {
				return err
			}
			if proxyURL != nil {
				opts = append(opts, rest.WithProxy(proxyURL))
			}
			client = rest.NewClient(cfg.App.Token, opts...)
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "whoami",
				Usage: "verify the configured token and show the bot identity",
				Action: func(ctx *cli.Context) error {
					u, err := client.Login(context.Background())
					if err != nil {
						return err
					}
					fmt.Printf("%s (%s)\n", u.Tag(), u.ID)
					return nil
				},
			},
			{
				Name:  "send",
				Usage: "post a message to a channel immediately",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "channel", Usage: "channel name from the config or a raw channel ID", Required: true},
					&cli.StringFlag{Name: "content", Usage: "message content", Required: true},
					&cli.StringFlag{Name: "file", Usage: "path of a file to attach"},
				},
				Action: func(ctx *cli.Context) error {
					channelID, err := resolveChannel(cfg, ctx.String("channel"))
					if err != nil {
						return err
					}
					params := rest.MessageParams{Content: ctx.String("content")}
					if p := ctx.String("file"); p != "" {
						f, err := os.Open(p)
						if err != nil {
							return err
						}
						defer f.Close()
						file, err := rest.NewFile(filepath.Base(p), f)
						if err != nil {
							return err
						}
						params.Files = []*rest.File{file}
					}
					m, err := client.SendMessage(context.Background(), channelID, params)
					if err != nil {
						return err
					}
					fmt.Printf("Message %s posted\n", m.ID)
					return nil
				},
			},
			{
				Name:  "queue",
				Usage: "add a message to the persistent outbox",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "channel", Usage: "channel name from the config", Required: true},
					&cli.StringFlag{Name: "content", Usage: "message content", Required: true},
				},
				Action: func(ctx *cli.Context) error {
					name := ctx.String("channel")
					channelID, err := resolveChannel(cfg, name)
					if err != nil {
						return err
					}
					db, err := openDB(cfg)
					if err != nil {
						return err
					}
					defer db.Close()
					q, err := outbox.NewQueue(db, name)
					if err != nil {
						return err
					}
					m := outbox.Message{ChannelID: channelID, Content: ctx.String("content"), QueuedAt: time.Now().UTC()}
					v, err := m.MarshalBytes()
					if err != nil {
						return err
					}
					if err := q.Put(v); err != nil {
						return err
					}
					fmt.Printf("Queued. %d message(s) waiting for %s\n", q.Size(), name)
					return nil
				},
			},
			{
				Name:  "drain",
				Usage: "run the outbox senders until interrupted",
				Action: func(ctx *cli.Context) error {
					db, err := openDB(cfg)
					if err != nil {
						return err
					}
					defer db.Close()
					svc := outbox.NewService(client, db)
					for _, ch := range cfg.Channels {
						if err := svc.AddDestination(ch.Name); err != nil {
							return err
						}
					}
					defer svc.Close()
					sc := make(chan os.Signal, 1)
					signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
					<-sc
					return nil
				},
			},
			{
				Name:  "stats",
				Usage: "show outbox statistics",
				Action: func(ctx *cli.Context) error {
					db, err := openDB(cfg)
					if err != nil {
						return err
					}
					defer db.Close()
					table := consoletable.New("Outbox", "Name", "Queued", "Channel")
					for _, ch := range cfg.Channels {
						q, err := outbox.NewQueue(db, ch.Name)
						if err != nil {
							return err
						}
						table.AddRow(ch.Name, q.Size(), ch.ID)
					}
					table.Print()
					return nil
				},
			},
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func openDB(cfg config.Config) (*bolt.DB, error) {
	p := filepath.Join(cfg.App.DBPath, dbFileName)
	return bolt.Open(p, 0600, &bolt.Options{Timeout: boltOpenTimeout})
}

// resolveChannel resolves a configured channel name, falling back to parsing
// the value as a raw channel ID.
func resolveChannel(cfg config.Config, name string) (discord.Snowflake, error) {
	for _, ch := range cfg.Channels {
		if ch.Name == name {
			return ch.Snowflake(), nil
		}
	}
	s, err := discord.ParseSnowflake(name)
	if err != nil {
		return 0, fmt.Errorf("unknown channel: %s", name)
	}
	return s, nil
}
