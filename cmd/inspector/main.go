package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/KimMachineGun/automemlimit"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
	"github.com/peterbourgon/ff/v4/ffyaml"
	"github.com/replicate/go/logging"
	"github.com/replicate/go/must"
	"github.com/replicate/go/version"
	_ "go.uber.org/automaxprocs"

	"github.com/replicate/request-inspector/internal/config"
	"github.com/replicate/request-inspector/internal/service"
)

var logger = logging.New("inspector")

func main() {
	log := logger.Sugar()

	cfg := config.Default()
	flags := ff.NewFlagSet("inspector")
	must.Do(flags.AddStruct(&cfg))
	_ = flags.StringLong("config", "", "YAML config file")

	cmd := &ff.Command{
		Name:      "inspector",
		Usage:     "inspector [FLAGS]",
		ShortHelp: "echo every HTTP request back as JSON and print it to stdout",
		Flags:     flags,
		Exec: func(ctx context.Context, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			log.Infow("configuration",
				"addr", cfg.Addr(),
				"read-timeout", cfg.ReadTimeout,
				"read-header-timeout", cfg.ReadHeaderTimeout,
				"write-timeout", cfg.WriteTimeout,
				"max-body-bytes", cfg.MaxBodyBytes,
				"quiet", cfg.Quiet,
			)

			svc := service.New(cfg, os.Stdout, logger)
			if err := svc.Initialize(ctx); err != nil {
				return err
			}
			return svc.Run(ctx)
		},
	}

	err := cmd.Parse(os.Args[1:],
		ff.WithEnvVarPrefix("INSPECTOR"),
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ffyaml.Parse),
	)
	switch {
	case errors.Is(err, ff.ErrHelp):
		must.Get(fmt.Fprintln(os.Stderr, ffhelp.Command(cmd)))
		os.Exit(0)
	case err != nil:
		log.Error(err)
		must.Get(fmt.Fprintln(os.Stderr, ffhelp.Command(cmd)))
		os.Exit(1)
	}

	log.Infow("starting request inspector", "version", version.Version())
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
		s := <-ch
		log.Infow("stopping request inspector", "signal", s)
		cancel()
	}()
	if err := cmd.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error(err)
		os.Exit(1)
	}
	log.Info("shutdown completed normally")
}
