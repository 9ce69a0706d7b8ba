// Command addressbookctl обслуживает адресную книгу из командной строки:
// экспорт и импорт CSV, резервное копирование и учетные записи.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"addressbook/internal/addressbook/bootstrap"
	"addressbook/internal/addressbook/config"
	"addressbook/pkg/logger"
)

var version = "dev"

// CLI - корневая структура команд.
type CLI struct {
	Version  kong.VersionFlag `help:"Show version." short:"V"`
	Config   string           `help:"Path to YAML configuration." type:"path" env:"ADDRESSBOOK_CONFIG_PATH"`
	LogLevel string           `help:"Log level." default:"warn" enum:"debug,info,warn,error"`

	Export ExportCmd `cmd:"" help:"Export all contacts as CSV."`
	Import ImportCmd `cmd:"" help:"Import contacts from a CSV file."`
	Backup BackupCmd `cmd:"" help:"Dump the database with pg_dump."`
	User   UserCmd   `cmd:"" help:"Manage login accounts."`
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("addressbookctl"),
		kong.Description("Address book maintenance tool."),
		kong.Vars{"version": version},
	)

	log, err := logger.NewLogger(logger.Development, cli.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
	logger.SetGlobalLogger(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	rt := &runtime{
		ctx:  logger.NewRequestIDContext(ctx, ""),
		out:  os.Stdout,
		in:   os.Stdin,
		open: openDeps(cli.Config),
	}

	err = kctx.Run(rt)
	stop()
	_ = log.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}

// openDeps подключается к базе так же, как сервер, но без хранилища сессий.
func openDeps(configPath string) func(context.Context) (*deps, error) {
	return func(ctx context.Context) (*deps, error) {
		cfg, err := config.LoadFrom(ctx, configPath)
		if err != nil {
			return nil, err //nolint:wrapcheck
		}

		components, err := bootstrap.New(ctx, cfg)
		if err != nil {
			return nil, err //nolint:wrapcheck
		}

		return &deps{
			Transfer: components.Transfer,
			Backup:   components.Backup,
			Auth:     components.Auth(nil),
			Close:    components.Close,
		}, nil
	}
}
