package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"addressbook/internal/addressbook/ports/api"
)

// stdio - имя файла, означающее стандартный поток.
const stdio = "-"

var (
	errPasswordMismatch = errors.New("passwords do not match")
	errEmptyPassword    = errors.New("password is empty")
)

// readPassword подменяется в тестах.
var readPassword = term.ReadPassword

// deps - сценарии, нужные командам.
type deps struct {
	Transfer api.TransferUseCase
	Backup   api.BackupUseCase
	Auth     api.AuthUseCase
	Close    func(context.Context)
}

// runtime передается в Run каждой команды через kong.
type runtime struct {
	ctx  context.Context
	out  io.Writer
	in   io.Reader
	open func(context.Context) (*deps, error)
}

func (rt *runtime) with(fn func(d *deps) error) error {
	d, err := rt.open(rt.ctx)
	if err != nil {
		return err
	}
	defer d.Close(rt.ctx)
	return fn(d)
}

// ExportCmd пишет контакты в CSV.
type ExportCmd struct {
	Output string `help:"Output file, '-' for stdout." short:"o" default:"-"`
}

// Run выполняет экспорт.
func (c *ExportCmd) Run(rt *runtime) error {
	return rt.with(func(d *deps) error {
		var buf bytes.Buffer
		count, err := d.Transfer.Export(rt.ctx, &buf)
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}

		if c.Output == stdio {
			_, err = rt.out.Write(buf.Bytes())
			return err //nolint:wrapcheck
		}

		if err := os.WriteFile(c.Output, buf.Bytes(), 0o600); err != nil {
			return fmt.Errorf("export: writing %s: %w", c.Output, err)
		}
		_, err = fmt.Fprintf(rt.out, "exported %d contacts to %s\n", count, c.Output)
		return err //nolint:wrapcheck
	})
}

// ImportCmd загружает контакты из CSV.
type ImportCmd struct {
	File string `arg:"" help:"CSV file, '-' for stdin."`
}

// Run выполняет импорт и печатает отклоненные строки.
func (c *ImportCmd) Run(rt *runtime) error {
	var r io.Reader = rt.in
	if c.File != stdio {
		f, err := os.Open(c.File)
		if err != nil {
			return fmt.Errorf("import: %w", err)
		}
		defer f.Close()
		r = f
	}

	return rt.with(func(d *deps) error {
		result, err := d.Transfer.Import(rt.ctx, r)
		if err != nil {
			return fmt.Errorf("import: %w", err)
		}

		for _, f := range result.Failures {
			fmt.Fprintf(rt.out, "line %d: %s\n", f.Line, f.Reason)
		}
		_, err = fmt.Fprintf(rt.out, "imported %d, skipped %d, failed %d\n",
			result.Imported, result.Skipped, len(result.Failures))
		return err //nolint:wrapcheck
	})
}

// BackupCmd снимает дамп базы.
type BackupCmd struct{}

// Run создает резервную копию.
func (c *BackupCmd) Run(rt *runtime) error {
	return rt.with(func(d *deps) error {
		result, err := d.Backup.Backup(rt.ctx)
		if result != nil && result.File != "" {
			fmt.Fprintf(rt.out, "backup file: %s\n", result.File)
		}
		if err != nil {
			return fmt.Errorf("backup: %w", err)
		}
		if result.ObjectKey != "" {
			fmt.Fprintf(rt.out, "uploaded as: %s\n", result.ObjectKey)
		}
		return nil
	})
}

// UserCmd группирует команды учетных записей.
type UserCmd struct {
	Add UserAddCmd `cmd:"" help:"Create a login account."`
}

// UserAddCmd создает учетную запись; пароль запрашивается без эха.
type UserAddCmd struct {
	Username string `arg:"" help:"Login name."`
	Email    string `help:"Account email." required:""`
}

// Run создает пользователя.
func (c *UserAddCmd) Run(rt *runtime) error {
	password, err := promptPassword(rt.out)
	if err != nil {
		return fmt.Errorf("user add: %w", err)
	}

	return rt.with(func(d *deps) error {
		user, err := d.Auth.CreateUser(rt.ctx, c.Username, c.Email, password)
		if err != nil {
			return fmt.Errorf("user add: %w", err)
		}
		_, err = fmt.Fprintf(rt.out, "created user %s (id %d)\n", user.Username, user.ID)
		return err //nolint:wrapcheck
	})
}

func promptPassword(w io.Writer) (string, error) {
	fmt.Fprint(w, "Password: ")
	first, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return "", err //nolint:wrapcheck
	}

	fmt.Fprint(w, "Repeat password: ")
	second, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return "", err //nolint:wrapcheck
	}

	if len(first) == 0 {
		return "", errEmptyPassword
	}
	if !bytes.Equal(first, second) {
		return "", errPasswordMismatch
	}
	return string(first), nil
}
