// Package backup снимает дамп базы внешней утилитой и выгружает его в S3.
package backup

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	svc "addressbook/internal/addressbook/ports/services"
	"addressbook/pkg/logger"
)

const (
	msgRunningDump = "running database dump"
	msgDumpDone    = "database dump finished"
	msgDumpFailed  = "database dump command failed"

	errCtxRunningDump = "running dump command"

	maxOutputInError = 512
)

// ErrEmptyCommand возвращается, если утилита дампа не задана.
var ErrEmptyCommand = errors.New("dump command is empty")

// CommandRunner запускает процесс и возвращает его объединенный вывод.
// Ненулевой код выхода должен приводить к ошибке.
type CommandRunner func(ctx context.Context, name string, args, env []string) ([]byte, error)

// PgDumpOptions описывает подключение и вызов pg_dump.
type PgDumpOptions struct {
	Command  string
	Host     string
	Port     int
	User     string
	Password string
	Database string
	Timeout  time.Duration
	Runner   CommandRunner
}

// PgDump реализует Dumper вызовом pg_dump с массивом аргументов, без shell.
type PgDump struct {
	opts PgDumpOptions
}

var _ svc.Dumper = (*PgDump)(nil)

// NewPgDump создает адаптер дампа. Пустой Runner означает exec.CommandContext.
func NewPgDump(opts PgDumpOptions) *PgDump {
	if opts.Runner == nil {
		opts.Runner = execRunner
	}
	return &PgDump{opts: opts}
}

// Args возвращает аргументы командной строки для файла path.
func (p *PgDump) Args(path string) []string {
	return []string{
		"--file", path,
		"--host", p.opts.Host,
		"--port", strconv.Itoa(p.opts.Port),
		"--username", p.opts.User,
		"--dbname", p.opts.Database,
		"--no-password",
	}
}

// Dump запускает утилиту; успех - только код выхода 0. При ошибке
// недописанный файл удаляется.
func (p *PgDump) Dump(ctx context.Context, path string) error {
	if strings.TrimSpace(p.opts.Command) == "" {
		return ErrEmptyCommand
	}

	log := logger.Log(ctx).With(zap.String("command", p.opts.Command), zap.String("file", path))

	if p.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.opts.Timeout)
		defer cancel()
	}

	env := []string{"PGPASSWORD=" + p.opts.Password}
	started := time.Now()
	log.Info(ctx, msgRunningDump)

	out, err := p.opts.Runner(ctx, p.opts.Command, p.Args(path), env)
	if err != nil {
		_ = os.Remove(path)
		log.Error(ctx, msgDumpFailed, zap.Error(err), zap.String("output", truncate(out)))
		return fmt.Errorf("%s: %w: %s", errCtxRunningDump, err, truncate(out))
	}

	log.Info(ctx, msgDumpDone, zap.Duration("elapsed", time.Since(started)))
	return nil
}

func execRunner(ctx context.Context, name string, args, env []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = append(os.Environ(), env...)

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	err := cmd.Run()
	return out.Bytes(), err //nolint:wrapcheck
}

func truncate(out []byte) string {
	s := strings.TrimSpace(string(out))
	if len(s) > maxOutputInError {
		return s[:maxOutputInError]
	}
	return s
}
