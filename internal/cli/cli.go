package cli

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/SAP-F-2025/scms/internal/config"
	"github.com/SAP-F-2025/scms/internal/presenter"
	"github.com/SAP-F-2025/scms/internal/repositories/rest"
	"github.com/SAP-F-2025/scms/internal/services"
	"github.com/SAP-F-2025/scms/internal/utils"
	"github.com/SAP-F-2025/scms/internal/validator"
)

const usage = `Usage: scms [-api URL] [-timeout D] [-token T] [-y] [-v] <command> [args]

Records:
  students list | add | edit <id> | delete <id>
  courses  list | add | edit <id> | delete <id>

Enrollments:
  student <id>                           student detail with enrolled courses
  course <id>                            course detail with enrolled students
  enroll -student S -course C [-grade G] [-by student|course]
  grade <enrollmentId> <grade>           grade is one of A B C D E F I, or - to clear
  unenroll <enrollmentId>

Files:
  export roster <courseId> [-o file.xlsx]
  export transcript <studentId> [-o file.xlsx]
  import students <file.xlsx>
`

// usageError is a malformed command line; Run answers it with exit code 2
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

func usagef(format string, args ...interface{}) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

// App is one command line invocation
type App struct {
	services  services.ServiceManager
	presenter *presenter.Presenter
	logger    *slog.Logger
	stdin     *bufio.Reader
	stdout    io.Writer
	stderr    io.Writer
}

// Run parses args, executes one command against the relation store and returns the exit code
func Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer, cfg *config.Config) int {
	global := flag.NewFlagSet("scms", flag.ContinueOnError)
	global.SetOutput(stderr)
	global.Usage = func() { fmt.Fprint(stderr, usage) }

	apiURL := global.String("api", cfg.Client.BaseURL, "relation store base URL")
	timeout := global.Duration("timeout", cfg.Client.Timeout, "request timeout")
	token := global.String("token", cfg.Client.Token, "bearer token sent with every request")
	yes := global.Bool("y", false, "answer yes to every confirmation")
	verbose := global.Bool("v", false, "log store requests to stderr")

	if err := global.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if global.NArg() == 0 {
		global.Usage()
		return 2
	}

	level := slog.LevelWarn
	if *verbose {
		level = min(cfg.LogLevel, slog.LevelInfo)
	}
	logger := utils.NewLevelLogger(level, stderr)
	out := presenter.New(stdout, stderr)

	client, err := rest.New(rest.Config{BaseURL: *apiURL, Timeout: *timeout, Token: *token}, logger)
	if err != nil {
		out.Error(err)
		return 2
	}
	defer client.Close()

	app := &App{
		presenter: out,
		logger:    logger,
		stdin:     bufio.NewReader(stdin),
		stdout:    stdout,
		stderr:    stderr,
	}

	var confirmer services.Confirmer = services.ConfirmFunc(app.confirm)
	if *yes {
		confirmer = services.AlwaysConfirm
	}

	app.services = services.NewServiceManager(client, logger, validator.New(), services.ServiceManagerConfig{
		Enrollment: services.EnrollmentServiceConfig{CascadeConcurrency: cfg.Client.CascadeConcurrency},
		Confirmer:  confirmer,
	})
	if err := app.services.Initialize(ctx); err != nil {
		out.Error(err)
		return 1
	}
	defer app.services.Shutdown(context.WithoutCancel(ctx))

	return app.exit(app.dispatch(ctx, global.Args()))
}

func (a *App) exit(err error) int {
	var uerr *usageError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &uerr):
		a.presenter.Error(err)
		fmt.Fprint(a.stderr, usage)
		return 2
	case errors.Is(err, services.ErrCancelled):
		a.presenter.Warn("Cancelled.")
		return 0
	default:
		a.presenter.Error(err)
		return 1
	}
}

func (a *App) dispatch(ctx context.Context, args []string) error {
	command, tail := args[0], args[1:]

	switch command {
	case "students":
		return a.students(ctx, tail)
	case "courses":
		return a.courses(ctx, tail)
	case "student":
		return a.detail(ctx, services.ModeByStudent, tail)
	case "course":
		return a.detail(ctx, services.ModeByCourse, tail)
	case "enroll":
		return a.enroll(ctx, tail)
	case "grade":
		return a.grade(ctx, tail)
	case "unenroll":
		return a.unenroll(ctx, tail)
	case "export":
		return a.export(ctx, tail)
	case "import":
		return a.importFile(ctx, tail)
	case "help":
		fmt.Fprint(a.stdout, usage)
		return nil
	default:
		return usagef("unknown command %q", command)
	}
}

// confirm prompts on stdout and reads one answer line from stdin
func (a *App) confirm(ctx context.Context, prompt string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	fmt.Fprintf(a.stdout, "%s [y/N]: ", prompt)
	line, err := a.stdin.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("failed to read answer: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// newFlags builds a subcommand flag set that reports errors as usage errors
func newFlags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return usagef("%s: %v", fs.Name(), err)
	}
	if fs.NArg() > 0 {
		return usagef("%s: unexpected argument %q", fs.Name(), fs.Arg(0))
	}
	return nil
}

// leadingArgs takes n positional arguments that precede the flags
func leadingArgs(command string, args []string, names ...string) ([]string, []string, error) {
	if len(args) < len(names) {
		return nil, nil, usagef("%s: missing %s", command, names[len(args)])
	}
	for i, name := range names {
		if strings.HasPrefix(args[i], "-") && len(args[i]) > 1 {
			return nil, nil, usagef("%s: missing %s", command, name)
		}
	}
	return args[:len(names)], args[len(names):], nil
}

// flagSet reports which flags were given on the command line
func flagSet(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}
