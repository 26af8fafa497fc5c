package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	goshape "github.com/reoring/goshape"
	"github.com/reoring/goshape/i18n"
	"github.com/reoring/goshape/schemafile"
	"github.com/reoring/goshape/source"
)

// Environment variables backing the persistent flags.
const (
	EnvLogLevel  = "GOSHAPE_LOG_LEVEL"
	EnvLogFormat = "GOSHAPE_LOG_FORMAT"
	EnvLang      = "GOSHAPE_LANG"
)

// stdinArg reads the value from standard input.
const stdinArg = "-"

// errRejected signals a value that failed validation. The report has
// already been printed.
var errRejected = errors.New("value rejected")

type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	logLevel  string
	logFormat string
	lang      string

	log zerolog.Logger
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	a := &app{in: in, out: out, errOut: errOut, log: zerolog.Nop()}

	root := &cobra.Command{
		Use:   "goshape",
		Short: "Check JSON and YAML values against goshape schema documents",
		Long: `goshape loads a schema document (YAML or JSON) and checks values against it.

validate rejects unknown keys; extract drops them and prints what is left.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return a.setup()
		},
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	f := root.PersistentFlags()
	f.StringVar(&a.logLevel, "log-level", envOr(EnvLogLevel, "warn"), "log level (trace, debug, info, warn, error)")
	f.StringVar(&a.logFormat, "log-format", envOr(EnvLogFormat, "console"), "log format (console, json)")
	f.StringVar(&a.lang, "lang", envOr(EnvLang, "en"), "language of failure reasons ("+strings.Join(i18n.Languages(), ", ")+")")

	root.AddCommand(a.checkCmd(), a.validateCmd(), a.extractCmd())
	return root
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func (a *app) setup() error {
	level, err := zerolog.ParseLevel(a.logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q", a.logLevel)
	}
	switch a.logFormat {
	case "console":
		w := zerolog.ConsoleWriter{Out: a.errOut, TimeFormat: time.RFC3339}
		a.log = zerolog.New(w).Level(level).With().Timestamp().Logger()
	case "json":
		a.log = zerolog.New(a.errOut).Level(level).With().Timestamp().Logger()
	default:
		return fmt.Errorf("invalid log format %q (valid: console, json)", a.logFormat)
	}
	if !slices.Contains(i18n.Languages(), a.lang) {
		return fmt.Errorf("invalid language %q (valid: %s)", a.lang, strings.Join(i18n.Languages(), ", "))
	}
	i18n.SetLanguage(a.lang)
	return nil
}

func (a *app) loadSchema(path string) (*goshape.Validated, error) {
	s, err := schemafile.CompileFile(path)
	if err != nil {
		return nil, err
	}
	a.log.Debug().Str("schema", path).Stringer("root", s.Schema().Class()).Msg("schema loaded")
	return s, nil
}

// readValue decodes a value file, or standard input for "-". Standard input
// is read as JSON.
func (a *app) readValue(arg string) (any, error) {
	if arg == stdinArg {
		data, err := io.ReadAll(a.in)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return source.JSON(data)
	}
	data, err := os.ReadFile(arg)
	if err != nil {
		return nil, err
	}
	v, err := source.Decode(arg, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", arg, err)
	}
	return v, nil
}

// reject prints a validation failure and returns errRejected. Other errors
// are returned unchanged.
func (a *app) reject(err error, showValue bool) error {
	iss, ok := goshape.AsIssue(err)
	if !ok {
		return err
	}
	a.log.Info().Str("code", iss.Code).Str("field", iss.Path()).Msg("value rejected")

	at := iss.Path()
	if at == "" {
		at = "(root)"
	}
	fmt.Fprintf(a.out, "invalid: %s: %s [%s]\n", at, iss.Reason, iss.Code)

	var verr *goshape.ValueInvalidError
	if showValue && errors.As(err, &verr) {
		b, encErr := source.EncodeJSON(verr.PotentiallyHarmfulValue())
		if encErr != nil {
			return fmt.Errorf("encode rejected value: %w", encErr)
		}
		fmt.Fprintf(a.out, "value: %s\n", b)
	}
	return errRejected
}
