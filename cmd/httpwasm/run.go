package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/google/subcommands"

	httpapi "github.com/reglet-dev/http-wasm-guest/api"
	"github.com/reglet-dev/http-wasm-guest/config"
	"github.com/reglet-dev/http-wasm-guest/host"
	"github.com/reglet-dev/http-wasm-guest/hostfuncs"
	guestlog "github.com/reglet-dev/http-wasm-guest/log"
)

// headerFlags collects repeated -H "Name: value" flags.
type headerFlags []string

func (h *headerFlags) String() string {
	return strings.Join(*h, ", ")
}

func (h *headerFlags) Set(v string) error {
	if _, _, err := parseHeader(v); err != nil {
		return err
	}
	*h = append(*h, v)
	return nil
}

func parseHeader(v string) (name, value string, err error) {
	name, value, ok := strings.Cut(v, ":")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return "", "", fmt.Errorf("header %q is not in 'Name: value' form", v)
	}
	return name, strings.TrimSpace(value), nil
}

// Run implements subcommands.Command for the "run" command.
type Run struct {
	method       string
	uri          string
	version      string
	sourceAddr   string
	headers      headerFlags
	body         string
	bodyFile     string
	configData   string
	configFile   string
	configFormat string
	status       uint
	upstreamBody string

	out io.Writer
}

// Name implements subcommands.Command.
func (*Run) Name() string {
	return "run"
}

// Synopsis implements subcommands.Command.
func (*Run) Synopsis() string {
	return "runs one request through a guest and prints the response"
}

// Usage implements subcommands.Command.
func (*Run) Usage() string {
	return "run [flags] <guest.wasm>\n"
}

// SetFlags implements subcommands.Command.
func (r *Run) SetFlags(f *flag.FlagSet) {
	f.StringVar(&r.method, "method", "GET", "request method.")
	f.StringVar(&r.uri, "uri", "/", "request URI.")
	f.StringVar(&r.version, "version", "HTTP/1.1", "request protocol version.")
	f.StringVar(&r.sourceAddr, "source-addr", "127.0.0.1:54321", "client address reported to the guest.")
	f.Var(&r.headers, "H", "request header as 'Name: value'. May be repeated.")
	f.StringVar(&r.body, "body", "", "request body.")
	f.StringVar(&r.bodyFile, "body-file", "", "file holding the request body.")
	f.StringVar(&r.configData, "config", "", "guest configuration.")
	f.StringVar(&r.configFile, "config-file", "", "file holding the guest configuration.")
	f.StringVar(&r.configFormat, "config-format", "", "convert the configuration from json, yaml or toml to JSON before passing it on.")
	f.UintVar(&r.status, "status", 200, "status the upstream handler responds with.")
	f.StringVar(&r.upstreamBody, "upstream-body", "", "body the upstream handler responds with.")
}

// Execute implements subcommands.Command.Execute.
func (r *Run) Execute(ctx context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	wasm, err := os.ReadFile(f.Arg(0))
	if err != nil {
		return fatalf("error reading guest: %v", err)
	}

	ex, err := r.exchange()
	if err != nil {
		return fatalf("error: %v", err)
	}

	e, err := host.NewExecutor(ctx)
	if err != nil {
		return fatalf("error creating runtime: %v", err)
	}
	defer e.Close(ctx)

	g, err := e.LoadGuest(ctx, wasm, ex)
	if err != nil {
		replayLogs(ctx, ex)
		return fatalf("error loading guest: %v", err)
	}
	defer g.Close(ctx)

	res, err := g.Handle(ctx, ex, r.upstream())
	replayLogs(ctx, ex)
	if err != nil {
		return fatalf("error handling request: %v", err)
	}
	slog.DebugContext(ctx, "guest finished", "next", res.Next, "req_ctx", res.ReqCtx)

	printResponse(r.writer(), ex)
	return subcommands.ExitSuccess
}

func (r *Run) writer() io.Writer {
	if r.out != nil {
		return r.out
	}
	return os.Stdout
}

// exchange builds the in-memory request from the flags.
func (r *Run) exchange() (*hostfuncs.Exchange, error) {
	opts := []hostfuncs.Option{
		hostfuncs.WithMethod(r.method),
		hostfuncs.WithURI(r.uri),
		hostfuncs.WithProtocolVersion(r.version),
		hostfuncs.WithSourceAddr(r.sourceAddr),
		hostfuncs.WithResponseBody([]byte(r.upstreamBody)),
	}
	for _, h := range r.headers {
		name, value, err := parseHeader(h)
		if err != nil {
			return nil, err
		}
		opts = append(opts, hostfuncs.WithRequestHeader(name, value))
	}

	body, err := readInline(r.body, r.bodyFile)
	if err != nil {
		return nil, fmt.Errorf("request body: %w", err)
	}
	opts = append(opts, hostfuncs.WithRequestBody(body))

	cfg, err := readInline(r.configData, r.configFile)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if r.configFormat != "" && len(cfg) > 0 {
		format, err := config.ParseFormat(r.configFormat)
		if err != nil {
			return nil, err
		}
		if cfg, err = config.ToJSON(cfg, format); err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
	}
	opts = append(opts, hostfuncs.WithConfig(cfg))

	return hostfuncs.NewExchange(opts...), nil
}

// upstream stands in for the handler behind the guest.
func (r *Run) upstream() host.NextFunc {
	return func(_ context.Context, h httpapi.Host) error {
		h.SetStatusCode(uint32(r.status)) //nolint:gosec // G115: flag value is a status code
		return nil
	}
}

func readInline(inline, path string) ([]byte, error) {
	if path == "" {
		return []byte(inline), nil
	}
	if inline != "" {
		return nil, fmt.Errorf("set either the inline value or the file, not both")
	}
	return os.ReadFile(path)
}

// replayLogs re-emits what the guest logged through slog.
func replayLogs(ctx context.Context, ex *hostfuncs.Exchange) {
	for _, rec := range ex.Logs() {
		slog.Log(ctx, guestlog.SlogLevel(rec.Level), rec.Message, "source", "guest")
	}
}

func printResponse(w io.Writer, ex *hostfuncs.Exchange) {
	fmt.Fprintf(w, "%d\n", ex.StatusCode())
	fields := ex.Header(httpapi.HeaderKindResponse)
	sort.SliceStable(fields, func(i, j int) bool {
		return strings.ToLower(fields[i].Name) < strings.ToLower(fields[j].Name)
	})
	for _, field := range fields {
		for _, v := range field.Values {
			fmt.Fprintf(w, "%s: %s\n", field.Name, v)
		}
	}
	fmt.Fprintln(w)
	_, _ = w.Write(ex.Body(httpapi.BodyKindResponse))
}

func fatalf(format string, args ...any) subcommands.ExitStatus {
	slog.Error(fmt.Sprintf(format, args...))
	return subcommands.ExitFailure
}
