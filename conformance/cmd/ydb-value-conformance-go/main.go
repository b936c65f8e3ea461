// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

// Command ydb-value-conformance-go exercises the YDB value codec.
//
//	ydb-value-conformance-go run            # JSON conformance report on stdout
//	ydb-value-conformance-go decode < v.json # decode a protojson Ydb.TypedValue
//	ydb-value-conformance-go arrow > rs.arrows
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli"
	"github.com/ydb-platform/ydb-go-genproto/protos/Ydb"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"google.golang.org/protobuf/encoding/protojson"

	"github.com/ydb-platform/ydb-rs-sdk-sub000/conformance"
	"github.com/ydb-platform/ydb-rs-sdk-sub000/internal/config"
	"github.com/ydb-platform/ydb-rs-sdk-sub000/internal/logger"
	"github.com/ydb-platform/ydb-rs-sdk-sub000/ydbvalue"
	ydbotel "github.com/ydb-platform/ydb-rs-sdk-sub000/ydbvalue/otel"
)

var appVersion = "dev"

var (
	traceFlag = cli.BoolFlag{
		Name:  "trace",
		Usage: "Export decode spans and metrics to stderr",
	}
	logLevelFlag = cli.StringFlag{
		Name:  "log-level",
		Usage: "Override the configured log level",
	}
	inputFlag = cli.StringFlag{
		Name:  "input",
		Usage: "Read from this `FILE` instead of stdin",
	}
	resultSetFlag = cli.BoolFlag{
		Name:  "result-set",
		Usage: "Input is a protojson Ydb.ResultSet instead of a Ydb.TypedValue",
	}
	outputFlag = cli.StringFlag{
		Name:  "output",
		Usage: "Write to this `FILE` instead of stdout",
	}
	zstdFlag = cli.BoolFlag{
		Name:  "zstd",
		Usage: "Compress the Arrow stream with zstd regardless of configuration",
	}
)

// runner carries state set up in Before and torn down in After.
type runner struct {
	in       io.Reader
	out      io.Writer
	cfg      *config.Config
	log      zerolog.Logger
	decoder  *ydbvalue.Decoder
	shutdown []func(context.Context) error
}

func main() {
	app := newApp(&runner{in: os.Stdin, out: os.Stdout})
	if err := app.Run(os.Args); err != nil {
		log.Error().Err(err).Msg("conformance command failed")
		os.Exit(1)
	}
}

func newApp(rt *runner) *cli.App {
	app := cli.NewApp()
	app.Name = "ydb-value-conformance-go"
	app.Usage = "Conformance runner for the YDB value codec"
	app.Version = appVersion
	app.Flags = []cli.Flag{traceFlag, logLevelFlag}
	app.Before = rt.setup
	app.After = rt.teardown
	app.Commands = []cli.Command{
		{
			Name:   "run",
			Usage:  "Round-trip every conformance sample and print a JSON report",
			Action: rt.runConformance,
		},
		{
			Name:   "decode",
			Usage:  "Decode a protojson wire value and print it as JSON",
			Flags:  []cli.Flag{inputFlag, resultSetFlag},
			Action: rt.decode,
		},
		{
			Name:   "arrow",
			Usage:  "Write the sample result set as an Arrow IPC stream",
			Flags:  []cli.Flag{outputFlag, zstdFlag},
			Action: rt.writeArrow,
		},
	}
	app.Action = rt.runConformance
	return app
}

func (rt *runner) setup(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if lvl := c.GlobalString(logLevelFlag.Name); lvl != "" {
		cfg.Log.Level = lvl
	}
	if c.GlobalBool(traceFlag.Name) {
		cfg.Telemetry.Enabled = true
	}

	logger.Setup(cfg.Log.Level, cfg.Log.Format)
	rt.cfg = cfg
	rt.log = logger.Get("conformance")
	rt.decoder = ydbvalue.NewDecoder(ydbvalue.WithLogger(rt.log))

	if cfg.Telemetry.Enabled {
		if err := rt.setupTelemetry(); err != nil {
			return fmt.Errorf("telemetry: %w", err)
		}
	}
	return nil
}

func (rt *runner) setupTelemetry() error {
	res := resource.NewSchemaless(attribute.String("service.name", rt.cfg.Telemetry.ServiceName))

	traceExp, err := stdouttrace.New(stdouttrace.WithWriter(os.Stderr))
	if err != nil {
		return err
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(traceExp),
		sdktrace.WithResource(res),
	)

	metricExp, err := stdoutmetric.New(stdoutmetric.WithWriter(os.Stderr))
	if err != nil {
		return err
	}
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExp)),
		sdkmetric.WithResource(res),
	)

	cfg := ydbotel.DefaultConfig()
	cfg.TracerProvider = tp
	cfg.MeterProvider = mp
	ydbotel.Instrument(rt.decoder, cfg)

	rt.shutdown = append(rt.shutdown, tp.Shutdown, mp.Shutdown)
	rt.log.Debug().Str("service", rt.cfg.Telemetry.ServiceName).Msg("telemetry enabled")
	return nil
}

func (rt *runner) teardown(*cli.Context) error {
	var errs []error
	for _, fn := range rt.shutdown {
		errs = append(errs, fn(context.Background()))
	}
	return errors.Join(errs...)
}

func (rt *runner) runConformance(c *cli.Context) error {
	report := conformance.Run(conformance.Samples())

	wire, err := conformance.SampleResultSet()
	if err != nil {
		return err
	}
	if _, err := rt.decoder.DecodeResultSet(context.Background(), wire); err != nil {
		return fmt.Errorf("sample result set: %w", err)
	}

	for _, r := range report.Results {
		if !r.Passed {
			rt.log.Warn().Str("sample", r.Name).Str("type", r.Type).Msg(r.Error)
		}
	}
	rt.log.Info().Int("total", report.Total).Int("passed", report.Passed).Int("failed", report.Failed).
		Msg("conformance run complete")

	if err := writeJSON(rt.out, report); err != nil {
		return err
	}
	if !report.OK() {
		return fmt.Errorf("%d of %d samples failed", report.Failed, report.Total)
	}
	return nil
}

func (rt *runner) decode(c *cli.Context) error {
	data, err := rt.readInput(c.String(inputFlag.Name))
	if err != nil {
		return err
	}

	if c.Bool(resultSetFlag.Name) {
		var wire Ydb.ResultSet
		if err := protojson.Unmarshal(data, &wire); err != nil {
			return fmt.Errorf("parsing result set: %w", err)
		}
		rs, err := rt.decoder.DecodeResultSet(context.Background(), &wire)
		if err != nil {
			return err
		}
		rows := make([]any, len(rs.Rows))
		for i, r := range rs.Rows {
			rows[i] = conformance.Plain(r)
		}
		return writeJSON(rt.out, map[string]any{
			"columns":   rs.ColumnNames(),
			"rows":      rows,
			"truncated": rs.Truncated,
		})
	}

	var tv Ydb.TypedValue
	if err := protojson.Unmarshal(data, &tv); err != nil {
		return fmt.Errorf("parsing typed value: %w", err)
	}
	skeleton, err := ydbvalue.FromType(tv.GetType())
	if err != nil {
		return err
	}
	v, err := ydbvalue.Decode(skeleton, tv.GetValue())
	if err != nil {
		return err
	}
	return writeJSON(rt.out, map[string]any{
		"type":  ydbvalue.TypeName(v),
		"value": conformance.Plain(v),
	})
}

func (rt *runner) writeArrow(c *cli.Context) (err error) {
	wire, err := conformance.SampleResultSet()
	if err != nil {
		return err
	}
	rs, err := rt.decoder.DecodeResultSet(context.Background(), wire)
	if err != nil {
		return err
	}

	opts := []ydbvalue.StreamOption{ydbvalue.WithBatchSize(rt.cfg.Arrow.BatchSize)}
	if c.Bool(zstdFlag.Name) || rt.cfg.Arrow.Compression == "zstd" {
		opts = append(opts, ydbvalue.WithZstd())
	}

	out := rt.out
	if path := c.String(outputFlag.Name); path != "" {
		f, ferr := os.Create(path)
		if ferr != nil {
			return ferr
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		out = f
	}

	if err := ydbvalue.WriteArrowStream(out, rs, opts...); err != nil {
		return err
	}
	rt.log.Info().Int("rows", len(rs.Rows)).Int("batch_size", rt.cfg.Arrow.BatchSize).Msg("arrow stream written")
	return nil
}

func (rt *runner) readInput(path string) ([]byte, error) {
	if path == "" {
		return io.ReadAll(rt.in)
	}
	return os.ReadFile(path)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
