package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spacemeshos/go-txrecon/bench"
	"github.com/spacemeshos/go-txrecon/config"
	"github.com/spacemeshos/go-txrecon/config/presets"
	"github.com/spacemeshos/go-txrecon/log"
	"github.com/spacemeshos/go-txrecon/metrics"
	"github.com/spacemeshos/go-txrecon/peel"
	"github.com/spacemeshos/go-txrecon/txfile"
)

func newCommand(fs afero.Fs, stdout io.Writer) *cobra.Command {
	conf := config.DefaultConfig()
	cmd := &cobra.Command{
		Use:   "ibltbench [flags] <numtxsadded> <numtxsmissing> <txfile> <runs>",
		Short: "measure how often an iblt reconciles two transaction sets",
		Long: "Reads numtxsadded transactions the remote side has and numtxsmissing transactions\n" +
			"only the local side has from txfile, then reconciles them runs times and prints\n" +
			"\"numtxsadded, numtxsmissing, percent of successful runs\".",
		Args:          cobra.ExactArgs(4),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(c *cobra.Command, args []string) error {
			if err := configure(c, fs, &conf); err != nil {
				return err
			}
			nums := make([]int, 0, 3)
			for _, arg := range []struct {
				name  string
				value string
			}{
				{"numtxsadded", args[0]},
				{"numtxsmissing", args[1]},
				{"runs", args[3]},
			} {
				n, err := strconv.Atoi(arg.value)
				if err != nil || n < 0 {
					return log.ErrBadArgs(arg.name, arg.value)
				}
				nums = append(nums, n)
			}
			ctx, cancel := signal.NotifyContext(c.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()
			return run(ctx, fs, stdout, &conf, args[2], nums[0], nums[1], nums[2])
		},
	}
	addFlags(cmd.Flags(), &conf)
	cmd.AddCommand(newGenCommand(fs, stdout))
	return cmd
}

func addFlags(flags *pflag.FlagSet, conf *config.Config) {
	flags.StringVarP(&conf.ConfigFile, "config", "c", conf.ConfigFile, "load configuration from file")
	flags.StringVarP(&conf.Preset, "preset", "p", conf.Preset,
		fmt.Sprintf("preset overwrites default values of the config. options %+s", presets.Options()))
	flags.Var(&conf.Sketch.Mem, "mem", "memory to use for the table")
	flags.IntVar(&conf.Sketch.Checksum, "checksum", conf.Sketch.Checksum, "bytes of checksum kept per bucket")
	flags.BoolVarP(&conf.Verbose, "verbose", "v", conf.Verbose, "print out progress")
	flags.IntVar(&conf.Workers, "workers", conf.Workers, "number of runs executed concurrently")
	flags.IntVar(&conf.Decode.MaxPasses, "max-passes", conf.Decode.MaxPasses,
		"limit on decode passes, 0 to derive it from the table")
	flags.BoolVar(&conf.Strict, "strict", conf.Strict, "reject records that are not exactly one transaction")
	flags.StringVar(&conf.LOGGING.AppLoggerLevel, "level", conf.LOGGING.AppLoggerLevel, "logging level")
	flags.StringVar(&conf.LOGGING.Encoder, "log-encoder", conf.LOGGING.Encoder, "log as JSON instead of plain text")
	flags.BoolVar(&conf.Metrics.Print, "metrics", conf.Metrics.Print, "print metrics after the run")
	flags.StringVar(&conf.Metrics.Push, "metrics-push", conf.Metrics.Push, "push metrics to url")
}

// configure loads the preset and the config file into conf. Flags set on the
// command line take precedence over both.
func configure(c *cobra.Command, fs afero.Fs, conf *config.Config) error {
	changed := map[string]string{}
	c.Flags().Visit(func(f *pflag.Flag) {
		changed[f.Name] = f.Value.String()
	})

	if len(conf.Preset) > 0 {
		p, err := presets.Get(conf.Preset)
		if err != nil {
			return log.ErrBadFlags(err)
		}
		path, preset := conf.ConfigFile, conf.Preset
		*conf = p
		conf.ConfigFile, conf.Preset = path, preset
	}
	if len(conf.ConfigFile) > 0 {
		v := viper.New()
		v.SetFs(fs)
		if err := config.LoadConfig(conf.ConfigFile, v); err != nil {
			return log.ErrMalformedConfig(err)
		}
		if err := config.Unmarshal(v, conf); err != nil {
			return log.ErrMalformedConfig(err)
		}
	}

	for name, value := range changed {
		if err := c.Flags().Set(name, value); err != nil {
			return log.ErrBadFlags(fmt.Errorf("%s: %w", name, err))
		}
	}
	if err := conf.Validate(); err != nil {
		return log.ErrBadFlags(err)
	}
	return nil
}

func newLogger(conf config.LoggerConfig, name, level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(strings.ToLower(level))
	if err != nil {
		return nil, log.ErrBadFlags(fmt.Errorf("%s log level: %w", name, err))
	}
	if conf.Encoder == config.JSONLogEncoder {
		return log.NewJSON(name, lvl), nil
	}
	return log.NewConsole(name, lvl), nil
}

func run(
	ctx context.Context,
	fs afero.Fs,
	stdout io.Writer,
	conf *config.Config,
	path string,
	nTheirs, nOurs, runs int,
) error {
	logger, err := newLogger(conf.LOGGING, "ibltbench", conf.LOGGING.AppLoggerLevel)
	if err != nil {
		return err
	}
	benchLogger, err := newLogger(conf.LOGGING, "bench", conf.LOGGING.BenchLoggerLevel)
	if err != nil {
		return err
	}
	peelLogger, err := newLogger(conf.LOGGING, "peel", conf.LOGGING.PeelLoggerLevel)
	if err != nil {
		return err
	}
	fileLogger, err := newLogger(conf.LOGGING, "txfile", conf.LOGGING.TxFileLoggerLevel)
	if err != nil {
		return err
	}

	theirs, ours, err := txfile.Load(fs, path, nTheirs, nOurs,
		txfile.WithStrict(conf.Strict),
		txfile.WithLogger(fileLogger),
	)
	if err != nil {
		return log.ErrLoadTxs(err)
	}

	opts := []bench.Option{
		bench.WithLogger(benchLogger),
		bench.WithDecoderOptions(peel.WithLogger(peelLogger)),
	}
	if conf.Verbose {
		opts = append(opts, bench.WithProgress(stdout))
	}
	runner := bench.New(theirs, ours, *conf, opts...)
	if conf.Verbose {
		fmt.Fprintf(stdout, "Making ib table of %d elements\n", runner.Buckets())
		fmt.Fprintf(stdout, "Read %d transactions\n", len(theirs)+len(ours))
	}
	logger.Debug("loaded transactions",
		zap.String("path", path),
		zap.Int("theirs", len(theirs)),
		zap.Int("ours", len(ours)),
	)

	report, err := runner.Run(ctx, runs)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, report)

	if conf.Metrics.Print {
		if err := metrics.Write(stdout, prometheus.DefaultGatherer); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	if len(conf.Metrics.Push) > 0 {
		grouping := map[string]string{
			"theirs": strconv.Itoa(len(theirs)),
			"ours":   strconv.Itoa(len(ours)),
		}
		err := metrics.Push(ctx, conf.Metrics.Push, conf.Metrics.PushJob, prometheus.DefaultGatherer, grouping,
			metrics.WithPushLogger(logger.Named("push")),
		)
		if err != nil {
			logger.Warn("failed to push metrics", zap.String("url", conf.Metrics.Push), zap.Error(err))
		}
	}
	return nil
}

func main() {
	if err := newCommand(afero.NewOsFs(), os.Stdout).Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
