package cmd

import (
	"fmt"
	"io"
	"math"
	"math/bits"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sarchlab/cachesim/datarecording"
	"github.com/sarchlab/cachesim/mem/cache"
	"github.com/sarchlab/cachesim/mem/mem"
	"github.com/sarchlab/cachesim/mem/trace"
)

type options struct {
	addressSize   uint64
	wordAddressed bool
	bytesPerWord  uint64
	seed          uint64
	logLevel      string
	traceLog      bool
	record        string

	l2NumSets   uint64
	l2BlockSize uint64
	l2Assoc     uint64
}

type cacheParams struct {
	numSets   uint64
	blockSize uint64
	assoc     uint64
	policy    string
}

// NewRootCommand creates the cachesim command.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "cachesim <nsets> <bsize> <assoc> <policy> <output-flag> <input-file>",
		Short: "Replays an address trace through a set-associative cache.",
		Long: `Replays a trace of 4-byte big-endian addresses through a ` +
			`set-associative cache and reports the hit rate and the share of ` +
			`compulsory, capacity and conflict misses. The replacement policy ` +
			`R selects random replacement. The output flag 0 prints a ` +
			`labelled report and 1 prints a single line of numbers.`,
		Args: cobra.ExactArgs(6),
		RunE: func(cmd *cobra.Command, args []string) error {
			return simulate(cmd, args, opts)
		},
	}

	flags := rootCmd.Flags()
	flags.Uint64Var(&opts.addressSize, "address-size",
		envUint(envAddressSize, 32), "number of bits in an address")
	flags.BoolVar(&opts.wordAddressed, "word-addressed", false,
		"addresses name words instead of bytes")
	flags.Uint64Var(&opts.bytesPerWord, "bytes-per-word", 4,
		"number of bytes in a word")
	flags.Uint64Var(&opts.seed, "seed", envUint(envSeed, 0),
		"seed of the random replacement policy, 0 for a time-based seed")
	flags.StringVar(&opts.logLevel, "log-level", envString(envLogLevel, ""),
		"trace, debug, info, warn or error")
	flags.BoolVar(&opts.traceLog, "trace-log", false,
		"log every access at debug level")
	flags.StringVar(&opts.record, "record", "",
		"record every access into <name>.sqlite3")
	flags.Uint64Var(&opts.l2NumSets, "l2-nsets", 0,
		"number of sets of a second-level cache, 0 for none")
	flags.Uint64Var(&opts.l2BlockSize, "l2-bsize", 0,
		"block size of the second-level cache, defaults to the L1 block size")
	flags.Uint64Var(&opts.l2Assoc, "l2-assoc", 1,
		"associativity of the second-level cache")

	return rootCmd
}

func parseArgs(args []string) (cacheParams, reportFormat, error) {
	var (
		p   cacheParams
		err error
	)

	fields := []struct {
		name string
		dst  *uint64
		arg  string
	}{
		{"nsets", &p.numSets, args[0]},
		{"bsize", &p.blockSize, args[1]},
		{"assoc", &p.assoc, args[2]},
	}

	for _, f := range fields {
		*f.dst, err = strconv.ParseUint(f.arg, 10, 64)
		if err != nil {
			return p, 0, fmt.Errorf("%s must be a positive integer, got %q",
				f.name, f.arg)
		}
	}

	switch strings.ToUpper(args[3]) {
	case "R":
		p.policy = "random"
	default:
		return p, 0, fmt.Errorf("replacement policy %q is not implemented",
			args[3])
	}

	format, err := parseReportFormat(args[4])
	if err != nil {
		return p, 0, err
	}

	return p, format, nil
}

func simulate(cmd *cobra.Command, args []string, opts *options) error {
	params, format, err := parseArgs(args)
	if err != nil {
		return err
	}

	logger := setupLogger(opts.logLevel, cmd.ErrOrStderr())
	if opts.traceLog && !logger.IsLevelEnabled(logrus.DebugLevel) {
		logger.SetLevel(logrus.DebugLevel)
	}

	addresses, err := trace.ReadFile(args[5])
	if err != nil {
		return fmt.Errorf("reading trace: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"file":      args[5],
		"addresses": len(addresses),
	}).Info("trace loaded")

	cmd.SilenceUsage = true

	memory, err := newMainMemory(opts)
	if err != nil {
		return err
	}

	logger.WithFields(logrus.Fields{
		"capacity":  memory.Capacity(),
		"unit_size": memory.UnitSize(),
	}).Info("main memory created")

	caches, err := buildHierarchy(params, opts, memory)
	if err != nil {
		return err
	}

	if opts.traceLog {
		for _, c := range caches {
			c.AcceptHook(trace.NewLogTracer(logger))
		}
	}

	rec, err := startRecording(opts, caches)
	if err != nil {
		return err
	}

	l1 := caches[0]
	for _, a := range addresses {
		l1.Read(a)
	}

	for _, c := range caches {
		logger.WithFields(logrus.Fields{
			"cache":  c.Name(),
			"hits":   c.Stats().Hits,
			"misses": c.Stats().Misses(),
			"filled": c.FilledBytes(),
		}).Info("replay finished")
	}

	if rec != nil {
		if err := rec.finish(caches); err != nil {
			return err
		}

		logger.Infof("accesses recorded in %s", rec.writer.FileName())
	}

	return writeReports(cmd.OutOrStdout(), caches, format)
}

// newMainMemory creates the memory at the bottom of the hierarchy, large
// enough for every address.
func newMainMemory(opts *options) (*mem.StorageMemory, error) {
	unitSize := uint64(1)
	if opts.wordAddressed {
		unitSize = opts.bytesPerWord
	}

	if unitSize == 0 {
		return nil, fmt.Errorf("bytes per word must be positive")
	}

	return mem.NewStorageMemory(
		mem.NewStorage(memoryCapacity(opts.addressSize, unitSize)),
		unitSize,
	), nil
}

// buildHierarchy returns the caches from the top level down.
func buildHierarchy(
	params cacheParams,
	opts *options,
	lower mem.Memory,
) ([]*cache.Comp, error) {

	base := cache.MakeBuilder().
		WithAddressSize(opts.addressSize).
		WithByteAddressed(!opts.wordAddressed).
		WithBytesPerWord(opts.bytesPerWord).
		WithReplaceStrategy(params.policy).
		WithSeed(opts.seed)

	caches := []*cache.Comp{}

	if opts.l2NumSets > 0 {
		blockSize := opts.l2BlockSize
		if blockSize == 0 {
			blockSize = params.blockSize
		}

		l2, err := base.
			WithNumSets(opts.l2NumSets).
			WithBlockSize(blockSize).
			WithWayAssociativity(opts.l2Assoc).
			WithBackingStore(lower).
			Build("L2")
		if err != nil {
			return nil, err
		}

		caches = append(caches, l2)
		lower = l2
	}

	l1, err := base.
		WithNumSets(params.numSets).
		WithBlockSize(params.blockSize).
		WithWayAssociativity(params.assoc).
		WithBackingStore(lower).
		Build("L1")
	if err != nil {
		return nil, err
	}

	return append([]*cache.Comp{l1}, caches...), nil
}

// memoryCapacity returns the number of bytes addressable with addressSize
// bits, saturating at the largest uint64.
func memoryCapacity(addressSize, unitSize uint64) uint64 {
	if addressSize+uint64(bits.TrailingZeros64(unitSize)) >= 64 {
		return math.MaxUint64
	}

	return (uint64(1) << addressSize) * unitSize
}

func writeReports(w io.Writer, caches []*cache.Comp, format reportFormat) error {
	for i, c := range caches {
		if len(caches) > 1 && format == reportVerbose {
			if i > 0 {
				fmt.Fprintln(w)
			}

			fmt.Fprintf(w, "%s:\n", c.Name())
		}

		if err := writeReport(w, c.Stats(), format); err != nil {
			return err
		}
	}

	return nil
}

type recording struct {
	writer *datarecording.SQLiteWriter
	exec   *datarecording.ExecRecorder
	tracer trace.DBTracer
}

func startRecording(opts *options, caches []*cache.Comp) (*recording, error) {
	if opts.record == "" {
		return nil, nil
	}

	writer, err := datarecording.New(opts.record)
	if err != nil {
		return nil, err
	}

	exec, err := datarecording.NewExecRecorder(writer)
	if err != nil {
		return nil, err
	}

	exec.Start()

	tracer, err := trace.NewDBTracer(writer)
	if err != nil {
		return nil, err
	}

	for _, c := range caches {
		g := c.Geometry()
		exec.Record(c.Name()+" Geometry", fmt.Sprintf(
			"nsets=%d bsize=%d assoc=%d address_size=%d byte_addressed=%t",
			g.NumSets, g.BlockSize, g.Assoc, g.AddressSize, g.ByteAddressed))

		c.AcceptHook(tracer)
	}

	return &recording{
		writer: writer,
		exec:   exec,
		tracer: tracer,
	}, nil
}

func (r *recording) finish(caches []*cache.Comp) error {
	if err := r.tracer.Err(); err != nil {
		return fmt.Errorf("recording accesses: %w", err)
	}

	for _, c := range caches {
		stats := c.Stats()
		r.exec.Record(c.Name()+" Total Accesses",
			strconv.FormatUint(stats.TotalAccesses(), 10))
		r.exec.Record(c.Name()+" Hit Rate",
			strconv.FormatFloat(stats.HitRate(), 'f', -1, 64))
	}

	if err := r.exec.End(); err != nil {
		return err
	}

	return r.writer.Close()
}
