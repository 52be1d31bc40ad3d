package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/ecgsim/internal/analysis"
	"github.com/san-kum/ecgsim/internal/config"
	"github.com/san-kum/ecgsim/internal/ecg"
	"github.com/san-kum/ecgsim/internal/export"
	"github.com/san-kum/ecgsim/internal/metrics"
	"github.com/san-kum/ecgsim/internal/session"
	"github.com/san-kum/ecgsim/internal/storage"
	"github.com/san-kum/ecgsim/internal/tui"
)

var (
	dataDir        string
	heartRate      float64
	samplingRate   float64
	gain           float64
	width          int
	height         int
	displaySeconds float64
	duration       float64
	frameRate      int
	seed           int64
	configFile     string
	preset         string
	outFile        string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ecgsim",
		Short: "synthetic electrocardiogram signal lab",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to the live monitor when no subcommand is given.
			cfg, err := buildConfig(cmd)
			if err != nil {
				return err
			}
			return tui.Run(cfg)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".ecgsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the generator headless and save the trace",
		RunE:  runHeadless,
	}
	addSignalFlags(runCmd)
	runCmd.Flags().Float64Var(&duration, "time", 30.0, "simulated duration (seconds)")
	runCmd.Flags().IntVar(&frameRate, "fps", 60, "synthetic frame rate")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "live terminal monitor",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildConfig(cmd)
			if err != nil {
				return err
			}
			return tui.Run(cfg)
		},
	}
	addSignalFlags(liveCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved trace in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "beat timing statistics for a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark generation throughput",
		RunE:  benchGenerator,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "print run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "write a saved trace to stdout as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render a saved trace as an SVG strip",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&outFile, "out", "", "output path (default <run_id>.svg)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				cfg := config.GetPreset(name)
				fmt.Printf("  %-12s %3.0f bpm, %4.0f sps, %2.0fs window\n",
					name, cfg.HeartRate, cfg.SamplingRate, cfg.DisplaySeconds)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, analyzeCmd, benchCmd,
		exportCmd, exportCSVCmd, exportSVGCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSignalFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&heartRate, "rate", config.DefaultHeartRate, "heart rate (bpm)")
	cmd.Flags().Float64Var(&samplingRate, "sample-rate", config.DefaultSamplingRate, "sampling rate (Hz)")
	cmd.Flags().Float64Var(&gain, "gain", config.DefaultGain, "display gain")
	cmd.Flags().IntVar(&width, "width", config.DefaultWidth, "display width (px)")
	cmd.Flags().IntVar(&height, "height", config.DefaultHeight, "display height (px)")
	cmd.Flags().Float64Var(&displaySeconds, "window", config.DefaultDisplaySeconds, "visible window (seconds)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 picks one)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "preset configuration")
}

// buildConfig resolves preset, config file and flags in that order; a
// flag the user set always wins.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("rate") {
		cfg.HeartRate = heartRate
	}
	if flags.Changed("sample-rate") {
		cfg.SamplingRate = samplingRate
	}
	if flags.Changed("gain") {
		cfg.Gain = gain
	}
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("height") {
		cfg.Height = height
	}
	if flags.Changed("window") {
		cfg.DisplaySeconds = displaySeconds
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	runSeed := cfg.Seed
	if runSeed == 0 {
		runSeed = time.Now().UnixNano()
	}

	sess, err := session.New(cfg.Params(), runSeed)
	if err != nil {
		return err
	}

	rec := &session.Recorder{}
	sess.AddObserver(rec)
	sess.AddMetric(metrics.NewBeatCount())
	sess.AddMetric(metrics.NewMeasuredHeartRate())
	sess.AddMetric(metrics.NewPeakAmplitude())

	fmt.Printf("generating %.0fs at %.0f sps...\n", duration, cfg.SamplingRate)
	start := time.Now()

	if err := sess.Run(context.Background(), duration, 1.0/float64(frameRate)); err != nil {
		return err
	}
	elapsed := time.Since(start)

	results := sess.Results()
	runID, err := st.Save(cfg, runSeed, duration, results, rec.Samples)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("samples: %d\n", len(rec.Samples))
	fmt.Println("\nmetrics:")
	for name, val := range results {
		fmt.Printf("  %s: %.4f\n", name, val)
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tBPM\tSPS\tDURATION\tSAMPLES")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%.0f\t%.0f\t%.1fs\t%d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.HeartRate,
			run.SamplingRate,
			run.Duration,
			run.Samples,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	values, _, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}
	if len(values) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("heart rate: %.0f bpm, %.0f sps, %.1fs\n\n", meta.HeartRate, meta.SamplingRate, meta.Duration)

	graph := asciigraph.Plot(values,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption("millivolts vs time"),
	)
	fmt.Println(graph)
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	values, times, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}

	stats := analysis.Analyze(values, times)

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("configured: %.0f bpm\n\n", meta.HeartRate)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "beats\t%d\n", stats.Beats)
	fmt.Fprintf(w, "mean RR\t%.4fs\n", stats.MeanRR)
	fmt.Fprintf(w, "mean BPM\t%.1f\n", stats.MeanBPM)
	fmt.Fprintf(w, "min BPM\t%.1f\n", stats.MinBPM)
	fmt.Fprintf(w, "max BPM\t%.1f\n", stats.MaxBPM)
	return w.Flush()
}

func benchGenerator(cmd *cobra.Command, args []string) error {
	rates := []float64{250, 500, 1000}
	durations := []float64{10.0, 60.0}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SPS\tSIM TIME\tSAMPLES\tWALL\tSAMPLES/SEC")

	for _, rate := range rates {
		for _, dur := range durations {
			sess, err := session.New(ecg.Params{
				HeartRate:      72,
				SamplingRate:   rate,
				DisplaySeconds: config.DefaultDisplaySeconds,
			}, 42)
			if err != nil {
				return err
			}
			rec := &session.Recorder{}
			sess.AddObserver(rec)

			start := time.Now()
			if err := sess.Run(context.Background(), dur, 1.0/60.0); err != nil {
				return err
			}
			elapsed := time.Since(start)

			fmt.Fprintf(w, "%.0f\t%.0fs\t%d\t%v\t%.0f\n",
				rate, dur, len(rec.Samples), elapsed,
				float64(len(rec.Samples))/elapsed.Seconds())
		}
	}
	return w.Flush()
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	f, err := os.Open(st.SamplesPath(args[0]))
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(os.Stdout, f)
	return err
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	values, times, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}

	// Render the tail of the trace: the visible window, as on screen.
	d := meta.Config().Display()
	samples := make([]ecg.Sample, len(values))
	for i := range values {
		samples[i] = ecg.Sample{Value: values[i], Time: times[i]}
	}

	svg := export.TraceSVG(samples, d)

	path := outFile
	if path == "" {
		path = meta.ID + ".svg"
	}
	if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}
