package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/alscodec/als/internal/alsutil"
	"github.com/alscodec/als/internal/api"
	"github.com/alscodec/als/internal/compress"
	"github.com/alscodec/als/internal/config"
	"github.com/alscodec/als/internal/ingest"
	"github.com/alscodec/als/internal/table"
)

// Version information set by ldflags during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var AppConfig *config.Config // Global config instance

var rootCmd = &cobra.Command{
	Use:   "alsc",
	Short: "alsc is the ALS columnar text compressor.",
	Long:  `alsc compresses and decompresses tabular files using the ALS pattern/dictionary codec, with CTX fallback for incompressible data.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = alsutil.Logger
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			slog.Debug("no .env file loaded", "error", err)
		}

		if cmd.Name() == "init" {
			slog.Debug("skipping configuration loading for init command")
			return nil
		}

		configPath, _ := cmd.Flags().GetString("config")
		slog.Debug("loading configuration", "path", configPath)
		loadedCfg, err := config.Load(configPath, config.DefaultCueSchemaPath)
		if err != nil {
			wrappedErr := alsutil.WrapError(err, "failed to load configuration", slog.String("config_path", configPath))
			var unknownFieldErr *config.ErrUnknownField
			if errors.As(err, &unknownFieldErr) {
				alsutil.LogError(alsutil.Logger, alsutil.WrapError(wrappedErr, "configuration contains unknown fields, exit 78"))
				os.Exit(78)
			} else {
				alsutil.LogError(alsutil.Logger, wrappedErr)
				os.Exit(1)
			}
		}
		AppConfig = loadedCfg
		slog.Info("configuration loaded and validated successfully")
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		slog.Info("alsc ready, use -h for available commands")
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a new als.yml configuration file.",
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("file")
		if err := config.WriteDefaultConfig(configPath); err != nil {
			wrappedErr := alsutil.WrapError(err, "failed to write default config", slog.String("path", configPath))
			alsutil.LogError(alsutil.Logger, wrappedErr)
			return wrappedErr
		}
		slog.Info("default configuration written", "path", configPath)
		return nil
	},
}

func compressorConfigFromApp() compress.Config {
	cfg := AppConfig.Compressor
	return compress.Config{
		MinPatternLength:     cfg.MinPatternLength,
		MaxRangeExpansion:    cfg.MaxRangeExpansion,
		DictMinOccurrences:   cfg.DictMinOccurrences,
		DictMaxEntries:       cfg.DictMaxEntries,
		CtxFallbackThreshold: cfg.CtxFallbackThreshold,
	}
}

func compressorFromConfig() *compress.Compressor {
	return compress.NewCompressor(compressorConfigFromApp())
}

var compressCmd = &cobra.Command{
	Use:   "compress <path> [path...]",
	Short: "Compress one or more tabular files, or a directory matched against files.include/exclude.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if AppConfig == nil {
			return alsutil.NewError("configuration not loaded before compress command")
		}

		paths, err := resolveInputPaths(args)
		if err != nil {
			return alsutil.WrapError(err, "failed to resolve input paths")
		}

		registry := ingest.DefaultRegistry()
		c := compressorFromConfig()
		outDir, _ := cmd.Flags().GetString("out")
		showReport, _ := cmd.Flags().GetBool("report")

		for _, path := range paths {
			tbl, err := registry.Load(context.Background(), path)
			if err != nil {
				alsutil.LogError(alsutil.Logger, alsutil.WrapError(err, "failed to load input file", slog.String("path", path)))
				continue
			}

			doc, report, err := c.Compress(tbl)
			if err != nil {
				alsutil.LogError(alsutil.Logger, alsutil.WrapError(err, "compression failed", slog.String("path", path)))
				continue
			}

			outPath := path + ".als"
			if outDir != "" {
				outPath = filepath.Join(outDir, filepath.Base(path)+".als")
			}
			if err := os.WriteFile(outPath, []byte(doc.Render()), 0644); err != nil {
				alsutil.LogError(alsutil.Logger, alsutil.WrapError(err, "failed to write output file", slog.String("path", outPath)))
				continue
			}
			slog.Info("compressed", "input", path, "output", outPath, "raw_bytes", report.RawBytes, "encoded_bytes", report.EncodedBytes, "ratio", report.Ratio)
			if showReport {
				printReport(report)
			}
		}
		return nil
	},
}

var decompressCmd = &cobra.Command{
	Use:   "decompress <file.als> [file.als...]",
	Short: "Decompress one or more ALS documents back into CSV.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if AppConfig == nil {
			return alsutil.NewError("configuration not loaded before decompress command")
		}

		for _, path := range args {
			data, err := os.ReadFile(path)
			if err != nil {
				alsutil.LogError(alsutil.Logger, alsutil.WrapError(err, "failed to read document", slog.String("path", path)))
				continue
			}
			tbl, err := compress.Decompress(string(data), compressorConfigFromApp())
			if err != nil {
				alsutil.LogError(alsutil.Logger, alsutil.WrapError(err, "decompression failed", slog.String("path", path)))
				continue
			}

			outPath := trimExt(path, ".als") + ".csv"
			if err := writeCSV(outPath, tbl); err != nil {
				alsutil.LogError(alsutil.Logger, alsutil.WrapError(err, "failed to write decompressed output", slog.String("path", outPath)))
				continue
			}
			slog.Info("decompressed", "input", path, "output", outPath, "rows", tbl.RowCount)
		}
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats <path>",
	Short: "Compress a file and print its CompressionReport as JSON without writing output.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if AppConfig == nil {
			return alsutil.NewError("configuration not loaded before stats command")
		}
		registry := ingest.DefaultRegistry()
		tbl, err := registry.Load(context.Background(), args[0])
		if err != nil {
			return alsutil.WrapError(err, "failed to load input file")
		}
		c := compressorFromConfig()
		_, report, err := c.Compress(tbl)
		if err != nil {
			return alsutil.WrapError(err, "compression failed")
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	},
}

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the ALS HTTP compress/decompress API.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if AppConfig == nil {
			cfgErr := alsutil.NewError("configuration not loaded before server command")
			alsutil.LogError(alsutil.Logger, cfgErr)
			return cfgErr
		}

		slog.Info("starting alsc server...", "host", AppConfig.Server.Host, "port", AppConfig.Server.Port)
		server := api.NewServer(AppConfig)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			slog.Info("received shutdown signal, stopping server...")
			cancel()
		}()

		if err := server.Start(ctx); err != nil {
			wrappedErr := alsutil.WrapError(err, "server failed to start")
			alsutil.LogError(alsutil.Logger, wrappedErr)
			return wrappedErr
		}
		slog.Info("server stopped gracefully")
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("alsc %s\n", version)
		fmt.Printf("  Commit:     %s\n", commit)
		fmt.Printf("  Built:      %s\n", date)
		fmt.Printf("  Go version: %s\n", runtime.Version())
		fmt.Printf("  OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
	},
}

func resolveInputPaths(args []string) ([]string, error) {
	var paths []string
	for _, a := range args {
		info, err := os.Stat(a)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			paths = append(paths, a)
			continue
		}
		matches, err := ingest.ExpandGlobs(a, AppConfig.Files.Include, AppConfig.Files.Exclude)
		if err != nil {
			return nil, err
		}
		paths = append(paths, matches...)
	}
	return paths, nil
}

func writeCSV(path string, tbl *table.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(tbl.ColumnNames()); err != nil {
		return err
	}
	for i := 0; i < tbl.RowCount; i++ {
		row := tbl.Row(i)
		record := make([]string, len(row))
		for j, v := range row {
			if !v.IsNull() {
				record[j] = v.CanonicalString()
			}
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}

func trimExt(path, ext string) string {
	if filepath.Ext(path) == ext {
		return path[:len(path)-len(ext)]
	}
	return path
}

func printReport(report *compress.CompressionReport) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(report)
}

func init() {
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(compressCmd)
	rootCmd.AddCommand(decompressCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(versionCmd)

	initCmd.Flags().StringP("file", "f", config.DefaultConfigPath, "Path to write the configuration file")
	rootCmd.PersistentFlags().StringP("config", "c", config.DefaultConfigPath, "Path to the configuration file")
	compressCmd.Flags().String("out", "", "Output directory (defaults next to each input file)")
	compressCmd.Flags().Bool("report", false, "Print the CompressionReport for each file")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if _, ok := err.(*alsutil.AlsError); !ok {
			err = alsutil.WrapError(err, "command execution failed")
		}
		alsutil.LogError(alsutil.Logger, err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
