package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"minic/pkg/compiler"
	"minic/pkg/config"
	"minic/pkg/utils"
)

// Build-time variables - can be set via ldflags
var (
	Version   string = "dev"
	GitCommit string = "unknown"
)

const defaultSource = "testfile.txt"

// Global flags
var (
	configFile string
	outDir     string
	maxDepth   int
	parallel   bool
	logLevel   string
	logFormat  string
)

// errHasErrors makes check exit non-zero without printing anything more.
var errHasErrors = errors.New("compile errors present")

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errHasErrors) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ccompiler [source]",
	Short: "Check a program and write the front-end artifacts",
	Long: `ccompiler lexes, parses and semantically checks a source file.
It writes the token listing, the parse trace, the symbol table and the error
list next to each other in the output directory. The source defaults to
testfile.txt in the current directory.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          compileCommand,
}

var tokensCmd = &cobra.Command{
	Use:   "tokens [source]",
	Short: "Print the token listing",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, _, err := run(cmd, args)
		if err != nil {
			return err
		}
		return res.WriteTokens(cmd.OutOrStdout())
	},
}

var parseCmd = &cobra.Command{
	Use:   "parse [source]",
	Short: "Print the parse trace",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, _, err := run(cmd, args)
		if err != nil {
			return err
		}
		return res.WriteTrace(cmd.OutOrStdout())
	},
}

var symbolsCmd = &cobra.Command{
	Use:   "symbols [source]",
	Short: "Print the symbol table",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, _, err := run(cmd, args)
		if err != nil {
			return err
		}
		return res.WriteSymbols(cmd.OutOrStdout())
	},
}

var checkCmd = &cobra.Command{
	Use:   "check [source]",
	Short: "Print diagnostics and exit non-zero if there are any",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, _, err := run(cmd, args)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), renderReport(sourcePath(args), res.Errors))
		if res.HasErrors() {
			return errHasErrors
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "ccompiler %s (%s)\n", Version, GitCommit)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to a TOML or YAML config file")
	rootCmd.PersistentFlags().StringVarP(&outDir, "out-dir", "o", "", "Directory for output artifacts")
	rootCmd.PersistentFlags().IntVar(&maxDepth, "max-depth", 0, "Recursion ceiling for the parser and analyzer")
	rootCmd.PersistentFlags().BoolVar(&parallel, "parallel", false, "Run the parser and the analyzer concurrently")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format: text or json")

	rootCmd.AddCommand(tokensCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(symbolsCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)
}

func sourcePath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return defaultSource
}

// loadConfig reads the config file, if any, and applies flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if configFile != "" {
		var err error
		if cfg, err = config.Load(configFile); err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("out-dir") {
		cfg.Outputs.Dir = outDir
	}
	if flags.Changed("max-depth") {
		cfg.Analysis.MaxDepth = maxDepth
	}
	if flags.Changed("parallel") {
		cfg.Analysis.Parallel = parallel
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = logFormat
	}
	return cfg, nil
}

// run compiles the source named by args with the effective configuration.
func run(cmd *cobra.Command, args []string) (*compiler.Result, *config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	log, err := cfg.Logger(cmd.ErrOrStderr())
	if err != nil {
		return nil, nil, err
	}

	path, _, err := utils.GetPathInfo(sourcePath(args))
	if err != nil {
		return nil, nil, fmt.Errorf("resolve source: %w", err)
	}
	log.Debug("compiling", "source", path, "max_depth", cfg.Analysis.MaxDepth, "parallel", cfg.Analysis.Parallel)

	res, err := compiler.CompileFile(path, compiler.Options{
		MaxDepth: cfg.Analysis.MaxDepth,
		Parallel: cfg.Analysis.Parallel,
		Logger:   log,
	})
	if err != nil {
		return nil, nil, err
	}
	if res.Crashed {
		log.Warn("compilation did not finish cleanly", "source", path)
	}
	return res, cfg, nil
}

func compileCommand(cmd *cobra.Command, args []string) error {
	res, cfg, err := run(cmd, args)
	if err != nil {
		return err
	}
	if err := res.WriteArtifacts(cfg.Outputs); err != nil {
		return fmt.Errorf("write artifacts: %w", err)
	}

	return nil
}
