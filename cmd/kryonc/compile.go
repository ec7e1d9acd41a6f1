package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"kryon-labs/kryonc/pkg/compiler"
)

var compileFlags struct {
	outputDir string
	noCache   bool
	strict    bool
}

var compileCmd = &cobra.Command{
	Use:   "compile <source>...",
	Short: "Compile documents to KRB binaries",
	Long: `Compile one or more source documents to KRB binaries.

Each argument is a source file or a directory; directories are scanned
for files matching the configured watch patterns (*.kry.yaml by default).
Output is written next to each source, or into --output when set.

Examples:
  # Compile a single document
  kryonc compile app.kry.yaml

  # Compile a directory into build/
  kryonc compile --output build ui/

  # Force a full recompile
  kryonc compile --no-cache app.kry.yaml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)

	compileCmd.Flags().StringVarP(&compileFlags.outputDir, "output", "o", "", "output directory (default: next to source)")
	compileCmd.Flags().BoolVar(&compileFlags.noCache, "no-cache", false, "bypass the output cache")
	compileCmd.Flags().BoolVar(&compileFlags.strict, "strict", false, "enable strict parsing")
}

func runCompile(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd.Flags().Changed("config"))
	if err != nil {
		return err
	}

	// Apply flag overrides
	if compileFlags.outputDir != "" {
		cfg.Compiler.OutputDir = compileFlags.outputDir
	}
	if compileFlags.noCache {
		cfg.Cache.Enabled = false
	}
	if compileFlags.strict {
		cfg.Compiler.Strict = true
	}

	comp, _, _, cleanup, err := newCompiler(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := cmd.Context()
	failed := false

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return fmt.Errorf("cannot access %q: %w", arg, err)
		}

		if info.IsDir() {
			results, err := comp.CompileDir(ctx, arg)
			for _, result := range results {
				printResult(comp, result)
			}
			if err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				failed = true
			}
			continue
		}

		result, err := comp.CompileFile(ctx, arg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			failed = true
			continue
		}
		printResult(comp, result)
	}

	if failed {
		return fmt.Errorf("compilation failed")
	}
	return nil
}

func printResult(comp *compiler.Compiler, result *compiler.Result) {
	note := ""
	if result.CacheHit {
		note = " (cached)"
	}
	fmt.Printf("%s -> %s  %d elements, %d variables, %d bytes%s\n",
		result.SourcePath,
		comp.OutputPath(result.SourcePath),
		result.Elements,
		result.Variables,
		len(result.Output),
		note,
	)
}
