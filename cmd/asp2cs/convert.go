package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/secretm224/asp-to-dotnet-converter/internal/config"
	"github.com/secretm224/asp-to-dotnet-converter/internal/driver"
	"github.com/secretm224/asp-to-dotnet-converter/internal/observ"
)

var convertCmd = &cobra.Command{
	Use:   "convert [flags] [path...]",
	Short: "Convert ASP sources with the deterministic rule engine",
	Long: `Convert rewrites Classic ASP / VBScript files into C# using the built-in
rule table. With no paths it reads one source from stdin and prints the
result. Directories are walked recursively for .asp, .inc and .vbs files.`,
	Args: cobra.ArbitraryArgs,
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().Bool("stdout", false, "print converted code to stdout instead of writing .cs files")
	convertCmd.Flags().String("format", "text", "output format (text|json)")
	convertCmd.Flags().String("out-dir", "", "write .cs files into this directory")
	convertCmd.Flags().Bool("using", false, "prepend the standard using block")
	convertCmd.Flags().String("namespace", "", "wrap output in a namespace")
	convertCmd.Flags().Int("jobs", 0, "conversion parallelism (0 = all CPUs)")
}

func runConvert(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	opts, err := convertOptions(cmd)
	if err != nil {
		return err
	}
	outputFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}
	timings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return err
	}

	if fromStdin(args) {
		if outputFormat != "text" {
			return fmt.Errorf("convert: stdin input is only supported with text output")
		}
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), driver.ConvertSource(string(data), opts))
		return nil
	}

	timer := observ.NewTimer()
	phase := timer.Begin("convert")
	results, err := driver.ConvertPaths(cmd.Context(), args, opts)
	timer.End(phase, fmt.Sprintf("%d files", len(results)))
	if err != nil {
		return err
	}

	var hasErrors bool
	switch outputFormat {
	case "text":
		renderConvertText(cmd, results, opts.Stdout, quiet, &hasErrors)
	case "json":
		if err := renderConvertJSON(cmd.OutOrStdout(), results); err != nil {
			return err
		}
		for _, res := range results {
			if res.Err != nil {
				hasErrors = true
			}
		}
	default:
		return fmt.Errorf("convert: unsupported output format %q", outputFormat)
	}

	if timings {
		fmt.Fprint(cmd.ErrOrStderr(), timer.Summary())
	}
	if hasErrors {
		return fmt.Errorf("convert: failed to convert some files")
	}
	return nil
}

func convertOptions(cmd *cobra.Command) (driver.Options, error) {
	var opts driver.Options
	var err error
	if opts.Stdout, err = cmd.Flags().GetBool("stdout"); err != nil {
		return opts, err
	}
	if opts.OutDir, err = cmd.Flags().GetString("out-dir"); err != nil {
		return opts, err
	}
	if opts.Usings, err = cmd.Flags().GetBool("using"); err != nil {
		return opts, err
	}
	if opts.Namespace, err = cmd.Flags().GetString("namespace"); err != nil {
		return opts, err
	}
	if opts.Jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
		return opts, err
	}

	manifest, ok, err := config.Load(".")
	if err != nil {
		return opts, err
	}
	if ok {
		cfg := manifest.Config.Convert
		if !cmd.Flags().Changed("using") && cfg.Usings {
			opts.Usings = true
		}
		if !cmd.Flags().Changed("namespace") && cfg.Namespace != "" {
			opts.Namespace = cfg.Namespace
		}
		if !cmd.Flags().Changed("out-dir") && cfg.OutDir != "" {
			opts.OutDir = cfg.OutDir
		}
	}
	return opts, nil
}

func fromStdin(args []string) bool {
	if len(args) == 0 {
		return true
	}
	return len(args) == 1 && args[0] == "-"
}

func renderConvertText(cmd *cobra.Command, results []driver.Result, stdout, quiet bool, hasErrors *bool) {
	for _, res := range results {
		if res.Err != nil {
			*hasErrors = true
			fmt.Fprintf(cmd.ErrOrStderr(), "convert: %s: %v\n", res.Path, res.Err)
			continue
		}
		if stdout {
			fmt.Fprintln(cmd.OutOrStdout(), res.Output)
			continue
		}
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "converted %s -> %s\n", res.Path, res.OutPath)
		}
	}
}

func renderConvertJSON(out io.Writer, results []driver.Result) error {
	type jsonResult struct {
		Path    string  `json:"path"`
		OutPath string  `json:"out_path,omitempty"`
		Error   string  `json:"error,omitempty"`
		Millis  float64 `json:"elapsed_ms"`
	}

	payload := make([]jsonResult, 0, len(results))
	for _, res := range results {
		jr := jsonResult{
			Path:    res.Path,
			OutPath: res.OutPath,
			Millis:  float64(res.Elapsed.Microseconds()) / 1000.0,
		}
		if res.Err != nil {
			jr.Error = res.Err.Error()
		}
		payload = append(payload, jr)
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}
