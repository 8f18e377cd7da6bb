package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/secretm224/asp-to-dotnet-converter/internal/config"
	"github.com/secretm224/asp-to-dotnet-converter/internal/dcache"
	"github.com/secretm224/asp-to-dotnet-converter/internal/driver"
	"github.com/secretm224/asp-to-dotnet-converter/internal/groq"
)

var aiCmd = &cobra.Command{
	Use:   "ai [flags] [path...]",
	Short: "Convert ASP sources with the Groq API",
	Long: `Ai sends each source file to a Groq-hosted model for conversion. Results
are cached on disk, so re-running over unchanged files costs nothing.
With no paths it reads one source from stdin and prints the result.

The API key comes from --api-key or the GROQ_API_KEY environment variable.`,
	Args: cobra.ArbitraryArgs,
	RunE: runAI,
}

func init() {
	aiCmd.Flags().String("api-key", "", "Groq API key (defaults to $GROQ_API_KEY)")
	aiCmd.Flags().String("model", "", "model name (default "+groq.DefaultModel+")")
	aiCmd.Flags().String("base-url", "", "API base URL")
	aiCmd.Flags().Duration("timeout", 0, "per-request timeout (default "+groq.DefaultTimeout.String()+")")
	aiCmd.Flags().Bool("no-cache", false, "bypass the result cache")
	aiCmd.Flags().String("format", "text", "output format (text|json)")
	aiCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	aiCmd.Flags().Bool("stdout", false, "print converted code to stdout instead of writing .cs files")
	aiCmd.Flags().String("out-dir", "", "write .cs files into this directory")
	aiCmd.Flags().Bool("using", false, "prepend the standard using block")
	aiCmd.Flags().String("namespace", "", "wrap output in a namespace")
}

func runAI(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	manifest, hasManifest, err := config.Load(".")
	if err != nil {
		return err
	}
	var aiCfg config.AIConfig
	if hasManifest {
		aiCfg = manifest.Config.AI
	}

	client, err := buildClient(cmd, aiCfg)
	if err != nil {
		return err
	}

	opts := driver.AIOptions{Client: client}
	if opts.NoCache, err = cmd.Flags().GetBool("no-cache"); err != nil {
		return err
	}
	if opts.Stdout, err = cmd.Flags().GetBool("stdout"); err != nil {
		return err
	}
	if opts.OutDir, err = cmd.Flags().GetString("out-dir"); err != nil {
		return err
	}
	if opts.Usings, err = cmd.Flags().GetBool("using"); err != nil {
		return err
	}
	if opts.Namespace, err = cmd.Flags().GetString("namespace"); err != nil {
		return err
	}
	if hasManifest {
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

	opts.Cache, err = dcache.Open("asp2cs")
	if err != nil {
		return err
	}

	outputFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	switch outputFormat {
	case "text", "json":
		// supported
	default:
		return fmt.Errorf("ai: unsupported output format %q", outputFormat)
	}

	if fromStdin(args) {
		if outputFormat != "text" {
			return fmt.Errorf("ai: stdin input is only supported with text output")
		}
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return err
		}
		out, err := client.Convert(cmd.Context(), string(data))
		if err != nil {
			return renderAIError(cmd.ErrOrStderr(), "stdin", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), driver.Decorate(out, opts.Usings, opts.Namespace))
		return nil
	}

	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return err
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}

	var results []driver.AIResult
	if shouldUseTUI(mode) {
		files, ferr := driver.CollectSourceFiles(cmd.Context(), args)
		if ferr != nil {
			return ferr
		}
		results, err = runAIWithUI(cmd.Context(), "converting with "+client.Model(), files, args, opts)
	} else {
		results, err = driver.AIConvertPaths(cmd.Context(), args, opts)
	}

	quiet, qerr := cmd.Root().PersistentFlags().GetBool("quiet")
	if qerr != nil {
		return qerr
	}

	var hasErrors bool
	if outputFormat == "json" {
		if jerr := renderAIJSON(cmd.OutOrStdout(), results); jerr != nil {
			return jerr
		}
		for _, res := range results {
			if res.Err != nil {
				hasErrors = true
			}
		}
	} else {
		for _, res := range results {
			if res.Err != nil {
				hasErrors = true
				_ = renderAIError(cmd.ErrOrStderr(), res.Path, res.Err)
				continue
			}
			if opts.Stdout {
				fmt.Fprintln(cmd.OutOrStdout(), res.Output)
				continue
			}
			if !quiet {
				note := ""
				if res.Cached {
					note = " (cached)"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "converted %s -> %s%s\n", res.Path, res.OutPath, note)
			}
		}
	}

	if !quiet {
		if u, uerr := opts.Cache.LoadUsage(time.Now()); uerr == nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "usage today: %d conversions, %d/%d tokens\n",
				u.Conversions, u.Tokens, uint64(groq.DailyTokenLimit))
		}
	}

	if err != nil {
		return renderAIError(cmd.ErrOrStderr(), "", err)
	}
	if hasErrors {
		return fmt.Errorf("ai: failed to convert some files")
	}
	return nil
}

func buildClient(cmd *cobra.Command, cfg config.AIConfig) (*groq.Client, error) {
	apiKey, err := cmd.Flags().GetString("api-key")
	if err != nil {
		return nil, err
	}
	if apiKey == "" {
		env := cfg.APIKeyEnv
		if env == "" {
			env = "GROQ_API_KEY"
		}
		apiKey = os.Getenv(env)
	}

	model, err := cmd.Flags().GetString("model")
	if err != nil {
		return nil, err
	}
	if model == "" {
		model = cfg.Model
	}

	baseURL, err := cmd.Flags().GetString("base-url")
	if err != nil {
		return nil, err
	}
	if baseURL == "" {
		baseURL = cfg.BaseURL
	}

	timeout, err := cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}
	if timeout == 0 && cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}

	return groq.New(groq.Config{
		APIKey:  apiKey,
		Model:   model,
		BaseURL: baseURL,
		Timeout: timeout,
	}), nil
}

func renderAIJSON(out io.Writer, results []driver.AIResult) error {
	type jsonResult struct {
		Path    string  `json:"path"`
		OutPath string  `json:"out_path,omitempty"`
		Cached  bool    `json:"cached"`
		Tokens  int     `json:"tokens"`
		Error   string  `json:"error,omitempty"`
		Millis  float64 `json:"elapsed_ms"`
	}

	payload := make([]jsonResult, 0, len(results))
	for _, res := range results {
		jr := jsonResult{
			Path:    res.Path,
			OutPath: res.OutPath,
			Cached:  res.Cached,
			Tokens:  res.Tokens,
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

// renderAIError prints a colored, actionable message for each failure kind
// and returns err unchanged so exit codes stay truthful.
func renderAIError(out io.Writer, path string, err error) error {
	label := "ai"
	if path != "" {
		label = "ai: " + path
	}

	var ge *groq.Error
	if !errors.As(err, &ge) {
		fmt.Fprintf(out, "%s: %v\n", label, err)
		return err
	}

	red := color.New(color.FgRed, color.Bold)
	yellow := color.New(color.FgYellow)
	switch ge.Kind {
	case groq.KindInvalidInput:
		fmt.Fprintf(out, "%s %s: %v\n", yellow.Sprint("invalid input"), label, err)
	case groq.KindInvalidCredential:
		fmt.Fprintf(out, "%s %s: %v\n", red.Sprint("invalid credential"), label, err)
		fmt.Fprintln(out, "check --api-key or the GROQ_API_KEY environment variable")
	case groq.KindRateLimited:
		fmt.Fprintf(out, "%s %s: %v\n", yellow.Sprint("rate limited"), label, err)
		fmt.Fprintln(out, "wait a minute and retry, or come back tomorrow if the daily budget is spent")
	case groq.KindTimeout:
		fmt.Fprintf(out, "%s %s: %v\n", yellow.Sprint("timeout"), label, err)
		fmt.Fprintln(out, "retry, or raise --timeout for large files")
	default:
		fmt.Fprintf(out, "%s %s: %v\n", red.Sprint("upstream error"), label, err)
	}
	return err
}
