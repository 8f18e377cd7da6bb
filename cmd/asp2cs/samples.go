package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/secretm224/asp-to-dotnet-converter/internal/driver"
	"github.com/secretm224/asp-to-dotnet-converter/internal/samples"
)

var samplesCmd = &cobra.Command{
	Use:   "samples [name]",
	Short: "Show built-in ASP sample snippets",
	Long: `Samples lists the bundled Classic ASP snippets, or prints one by name.
With --convert the snippet is run through the rule engine first.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSamples,
}

func init() {
	samplesCmd.Flags().Bool("convert", false, "print the converted C# instead of the ASP source")
}

func runSamples(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	if len(args) == 0 {
		for _, name := range samples.Names() {
			s, _ := samples.Get(name)
			fmt.Fprintf(cmd.OutOrStdout(), "%-10s %s\n", s.Name, s.Title)
		}
		return nil
	}

	s, ok := samples.Get(args[0])
	if !ok {
		return fmt.Errorf("samples: unknown sample %q (available: %s)", args[0], strings.Join(samples.Names(), ", "))
	}

	doConvert, err := cmd.Flags().GetBool("convert")
	if err != nil {
		return err
	}
	if doConvert {
		fmt.Fprintln(cmd.OutOrStdout(), driver.ConvertSource(s.Code, driver.Options{}))
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), s.Code)
	return nil
}
