package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"moddocs/internal/config"
	"moddocs/internal/linker"
)

var (
	transSourceDir string
	transDataDir   string
	transOutput    string
	transQuiet     bool
)

// translationsCmd represents the translations command
var translationsCmd = &cobra.Command{
	Use:   "translations",
	Short: "Link .Translate() call sites to XML translation keys",
	Long: `Translations scans C# source files for .Translate(...) call sites and XML
files for translation key definitions, then joins the two sets. The source
and XML scans run concurrently. It writes translation_links.json with the
linked keys plus every call site whose key has no XML definition.

This command does not need the docs index.

Examples:
  moddocs translations --source Assembly-CSharp --data Data
`,
	RunE: runTranslations,
}

func init() {
	rootCmd.AddCommand(translationsCmd)
	translationsCmd.Flags().StringVar(&transSourceDir, "source", "Assembly-CSharp", "Directory of C# source files")
	translationsCmd.Flags().StringVar(&transDataDir, "data", "Data", "Directory of XML definition files")
	translationsCmd.Flags().StringVar(&transOutput, "output", linker.DefaultTranslationsFile, "Output file")
	translationsCmd.Flags().BoolVarP(&transQuiet, "quiet", "q", false, "Disable progress bars and non-error output")
}

func runTranslations(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	cfg, err := config.Load(".")
	if err != nil {
		return err
	}

	l := linker.NewTranslationLinker()
	l.SourceExt = cfg.Scan.SourceExt
	l.MarkupExt = cfg.Linker.MarkupExt
	l.KeyTags = cfg.Linker.KeyTags
	l.Quiet = transQuiet

	start := time.Now()
	report, err := l.Link(ctx, transSourceDir, transDataDir)
	if err != nil {
		return err
	}

	if err := linker.WriteReport(report, transOutput); err != nil {
		return err
	}

	if !transQuiet {
		fmt.Printf("\nFound %d .Translate() calls in %v\n", report.TotalTranslateCalls, time.Since(start).Round(time.Millisecond))
		fmt.Printf("Found %d unique translation keys\n", report.UniqueTranslationKeys)
		fmt.Printf("Linked %d translations to XML files\n", report.LinkedTranslations)
		fmt.Printf("Results saved to %s\n", transOutput)
	}

	return nil
}
