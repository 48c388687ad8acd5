package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"moddocs/internal/config"
	"moddocs/internal/indexer"
	"moddocs/internal/linker"
	"moddocs/pkg/types"
)

var (
	xmlIndexPath string
	xmlDataDir   string
	xmlOutput    string
	xmlTags      []string
	xmlQuiet     bool
)

// xmllinksCmd represents the xmllinks command
var xmllinksCmd = &cobra.Command{
	Use:   "xmllinks",
	Short: "Link XML class-reference tags to indexed types",
	Long: `Xmllinks reads the docs index and scans XML definition files for elements
whose text content names a known type (thingClass, compClass, verbClass and
the rest of the tag set). It writes xml_class_links.json grouping every
match by tag.

The docs index is the only structural input: run 'moddocs scan' first.

Examples:
  moddocs xmllinks --index docs_index.json --data Data
  moddocs xmllinks --data Mods/MyMod/Defs --tag thingClass --tag compClass
`,
	RunE: runXMLLinks,
}

func init() {
	rootCmd.AddCommand(xmllinksCmd)
	xmllinksCmd.Flags().StringVar(&xmlIndexPath, "index", indexer.DefaultIndexFile, "Docs index produced by the scan command")
	xmllinksCmd.Flags().StringVar(&xmlDataDir, "data", "Data", "Directory of XML definition files")
	xmllinksCmd.Flags().StringVar(&xmlOutput, "output", linker.DefaultClassLinksFile, "Output file")
	xmllinksCmd.Flags().StringArrayVar(&xmlTags, "tag", nil, "Class-reference tag to probe (repeatable, replaces the default set)")
	xmllinksCmd.Flags().BoolVarP(&xmlQuiet, "quiet", "q", false, "Disable progress bars and non-error output")
}

func runXMLLinks(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	index, err := types.LoadDocIndex(xmlIndexPath)
	if err != nil {
		return err
	}

	cfg, err := config.Load(".")
	if err != nil {
		return err
	}

	l := linker.NewXMLClassLinker()
	l.MarkupExt = cfg.Linker.MarkupExt
	l.ClassTags = cfg.Linker.ClassTags
	l.Quiet = xmlQuiet
	if len(xmlTags) > 0 {
		l.ClassTags = xmlTags
	}

	start := time.Now()
	report, err := l.Link(ctx, index, xmlDataDir)
	if err != nil {
		return err
	}

	if err := linker.WriteReport(report, xmlOutput); err != nil {
		return err
	}

	if !xmlQuiet {
		fmt.Printf("\nGenerated %d XML to class links in %v\n", report.TotalLinks, time.Since(start).Round(time.Millisecond))
		fmt.Printf("Found %d unique classes\n", report.UniqueClasses)
		fmt.Printf("Results saved to %s\n", xmlOutput)
	}

	return nil
}
