package linker

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"moddocs/pkg/types"
)

// DefaultClassLinksFile is the filename the xmllinks command writes
const DefaultClassLinksFile = "xml_class_links.json"

// DefaultClassTags lists the markup element names that commonly reference
// type names
var DefaultClassTags = []string{
	"verbClass", "compClass", "defClass", "thingClass", "jobClass",
	"workType", "skillDef", "traitDef", "hediffDef", "abilityDef",
	"class", "type", "def", "operation", "patch",
}

// ClassLink is one markup element whose text content names a known type
type ClassLink struct {
	XMLTag     string `json:"xml_tag"`
	XMLValue   string `json:"xml_value"`
	Class      string `json:"csharp_class"`
	ClassFile  string `json:"csharp_file"`
	MarkupFile string `json:"xml_file"`
	MarkupLine int    `json:"xml_line"`
}

// TagLink is one link as it appears inside a tag group
type TagLink struct {
	XMLValue   string `json:"xml_value"`
	Class      string `json:"csharp_class"`
	ClassFile  string `json:"csharp_file"`
	MarkupFile string `json:"xml_file"`
	MarkupLine int    `json:"xml_line"`
}

// ClassLinkReport is the JSON document produced by the xmllinks command
type ClassLinkReport struct {
	GeneratedAt   string               `json:"generated_at"`
	TotalLinks    int                  `json:"total_links"`
	UniqueClasses int                  `json:"unique_classes"`
	TagGroups     map[string][]TagLink `json:"tag_groups"`
	AllLinks      []ClassLink          `json:"all_links"`
}

// XMLClassLinker matches markup element content against the doc index's
// name -> file mapping. It never re-parses source structure.
type XMLClassLinker struct {
	MarkupExt string   // default ".xml"
	ClassTags []string // element names to probe
	Quiet     bool

	patterns map[string]*regexp.Regexp
}

// NewXMLClassLinker creates a linker probing the default tag set
func NewXMLClassLinker() *XMLClassLinker {
	return &XMLClassLinker{
		MarkupExt: ".xml",
		ClassTags: DefaultClassTags,
	}
}

// compilePatterns builds one case-insensitive pattern per configured tag
func (l *XMLClassLinker) compilePatterns() error {
	l.patterns = make(map[string]*regexp.Regexp, len(l.ClassTags))
	for _, tag := range l.ClassTags {
		p, err := regexp.Compile(`(?i)<` + regexp.QuoteMeta(tag) + `[^>]*>(.*?)</` + regexp.QuoteMeta(tag) + `>`)
		if err != nil {
			return fmt.Errorf("invalid class tag %q: %w", tag, err)
		}
		l.patterns[tag] = p
	}
	return nil
}

// Link scans dataDir for markup files and reports every element whose text
// content matches a type name from the index
func (l *XMLClassLinker) Link(ctx context.Context, index *types.DocIndex, dataDir string) (*ClassLinkReport, error) {
	if err := l.compilePatterns(); err != nil {
		return nil, err
	}
	classes := index.ClassFiles()

	files, err := discoverByExt(dataDir, l.MarkupExt)
	if err != nil {
		return nil, fmt.Errorf("failed to discover markup files: %w", err)
	}

	// Probe tags in a stable order so repeated runs emit identical output
	tags := make([]string, len(l.ClassTags))
	copy(tags, l.ClassTags)
	sort.Strings(tags)

	bar := newProgressBar(len(files), "Linking markup files", l.Quiet)
	links := make([]ClassLink, 0)

	for _, filePath := range files {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		fileLinks, err := l.parseMarkupFile(filePath, tags, classes)
		if err != nil {
			log.Printf("warning: skipping %s: %v", filePath, err)
		}
		links = append(links, fileLinks...)
		if bar != nil {
			_ = bar.Add(1)
		}
	}

	report := &ClassLinkReport{
		GeneratedAt: time.Now().Format(time.RFC3339),
		TotalLinks:  len(links),
		TagGroups:   make(map[string][]TagLink),
		AllLinks:    links,
	}

	uniqueClasses := make(map[string]struct{})
	for _, link := range links {
		uniqueClasses[link.Class] = struct{}{}
		report.TagGroups[link.XMLTag] = append(report.TagGroups[link.XMLTag], TagLink{
			XMLValue:   link.XMLValue,
			Class:      link.Class,
			ClassFile:  link.ClassFile,
			MarkupFile: link.MarkupFile,
			MarkupLine: link.MarkupLine,
		})
	}
	report.UniqueClasses = len(uniqueClasses)

	return report, nil
}

// parseMarkupFile finds class references in one markup file
func (l *XMLClassLinker) parseMarkupFile(filePath string, tags []string, classes map[string]string) ([]ClassLink, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var links []ClassLink
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		for _, tag := range tags {
			for _, m := range l.patterns[tag].FindAllStringSubmatch(line, -1) {
				className := strings.TrimSpace(m[1])
				classFile, ok := classes[className]
				if !ok {
					continue
				}
				links = append(links, ClassLink{
					XMLTag:     tag,
					XMLValue:   className,
					Class:      className,
					ClassFile:  classFile,
					MarkupFile: filepath.ToSlash(filePath),
					MarkupLine: lineNum,
				})
			}
		}
	}

	return links, scanner.Err()
}
