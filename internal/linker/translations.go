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

	"golang.org/x/sync/errgroup"
)

// DefaultTranslationsFile is the filename the translations command writes
const DefaultTranslationsFile = "translation_links.json"

// translatePattern matches localization call sites. Group 1 captures a
// quoted key literal, group 2 an identifier receiver. Only calls with
// arguments are matched: bare "Key".Translate() lookups carry no
// substitutions and are out of scope.
var translatePattern = regexp.MustCompile(`["']([^"']+)["']\.Translate\([^)]+\)|(\w+)\.Translate\([^)]+\)`)

// XML patterns for harvesting candidate translation keys. Element close tags
// are captured separately and compared in code since RE2 has no
// backreferences.
var (
	xmlElementPattern   = regexp.MustCompile(`<(\w+)>([^<]+)</(\w+)>`)
	xmlAttributePattern = regexp.MustCompile(`(\w+)="([^"]+)"`)
	allDigitsPattern    = regexp.MustCompile(`^\d+$`)
)

// TranslateCall is one localization call site found in source
type TranslateCall struct {
	TranslationKey string `json:"translation_key"`
	SourceFile     string `json:"csharp_file"`
	SourceLine     int    `json:"csharp_line"`
	SourceCode     string `json:"csharp_code"`
}

// TranslationUsage is one linked call site together with the markup files
// that define its key
type TranslationUsage struct {
	SourceFile string   `json:"csharp_file"`
	SourceLine int      `json:"csharp_line"`
	SourceCode string   `json:"csharp_code"`
	XMLFiles   []string `json:"xml_files"`
}

// TranslationReport is the JSON document produced by the translations command
type TranslationReport struct {
	GeneratedAt           string                        `json:"generated_at"`
	TotalTranslateCalls   int                           `json:"total_translate_calls"`
	UniqueTranslationKeys int                           `json:"unique_translation_keys"`
	LinkedTranslations    int                           `json:"linked_translations"`
	TranslationLinks      map[string][]TranslationUsage `json:"translation_links"`
	UnlinkedCalls         []TranslateCall               `json:"unlinked_csharp_calls"`
}

// TranslationLinker cross-references localization call sites in source files
// against key definitions in markup files
type TranslationLinker struct {
	SourceExt string   // default ".cs"
	MarkupExt string   // default ".xml"
	KeyTags   []string // element/attribute names treated as key definitions
	Quiet     bool
}

// NewTranslationLinker creates a linker with the default key tag set
func NewTranslationLinker() *TranslationLinker {
	return &TranslationLinker{
		SourceExt: ".cs",
		MarkupExt: ".xml",
		KeyTags:   []string{"key", "defName", "label", "description", "text"},
	}
}

// Link scans sourceDir for localization calls and dataDir for key
// definitions, then joins the two sets. The two scans are independent and
// run concurrently.
func (l *TranslationLinker) Link(ctx context.Context, sourceDir, dataDir string) (*TranslationReport, error) {
	var (
		calls   []TranslateCall
		xmlKeys map[string][]string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		calls, err = l.findTranslateCalls(gctx, sourceDir)
		return err
	})
	g.Go(func() error {
		var err error
		xmlKeys, err = l.findMarkupKeys(gctx, dataDir)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &TranslationReport{
		GeneratedAt:      time.Now().Format(time.RFC3339),
		TranslationLinks: make(map[string][]TranslationUsage),
		UnlinkedCalls:    make([]TranslateCall, 0),
	}

	uniqueKeys := make(map[string]struct{})
	for _, call := range calls {
		uniqueKeys[call.TranslationKey] = struct{}{}
		files, ok := xmlKeys[call.TranslationKey]
		if !ok {
			report.UnlinkedCalls = append(report.UnlinkedCalls, call)
			continue
		}
		report.TranslationLinks[call.TranslationKey] = append(report.TranslationLinks[call.TranslationKey], TranslationUsage{
			SourceFile: call.SourceFile,
			SourceLine: call.SourceLine,
			SourceCode: call.SourceCode,
			XMLFiles:   files,
		})
	}

	report.TotalTranslateCalls = len(calls)
	report.UniqueTranslationKeys = len(uniqueKeys)
	report.LinkedTranslations = len(report.TranslationLinks)
	return report, nil
}

// findTranslateCalls scans source files line by line for localization calls
func (l *TranslationLinker) findTranslateCalls(ctx context.Context, sourceDir string) ([]TranslateCall, error) {
	files, err := discoverByExt(sourceDir, l.SourceExt)
	if err != nil {
		return nil, fmt.Errorf("failed to discover source files: %w", err)
	}

	bar := newProgressBar(len(files), "Scanning source files", l.Quiet)
	calls := make([]TranslateCall, 0)

	for _, filePath := range files {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		fileCalls, err := l.parseSourceFile(filePath)
		if err != nil {
			log.Printf("warning: skipping %s: %v", filePath, err)
		}
		calls = append(calls, fileCalls...)
		if bar != nil {
			_ = bar.Add(1)
		}
	}

	return calls, nil
}

// parseSourceFile finds localization calls in one source file
func (l *TranslationLinker) parseSourceFile(filePath string) ([]TranslateCall, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var calls []TranslateCall
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		for _, m := range translatePattern.FindAllStringSubmatch(line, -1) {
			key := m[1]
			if key == "" {
				key = m[2]
			}
			if key == "" {
				continue
			}
			calls = append(calls, TranslateCall{
				TranslationKey: key,
				SourceFile:     filepath.ToSlash(filePath),
				SourceLine:     lineNum,
				SourceCode:     strings.TrimSpace(line),
			})
		}
	}

	return calls, scanner.Err()
}

// findMarkupKeys harvests candidate translation keys from markup files and
// maps each key to the files that define it
func (l *TranslationLinker) findMarkupKeys(ctx context.Context, dataDir string) (map[string][]string, error) {
	files, err := discoverByExt(dataDir, l.MarkupExt)
	if err != nil {
		return nil, fmt.Errorf("failed to discover markup files: %w", err)
	}

	bar := newProgressBar(len(files), "Scanning markup files", l.Quiet)
	keyToFiles := make(map[string][]string)

	for _, filePath := range files {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		keys, err := l.parseMarkupKeys(filePath)
		if err != nil {
			log.Printf("warning: skipping %s: %v", filePath, err)
		}
		for _, key := range keys {
			keyToFiles[key] = append(keyToFiles[key], filepath.ToSlash(filePath))
		}
		if bar != nil {
			_ = bar.Add(1)
		}
	}

	return keyToFiles, nil
}

// parseMarkupKeys finds candidate keys in one markup file. A value counts as
// a key when its tag name is a known key tag, or as a loose fallback when it
// is non-empty, not a substitution placeholder and not purely numeric.
func (l *TranslationLinker) parseMarkupKeys(filePath string) ([]string, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	keyTags := make(map[string]struct{}, len(l.KeyTags))
	for _, tag := range l.KeyTags {
		keyTags[strings.ToLower(tag)] = struct{}{}
	}

	plausible := func(tagName, value string) bool {
		if _, ok := keyTags[strings.ToLower(tagName)]; ok {
			return true
		}
		return value != "" && !strings.HasPrefix(value, "{") && !allDigitsPattern.MatchString(value)
	}

	seen := make(map[string]struct{})
	text := string(content)

	for _, m := range xmlElementPattern.FindAllStringSubmatch(text, -1) {
		// Open and close tags must agree
		if m[1] != m[3] {
			continue
		}
		if plausible(m[1], m[2]) {
			seen[m[2]] = struct{}{}
		}
	}
	for _, m := range xmlAttributePattern.FindAllStringSubmatch(text, -1) {
		if plausible(m[1], m[2]) {
			seen[m[2]] = struct{}{}
		}
	}

	keys := make([]string, 0, len(seen))
	for key := range seen {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}
