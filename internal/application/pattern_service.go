package application

import (
	"errors"
	"fmt"
	"path/filepath"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/patternscan/patternscan/internal/domain"
	"github.com/patternscan/patternscan/internal/domain/catalog"
	"github.com/patternscan/patternscan/internal/domain/detect"
	"github.com/patternscan/patternscan/internal/logging"
)

// PatternService orchestrates one analysis:
// load config → scan → per file (read → structural augment → indicator match) → dedup → aggregate.
type PatternService struct {
	scanner      domain.ProjectScanner
	reader       domain.SourceReader
	configLoader domain.ConfigLoader
	revisions    domain.RevisionReader
	registry     *detect.Registry
	augmenter    *detect.Augmenter
	logger       *zap.Logger
}

// NewPatternService wires the service. revisions may be nil, in which case
// reports carry no commit.
func NewPatternService(
	scanner domain.ProjectScanner,
	reader domain.SourceReader,
	configLoader domain.ConfigLoader,
	revisions domain.RevisionReader,
	registry *detect.Registry,
	logger *zap.Logger,
) *PatternService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PatternService{
		scanner:      scanner,
		reader:       reader,
		configLoader: configLoader,
		revisions:    revisions,
		registry:     registry,
		augmenter:    detect.NewAugmenter(),
		logger:       logger,
	}
}

// NewLanguageRegistry registers the built-in Go and Python languages. Either
// parser may be nil to disable structural augmentation for that language.
func NewLanguageRegistry(goParser, pyParser domain.SyntaxParser) (*detect.Registry, error) {
	goCat, err := catalog.Builtin(domain.LanguageGo)
	if err != nil {
		return nil, err
	}
	pyCat, err := catalog.Builtin(domain.LanguagePython)
	if err != nil {
		return nil, err
	}
	return detect.NewRegistry(
		detect.Language{
			ID:                    domain.LanguageGo,
			Extensions:            []string{".go"},
			Catalog:               goCat,
			Parser:                goParser,
			DecorationDescription: "Go directive comments attached to declarations",
		},
		detect.Language{
			ID:                    domain.LanguagePython,
			Extensions:            []string{".py"},
			Catalog:               pyCat,
			Parser:                pyParser,
			DecorationDescription: "Python decorators",
		},
	)
}

// Registry returns the language registry the service analyzes with.
func (s *PatternService) Registry() *detect.Registry {
	return s.registry
}

// Overrides are per-run settings that take precedence over project config,
// typically from CLI flags or MCP tool arguments. Zero values leave the
// config untouched.
type Overrides struct {
	Patterns            []string
	MaxFilesPerLanguage *int
	ConfidenceMode      domain.ConfidenceMode
}

func (o Overrides) apply(cfg domain.ProjectConfig) domain.ProjectConfig {
	if len(o.Patterns) > 0 {
		cfg.Patterns = domain.SplitList(o.Patterns)
	}
	if o.MaxFilesPerLanguage != nil {
		cfg.MaxFilesPerLanguage = *o.MaxFilesPerLanguage
	}
	if o.ConfidenceMode != "" {
		cfg.ConfidenceMode = o.ConfidenceMode
	}
	return cfg
}

// AnalyzeProject analyzes every supported source file under projectPath.
func (s *PatternService) AnalyzeProject(projectPath string, ov Overrides) (*domain.Report, error) {
	// 0. Load config
	cfg, err := s.configLoader.Load(projectPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	cfg = ov.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// 1. Scan filesystem
	scan, err := s.scanner.Scan(projectPath, cfg.ExcludePaths...)
	if err != nil {
		return nil, fmt.Errorf("scanning project: %w", err)
	}

	// 2. Detect
	res := s.Analyze(scan.RootPath, scan.SourceFiles(), cfg)

	rep := &domain.Report{Project: filepath.Base(scan.RootPath), AnalysisResult: res}
	// Projects outside git have no revision.
	if s.revisions != nil && s.revisions.IsGitRepo(scan.RootPath) {
		if rev, err := s.revisions.Revision(scan.RootPath); err == nil {
			rep.Commit, rep.Branch = rev.Commit, rev.Branch
		} else {
			s.logger.Debug("no git revision", zap.String("path", scan.RootPath), zap.Error(err))
		}
	}
	return rep, nil
}

// Analyze runs detection over files, given relative to root, in order.
// Per-file failures are logged and recorded as skipped; they never abort
// the run.
func (s *PatternService) Analyze(root string, files []string, cfg domain.ProjectConfig) *domain.AnalysisResult {
	log, _ := logging.WithRun(s.logger)
	log.Info("analysis started", zap.String("root", root), zap.Int("candidates", len(files)))

	filter := cfg.PatternFilter()
	for id := range filter {
		if !s.registry.Knows(id) {
			log.Warn("unknown pattern in filter", zap.String("pattern", id))
		}
	}

	definitions := make(map[domain.LanguageID][]domain.PatternDefinition)
	for _, l := range s.registry.Languages() {
		definitions[l.ID] = l.Catalog.Select(filter)
	}

	matcher := detect.NewMatcher(cfg.Mode())
	perLang := make(map[domain.LanguageID]int)
	capped := make(map[domain.LanguageID]bool)

	var (
		pool    []domain.PatternMatch
		skipped []domain.SkippedFile
	)

	for _, rel := range files {
		lang, ok := s.registry.ForPath(rel)
		if !ok {
			continue
		}
		if cfg.MaxFilesPerLanguage > 0 && perLang[lang.ID] >= cfg.MaxFilesPerLanguage {
			if !capped[lang.ID] {
				capped[lang.ID] = true
				log.Info("file cap reached", zap.String("language", string(lang.ID)), zap.Int("max_files", cfg.MaxFilesPerLanguage))
			}
			continue
		}
		perLang[lang.ID]++

		data, err := s.reader.ReadSource(filepath.Join(root, rel), cfg.MaxFileSize)
		if err == nil && !utf8.Valid(data) {
			err = domain.ErrNotUTF8
		}
		if err != nil {
			log.Warn("skipping file", zap.String("path", rel), zap.Error(err))
			skipped = append(skipped, domain.SkippedFile{Path: rel, Reason: skipReason(err)})
			continue
		}

		// Structural matches go first so they win deduplication ties.
		if lang.Parser != nil {
			nodes, err := lang.Parser.Parse(rel, data)
			if err != nil {
				log.Debug("structural analysis skipped", zap.String("path", rel), zap.Error(err))
			} else {
				for _, m := range s.augmenter.Augment(rel, lang.ID, lang.DecorationDescription, nodes) {
					if filter == nil || filter[m.PatternID] {
						pool = append(pool, m)
					}
				}
			}
		}

		src := detect.NewSource(rel, lang.ID, data)
		for _, def := range definitions[lang.ID] {
			pool = append(pool, matcher.Match(src, def)...)
		}
	}

	res := detect.Summarize(detect.Deduplicate(pool))
	res.Skipped = skipped

	log.Info("analysis complete",
		zap.Int("files", sumCounts(perLang)),
		zap.Int("patterns", res.TotalPatterns),
		zap.Int("skipped", len(skipped)))
	return res
}

func skipReason(err error) string {
	for _, sentinel := range []error{domain.ErrFileTooLarge, domain.ErrNotUTF8} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return err.Error()
}

func sumCounts(m map[domain.LanguageID]int) int {
	total := 0
	for _, n := range m {
		total += n
	}
	return total
}
