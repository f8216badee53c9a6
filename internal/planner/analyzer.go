// Package planner turns a raw task prompt into an inspectable execution
// plan: it analyzes the task, scores the agent roster against it, builds
// a dependency-ordered phase graph, estimates resources, and optimizes
// the result.
package planner

import (
	"math"
	"regexp"
	"strings"

	"hivemind/pkg/models"
)

// complexityTier couples a scoring weight with the keywords and patterns
// that indicate it.
type complexityTier struct {
	level    models.Complexity
	weight   int
	keywords []string
	patterns []*regexp.Regexp
}

// Analyzer classifies task prompts into a structured TaskAnalysis.
type Analyzer struct {
	tiers        []complexityTier
	dataDepRe    *regexp.Regexp
	sequentialRe *regexp.Regexp
	highRiskRe   *regexp.Regexp
	mediumRiskRe *regexp.Regexp
}

// NewAnalyzer creates an Analyzer with the default keyword tiers.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		tiers: []complexityTier{
			{
				level:  models.ComplexityHigh,
				weight: 3,
				keywords: []string{
					"architecture",
					"migration",
					"migrate",
					"database",
					"schema",
					"authentication",
					"security",
					"distributed",
					"infrastructure",
					"concurrency",
				},
				patterns: compilePatterns([]string{
					`\bmicro[- ]?services?\b`,
					`\bend[- ]to[- ]end\b`,
					`\bmulti[- ](service|tenant|region)\b`,
					`\breal[- ]?time\b`,
				}),
			},
			{
				level:  models.ComplexityMedium,
				weight: 2,
				keywords: []string{
					"implement",
					"integrate",
					"refactor",
					"endpoint",
					"module",
					"pipeline",
					"cache",
					"deploy",
				},
				patterns: compilePatterns([]string{
					`\b(api|rest|grpc)\b`,
					`\bunit tests?\b`,
					`\berror handling\b`,
				}),
			},
			{
				level:  models.ComplexityLow,
				weight: 1,
				keywords: []string{
					"typo",
					"readme",
					"rename",
					"comment",
					"format",
					"simple",
					"trivial",
					"tweak",
				},
				patterns: compilePatterns([]string{
					`\bone[- ]?liner\b`,
					`\bsmall (change|fix)\b`,
				}),
			},
		},
		dataDepRe:    regexp.MustCompile(`(?i)\b(database|db|migration|schema|data|sql|transaction)\b`),
		sequentialRe: regexp.MustCompile(`(?i)(step[- ]by[- ]step|first\b.*\bthen\b|one at a time|in order|sequentially)`),
		highRiskRe:   regexp.MustCompile(`(?i)\b(production|prod|delete|drop|destroy|critical|irreversible)\b`),
		mediumRiskRe: regexp.MustCompile(`(?i)\b(staging|modify|update|change|replace)\b`),
	}
}

// compilePatterns compiles pattern strings, skipping any that fail.
func compilePatterns(patterns []string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		if r, err := regexp.Compile("(?i)" + p); err == nil {
			compiled = append(compiled, r)
		}
	}
	return compiled
}

// Analyze assesses a task prompt. Empty input yields a degenerate
// "unknown" analysis; Analyze never fails.
func (a *Analyzer) Analyze(task string) models.TaskAnalysis {
	if strings.TrimSpace(task) == "" {
		return models.TaskAnalysis{
			Complexity: models.ComplexityUnknown,
			Type:       models.TaskTypeGeneral,
			RiskLevel:  models.RiskLow,
		}
	}

	lower := strings.ToLower(task)
	metrics := models.TextMetrics{
		Words: len(strings.Fields(task)),
		Lines: strings.Count(task, "\n") + 1,
		Chars: len(task),
	}

	score := 0
	var hits []models.KeywordHit
	for _, tier := range a.tiers {
		for _, kw := range tier.keywords {
			if strings.Contains(lower, kw) {
				score += tier.weight
				hits = append(hits, models.KeywordHit{Keyword: kw, Level: tier.level})
			}
		}
		for _, re := range tier.patterns {
			if re.MatchString(lower) {
				score += tier.weight
				hits = append(hits, models.KeywordHit{Keyword: re.String(), Level: tier.level})
			}
		}
	}

	// Long prompts tend to describe more work than their keywords admit.
	if metrics.Chars > 500 {
		score++
	}
	if metrics.Chars > 1000 {
		score++
	}
	if metrics.Lines > 5 {
		score++
	}
	if metrics.Lines > 10 {
		score++
	}

	complexity := models.ComplexityLow
	switch {
	case score >= 6:
		complexity = models.ComplexityHigh
	case score >= 3:
		complexity = models.ComplexityMedium
	}

	primary, allTypes := detectTypes(lower)

	hasDataDeps := a.dataDepRe.MatchString(task)
	requiresSequential := hasDataDeps || a.sequentialRe.MatchString(task)

	risk := models.RiskLow
	switch {
	case a.highRiskRe.MatchString(task):
		risk = models.RiskHigh
	case a.mediumRiskRe.MatchString(task):
		risk = models.RiskMedium
	}

	confidence := 0.3 + 0.1*float64(len(hits)) + 0.15*float64(len(allTypes))
	if confidence > 1 {
		confidence = 1
	}
	confidence = math.Round(confidence*100) / 100

	return models.TaskAnalysis{
		Complexity:          complexity,
		ComplexityScore:     score,
		Type:                primary,
		AllTypes:            allTypes,
		DetectedKeywords:    hits,
		EstimatedTokens:     int(math.Ceil(float64(metrics.Words) * 1.3)),
		RequiresSequential:  requiresSequential,
		HasDataDependencies: hasDataDeps,
		RiskLevel:           risk,
		Confidence:          confidence,
		Metrics:             metrics,
	}
}

// detectTypes matches the capability keywords of every task type against
// the lowered prompt. The first matching type in table order is primary;
// prompts matching nothing are classified as general.
func detectTypes(lower string) (models.TaskType, []models.TaskType) {
	var all []models.TaskType
	for _, tt := range models.TaskTypeOrder {
		for _, cap := range models.TaskTypeCapabilities[tt] {
			keyword := strings.ReplaceAll(string(cap), "-", " ")
			if strings.Contains(lower, keyword) {
				all = append(all, tt)
				break
			}
		}
	}
	if len(all) == 0 {
		return models.TaskTypeGeneral, nil
	}
	return all[0], all
}
