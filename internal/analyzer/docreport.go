package analyzer

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/repolens/repolens/domain"
)

// readmeSection is one expected README section with its score weight
type readmeSection struct {
	name   string
	weight float64
}

// readmeSections is the fixed section rubric; weights sum to 100
var readmeSections = []readmeSection{
	{"overview", 5},
	{"installation", 10},
	{"usage", 15},
	{"configuration", 10},
	{"api", 20},
	{"examples", 15},
	{"contributing", 10},
	{"license", 5},
	{"dependencies", 10},
}

// minSectionWords is the word count a section needs to earn its content half
const minSectionWords = 100

// BuildDocumentationReport aggregates per-file documentation results into
// the repository-level report. root is the directory searched for README.md
// and API documentation.
func BuildDocumentationReport(results []DocResult, root string) domain.DocumentationReport {
	report := domain.DocumentationReport{}

	totalItems := 0
	totalDocumented := 0
	hintWeighted := 0.0
	totalExamples := 0
	var corpus []string

	for _, r := range results {
		report.Files = append(report.Files, r.Coverage)
		totalItems += r.Coverage.TotalItems
		totalDocumented += r.Coverage.DocumentedItems
		hintWeighted += r.Coverage.TypeHintCoverage * float64(r.Coverage.TotalItems)
		totalExamples += r.Coverage.ExampleCount
		corpus = append(corpus, r.Docstrings...)
	}

	if totalItems > 0 {
		report.CoverageScore = float64(totalDocumented) / float64(totalItems) * 100
		report.TypeHintScore = hintWeighted / float64(totalItems) * 100
	}
	if len(results) > 0 {
		// Roughly two examples per file earn full marks
		report.ExampleScore = float64(totalExamples) / float64(len(results)) * 50
		if report.ExampleScore > 100 {
			report.ExampleScore = 100
		}
	}

	report.ReadmeScore = scoreReadme(root)
	report.APIDocScore = scoreAPIDocs(root)
	report.QualityScore = docstringQuality(corpus) * 100
	report.CompletenessScore = docstringCompleteness(corpus) * 100

	return report
}

// scoreReadme rates README.md against the section rubric: half the weight
// for the section being present, the other half for carrying at least
// minSectionWords words.
func scoreReadme(root string) float64 {
	data, err := os.ReadFile(filepath.Join(root, "README.md"))
	if err != nil {
		return 0.0
	}
	content := strings.ToLower(string(data))

	score := 0.0
	for _, section := range readmeSections {
		headingRe := regexp.MustCompile(`#\s*` + section.name + `|[*_]{2}` + section.name + `[*_]{2}`)
		if !headingRe.MatchString(content) {
			continue
		}
		score += section.weight * 0.5

		bodyRe := regexp.MustCompile(`(?s)#\s*` + section.name + `.*?(?:#{2,}|$)|[*_]{2}` + section.name + `[*_]{2}.*?(?:#{2,}|$)`)
		if body := bodyRe.FindString(content); len(strings.Fields(body)) >= minSectionWords {
			score += section.weight * 0.5
		}
	}
	return score
}

// MissingReadmeSections lists rubric sections absent from README.md, in
// rubric order. A missing README reports every section.
func MissingReadmeSections(root string) []string {
	content := ""
	if data, err := os.ReadFile(filepath.Join(root, "README.md")); err == nil {
		content = strings.ToLower(string(data))
	}
	var missing []string
	for _, section := range readmeSections {
		headingRe := regexp.MustCompile(`#\s*` + section.name + `|[*_]{2}` + section.name + `[*_]{2}`)
		if !headingRe.MatchString(content) {
			missing = append(missing, section.name)
		}
	}
	return missing
}

var (
	apiHeadingRe  = regexp.MustCompile(`(?i)#\s*API\s+Reference`)
	codeBlockRe   = regexp.MustCompile("```[^`]+```")
	apiSectionsRe = regexp.MustCompile(`Parameters|Returns|Raises`)
	apiUsageRe    = regexp.MustCompile(`Example|Usage`)
)

// scoreAPIDocs looks for API documentation in the conventional locations: a
// docs/api directory scored by file count, or a single API.md scored by the
// presence of five standard elements at 20 points each.
func scoreAPIDocs(root string) float64 {
	score := 0.0
	totalWeight := 0.0

	candidates := []string{
		filepath.Join(root, "docs", "api"),
		filepath.Join(root, "docs", "API.md"),
		filepath.Join(root, "API.md"),
	}

	for _, path := range candidates {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if info.IsDir() {
			count := countMarkdownFiles(path)
			score += float64(count) * 20
			totalWeight = float64(count) * 20
			if totalWeight < 100 {
				totalWeight = 100
			}
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		content := string(data)
		if apiHeadingRe.MatchString(content) {
			score += 20
		}
		if codeBlockRe.MatchString(content) {
			score += 20
		}
		if apiSectionsRe.MatchString(content) {
			score += 20
		}
		if apiUsageRe.MatchString(content) {
			score += 20
		}
		if len(strings.Fields(content)) >= minSectionWords {
			score += 20
		}
		totalWeight = 100
		break
	}

	if totalWeight == 0 {
		return 0.0
	}
	result := score / totalWeight * 100
	if result > 100 {
		result = 100
	}
	return result
}

// countMarkdownFiles counts .md files under dir recursively
func countMarkdownFiles(dir string) int {
	count := 0
	_ = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() && strings.HasSuffix(strings.ToLower(path), ".md") {
			count++
		}
		return nil
	})
	return count
}
