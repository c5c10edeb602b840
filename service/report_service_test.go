package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repolens/repolens/domain"
)

const singletonFixture = `"""Connection manager."""

class ConnectionManager:
    _instance = None

    def __new__(cls):
        if ConnectionManager._instance is None:
            ConnectionManager._instance = super().__new__(cls)
        return ConnectionManager._instance
`

const cachingFixture = `"""Result cache helpers."""

CACHE = {}

def cache_result(key, value):
    """Stores a value in the cache.

    :param key: cache key
    :return: nothing
    """
    CACHE[key] = value
`

func newTestService() *ReportServiceImpl {
	return NewReportService(NewFileReader(), NoProgressManager())
}

func analyzeRequest(paths ...string) domain.AnalyzeRequest {
	return domain.AnalyzeRequest{
		Paths:      paths,
		Recursive:  true,
		NoProgress: true,
	}
}

func TestAnalyzeEmptyDirectory(t *testing.T) {
	dir := createTempDir(t)
	createTestFile(t, dir, "notes.txt", "no python here\n")

	service := newTestService()

	report, err := service.Analyze(context.Background(), analyzeRequest(dir))
	require.Error(t, err)
	assert.Nil(t, report)
	assert.True(t, domain.IsNoFilesFound(err))
	assert.Contains(t, err.Error(), "No Python files found in "+dir)
}

func TestAnalyzePipeline(t *testing.T) {
	dir := createTempDir(t)
	createTestFile(t, dir, "manager.py", singletonFixture)
	createTestFile(t, dir, "cache.py", cachingFixture)

	service := newTestService()

	report, err := service.Analyze(context.Background(), analyzeRequest(dir))
	require.NoError(t, err)
	require.NotNil(t, report)

	assert.Greater(t, report.DesignScore, 0.0)
	assert.Greater(t, report.PerformanceScore, 0.0)

	names := make(map[domain.PatternName]bool)
	for _, p := range report.Patterns {
		names[p.Name] = true
	}
	assert.True(t, names[domain.PatternSingleton], "singleton missing from %v", report.Patterns)
	assert.True(t, names[domain.PatternCaching], "caching missing from %v", report.Patterns)

	assert.Equal(t, 2, report.Metrics.TotalFiles)
	assert.Len(t, report.Documentation.Files, 2)
	assert.NotEmpty(t, report.Recommendations)
	assert.Empty(t, report.Issues)
	assert.NotZero(t, report.AnalyzedAt)

	// Per-match details are withheld unless requested
	assert.Empty(t, report.Matches)
	assert.Empty(t, report.FileMetrics)
}

func TestAnalyzeShowDetails(t *testing.T) {
	dir := createTempDir(t)
	createTestFile(t, dir, "manager.py", singletonFixture)

	service := newTestService()

	req := analyzeRequest(dir)
	req.ShowDetails = true

	report, err := service.Analyze(context.Background(), req)
	require.NoError(t, err)

	assert.NotEmpty(t, report.Matches)
	require.Len(t, report.FileMetrics, 1)
	assert.Greater(t, report.FileMetrics[0].LOC, 0)
}

func TestAnalyzeMinConfidence(t *testing.T) {
	dir := createTempDir(t)
	createTestFile(t, dir, "manager.py", singletonFixture)

	service := newTestService()

	req := analyzeRequest(dir)
	req.MinConfidence = 0.9
	req.ShowDetails = true

	report, err := service.Analyze(context.Background(), req)
	require.NoError(t, err)

	require.NotEmpty(t, report.Matches)
	for _, m := range report.Matches {
		assert.GreaterOrEqual(t, m.Confidence, 0.9)
	}
}

func TestAnalyzeDeterministic(t *testing.T) {
	dir := createTempDir(t)
	createTestFile(t, dir, "manager.py", singletonFixture)
	createTestFile(t, dir, "cache.py", cachingFixture)
	createTestFile(t, dir, "util.py", "def helper(x):\n    return x\n")

	service := newTestService()

	first, err := service.Analyze(context.Background(), analyzeRequest(dir))
	require.NoError(t, err)
	second, err := service.Analyze(context.Background(), analyzeRequest(dir))
	require.NoError(t, err)

	assert.Equal(t, first.DesignScore, second.DesignScore)
	assert.Equal(t, first.PerformanceScore, second.PerformanceScore)
	assert.Equal(t, first.SecurityScore, second.SecurityScore)
	assert.Equal(t, first.MaintainabilityScore, second.MaintainabilityScore)
	assert.Equal(t, first.Patterns, second.Patterns)
	assert.Equal(t, first.Recommendations, second.Recommendations)
	assert.Equal(t, first.Metrics, second.Metrics)
}

func TestAnalyzeBrokenFileBecomesIssue(t *testing.T) {
	dir := createTempDir(t)
	createTestFile(t, dir, "good.py", "x = 1\n")
	createTestFile(t, dir, "broken.py", "def broken(:\n")

	service := newTestService()

	report, err := service.Analyze(context.Background(), analyzeRequest(dir))
	require.NoError(t, err)

	require.Len(t, report.Issues, 1)
	assert.Equal(t, "parse", report.Issues[0].Phase)
	assert.Contains(t, report.Issues[0].FilePath, "broken.py")

	// The broken file drops out of every per-file result
	assert.Equal(t, 1, report.Metrics.TotalFiles)
	assert.Len(t, report.Documentation.Files, 1)
}

func TestAnalyzeSingleFile(t *testing.T) {
	dir := createTempDir(t)
	path := createTestFile(t, dir, "manager.py", singletonFixture)

	service := newTestService()

	report, err := service.Analyze(context.Background(), analyzeRequest(path))
	require.NoError(t, err)
	assert.Equal(t, 1, report.Metrics.TotalFiles)
}
