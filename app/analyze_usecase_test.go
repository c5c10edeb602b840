package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repolens/repolens/domain"
)

// stubService returns a canned report or error
type stubService struct {
	report  *domain.ScoreReport
	err     error
	lastReq domain.AnalyzeRequest
}

func (s *stubService) Analyze(ctx context.Context, req domain.AnalyzeRequest) (*domain.ScoreReport, error) {
	s.lastReq = req
	if s.err != nil {
		return nil, s.err
	}
	return s.report, nil
}

// stubFormatter records what it was asked to write
type stubFormatter struct {
	written bool
	format  domain.OutputFormat
	err     error
}

func (f *stubFormatter) Format(report *domain.ScoreReport, format domain.OutputFormat) (string, error) {
	return "", nil
}

func (f *stubFormatter) Write(report *domain.ScoreReport, format domain.OutputFormat, writer io.Writer) error {
	f.written = true
	f.format = format
	return f.err
}

// stubConfigLoader serves a fixed base configuration
type stubConfigLoader struct {
	base    *domain.AnalyzeRequest
	loadErr error
}

func (l *stubConfigLoader) LoadConfig(path string) (*domain.AnalyzeRequest, error) {
	if l.loadErr != nil {
		return nil, l.loadErr
	}
	return l.base, nil
}

func (l *stubConfigLoader) LoadDefaultConfig() *domain.AnalyzeRequest {
	return l.base
}

func (l *stubConfigLoader) MergeConfig(base *domain.AnalyzeRequest, override *domain.AnalyzeRequest) *domain.AnalyzeRequest {
	merged := *base
	if len(override.Paths) > 0 {
		merged.Paths = override.Paths
	}
	if override.OutputFormat != "" {
		merged.OutputFormat = override.OutputFormat
	}
	if override.OutputWriter != nil {
		merged.OutputWriter = override.OutputWriter
	}
	return &merged
}

func validRequest() domain.AnalyzeRequest {
	return domain.AnalyzeRequest{
		Paths:        []string{"src/"},
		OutputFormat: domain.OutputFormatText,
		OutputWriter: &bytes.Buffer{},
	}
}

func newStubUseCase() (*AnalyzeUseCase, *stubService, *stubFormatter) {
	service := &stubService{report: &domain.ScoreReport{Version: "1.0.0"}}
	formatter := &stubFormatter{}
	loader := &stubConfigLoader{base: &domain.AnalyzeRequest{OutputFormat: domain.OutputFormatText}}
	return NewAnalyzeUseCase(service, formatter, loader), service, formatter
}

func TestExecute(t *testing.T) {
	uc, service, formatter := newStubUseCase()

	err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.True(t, formatter.written)
	assert.Equal(t, domain.OutputFormatText, formatter.format)
	assert.Equal(t, []string{"src/"}, service.lastReq.Paths)
}

func TestExecuteValidation(t *testing.T) {
	uc, _, formatter := newStubUseCase()

	tests := []struct {
		name string
		req  domain.AnalyzeRequest
	}{
		{
			name: "no paths",
			req: domain.AnalyzeRequest{
				OutputFormat: domain.OutputFormatText,
				OutputWriter: &bytes.Buffer{},
			},
		},
		{
			name: "no writer",
			req: domain.AnalyzeRequest{
				Paths:        []string{"src/"},
				OutputFormat: domain.OutputFormatText,
			},
		},
		{
			name: "bad format",
			req: domain.AnalyzeRequest{
				Paths:        []string{"src/"},
				OutputFormat: "xml",
				OutputWriter: &bytes.Buffer{},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := uc.Execute(context.Background(), tt.req)
			require.Error(t, err)
			assert.False(t, formatter.written)
		})
	}
}

func TestExecutePropagatesAnalysisError(t *testing.T) {
	uc, service, formatter := newStubUseCase()
	service.err = domain.NewNoFilesFoundError("src/")

	err := uc.Execute(context.Background(), validRequest())
	require.Error(t, err)
	assert.True(t, domain.IsNoFilesFound(err))
	assert.False(t, formatter.written)
}

func TestExecuteDefaultsFormat(t *testing.T) {
	service := &stubService{report: &domain.ScoreReport{}}
	formatter := &stubFormatter{}
	loader := &stubConfigLoader{base: &domain.AnalyzeRequest{}}
	uc := NewAnalyzeUseCase(service, formatter, loader)

	req := validRequest()
	req.OutputFormat = ""

	require.NoError(t, uc.Execute(context.Background(), req))
	assert.Equal(t, domain.OutputFormatText, service.lastReq.OutputFormat)
}

func TestExecuteConfigLoadError(t *testing.T) {
	service := &stubService{report: &domain.ScoreReport{}}
	formatter := &stubFormatter{}
	loader := &stubConfigLoader{loadErr: errors.New("unreadable")}
	uc := NewAnalyzeUseCase(service, formatter, loader)

	req := validRequest()
	req.ConfigPath = "repolens.yaml"

	err := uc.Execute(context.Background(), req)
	require.Error(t, err)

	var de domain.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, domain.ErrCodeConfigError, de.Code)
}

func TestAnalyzeReturnsReport(t *testing.T) {
	uc, _, formatter := newStubUseCase()

	report, err := uc.Analyze(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", report.Version)
	assert.False(t, formatter.written)
}
