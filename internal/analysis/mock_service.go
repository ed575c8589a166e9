package analysis

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockService is a mock implementation of Service using testify/mock.
type MockService struct {
	mock.Mock
}

func (m *MockService) Upload(ctx context.Context, filename string, content []byte) (UploadResult, error) {
	args := m.Called(ctx, filename, content)
	return args.Get(0).(UploadResult), args.Error(1)
}

func (m *MockService) Summarize(ctx context.Context, docID, language string) (SummarizeResult, error) {
	args := m.Called(ctx, docID, language)
	return args.Get(0).(SummarizeResult), args.Error(1)
}

func (m *MockService) AnalyzeClauses(ctx context.Context, docID, language string) ([]ClauseAnalysis, error) {
	args := m.Called(ctx, docID, language)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ClauseAnalysis), args.Error(1)
}

func (m *MockService) AnswerQuestion(ctx context.Context, docID, question, language string) (string, error) {
	args := m.Called(ctx, docID, question, language)
	return args.String(0), args.Error(1)
}

func (m *MockService) CompareDocuments(ctx context.Context, docIDA, docIDB, language string) ([]ComparisonRecord, error) {
	args := m.Called(ctx, docIDA, docIDB, language)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ComparisonRecord), args.Error(1)
}

func (m *MockService) Status(ctx context.Context) (Status, error) {
	args := m.Called(ctx)
	return args.Get(0).(Status), args.Error(1)
}
