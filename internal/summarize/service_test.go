package summarize

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// recordingCompleter captures every request and answers with a numbered summary.
type recordingCompleter struct {
	requests []CompletionRequest
	failWith error
}

func (completer *recordingCompleter) Complete(requestContext context.Context, request CompletionRequest) (string, error) {
	completer.requests = append(completer.requests, request)
	if completer.failWith != nil {
		return "", completer.failWith
	}
	return fmt.Sprintf("summary-%d", len(completer.requests)), nil
}

// writeTestFile creates a file with the specified content, failing the test on error.
func writeTestFile(testingHandle *testing.T, filePath string, content []byte) {
	testingHandle.Helper()
	if writeError := os.WriteFile(filePath, content, 0o644); writeError != nil {
		testingHandle.Fatalf("failed to write %s: %v", filePath, writeError)
	}
}

// TestSummarizeFileBelowThresholdSingleRequest verifies that a small file is
// summarized with exactly one request whose result is returned verbatim.
func TestSummarizeFileBelowThresholdSingleRequest(testingHandle *testing.T) {
	temporaryDirectory := testingHandle.TempDir()
	filePath := filepath.Join(temporaryDirectory, "a.py")
	fileContent := strings.Repeat("a", 800)
	writeTestFile(testingHandle, filePath, []byte(fileContent))

	completer := &recordingCompleter{}
	service := NewService(completer, 0)

	summaryText, summaryError := service.SummarizeFile(context.Background(), filePath)
	if summaryError != nil {
		testingHandle.Fatalf("SummarizeFile failed: %v", summaryError)
	}
	if summaryText != "summary-1" {
		testingHandle.Fatalf("expected the single completion result verbatim, got %q", summaryText)
	}
	if len(completer.requests) != 1 {
		testingHandle.Fatalf("expected exactly 1 completion request, got %d", len(completer.requests))
	}
	request := completer.requests[0]
	if !strings.Contains(request.Prompt, fileContent) {
		testingHandle.Fatalf("expected the prompt to contain the file content")
	}
	if request.SystemInstruction != summarySystemInstruction {
		testingHandle.Fatalf("unexpected system instruction %q", request.SystemInstruction)
	}
	if request.Temperature != summaryTemperature {
		testingHandle.Fatalf("expected temperature %v, got %v", summaryTemperature, request.Temperature)
	}
	if request.MaxTokens != summaryMaxTokens {
		testingHandle.Fatalf("expected max tokens %d, got %d", summaryMaxTokens, request.MaxTokens)
	}
}

// TestSummarizeFileLargeFileChunkAndSynthesisRequests verifies the N chunk
// requests plus one synthesis request for oversized files, with the synthesis
// prompt carrying every chunk summary in order.
func TestSummarizeFileLargeFileChunkAndSynthesisRequests(testingHandle *testing.T) {
	temporaryDirectory := testingHandle.TempDir()
	filePath := filepath.Join(temporaryDirectory, "b.txt")
	writeTestFile(testingHandle, filePath, []byte(strings.Repeat("x", 50000)))

	completer := &recordingCompleter{}
	service := NewService(completer, 0)

	summaryText, summaryError := service.SummarizeFile(context.Background(), filePath)
	if summaryError != nil {
		testingHandle.Fatalf("SummarizeFile failed: %v", summaryError)
	}

	expectedChunkCount := 5
	if len(completer.requests) != expectedChunkCount+1 {
		testingHandle.Fatalf("expected %d requests, got %d", expectedChunkCount+1, len(completer.requests))
	}
	for chunkIndex := 0; chunkIndex < expectedChunkCount; chunkIndex++ {
		expectedLabel := fmt.Sprintf("(part %d)", chunkIndex+1)
		if !strings.Contains(completer.requests[chunkIndex].Prompt, expectedLabel) {
			testingHandle.Fatalf("chunk request %d missing label %q", chunkIndex, expectedLabel)
		}
		if completer.requests[chunkIndex].MaxTokens != summaryMaxTokens {
			testingHandle.Fatalf("chunk request %d: expected max tokens %d, got %d", chunkIndex, summaryMaxTokens, completer.requests[chunkIndex].MaxTokens)
		}
	}

	synthesisRequest := completer.requests[expectedChunkCount]
	if synthesisRequest.MaxTokens != synthesisMaxTokens {
		testingHandle.Fatalf("expected synthesis max tokens %d, got %d", synthesisMaxTokens, synthesisRequest.MaxTokens)
	}
	expectedJoinedSummaries := "summary-1\nsummary-2\nsummary-3\nsummary-4\nsummary-5"
	if !strings.Contains(synthesisRequest.Prompt, expectedJoinedSummaries) {
		testingHandle.Fatalf("synthesis prompt missing ordered chunk summaries: %q", synthesisRequest.Prompt)
	}
	if summaryText != fmt.Sprintf("summary-%d", expectedChunkCount+1) {
		testingHandle.Fatalf("expected the synthesis result, got %q", summaryText)
	}
}

// TestSummarizeFileReadErrorReportedInline verifies that an unreadable file
// produces an inline error string without touching the collaborator.
func TestSummarizeFileReadErrorReportedInline(testingHandle *testing.T) {
	completer := &recordingCompleter{}
	service := NewService(completer, 0)

	summaryText, summaryError := service.SummarizeFile(context.Background(), filepath.Join(testingHandle.TempDir(), "missing.txt"))
	if summaryError != nil {
		testingHandle.Fatalf("expected inline reporting, got error: %v", summaryError)
	}
	if !strings.HasPrefix(summaryText, "Error reading file:") {
		testingHandle.Fatalf("expected an inline read error, got %q", summaryText)
	}
	if len(completer.requests) != 0 {
		testingHandle.Fatalf("expected no completion requests, got %d", len(completer.requests))
	}
}

// TestSummarizeFileBinaryContentReportedInline verifies that binary files are
// reported inline instead of being sent to the collaborator.
func TestSummarizeFileBinaryContentReportedInline(testingHandle *testing.T) {
	temporaryDirectory := testingHandle.TempDir()
	filePath := filepath.Join(temporaryDirectory, "data.bin")
	writeTestFile(testingHandle, filePath, []byte{0x00, 0x01, 0x02, 0xFF})

	completer := &recordingCompleter{}
	service := NewService(completer, 0)

	summaryText, summaryError := service.SummarizeFile(context.Background(), filePath)
	if summaryError != nil {
		testingHandle.Fatalf("expected inline reporting, got error: %v", summaryError)
	}
	if !strings.HasPrefix(summaryText, "Error reading file:") {
		testingHandle.Fatalf("expected an inline decode error, got %q", summaryText)
	}
	if len(completer.requests) != 0 {
		testingHandle.Fatalf("expected no completion requests, got %d", len(completer.requests))
	}
}

// TestSummarizeFileCompleterFailurePropagates verifies that collaborator
// failures surface as errors instead of inline text.
func TestSummarizeFileCompleterFailurePropagates(testingHandle *testing.T) {
	temporaryDirectory := testingHandle.TempDir()
	filePath := filepath.Join(temporaryDirectory, "c.go")
	writeTestFile(testingHandle, filePath, []byte("package sample\n"))

	collaboratorFailure := errors.New("model unavailable")
	service := NewService(&recordingCompleter{failWith: collaboratorFailure}, 0)

	_, summaryError := service.SummarizeFile(context.Background(), filePath)
	if !errors.Is(summaryError, collaboratorFailure) {
		testingHandle.Fatalf("expected the collaborator failure, got %v", summaryError)
	}
}
