package summarize

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Tython3/AutoCodebaseIndex/internal/chunker"
	"github.com/Tython3/AutoCodebaseIndex/internal/utils"
)

const (
	// DefaultDirectSummaryThreshold is the character count below which a file
	// is summarized with a single request. It doubles as the chunk length cap
	// for larger files.
	DefaultDirectSummaryThreshold = 10000

	summarySystemInstruction = "You are a code summarization assistant."
	summaryTemperature       = 0.5
	summaryMaxTokens         = 150
	synthesisMaxTokens       = 200

	directPromptFormat    = "Please provide a concise summary of the following code:\n\n%s"
	chunkPromptFormat     = "Please provide a brief summary of the following code chunk (part %d):\n\n%s"
	synthesisPromptHeader = "Please synthesize the following chunk summaries into one overall summary for the entire file:\n\n"

	readErrorFormat = "Error reading file: %v"
)

// errBinaryContent reports files whose bytes do not decode as text.
var errBinaryContent = errors.New("binary content cannot be decoded as text")

// Service summarizes individual files through a Completer.
type Service struct {
	completer              Completer
	directSummaryThreshold int
}

// NewService constructs a file summarization service. A non-positive threshold
// selects DefaultDirectSummaryThreshold.
func NewService(completer Completer, directSummaryThreshold int) *Service {
	if directSummaryThreshold <= 0 {
		directSummaryThreshold = DefaultDirectSummaryThreshold
	}
	return &Service{
		completer:              completer,
		directSummaryThreshold: directSummaryThreshold,
	}
}

// SummarizeFile reads the file at filePath and returns its summary text. Read
// and decode failures are reported inline in the returned text so traversal can
// continue; collaborator failures are returned as errors and abort the build.
func (service *Service) SummarizeFile(requestContext context.Context, filePath string) (string, error) {
	fileBytes, readError := os.ReadFile(filePath)
	if readError != nil {
		return fmt.Sprintf(readErrorFormat, readError), nil
	}
	if utils.IsBinary(fileBytes) {
		return fmt.Sprintf(readErrorFormat, errBinaryContent), nil
	}
	fileContent := string(fileBytes)

	if len(fileContent) <= service.directSummaryThreshold {
		return service.completer.Complete(requestContext, CompletionRequest{
			Prompt:            fmt.Sprintf(directPromptFormat, fileContent),
			SystemInstruction: summarySystemInstruction,
			Temperature:       summaryTemperature,
			MaxTokens:         summaryMaxTokens,
		})
	}

	fileExtension := filepath.Ext(filePath)
	contentChunks := chunker.Split(fileContent, fileExtension, service.directSummaryThreshold)
	chunkSummaries := make([]string, 0, len(contentChunks))
	for chunkIndex, chunkContent := range contentChunks {
		chunkSummary, chunkCompletionError := service.completer.Complete(requestContext, CompletionRequest{
			Prompt:            fmt.Sprintf(chunkPromptFormat, chunkIndex+1, chunkContent),
			SystemInstruction: summarySystemInstruction,
			Temperature:       summaryTemperature,
			MaxTokens:         summaryMaxTokens,
		})
		if chunkCompletionError != nil {
			return "", chunkCompletionError
		}
		chunkSummaries = append(chunkSummaries, chunkSummary)
	}

	return service.completer.Complete(requestContext, CompletionRequest{
		Prompt:            synthesisPromptHeader + strings.Join(chunkSummaries, "\n"),
		SystemInstruction: summarySystemInstruction,
		Temperature:       summaryTemperature,
		MaxTokens:         synthesisMaxTokens,
	})
}
