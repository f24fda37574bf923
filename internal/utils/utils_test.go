package utils

import (
	"os"
	"path/filepath"
	"testing"
)

// readDirectoryEntry creates the named entry under a temporary directory and
// returns its os.DirEntry.
func readDirectoryEntry(testingHandle *testing.T, entryName string, isDirectory bool) os.DirEntry {
	testingHandle.Helper()
	parentDirectory := testingHandle.TempDir()
	entryPath := filepath.Join(parentDirectory, entryName)
	if isDirectory {
		if makeDirectoryError := os.Mkdir(entryPath, 0o755); makeDirectoryError != nil {
			testingHandle.Fatalf("failed to create directory %s: %v", entryPath, makeDirectoryError)
		}
	} else {
		if writeError := os.WriteFile(entryPath, []byte("content"), 0o644); writeError != nil {
			testingHandle.Fatalf("failed to create file %s: %v", entryPath, writeError)
		}
	}
	directoryEntries, readError := os.ReadDir(parentDirectory)
	if readError != nil || len(directoryEntries) != 1 {
		testingHandle.Fatalf("failed to read back entry %s: %v", entryName, readError)
	}
	return directoryEntries[0]
}

// TestDeduplicatePatterns verifies order-preserving duplicate removal.
func TestDeduplicatePatterns(testingHandle *testing.T) {
	deduplicated := DeduplicatePatterns([]string{"*.log", "bin/", "*.log", "bin/", "*.tmp"})
	expected := []string{"*.log", "bin/", "*.tmp"}
	if len(deduplicated) != len(expected) {
		testingHandle.Fatalf("expected %v, got %v", expected, deduplicated)
	}
	for patternIndex, expectedPattern := range expected {
		if deduplicated[patternIndex] != expectedPattern {
			testingHandle.Fatalf("expected %v, got %v", expected, deduplicated)
		}
	}
}

// TestContainsString verifies membership checks.
func TestContainsString(testingHandle *testing.T) {
	values := []string{"alpha", "beta"}
	if !ContainsString(values, "alpha") {
		testingHandle.Fatalf("expected alpha to be found")
	}
	if ContainsString(values, "gamma") {
		testingHandle.Fatalf("expected gamma to be absent")
	}
}

// TestShouldIgnore verifies pattern matching against names, directory-only
// patterns, and service file handling.
func TestShouldIgnore(testingHandle *testing.T) {
	testCases := []struct {
		name           string
		entryName      string
		isDirectory    bool
		ignorePatterns []string
		expected       bool
	}{
		{name: "glob match on file", entryName: "debug.log", ignorePatterns: []string{"*.log"}, expected: true},
		{name: "no match", entryName: "main.go", ignorePatterns: []string{"*.log"}, expected: false},
		{name: "directory pattern matches directory", entryName: "vendor", isDirectory: true, ignorePatterns: []string{"vendor/"}, expected: true},
		{name: "directory pattern ignores file", entryName: "vendor", ignorePatterns: []string{"vendor/"}, expected: false},
		{name: "ignore service file", entryName: ".gitignore", ignorePatterns: nil, expected: true},
		{name: "ignore file itself", entryName: ".ignore", ignorePatterns: nil, expected: true},
	}

	for _, testCase := range testCases {
		testingHandle.Run(testCase.name, func(subtestHandle *testing.T) {
			directoryEntry := readDirectoryEntry(subtestHandle, testCase.entryName, testCase.isDirectory)
			if actual := ShouldIgnore(directoryEntry, testCase.ignorePatterns); actual != testCase.expected {
				subtestHandle.Fatalf("entry %q with patterns %v: expected %v, got %v", testCase.entryName, testCase.ignorePatterns, testCase.expected, actual)
			}
		})
	}
}

// TestIsBinary verifies text and binary classification.
func TestIsBinary(testingHandle *testing.T) {
	if IsBinary(nil) {
		testingHandle.Fatalf("expected empty content to be treated as text")
	}
	if IsBinary([]byte("plain text with unicode: héllo")) {
		testingHandle.Fatalf("expected valid text to be treated as text")
	}
	if !IsBinary([]byte{0x00, 0x01, 0x02}) {
		testingHandle.Fatalf("expected content with NUL bytes to be binary")
	}
	if !IsBinary([]byte{0xff, 0xfe, 0xfd}) {
		testingHandle.Fatalf("expected invalid UTF-8 to be binary")
	}
}

// TestIsFileBinary verifies on-disk binary detection.
func TestIsFileBinary(testingHandle *testing.T) {
	directoryPath := testingHandle.TempDir()

	textPath := filepath.Join(directoryPath, "text.txt")
	if writeError := os.WriteFile(textPath, []byte("readable content\n"), 0o644); writeError != nil {
		testingHandle.Fatalf("failed to write text file: %v", writeError)
	}
	if IsFileBinary(textPath) {
		testingHandle.Fatalf("expected the text file to be classified as text")
	}

	binaryPath := filepath.Join(directoryPath, "blob.bin")
	if writeError := os.WriteFile(binaryPath, []byte{0x00, 0xff, 0x10}, 0o644); writeError != nil {
		testingHandle.Fatalf("failed to write binary file: %v", writeError)
	}
	if !IsFileBinary(binaryPath) {
		testingHandle.Fatalf("expected the binary file to be classified as binary")
	}
}
