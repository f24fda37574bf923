// Package cli provides the command line interface.
package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Tython3/AutoCodebaseIndex/internal/config"
	"github.com/Tython3/AutoCodebaseIndex/internal/indexer"
	"github.com/Tython3/AutoCodebaseIndex/internal/services/clipboard"
	"github.com/Tython3/AutoCodebaseIndex/internal/summarize"
	"github.com/Tython3/AutoCodebaseIndex/internal/tokenizer"
	"github.com/Tython3/AutoCodebaseIndex/internal/utils"
)

const (
	outputFlagName          = "output"
	outputFlagShorthand     = "o"
	copyFlagName            = "copy"
	exclusionFlagName       = "e"
	noGitignoreFlagName     = "no-gitignore"
	noIgnoreFlagName        = "no-ignore"
	includeGitFlagName      = "git"
	tokensFlagName          = "tokens"
	modelFlagName           = "model"
	summarizerURLFlagName   = "summarizer-url"
	summarizerModelFlagName = "summarizer-model"
	versionFlagName         = "version"
	globalFlagName          = "global"
	forceFlagName           = "force"

	versionTemplate      = "libindex version: %s\n"
	rootUse              = "libindex <directory>"
	rootShortDescription = "libindex builds a hierarchical summary index of a codebase"
	rootLongDescription  = `libindex walks a directory tree, summarizes every file through a
text-generation model, and writes a nested index describing the codebase.
Large files are split into bounded chunks whose summaries are synthesized into
one overall file summary. Use --output to choose the destination file and
--version to print the application version.`
	rootUsageExample = `  # Index the current project into library_index.txt
  libindex .

  # Index a repository into a custom file and copy the result
  libindex ~/src/myproject --output myproject_index.txt --copy`

	configUse                    = "config"
	configShortDescription       = "manage libindex configuration"
	configInitUse                = "init"
	configInitShortDescription   = "write a default configuration file"
	globalFlagDescription        = "write the global configuration instead of a local one"
	forceFlagDescription         = "overwrite an existing configuration file"
	configWrittenMessageFormat   = "Configuration written to '%s'.\n"
	outputFlagDescription        = "destination file for the generated index"
	copyFlagDescription          = "copy the generated index to the clipboard"
	exclusionFlagDescription     = "exclude path pattern"
	disableGitignoreDescription  = "do not use .gitignore"
	disableIgnoreDescription     = "do not use .ignore"
	includeGitFlagDescription    = "include git directory"
	tokensFlagDescription        = "report the token count of the generated index"
	modelFlagDescription         = "tokenizer model to use for token counting"
	summarizerURLDescription     = "base URL of the OpenAI-compatible summarization endpoint"
	summarizerModelDescription   = "model used for summarization requests"
	versionFlagDescription       = "display application version"
	defaultOutputFileName        = "library_index.txt"
	defaultTokenizerModelName    = "gpt-4o"
	invalidRootMessageFormat     = "Error: the provided root directory '%s' is not a valid directory.\n"
	successMessageFormat         = "Library index successfully written to '%s'.\n"
	tokenCountMessageFormat      = "Index token count (%s): %d\n"
	clipboardCopiedMessage       = "Index copied to clipboard.\n"
	clipboardWarningFormat       = "Warning: failed to copy index to clipboard: %v\n"
	processingErrorFormat        = "an error occurred during processing: %w"
	workingDirectoryErrorFormat  = "unable to determine working directory: %w"
	outputPermissions            = 0o644
)

// newCompleter constructs the summarization collaborator. Tests replace it
// with a deterministic fake.
var newCompleter = func(configuration summarize.ClientConfig) (summarize.Completer, error) {
	return summarize.NewClient(configuration)
}

// Execute runs the libindex application.
func Execute() error {
	rootCommand := createRootCommand()
	return rootCommand.Execute()
}

// indexOptions stores flag values for the index invocation.
type indexOptions struct {
	outputPath        string
	copyToClipboard   bool
	exclusionPatterns []string
	disableGitignore  bool
	disableIgnoreFile bool
	includeGit        bool
	tokensEnabled     bool
	tokenizerModel    string
	summarizerURL     string
	summarizerModel   string
}

// createRootCommand builds the root Cobra command.
func createRootCommand() *cobra.Command {
	var showVersion bool
	var options indexOptions

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		Example:      rootUsageExample,
		SilenceUsage: true,
		Args:         cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			if len(arguments) == 0 {
				return command.Help()
			}
			return runIndex(command, arguments[0], options)
		},
		PersistentPreRun: func(command *cobra.Command, arguments []string) {
			if showVersion {
				fmt.Printf(versionTemplate, utils.GetApplicationVersion())
				os.Exit(0)
			}
		},
	}

	rootCommand.PersistentFlags().BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)
	rootCommand.Flags().StringVarP(&options.outputPath, outputFlagName, outputFlagShorthand, "", outputFlagDescription)
	rootCommand.Flags().StringArrayVarP(&options.exclusionPatterns, exclusionFlagName, exclusionFlagName, nil, exclusionFlagDescription)
	rootCommand.Flags().BoolVar(&options.disableGitignore, noGitignoreFlagName, false, disableGitignoreDescription)
	rootCommand.Flags().BoolVar(&options.disableIgnoreFile, noIgnoreFlagName, false, disableIgnoreDescription)
	rootCommand.Flags().BoolVar(&options.includeGit, includeGitFlagName, false, includeGitFlagDescription)
	rootCommand.Flags().BoolVar(&options.tokensEnabled, tokensFlagName, false, tokensFlagDescription)
	rootCommand.Flags().StringVar(&options.tokenizerModel, modelFlagName, "", modelFlagDescription)
	rootCommand.Flags().StringVar(&options.summarizerURL, summarizerURLFlagName, "", summarizerURLDescription)
	rootCommand.Flags().StringVar(&options.summarizerModel, summarizerModelFlagName, "", summarizerModelDescription)
	registerCopyFlag(rootCommand.Flags(), &options.copyToClipboard)

	rootCommand.AddCommand(createConfigCommand())
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// createConfigCommand returns the config subcommand with its init action.
func createConfigCommand() *cobra.Command {
	configCommand := &cobra.Command{
		Use:   configUse,
		Short: configShortDescription,
	}

	var useGlobalTarget bool
	var forceOverwrite bool
	initCommand := &cobra.Command{
		Use:   configInitUse,
		Short: configInitShortDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			target := config.InitTargetLocal
			if useGlobalTarget {
				target = config.InitTargetGlobal
			}
			destinationPath, initializationError := config.InitializeConfiguration(config.InitOptions{
				Target: target,
				Force:  forceOverwrite,
			})
			if initializationError != nil {
				return initializationError
			}
			fmt.Printf(configWrittenMessageFormat, destinationPath)
			return nil
		},
	}
	initCommand.Flags().BoolVar(&useGlobalTarget, globalFlagName, false, globalFlagDescription)
	initCommand.Flags().BoolVar(&forceOverwrite, forceFlagName, false, forceFlagDescription)

	configCommand.AddCommand(initCommand)
	return configCommand
}

// runIndex validates the root directory, builds the index document, writes it
// to the output file, and reports optional token and clipboard results. Root
// validation failures are reported on standard output without an error so the
// process exits normally, matching the published CLI contract.
func runIndex(command *cobra.Command, rootDirectory string, options indexOptions) error {
	workingDirectory, workingDirectoryError := os.Getwd()
	if workingDirectoryError != nil {
		return fmt.Errorf(workingDirectoryErrorFormat, workingDirectoryError)
	}

	applicationConfiguration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: workingDirectory,
	})
	if configurationError != nil {
		return configurationError
	}
	effective := resolveEffectiveOptions(command, options, applicationConfiguration.Index)

	rootInformation, rootStatError := os.Stat(rootDirectory)
	if rootStatError != nil || !rootInformation.IsDir() {
		fmt.Printf(invalidRootMessageFormat, rootDirectory)
		return nil
	}

	clientConfiguration := summarize.ClientConfigFromEnvironment()
	if effective.summarizerURL != "" {
		clientConfiguration.BaseURL = effective.summarizerURL
	}
	if effective.summarizerModel != "" {
		clientConfiguration.Model = effective.summarizerModel
	}
	completer, completerError := newCompleter(clientConfiguration)
	if completerError != nil {
		return completerError
	}

	summarizerService := summarize.NewService(completer, effective.directSummaryThreshold)
	walker := indexer.NewWalker(summarizerService, indexer.Options{
		ExclusionPatterns: effective.exclusionPatterns,
		UseGitignore:      !effective.disableGitignore,
		UseIgnoreFile:     !effective.disableIgnoreFile,
		IncludeGit:        effective.includeGit,
	})
	builder := indexer.NewBuilder(walker)

	indexDocument, buildError := builder.Build(context.Background(), rootDirectory)
	if buildError != nil {
		return fmt.Errorf(processingErrorFormat, buildError)
	}
	if writeError := os.WriteFile(effective.outputPath, []byte(indexDocument), outputPermissions); writeError != nil {
		return fmt.Errorf(processingErrorFormat, writeError)
	}
	fmt.Printf(successMessageFormat, effective.outputPath)

	if effective.tokensEnabled {
		reportTokenCount(effective.tokenizerModel, indexDocument)
	}
	if effective.copyToClipboard {
		copyIndexToClipboard(indexDocument)
	}
	return nil
}

// effectiveOptions is the flag view after configuration defaults are applied.
type effectiveOptions struct {
	outputPath             string
	copyToClipboard        bool
	exclusionPatterns      []string
	disableGitignore       bool
	disableIgnoreFile      bool
	includeGit             bool
	tokensEnabled          bool
	tokenizerModel         string
	summarizerURL          string
	summarizerModel        string
	directSummaryThreshold int
}

// resolveEffectiveOptions overlays explicitly set flags onto configuration
// file defaults. Flags win whenever the user changed them.
func resolveEffectiveOptions(command *cobra.Command, options indexOptions, configuration config.IndexConfiguration) effectiveOptions {
	effective := effectiveOptions{
		outputPath:        defaultOutputFileName,
		tokenizerModel:    defaultTokenizerModelName,
		exclusionPatterns: configuration.Paths.Exclude,
		summarizerURL:     configuration.Summarizer.BaseURL,
		summarizerModel:   configuration.Summarizer.Model,
	}

	if configuration.Output != "" {
		effective.outputPath = configuration.Output
	}
	if configuration.Clipboard != nil {
		effective.copyToClipboard = *configuration.Clipboard
	}
	if configuration.Tokens.Enabled != nil {
		effective.tokensEnabled = *configuration.Tokens.Enabled
	}
	if configuration.Tokens.Model != "" {
		effective.tokenizerModel = configuration.Tokens.Model
	}
	if configuration.Paths.UseGitignore != nil {
		effective.disableGitignore = !*configuration.Paths.UseGitignore
	}
	if configuration.Paths.UseIgnoreFile != nil {
		effective.disableIgnoreFile = !*configuration.Paths.UseIgnoreFile
	}
	if configuration.Paths.IncludeGit != nil {
		effective.includeGit = *configuration.Paths.IncludeGit
	}
	if configuration.Summarizer.DirectSummaryThreshold != nil {
		effective.directSummaryThreshold = *configuration.Summarizer.DirectSummaryThreshold
	}

	flags := command.Flags()
	if flags.Changed(outputFlagName) {
		effective.outputPath = options.outputPath
	}
	if flags.Changed(copyFlagName) {
		effective.copyToClipboard = options.copyToClipboard
	}
	if flags.Changed(exclusionFlagName) {
		effective.exclusionPatterns = options.exclusionPatterns
	}
	if flags.Changed(noGitignoreFlagName) {
		effective.disableGitignore = options.disableGitignore
	}
	if flags.Changed(noIgnoreFlagName) {
		effective.disableIgnoreFile = options.disableIgnoreFile
	}
	if flags.Changed(includeGitFlagName) {
		effective.includeGit = options.includeGit
	}
	if flags.Changed(tokensFlagName) {
		effective.tokensEnabled = options.tokensEnabled
	}
	if flags.Changed(modelFlagName) {
		effective.tokenizerModel = options.tokenizerModel
	}
	if flags.Changed(summarizerURLFlagName) {
		effective.summarizerURL = options.summarizerURL
	}
	if flags.Changed(summarizerModelFlagName) {
		effective.summarizerModel = options.summarizerModel
	}
	if strings.TrimSpace(effective.outputPath) == "" {
		effective.outputPath = defaultOutputFileName
	}
	return effective
}

// reportTokenCount prints the token count of the generated document; counting
// problems are warnings on standard error and never fail the build.
func reportTokenCount(tokenizerModel string, indexDocument string) {
	counter, resolvedModel, counterError := tokenizer.NewCounter(tokenizer.Config{Model: tokenizerModel})
	if counterError != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize tokenizer: %v\n", counterError)
		return
	}
	countResult, countError := tokenizer.CountBytes(counter, []byte(indexDocument))
	if countError != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to count tokens: %v\n", countError)
		return
	}
	if countResult.Counted {
		fmt.Printf(tokenCountMessageFormat, resolvedModel, countResult.Tokens)
	}
}

func copyIndexToClipboard(indexDocument string) {
	copier := clipboard.NewService()
	if copyError := copier.Copy(indexDocument); copyError != nil {
		fmt.Fprintf(os.Stderr, clipboardWarningFormat, copyError)
		return
	}
	fmt.Print(clipboardCopiedMessage)
}
