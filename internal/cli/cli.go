// Package cli provides the command line interface.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/temirov/grab/internal/clipboard"
	"github.com/temirov/grab/internal/config"
	"github.com/temirov/grab/internal/output"
	"github.com/temirov/grab/internal/picker"
	"github.com/temirov/grab/internal/scan"
	"github.com/temirov/grab/internal/tokenizer"
	"github.com/temirov/grab/internal/types"
	"github.com/temirov/grab/internal/utils"
)

const (
	allFlagName         = "all"
	exclusionFlagName   = "e"
	tokensFlagName      = "tokens"
	modelFlagName       = "model"
	noClipboardFlagName = "no-clipboard"
	configFlagName      = "config"
	versionFlagName     = "version"
	versionTemplate     = "grab version: %s\n"

	rootUse              = "grab [path ...]"
	rootShortDescription = "copy a selection of project files to the clipboard"
	rootLongDescription  = `grab walks a directory tree, lets you pick a subset of its text files, and
copies the selection (structure outline plus file contents) to the system
clipboard as one Markdown document.

If the first path argument is a directory it becomes the scan root and any
remaining arguments select paths inside it; otherwise the working directory is
scanned and every argument is a selection path. Without arguments grab opens
an interactive picker. --all selects every readable text file and takes
precedence over explicit paths.`
	rootUsageExample = `  # Pick files interactively under the current directory
  grab

  # Copy every text file of a project, excluding generated code
  grab ~/src/project --all -e gen

  # Copy two specific files
  grab cmd/grab/main.go internal/cli/cli.go`

	allFlagDescription         = "select every readable text file without prompting"
	exclusionFlagDescription   = "additional directory name to ignore"
	tokensFlagDescription      = "include token counts"
	modelFlagDescription       = "tokenizer model to use for token counting"
	noClipboardFlagDescription = "print the document to stdout instead of the clipboard"
	configFlagDescription      = "path to a configuration file"
	versionFlagDescription     = "display application version"

	copiedToClipboardMessage       = "Copied to clipboard."
	warningClipboardFormat         = "Warning: failed to copy to clipboard: %v\n"
	warningTokenCountFormat        = "Warning: failed to count tokens for %s: %v\n"
	workingDirectoryErrorFormat    = "unable to determine working directory: %w"
	errorPathsOutsideRootFormat    = "%d path argument(s) resolved outside the scan root"
	errorAbsolutePathFormat        = "abs failed for '%s': %w"
	errorTokenizerInitializeFormat = "initialize tokenizer: %w"
)

// Execute runs the grab application.
func Execute() error {
	rootCommand := createRootCommand()
	return rootCommand.Execute()
}

// runOptions stores the flag values of one invocation.
type runOptions struct {
	selectAll      bool
	exclusionNames []string
	tokensEnabled  bool
	tokenModel     string
	noClipboard    bool
	configPath     string
}

// createRootCommand builds the root Cobra command.
func createRootCommand() *cobra.Command {
	var showVersion bool
	var options runOptions

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		Example:      rootUsageExample,
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		PersistentPreRun: func(command *cobra.Command, arguments []string) {
			if showVersion {
				fmt.Printf(versionTemplate, utils.GetApplicationVersion())
				os.Exit(0)
			}
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			return runGrab(arguments, options, clipboard.NewSystemCopier())
		},
	}

	rootCommand.PersistentFlags().BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)
	rootCommand.Flags().BoolVar(&options.selectAll, allFlagName, false, allFlagDescription)
	rootCommand.Flags().StringArrayVarP(&options.exclusionNames, exclusionFlagName, exclusionFlagName, nil, exclusionFlagDescription)
	rootCommand.Flags().BoolVar(&options.tokensEnabled, tokensFlagName, false, tokensFlagDescription)
	rootCommand.Flags().StringVar(&options.tokenModel, modelFlagName, "", modelFlagDescription)
	rootCommand.Flags().BoolVar(&options.noClipboard, noClipboardFlagName, false, noClipboardFlagDescription)
	rootCommand.Flags().StringVar(&options.configPath, configFlagName, "", configFlagDescription)
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// runGrab executes one scan-select-serialize cycle.
func runGrab(arguments []string, options runOptions, copier clipboard.Copier) error {
	workingDirectory, workingDirectoryError := os.Getwd()
	if workingDirectoryError != nil {
		return fmt.Errorf(workingDirectoryErrorFormat, workingDirectoryError)
	}

	applicationConfiguration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: workingDirectory,
		ExplicitFilePath: options.configPath,
	})
	if configurationError != nil {
		return configurationError
	}

	rootDirectory, explicitPaths, targetError := resolveScanTarget(workingDirectory, arguments)
	if targetError != nil {
		return targetError
	}

	ignoreNames := applicationConfiguration.IgnoreNames()
	for _, exclusionName := range options.exclusionNames {
		if exclusionName != "" && !utils.ContainsString(ignoreNames, exclusionName) {
			ignoreNames = append(ignoreNames, exclusionName)
		}
	}

	warn := func(message string) {
		fmt.Fprintln(os.Stderr, message)
	}

	walker := scan.NewWalker(rootDirectory, ignoreNames, warn)
	allEntries, walkError := walker.Walk("")
	if walkError != nil {
		return walkError
	}

	tokenCounter, tokenModel, tokenizerError := setupTokenCounter(options, applicationConfiguration)
	if tokenizerError != nil {
		return tokenizerError
	}

	clipboardEnabled := applicationConfiguration.ClipboardEnabled() && !options.noClipboard

	selection, outsideRootCount, selectionError := resolveSelection(rootDirectory, ignoreNames, warn, allEntries, explicitPaths, options.selectAll, tokenCounter)
	if selectionError != nil {
		return selectionError
	}

	if tokenCounter != nil {
		countSelectionTokens(selection, tokenCounter)
	}

	document := output.RenderDocument(allEntries, selection)

	listingWriter := os.Stdout
	if !clipboardEnabled {
		listingWriter = os.Stderr
	}
	fmt.Fprint(listingWriter, output.RenderConsoleListing(allEntries, selection))
	fmt.Fprintln(listingWriter, output.FormatSummaryLine(selection, tokenModel))

	if clipboardEnabled {
		if copyError := copier.Copy(document); copyError != nil {
			fmt.Fprintf(os.Stderr, warningClipboardFormat, copyError)
		} else {
			fmt.Fprintln(os.Stdout, copiedToClipboardMessage)
		}
	} else {
		fmt.Fprint(os.Stdout, document)
	}

	if outsideRootCount > 0 {
		return fmt.Errorf(errorPathsOutsideRootFormat, outsideRootCount)
	}
	return nil
}

// resolveScanTarget determines the scan root and the explicit selection paths
// from the positional arguments. The first argument becomes the root when it
// names a directory; otherwise the working directory is scanned and every
// argument selects a path inside it.
func resolveScanTarget(workingDirectory string, arguments []string) (string, []string, error) {
	if len(arguments) == 0 {
		return workingDirectory, nil, nil
	}

	firstArgument := arguments[0]
	absoluteFirstArgument, absoluteError := filepath.Abs(firstArgument)
	if absoluteError != nil {
		return "", nil, fmt.Errorf(errorAbsolutePathFormat, firstArgument, absoluteError)
	}
	cleanFirstArgument := filepath.Clean(absoluteFirstArgument)

	firstInfo, statError := os.Stat(cleanFirstArgument)
	if statError == nil && firstInfo.IsDir() {
		return cleanFirstArgument, arguments[1:], nil
	}
	return workingDirectory, arguments, nil
}

// resolveSelection applies the three mutually exclusive selection modes:
// --all, explicit paths, or the interactive picker. It returns the selected
// entries in traversal order and the number of explicit paths that escaped
// the root.
func resolveSelection(
	rootDirectory string,
	ignoreNames []string,
	warn func(string),
	allEntries []types.Entry,
	explicitPaths []string,
	selectAll bool,
	tokenCounter tokenizer.Counter,
) ([]types.Entry, int, error) {
	if selectAll {
		return scan.SelectAllFiles(allEntries), 0, nil
	}

	if len(explicitPaths) > 0 {
		// Fresh walker: the scan walker's visited set would suppress
		// re-listing directories the full scan already covered.
		explicitWalker := scan.NewWalker(rootDirectory, ignoreNames, warn)
		explicitSelection, explicitError := scan.ResolveExplicitSelection(explicitWalker, explicitPaths)
		if explicitError != nil {
			return nil, 0, explicitError
		}
		return explicitSelection.Entries, len(explicitSelection.OutsideRootPaths), nil
	}

	nodes := scan.BuildNodes(allEntries)
	choices := picker.ProjectChoices(nodes)
	estimator := newTokenEstimator(allEntries, tokenCounter)
	chosenPaths, pickerError := picker.Run(choices, estimator)
	if pickerError != nil {
		return nil, 0, pickerError
	}
	return scan.FilterByPaths(allEntries, chosenPaths), 0, nil
}

// setupTokenCounter builds a token counter when counting is requested through
// flags or configuration. The flag model overrides the configured one.
func setupTokenCounter(options runOptions, applicationConfiguration config.ApplicationConfiguration) (tokenizer.Counter, string, error) {
	enabled := options.tokensEnabled
	if !enabled && applicationConfiguration.Tokens.Enabled != nil {
		enabled = *applicationConfiguration.Tokens.Enabled
	}
	if !enabled {
		return nil, "", nil
	}

	model := options.tokenModel
	if model == "" {
		model = applicationConfiguration.Tokens.Model
	}
	counter, resolvedModel, counterError := tokenizer.NewCounter(tokenizer.Config{Model: model})
	if counterError != nil {
		return nil, "", fmt.Errorf(errorTokenizerInitializeFormat, counterError)
	}
	return counter, resolvedModel, nil
}

// newTokenEstimator serves picker token queries from the already-scanned
// content so the picker performs no additional file reads.
func newTokenEstimator(allEntries []types.Entry, tokenCounter tokenizer.Counter) picker.TokenEstimator {
	if tokenCounter == nil {
		return nil
	}
	contentByPath := make(map[string]string, len(allEntries))
	for _, entry := range allEntries {
		if entry.Kind == types.EntryKindFile {
			contentByPath[entry.Path] = entry.Content
		}
	}
	return func(path string) (int, error) {
		return tokenCounter.CountString(contentByPath[path])
	}
}

// countSelectionTokens annotates selected file entries with their token count.
func countSelectionTokens(selection []types.Entry, tokenCounter tokenizer.Counter) {
	for index := range selection {
		if selection[index].Kind != types.EntryKindFile {
			continue
		}
		tokenCount, countError := tokenCounter.CountString(selection[index].Content)
		if countError != nil {
			fmt.Fprintf(os.Stderr, warningTokenCountFormat, selection[index].Path, countError)
			continue
		}
		selection[index].Tokens = tokenCount
	}
}
