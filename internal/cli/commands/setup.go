package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Xala-Technologies/Xaheen-platform-sub006/internal/cli/config"
	"github.com/Xala-Technologies/Xaheen-platform-sub006/internal/cli/ui"
	"github.com/Xala-Technologies/Xaheen-platform-sub006/internal/component"
	"github.com/Xala-Technologies/Xaheen-platform-sub006/internal/engine"
	"github.com/Xala-Technologies/Xaheen-platform-sub006/internal/store"
)

// engineFlags holds the flag values shared by the resolve, preview and
// check commands. Flag values override xaheen.yml, which overrides the
// built-in defaults.
type engineFlags struct {
	registries  []string
	strategy    string
	maxDepth    int
	concurrency int
	framework   string
	platform    string
	context     string
	environment string
	region      string
	overrides   map[string]string
	verbose     bool
	noColor     bool
}

func (f *engineFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVarP(&f.registries, "registry", "r", nil, "Registry file(s) to load (default: from xaheen.yml)")
	cmd.Flags().StringVar(&f.strategy, "strategy", "", "Dependency failure strategy: strict, lenient or best-effort")
	cmd.Flags().IntVar(&f.maxDepth, "max-depth", 0, "Maximum dependency expansion depth")
	cmd.Flags().IntVar(&f.concurrency, "concurrency", 0, "Maximum parallel producer invocations per batch")
	cmd.Flags().StringVar(&f.framework, "framework", "", "Target framework, e.g. nextjs")
	cmd.Flags().StringVar(&f.platform, "platform", "", "Target platform, e.g. web")
	cmd.Flags().StringVar(&f.context, "context", "", "Runtime context, e.g. dashboard")
	cmd.Flags().StringVar(&f.environment, "env", "", "Target environment, e.g. production")
	cmd.Flags().StringVar(&f.region, "region", "", "Target region, e.g. norway")
	cmd.Flags().StringToStringVar(&f.overrides, "set", nil, "Extra context fields as name=value pairs")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "Show detailed resolution output")
	cmd.Flags().BoolVar(&f.noColor, "no-color", false, "Disable colored output")
}

// session is everything a command needs to run the engine: the loaded
// store, the merged resolution context and the engine options.
type session struct {
	cfg    *config.Config
	store  *store.MemoryStore
	rctx   component.ResolutionContext
	opts   []engine.Option
	logger *zap.Logger
}

func (f *engineFlags) session() (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	registries := f.registries
	if len(registries) == 0 {
		registries = cfg.Registries
	}
	st, err := store.LoadFiles(registries...)
	if err != nil {
		return nil, err
	}

	logger := zap.NewNop()
	if f.verbose {
		logger, err = zap.NewDevelopment()
		if err != nil {
			return nil, fmt.Errorf("failed to create logger: %w", err)
		}
	}

	strategyName := f.strategy
	if strategyName == "" {
		strategyName = cfg.Engine.Strategy
	}
	strategy, err := engine.ParseStrategy(strategyName)
	if err != nil {
		return nil, err
	}

	maxDepth := f.maxDepth
	if maxDepth == 0 {
		maxDepth = cfg.Engine.MaxDepth
	}
	concurrency := f.concurrency
	if concurrency == 0 {
		concurrency = cfg.Engine.Concurrency
	}

	s := &session{
		cfg:    cfg,
		store:  st,
		rctx:   f.resolutionContext(cfg),
		logger: logger,
		opts: []engine.Option{
			engine.WithLogger(logger),
			engine.WithStrategy(strategy),
			engine.WithMaxDepth(maxDepth),
			engine.WithConcurrency(concurrency),
		},
	}
	return s, nil
}

func (f *engineFlags) resolutionContext(cfg *config.Config) component.ResolutionContext {
	rctx := component.ResolutionContext{
		Framework:   cfg.Context.Framework,
		Platform:    cfg.Context.Platform,
		Context:     cfg.Context.Context,
		Environment: cfg.Context.Environment,
		Region:      cfg.Context.Region,
		Overrides:   make(map[string]string),
	}
	for k, v := range cfg.Context.Overrides {
		rctx.Overrides[k] = v
	}

	if f.framework != "" {
		rctx.Framework = f.framework
	}
	if f.platform != "" {
		rctx.Platform = f.platform
	}
	if f.context != "" {
		rctx.Context = f.context
	}
	if f.environment != "" {
		rctx.Environment = f.environment
	}
	if f.region != "" {
		rctx.Region = f.region
	}
	for k, v := range f.overrides {
		rctx.Overrides[k] = v
	}
	return rctx
}

// parseSelection parses component keys from command arguments, suggesting
// close matches from the store for unknown keys.
func parseSelection(args []string, st *store.MemoryStore, noColor bool) ([]component.Key, error) {
	known := registeredKeys(st)
	var keys []component.Key
	for _, arg := range args {
		key, err := component.ParseKey(arg)
		if err != nil {
			return nil, err
		}
		if _, getErr := st.Get(key, ""); getErr != nil {
			return nil, fmt.Errorf("%s", ui.ComponentNotFoundError(key.String(), known, noColor))
		}
		keys = append(keys, key)
	}
	return keys, nil
}

// promptSelection asks the user to pick components interactively when none
// were given on the command line.
func promptSelection(st *store.MemoryStore) ([]component.Key, error) {
	descriptors := st.List(store.Filter{})
	seen := make(map[component.Key]bool)
	var options []string
	var keys []component.Key
	for _, d := range descriptors {
		if seen[d.Key] {
			continue
		}
		seen[d.Key] = true
		label := d.Key.String()
		if d.Description != "" {
			label = fmt.Sprintf("%s - %s", d.Key, d.Description)
		}
		options = append(options, label)
		keys = append(keys, d.Key)
	}
	if len(options) == 0 {
		return nil, fmt.Errorf("the registry contains no components")
	}

	var selected []int
	prompt := &survey.MultiSelect{
		Message: "Select components:",
		Options: options,
	}
	if err := survey.AskOne(prompt, &selected, survey.WithValidator(survey.Required)); err != nil {
		return nil, err
	}

	out := make([]component.Key, 0, len(selected))
	for _, idx := range selected {
		out = append(out, keys[idx])
	}
	return out, nil
}

func registeredKeys(st *store.MemoryStore) []string {
	seen := make(map[string]bool)
	for _, d := range st.List(store.Filter{}) {
		seen[d.Key.String()] = true
	}
	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func formatKeys(keys []component.Key) string {
	return strings.Join(component.KeyStrings(keys), ", ")
}
