package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mbland/team-hub/internal/config"
	"github.com/mbland/team-hub/internal/data"
	"github.com/mbland/team-hub/internal/logging"
	"github.com/mbland/team-hub/internal/output"
	"github.com/mbland/team-hub/internal/site"
)

func RunBuild(cmd *cobra.Command, args []string) error {
	rootPath, cfg, err := resolveRunContext(cmd, args)
	if err != nil {
		return err
	}

	if out, err := cmd.Flags().GetString("out"); err != nil {
		return fmt.Errorf("failed to read --out flag: %w", err)
	} else if out != "" {
		cfg.Output.Dir = out
	}
	if formatFlag, err := cmd.Flags().GetString("format"); err != nil {
		return fmt.Errorf("failed to read --format flag: %w", err)
	} else if formatFlag != "" {
		cfg.Output.Format = formatFlag
	}
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return fmt.Errorf("failed to read --json flag: %w", err)
	}

	format, err := output.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	summary, err := BuildSite(rootPath, cfg, format, logger)
	if err != nil {
		return err
	}
	return PrintRunSummary(summary, asJSON)
}

// BuildSite loads the data directory, runs the cross-reference passes in
// order, and writes the flattened result.
func BuildSite(rootPath string, cfg *config.Config, format output.Format, logger *zap.Logger) (RunSummary, error) {
	start := time.Now()

	dataDir := filepath.Join(rootPath, cfg.DataDir)
	snapshot, err := data.LoadSnapshot(dataDir)
	if err != nil {
		return RunSummary{}, err
	}
	logger.Info("loaded snapshot",
		zap.String("data_dir", dataDir),
		zap.Int("collections", len(snapshot.Names())),
	)

	builder := site.NewBuilder(snapshot)
	if err := builder.Build(cfg.Groups.Collection, cfg.Groups.MemberFields, cfg.Skills.Categories); err != nil {
		return RunSummary{}, fmt.Errorf("cross-referencing failed: %w", err)
	}
	logger.Info("cross-referenced snapshot",
		zap.Int("team_members", len(builder.TeamIndex())),
	)

	serialized := site.Serialized(snapshot, cfg.Groups.Collection, cfg.Groups.MemberFields)
	outputDir := filepath.Join(rootPath, cfg.Output.Dir)
	result, err := output.NewWriter(outputDir).WriteAll(serialized, format)
	if err != nil {
		return RunSummary{}, err
	}
	logger.Info("wrote site data",
		zap.String("output_dir", outputDir),
		zap.Int("written", len(result.Written)),
		zap.Int("reused", len(result.Reused)),
	)

	return RunSummary{
		Mode:         "build",
		Format:       string(format),
		RootPath:     rootPath,
		OutputDir:    outputDir,
		Collections:  len(snapshot.Names()),
		TeamMembers:  len(builder.TeamIndex()),
		Written:      len(result.Written),
		Reused:       len(result.Reused),
		DurationMS:   time.Since(start).Milliseconds(),
		WrittenFiles: relativePaths(outputDir, result.Written),
	}, nil
}

// resolveRunContext reads the positional root path and loads the config file
// for it, honoring an explicit --config.
func resolveRunContext(cmd *cobra.Command, args []string) (string, *config.Config, error) {
	path := "."
	if len(args) > 0 {
		path = args[0]
	}
	rootPath, err := filepath.Abs(path)
	if err != nil {
		return "", nil, fmt.Errorf("failed to resolve path %q: %w", path, err)
	}

	info, err := os.Stat(rootPath)
	if err != nil {
		return "", nil, fmt.Errorf("failed to access path %q: %w", rootPath, err)
	}
	if !info.IsDir() {
		return "", nil, fmt.Errorf("path %q is not a directory", rootPath)
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return "", nil, fmt.Errorf("failed to read --config flag: %w", err)
	}
	if configPath == "" {
		configPath = filepath.Join(rootPath, config.FileName)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return "", nil, err
	}
	return rootPath, cfg, nil
}

func relativePaths(base string, paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, path := range paths {
		if rel, err := filepath.Rel(base, path); err == nil {
			out = append(out, rel)
			continue
		}
		out = append(out, path)
	}
	return out
}
