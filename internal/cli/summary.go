package cli

import (
	"fmt"
	"strings"

	"github.com/mbland/team-hub/internal/fileutil"
)

type RunSummary struct {
	Mode         string   `json:"mode"`
	Format       string   `json:"format,omitempty"`
	RootPath     string   `json:"root_path"`
	OutputDir    string   `json:"output_dir,omitempty"`
	Collections  int      `json:"collections"`
	TeamMembers  int      `json:"team_members"`
	Written      int      `json:"written"`
	Reused       int      `json:"reused"`
	DurationMS   int64    `json:"duration_ms"`
	WrittenFiles []string `json:"written_files,omitempty"`
}

type CheckSummary struct {
	Mode            string   `json:"mode"`
	RootPath        string   `json:"root_path"`
	DataDir         string   `json:"data_dir"`
	Clean           bool     `json:"clean"`
	DuplicateNames  []string `json:"duplicate_names,omitempty"`
	UnknownRefs     []string `json:"unknown_refs,omitempty"`
	UnknownAuthors  []string `json:"unknown_authors,omitempty"`
	MissingLocation []string `json:"missing_location,omitempty"`
}

func (s CheckSummary) problemCount() int {
	return len(s.DuplicateNames) + len(s.UnknownRefs) + len(s.UnknownAuthors) + len(s.MissingLocation)
}

func PrintRunSummary(summary RunSummary, asJSON bool) error {
	if asJSON {
		return fileutil.PrintJSON(summary)
	}

	fmt.Printf("build complete in %dms\n", summary.DurationMS)
	if summary.OutputDir != "" {
		fmt.Printf("output: %s (%s)\n", summary.OutputDir, summary.Format)
	}
	fmt.Printf("data: collections=%d team_members=%d\n", summary.Collections, summary.TeamMembers)
	fmt.Printf("files: written=%d reused=%d\n", summary.Written, summary.Reused)
	if len(summary.WrittenFiles) > 0 {
		fmt.Printf("written files (%d): %s\n", len(summary.WrittenFiles), SummarizePaths(summary.WrittenFiles, 8))
	}
	return nil
}

func PrintCheckSummary(summary CheckSummary, asJSON bool) error {
	if asJSON {
		return fileutil.PrintJSON(summary)
	}

	if summary.Clean {
		fmt.Printf("check: %s is clean\n", summary.DataDir)
		return nil
	}

	fmt.Printf("check: %d problems in %s\n", summary.problemCount(), summary.DataDir)
	printProblems("duplicate member names", summary.DuplicateNames)
	printProblems("unknown member references", summary.UnknownRefs)
	printProblems("unknown snippet authors", summary.UnknownAuthors)
	printProblems("members without location", summary.MissingLocation)
	return nil
}

func printProblems(label string, problems []string) {
	if len(problems) == 0 {
		return
	}
	fmt.Printf("%s (%d):\n", label, len(problems))
	for _, problem := range problems {
		fmt.Printf("  %s\n", problem)
	}
}

func SummarizePaths(paths []string, max int) string {
	if len(paths) <= max {
		return strings.Join(paths, ", ")
	}
	return fmt.Sprintf("%s ... (+%d more)", strings.Join(paths[:max], ", "), len(paths)-max)
}
