package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mbland/team-hub/internal/config"
	"github.com/mbland/team-hub/internal/data"
	"github.com/mbland/team-hub/internal/fileutil"
	"github.com/mbland/team-hub/internal/site"
	"github.com/mbland/team-hub/internal/xref"
)

func RunCheck(cmd *cobra.Command, args []string) error {
	rootPath, cfg, err := resolveRunContext(cmd, args)
	if err != nil {
		return err
	}
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return fmt.Errorf("failed to read --json flag: %w", err)
	}
	strict, err := cmd.Flags().GetBool("strict")
	if err != nil {
		return fmt.Errorf("failed to read --strict flag: %w", err)
	}

	dataDir := filepath.Join(rootPath, cfg.DataDir)
	snapshot, err := data.LoadSnapshot(dataDir)
	if err != nil {
		return err
	}

	summary := CheckSnapshot(snapshot, cfg)
	summary.RootPath = rootPath
	summary.DataDir = dataDir

	if err := PrintCheckSummary(summary, asJSON); err != nil {
		return err
	}
	if strict && !summary.Clean {
		return fmt.Errorf("found %d data problems", summary.problemCount())
	}
	return nil
}

// CheckSnapshot inspects a freshly loaded snapshot for the data problems
// the build either silently absorbs (unknown project and group member
// references, duplicate member names shadowing each other in the team
// index) or fails on (unknown snippet authors).
func CheckSnapshot(snapshot *data.Snapshot, cfg *config.Config) CheckSummary {
	team := snapshot.Collection(site.TeamCollection)
	index := xref.UniqueIndex(team, site.NameField)

	summary := CheckSummary{Mode: "check"}
	summary.DuplicateNames = duplicateNames(team)
	summary.UnknownRefs = unknownRefs(snapshot, cfg, index)
	summary.UnknownAuthors = unknownAuthors(snapshot, index)
	summary.MissingLocation = missingLocation(team)
	summary.Clean = summary.problemCount() == 0
	return summary
}

// duplicateNames reports member names claimed by more than one record.
// The team index is last-write-wins, so every duplicate silently shadows an
// earlier member.
func duplicateNames(team []data.Record) []string {
	counts := make(map[string]int, len(team))
	var out []string
	for _, member := range team {
		name := member.Name()
		if name == "" {
			continue
		}
		counts[name]++
		if counts[name] == 2 {
			out = append(out, name)
		}
	}
	return out
}

// unknownRefs reports identifiers in project team lists and group member
// fields that resolve to nobody. The build drops these silently.
func unknownRefs(snapshot *data.Snapshot, cfg *config.Config, index xref.Index) []string {
	var out []string
	for _, project := range snapshot.Collection(site.ProjectsCollection) {
		for _, name := range referenceNames(project, site.TeamField) {
			if _, ok := index[name]; !ok {
				out = append(out, fmt.Sprintf("%s/%s: %s", site.ProjectsCollection, project.Name(), name))
			}
		}
	}
	for _, group := range snapshot.Collection(cfg.Groups.Collection) {
		for _, field := range cfg.Groups.MemberFields {
			for _, name := range referenceNames(group, field) {
				if _, ok := index[name]; !ok {
					out = append(out, fmt.Sprintf("%s/%s.%s: %s", cfg.Groups.Collection, group.Name(), field, name))
				}
			}
		}
	}
	return fileutil.DedupeStrings(out)
}

// unknownAuthors reports snippet authors absent from the team index; the
// build fails fast on the first of these.
func unknownAuthors(snapshot *data.Snapshot, index xref.Index) []string {
	batches := snapshot.Snippets()
	var out []string
	for _, timestamp := range snapshot.SnippetTimestamps() {
		for _, snippet := range batches[timestamp] {
			author := snippet.String(site.NameField)
			if _, ok := index[author]; !ok {
				out = append(out, fmt.Sprintf("%s: %s", timestamp, author))
			}
		}
	}
	return fileutil.DedupeStrings(out)
}

func missingLocation(team []data.Record) []string {
	var out []string
	for _, member := range team {
		if member.String(site.LocationField) == "" {
			out = append(out, member.Name())
		}
	}
	return out
}

// referenceNames reads an identifier list that may still be in its raw
// comma-separated string form.
func referenceNames(record data.Record, field string) []string {
	if value, ok := record[field].(string); ok {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, part := range parts {
			if name := strings.TrimSpace(part); name != "" {
				out = append(out, name)
			}
		}
		return out
	}
	return record.Strings(field)
}
