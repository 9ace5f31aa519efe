package site

import (
	"sort"

	"github.com/mbland/team-hub/internal/data"
	"github.com/mbland/team-hub/internal/xref"
)

// XrefLocations groups team members by location and derives one summary
// record per location code: the members there plus the union of their
// projects and working groups. It reads the member links the project and
// group passes wrote, so it must run after them. The summaries are sorted by
// code and merged into the existing locations collection keyed on code, so
// hand-maintained location records (office address, timezone) keep their
// fields.
func (b *Builder) XrefLocations() {
	byLocation := xref.GroupIndex(b.snapshot.Collection(TeamCollection), LocationField)

	codes := make([]string, 0, len(byLocation))
	for code := range byLocation {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	summaries := make([]data.Record, 0, len(codes))
	for _, code := range codes {
		members := byLocation[code]
		summary := data.Record{
			CodeField: code,
			TeamField: recordList(members),
		}
		if projects := unionByName(members, ProjectsField); len(projects) > 0 {
			summary[ProjectsField] = projects
		}
		if groups := unionByName(members, WorkingGroupsCollection); len(groups) > 0 {
			summary[WorkingGroupsCollection] = groups
		}
		summaries = append(summaries, summary)
	}

	merged := data.JoinByKey(b.snapshot.Collection(LocationsCollection), summaries, CodeField)
	b.snapshot.SetCollection(LocationsCollection, merged)
}

// unionByName collects the records linked under field across all members,
// deduplicated by name and sorted by name.
func unionByName(members []data.Record, field string) []any {
	seen := make(map[string]data.Record)
	for _, member := range members {
		for _, record := range member.Records(field) {
			if name := record.Name(); name != "" {
				if _, ok := seen[name]; !ok {
					seen[name] = record
				}
			}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]any, 0, len(names))
	for _, name := range names {
		out = append(out, seen[name])
	}
	return out
}

func recordList(records []data.Record) []any {
	out := make([]any, 0, len(records))
	for _, record := range records {
		out = append(out, record)
	}
	return out
}
