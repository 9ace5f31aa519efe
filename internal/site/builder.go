// Package site coordinates the domain cross-reference passes over one site
// data snapshot: projects, working groups, locations, snippets, and skills
// all get linked to team members through a shared team index.
package site

import (
	"strings"

	"github.com/mbland/team-hub/internal/data"
	"github.com/mbland/team-hub/internal/xref"
)

// Collection and field names fixed by the site data conventions.
const (
	TeamCollection      = "team"
	ProjectsCollection  = "projects"
	LocationsCollection = "locations"

	NameField     = "name"
	LocationField = "location"
	CodeField     = "code"
	TeamField     = "team"
	ProjectsField = "projects"
	SnippetsField = "snippets"

	WorkingGroupsCollection = "working_groups"
	SkillsKey               = "skills"
	SnippetsLatestKey       = "snippets_latest"
	SnippetsTeamMembersKey  = "snippets_team_members"
)

// Builder runs the domain cross-reference passes over one snapshot. The
// passes mutate the snapshot's records in place and must run in the order
// Build uses them: locations depend on the project and group links, and the
// derived snippet and skill collections read member fields the earlier
// passes wrote.
type Builder struct {
	snapshot *data.Snapshot
	team     xref.Index
}

// NewBuilder indexes the snapshot's team collection by member name.
// Duplicate names are last-write-wins, matching the index semantics; the
// check command reports duplicates as a data-quality problem.
func NewBuilder(snapshot *data.Snapshot) *Builder {
	return &Builder{
		snapshot: snapshot,
		team:     xref.UniqueIndex(snapshot.Collection(TeamCollection), NameField),
	}
}

// TeamIndex exposes the member-name index the passes resolve against.
func (b *Builder) TeamIndex() xref.Index {
	return b.team
}

// Snapshot returns the snapshot the builder mutates.
func (b *Builder) Snapshot() *data.Snapshot {
	return b.snapshot
}

// Build runs every pass in the required order.
func (b *Builder) Build(groupCollection string, memberFields []string, skillCategories []string) error {
	b.XrefProjectsAndTeamMembers()
	b.XrefGroupsAndTeamMembers(groupCollection, memberFields...)
	b.XrefLocations()
	if err := b.XrefSnippetsAndTeamMembers(); err != nil {
		return err
	}
	b.XrefSkillsAndTeamMembers(skillCategories...)
	return nil
}

// XrefProjectsAndTeamMembers links projects to the members named in their
// team field, producing reciprocal projects lists on the members. A team
// field holding a comma-separated string is split into a name list first.
func (b *Builder) XrefProjectsAndTeamMembers() {
	projects := b.snapshot.Collection(ProjectsCollection)
	for _, project := range projects {
		if team, ok := project[TeamField].(string); ok {
			project[TeamField] = splitNames(team)
		}
	}
	xref.CreateXrefs(projects, TeamField, b.team, ProjectsField)
}

// XrefGroupsAndTeamMembers links group records to the members named in each
// member field (leads, members, ...), accumulating every group a member
// appears in under a member field named after the group collection. A member
// listed under several fields of the same group would accumulate it more
// than once, so each member's group list is deduplicated by group name
// afterwards, first occurrence winning.
func (b *Builder) XrefGroupsAndTeamMembers(groupCollection string, memberFields ...string) {
	groups := b.snapshot.Collection(groupCollection)
	for _, field := range memberFields {
		xref.CreateXrefs(groups, field, b.team, groupCollection)
	}
	for _, member := range b.snapshot.Collection(TeamCollection) {
		if member.Has(groupCollection) {
			member[groupCollection] = dedupeByName(member.Records(groupCollection))
		}
	}
}

// splitNames turns a comma-separated member list into identifier strings,
// dropping surrounding whitespace and empty segments.
func splitNames(value string) []any {
	parts := strings.Split(value, ",")
	out := make([]any, 0, len(parts))
	for _, part := range parts {
		if name := strings.TrimSpace(part); name != "" {
			out = append(out, name)
		}
	}
	return out
}

// dedupeByName keeps the first record seen for each name.
func dedupeByName(records []data.Record) []any {
	seen := make(map[string]bool, len(records))
	out := make([]any, 0, len(records))
	for _, record := range records {
		name := record.Name()
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, record)
	}
	return out
}
