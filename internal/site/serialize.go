package site

import (
	"github.com/mbland/team-hub/internal/data"
	"github.com/mbland/team-hub/internal/xref"
)

// Serialized returns a cycle-free view of the snapshot, suitable for JSON
// encoding. Cross-referenced record lists collapse to name lists through the
// non-destructive flatten, so the snapshot's own reference graph survives
// the call; skill buckets and the derived snippet member list collapse to
// member names the same way.
func Serialized(snapshot *data.Snapshot, groupCollection string, memberFields []string) map[string]any {
	out := make(map[string]any, len(snapshot.Names()))
	for _, name := range snapshot.Names() {
		out[name] = snapshot.Value(name)
	}

	if team := snapshot.Collection(TeamCollection); team != nil {
		flattened := xref.FlattenProperty(team, ProjectsField, NameField)
		flattened = xref.FlattenProperty(flattened, groupCollection, NameField)
		out[TeamCollection] = flattened
	}
	if projects := snapshot.Collection(ProjectsCollection); projects != nil {
		out[ProjectsCollection] = xref.FlattenProperty(projects, TeamField, NameField)
	}
	if groups := snapshot.Collection(groupCollection); groups != nil {
		flattened := groups
		for _, field := range memberFields {
			flattened = xref.FlattenProperty(flattened, field, NameField)
		}
		out[groupCollection] = flattened
	}
	if locations := snapshot.Collection(LocationsCollection); locations != nil {
		flattened := xref.FlattenProperty(locations, TeamField, NameField)
		flattened = xref.FlattenProperty(flattened, ProjectsField, NameField)
		flattened = xref.FlattenProperty(flattened, WorkingGroupsCollection, NameField)
		out[LocationsCollection] = flattened
	}
	if members := snapshot.Collection(SnippetsTeamMembersKey); members != nil {
		out[SnippetsTeamMembersKey] = memberNames(members)
	}
	if skills, ok := data.AsRecord(snapshot.Value(SkillsKey)); ok {
		out[SkillsKey] = flattenSkills(skills)
	}
	return out
}

func flattenSkills(skills data.Record) data.Record {
	out := make(data.Record, len(skills))
	for category := range skills {
		bucket, ok := data.AsRecord(skills[category])
		if !ok {
			continue
		}
		flattened := make(data.Record, len(bucket))
		for skill := range bucket {
			flattened[skill] = memberNames(bucket.Records(skill))
		}
		out[category] = flattened
	}
	return out
}

func memberNames(members []data.Record) []string {
	out := make([]string, 0, len(members))
	for _, member := range members {
		out = append(out, member.Name())
	}
	return out
}
