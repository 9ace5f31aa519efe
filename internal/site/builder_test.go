package site

import (
	"errors"
	"reflect"
	"testing"

	"github.com/mbland/team-hub/internal/data"
	"github.com/mbland/team-hub/internal/xref"
)

func newTestSnapshot() *data.Snapshot {
	snapshot := data.NewSnapshot()
	snapshot.SetCollection(TeamCollection, []data.Record{
		{"name": "mbland", "location": "DCA", "languages": []any{"ruby", "go"}},
		{"name": "afeld", "location": "SFO", "languages": []any{"ruby"}},
		{"name": "gboone", "location": "DCA"},
	})
	snapshot.SetCollection(ProjectsCollection, []data.Record{
		{"name": "hub", "team": "mbland, afeld"},
		{"name": "dashboard", "team": []any{"gboone", "ghost"}},
	})
	snapshot.SetCollection(WorkingGroupsCollection, []data.Record{
		{"name": "documentation", "leads": []any{"gboone"}, "members": []any{"gboone", "mbland"}},
	})
	return snapshot
}

func member(t *testing.T, b *Builder, name string) data.Record {
	t.Helper()
	record, ok := b.TeamIndex()[name]
	if !ok {
		t.Fatalf("no team member %q", name)
	}
	return record
}

func recordNames(records []data.Record) []string {
	out := make([]string, 0, len(records))
	for _, record := range records {
		out = append(out, record.Name())
	}
	return out
}

func TestXrefProjectsAndTeamMembers(t *testing.T) {
	b := NewBuilder(newTestSnapshot())
	b.XrefProjectsAndTeamMembers()

	hub := b.Snapshot().Collection(ProjectsCollection)[0]
	if got := recordNames(hub.Records(TeamField)); !reflect.DeepEqual(got, []string{"mbland", "afeld"}) {
		t.Fatalf("expected comma-separated team split and resolved, got %v", got)
	}

	dashboard := b.Snapshot().Collection(ProjectsCollection)[1]
	if got := recordNames(dashboard.Records(TeamField)); !reflect.DeepEqual(got, []string{"gboone"}) {
		t.Fatalf("expected ghost dropped silently, got %v", got)
	}

	if got := recordNames(member(t, b, "mbland").Records(ProjectsField)); !reflect.DeepEqual(got, []string{"hub"}) {
		t.Fatalf("expected reciprocal projects [hub], got %v", got)
	}
}

func TestXrefGroupsAndTeamMembersDedupesByGroupName(t *testing.T) {
	b := NewBuilder(newTestSnapshot())
	b.XrefGroupsAndTeamMembers(WorkingGroupsCollection, "leads", "members")

	// gboone appears under both leads and members, but accumulates the
	// group only once.
	gboone := member(t, b, "gboone")
	if got := recordNames(gboone.Records(WorkingGroupsCollection)); !reflect.DeepEqual(got, []string{"documentation"}) {
		t.Fatalf("expected deduplicated group list [documentation], got %v", got)
	}

	group := b.Snapshot().Collection(WorkingGroupsCollection)[0]
	if got := recordNames(group.Records("leads")); !reflect.DeepEqual(got, []string{"gboone"}) {
		t.Fatalf("expected resolved leads [gboone], got %v", got)
	}
	if got := recordNames(group.Records("members")); !reflect.DeepEqual(got, []string{"gboone", "mbland"}) {
		t.Fatalf("expected resolved members [gboone mbland], got %v", got)
	}
}

func TestXrefLocationsBuildsSortedSummaries(t *testing.T) {
	b := NewBuilder(newTestSnapshot())
	b.XrefProjectsAndTeamMembers()
	b.XrefGroupsAndTeamMembers(WorkingGroupsCollection, "leads", "members")
	b.XrefLocations()

	locations := b.Snapshot().Collection(LocationsCollection)
	if len(locations) != 2 {
		t.Fatalf("expected 2 location summaries, got %d", len(locations))
	}

	dca := locations[0]
	if dca.String(CodeField) != "DCA" {
		t.Fatalf("expected summaries sorted by code, got %q first", dca.String(CodeField))
	}
	if got := recordNames(dca.Records(TeamField)); !reflect.DeepEqual(got, []string{"mbland", "gboone"}) {
		t.Fatalf("expected DCA team [mbland gboone], got %v", got)
	}
	// Union of DCA members' projects, deduplicated and sorted by name.
	if got := recordNames(dca.Records(ProjectsField)); !reflect.DeepEqual(got, []string{"dashboard", "hub"}) {
		t.Fatalf("expected DCA projects [dashboard hub], got %v", got)
	}
	if got := recordNames(dca.Records(WorkingGroupsCollection)); !reflect.DeepEqual(got, []string{"documentation"}) {
		t.Fatalf("expected DCA working groups [documentation], got %v", got)
	}

	sfo := locations[1]
	if sfo.Has(WorkingGroupsCollection) {
		t.Fatalf("expected empty category omitted, got %v", sfo[WorkingGroupsCollection])
	}
}

func TestXrefLocationsMergesIntoExistingCollection(t *testing.T) {
	snapshot := newTestSnapshot()
	snapshot.SetCollection(LocationsCollection, []data.Record{
		{"code": "DCA", "timezone": "US/Eastern"},
	})

	b := NewBuilder(snapshot)
	b.XrefProjectsAndTeamMembers()
	b.XrefGroupsAndTeamMembers(WorkingGroupsCollection, "leads", "members")
	b.XrefLocations()

	locations := snapshot.Collection(LocationsCollection)
	if len(locations) != 2 {
		t.Fatalf("expected merged collection with 2 locations, got %d", len(locations))
	}
	dca := locations[0]
	if dca.String("timezone") != "US/Eastern" {
		t.Fatal("expected hand-maintained location fields to survive the merge")
	}
	if len(dca.Records(TeamField)) != 2 {
		t.Fatalf("expected summary fields merged in, got %v", dca[TeamField])
	}
}

func TestXrefSnippetsAndTeamMembers(t *testing.T) {
	snapshot := newTestSnapshot()
	snapshot.SetSnippets(map[string][]data.Record{
		"2015-03-06": {{"name": "afeld", "text": "later batch"}},
		"2015-02-27": {
			{"name": "mbland", "text": "first"},
			{"name": "mbland", "text": "second"},
		},
	})

	b := NewBuilder(snapshot)
	if err := b.XrefSnippetsAndTeamMembers(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mbland := member(t, b, "mbland")
	snippets := mbland.Records(SnippetsField)
	if len(snippets) != 2 || snippets[0].String("text") != "first" {
		t.Fatalf("expected snippets appended in chronological order, got %v", snippets)
	}

	if got := snapshot.Value(SnippetsLatestKey); got != "2015-03-06" {
		t.Fatalf("expected latest batch marker 2015-03-06, got %v", got)
	}
	members := snapshot.Collection(SnippetsTeamMembersKey)
	if got := recordNames(members); !reflect.DeepEqual(got, []string{"mbland", "afeld"}) {
		t.Fatalf("expected members with snippets in team order, got %v", got)
	}
}

func TestXrefSnippetsFailsOnUnknownAuthor(t *testing.T) {
	snapshot := newTestSnapshot()
	snapshot.SetSnippets(map[string][]data.Record{
		"2015-02-27": {{"name": "ghost", "text": "whose is this?"}},
	})

	err := NewBuilder(snapshot).XrefSnippetsAndTeamMembers()
	if !errors.Is(err, xref.ErrTargetNotFound) {
		t.Fatalf("expected ErrTargetNotFound, got %v", err)
	}
}

func TestXrefSnippetsWritesNothingWithoutSnippets(t *testing.T) {
	snapshot := newTestSnapshot()
	b := NewBuilder(snapshot)
	if err := b.XrefSnippetsAndTeamMembers(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snapshot.Has(SnippetsLatestKey) || snapshot.Has(SnippetsTeamMembersKey) {
		t.Fatal("expected no derived snippet values without snippets")
	}
}

func TestXrefSkillsAndTeamMembers(t *testing.T) {
	b := NewBuilder(newTestSnapshot())
	b.XrefSkillsAndTeamMembers("Languages", "Specialties")

	skills, ok := data.AsRecord(b.Snapshot().Value(SkillsKey))
	if !ok {
		t.Fatalf("expected skills record, got %T", b.Snapshot().Value(SkillsKey))
	}
	if skills.Has("Specialties") {
		t.Fatal("expected empty category bucket to be dropped")
	}

	languages, ok := data.AsRecord(skills["Languages"])
	if !ok {
		t.Fatalf("expected Languages bucket, got %v", skills)
	}
	if got := recordNames(languages.Records("ruby")); !reflect.DeepEqual(got, []string{"mbland", "afeld"}) {
		t.Fatalf("expected ruby bucket [mbland afeld], got %v", got)
	}
	if got := recordNames(languages.Records("go")); !reflect.DeepEqual(got, []string{"mbland"}) {
		t.Fatalf("expected go bucket [mbland], got %v", got)
	}
}

func TestXrefSkillsWritesNothingWhenAllBucketsEmpty(t *testing.T) {
	b := NewBuilder(newTestSnapshot())
	b.XrefSkillsAndTeamMembers("Specialties")

	if b.Snapshot().Has(SkillsKey) {
		t.Fatal("expected no skills value when every bucket is empty")
	}
}

func TestBuilderTeamIndexLastWriteWins(t *testing.T) {
	snapshot := data.NewSnapshot()
	snapshot.SetCollection(TeamCollection, []data.Record{
		{"name": "mbland", "title": "first"},
		{"name": "mbland", "title": "second"},
	})

	b := NewBuilder(snapshot)
	if b.TeamIndex()["mbland"].String("title") != "second" {
		t.Fatal("expected duplicate team names to resolve to the later record")
	}
}

func TestBuildRunsAllPasses(t *testing.T) {
	snapshot := newTestSnapshot()
	snapshot.SetSnippets(map[string][]data.Record{
		"2015-02-27": {{"name": "mbland", "text": "hi"}},
	})

	b := NewBuilder(snapshot)
	err := b.Build(WorkingGroupsCollection, []string{"leads", "members"}, []string{"Languages"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, key := range []string{LocationsCollection, SkillsKey, SnippetsLatestKey, SnippetsTeamMembersKey} {
		if !snapshot.Has(key) {
			t.Fatalf("expected %s to be written", key)
		}
	}
}
