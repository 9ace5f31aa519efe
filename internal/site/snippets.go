package site

import (
	"fmt"

	"github.com/mbland/team-hub/internal/data"
	"github.com/mbland/team-hub/internal/xref"
)

// XrefSnippetsAndTeamMembers appends each snippet to its author's snippets
// list, walking the batches in chronological order. Author resolution is
// strict: a snippet naming an unknown member is mis-attributed content, not
// an optional reference, so it surfaces as an error instead of being
// dropped.
//
// When at least one snippet was linked, the snapshot gains two derived
// values: the latest batch timestamp and the list of members with snippets,
// in team-collection order.
func (b *Builder) XrefSnippetsAndTeamMembers() error {
	batches := b.snapshot.Snippets()

	var latest string
	linked := false
	for _, timestamp := range b.snapshot.SnippetTimestamps() {
		for _, snippet := range batches[timestamp] {
			author := snippet.String(NameField)
			member, ok := b.team[author]
			if !ok {
				return fmt.Errorf("snippet batch %s: %w: author %q", timestamp, xref.ErrTargetNotFound, author)
			}
			member.Append(SnippetsField, snippet)
			linked = true
		}
		latest = timestamp
	}

	if !linked {
		return nil
	}

	b.snapshot.Set(SnippetsLatestKey, latest)
	b.snapshot.SetCollection(SnippetsTeamMembersKey, b.membersWithSnippets())
	return nil
}

func (b *Builder) membersWithSnippets() []data.Record {
	var out []data.Record
	for _, member := range b.snapshot.Collection(TeamCollection) {
		if len(member.List(SnippetsField)) > 0 {
			out = append(out, member)
		}
	}
	return out
}
