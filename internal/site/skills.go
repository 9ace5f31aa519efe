package site

import (
	"strings"

	"github.com/mbland/team-hub/internal/data"
)

// XrefSkillsAndTeamMembers buckets team members by the skills they claim.
// Each category name maps to a member field by lowercasing ("Languages" maps
// to a languages list), and every skill value in that field files the member
// into the category's bucket. Categories nobody claims a skill in are
// dropped; when every bucket is empty no skills value is written at all.
func (b *Builder) XrefSkillsAndTeamMembers(categories ...string) {
	team := b.snapshot.Collection(TeamCollection)

	skills := data.Record{}
	for _, category := range categories {
		field := strings.ToLower(category)
		bucket := data.Record{}
		for _, member := range team {
			for _, skill := range member.Strings(field) {
				bucket.Append(skill, member)
			}
		}
		if len(bucket) > 0 {
			skills[category] = bucket
		}
	}

	if len(skills) > 0 {
		b.snapshot.Set(SkillsKey, skills)
	}
}
