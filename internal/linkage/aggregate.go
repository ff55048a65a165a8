package linkage

import (
	"fmt"
	"sort"

	"crosslink/internal/profile"
	pkgstrings "crosslink/pkg/platform/strings"
)

// Aggregate folds every linkage touching a profile into its suspicion
// summary. Pure domain logic: no I/O, no side effects.
//
// The score is min(100, sum of touching strengths): monotonically increasing
// in total evidence, saturating at 100, zero without linkages. LinkageCount
// counts distinct connected profiles, not linkage rows. Reasons are ordered
// most severe first with a total tie-break (type, then text) so reruns on an
// unchanged corpus render byte-identical output.
func Aggregate(profileID string, touching []Linkage, names map[string]string) profile.Summary {
	sum := profile.Summary{ProfileID: profileID}
	if len(touching) == 0 {
		return sum
	}

	connected := make(map[string]struct{})
	type reason struct {
		strength int
		linkType Type
		text     string
	}
	reasons := make([]reason, 0, len(touching))

	total := 0
	for _, l := range touching {
		if !l.Touches(profileID) {
			continue
		}
		other := l.Other(profileID)
		connected[other] = struct{}{}
		total += l.Strength
		otherName := names[other]
		if otherName == "" {
			otherName = other
		}
		reasons = append(reasons, reason{
			strength: l.Strength,
			linkType: l.Type,
			text:     renderReason(l, otherName),
		})
	}

	sort.Slice(reasons, func(i, j int) bool {
		if reasons[i].strength != reasons[j].strength {
			return reasons[i].strength > reasons[j].strength
		}
		if reasons[i].linkType != reasons[j].linkType {
			return reasons[i].linkType < reasons[j].linkType
		}
		return reasons[i].text < reasons[j].text
	})

	rendered := make([]string, len(reasons))
	for i, r := range reasons {
		rendered[i] = r.text
	}

	sum.LinkageCount = len(connected)
	sum.SuspicionReasons = pkgstrings.DedupeAndTrim(rendered)
	if total > 100 {
		total = 100
	}
	sum.SuspicionScore = total
	return sum
}

// renderReason builds the human-readable explanation for one linkage.
func renderReason(l Linkage, otherName string) string {
	switch l.Type {
	case TypeSharedIMEI:
		return fmt.Sprintf("Same IMEI as %s", otherName)
	case TypeSharedHideout:
		return fmt.Sprintf("Shares hideout '%s' with %s", l.Evidence, otherName)
	case TypeSharedOrganization:
		return fmt.Sprintf("Same organization as %s", otherName)
	case TypeSharedCase:
		return fmt.Sprintf("Linked to case %s with %s", l.Evidence, otherName)
	case TypeMutualAssociate:
		return fmt.Sprintf("Associate network includes %s", otherName)
	case TypeGPSProximity:
		return fmt.Sprintf("Located near %s (%s)", otherName, l.Evidence)
	case TypeSharedAdvocate:
		return fmt.Sprintf("Shares advocate with %s", otherName)
	default:
		return fmt.Sprintf("Linked to %s", otherName)
	}
}
