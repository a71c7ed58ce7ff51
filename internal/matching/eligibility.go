package matching

import "strings"

// Permissive eligibility values that impose no restriction.
const (
	genderAny    = "both"
	residenceAny = "any"
	socialAny    = "any"
)

// CheckEligibility applies the opportunity's hard eligibility requirements to
// the candidate's declared attributes. It gates the apply action only and
// never affects ranking scores. A requirement is enforced when the employer
// declared a non-permissive value and the candidate declared the attribute;
// comparison is exact but case-insensitive.
func CheckEligibility(profile *CandidateProfile, opp *Opportunity) (bool, string) {
	want := opp.Eligibility
	have := profile.Category

	if blocked(want.Gender, genderAny, have.Gender) {
		return false, "gender requirement not met"
	}
	if blocked(want.Residence, residenceAny, have.Residence) {
		return false, "residence requirement not met"
	}
	if blocked(want.Social, socialAny, have.SocialBackground) {
		return false, "social background requirement not met"
	}
	return true, ""
}

func blocked(want, permissive, have string) bool {
	want = strings.ToLower(strings.TrimSpace(want))
	have = strings.ToLower(strings.TrimSpace(have))
	return want != "" && want != permissive && have != "" && have != want
}
