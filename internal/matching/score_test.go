package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/meera/intern-match/internal/geo"
)

func testScorer() *Scorer {
	return NewScorer(geo.DefaultGazetteer())
}

func TestScore_AllRequiredSkillsAliased(t *testing.T) {
	profile := &CandidateProfile{Skills: []string{"JavaScript", "React"}}
	opp := &Opportunity{RequiredSkills: []string{"js", "reactjs"}}

	b := testScorer().Score(profile, opp, DefaultWeights())

	assert.Equal(t, 1.0, b.SkillScore)
	assert.ElementsMatch(t, []string{"js", "reactjs"}, b.MatchedSkills)
}

func TestScore_NoSkillOverlap(t *testing.T) {
	profile := &CandidateProfile{Skills: []string{"Python"}}
	opp := &Opportunity{RequiredSkills: []string{"Java", "Go"}}

	b := testScorer().Score(profile, opp, DefaultWeights())

	assert.Equal(t, 0.0, b.SkillScore)
	assert.Empty(t, b.MatchedSkills)
}

func TestScore_PartialSkillOverlap(t *testing.T) {
	profile := &CandidateProfile{Skills: []string{"Go", "Postgres"}}
	opp := &Opportunity{RequiredSkills: []string{"go", "postgresql", "kafka", "docker"}}

	b := testScorer().Score(profile, opp, DefaultWeights())

	assert.Equal(t, 0.5, b.SkillScore)
	assert.ElementsMatch(t, []string{"go", "postgresql"}, b.MatchedSkills)
}

func TestScore_ZeroRequiredSkills(t *testing.T) {
	profile := &CandidateProfile{Skills: []string{"Go"}}
	opp := &Opportunity{RequiredSkills: nil}

	b := testScorer().Score(profile, opp, DefaultWeights())

	assert.Equal(t, 0.0, b.SkillScore)
	assert.NotNil(t, b.MatchedSkills)
}

func TestScore_RemoteOverridesLocation(t *testing.T) {
	profile := &CandidateProfile{LocationPreference: ""}
	opp := &Opportunity{IsRemote: true, Location: "Mumbai"}

	b := testScorer().Score(profile, opp, DefaultWeights())

	assert.Equal(t, 1.0, b.LocationScore)
}

func TestScore_ExactLocationMatch(t *testing.T) {
	profile := &CandidateProfile{LocationPreference: "Pune"}
	opp := &Opportunity{Location: "pune"}

	b := testScorer().Score(profile, opp, DefaultWeights())

	assert.Equal(t, 1.0, b.LocationScore)
}

func TestScore_DistantCities(t *testing.T) {
	profile := &CandidateProfile{LocationPreference: "Bengaluru"}
	opp := &Opportunity{Location: "Mumbai"}

	b := testScorer().Score(profile, opp, DefaultWeights())

	// ~843km apart, far past the 200km half-life.
	assert.InDelta(t, 0.05, b.LocationScore, 0.01)
}

func TestScore_BestLocationWins(t *testing.T) {
	profile := &CandidateProfile{LocationPreference: "Delhi, Mumbai; Chennai"}
	opp := &Opportunity{Location: "Mumbai"}

	b := testScorer().Score(profile, opp, DefaultWeights())

	assert.Equal(t, 1.0, b.LocationScore)
}

func TestScore_SubstringLocation(t *testing.T) {
	profile := &CandidateProfile{LocationPreference: "Navi Gurgaon"}
	opp := &Opportunity{Location: "Gurgaon"}

	b := testScorer().Score(profile, opp, DefaultWeights())

	assert.Equal(t, 0.7, b.LocationScore)
}

func TestScore_RemoteWordHeuristic(t *testing.T) {
	profile := &CandidateProfile{LocationPreference: "remote only"}
	opp := &Opportunity{Location: "Anywhere"}

	b := testScorer().Score(profile, opp, DefaultWeights())

	assert.Equal(t, 0.5, b.LocationScore)
}

func TestScore_NoLocationPreference(t *testing.T) {
	profile := &CandidateProfile{}
	opp := &Opportunity{Location: "London"}

	b := testScorer().Score(profile, opp, DefaultWeights())

	assert.Equal(t, 0.0, b.LocationScore)
}

func TestScore_SectorCaseInsensitive(t *testing.T) {
	profile := &CandidateProfile{SectorPreference: "Technology"}

	b := testScorer().Score(profile, &Opportunity{Sector: "technology"}, DefaultWeights())
	assert.Equal(t, 1.0, b.SectorScore)

	b = testScorer().Score(profile, &Opportunity{Sector: "Finance"}, DefaultWeights())
	assert.Equal(t, 0.0, b.SectorScore)
}

func TestScore_MissingSectorScoresZero(t *testing.T) {
	b := testScorer().Score(&CandidateProfile{}, &Opportunity{Sector: "Finance"}, DefaultWeights())
	assert.Equal(t, 0.0, b.SectorScore)

	b = testScorer().Score(&CandidateProfile{SectorPreference: "Finance"}, &Opportunity{}, DefaultWeights())
	assert.Equal(t, 0.0, b.SectorScore)
}

func TestScore_WeightedTotal(t *testing.T) {
	profile := &CandidateProfile{
		Skills:             []string{"Go"},
		SectorPreference:   "Technology",
		LocationPreference: "Mumbai",
	}
	opp := &Opportunity{
		RequiredSkills: []string{"Go", "Rust"},
		Sector:         "Technology",
		Location:       "Mumbai",
	}

	b := testScorer().Score(profile, opp, DefaultWeights())

	// 0.5*0.6 + 1*0.2 + 1*0.2 = 0.7
	assert.InDelta(t, 0.7, b.TotalScore, 0.001)
}

func TestScore_AllScoresInRange(t *testing.T) {
	profiles := []*CandidateProfile{
		{},
		{Skills: []string{"Go", "js"}, SectorPreference: "Tech", LocationPreference: "pune/delhi"},
		{Skills: []string{"C++"}, LocationPreference: "remote"},
	}
	opps := []*Opportunity{
		{},
		{RequiredSkills: []string{"cpp"}, Sector: "tech", Location: "Delhi"},
		{RequiredSkills: []string{"js", "ts", "go"}, Sector: "Finance", Location: "nowhereville", IsRemote: true},
	}

	for _, p := range profiles {
		for _, o := range opps {
			b := testScorer().Score(p, o, DefaultWeights())
			for name, v := range map[string]float64{
				"skill": b.SkillScore, "location": b.LocationScore,
				"sector": b.SectorScore, "total": b.TotalScore,
			} {
				assert.GreaterOrEqual(t, v, 0.0, "%s score below 0", name)
				assert.LessOrEqual(t, v, 1.0, "%s score above 1", name)
			}
		}
	}
}

func TestScore_RoundedToTwoDecimals(t *testing.T) {
	profile := &CandidateProfile{Skills: []string{"Go"}}
	opp := &Opportunity{RequiredSkills: []string{"Go", "Rust", "Zig"}}

	b := testScorer().Score(profile, opp, DefaultWeights())

	// 1/3 rounds to 0.33, total 0.33*0.6 = 0.198 rounds to 0.2
	assert.Equal(t, 0.33, b.SkillScore)
	assert.Equal(t, 0.2, b.TotalScore)
}
