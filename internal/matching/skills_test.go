package matching

import (
	"math"
	"strings"
	"testing"
)

func TestNewSkillSet(t *testing.T) {
	t.Parallel()

	set := NewSkillSet(" Python", "SQL", "", "python ", "  ", "Spark")
	if set.Len() != 3 {
		t.Fatalf("expected 3 skills, got %d (%v)", set.Len(), set.Items())
	}
	if got := strings.Join(set.Items(), ","); got != "python,spark,sql" {
		t.Fatalf("unexpected items: %s", got)
	}
	if !set.Contains("PYTHON") {
		t.Fatalf("expected case-insensitive membership")
	}
	if set.Contains("go") {
		t.Fatalf("did not expect go in the set")
	}

	var empty SkillSet
	if empty.Len() != 0 || empty.Contains("") {
		t.Fatalf("expected zero value to be an empty set")
	}
}

func TestSkillStrategies(t *testing.T) {
	t.Parallel()

	job := &JobPosting{
		Skills:      NewSkillSet("python", "rest api", "docker"),
		Description: "We build a REST API in Python. Docker is a plus.",
	}

	tests := []struct {
		name     string
		strategy string
		skills   SkillSet
		job      *JobPosting
		want     float64
		wantOK   bool
	}{
		{name: "overlap partial", strategy: StrategyOverlap, skills: NewSkillSet("python", "go"), job: job, want: 1.0 / 3, wantOK: true},
		{name: "overlap empty job", strategy: StrategyOverlap, skills: NewSkillSet("python"), job: &JobPosting{}, wantOK: false},
		{name: "overlap empty candidate", strategy: StrategyOverlap, skills: SkillSet{}, job: job, want: 0, wantOK: true},
		{name: "containment phrases", strategy: StrategyContainment, skills: NewSkillSet("rest api", "python", "go", "kotlin"), job: job, want: 0.5, wantOK: true},
		{name: "containment needs whole words", strategy: StrategyContainment, skills: NewSkillSet("go"), job: &JobPosting{Description: "Django and Mongo"}, want: 0, wantOK: true},
		{name: "containment empty description", strategy: StrategyContainment, skills: NewSkillSet("go"), job: &JobPosting{Skills: NewSkillSet("go")}, wantOK: false},
		{name: "tfidf disjoint", strategy: StrategyTFIDF, skills: NewSkillSet("kotlin"), job: job, want: 0, wantOK: true},
		{name: "tfidf identical", strategy: StrategyTFIDF, skills: NewSkillSet("go"), job: &JobPosting{Description: "Go"}, want: 1, wantOK: true},
		{name: "tfidf empty job", strategy: StrategyTFIDF, skills: NewSkillSet("go"), job: &JobPosting{}, wantOK: false},
		{name: "tfidf one-letter skill", strategy: StrategyTFIDF, skills: NewSkillSet("r"), job: &JobPosting{Skills: NewSkillSet("R")}, want: 1, wantOK: true},
		{name: "tfidf one-letter skills with others", strategy: StrategyTFIDF, skills: NewSkillSet("c", "go"), job: &JobPosting{Skills: NewSkillSet("C", "Go")}, want: 1, wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			strategy, err := NewSkillStrategy(tt.strategy)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got, ok := strategy.Similarity(tt.skills, tt.job)
			if ok != tt.wantOK {
				t.Fatalf("expected ok=%v, got %v", tt.wantOK, ok)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestTFIDFPartialOverlap(t *testing.T) {
	t.Parallel()

	strategy, _ := NewSkillStrategy(StrategyTFIDF)
	job := &JobPosting{Description: "python spark airflow"}

	one, _ := strategy.Similarity(NewSkillSet("python"), job)
	two, _ := strategy.Similarity(NewSkillSet("python", "spark"), job)
	if one <= 0 || one >= 1 {
		t.Fatalf("expected a partial similarity, got %v", one)
	}
	if two <= one {
		t.Fatalf("expected more shared terms to score higher: %v <= %v", two, one)
	}
}

func TestNewSkillStrategyUnknown(t *testing.T) {
	t.Parallel()

	if _, err := NewSkillStrategy("bm25"); err == nil {
		t.Fatalf("expected error for unknown strategy")
	}
}

func TestDimensionsConfig(t *testing.T) {
	t.Parallel()

	dims, err := Dimensions(&Config{Weights: map[string]float64{DimensionTitle: 3, DimensionTravel: 0}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dims) != len(DefaultWeights)-1 {
		t.Fatalf("expected travel to be disabled, got %d dimensions", len(dims))
	}
	if dims[0].ID != DimensionTitle || dims[0].Weight != 3 {
		t.Fatalf("unexpected first dimension: %+v", dims[0])
	}
	for _, d := range dims {
		if d.ID == DimensionTravel {
			t.Fatalf("travel should not be active")
		}
	}

	statuses := Describe(dims)
	if statuses[0].Weight != "3" || statuses[0].Method == "" {
		t.Fatalf("unexpected status: %+v", statuses[0])
	}

	bad := []*Config{
		{Weights: map[string]float64{"salary": 1}},
		{Weights: map[string]float64{DimensionArea: -1}},
		{Weights: map[string]float64{DimensionArea: math.NaN()}},
		{SkillsStrategy: "magic"},
		{TextStrategy: "magic"},
		{EmptySkills: "ignore"},
	}
	for i, cfg := range bad {
		if _, err := Dimensions(cfg); err == nil {
			t.Fatalf("config %d: expected error", i)
		}
	}
}
