package progression

import "testing"

func mockRepo(name string, langs map[string]int64) Repository {
	return Repository{Name: name, FullName: "user/" + name, Languages: langs}
}

func sampleRepos() []Repository {
	return []Repository{
		mockRepo("repo1", map[string]int64{"TypeScript": 10000, "JavaScript": 5000, "Markdown": 1000}),
		mockRepo("repo2", map[string]int64{"Python": 20000, "Markdown": 500}),
		mockRepo("repo3", map[string]int64{"HTML": 2000, "CSS": 1000}),
	}
}

func TestTotalExperience(t *testing.T) {
	if got := TotalExperience(sampleRepos()); got != 39500 {
		t.Errorf("TotalExperience() = %d, want 39500", got)
	}
	if got := TotalExperience(nil); got != 0 {
		t.Errorf("TotalExperience(nil) = %d, want 0", got)
	}
	withZero := append(sampleRepos(), mockRepo("empty", map[string]int64{"Go": 0}), mockRepo("none", nil))
	if got := TotalExperience(withZero); got != 39500 {
		t.Errorf("TotalExperience() with zero entries = %d, want 39500", got)
	}
}

func TestTotalExperienceAdditive(t *testing.T) {
	repos := sampleRepos()
	a, b := repos[:1], repos[1:]
	if got, want := TotalExperience(repos), TotalExperience(a)+TotalExperience(b); got != want {
		t.Errorf("TotalExperience(a∪b) = %d, want %d", got, want)
	}
}

func TestAnalyze(t *testing.T) {
	got := Default().Analyze(sampleRepos())
	if got.TotalExperience != 39500 || got.Level != 4 || got.ExperienceToNextLevel != 1125 {
		t.Errorf("Analyze() = %+v", got)
	}
	if got.Title != "Aspiring Developer" {
		t.Errorf("Title = %q", got.Title)
	}

	empty := Default().Analyze(nil)
	if empty.Level != 1 || empty.ExperienceToNextLevel != 5000 || empty.Title != "Hello World Habitants" {
		t.Errorf("Analyze(nil) = %+v", empty)
	}
}

func TestLanguages(t *testing.T) {
	got := Languages(sampleRepos(), 0)
	wantOrder := []string{"Python", "TypeScript", "JavaScript", "HTML", "Markdown", "CSS"}
	if len(got) != len(wantOrder) {
		t.Fatalf("got %d languages, want %d", len(got), len(wantOrder))
	}
	for i, lang := range wantOrder {
		if got[i].Language != lang {
			t.Errorf("languages[%d] = %s, want %s", i, got[i].Language, lang)
		}
	}
	if got[4].Bytes != 1500 {
		t.Errorf("Markdown bytes = %d, want merged 1500", got[4].Bytes)
	}

	var sum float64
	for _, l := range got {
		sum += l.Share
	}
	if sum < 0.999 || sum > 1.001 {
		t.Errorf("shares sum to %v, want 1", sum)
	}
}

func TestLanguagesTopAndTies(t *testing.T) {
	repos := []Repository{mockRepo("r", map[string]int64{"Go": 10, "C": 10, "Zig": 5, "Nil": 0})}
	got := Languages(repos, 2)
	if len(got) != 2 {
		t.Fatalf("got %d languages, want 2", len(got))
	}
	if got[0].Language != "C" || got[1].Language != "Go" {
		t.Errorf("tie order = %s, %s; want C, Go", got[0].Language, got[1].Language)
	}
	if len(Languages(nil, 3)) != 0 {
		t.Error("Languages(nil) should be empty")
	}
}
