package github

import "time"

// Repo is the subset of a GitHub repository listing used for counting.
type Repo struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	FullName  string    `json:"full_name"`
	Private   bool      `json:"private"`
	Fork      bool      `json:"fork"`
	Archived  bool      `json:"archived"`
	Language  string    `json:"language"`
	UpdatedAt time.Time `json:"updated_at"`
	Owner     Owner     `json:"owner"`
}

// Owner identifies a repository owner.
type Owner struct {
	Login string `json:"login"`
}

// Counted reports whether the repository contributes experience.
// Private repositories and forks are skipped.
func (r Repo) Counted() bool {
	return !r.Private && !r.Fork
}

// Languages maps a language name to its byte count, as returned by
// GET /repos/{owner}/{repo}/languages.
type Languages map[string]int64
