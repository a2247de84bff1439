package model

// Selection decides which pull requests a session tracks
type Selection struct {
	Author       string   `json:"author"`
	Repositories []string `json:"repositories"`
}

// SessionState is the persisted part of a session
type SessionState struct {
	LastRefresh NullTime             `json:"last_refresh"`
	PRs         map[string]TrackedPR `json:"prs"`
}
