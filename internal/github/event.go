package github

import (
	"encoding/json"
	"fmt"
	"os"
)

// Event is the subset of a GitHub Actions event payload sizewatch reads.
type Event struct {
	Number      int          `json:"number"`
	PullRequest *PullRequest `json:"pull_request"`
}

// PullRequest holds the pull request fields of an event payload.
type PullRequest struct {
	Number int    `json:"number"`
	Base   GitRef `json:"base"`
	Head   GitRef `json:"head"`
}

// GitRef identifies one side of a pull request.
type GitRef struct {
	Ref string `json:"ref"`
	SHA string `json:"sha"`
}

// ReadEvent parses the event payload at path.
func ReadEvent(path string) (*Event, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read event payload: %w", err)
	}
	var event Event
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, fmt.Errorf("failed to parse event payload %s: %w", path, err)
	}
	return &event, nil
}

// PRNumber returns the pull request number, or 0 when the event has none.
func (e *Event) PRNumber() int {
	if e.PullRequest != nil && e.PullRequest.Number != 0 {
		return e.PullRequest.Number
	}
	return e.Number
}

// BaseSHA returns the base commit of the pull request, or "" when the event has none.
func (e *Event) BaseSHA() string {
	if e.PullRequest == nil {
		return ""
	}
	return e.PullRequest.Base.SHA
}

// HeadSHA returns the head commit of the pull request, or "" when the event has none.
func (e *Event) HeadSHA() string {
	if e.PullRequest == nil {
		return ""
	}
	return e.PullRequest.Head.SHA
}
