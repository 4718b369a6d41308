package github

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/huangsam/sizewatch/internal/contract"
	"github.com/huangsam/sizewatch/schema"
)

// Signature is appended to every comment so later runs can find it.
const Signature = `<a href="https://github.com/huangsam/sizewatch"><sub>sizewatch</sub></a>`

// CheckRunName is the name of the check run created in check mode.
const CheckRunName = "Compressed Size"

// markerPrefix starts the hidden marker that keys a comment.
const markerPrefix = "<!-- sizewatch::"

// Reporter publishes reports as a pull request comment or a check run.
type Reporter struct {
	client     *Client
	PRNumber   int
	HeadSHA    string
	CommentKey string
	UseCheck   bool
	Out        io.Writer // Receives the report when publishing is not permitted
}

var _ contract.Reporter = &Reporter{} // Compile-time check

// NewReporter builds a Reporter from the validated configuration and the
// event payload of the current workflow run.
func NewReporter(cfg *contract.Config) (*Reporter, error) {
	client, err := NewClient(cfg.GitHubAPIURL, cfg.RepoToken, cfg.GitHubRepository)
	if err != nil {
		return nil, err
	}
	r := &Reporter{
		client:     client,
		CommentKey: cfg.CommentKey,
		UseCheck:   cfg.UseCheck,
		Out:        os.Stdout,
	}
	if cfg.EventPath != "" {
		event, err := ReadEvent(cfg.EventPath)
		if err != nil {
			return nil, err
		}
		r.PRNumber = event.PRNumber()
		r.HeadSHA = event.HeadSHA()
	}
	return r, nil
}

// Publish writes report to GitHub. A 403 from the API is downgraded to a
// warning and the report is printed instead.
func (r *Reporter) Publish(ctx context.Context, report string, summary schema.DiffSummary) error {
	var err error
	if r.UseCheck {
		err = r.publishCheck(ctx, report, summary)
	} else {
		err = r.publishComment(ctx, report)
	}
	if IsForbidden(err) {
		contract.LogWarn("Unable to write to the pull request, the token may lack write permission", err)
		_, _ = fmt.Fprintln(r.Out, report)
		return nil
	}
	return err
}

// publishComment updates the previous sizewatch comment or creates a new one.
func (r *Reporter) publishComment(ctx context.Context, report string) error {
	if r.PRNumber == 0 {
		contract.LogWarn("Skipping comment", errors.New("not running for a pull request"))
		return nil
	}
	body := CommentBody(report, r.CommentKey)

	comments, err := r.client.ListIssueComments(ctx, r.PRNumber)
	if err != nil {
		return fmt.Errorf("failed to list comments: %w", err)
	}
	if existing := FindComment(comments, r.CommentKey); existing != nil {
		if _, err := r.client.UpdateIssueComment(ctx, existing.ID, body); err != nil {
			return fmt.Errorf("failed to update comment %d: %w", existing.ID, err)
		}
		return nil
	}
	if _, err := r.client.CreateIssueComment(ctx, r.PRNumber, body); err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

// publishCheck creates a completed check run on the head commit.
func (r *Reporter) publishCheck(ctx context.Context, report string, summary schema.DiffSummary) error {
	if r.HeadSHA == "" {
		return errors.New("check runs need the pull request head commit")
	}
	run := CheckRun{
		Name:        CheckName(r.CommentKey),
		HeadSHA:     r.HeadSHA,
		Status:      "completed",
		Conclusion:  "success",
		CompletedAt: time.Now().UTC().Format(time.RFC3339),
		Output: CheckRunOutput{
			Title:   "Size Change: " + summary.DeltaText,
			Summary: report,
		},
	}
	if _, err := r.client.CreateCheckRun(ctx, run); err != nil {
		return fmt.Errorf("failed to create check run: %w", err)
	}
	return nil
}

// Marker returns the hidden marker for a comment key, or "" for no key.
func Marker(key string) string {
	if key == "" {
		return ""
	}
	return markerPrefix + key + " -->"
}

// CommentBody appends the signature and the key marker to report.
func CommentBody(report, key string) string {
	body := report + "\n\n" + Signature
	if marker := Marker(key); marker != "" {
		body += "\n" + marker
	}
	return body
}

// FindComment returns the first comment written by sizewatch for key.
// Unkeyed runs only match comments without a marker.
func FindComment(comments []Comment, key string) *Comment {
	marker := Marker(key)
	for i := range comments {
		body := comments[i].Body
		if !strings.Contains(body, Signature) {
			continue
		}
		if marker == "" && !strings.Contains(body, markerPrefix) {
			return &comments[i]
		}
		if marker != "" && strings.Contains(body, marker) {
			return &comments[i]
		}
	}
	return nil
}

// CheckName returns the check run name, suffixed with the key when set.
func CheckName(key string) string {
	if key == "" {
		return CheckRunName
	}
	return CheckRunName + " (" + key + ")"
}
