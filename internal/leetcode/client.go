package leetcode

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "https://leetcode.com"
	userAgent      = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/121.0.0.0 Safari/537.36"
)

var (
	//go:embed queries/status.graphql
	statusQuery string
	//go:embed queries/profile.graphql
	profileQuery string
	//go:embed queries/daily.graphql
	dailyQuery string
	//go:embed queries/problems.graphql
	problemsQuery string
	//go:embed queries/question.graphql
	questionQuery string
)

// Client talks to the LeetCode GraphQL and judge endpoints using a
// pre-formed session cookie and csrf token.
type Client struct {
	baseURL      string
	session      string
	csrf         string
	httpClient   *http.Client
	pollInterval time.Duration
	maxPolls     int
}

// Option configures the client
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the per-request timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithBaseURL points the client at another host (tests, mirrors).
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithPolling controls how judge results are awaited.
func WithPolling(interval time.Duration, maxPolls int) Option {
	return func(c *Client) {
		c.pollInterval = interval
		c.maxPolls = maxPolls
	}
}

func NewClient(session, csrf string, opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		session: session,
		csrf:    csrf,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		pollInterval: time.Second,
		maxPolls:     60,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Status(ctx context.Context) (UserStatus, error) {
	var data struct {
		UserStatus UserStatus `json:"userStatus"`
	}
	if err := c.graphql(ctx, statusQuery, map[string]any{}, &data); err != nil {
		return UserStatus{}, err
	}
	return data.UserStatus, nil
}

func (c *Client) Profile(ctx context.Context, username string) (Profile, error) {
	var data struct {
		MatchedUser *Profile `json:"matchedUser"`
	}
	if err := c.graphql(ctx, profileQuery, map[string]any{"username": username}, &data); err != nil {
		return Profile{}, err
	}
	if data.MatchedUser == nil {
		return Profile{}, fmt.Errorf("user %q: %w", username, ErrNotFound)
	}
	return *data.MatchedUser, nil
}

func (c *Client) Daily(ctx context.Context) (DailyChallenge, error) {
	var data struct {
		Daily *DailyChallenge `json:"activeDailyCodingChallengeQuestion"`
	}
	if err := c.graphql(ctx, dailyQuery, map[string]any{}, &data); err != nil {
		return DailyChallenge{}, err
	}
	if data.Daily == nil {
		return DailyChallenge{}, fmt.Errorf("daily challenge: %w", ErrNotFound)
	}
	return *data.Daily, nil
}

// Problems lists a page of the catalogue. An empty search means no filter.
func (c *Client) Problems(ctx context.Context, skip, limit int, search string) (ProblemList, error) {
	filters := map[string]any{}
	if s := strings.TrimSpace(search); s != "" {
		filters["searchKeywords"] = s
	}
	vars := map[string]any{
		"categorySlug": "",
		"skip":         skip,
		"limit":        limit,
		"filters":      filters,
	}
	var data struct {
		List ProblemList `json:"problemsetQuestionList"`
	}
	if err := c.graphql(ctx, problemsQuery, vars, &data); err != nil {
		return ProblemList{}, err
	}
	return data.List, nil
}

func (c *Client) Question(ctx context.Context, slug string) (Question, error) {
	var data struct {
		Question *Question `json:"question"`
	}
	if err := c.graphql(ctx, questionQuery, map[string]any{"titleSlug": slug}, &data); err != nil {
		return Question{}, err
	}
	if data.Question == nil {
		return Question{}, fmt.Errorf("question %s: %w", slug, ErrNotFound)
	}
	q := *data.Question
	if err := q.decodeMeta(); err != nil {
		return Question{}, err
	}
	return q, nil
}

// RunTests starts an interpret run and waits for the judge to finish.
func (c *Client) RunTests(ctx context.Context, slug, questionID, lang, code, input string) (RunCheck, error) {
	body := map[string]any{
		"lang":        lang,
		"question_id": questionID,
		"typed_code":  code,
		"data_input":  input,
	}
	var started struct {
		InterpretID string `json:"interpret_id"`
	}
	if err := c.do(ctx, http.MethodPost, "/problems/"+slug+"/interpret_solution/", body, &started); err != nil {
		return RunCheck{}, err
	}
	if started.InterpretID == "" {
		return RunCheck{}, fmt.Errorf("interpret %s: empty interpret id", slug)
	}

	var check RunCheck
	err := c.poll(ctx, started.InterpretID, func(raw []byte) (bool, error) {
		check = RunCheck{}
		if err := json.Unmarshal(raw, &check); err != nil {
			return false, fmt.Errorf("decode run check: %w", err)
		}
		return check.State == CheckSuccess, nil
	})
	return check, err
}

// Submit submits a solution and waits for the verdict.
func (c *Client) Submit(ctx context.Context, slug, questionID, lang, code string) (SubmissionCheck, error) {
	body := map[string]any{
		"lang":        lang,
		"question_id": questionID,
		"typed_code":  code,
	}
	var started struct {
		SubmissionID int64 `json:"submission_id"`
	}
	if err := c.do(ctx, http.MethodPost, "/problems/"+slug+"/submit/", body, &started); err != nil {
		return SubmissionCheck{}, err
	}
	if started.SubmissionID == 0 {
		return SubmissionCheck{}, fmt.Errorf("submit %s: empty submission id", slug)
	}

	var check SubmissionCheck
	err := c.poll(ctx, strconv.FormatInt(started.SubmissionID, 10), func(raw []byte) (bool, error) {
		check = SubmissionCheck{}
		if err := json.Unmarshal(raw, &check); err != nil {
			return false, fmt.Errorf("decode submission check: %w", err)
		}
		return check.State == CheckSuccess, nil
	})
	return check, err
}

func (c *Client) poll(ctx context.Context, id string, done func([]byte) (bool, error)) error {
	path := "/submissions/detail/" + id + "/check/"
	for i := 0; i < c.maxPolls; i++ {
		var raw json.RawMessage
		if err := c.do(ctx, http.MethodGet, path, nil, &raw); err != nil {
			return err
		}
		finished, err := done(raw)
		if err != nil {
			return err
		}
		if finished {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.pollInterval):
		}
	}
	return fmt.Errorf("check %s: %w", id, ErrCheckTimeout)
}

type gqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func (c *Client) graphql(ctx context.Context, query string, variables map[string]any, out any) error {
	var resp gqlResponse
	body := map[string]any{"query": query, "variables": variables}
	if err := c.do(ctx, http.MethodPost, "/graphql", body, &resp); err != nil {
		return err
	}
	if len(resp.Errors) > 0 {
		msgs := make([]string, 0, len(resp.Errors))
		for _, e := range resp.Errors {
			msgs = append(msgs, e.Message)
		}
		return &GraphQLError{Messages: msgs}
	}
	if len(resp.Data) == 0 || string(resp.Data) == "null" {
		return fmt.Errorf("graphql: no data returned")
	}
	if err := json.Unmarshal(resp.Data, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Referer", c.baseURL)
	req.Header.Set("x-csrftoken", c.csrf)
	req.Header.Set("Cookie", fmt.Sprintf("LEETCODE_SESSION=%s; csrftoken=%s", c.session, c.csrf))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{Status: resp.StatusCode, Body: string(raw)}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}
