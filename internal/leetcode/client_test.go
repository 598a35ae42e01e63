package leetcode_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"leetui/internal/leetcode"
	"leetui/internal/leetcode/leetcodetest"
)

func newClient(t *testing.T, srv *leetcodetest.Server) *leetcode.Client {
	t.Helper()
	return leetcode.NewClient("sess", "tok",
		leetcode.WithBaseURL(srv.URL),
		leetcode.WithHTTPClient(srv.Client()),
		leetcode.WithPolling(time.Millisecond, 10),
	)
}

func problems(n int) []leetcode.Problem {
	out := make([]leetcode.Problem, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, leetcode.Problem{
			ID:         fmt.Sprint(i),
			Title:      fmt.Sprintf("Problem %d", i),
			TitleSlug:  fmt.Sprintf("problem-%d", i),
			Difficulty: leetcode.DifficultyEasy,
		})
	}
	return out
}

func TestProblemsPagesAndSendsCredentials(t *testing.T) {
	srv := leetcodetest.NewServer()
	defer srv.Close()
	srv.SetProblems(problems(120))

	c := newClient(t, srv)
	list, err := c.Problems(context.Background(), 100, 50, "")
	if err != nil {
		t.Fatal(err)
	}
	if list.Total != 120 || len(list.Questions) != 20 {
		t.Fatalf("expected 20 of 120, got %d of %d", len(list.Questions), list.Total)
	}
	if list.Questions[0].ID != "101" {
		t.Fatalf("expected first id 101, got %q", list.Questions[0].ID)
	}

	calls := srv.Calls()
	if len(calls) != 1 {
		t.Fatalf("expected one call, got %d", len(calls))
	}
	if calls[0].Cookie != "LEETCODE_SESSION=sess; csrftoken=tok" {
		t.Fatalf("unexpected cookie %q", calls[0].Cookie)
	}
	if calls[0].CSRF != "tok" {
		t.Fatalf("unexpected csrf header %q", calls[0].CSRF)
	}
	vars := calls[0].Body["variables"].(map[string]any)
	if diff := cmp.Diff(map[string]any{}, vars["filters"]); diff != "" {
		t.Fatalf("empty search should send empty filters (-want +got):\n%s", diff)
	}
}

func TestProblemsSearchFilter(t *testing.T) {
	srv := leetcodetest.NewServer()
	defer srv.Close()
	srv.SetProblems([]leetcode.Problem{
		{ID: "1", Title: "Two Sum", TitleSlug: "two-sum"},
		{ID: "2", Title: "Add Two Numbers", TitleSlug: "add-two-numbers"},
		{ID: "3", Title: "Longest Substring", TitleSlug: "longest-substring"},
	})

	list, err := newClient(t, srv).Problems(context.Background(), 0, 50, "  two ")
	if err != nil {
		t.Fatal(err)
	}
	if len(list.Questions) != 2 {
		t.Fatalf("expected 2 matches, got %#v", list.Questions)
	}
	vars := srv.Calls()[0].Body["variables"].(map[string]any)
	if got := vars["filters"].(map[string]any)["searchKeywords"]; got != "two" {
		t.Fatalf("expected trimmed keywords, got %v", got)
	}
}

func TestGraphQLErrorsAreJoined(t *testing.T) {
	srv := leetcodetest.NewServer()
	defer srv.Close()
	srv.SetGraphQLErrors("first", "second")

	_, err := newClient(t, srv).Status(context.Background())
	var gqlErr *leetcode.GraphQLError
	if !errors.As(err, &gqlErr) {
		t.Fatalf("expected GraphQLError, got %v", err)
	}
	if gqlErr.Error() != "graphql error: first - second" {
		t.Fatalf("unexpected message %q", gqlErr.Error())
	}
}

func TestHTTPFailureIsAPIError(t *testing.T) {
	srv := leetcodetest.NewServer()
	defer srv.Close()
	srv.FailNext("/graphql", 1)

	_, err := newClient(t, srv).Daily(context.Background())
	var apiErr *leetcode.APIError
	if !errors.As(err, &apiErr) || apiErr.Status != 500 {
		t.Fatalf("expected 500 APIError, got %v", err)
	}
}

func TestQuestionDecodesMetadata(t *testing.T) {
	srv := leetcodetest.NewServer()
	defer srv.Close()
	srv.AddQuestion(leetcode.Question{
		QuestionID:       "1",
		FrontendID:       "1",
		Title:            "Two Sum",
		TitleSlug:        "two-sum",
		MetaData:         `{"name":"twoSum","params":[{"name":"nums","type":"integer[]"},{"name":"target","type":"integer"}],"return":{"type":"integer[]"}}`,
		ExampleTestcases: "[2,7,11,15]\n9",
		CodeSnippets: []leetcode.CodeSnippet{
			{Lang: "Go", LangSlug: "golang", Code: "func twoSum() {}"},
		},
	})

	c := newClient(t, srv)
	q, err := c.Question(context.Background(), "two-sum")
	if err != nil {
		t.Fatal(err)
	}
	want := []leetcode.Param{{Name: "nums", Type: "integer[]"}, {Name: "target", Type: "integer"}}
	if diff := cmp.Diff(want, q.Params); diff != "" {
		t.Fatalf("params mismatch (-want +got):\n%s", diff)
	}
	if s, ok := q.Snippet("golang"); !ok || s.Code != "func twoSum() {}" {
		t.Fatalf("expected go snippet, got %#v", s)
	}

	if _, err := c.Question(context.Background(), "missing"); !errors.Is(err, leetcode.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRunTestsPollsUntilSuccess(t *testing.T) {
	srv := leetcodetest.NewServer()
	defer srv.Close()
	srv.SetRunResult(leetcode.RunCheck{
		StatusMsg:          "Accepted",
		RunSuccess:         true,
		CodeAnswer:         []string{"[0,1]"},
		ExpectedCodeAnswer: []string{"[0,1]"},
		CorrectAnswer:      true,
	}, 2)

	check, err := newClient(t, srv).RunTests(context.Background(), "two-sum", "1", "golang", "code", "[2,7]\n9")
	if err != nil {
		t.Fatal(err)
	}
	if check.State != leetcode.CheckSuccess || !check.CorrectAnswer {
		t.Fatalf("unexpected check %#v", check)
	}

	var polls int
	for _, c := range srv.Calls() {
		if strings.HasSuffix(c.Path, "/check/") {
			polls++
		}
	}
	if polls != 3 {
		t.Fatalf("expected 3 polls, got %d", polls)
	}
	first := srv.Calls()[0]
	if first.Path != "/problems/two-sum/interpret_solution/" || first.Body["data_input"] != "[2,7]\n9" {
		t.Fatalf("unexpected interpret call %#v", first)
	}
}

func TestSubmitTimesOut(t *testing.T) {
	srv := leetcodetest.NewServer()
	defer srv.Close()
	srv.SetSubmissionResult(leetcode.SubmissionCheck{StatusMsg: "Accepted"}, 100)

	_, err := newClient(t, srv).Submit(context.Background(), "two-sum", "1", "golang", "code")
	if !errors.Is(err, leetcode.ErrCheckTimeout) {
		t.Fatalf("expected ErrCheckTimeout, got %v", err)
	}
}

func TestProfileSolvedCounts(t *testing.T) {
	srv := leetcodetest.NewServer()
	defer srv.Close()
	var p leetcode.Profile
	p.Username = "tester"
	p.SubmitStats.AcSubmissionNum = []leetcode.DifficultyCount{
		{Difficulty: "All", Count: 12},
		{Difficulty: "Easy", Count: 7},
	}
	srv.AddProfile(p)

	got, err := newClient(t, srv).Profile(context.Background(), "tester")
	if err != nil {
		t.Fatal(err)
	}
	if got.Solved("all") != 12 || got.Solved("Easy") != 7 || got.Solved("Hard") != 0 {
		t.Fatalf("unexpected solved counts %#v", got.SubmitStats)
	}
}
