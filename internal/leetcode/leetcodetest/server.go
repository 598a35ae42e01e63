// Package leetcodetest serves a scripted copy of the LeetCode endpoints over
// httptest so clients and dispatchers can be exercised without the network.
package leetcodetest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"

	"leetui/internal/leetcode"
)

// Call is one request seen by the server.
type Call struct {
	Method string
	Path   string
	Cookie string
	CSRF   string
	Body   map[string]any
}

type Server struct {
	*httptest.Server

	mu         sync.Mutex
	user       leetcode.UserStatus
	profiles   map[string]leetcode.Profile
	daily      *leetcode.DailyChallenge
	problems   []leetcode.Problem
	questions  map[string]leetcode.Question
	run        leetcode.RunCheck
	submission leetcode.SubmissionCheck
	pending    int
	failures   map[string]int
	gqlErrors  []string
	calls      []Call
	polls      map[string]int
	nextID     int
}

func NewServer() *Server {
	s := &Server{
		profiles:  map[string]leetcode.Profile{},
		questions: map[string]leetcode.Question{},
		failures:  map[string]int{},
		polls:     map[string]int{},
		user:      leetcode.UserStatus{Username: "tester", IsSignedIn: true},
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/graphql", s.handleGraphQL)
	mux.HandleFunc("/problems/", s.handleProblem)
	mux.HandleFunc("/submissions/detail/", s.handleCheck)
	s.Server = httptest.NewServer(mux)
	return s
}

func (s *Server) SetUser(u leetcode.UserStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = u
}

func (s *Server) AddProfile(p leetcode.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[p.Username] = p
}

func (s *Server) SetDaily(d leetcode.DailyChallenge) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.daily = &d
}

func (s *Server) SetProblems(p []leetcode.Problem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.problems = append([]leetcode.Problem(nil), p...)
}

func (s *Server) AddQuestion(q leetcode.Question) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.questions[q.TitleSlug] = q
}

// SetRunResult sets the final interpret check and how many PENDING polls
// precede it.
func (s *Server) SetRunResult(c leetcode.RunCheck, pending int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.run = c
	s.pending = pending
}

func (s *Server) SetSubmissionResult(c leetcode.SubmissionCheck, pending int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submission = c
	s.pending = pending
}

// FailNext makes the next n requests whose path has the prefix answer 500.
func (s *Server) FailNext(pathPrefix string, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[pathPrefix] = n
}

// SetGraphQLErrors makes every GraphQL response carry these errors.
func (s *Server) SetGraphQLErrors(msgs ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gqlErrors = msgs
}

func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

func (s *Server) record(r *http.Request) (map[string]any, bool) {
	body := map[string]any{}
	if r.Body != nil {
		raw, _ := io.ReadAll(r.Body)
		if len(raw) > 0 {
			_ = json.Unmarshal(raw, &body)
		}
	}
	cookie := r.Header.Get("Cookie")
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, Call{
		Method: r.Method,
		Path:   r.URL.Path,
		Cookie: cookie,
		CSRF:   r.Header.Get("x-csrftoken"),
		Body:   body,
	})
	for prefix, n := range s.failures {
		if n > 0 && strings.HasPrefix(r.URL.Path, prefix) {
			s.failures[prefix] = n - 1
			return body, false
		}
	}
	return body, true
}

func (s *Server) handleGraphQL(w http.ResponseWriter, r *http.Request) {
	body, ok := s.record(r)
	if !ok {
		http.Error(w, "upstream unavailable", http.StatusInternalServerError)
		return
	}
	query, _ := body["query"].(string)
	vars, _ := body["variables"].(map[string]any)

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.gqlErrors) > 0 {
		errs := make([]map[string]string, 0, len(s.gqlErrors))
		for _, m := range s.gqlErrors {
			errs = append(errs, map[string]string{"message": m})
		}
		writeJSON(w, map[string]any{"data": nil, "errors": errs})
		return
	}

	var data any
	switch {
	case strings.Contains(query, "problemsetQuestionList"):
		data = map[string]any{"problemsetQuestionList": s.page(vars)}
	case strings.Contains(query, "activeDailyCodingChallengeQuestion"):
		data = map[string]any{"activeDailyCodingChallengeQuestion": s.daily}
	case strings.Contains(query, "matchedUser"):
		name, _ := vars["username"].(string)
		var p *leetcode.Profile
		if v, ok := s.profiles[name]; ok {
			p = &v
		}
		data = map[string]any{"matchedUser": p}
	case strings.Contains(query, "userStatus"):
		data = map[string]any{"userStatus": s.user}
	case strings.Contains(query, "question("):
		slug, _ := vars["titleSlug"].(string)
		var q *leetcode.Question
		if v, ok := s.questions[slug]; ok {
			q = &v
		}
		data = map[string]any{"question": q}
	default:
		http.Error(w, "unknown query", http.StatusBadRequest)
		return
	}
	writeJSON(w, map[string]any{"data": data})
}

func (s *Server) page(vars map[string]any) leetcode.ProblemList {
	skip := intVar(vars["skip"])
	limit := intVar(vars["limit"])
	search := ""
	if f, ok := vars["filters"].(map[string]any); ok {
		search, _ = f["searchKeywords"].(string)
	}
	matched := make([]leetcode.Problem, 0, len(s.problems))
	for _, p := range s.problems {
		if search == "" || strings.Contains(strings.ToLower(p.Title), strings.ToLower(search)) {
			matched = append(matched, p)
		}
	}
	out := leetcode.ProblemList{Total: len(matched), Questions: []leetcode.Problem{}}
	if skip < len(matched) {
		end := skip + limit
		if end > len(matched) || limit <= 0 {
			end = len(matched)
		}
		out.Questions = matched[skip:end]
	}
	return out
}

func (s *Server) handleProblem(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.record(r); !ok {
		http.Error(w, "upstream unavailable", http.StatusInternalServerError)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	switch {
	case strings.HasSuffix(r.URL.Path, "/interpret_solution/"):
		writeJSON(w, map[string]any{"interpret_id": fmt.Sprintf("run-%d", s.nextID)})
	case strings.HasSuffix(r.URL.Path, "/submit/"):
		writeJSON(w, map[string]any{"submission_id": 1000 + s.nextID})
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.record(r); !ok {
		http.Error(w, "upstream unavailable", http.StatusInternalServerError)
		return
	}
	id := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/submissions/detail/"), "/check/")
	s.mu.Lock()
	defer s.mu.Unlock()
	s.polls[id]++
	if s.polls[id] <= s.pending {
		writeJSON(w, map[string]any{"state": leetcode.CheckPending})
		return
	}
	if strings.HasPrefix(id, "run-") {
		c := s.run
		c.State = leetcode.CheckSuccess
		writeJSON(w, c)
		return
	}
	c := s.submission
	c.State = leetcode.CheckSuccess
	writeJSON(w, c)
}

func intVar(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case string:
		i, _ := strconv.Atoi(n)
		return i
	}
	return 0
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
