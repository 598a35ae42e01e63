package devtools

import (
	"fmt"
	"strings"

	"leetui/internal/leetcode"
)

var mockTitles = []struct {
	title string
	diff  leetcode.Difficulty
}{
	{"Two Sum", leetcode.DifficultyEasy},
	{"Add Two Numbers", leetcode.DifficultyMedium},
	{"Longest Substring Without Repeating Characters", leetcode.DifficultyMedium},
	{"Median of Two Sorted Arrays", leetcode.DifficultyHard},
	{"Longest Palindromic Substring", leetcode.DifficultyMedium},
	{"Zigzag Conversion", leetcode.DifficultyMedium},
	{"Reverse Integer", leetcode.DifficultyMedium},
	{"String to Integer (atoi)", leetcode.DifficultyMedium},
	{"Palindrome Number", leetcode.DifficultyEasy},
	{"Regular Expression Matching", leetcode.DifficultyHard},
}

const mockCatalogue = 240

// MockProblems returns the page [skip, skip+limit) of a synthetic
// catalogue, filtered by a case-insensitive title match.
func MockProblems(search string, skip, limit int) []leetcode.Problem {
	var all []leetcode.Problem
	for i := 0; i < mockCatalogue; i++ {
		p := mockProblem(i)
		if search != "" && !strings.Contains(strings.ToLower(p.Title), strings.ToLower(search)) {
			continue
		}
		all = append(all, p)
	}
	if skip >= len(all) {
		return nil
	}
	return all[skip:min(len(all), skip+limit)]
}

func mockTotal(search string) int {
	if search == "" {
		return mockCatalogue
	}
	return len(MockProblems(search, 0, mockCatalogue))
}

func mockProblem(i int) leetcode.Problem {
	base := mockTitles[i%len(mockTitles)]
	title := base.title
	if round := i / len(mockTitles); round > 0 {
		title = fmt.Sprintf("%s %s", base.title, roman(round+1))
	}
	p := leetcode.Problem{
		ID:         fmt.Sprint(i + 1),
		Title:      title,
		TitleSlug:  strings.ToLower(strings.NewReplacer(" ", "-", "(", "", ")", "").Replace(title)),
		Difficulty: base.diff,
		AcRate:     35 + float64((i*37)%50),
		PaidOnly:   i%17 == 16,
	}
	switch i % 5 {
	case 0:
		p.Status = leetcode.StatusAccepted
	case 3:
		p.Status = leetcode.StatusAttempted
	}
	return p
}

func roman(n int) string {
	numerals := []string{"", "I", "II", "III", "IV", "V", "VI", "VII", "VIII", "IX", "X"}
	if n < len(numerals) {
		return numerals[n]
	}
	return fmt.Sprint(n)
}

func MockProfile(username string) leetcode.Profile {
	var p leetcode.Profile
	p.Username = username
	p.SubmitStats.AcSubmissionNum = []leetcode.DifficultyCount{
		{Difficulty: "All", Count: 212},
		{Difficulty: "Easy", Count: 101},
		{Difficulty: "Medium", Count: 89},
		{Difficulty: "Hard", Count: 22},
	}
	return p
}

func MockQuestion() leetcode.Question {
	return leetcode.Question{
		QuestionID: "1",
		FrontendID: "1",
		Title:      "Two Sum",
		TitleSlug:  "two-sum",
		Difficulty: leetcode.DifficultyEasy,
		Content: `<p>Given an array of integers <code>nums</code> and an integer <code>target</code>, ` +
			`return <em>indices of the two numbers such that they add up to <code>target</code></em>.</p>` +
			`<p><strong>Example 1:</strong></p><pre>Input: nums = [2,7,11,15], target = 9
Output: [0,1]</pre>` +
			`<p><strong>Constraints:</strong></p><ul><li><code>2 &lt;= nums.length &lt;= 10<sup>4</sup></code></li>` +
			`<li>Only one valid answer exists.</li></ul>`,
		Params:           []leetcode.Param{{Name: "nums", Type: "integer[]"}, {Name: "target", Type: "integer"}},
		ExampleTestcases: "[2,7,11,15]\n9\n[3,2,4]\n6\n[3,3]\n6",
		CodeSnippets: []leetcode.CodeSnippet{
			{Lang: "C++", LangSlug: "cpp", Code: "class Solution {\npublic:\n    vector<int> twoSum(vector<int>& nums, int target) {\n    }\n};"},
			{Lang: "Java", LangSlug: "java", Code: "class Solution {\n    public int[] twoSum(int[] nums, int target) {\n    }\n}"},
			{Lang: "Python3", LangSlug: "python3", Code: "class Solution:\n    def twoSum(self, nums: List[int], target: int) -> List[int]:\n        "},
			{Lang: "C", LangSlug: "c", Code: "int* twoSum(int* nums, int numsSize, int target, int* returnSize) {\n}"},
			{Lang: "Go", LangSlug: "golang", Code: "func twoSum(nums []int, target int) []int {\n}"},
		},
	}
}

// MockRun fails the first attempt on the last case and passes afterwards.
func MockRun(attempt int) leetcode.RunCheck {
	expected := []string{"[0,1]", "[1,2]", "[0,1]"}
	answer := []string{"[0,1]", "[1,2]", "[1,0]"}
	compare := "110"
	msg := "Wrong Answer"
	if attempt > 1 {
		answer = expected
		compare = "111"
		msg = "Accepted"
	}
	return leetcode.RunCheck{
		State:              leetcode.CheckSuccess,
		StatusMsg:          msg,
		RunSuccess:         true,
		CodeAnswer:         answer,
		ExpectedCodeAnswer: expected,
		CompareResult:      compare,
		CorrectAnswer:      attempt > 1,
		StatusRuntime:      "0 ms",
		StatusMemory:       "4.3 MB",
	}
}

func MockSubmission() leetcode.SubmissionCheck {
	correct, total := 63, 63
	runtime, memory := 97.4, 58.1
	return leetcode.SubmissionCheck{
		State:             leetcode.CheckSuccess,
		StatusMsg:         "Accepted",
		StatusID:          10,
		RunSuccess:        true,
		TotalCorrect:      &correct,
		TotalTestcases:    &total,
		StatusRuntime:     "3 ms",
		StatusMemory:      "4.2 MB",
		RuntimePercentile: &runtime,
		MemoryPercentile:  &memory,
	}
}
