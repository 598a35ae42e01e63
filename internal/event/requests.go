package event

// Request is work the reducer hands to the Dispatcher. Each request yields
// exactly one event: its result or a NetworkError.
type Request interface {
	Op() string
}

type FetchStatus struct{}

type FetchProfile struct {
	Username string
}

type FetchProblems struct {
	Token  uint64
	Skip   int
	Limit  int
	Search string
}

type FetchDaily struct{}

type FetchQuestion struct {
	Token uint64
	Slug  string
}

// OpenWorkspace creates the problem directory, renders Content (HTML) to
// README.md, starts watching it and lists its files.
type OpenWorkspace struct {
	Slug    string
	Content string
}

type ListFiles struct {
	Slug string
}

type CreateFile struct {
	Slug     string
	Name     string
	Contents string
}

// OpenFile opens the description and the named file in the editor.
type OpenFile struct {
	Slug string
	Name string
}

type RunTests struct {
	Token      uint64
	Slug       string
	QuestionID string
	Lang       string
	File       string
	Input      string
}

type Submit struct {
	Token      uint64
	Slug       string
	QuestionID string
	Lang       string
	File       string
}

func (FetchStatus) Op() string   { return "status" }
func (FetchProfile) Op() string  { return "profile" }
func (FetchProblems) Op() string { return "problems" }
func (FetchDaily) Op() string    { return "daily" }
func (FetchQuestion) Op() string { return "question" }
func (OpenWorkspace) Op() string { return "workspace" }
func (ListFiles) Op() string     { return "list_files" }
func (CreateFile) Op() string    { return "create_file" }
func (OpenFile) Op() string      { return "open_file" }
func (RunTests) Op() string      { return "run_tests" }
func (Submit) Op() string        { return "submit" }
