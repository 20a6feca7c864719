package commit

import (
	"fmt"
	"regexp"
	"strconv"
)

// issuePatterns are tried in order; the first one that matches wins.
var issuePatterns = []*regexp.Regexp{
	// merge commits: "Merge pull request #12 from ann/fix"
	regexp.MustCompile(`(?im)^merge pull request #(\d+)`),
	// squash merges: "Fix bug (#12)"
	regexp.MustCompile(`(?m)\(#(\d+)\)$`),
}

// IssueNumber extracts the number of the issue or pull request a commit
// message refers to.
func IssueNumber(message string) (int, bool) {
	for _, re := range issuePatterns {
		m := re.FindStringSubmatch(message)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		return n, true
	}
	return 0, false
}

// PatternError is returned when an exclude pattern fails to compile.
type PatternError struct {
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("commit: invalid exclude pattern %q: %v", e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error {
	return e.Err
}

// CompileExcludePattern compiles pattern. An empty pattern excludes nothing
// and returns a nil regexp.
func CompileExcludePattern(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, &PatternError{Pattern: pattern, Err: err}
	}
	return re, nil
}
