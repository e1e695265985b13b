package parser

import (
	"path/filepath"
	"regexp"
)

var (
	// GNU make prints both quote styles depending on version:
	// make[1]: Entering directory '/path' and `/path'.
	enterDirPattern = regexp.MustCompile("^\\s*make(?:\\[\\d+\\])?: Entering directory ['\"`](.*)['\"`]")
	leaveDirPattern = regexp.MustCompile("^\\s*make(?:\\[\\d+\\])?: Leaving directory ['\"`](.*)['\"`]")

	// A recursive make invoked with an explicit directory change.
	makeChdirPattern = regexp.MustCompile(`^\s*make(?:\.exe)?(?:\[\d+\])?\b.*?\s-C\s+(\S+)`)

	// cd as the leading word of an already-split sub-command.
	cdPattern = regexp.MustCompile(`^cd\s+(\S+)`)

	// Autoconf probe chatter ("checking whether cc works... yes") is
	// discarded before any other classification so compiler names inside
	// configure output can't produce records.
	configureChatterPattern = regexp.MustCompile(`^\s*checking (?:whether|for|if|how) .*\.\.\.`)
)

// dirTracker maintains the working directory implied by a build trace.
// Entering/Leaving banners nest (push/pop); cd is a flat replace that
// does not restore on exit.
type dirTracker struct {
	wd    string
	stack []string
}

func newDirTracker(root string) *dirTracker {
	return &dirTracker{wd: root, stack: []string{root}}
}

// consume classifies directory-related lines. It reports true when the
// line was configure chatter, a directory announcement, or a make -C
// invocation; none of these produce records.
func (t *dirTracker) consume(line string) bool {
	if configureChatterPattern.MatchString(line) {
		return true
	}
	if m := enterDirPattern.FindStringSubmatch(line); m != nil {
		t.enter(t.resolve(m[1]))
		return true
	}
	if leaveDirPattern.MatchString(line) {
		t.leave()
		return true
	}
	if m := makeChdirPattern.FindStringSubmatch(line); m != nil {
		if dir := m[1]; dir != "." {
			t.enter(t.resolve(dir))
		}
		return true
	}
	return false
}

func (t *dirTracker) enter(dir string) {
	t.stack = append(t.stack, dir)
	t.wd = dir
}

// leave pops the most recent entry. Popping an empty stack is a no-op
// so a truncated or malformed trace cannot abort the parse.
func (t *dirTracker) leave() {
	if len(t.stack) == 0 {
		return
	}
	t.stack = t.stack[:len(t.stack)-1]
	if len(t.stack) > 0 {
		t.wd = t.stack[len(t.stack)-1]
	}
}

// cd replaces the working directory without touching the stack.
func (t *dirTracker) cd(path string) {
	t.wd = t.resolve(path)
}

func (t *dirTracker) resolve(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(t.wd, path)
}
