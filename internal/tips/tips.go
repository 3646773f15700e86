// Package tips loads the coding tip list and picks one tip per day.
package tips

import (
	"bufio"
	"crypto/sha256"
	"encoding/binary"
	"os"
	"strings"
	"time"

	"dailytip/internal/logger"
)

var log = logger.With("tips")

// Load reads a newline-delimited tips file. Blank lines and lines starting
// with '#' are skipped. A missing file yields an empty list, not an error.
func Load(path string) []string {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var tips []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		tip := strings.TrimSpace(scanner.Text())
		if tip == "" || strings.HasPrefix(tip, "#") {
			continue
		}
		tips = append(tips, tip)
	}
	if err := scanner.Err(); err != nil {
		log.Warn("error reading tips file", "path", path, "error", err)
	}
	return tips
}

// LoadOrDefault returns the tips from path, or the built-in list when the
// file is missing or empty.
func LoadOrDefault(path string) []string {
	if tips := Load(path); len(tips) > 0 {
		return tips
	}
	return Defaults()
}

// Index maps a calendar date to a stable position in a list of the given
// size: SHA-256 over the ISO date string, first 8 bytes big-endian, mod
// total. The digest must stay SHA-256 so the same day picks the same tip
// everywhere this runs. total <= 0 returns 0; callers must not index an
// empty list.
func Index(total int, date time.Time) int {
	if total <= 0 {
		return 0
	}
	digest := sha256.Sum256([]byte(date.Format("2006-01-02")))
	value := binary.BigEndian.Uint64(digest[:8])
	return int(value % uint64(total))
}

// Defaults is the built-in tip list used when no tips file is available.
func Defaults() []string {
	return []string{
		"Write clear, descriptive variable and function names. Readers > cleverness.",
		"Prefer small, focused functions. One responsibility per function.",
		"Fail fast: validate inputs early and return on error conditions.",
		"Write tests for edge cases first. They define behavior.",
		"Avoid premature optimization. Make it work, then make it fast.",
		"Use version control branches for each change; keep commits atomic.",
		"Document non-obvious decisions in code comments or ADRs.",
		"Log context, not noise. Include identifiers that help debugging.",
		"Handle errors explicitly. Never swallow exceptions silently.",
		"Prefer composition over inheritance to reduce coupling.",
		"Keep dependencies up to date; pin versions for reproducibility.",
		"Automate formatting and linting to keep diffs clean.",
		"Make data structures immutable unless mutation is required.",
		"Name booleans with positive intent (isEnabled, hasAccess).",
		"Review diffs before pushing; consider readability and design.",
		"Prefer pure functions; minimize shared state.",
		"Use feature flags to roll out risky changes safely.",
		"Add metrics around hot paths; measure before optimizing.",
		"Design APIs for ergonomics and clear failure modes.",
		"Write idempotent jobs so retries are safe.",
		"Paginate APIs; never assume small datasets.",
		"Cache wisely: define TTLs and invalidation strategies.",
		"Validate user input on both client and server.",
		"Avoid magic numbers; extract constants with names.",
		"Prefer UTC for timestamps and store ISO 8601 strings.",
		"Separate config from code; use environment variables.",
		"Keep functions under ~20-30 lines for readability.",
		"Write meaningful commit messages: what and why.",
		"Use guards to reduce nesting and improve clarity.",
		"Prefer explicit over implicit; be obvious in code.",
		"Add type hints where they add clarity and safety.",
		"Binary search your bugs: bisect changes to find regressions.",
		"Use code reviews to learn and teach, not just to approve.",
		"Write integration tests for critical flows end-to-end.",
		"Avoid global mutable state; pass context explicitly.",
		"Structure modules by domain, not by technical layers only.",
		"Monitor error budgets and prioritize reliability work.",
		"Prefer dependency injection over hard-coded singletons.",
		"Make CLI tools idempotent and scriptable (exit codes, flags).",
		"Document APIs with examples; tests can serve as docs.",
	}
}
