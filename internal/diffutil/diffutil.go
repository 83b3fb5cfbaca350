// Package diffutil compares action binding lists for reload reports.
package diffutil

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// DiffLine is one binding line of a comparison.
type DiffLine struct {
	Type        diffmatchpatch.Operation // DiffEqual, DiffInsert, or DiffDelete
	OrigLineNum int                      // Original line number (0 if inserted)
	ModLineNum  int                      // Modified line number (0 if deleted)
	Text        string
}

// Summary counts the lines of a comparison by type.
type Summary struct {
	Added     int
	Removed   int
	Unchanged int
}

// Changed reports whether anything was added or removed.
func (s Summary) Changed() bool {
	return s.Added > 0 || s.Removed > 0
}

func (s Summary) String() string {
	return fmt.Sprintf("+%d -%d =%d", s.Added, s.Removed, s.Unchanged)
}

// BindingDiff compares two binding lists line by line. Both lists are sorted
// first, so the result does not depend on declaration order.
func BindingDiff(original, modified []string) ([]DiffLine, Summary) {
	a := slices.Clone(original)
	b := slices.Clone(modified)
	slices.Sort(a)
	slices.Sort(b)

	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 5 * time.Second

	chars1, chars2, lineArray := dmp.DiffLinesToChars(joinLines(a), joinLines(b))
	diffs := dmp.DiffMain(chars1, chars2, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	return convertToLineDiffs(diffs)
}

// convertToLineDiffs splits line-mode diffs into numbered lines.
func convertToLineDiffs(diffs []diffmatchpatch.Diff) ([]DiffLine, Summary) {
	var (
		lines   []DiffLine
		summary Summary
	)
	origLineNum, modLineNum := 1, 1

	for _, diff := range diffs {
		for _, text := range splitLines(diff.Text) {
			line := DiffLine{Type: diff.Type, Text: text}
			switch diff.Type {
			case diffmatchpatch.DiffEqual:
				line.OrigLineNum, line.ModLineNum = origLineNum, modLineNum
				origLineNum++
				modLineNum++
				summary.Unchanged++
			case diffmatchpatch.DiffDelete:
				line.OrigLineNum = origLineNum
				origLineNum++
				summary.Removed++
			case diffmatchpatch.DiffInsert:
				line.ModLineNum = modLineNum
				modLineNum++
				summary.Added++
			}
			lines = append(lines, line)
		}
	}
	return lines, summary
}

// Render formats lines unified-diff style: "+", "-" or " " then the text.
// Unchanged lines are left out unless withContext is set.
func Render(lines []DiffLine, withContext bool) string {
	var b strings.Builder
	for _, l := range lines {
		switch l.Type {
		case diffmatchpatch.DiffInsert:
			b.WriteString("+ ")
		case diffmatchpatch.DiffDelete:
			b.WriteString("- ")
		default:
			if !withContext {
				continue
			}
			b.WriteString("  ")
		}
		b.WriteString(l.Text)
		b.WriteByte('\n')
	}
	return b.String()
}

func joinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

func splitLines(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}
