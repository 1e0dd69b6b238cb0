package batch

import (
	"fmt"
	"strings"
)

// Reporter renders a batch result as human-readable text. Rendering is
// pure: it reads the result and returns a string, nothing else.
type Reporter struct {
	// ShowDirs includes the input/output directories in the header.
	ShowDirs bool
}

// NewReporter creates a Reporter with directories shown.
func NewReporter() *Reporter {
	return &Reporter{ShowDirs: true}
}

// RenderStart formats the launch preamble: the selected jobs with their
// descriptions, the directories involved, and the concurrency cap.
func (rp *Reporter) RenderStart(jobs []JobType, inputDir, outputDir string, concurrency int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "🎯 Selected analysis types:\n")
	for _, jt := range jobs {
		fmt.Fprintf(&b, "  • %s: %s\n", jt.Name, jt.Description)
	}

	fmt.Fprintf(&b, "\n🚀 Starting %d analysis types...\n", len(jobs))
	if rp.ShowDirs {
		fmt.Fprintf(&b, "📁 Input directory: %s\n", inputDir)
		fmt.Fprintf(&b, "📁 Output directory: %s\n", outputDir)
	}
	fmt.Fprintf(&b, "⚡ Max concurrent processes: %d\n", concurrency)

	return b.String()
}

// Render formats the result: a header, one line per job in launch order,
// failure causes inline, and a closing tally.
func (rp *Reporter) Render(result *Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "\n📊 Batch %s finished in %.1fs\n\n", shortID(result.RunID), result.Duration().Seconds())

	if rp.ShowDirs {
		fmt.Fprintf(&b, "   input:  %s\n", result.InputDir)
		fmt.Fprintf(&b, "   output: %s\n\n", result.OutputDir)
	}

	fmt.Fprintf(&b, "📦 Jobs (%d)\n", len(result.Outcomes))
	for i, o := range result.Outcomes {
		prefix := "├──"
		last := i == len(result.Outcomes)-1
		if last {
			prefix = "└──"
		}
		fmt.Fprintf(&b, "   %s %s %s (%s) %.1fs\n", prefix, outcomeIcon(o), o.Name, o.JobID, o.Duration().Seconds())
		if o.Failed() && o.Err != nil {
			errPrefix := "│  "
			if last {
				errPrefix = "   "
			}
			fmt.Fprintf(&b, "   %s     %s\n", errPrefix, o.Err.Error())
		}
	}

	succeeded := result.Succeeded()
	failed := result.Failed()
	total := len(result.Outcomes)
	if failed == 0 {
		fmt.Fprintf(&b, "\n✅ All jobs completed (%d/%d)\n", succeeded, total)
	} else {
		fmt.Fprintf(&b, "\n⚠️  %d/%d jobs completed, %d failed\n", succeeded, total, failed)
	}

	return b.String()
}

func outcomeIcon(o Outcome) string {
	if o.Status == StatusCompleted {
		return "✅"
	}
	return "❌"
}

// shortID truncates a run id to its first segment for display.
func shortID(id string) string {
	if idx := strings.IndexByte(id, '-'); idx > 0 {
		return id[:idx]
	}
	return id
}
