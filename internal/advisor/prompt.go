package advisor

import (
	"fmt"
	"strings"

	"github.com/docu3c/autocodex/internal/contract"
	"github.com/docu3c/autocodex/schema"
)

// languageGuidelines holds the review guidelines presented to the model,
// numbered so the response can reference them per guideline.
var languageGuidelines = map[schema.Language][]string{
	schema.JavaLang: {
		"Follow Java code conventions",
		"Replace imperative code with lambdas and streams",
		"Beware of the NullPointerException",
		"Avoid directly assigning references from client code to a field",
		"Handle exceptions with care",
		"Ponder over the choice of data structures",
		"Think twice before you expose (use appropriate access modifiers)",
		"Code to interfaces",
		"Don't force fit interfaces",
		"Override hashCode when overriding equals",
	},
	schema.PythonLang: {
		"Follow PEP 8 style conventions",
		"Prefer comprehensions and generators over manual loops",
		"Add type hints to public functions",
		"Handle exceptions narrowly instead of bare except",
		"Avoid mutable default arguments",
		"Use context managers for resource handling",
		"Keep functions small and single-purpose",
		"Never use eval or exec on untrusted input",
	},
	schema.GoLang: {
		"Follow Effective Go conventions",
		"Check and wrap every returned error",
		"Pass context.Context through blocking call chains",
		"Accept interfaces, return structs",
		"Avoid goroutine leaks by tying lifetimes to contexts",
		"Keep exported surface minimal",
		"Prefer composition over embedding for behavior reuse",
	},
	schema.JavaScriptLang: {
		"Use const and let, never var",
		"Prefer async/await over raw promise chains",
		"Avoid implicit type coercion in comparisons",
		"Validate external input before use",
		"Keep modules small with explicit exports",
		"Handle promise rejections explicitly",
	},
}

// BuildPrompt assembles the review prompt for one file: the measured metrics,
// the language guidelines, and the full file content.
func BuildPrompt(req contract.SuggestionRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are a principal %s code review expert. Analyze the following %s code from file '%s' with metrics:\n",
		req.Language, req.Language, req.Path)
	fmt.Fprintf(&b, "- Complexity: %d\n", req.Complexity)
	fmt.Fprintf(&b, "- Maintainability: %.1f\n", req.Maintainability)
	fmt.Fprintf(&b, "- LOC: %d\n", req.Lines.Code)
	if req.LintScore > 0 {
		fmt.Fprintf(&b, "- Lint score: %.1f/10\n", req.LintScore)
	}

	if len(req.Issues) > 0 {
		b.WriteString("\nStatic analysis already flagged:\n")
		for _, issue := range req.Issues {
			fmt.Fprintf(&b, "- Line %d [%s]: %s\n", issue.Line, issue.Rule, issue.Message)
		}
	}

	if guidelines, ok := languageGuidelines[req.Language]; ok {
		b.WriteString("\nReview the code against these guidelines:\n")
		for i, g := range guidelines {
			fmt.Fprintf(&b, "%d. %s\n", i+1, g)
		}
	}

	b.WriteString(`
Provide specific suggestions for:
1. Code optimization
2. Design patterns
3. Best practices
4. Security improvements

For each violated guideline include the line number, a brief explanation of
why it is a problem, and a corrected code snippet in a fenced code block with
` + "`BEFORE`" + ` and ` + "`AFTER`" + ` labels. Use markdown formatting and make sure
every suggested snippet is complete and directly copyable.

Code:
`)
	b.WriteString(req.Content)

	return b.String()
}
