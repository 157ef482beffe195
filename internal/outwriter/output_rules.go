package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/docu3c/autocodex/internal/contract"
	"github.com/docu3c/autocodex/schema"
)

// rulesRenderModel is the processed view of the active rule configuration.
type rulesRenderModel struct {
	Languages []languageRules `json:"languages"`
	Weights   qualityWeights  `json:"quality_weights"`
}

type languageRules struct {
	Language schema.Language `json:"language"`
	Rules    schema.RuleSet  `json:"rules"`
}

type qualityWeights struct {
	Complexity      float64 `json:"complexity"`
	Maintainability float64 `json:"maintainability"`
	IssueDensity    float64 `json:"issue_density"`
}

func buildRulesRenderModel(cfg *contract.Config) *rulesRenderModel {
	model := &rulesRenderModel{
		Weights: qualityWeights{
			Complexity:      schema.QualityWeightComplexity,
			Maintainability: schema.QualityWeightMaintainability,
			IssueDensity:    schema.QualityWeightIssueDensity,
		},
	}
	for _, lang := range schema.AllLanguages {
		rs, ok := cfg.Rules[lang]
		if !ok {
			continue
		}
		model.Languages = append(model.Languages, languageRules{Language: lang, Rules: rs})
	}
	return model
}

// PrintRules displays the active rule sets, metric definitions and
// quality-score weights.
func PrintRules(cfg *contract.Config) error {
	model := buildRulesRenderModel(cfg)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, model)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			csvWriter := csv.NewWriter(w)
			defer csvWriter.Flush()
			return printRulesCSV(csvWriter, model)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return printRulesText(w, model)
		}, "Wrote text")
	}
}

func printRulesText(w io.Writer, model *rulesRenderModel) error {
	if _, err := fmt.Fprintf(w, "📋 Review Rule Sets\n===================\n\n"); err != nil {
		return err
	}

	for _, lr := range model.Languages {
		if _, err := fmt.Fprintf(w, "%s\n", lr.Language); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "  Max line length:     %d\n", lr.Rules.MaxLineLength); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "  Max function length: %d\n", lr.Rules.MaxFunctionLength); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "  Max complexity:      %d\n", lr.Rules.MaxComplexity); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "  Max duplication:     %d duplicate line pairs\n", lr.Rules.MaxDuplication); err != nil {
			return err
		}

		kinds := make([]string, 0, len(lr.Rules.NamingConventions))
		for kind := range lr.Rules.NamingConventions {
			kinds = append(kinds, kind)
		}
		sort.Strings(kinds)
		for _, kind := range kinds {
			if _, err := fmt.Fprintf(w, "  Naming (%s): %s\n", kind, lr.Rules.NamingConventions[kind]); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "Quality score = %.1f*complexityScore + %.1f*avgMaintainability + %.1f*(100 - issueDensity)\n",
		model.Weights.Complexity, model.Weights.Maintainability, model.Weights.IssueDensity); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "  complexityScore = max(0, 100 - 5*avgComplexity)\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "  issueDensity    = min(100, totalIssues/totalLOC*1000)\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "  maintainability = (171 - 5.2*ln(V) - 0.23*CC - 16.2*ln(LOC)) * 100/171\n"); err != nil {
		return err
	}
	return nil
}

func printRulesCSV(w *csv.Writer, model *rulesRenderModel) error {
	header := []string{"language", "max_line_length", "max_function_length", "max_complexity", "max_duplication"}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, lr := range model.Languages {
		rec := []string{
			string(lr.Language),
			strconv.Itoa(lr.Rules.MaxLineLength),
			strconv.Itoa(lr.Rules.MaxFunctionLength),
			strconv.Itoa(lr.Rules.MaxComplexity),
			strconv.Itoa(lr.Rules.MaxDuplication),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}
