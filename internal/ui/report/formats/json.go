package formats

import (
	"encoding/json"

	"tokenlint/internal/engine/lint"
)

// jsonFile mirrors the per-file result object of ESLint's json formatter.
type jsonFile struct {
	FilePath        string        `json:"filePath"`
	Messages        []jsonMessage `json:"messages"`
	ErrorCount      int           `json:"errorCount"`
	WarningCount    int           `json:"warningCount"`
	FixableErrors   int           `json:"fixableErrorCount"`
	FixableWarnings int           `json:"fixableWarningCount"`
	FatalError      string        `json:"fatalError,omitempty"`
}

type jsonMessage struct {
	RuleID      string           `json:"ruleId"`
	Severity    int              `json:"severity"`
	Message     string           `json:"message"`
	Token       string           `json:"token"`
	Line        int              `json:"line"`
	Column      int              `json:"column"`
	EndLine     int              `json:"endLine"`
	EndColumn   int              `json:"endColumn"`
	Fix         *jsonFix         `json:"fix,omitempty"`
	Suggestions []jsonSuggestion `json:"suggestions,omitempty"`
}

type jsonFix struct {
	Range [2]int `json:"range"`
	Text  string `json:"text"`
}

type jsonSuggestion struct {
	Desc string  `json:"desc"`
	Fix  jsonFix `json:"fix"`
}

func GenerateJSON(report Report) ([]byte, error) {
	files := make([]jsonFile, 0, len(report.Files))
	for _, file := range report.sortedFiles() {
		out := jsonFile{
			FilePath:   report.relPath(file.Path),
			Messages:   make([]jsonMessage, 0, len(file.Findings)),
			FatalError: file.Error,
		}
		for _, f := range file.Findings {
			msg := jsonMessage{
				RuleID:    f.RuleID,
				Severity:  2,
				Message:   f.Message,
				Token:     f.Name,
				Line:      f.Start.Line,
				Column:    f.Start.Column,
				EndLine:   f.End.Line,
				EndColumn: f.End.Column,
			}
			warning := f.Severity == lint.SeverityWarning
			if warning {
				msg.Severity = 1
				out.WarningCount++
			} else {
				out.ErrorCount++
			}
			if f.Fix != nil {
				fix := toJSONFix(*f.Fix)
				msg.Fix = &fix
				if warning {
					out.FixableWarnings++
				} else {
					out.FixableErrors++
				}
			}
			for _, s := range f.Suggestions {
				msg.Suggestions = append(msg.Suggestions, jsonSuggestion{Desc: s.Desc, Fix: toJSONFix(s.Fix)})
			}
			out.Messages = append(out.Messages, msg)
		}
		files = append(files, out)
	}
	return json.MarshalIndent(files, "", "  ")
}

func toJSONFix(e lint.Edit) jsonFix {
	return jsonFix{Range: [2]int{e.Range.Start, e.Range.End}, Text: e.Text}
}
