// # internal/ui/report/formats/sarif.go
package formats

import (
	"encoding/json"

	"tokenlint/internal/engine/lint"
	"tokenlint/internal/shared/version"

	"github.com/google/uuid"
)

// SARIF v2.1.0 schema – see https://schemastore.azurewebsites.net/schemas/json/sarif-2.1.0-rtm.5.json

const (
	sarifSchema  = "https://schemastore.azurewebsites.net/schemas/json/sarif-2.1.0-rtm.5.json"
	sarifVersion = "2.1.0"
	srcRoot      = "%SRCROOT%"
)

// sarifReport is the top-level SARIF document.
type sarifReport struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool              sarifTool              `json:"tool"`
	AutomationDetails sarifAutomationDetails `json:"automationDetails"`
	Results           []sarifResult          `json:"results"`
	Invocations       []sarifInvocation      `json:"invocations,omitempty"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version"`
	InformationURI string      `json:"informationUri,omitempty"`
	Rules          []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string                 `json:"id"`
	Name             string                 `json:"name"`
	ShortDescription sarifMessage           `json:"shortDescription"`
	HelpURI          string                 `json:"helpUri,omitempty"`
	DefaultConfig    sarifRuleDefaultConfig `json:"defaultConfiguration"`
}

type sarifRuleDefaultConfig struct {
	Level string `json:"level"`
}

type sarifAutomationDetails struct {
	GUID string `json:"guid"`
}

type sarifInvocation struct {
	ExecutionSuccessful        bool                `json:"executionSuccessful"`
	ToolExecutionNotifications []sarifNotification `json:"toolExecutionNotifications,omitempty"`
}

type sarifNotification struct {
	Level     string          `json:"level"`
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations,omitempty"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations,omitempty"`
	Fixes     []sarifFix      `json:"fixes,omitempty"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Region           *sarifRegion          `json:"region,omitempty"`
}

type sarifArtifactLocation struct {
	URI       string `json:"uri"`
	URIBaseID string `json:"uriBaseId"`
}

type sarifRegion struct {
	StartLine   int `json:"startLine,omitempty"`
	StartColumn int `json:"startColumn,omitempty"`
	EndLine     int `json:"endLine,omitempty"`
	EndColumn   int `json:"endColumn,omitempty"`
}

type sarifFix struct {
	Description     sarifMessage          `json:"description"`
	ArtifactChanges []sarifArtifactChange `json:"artifactChanges"`
}

type sarifArtifactChange struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Replacements     []sarifReplacement    `json:"replacements"`
}

type sarifReplacement struct {
	DeletedRegion   sarifByteRegion `json:"deletedRegion"`
	InsertedContent sarifContent    `json:"insertedContent"`
}

// sarifByteRegion addresses edits by byte offset so they apply verbatim.
type sarifByteRegion struct {
	ByteOffset int `json:"byteOffset"`
	ByteLength int `json:"byteLength"`
}

type sarifContent struct {
	Text string `json:"text"`
}

// GenerateSARIF builds a SARIF v2.1.0 document. File URIs are relative to
// report.Root. Auto-fixes and suggestions both become SARIF fixes; the
// auto-fix, when present, comes first.
func GenerateSARIF(report Report) ([]byte, error) {
	results := make([]sarifResult, 0)
	var notifications []sarifNotification

	for _, file := range report.sortedFiles() {
		artifact := sarifArtifactLocation{URI: report.relPath(file.Path), URIBaseID: srcRoot}
		if file.Error != "" {
			notifications = append(notifications, sarifNotification{
				Level:     "error",
				Message:   sarifMessage{Text: file.Error},
				Locations: []sarifLocation{{PhysicalLocation: sarifPhysicalLocation{ArtifactLocation: artifact}}},
			})
			continue
		}
		for _, f := range file.Findings {
			results = append(results, sarifResult{
				RuleID:  f.RuleID,
				Level:   sarifLevel(f.Severity),
				Message: sarifMessage{Text: f.Message},
				Locations: []sarifLocation{{
					PhysicalLocation: sarifPhysicalLocation{
						ArtifactLocation: artifact,
						Region: &sarifRegion{
							StartLine:   f.Start.Line,
							StartColumn: f.Start.Column,
							EndLine:     f.End.Line,
							EndColumn:   f.End.Column,
						},
					},
				}},
				Fixes: sarifFixes(artifact, f),
			})
		}
	}

	rules := make([]sarifRule, 0, len(report.Rules))
	for _, r := range report.Rules {
		rules = append(rules, sarifRule{
			ID:               r.ID,
			Name:             r.ID,
			ShortDescription: sarifMessage{Text: r.Meta.Description},
			HelpURI:          r.Meta.DocsURL,
			DefaultConfig:    sarifRuleDefaultConfig{Level: "error"},
		})
	}

	run := sarifRun{
		Tool: sarifTool{
			Driver: sarifDriver{
				Name:    "tokenlint",
				Version: version.Version,
				Rules:   rules,
			},
		},
		AutomationDetails: sarifAutomationDetails{GUID: uuid.NewString()},
		Results:           results,
	}
	if len(notifications) > 0 {
		run.Invocations = []sarifInvocation{{ExecutionSuccessful: false, ToolExecutionNotifications: notifications}}
	}

	return json.MarshalIndent(sarifReport{
		Schema:  sarifSchema,
		Version: sarifVersion,
		Runs:    []sarifRun{run},
	}, "", "  ")
}

func sarifFixes(artifact sarifArtifactLocation, f lint.Finding) []sarifFix {
	var fixes []sarifFix
	add := func(desc string, edit lint.Edit) {
		fixes = append(fixes, sarifFix{
			Description: sarifMessage{Text: desc},
			ArtifactChanges: []sarifArtifactChange{{
				ArtifactLocation: artifact,
				Replacements: []sarifReplacement{{
					DeletedRegion:   sarifByteRegion{ByteOffset: edit.Range.Start, ByteLength: edit.Range.Len()},
					InsertedContent: sarifContent{Text: edit.Text},
				}},
			}},
		})
	}
	if f.Fix != nil {
		add("Replace with "+f.Fix.Text, *f.Fix)
	}
	for _, s := range f.Suggestions {
		add(s.Desc, s.Fix)
	}
	return fixes
}

func sarifLevel(s lint.Severity) string {
	if s == lint.SeverityWarning {
		return "warning"
	}
	return "error"
}
