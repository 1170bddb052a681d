package services

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"google.golang.org/genai"
)

// ScreeningSchema is the output shape for a screening request: one object
// per resume.
func ScreeningSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"name": {
					Type:        genai.TypeString,
					Description: "The candidate's full name, extracted from the resume.",
				},
				"match_score": {
					Type:        genai.TypeInteger,
					Description: "A matching percentage from 0 to 100 indicating how well the candidate matches the job description.",
					Minimum:     genai.Ptr(0.0),
					Maximum:     genai.Ptr(100.0),
				},
				"summary": {
					Type:        genai.TypeString,
					Description: "A concise, one-paragraph summary of the candidate's fit for the role.",
				},
				"strengths": {
					Type:        genai.TypeArray,
					Items:       &genai.Schema{Type: genai.TypeString},
					Description: "A list of specific skills or experiences that match the job description.",
				},
				"weaknesses": {
					Type:        genai.TypeArray,
					Items:       &genai.Schema{Type: genai.TypeString},
					Description: "A list of key requirements from the job description that are missing from the resume.",
				},
				"red_flags": {
					Type:        genai.TypeArray,
					Items:       &genai.Schema{Type: genai.TypeString},
					Description: "A list of any potential concerns (e.g., job gaps, lack of required qualifications).",
				},
			},
			Required: []string{"name", "match_score", "summary", "strengths", "weaknesses", "red_flags"},
		},
	}
}

// ComparisonSchema is the output shape for a shortlist comparison.
func ComparisonSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"overall_recommendation": {
				Type:        genai.TypeString,
				Description: "A detailed paragraph recommending the top candidate(s) and justifying the choice based on the comparison and the job description.",
			},
			"comparison_table": {
				Type:        genai.TypeArray,
				Description: "A side-by-side comparison of the candidates across key criteria relevant to the job description.",
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"criteria": {
							Type:        genai.TypeString,
							Description: "The comparison criteria (e.g., 'Relevant Experience with Go', 'Cloud Platform Knowledge', 'Leadership Potential').",
						},
						"assessments": {
							Type:        genai.TypeArray,
							Description: "An assessment for each candidate for the given criteria.",
							Items: &genai.Schema{
								Type: genai.TypeObject,
								Properties: map[string]*genai.Schema{
									"name": {
										Type:        genai.TypeString,
										Description: "The name of the candidate.",
									},
									"assessment": {
										Type:        genai.TypeString,
										Description: "The candidate's assessment for this specific criteria, summarizing how they meet it.",
									},
								},
								Required: []string{"name", "assessment"},
							},
						},
					},
					Required: []string{"criteria", "assessments"},
				},
			},
		},
		Required: []string{"overall_recommendation", "comparison_table"},
	}
}

// RequiredFields returns the required properties of an object schema, or of
// the element schema when s is an array.
func RequiredFields(s *genai.Schema) []string {
	if s == nil {
		return nil
	}
	if s.Type == genai.TypeArray && s.Items != nil {
		return RequiredFields(s.Items)
	}
	return append([]string(nil), s.Required...)
}

// JSONSchema converts a generation schema into an equivalent JSON Schema
// document, so responses are validated against exactly what the model was
// asked to produce.
func JSONSchema(s *genai.Schema) map[string]any {
	doc := map[string]any{}
	if s == nil {
		return doc
	}

	if s.Type != "" && s.Type != genai.TypeUnspecified {
		doc["type"] = strings.ToLower(string(s.Type))
	}
	if s.Description != "" {
		doc["description"] = s.Description
	}
	if s.Minimum != nil {
		doc["minimum"] = *s.Minimum
	}
	if s.Maximum != nil {
		doc["maximum"] = *s.Maximum
	}
	if len(s.Enum) > 0 {
		doc["enum"] = s.Enum
	}
	if s.Items != nil {
		doc["items"] = JSONSchema(s.Items)
	}
	if len(s.Properties) > 0 {
		props := make(map[string]any, len(s.Properties))
		for name, prop := range s.Properties {
			props[name] = JSONSchema(prop)
		}
		doc["properties"] = props
	}
	if len(s.Required) > 0 {
		doc["required"] = s.Required
	}

	return doc
}

// SchemaViolation lists every field of a document that broke the schema.
type SchemaViolation struct {
	Errors []FieldError
}

type FieldError struct {
	Field   string
	Message string
}

func (v *SchemaViolation) Error() string {
	var sb strings.Builder
	sb.WriteString("schema validation failed:")
	for i, err := range v.Errors {
		sb.WriteString(fmt.Sprintf(" %d. %s: %s;", i+1, err.Field, err.Message))
	}
	return strings.TrimSuffix(sb.String(), ";")
}

// ValidateDocument checks raw JSON text against a generation schema.
func ValidateDocument(s *genai.Schema, raw string) error {
	schemaLoader := gojsonschema.NewGoLoader(JSONSchema(s))
	documentLoader := gojsonschema.NewStringLoader(raw)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("failed to validate document: %w", err)
	}

	if result.Valid() {
		return nil
	}

	violation := &SchemaViolation{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		violation.Errors = append(violation.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}

	return violation
}
