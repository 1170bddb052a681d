package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"google.golang.org/genai"

	"alfredoptarigan/candidate-screener/internal/config"
)

// GeminiService performs one structured-output round trip per call.
// Failed calls are not retried.
type GeminiService interface {
	GenerateStructured(ctx context.Context, req *Request, schema *genai.Schema) (string, error)
}

type geminiService struct {
	client      *genai.Client
	modelName   string
	temperature float32
}

func NewGeminiService(cfg config.GeminiConfig) (GeminiService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is not set")
	}

	ctx := context.Background()

	clientConfig := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	modelName := cfg.Model
	if modelName == "" {
		modelName = "gemini-2.5-flash"
	}

	return &geminiService{
		client:      client,
		modelName:   modelName,
		temperature: cfg.Temperature,
	}, nil
}

// GenerateStructured implements GeminiService.
func (g *geminiService) GenerateStructured(ctx context.Context, req *Request, schema *genai.Schema) (string, error) {
	op := string(req.Operation)

	parts, err := ToGenaiParts(req.Parts)
	if err != nil {
		return "", err
	}

	temperature := g.temperature
	genConfig := &genai.GenerateContentConfig{
		Temperature:      &temperature,
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	}

	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, contents, genConfig)
	if err != nil {
		log.Printf("❌ Gemini API error (%s): %v\n", op, err)
		return "", &GenerationError{Op: op, Reason: ReasonUpstream, Err: err}
	}

	if resp == nil {
		return "", &GenerationError{Op: op, Reason: ReasonUpstream, Err: fmt.Errorf("nil response")}
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		log.Printf("❌ No text content in %s response\n", op)
		return "", contractError(op, "no text content in response")
	}

	log.Printf("📊 Gemini %s response received: %d characters\n", op, len(text))
	return text, nil
}

// ToGenaiParts converts request parts into SDK parts. Documents travel as
// inline data.
func ToGenaiParts(parts []ContentPart) ([]*genai.Part, error) {
	out := make([]*genai.Part, 0, len(parts))
	for i, part := range parts {
		if !part.IsDocument() {
			out = append(out, genai.NewPartFromText(part.Text))
			continue
		}

		data, err := DecodeDocument(part.Document)
		if err != nil {
			return nil, &FileReadError{Input: fmt.Sprintf("request part %d", i+1), Err: err}
		}
		out = append(out, genai.NewPartFromBytes(data, part.Document.MediaType))
	}
	return out, nil
}
