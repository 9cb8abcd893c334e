package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"event-booking/internal/dto/request"
	"event-booking/internal/dto/response"
	"event-booking/pkg/utils"

	"go.uber.org/zap"
)

type NicknameService interface {
	Generate(ctx context.Context, req *request.GenerateNicknamesRequest) (*response.NicknamesResponse, error)
}

type nicknameService struct {
	url    string
	client *http.Client
	log    *zap.Logger
}

func NewNicknameService(config utils.NicknameConfig, log *zap.Logger) NicknameService {
	return &nicknameService{
		url: config.URL,
		client: &http.Client{
			Timeout: config.Timeout,
		},
		log: log.With(zap.String("service", "nickname")),
	}
}

// Leading ordinals and bullets the generator likes to prefix, e.g. "1. ",
// "2) ", "- ", "* "
var nicknamePrefix = regexp.MustCompile(`^(\d+[.)]\s*|[-*]\s+)`)

type generatorRequest struct {
	Prompt string `json:"prompt"`
}

type generatorResponse struct {
	Response string `json:"response"`
}

// Generate proxies one request to the external generator. No retry and no
// caching; a failed call surfaces immediately.
func (s *nicknameService) Generate(ctx context.Context, req *request.GenerateNicknamesRequest) (*response.NicknamesResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Generate nicknames validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	body, err := json.Marshal(generatorRequest{Prompt: req.Prompt})
	if err != nil {
		return nil, fmt.Errorf("encode generator request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build generator request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		s.log.Error("Nickname generator request failed", zap.Error(err))
		return nil, fmt.Errorf("call nickname generator: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.log.Error("Nickname generator returned non-OK status",
			zap.Int("status", resp.StatusCode),
		)
		return nil, fmt.Errorf("nickname generator returned status %d", resp.StatusCode)
	}

	var genResp generatorResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return nil, fmt.Errorf("decode generator response: %w", err)
	}

	suggestions := sanitizeSuggestions(genResp.Response)

	s.log.Info("Nicknames generated", zap.Int("count", len(suggestions)))

	return &response.NicknamesResponse{Suggestions: suggestions}, nil
}

// sanitizeSuggestions splits the newline-delimited generator output, strips
// list prefixes, collapses whitespace and drops empty lines.
func sanitizeSuggestions(raw string) []string {
	lines := strings.Split(raw, "\n")

	suggestions := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		line = nicknamePrefix.ReplaceAllString(line, "")
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			continue
		}
		suggestions = append(suggestions, line)
	}

	return suggestions
}
