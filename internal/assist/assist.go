// Package assist calls an OpenAI-compatible chat model to tailor CVs,
// draft cover letters, and summarize company research. The model is an
// opaque external capability: when no client is configured every operation
// reports ErrUnavailable instead of failing downstream.
package assist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"
)

// ErrUnavailable is returned when no model client is configured.
var ErrUnavailable = errors.New("assistant not configured")

// Client is the minimal interface needed to call a chat model. It mirrors
// the CreateChatCompletion method so any OpenAI-compatible backend fits.
type Client interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Service holds the model client and the model name used for all calls.
type Service struct {
	Client Client
	Model  string
}

// New builds a Service from a base URL, API key, and model name. An empty
// key leaves the service unavailable rather than constructing a client
// that would fail on first use.
func New(baseURL, apiKey, model string) *Service {
	if apiKey == "" {
		log.Warn().Msg("assistant API key not configured; AI features disabled")
		return &Service{Model: model}
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Service{Client: openai.NewClientWithConfig(cfg), Model: model}
}

// Available reports whether a model client is configured.
func (s *Service) Available() bool { return s != nil && s.Client != nil }

const customizeSystemPrompt = `You are an expert CV/resume customization specialist. Optimize a CV for a specific job application while maintaining truthfulness and professionalism.

Guidelines:
1. Tailor the CV to highlight relevant experience and skills mentioned in the job description
2. Reorder sections and bullet points to emphasize the most relevant qualifications first
3. Use keywords from the job description naturally throughout the CV
4. Optimize the professional summary to align with the role
5. Maintain all factual information - never invent experience or skills
6. Keep the same format and structure as much as possible
7. Ensure the CV remains professional and ATS-friendly
8. Do not exceed the original CV length significantly

Return only the customized CV text.`

// CustomizeCV rewrites cvText to target the given job.
func (s *Service) CustomizeCV(ctx context.Context, cvText, jobDescription, jobTitle, company string) (string, error) {
	if !s.Available() {
		return "", ErrUnavailable
	}
	var jobContext string
	if jobTitle != "" || company != "" {
		jobContext = fmt.Sprintf("Job Title: %s\nCompany: %s\n", jobTitle, company)
	}
	user := fmt.Sprintf("%sJob Description:\n%s\n\nOriginal CV:\n%s\n\nPlease customize this CV for the job described above.", jobContext, jobDescription, cvText)
	return s.complete(ctx, customizeSystemPrompt, user, 4000, 0.3)
}

const coverLetterSystemPrompt = `You are an expert cover letter writer. Create compelling, personalized cover letters that highlight the candidate's most relevant qualifications for the specific role.

Guidelines:
1. Write in a professional yet engaging tone
2. Create a strong opening that grabs attention
3. Highlight 2-3 key qualifications that directly match the job requirements
4. Show genuine interest in the company and role
5. Include a clear call to action
6. Keep it concise (3-4 paragraphs max)
7. Use specific examples from the CV when possible
8. Avoid generic phrases and cliches
9. Format as a proper business letter

Return only the cover letter text.`

// CoverLetter drafts a cover letter for the given job from the CV.
func (s *Service) CoverLetter(ctx context.Context, cvText, jobDescription, jobTitle, company, userName string) (string, error) {
	if !s.Available() {
		return "", ErrUnavailable
	}
	if userName == "" {
		userName = "[Your Name]"
	}
	user := fmt.Sprintf("Please write a cover letter for the following position:\n\nJob Title: %s\nCompany: %s\nCandidate Name: %s\n\nJob Description:\n%s\n\nCandidate's CV:\n%s",
		jobTitle, company, userName, jobDescription, cvText)
	return s.complete(ctx, coverLetterSystemPrompt, user, 2000, 0.4)
}

const researchSystemPrompt = `You are a professional researcher specializing in company analysis for job seekers. Provide structured insights about companies to help candidates prepare for applications and interviews.

Format your response as a JSON object with these keys:
- "overview": Brief company description
- "culture": Company culture insights
- "recent_news": Recent developments or news
- "interview_tips": Preparation suggestions
- "questions_to_ask": Suggested questions for interviews
- "key_talking_points": Important points to mention in applications/interviews`

// CompanyResearch is the structured research summary for one company.
type CompanyResearch struct {
	Overview        string `json:"overview"`
	Culture         string `json:"culture"`
	RecentNews      string `json:"recent_news"`
	InterviewTips   string `json:"interview_tips"`
	QuestionsToAsk  string `json:"questions_to_ask"`
	KeyTalkingPoint string `json:"key_talking_points"`
}

// ResearchCompany summarizes a company for interview preparation. When the
// model does not return valid JSON the whole reply lands in Overview.
func (s *Service) ResearchCompany(ctx context.Context, company, jobTitle string) (CompanyResearch, error) {
	if !s.Available() {
		return CompanyResearch{}, ErrUnavailable
	}
	user := fmt.Sprintf("Please research %s and provide insights that would help a job candidate.", company)
	if jobTitle != "" {
		user = fmt.Sprintf("Please research %s for a %s position and provide insights that would help a job candidate.", company, jobTitle)
	}
	raw, err := s.complete(ctx, researchSystemPrompt, user, 3000, 0.3)
	if err != nil {
		return CompanyResearch{}, err
	}
	var res CompanyResearch
	if jsonErr := json.Unmarshal([]byte(raw), &res); jsonErr != nil {
		log.Debug().Err(jsonErr).Msg("research reply was not JSON; keeping as overview")
		return CompanyResearch{Overview: raw}, nil
	}
	return res, nil
}

func (s *Service) complete(ctx context.Context, system, user string, maxTokens int, temperature float32) (string, error) {
	resp, err := s.Client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       s.Model,
		MaxTokens:   maxTokens,
		Temperature: temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("model returned no choices")
	}
	out := strings.TrimSpace(resp.Choices[0].Message.Content)
	if out == "" {
		return "", errors.New("model returned empty content")
	}
	return out, nil
}
