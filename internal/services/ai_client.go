package services

import (
  "bytes"
  "context"
  "encoding/json"
  "fmt"
  "io"
  "net/http"
  "os"
  "strings"
  "time"
  "github.com/centenniallife/wellness-backend/internal/httpx"
  "github.com/centenniallife/wellness-backend/internal/logger"
)

// AIClient is the chat-completions client behind insights and
// recommendations. Implementations must be safe for concurrent use.
type AIClient interface {
  Complete(ctx context.Context, system, user string) (string, error)
}

type aiHTTPError struct {
  StatusCode   int
  Body         string
}

func (e *aiHTTPError) Error() string {
  return fmt.Sprintf("ai api status %d: %s", e.StatusCode, e.Body)
}

func (e *aiHTTPError) HTTPStatusCode() int {
  return e.StatusCode
}

type aiClient struct {
  log          *logger.Logger
  baseURL      string
  apiKey       string
  model        string
  httpClient   *http.Client
  maxRetries   int
}

// NewAIClient reads its configuration from AI_API_KEY, AI_BASE_URL and
// AI_MODEL. A missing key is an error so callers can decide to run without
// AI features instead of failing requests later.
func NewAIClient(log *logger.Logger) (AIClient, error) {
  apiKey := strings.TrimSpace(os.Getenv("AI_API_KEY"))
  if apiKey == "" {
    return nil, fmt.Errorf("missing AI_API_KEY")
  }
  baseURL := strings.TrimSpace(os.Getenv("AI_BASE_URL"))
  if baseURL == "" {
    baseURL = "https://api.openai.com"
  }
  baseURL = strings.TrimRight(baseURL, "/")
  model := strings.TrimSpace(os.Getenv("AI_MODEL"))
  if model == "" {
    model = "gpt-4o-mini"
  }
  clientLog := log.With("service", "AIClient")
  return &aiClient{
    log:        clientLog,
    baseURL:    baseURL,
    apiKey:     apiKey,
    model:      model,
    httpClient: &http.Client{Timeout: 30 * time.Second},
    maxRetries: 3,
  }, nil
}

type chatMessage struct {
  Role      string    `json:"role"`
  Content   string    `json:"content"`
}

type chatRequest struct {
  Model         string            `json:"model"`
  Messages      []chatMessage     `json:"messages"`
  Temperature   float64           `json:"temperature"`
}

type chatResponse struct {
  Choices []struct {
    Message struct {
      Content string `json:"content"`
    } `json:"message"`
  } `json:"choices"`
}

func (ac *aiClient) Complete(ctx context.Context, system, user string) (string, error) {
  body := chatRequest{
    Model:       ac.model,
    Temperature: 0.7,
    Messages: []chatMessage{
      {Role: "system", Content: system},
      {Role: "user", Content: user},
    },
  }

  var out chatResponse
  if err := ac.do(ctx, "/v1/chat/completions", body, &out); err != nil {
    return "", err
  }
  if len(out.Choices) == 0 {
    return "", fmt.Errorf("ai response contained no choices")
  }
  content := strings.TrimSpace(out.Choices[0].Message.Content)
  if content == "" {
    return "", fmt.Errorf("ai response contained empty content")
  }
  return content, nil
}

func (ac *aiClient) doOnce(ctx context.Context, path string, body any) (*http.Response, []byte, error) {
  var buf bytes.Buffer
  if err := json.NewEncoder(&buf).Encode(body); err != nil {
    return nil, nil, err
  }
  req, err := http.NewRequestWithContext(ctx, http.MethodPost, ac.baseURL+path, &buf)
  if err != nil {
    return nil, nil, err
  }
  req.Header.Set("Authorization", "Bearer "+ac.apiKey)
  req.Header.Set("Content-Type", "application/json")

  resp, err := ac.httpClient.Do(req)
  if err != nil {
    return nil, nil, err
  }
  raw, readErr := io.ReadAll(resp.Body)
  _ = resp.Body.Close()
  if readErr != nil {
    return resp, nil, readErr
  }
  if resp.StatusCode < 200 || resp.StatusCode >= 300 {
    return resp, raw, &aiHTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
  }
  return resp, raw, nil
}

func (ac *aiClient) do(ctx context.Context, path string, body, out any) error {
  backoff := 1 * time.Second
  for attempt := 0; attempt <= ac.maxRetries; attempt++ {
    if ctx.Err() != nil {
      return ctx.Err()
    }
    resp, raw, err := ac.doOnce(ctx, path, body)
    if err == nil {
      if uErr := json.Unmarshal(raw, out); uErr != nil {
        return fmt.Errorf("ai decode error: %w", uErr)
      }
      return nil
    }
    if !httpx.IsRetryableError(err) || attempt == ac.maxRetries {
      return err
    }
    sleepFor := httpx.JitterSleep(httpx.RetryAfterDuration(resp, backoff, 10*time.Second))
    ac.log.Warn("AI request retrying",
      "path", path,
      "attempt", attempt+1,
      "max_retries", ac.maxRetries,
      "sleep", sleepFor.String(),
      "error", err.Error(),
    )
    select {
    case <-time.After(sleepFor):
    case <-ctx.Done():
      return ctx.Err()
    }
    backoff *= 2
  }
  return fmt.Errorf("unreachable retry loop")
}
