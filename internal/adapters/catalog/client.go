package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/athebyme/vendor-product-service/pkg/interfaces"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/oauth2"
)

const (
	defaultTimeout   = 30 * time.Second
	maxErrorBodySize = 4 << 10
)

var tracer = otel.Tracer("github.com/athebyme/vendor-product-service/internal/adapters/catalog")

// ErrEmptyURL адрес каталога не задан
var ErrEmptyURL = errors.New("catalog url is empty")

// Config параметры подключения к каталогу
type Config struct {
	URL               string
	AppToken          string
	Timeout           time.Duration
	ChannelID         string
	ChannelSlug       string
	DigitalContentURL string
}

// StatusError каталог ответил HTTP-статусом, отличным от 2xx
type StatusError struct {
	Operation  string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("catalog %s: unexpected status %d: %s", e.Operation, e.StatusCode, e.Body)
}

// GraphQLError ошибки верхнего уровня GraphQL-ответа
type GraphQLError struct {
	Operation string
	Messages  []string
}

func (e *GraphQLError) Error() string {
	return fmt.Sprintf("catalog %s: %s", e.Operation, strings.Join(e.Messages, "; "))
}

// FieldError ошибка валидации, возвращенная мутацией
type FieldError struct {
	Field   *string `json:"field"`
	Message string  `json:"message"`
	Code    string  `json:"code,omitempty"`
}

// MutationError мутация вернула непустой список errors
type MutationError struct {
	Mutation string
	Errors   []FieldError
}

func (e *MutationError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		if fe.Field != nil && *fe.Field != "" {
			parts = append(parts, fmt.Sprintf("%s: %s", *fe.Field, fe.Message))
			continue
		}
		parts = append(parts, fe.Message)
	}
	return fmt.Sprintf("catalog mutation %s failed: %s", e.Mutation, strings.Join(parts, "; "))
}

type graphQLRequest struct {
	Query     string      `json:"query"`
	Variables interface{} `json:"variables,omitempty"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// Client GraphQL-клиент каталога.
// Мутации подписываются токеном приложения, запрос me выполняется от имени пользователя.
type Client struct {
	url    string
	cfg    Config
	app    *http.Client
	user   *http.Client
	logger interfaces.LoggerPort
}

// NewClient создает клиента каталога
func NewClient(cfg Config, logger interfaces.LoggerPort) (*Client, error) {
	url := strings.TrimSpace(cfg.URL)
	if url == "" {
		return nil, ErrEmptyURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	base := &http.Client{Timeout: cfg.Timeout}
	app := base
	if cfg.AppToken != "" {
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
		app = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: cfg.AppToken,
			TokenType:   "Bearer",
		}))
	}

	return &Client{
		url:    url,
		cfg:    cfg,
		app:    app,
		user:   base,
		logger: logger,
	}, nil
}

// execute отправляет документ и возвращает поле data ответа.
// Непустой список errors в полезной нагрузке мутации считается ошибкой.
func (c *Client) execute(ctx context.Context, operation string, httpClient *http.Client, token *oauth2.Token, query string, variables interface{}) (json.RawMessage, error) {
	return c.run(ctx, operation, httpClient, token, query, variables, true)
}

// executeBestEffort отправляет мутацию от имени приложения.
// Ошибки из полезной нагрузки мутации только логируются.
func (c *Client) executeBestEffort(ctx context.Context, operation, query string, variables interface{}) error {
	_, err := c.run(ctx, operation, c.app, nil, query, variables, false)
	return err
}

func (c *Client) run(ctx context.Context, operation string, httpClient *http.Client, token *oauth2.Token, query string, variables interface{}, strict bool) (json.RawMessage, error) {
	ctx, span := tracer.Start(ctx, "catalog."+operation)
	defer span.End()

	start := time.Now()
	data, err := c.do(ctx, operation, httpClient, token, query, variables)
	if err == nil {
		if mutationErr := checkMutationErrors(data); mutationErr != nil {
			if strict {
				err = mutationErr
			} else {
				span.SetAttributes(attribute.Bool("catalog.payload_errors", true))
				c.logger.WarnWithContext(ctx, "Каталог вернул ошибки мутации, результат игнорируется",
					interfaces.LogField{Key: "operation", Value: operation},
					interfaces.LogField{Key: "error", Value: mutationErr.Error()})
			}
		}
	}
	observe(operation, start, err)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.logger.ErrorWithContext(ctx, "Ошибка запроса к каталогу",
			interfaces.LogField{Key: "operation", Value: operation},
			interfaces.LogField{Key: "error", Value: err.Error()})
		return nil, err
	}

	span.SetAttributes(attribute.Int("catalog.response_size", len(data)))
	return data, nil
}

func (c *Client) do(ctx context.Context, operation string, httpClient *http.Client, token *oauth2.Token, query string, variables interface{}) (json.RawMessage, error) {
	payload, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s request: %w", operation, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create %s request: %w", operation, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != nil {
		token.SetAuthHeader(req)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog %s request failed: %w", operation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		return nil, &StatusError{Operation: operation, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	decoder := json.NewDecoder(resp.Body)
	decoder.UseNumber()

	var out graphQLResponse
	if err := decoder.Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode %s response: %w", operation, err)
	}

	if len(out.Errors) > 0 {
		messages := make([]string, 0, len(out.Errors))
		for _, e := range out.Errors {
			messages = append(messages, e.Message)
		}
		return nil, &GraphQLError{Operation: operation, Messages: messages}
	}

	return out.Data, nil
}

// checkMutationErrors ищет непустые списки errors в полях верхнего уровня data
func checkMutationErrors(data json.RawMessage) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil
	}

	for name, raw := range fields {
		var payload struct {
			Errors []FieldError `json:"errors"`
		}
		if err := json.Unmarshal(raw, &payload); err != nil {
			continue
		}
		if len(payload.Errors) > 0 {
			return &MutationError{Mutation: name, Errors: payload.Errors}
		}
	}
	return nil
}
