// Package api contém o cliente do serviço de linguagem. O contrato é o de
// chat completions compatível com OpenAI: lista ordenada de mensagens com
// papel, resposta no conteúdo da primeira choice.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.openai.com/v1"

// ErrNotConfigured indica ausência de chave de API: o sistema opera em modo
// offline usando apenas os caminhos de fallback
var ErrNotConfigured = errors.New("chave de API não configurada")

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Papéis aceitos pelo serviço remoto
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

type chatResponse struct {
	Choices []choice  `json:"choices"`
	Error   *apiError `json:"error,omitempty"`
}

type choice struct {
	Message Message `json:"message"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// Client é o cliente HTTP do serviço de linguagem
type Client struct {
	apiKey      string
	baseURL     string
	model       string
	maxTokens   int
	temperature float64
	client      *http.Client
}

// NewClient cria um cliente. baseURL vazio usa o endpoint oficial; apiKey
// vazio é permitido e resulta em ErrNotConfigured em toda chamada.
func NewClient(apiKey, baseURL, model string, maxTokens int, temperature float64) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		apiKey:      apiKey,
		baseURL:     baseURL,
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
		client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// IsConfigured informa se há chave de API disponível
func (c *Client) IsConfigured() bool {
	return c.apiKey != ""
}

// ChatCompletion envia as mensagens e devolve o conteúdo da primeira choice
func (c *Client) ChatCompletion(ctx context.Context, messages []Message) (string, error) {
	if !c.IsConfigured() {
		return "", ErrNotConfigured
	}

	request := chatRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	}

	jsonData, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("erro ao serializar requisição: %w", err)
	}

	url := c.baseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("erro ao criar requisição: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("erro ao executar requisição: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("erro ao ler resposta: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("erro HTTP %d: %s", resp.StatusCode, string(body))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("erro ao interpretar resposta: %w", err)
	}

	if chatResp.Error != nil {
		return "", fmt.Errorf("erro da API: %s", chatResp.Error.Message)
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("resposta vazia do serviço de linguagem")
	}

	return chatResp.Choices[0].Message.Content, nil
}
