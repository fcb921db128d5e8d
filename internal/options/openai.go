package options

import (
	"context"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const DefaultOpenAIModel = "gpt-4o-mini"

// OpenAI completes prompts with the Chat Completions API. A base URL makes
// it work against any OpenAI compatible provider.
type OpenAI struct {
	client openai.Client
	model  string
}

func NewOpenAI(apiKey, model, baseURL string, opts ...option.RequestOption) *OpenAI {
	if model == "" {
		model = DefaultOpenAIModel
	}
	base := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		base = append(base, option.WithBaseURL(baseURL))
	}
	return &OpenAI{client: openai.NewClient(append(base, opts...)...), model: model}
}

func (o *OpenAI) Name() string { return "openai" }

func (o *OpenAI) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:               o.model,
		MaxCompletionTokens: openai.Int(maxTokens),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", errNoText
	}
	return resp.Choices[0].Message.Content, nil
}
