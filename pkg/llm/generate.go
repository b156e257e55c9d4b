package llm

import (
	"context"
	"errors"
	"time"

	"Moodgraph/config"
	"Moodgraph/pkg/log"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"go.uber.org/zap"
)

const systemPrompt = "You are a helpful assistant that provides concise, well-formatted responses suitable for a vision board note. Keep responses focused, inspiring, and easy to read."

const defaultImagePrompt = "A beautiful, inspiring abstract image for a vision board, soft colors, artistic, dreamy atmosphere"

// Generator 便签文本/配图生成
type Generator struct {
	client     openai.Client
	textModel  string
	imageModel string
}

func NewGenerator(conf *config.Config) *Generator {
	opts := []option.RequestOption{
		option.WithAPIKey(conf.OpenAI.ApiKey),
	}
	if conf.OpenAI.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(conf.OpenAI.BaseURL))
	}
	return &Generator{
		client:     openai.NewClient(opts...),
		textModel:  conf.OpenAI.TextModel,
		imageModel: conf.OpenAI.ImageModel,
	}
}

// GenerateText 按提示词生成便签正文
func (g *Generator) GenerateText(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", errors.New("prompt is required")
	}

	startTime := time.Now()
	params := openai.ChatCompletionNewParams{
		Model: g.textModel,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(prompt),
		},
		MaxTokens: openai.Int(1024),
	}
	completion, err := g.client.Chat.Completions.New(ctx, params)
	if err != nil {
		log.L.Error("failed to generate text", zap.Error(err))
		return "", err
	}
	content := completion.Choices[0].Message.Content
	log.L.Info("generated text", zap.Int("len", len(content)), zap.Duration("gen time", time.Since(startTime)))
	return content, nil
}

// GenerateImage 按提示词生成配图，返回图片 URL 和模型改写后的提示词
// 提示词为空时用默认的愿景板风格提示词
func (g *Generator) GenerateImage(ctx context.Context, prompt string) (string, string, error) {
	if prompt == "" {
		prompt = defaultImagePrompt
	}

	startTime := time.Now()
	params := openai.ImageGenerateParams{
		Model:   g.imageModel,
		Prompt:  prompt,
		N:       openai.Int(1),
		Size:    openai.ImageGenerateParamsSize1024x1024,
		Quality: openai.ImageGenerateParamsQualityStandard,
	}
	image, err := g.client.Images.Generate(ctx, params)
	if err != nil {
		log.L.Error("failed to generate image", zap.Error(err))
		return "", "", err
	}
	if len(image.Data) == 0 {
		return "", "", errors.New("image generation returned no data")
	}
	log.L.Info("generated image", zap.Duration("gen time", time.Since(startTime)))
	return image.Data[0].URL, image.Data[0].RevisedPrompt, nil
}
