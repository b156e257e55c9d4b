package config

// OpenAI 文本/图片生成配置
type OpenAI struct {
	ApiKey     string `json:"api_key" yaml:"api_key"`
	BaseURL    string `json:"base_url" yaml:"base_url"`
	TextModel  string `json:"text_model" yaml:"text_model"`
	ImageModel string `json:"image_model" yaml:"image_model"`
}
