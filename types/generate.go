package types

type GenerateTextRequest struct {
	Prompt string `json:"prompt"`
}

type GenerateTextResponse struct {
	Success bool   `json:"success"`
	Text    string `json:"text"`
}

type GenerateImageRequest struct {
	Prompt string `json:"prompt"`
}

type GenerateImageResponse struct {
	Success       bool   `json:"success"`
	ImageURL      string `json:"image_url"`
	RevisedPrompt string `json:"revised_prompt"`
}
