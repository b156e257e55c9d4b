package config

// Upload 本地上传目录配置
type Upload struct {
	Dir     string `json:"dir" yaml:"dir"`           // 本地存储目录
	BaseURL string `json:"base_url" yaml:"base_url"` // 返回给客户端的访问前缀
}
