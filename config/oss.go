package config

// OssConfig 对象存储配置，未配置时图片落本地磁盘
type OssConfig struct {
	Endpoint string `json:"endpoint" yaml:"endpoint"`
	Region   string `json:"region" yaml:"region"`
	Bucket   string `json:"bucket" yaml:"bucket"`
}

func ProvideOssConfig(c *Config) *OssConfig {
	return c.Oss
}
