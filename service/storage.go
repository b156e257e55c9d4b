package service

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"Moodgraph/config"
	"Moodgraph/pkg/log"

	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss"
	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss/credentials"
	"github.com/google/uuid"
	"go.uber.org/zap"
	_ "golang.org/x/image/webp"
)

const maxImageSize int64 = 10 << 20 // 10MB

var _ IStorage = (*LocalStorage)(nil)
var _ IStorage = (*OssStorage)(nil)

type IStorage interface {
	// SaveImage 保存上传的图片，返回客户端可访问的 URL
	SaveImage(ctx context.Context, header *multipart.FileHeader) (string, error)
}

// NewStorage 配了 oss 就传对象存储，否则落本地磁盘
func NewStorage(conf *config.Config) IStorage {
	if conf.Oss != nil && conf.Oss.Bucket != "" {
		provider := credentials.NewEnvironmentVariableCredentialsProvider()
		cfg := oss.LoadDefaultConfig().WithCredentialsProvider(provider).
			WithEndpoint(conf.Oss.Endpoint).WithRegion(conf.Oss.Region)
		log.L.Info("upload storage: oss", zap.String("bucket", conf.Oss.Bucket))
		return &OssStorage{
			Client:   oss.NewClient(cfg),
			Bucket:   conf.Oss.Bucket,
			Endpoint: conf.Oss.Endpoint,
		}
	}

	dir := "uploads"
	baseURL := "/uploads"
	if conf.Upload != nil {
		if conf.Upload.Dir != "" {
			dir = conf.Upload.Dir
		}
		if conf.Upload.BaseURL != "" {
			baseURL = conf.Upload.BaseURL
		}
	}
	log.L.Info("upload storage: local", zap.String("dir", dir))
	return &LocalStorage{Dir: dir, BaseURL: baseURL}
}

// ValidateImage 校验上传图片的大小和格式，返回像素尺寸
func ValidateImage(header *multipart.FileHeader) (int, int, error) {
	if header == nil {
		return 0, 0, fmt.Errorf("missing image")
	}
	if header.Size <= 0 || header.Size > maxImageSize {
		return 0, 0, fmt.Errorf("image size exceeds 10MB")
	}

	f, err := header.Open()
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	// MIME 校验，读取前 512 bytes
	head := make([]byte, 512)
	n, _ := f.Read(head)
	contentType := http.DetectContentType(head[:n])
	allowedMime := map[string]bool{
		"image/jpeg": true,
		"image/png":  true,
		"image/gif":  true,
		"image/webp": true,
	}
	if !allowedMime[contentType] {
		return 0, 0, fmt.Errorf("unsupported image type: %s", contentType)
	}

	if seeker, ok := f.(io.Seeker); ok {
		_, _ = seeker.Seek(0, io.SeekStart)
	}

	// 读取尺寸和格式，不解码全图
	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid image: %w", err)
	}
	allowedFmt := map[string]bool{"jpeg": true, "png": true, "gif": true, "webp": true}
	if !allowedFmt[strings.ToLower(format)] {
		return 0, 0, fmt.Errorf("unsupported image format: %s", format)
	}

	return cfg.Width, cfg.Height, nil
}

// LocalStorage 本地磁盘存储，经 /uploads 静态路由访问
type LocalStorage struct {
	Dir     string
	BaseURL string
}

func (s *LocalStorage) SaveImage(ctx context.Context, header *multipart.FileHeader) (string, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", err
	}

	src, err := header.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	filename := uuid.NewString() + strings.ToLower(path.Ext(header.Filename))
	dst, err := os.Create(filepath.Join(s.Dir, filename))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return s.BaseURL + "/" + filename, nil
}

// OssStorage 对象存储
type OssStorage struct {
	Client   *oss.Client
	Bucket   string
	Endpoint string
}

func (s *OssStorage) SaveImage(ctx context.Context, header *multipart.FileHeader) (string, error) {
	src, err := header.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	objectKey := fmt.Sprintf("note/%s/%s%s", time.Now().Format("2006/01/02"),
		uuid.NewString(), strings.ToLower(path.Ext(header.Filename)))

	_, err = s.Client.PutObject(ctx, &oss.PutObjectRequest{
		Bucket: oss.Ptr(s.Bucket),
		Key:    oss.Ptr(objectKey),
		Body:   src,
	})
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("https://%s.%s/%s", s.Bucket, s.Endpoint, objectKey), nil
}
