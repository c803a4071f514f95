// Package filestore 保存导出的 xlsx：配置了 bucket 时上传到 S3 兼容存储并返回预签名下载地址，
// 否则写入本地目录。
package filestore

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"facility-work-tracker/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const defaultExpire = time.Hour

type StoredFile struct {
	Key       string     `json:"key"`
	URL       string     `json:"url,omitempty"`  // 预签名下载地址
	Path      string     `json:"path,omitempty"` // 本地存储时的文件路径
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

type Store struct {
	cfg config.S3

	once     sync.Once
	initErr  error
	client   *s3.Client
	uploader *manager.Uploader
}

var Default *Store

func Init() {
	Default = New(config.Get().S3)
}

func New(cfg config.S3) *Store {
	return &Store{cfg: cfg}
}

// Remote 是否上传到对象存储
func (s *Store) Remote() bool {
	return s.cfg.Bucket != ""
}

func (s *Store) initS3(ctx context.Context) error {
	s.once.Do(func() {
		opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(s.cfg.Region)}
		if s.cfg.AccessKey != "" {
			opts = append(opts, awsconfig.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(s.cfg.AccessKey, s.cfg.SecretAccessKey, ""),
			))
		}
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
		if err != nil {
			s.initErr = fmt.Errorf("加载 S3 配置失败: %w", err)
			return
		}
		s.client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			if s.cfg.Endpoint != "" {
				o.BaseEndpoint = aws.String(s.cfg.Endpoint)
			}
			o.UsePathStyle = s.cfg.UsePathStyle
		})
		s.uploader = manager.NewUploader(s.client)
	})
	return s.initErr
}

// Key 对象 key：前缀/日期/时间戳-文件名
func (s *Store) Key(name string, now time.Time) string {
	base := strings.ReplaceAll(path.Base(name), " ", "_")
	key := path.Join(strings.Trim(s.cfg.Prefix, "/"), now.Format("20060102"), fmt.Sprintf("%d-%s", now.UnixNano(), base))
	return strings.TrimLeft(key, "/")
}

func (s *Store) Save(ctx context.Context, name, contentType string, data []byte) (*StoredFile, error) {
	key := s.Key(name, time.Now())
	if !s.Remote() {
		return s.saveLocal(key, data)
	}
	if err := s.initS3(ctx); err != nil {
		return nil, err
	}
	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return nil, fmt.Errorf("上传导出文件失败: %w", err)
	}
	url, err := s.PresignDownload(ctx, key, defaultExpire)
	if err != nil {
		return nil, err
	}
	expires := time.Now().Add(defaultExpire)
	return &StoredFile{Key: key, URL: url, ExpiresAt: &expires}, nil
}

// PresignDownload 私有 bucket 的临时下载地址
func (s *Store) PresignDownload(ctx context.Context, key string, expire time.Duration) (string, error) {
	if err := s.initS3(ctx); err != nil {
		return "", err
	}
	if expire <= 0 {
		expire = defaultExpire
	}
	req, err := s3.NewPresignClient(s.client).PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	}, func(o *s3.PresignOptions) {
		o.Expires = expire
	})
	if err != nil {
		return "", fmt.Errorf("生成预签名下载地址失败: %w", err)
	}
	return req.URL, nil
}

func (s *Store) saveLocal(key string, data []byte) (*StoredFile, error) {
	dir := s.cfg.LocalDir
	if dir == "" {
		dir = "./data/exports"
	}
	full := filepath.Join(dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return nil, fmt.Errorf("创建导出目录失败: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return nil, fmt.Errorf("写入导出文件失败: %w", err)
	}
	return &StoredFile{Key: key, Path: full}, nil
}
