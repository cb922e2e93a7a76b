package blobstore

import (
	"context"
	"io"
	"path"
	"project-tracker/config"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// presignExpire 附件下载链接的有效期
const presignExpire = 15 * time.Minute

// s3Store S3 对象存储
type s3Store struct {
	cfg      config.S3
	initOnce sync.Once
	initErr  error
	client   *s3.Client
	uploader *manager.Uploader
	presign  *s3.PresignClient
}

func newS3Store(cfg config.S3) *s3Store {
	return &s3Store{cfg: cfg}
}

func (s *s3Store) init(ctx context.Context) error {
	s.initOnce.Do(func() {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion(s.cfg.Region),
			awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
				s.cfg.AccessKey, s.cfg.SecretAccessKey, "",
			)),
		)
		if err != nil {
			s.initErr = err
			return
		}

		s.client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			if s.cfg.Endpoint != "" {
				o.BaseEndpoint = aws.String(s.cfg.Endpoint)
			}
			o.UsePathStyle = s.cfg.UsePathStyle
		})
		s.uploader = manager.NewUploader(s.client)
		s.presign = s3.NewPresignClient(s.client)
	})
	return s.initErr
}

// objectKey 在存储约定路径前拼接配置的对象前缀
func (s *s3Store) objectKey(key string) string {
	full := path.Join(strings.Trim(s.cfg.Prefix, "/"), key)
	return strings.TrimLeft(full, "/")
}

func (s *s3Store) Put(ctx context.Context, key string, r io.Reader, contentType string) error {
	if err := s.init(ctx); err != nil {
		return err
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Bucket),
		Key:         aws.String(s.objectKey(key)),
		Body:        r,
		ContentType: aws.String(contentType),
	})
	return err
}

// URL 生成预签名下载链接，桶为私有时前端也能直接访问
func (s *s3Store) URL(ctx context.Context, key string) (string, error) {
	if err := s.init(ctx); err != nil {
		return "", err
	}

	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(s.objectKey(key)),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = presignExpire
	})
	if err != nil {
		return "", err
	}
	return req.URL, nil
}
