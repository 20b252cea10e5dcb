package publish

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vango-dev/seqtree/internal/errors"
	"github.com/vango-dev/seqtree/pkg/rendertree"
)

const (
	htmlContentType = "text/html; charset=utf-8"
	jsonContentType = "application/json"
)

// Publisher stores rendered pages.
type Publisher interface {
	// Publish stores html under name and returns the object key.
	Publish(ctx context.Context, name string, html []byte) (string, error)
}

// ObjectStore is the subset of the S3 API the publisher uses. *s3.Client
// satisfies it.
type ObjectStore interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	s3.ListObjectsV2APIClient
}

// Options configure the S3 client and publisher.
type Options struct {
	Bucket    string
	Prefix    string
	Region    string
	Endpoint  string
	PathStyle bool
}

// Object describes a published object.
type Object struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// S3Publisher writes pages to a bucket.
type S3Publisher struct {
	store  ObjectStore
	bucket string
	prefix string
	now    func() time.Time
}

var _ Publisher = (*S3Publisher)(nil)

// NewS3Publisher creates a publisher for opts.Bucket, prefixing keys with
// opts.Prefix.
func NewS3Publisher(store ObjectStore, opts Options) *S3Publisher {
	return &S3Publisher{
		store:  store,
		bucket: opts.Bucket,
		prefix: opts.Prefix,
		now:    time.Now,
	}
}

// Key returns the object key for name with the given extension.
func (p *S3Publisher) Key(name, ext string) string {
	return p.prefix + name + ext
}

// Publish implements Publisher. The key is prefix + name + ".html".
func (p *S3Publisher) Publish(ctx context.Context, name string, html []byte) (string, error) {
	key := p.Key(name, ".html")
	if err := p.put(ctx, key, htmlContentType, html); err != nil {
		return "", err
	}
	return key, nil
}

// PublishFrames stores frames as JSON under prefix + name + ".frames.json".
func (p *S3Publisher) PublishFrames(ctx context.Context, name string, frames []rendertree.Frame) (string, error) {
	data, err := json.MarshalIndent(rendertree.EncodeFrames(frames), "", "  ")
	if err != nil {
		return "", errors.FromError(err, errors.CodePublish)
	}
	key := p.Key(name, ".frames.json")
	if err := p.put(ctx, key, jsonContentType, data); err != nil {
		return "", err
	}
	return key, nil
}

func (p *S3Publisher) put(ctx context.Context, key, contentType string, body []byte) error {
	if p.bucket == "" {
		return errors.New(errors.CodePublish).
			WithDetail("no bucket configured").
			WithSuggestion("Set publish.bucket in seqtree.json or pass --bucket")
	}
	_, err := p.store.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
		Metadata: map[string]string{
			"published-at": p.now().UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return errors.New(errors.CodePublish).WithDetailf("put %s", key).Wrap(err)
	}
	return nil
}

// List returns the objects under the prefix, sorted by key.
func (p *S3Publisher) List(ctx context.Context) ([]Object, error) {
	paginator := s3.NewListObjectsV2Paginator(p.store, &s3.ListObjectsV2Input{
		Bucket: aws.String(p.bucket),
		Prefix: aws.String(p.prefix),
	})

	var objects []Object
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, errors.New(errors.CodePublish).WithDetail("list objects").Wrap(err)
		}
		for _, obj := range page.Contents {
			if obj.Key == nil {
				continue
			}
			o := Object{Key: *obj.Key}
			if obj.Size != nil {
				o.Size = *obj.Size
			}
			if obj.LastModified != nil {
				o.LastModified = *obj.LastModified
			}
			objects = append(objects, o)
		}
	}
	sort.Slice(objects, func(i, j int) bool { return objects[i].Key < objects[j].Key })
	return objects, nil
}

// Prune deletes objects under the prefix older than maxAge and returns
// their keys.
func (p *S3Publisher) Prune(ctx context.Context, maxAge time.Duration) ([]string, error) {
	objects, err := p.List(ctx)
	if err != nil {
		return nil, err
	}

	cutoff := p.now().Add(-maxAge)
	var deleted []string
	for _, obj := range objects {
		if obj.LastModified.IsZero() || !obj.LastModified.Before(cutoff) {
			continue
		}
		_, err := p.store.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(p.bucket),
			Key:    aws.String(obj.Key),
		})
		if err != nil {
			return deleted, errors.New(errors.CodePublish).WithDetailf("delete %s", obj.Key).Wrap(err)
		}
		deleted = append(deleted, obj.Key)
	}
	return deleted, nil
}

// NewS3Client creates an S3 client from opts. Credentials come from the
// AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY and AWS_SESSION_TOKEN
// environment variables.
func NewS3Client(opts Options) (*s3.Client, error) {
	if opts.Region == "" {
		return nil, errors.New(errors.CodePublish).WithDetail("no region configured")
	}
	s3opts := s3.Options{
		Region:       opts.Region,
		UsePathStyle: opts.PathStyle,
		Credentials:  aws.NewCredentialsCache(aws.CredentialsProviderFunc(envCredentials)),
	}
	if opts.Endpoint != "" {
		s3opts.BaseEndpoint = aws.String(strings.TrimSuffix(opts.Endpoint, "/"))
	}
	return s3.New(s3opts), nil
}

func envCredentials(context.Context) (aws.Credentials, error) {
	id := os.Getenv("AWS_ACCESS_KEY_ID")
	secret := os.Getenv("AWS_SECRET_ACCESS_KEY")
	if id == "" || secret == "" {
		return aws.Credentials{}, errors.New(errors.CodePublish).
			WithDetail("AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY must be set")
	}
	return aws.Credentials{
		AccessKeyID:     id,
		SecretAccessKey: secret,
		SessionToken:    os.Getenv("AWS_SESSION_TOKEN"),
		Source:          "Environment",
	}, nil
}
