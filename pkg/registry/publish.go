package registry

import (
	"bytes"
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vango-dev/nestroute/internal/errors"
)

// Publisher stores a snapshot somewhere other processes can read it.
type Publisher interface {
	Publish(ctx context.Context, snap *Snapshot) error
}

// FilePublisher writes snapshots to a local file. The file is replaced
// atomically, so readers never see a partial snapshot.
type FilePublisher struct {
	path string
}

// NewFilePublisher creates a FilePublisher writing to path. Missing parent
// directories are created on publish.
func NewFilePublisher(path string) *FilePublisher {
	return &FilePublisher{path: path}
}

// Path returns the target file.
func (p *FilePublisher) Path() string {
	return p.path
}

// Publish implements Publisher.
func (p *FilePublisher) Publish(ctx context.Context, snap *Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := snap.Marshal()
	if err != nil {
		return errors.New("E400").Wrap(err)
	}

	dir := filepath.Dir(p.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.New("E400").WithDetail("creating " + dir).Wrap(err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(p.path)+".*")
	if err != nil {
		return errors.New("E400").Wrap(err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.New("E400").Wrap(err)
	}
	if err := tmp.Close(); err != nil {
		return errors.New("E400").Wrap(err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return errors.New("E400").Wrap(err)
	}
	if err := os.Rename(tmp.Name(), p.path); err != nil {
		return errors.New("E400").WithDetail("replacing " + p.path).Wrap(err)
	}
	return nil
}

// PutObjectAPI is the part of *s3.Client the S3 publisher needs.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Publisher uploads snapshots to an S3 bucket.
type S3Publisher struct {
	client PutObjectAPI
	bucket string
	key    string
}

// NewS3Publisher creates an S3Publisher storing snapshots at bucket/key.
func NewS3Publisher(client PutObjectAPI, bucket, key string) *S3Publisher {
	return &S3Publisher{client: client, bucket: bucket, key: key}
}

// Publish implements Publisher.
func (p *S3Publisher) Publish(ctx context.Context, snap *Snapshot) error {
	data, err := snap.Marshal()
	if err != nil {
		return errors.New("E400").Wrap(err)
	}

	_, err = p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(p.bucket),
		Key:           aws.String(p.key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String("application/json"),
		CacheControl:  aws.String("no-cache"),
		Metadata: map[string]string{
			"snapshot-id": snap.ID,
			"route-count": strconv.Itoa(len(snap.Routes)),
		},
	})
	if err != nil {
		return errors.New("E400").
			WithDetail("s3://" + p.bucket + "/" + p.key).
			Wrap(err)
	}
	return nil
}

// Multi returns a Publisher that publishes to every pub in order. All
// publishers run even if one fails; the errors are joined.
func Multi(pubs ...Publisher) Publisher {
	return multiPublisher(pubs)
}

type multiPublisher []Publisher

func (m multiPublisher) Publish(ctx context.Context, snap *Snapshot) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, snap); err != nil {
			errs = append(errs, err)
		}
	}
	return stderrors.Join(errs...)
}
