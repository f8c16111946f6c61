package store

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/google/uuid"
	"github.com/jsphweid/midisong/constants"
	"github.com/jsphweid/midisong/model"
	"github.com/jsphweid/midisong/util"
	"github.com/pkg/errors"
)

// Sink receives the files of one successful conversion of title.
type Sink interface {
	Write(ctx context.Context, title string, files []model.SongFile) error
}

type DirSink struct {
	Dir string
}

// Write replaces every earlier output of title, so a conversion that now
// needs fewer chunks leaves no stale <title>_<i>.song behind.
func (d DirSink) Write(ctx context.Context, title string, files []model.SongFile) error {
	if err := util.EnsureDir(d.Dir); err != nil {
		return err
	}
	if err := d.removeTitle(title); err != nil {
		return err
	}
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		path := filepath.Join(d.Dir, f.Name)
		if err := os.WriteFile(path, []byte(f.Content), 0644); err != nil {
			return errors.Wrapf(err, "write failed for song file %v", path)
		}
	}
	return nil
}

func (d DirSink) removeTitle(title string) error {
	r := regexp.MustCompile(`^` + regexp.QuoteMeta(title) + `(_\d+)?` + regexp.QuoteMeta(constants.SongExt) + `$`)
	entries, err := os.ReadDir(d.Dir)
	if err != nil {
		return errors.Wrap(err, "could not read output dir")
	}
	for _, entry := range entries {
		if entry.IsDir() || !r.MatchString(entry.Name()) {
			continue
		}
		if err := os.Remove(filepath.Join(d.Dir, entry.Name())); err != nil {
			return errors.Wrapf(err, "could not remove old song file %v", entry.Name())
		}
	}
	return nil
}

type uploader interface {
	UploadWithContext(ctx aws.Context, input *s3manager.UploadInput, opts ...func(*s3manager.Uploader)) (*s3manager.UploadOutput, error)
}

// S3Sink uploads every file as <Prefix><name>. All files of one conversion
// share a conversion-id metadata value.
type S3Sink struct {
	Bucket   string
	Prefix   string
	uploader uploader
}

type S3Config struct {
	Bucket string
	Prefix string
	Region string
	// Endpoint overrides the AWS endpoint, e.g. http://localhost:4566.
	Endpoint string
}

func NewS3Sink(cfg S3Config) (*S3Sink, error) {
	awsCfg := &aws.Config{Region: aws.String(cfg.Region)}
	if cfg.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Endpoint)
		awsCfg.S3ForcePathStyle = aws.Bool(true)
	}
	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, errors.Wrap(err, "could not create a new AWS session")
	}
	return &S3Sink{Bucket: cfg.Bucket, Prefix: cfg.Prefix, uploader: s3manager.NewUploader(sess)}, nil
}

// Write uploads files under their names. Keys from an earlier, longer
// conversion of title are left in place.
func (s *S3Sink) Write(ctx context.Context, title string, files []model.SongFile) error {
	conversionID := uuid.New().String()
	for _, f := range files {
		_, err := s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
			Bucket:      aws.String(s.Bucket),
			Key:         aws.String(s.Prefix + f.Name),
			Body:        strings.NewReader(f.Content),
			ContentType: aws.String("text/plain"),
			Metadata: map[string]*string{
				"conversion-id": aws.String(conversionID),
				"title":         aws.String(title),
			},
		})
		if err != nil {
			return errors.Wrapf(err, "upload failed for s3://%v/%v%v", s.Bucket, s.Prefix, f.Name)
		}
	}
	return nil
}
