package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"recyloop/internal/utils"
	"recyloop/pkg/types"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const evidenceBasePath = "evidence"

// Gateway issues presigned S3 URLs so clients upload and download evidence
// directly, without routing bytes through this service.
type Gateway struct {
	presigner      *s3.PresignClient
	evidenceBucket string
	publicBucket   string
	urlTTL         time.Duration
}

func NewGateway(client *s3.Client, config *types.Config) *Gateway {
	return &Gateway{
		presigner:      s3.NewPresignClient(client),
		evidenceBucket: config.EvidenceBucket,
		publicBucket:   config.PublicBucket,
		urlTTL:         time.Duration(config.UploadURLTTLSec) * time.Second,
	}
}

// PresignedUpload pairs the storage-assigned object key with the
// time-limited URL the client must PUT the file to.
type PresignedUpload struct {
	FileName  string
	CreateURL string
}

// CreateEvidenceUpload presigns a PUT for one evidence file. The assigned
// key carries the residue category as a path segment plus a nanoid suffix,
// so keys never collide across categories or repeated desired names.
func (g *Gateway) CreateEvidenceUpload(ctx context.Context, fileName string, residue types.ResidueType) (*PresignedUpload, error) {
	key := evidenceKey(fileName, residue)

	request, err := g.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(g.evidenceBucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentTypeFor(fileName)),
	}, s3.WithPresignExpires(g.urlTTL))
	if err != nil {
		return nil, types.StorageError(fmt.Errorf("failed to presign evidence upload for %q: %w", fileName, err))
	}

	return &PresignedUpload{FileName: key, CreateURL: request.URL}, nil
}

// CreateAssetUpload presigns a PUT for a public asset under the exact key
// given. Public asset names are deterministic per form, so the key is taken
// as-is rather than suffixed.
func (g *Gateway) CreateAssetUpload(ctx context.Context, key string) (*PresignedUpload, error) {
	request, err := g.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(g.publicBucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentTypeFor(key)),
	}, s3.WithPresignExpires(g.urlTTL))
	if err != nil {
		return nil, types.StorageError(fmt.Errorf("failed to presign asset upload for %q: %w", key, err))
	}

	return &PresignedUpload{FileName: key, CreateURL: request.URL}, nil
}

// EvidenceDownloadURL presigns a GET for a stored evidence key.
func (g *Gateway) EvidenceDownloadURL(ctx context.Context, key string) (string, error) {
	request, err := g.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(g.evidenceBucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(g.urlTTL))
	if err != nil {
		return "", types.StorageError(fmt.Errorf("failed to presign evidence download for %q: %w", key, err))
	}

	return request.URL, nil
}

func evidenceKey(fileName string, residue types.ResidueType) string {
	return fmt.Sprintf("%s/%s/%s_%s",
		evidenceBasePath,
		strings.ToLower(string(residue)),
		utils.NanoIDSize(12),
		sanitizeFileName(fileName),
	)
}

func sanitizeFileName(fileName string) string {
	name := strings.ReplaceAll(fileName, " ", "_")
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	return name
}

func contentTypeFor(fileName string) string {
	switch filepath.Ext(fileName) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".mp4":
		return "video/mp4"
	case ".mov":
		return "video/quicktime"
	case ".pdf":
		return "application/pdf"
	case ".json":
		return "application/json"
	default:
		return "application/octet-stream"
	}
}
