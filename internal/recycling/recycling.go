// Package recycling coordinates form submission, authorization, aggregate
// reporting, and metadata publication over the persistence and storage
// collaborators.
package recycling

import (
	"context"
	"time"

	"recyloop/internal/storage"
	"recyloop/pkg/types"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

type UserDirectory interface {
	UserByAuthID(ctx context.Context, authID string) (*types.User, error)
	UserByID(ctx context.Context, userID string) (*types.User, error)
}

type FormStore interface {
	Form(ctx context.Context, formID string) (*types.Form, error)
	Forms(ctx context.Context, filter types.FormFilter) ([]*types.Form, error)
	CreateWithDocuments(ctx context.Context, form *types.Form, documents []*types.Document) error
	UpdateAuthorization(ctx context.Context, formID string, authorized bool) error
	SetMetadataURL(ctx context.Context, formID, metadataURL string) error
}

type DocumentCatalog interface {
	DocumentsByFormID(ctx context.Context, formID string) ([]*types.Document, error)
	SumAmountByProfileType(ctx context.Context, profileType types.ProfileType) (float64, error)
}

type StorageGateway interface {
	CreateEvidenceUpload(ctx context.Context, fileName string, residue types.ResidueType) (*storage.PresignedUpload, error)
	CreateAssetUpload(ctx context.Context, key string) (*storage.PresignedUpload, error)
	EvidenceDownloadURL(ctx context.Context, key string) (string, error)
}

type Orchestrator struct {
	logger    *logrus.Logger
	users     UserDirectory
	forms     FormStore
	documents DocumentCatalog
	storage   StorageGateway

	// cache is optional; a nil client disables aggregate caching.
	cache    *redis.Client
	cacheTTL time.Duration
}

func New(
	logger *logrus.Logger,
	users UserDirectory,
	forms FormStore,
	documents DocumentCatalog,
	gateway StorageGateway,
	cache *redis.Client,
	cacheTTL time.Duration,
) *Orchestrator {
	return &Orchestrator{
		logger:    logger,
		users:     users,
		forms:     forms,
		documents: documents,
		storage:   gateway,
		cache:     cache,
		cacheTTL:  cacheTTL,
	}
}

func (o *Orchestrator) Form(ctx context.Context, formID string) (*types.Form, error) {
	return o.forms.Form(ctx, formID)
}

func (o *Orchestrator) Forms(ctx context.Context, filter types.FormFilter) ([]*types.Form, error) {
	return o.forms.Forms(ctx, filter)
}

// FormDocuments returns the form's documents with presigned download URLs
// for each stored evidence key.
func (o *Orchestrator) FormDocuments(ctx context.Context, formID string) ([]types.DocumentLinks, error) {
	if _, err := o.forms.Form(ctx, formID); err != nil {
		return nil, err
	}

	documents, err := o.documents.DocumentsByFormID(ctx, formID)
	if err != nil {
		return nil, err
	}

	links := make([]types.DocumentLinks, 0, len(documents))
	for _, document := range documents {
		link := types.DocumentLinks{Document: document}

		if document.VideoKey != nil {
			link.VideoURL, err = o.storage.EvidenceDownloadURL(ctx, *document.VideoKey)
			if err != nil {
				return nil, err
			}
		}

		for _, key := range document.InvoiceKeys {
			invoiceURL, err := o.storage.EvidenceDownloadURL(ctx, key)
			if err != nil {
				return nil, err
			}
			link.InvoiceURLs = append(link.InvoiceURLs, invoiceURL)
		}

		links = append(links, link)
	}

	return links, nil
}

// AuthorizeForm sets the admin-authorization flag. The flag may be flipped
// either way any number of times.
//
// TODO: eligibility rules for who may authorize (beyond the admin group
// gate at the HTTP layer) are undecided product policy.
func (o *Orchestrator) AuthorizeForm(ctx context.Context, formID string, authorized bool) (*types.Form, error) {
	form, err := o.forms.Form(ctx, formID)
	if err != nil {
		return nil, err
	}

	if err := o.forms.UpdateAuthorization(ctx, formID, authorized); err != nil {
		return nil, err
	}

	form.Authorized = authorized

	o.logger.WithFields(logrus.Fields{
		"form_id":    formID,
		"authorized": authorized,
	}).Info("form authorization updated")

	return form, nil
}
