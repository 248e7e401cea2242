package recycling

import (
	"context"
	"strings"
	"time"

	"recyloop/internal/storage"
	"recyloop/internal/utils"
	"recyloop/pkg/types"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// storageDispatchTimeout bounds one category's presign fan-out. A stalled
// gateway fails the submission before any row is written.
const storageDispatchTimeout = 10 * time.Second

// CreateForm runs the submission workflow: resolve the uploader, check
// evidence eligibility, presign uploads for every piece of evidence, then
// persist the form and its documents in one transaction. Storage dispatch
// happens before anything is written, so a failed presign leaves no rows
// behind.
func (o *Orchestrator) CreateForm(ctx context.Context, authID string, input types.CreateFormInput) (*types.FormSubmission, error) {
	// Amounts are non-negative. A negative document amount would feed
	// straight into the aggregate sums, so it is rejected before anything
	// is dispatched or written.
	for _, residueInput := range input.Residues {
		if residueInput.Amount < 0 {
			return nil, types.ErrNegativeAmount
		}
	}

	user, err := o.users.UserByAuthID(ctx, authID)
	if err != nil {
		return nil, err
	}

	hasEvidence := input.HasEvidence()
	if hasEvidence && !user.ProfileType.CanUploadEvidence() {
		return nil, types.ErrEvidenceForbidden
	}

	form := &types.Form{
		ID:     utils.NanoID(),
		UserID: user.ID,
	}
	if wallet := strings.TrimSpace(input.WalletAddress); wallet != "" {
		form.WalletAddress = &wallet
	}

	var (
		documents []*types.Document
		uploads   = make([]types.ResidueUploads, 0, len(types.ResidueTypes()))
	)

	// Categories dispatch in the fixed ResidueTypes order; only the presign
	// calls within one category run concurrently.
	for _, residue := range types.ResidueTypes() {
		residueInput := input.Residues[residue]

		// A category materializes a document only when it declares an
		// amount or carries evidence.
		if residueInput.Amount <= 0 && !residueInput.HasEvidence() {
			continue
		}

		document := &types.Document{
			ID:          utils.NanoID(),
			ResidueType: residue,
			Amount:      residueInput.Amount,
			InvoiceKeys: make([]string, 0, len(residueInput.InvoiceFileNames)),
		}

		if residueInput.HasEvidence() {
			entry, err := o.dispatchEvidence(ctx, residue, residueInput, document)
			if err != nil {
				return nil, err
			}
			uploads = append(uploads, *entry)
		}

		documents = append(documents, document)
	}

	if err := o.forms.CreateWithDocuments(ctx, form, documents); err != nil {
		return nil, err
	}

	o.invalidateAggregate(ctx, user.ProfileType)

	o.logger.WithFields(logrus.Fields{
		"form_id":   form.ID,
		"user_id":   user.ID,
		"documents": len(documents),
		"evidence":  hasEvidence,
	}).Info("form submitted")

	return &types.FormSubmission{Form: form, Uploads: uploads}, nil
}

// dispatchEvidence presigns the category's video and invoice uploads
// concurrently, records the storage-assigned keys on the pending document,
// and returns the response entry. Invoice URL order follows input order.
func (o *Orchestrator) dispatchEvidence(
	ctx context.Context,
	residue types.ResidueType,
	input types.ResidueInput,
	document *types.Document,
) (*types.ResidueUploads, error) {
	var (
		videoUpload    *storage.PresignedUpload
		invoiceUploads = make([]*storage.PresignedUpload, len(input.InvoiceFileNames))
	)

	ctx, cancel := context.WithTimeout(ctx, storageDispatchTimeout)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)

	if input.VideoFileName != "" {
		g.Go(func() error {
			upload, err := o.storage.CreateEvidenceUpload(gctx, input.VideoFileName, residue)
			if err != nil {
				return err
			}
			videoUpload = upload
			return nil
		})
	}

	for i, fileName := range input.InvoiceFileNames {
		g.Go(func() error {
			upload, err := o.storage.CreateEvidenceUpload(gctx, fileName, residue)
			if err != nil {
				return err
			}
			invoiceUploads[i] = upload
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	entry := types.ResidueUploads{
		ResidueType:       residue,
		InvoiceCreateURLs: make([]string, 0, len(invoiceUploads)),
		InvoiceFileNames:  make([]string, 0, len(invoiceUploads)),
	}

	if videoUpload != nil {
		document.VideoKey = &videoUpload.FileName
		entry.VideoCreateURL = videoUpload.CreateURL
		entry.VideoFileName = videoUpload.FileName
	}

	for _, upload := range invoiceUploads {
		document.InvoiceKeys = append(document.InvoiceKeys, upload.FileName)
		entry.InvoiceCreateURLs = append(entry.InvoiceCreateURLs, upload.CreateURL)
		entry.InvoiceFileNames = append(entry.InvoiceFileNames, upload.FileName)
	}

	return &entry, nil
}
