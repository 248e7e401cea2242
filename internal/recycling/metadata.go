package recycling

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"recyloop/internal/utils"
	"recyloop/pkg/types"

	"golang.org/x/sync/errgroup"
)

const metadataDescription = "Proof of recycled residue declared and tracked on the recyloop platform."

// SubmitFormImage presigns the upload for the form's public image. The
// object name is deterministic per form, so re-requesting the URL targets
// the same object.
func (o *Orchestrator) SubmitFormImage(ctx context.Context, formID string) (string, error) {
	if _, err := o.forms.Form(ctx, formID); err != nil {
		return "", err
	}

	upload, err := o.storage.CreateAssetUpload(ctx, imageKey(formID))
	if err != nil {
		return "", err
	}

	return upload.CreateURL, nil
}

// CreateFormMetadata assembles the form's NFT-style metadata, presigns the
// upload for its deterministic JSON object, records the resulting public
// URL on the form, and hands back the upload URL plus the serialized body.
// Republication overwrites the stored URL, so the call is idempotent.
func (o *Orchestrator) CreateFormMetadata(ctx context.Context, formID string) (*types.MetadataPublication, error) {
	form, err := o.forms.Form(ctx, formID)
	if err != nil {
		return nil, err
	}

	var (
		owner     *types.User
		documents []*types.Document
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		owner, err = o.users.UserByID(gctx, form.UserID)
		return err
	})
	g.Go(func() error {
		var err error
		documents, err = o.documents.DocumentsByFormID(gctx, form.ID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	attributes := []types.MetadataAttribute{
		{TraitType: "Wallet", Value: utils.PtrString(form.WalletAddress)},
		{TraitType: "Verified", Value: verificationStatus(form.Authorized)},
	}
	for _, document := range documents {
		attributes = append(attributes, types.MetadataAttribute{
			TraitType: document.ResidueType.Title(),
			Value:     strconv.FormatFloat(document.Amount, 'f', -1, 64),
		})
	}

	upload, err := o.storage.CreateAssetUpload(ctx, metadataKey(form.ID))
	if err != nil {
		return nil, err
	}

	origin, err := uploadOrigin(upload.CreateURL)
	if err != nil {
		return nil, err
	}

	metadata := types.FormMetadata{
		Name:        owner.Email,
		Description: metadataDescription,
		Image:       origin + "/" + imageKey(form.ID),
		Attributes:  attributes,
	}

	body, err := json.MarshalIndent(metadata, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize form metadata: %w", err)
	}

	if err := o.forms.SetMetadataURL(ctx, form.ID, origin+"/"+metadataKey(form.ID)); err != nil {
		return nil, err
	}

	return &types.MetadataPublication{
		CreateURL: upload.CreateURL,
		Body:      string(body),
	}, nil
}

func imageKey(formID string) string {
	return fmt.Sprintf("images/%s.png", formID)
}

func metadataKey(formID string) string {
	return fmt.Sprintf("metadata/%s.json", formID)
}

func verificationStatus(authorized bool) string {
	if authorized {
		return "Verified"
	}
	return "Unverified"
}

// uploadOrigin strips a presigned URL down to scheme and host. Public asset
// URLs are the origin plus the deterministic object path.
func uploadOrigin(createURL string) (string, error) {
	parsed, err := url.Parse(createURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse upload url: %w", err)
	}

	return fmt.Sprintf("%s://%s", parsed.Scheme, parsed.Host), nil
}
