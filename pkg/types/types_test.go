package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestResidueTypesOrder(t *testing.T) {
	want := []ResidueType{ResidueGlass, ResidueMetal, ResidueOrganic, ResiduePaper, ResiduePlastic}
	if diff := cmp.Diff(want, ResidueTypes()); diff != "" {
		t.Errorf("residue order mismatch (-want +got):\n%s", diff)
	}
}

func TestResidueTypeTitle(t *testing.T) {
	for _, residue := range ResidueTypes() {
		title := residue.Title()
		if title == string(residue) {
			t.Errorf("Title() for %s should be human readable, got %q", residue, title)
		}
	}
}

func TestProfileTypeCanUploadEvidence(t *testing.T) {
	tests := []struct {
		profileType ProfileType
		want        bool
	}{
		{ProfileTypeRecycler, true},
		{ProfileTypeWasteGenerator, true},
		{ProfileTypeHodler, false},
	}

	for _, tt := range tests {
		if got := tt.profileType.CanUploadEvidence(); got != tt.want {
			t.Errorf("%s.CanUploadEvidence() = %v, want %v", tt.profileType, got, tt.want)
		}
	}
}

func TestCreateFormInputHasEvidence(t *testing.T) {
	tests := []struct {
		name  string
		input CreateFormInput
		want  bool
	}{
		{
			name:  "empty",
			input: CreateFormInput{},
			want:  false,
		},
		{
			name: "amounts only",
			input: CreateFormInput{Residues: map[ResidueType]ResidueInput{
				ResidueGlass: {Amount: 10},
				ResiduePaper: {Amount: 3},
			}},
			want: false,
		},
		{
			name: "video in one category",
			input: CreateFormInput{Residues: map[ResidueType]ResidueInput{
				ResidueGlass: {Amount: 10},
				ResidueMetal: {VideoFileName: "proof.mp4"},
			}},
			want: true,
		},
		{
			name: "invoice in one category",
			input: CreateFormInput{Residues: map[ResidueType]ResidueInput{
				ResiduePlastic: {InvoiceFileNames: []string{"invoice.pdf"}},
			}},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.input.HasEvidence(); got != tt.want {
				t.Errorf("HasEvidence() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestErrorKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"sentinel form not found", ErrFormNotFound, ErrorKindNotFound},
		{"sentinel evidence forbidden", ErrEvidenceForbidden, ErrorKindForbidden},
		{"wrapped storage error", fmt.Errorf("context: %w", StorageError(errors.New("boom"))), ErrorKindStorage},
		{"untyped error", errors.New("boom"), ErrorKindPersistence},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestErrorMessageAndUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := PersistenceError(cause)

	if !errors.Is(err, cause) {
		t.Error("expected the cause to survive unwrapping")
	}

	if err.Message() == "" {
		t.Error("expected display text for persistence errors")
	}

	if ErrUserNotFound.Error() != "user not found" {
		t.Errorf("sentinel detail lost: %q", ErrUserNotFound.Error())
	}
}
