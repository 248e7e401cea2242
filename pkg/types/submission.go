package types

// ResidueInput declares one category of a form submission: the amount plus
// the desired file names for any evidence the client intends to upload.
type ResidueInput struct {
	Amount           float64  `json:"amount"`
	VideoFileName    string   `json:"videoFileName"`
	InvoiceFileNames []string `json:"invoiceFileNames"`
}

func (in ResidueInput) HasEvidence() bool {
	return in.VideoFileName != "" || len(in.InvoiceFileNames) > 0
}

type CreateFormInput struct {
	WalletAddress string                        `json:"walletAddress"`
	Residues      map[ResidueType]ResidueInput `json:"residues"`
}

// HasEvidence reports whether any category of the submission carries
// evidence. The eligibility check keys off this before anything persists.
func (in CreateFormInput) HasEvidence() bool {
	for _, residue := range in.Residues {
		if residue.HasEvidence() {
			return true
		}
	}
	return false
}

// ResidueUploads is the per-category slice of a submission response: the
// presigned upload URLs the client must PUT to, paired with the storage keys
// the service persisted. Invoice URL order matches the input file-name order.
type ResidueUploads struct {
	ResidueType       ResidueType `json:"residueType"`
	InvoiceCreateURLs []string    `json:"invoicesCreateUrl"`
	InvoiceFileNames  []string    `json:"invoicesFileName"`
	VideoCreateURL    string      `json:"videoCreateUrl"`
	VideoFileName     string      `json:"videoFileName"`
}

type FormSubmission struct {
	Form    *Form            `json:"form"`
	Uploads []ResidueUploads `json:"uploads"`
}

// AggregateReport carries the total declared amount per eligible profile
// type. Profile types with no matching forms report zero, never an error.
type AggregateReport struct {
	Recycler       float64 `json:"recycler"`
	WasteGenerator float64 `json:"wasteGenerator"`
}

// DocumentLinks pairs a persisted document with presigned download URLs for
// its evidence keys.
type DocumentLinks struct {
	Document    *Document `json:"document"`
	VideoURL    string    `json:"videoUrl,omitempty"`
	InvoiceURLs []string  `json:"invoiceUrls,omitempty"`
}
