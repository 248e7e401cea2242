package types

// FormMetadata is the NFT-style metadata payload published for an authorized
// form. The caller uploads the serialized body to the presigned URL.
type FormMetadata struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Image       string              `json:"image"`
	Attributes  []MetadataAttribute `json:"attributes"`
}

type MetadataAttribute struct {
	TraitType string `json:"trait_type"`
	Value     string `json:"value"`
}

// MetadataPublication is returned by metadata creation: where to upload and
// what to upload.
type MetadataPublication struct {
	CreateURL string `json:"createUrl"`
	Body      string `json:"body"`
}
