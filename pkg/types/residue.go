package types

type ResidueType string

const (
	ResidueGlass   ResidueType = "GLASS"
	ResidueMetal   ResidueType = "METAL"
	ResidueOrganic ResidueType = "ORGANIC"
	ResiduePaper   ResidueType = "PAPER"
	ResiduePlastic ResidueType = "PLASTIC"
)

// ResidueTypes returns all residue categories in their fixed dispatch order.
// Submission fan-out and response assembly both iterate this slice, so the
// order here is the order callers observe.
func ResidueTypes() []ResidueType {
	return []ResidueType{
		ResidueGlass,
		ResidueMetal,
		ResidueOrganic,
		ResiduePaper,
		ResiduePlastic,
	}
}

func (r ResidueType) Valid() bool {
	switch r {
	case ResidueGlass, ResidueMetal, ResidueOrganic, ResiduePaper, ResiduePlastic:
		return true
	}
	return false
}

// Title returns the human-readable form used in published metadata attributes.
func (r ResidueType) Title() string {
	switch r {
	case ResidueGlass:
		return "Glass"
	case ResidueMetal:
		return "Metal"
	case ResidueOrganic:
		return "Organic"
	case ResiduePaper:
		return "Paper"
	case ResiduePlastic:
		return "Plastic"
	}
	return string(r)
}
