package types

// Label identifies one leaf classification category
type Label string

// The fixed classification categories. Order matters: the index of a label
// in this list must match the output index of the classification model.
const (
	Healthy          Label = "Healthy"
	EarlyBlight      Label = "Early Blight"
	LateBlight       Label = "Late Blight"
	BacterialSpot    Label = "Bacterial Leaf Spot"
	PowderyMildew    Label = "Powdery Mildew"
	LeafRust         Label = "Leaf Rust"
	MosaicVirus      Label = "Mosaic Virus"
	Anthracnose      Label = "Anthracnose"
	DownyMildew      Label = "Downy Mildew"
	SeptoriaLeafSpot Label = "Septoria Leaf Spot"
)

var allLabels = []Label{
	Healthy,
	EarlyBlight,
	LateBlight,
	BacterialSpot,
	PowderyMildew,
	LeafRust,
	MosaicVirus,
	Anthracnose,
	DownyMildew,
	SeptoriaLeafSpot,
}

// AllLabels returns the fixed ordered label set
func AllLabels() []Label {
	out := make([]Label, len(allLabels))
	copy(out, allLabels)
	return out
}

// NumLabels returns the size of the label set, which must equal the
// output width of the classification model
func NumLabels() int {
	return len(allLabels)
}

// LabelAt returns the label for a model output index
func LabelAt(index int) (Label, bool) {
	if index < 0 || index >= len(allLabels) {
		return "", false
	}
	return allLabels[index], true
}

// Valid reports whether l is a member of the fixed label set
func (l Label) Valid() bool {
	for _, known := range allLabels {
		if l == known {
			return true
		}
	}
	return false
}

// Severity classifies how urgent a diagnosis is
type Severity int

const (
	SeverityLow Severity = iota
	SeverityMedium
	SeverityHigh
)

// String returns the severity name
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	default:
		return "unknown"
	}
}

// PresentationHint maps a severity to the stylistic tag the presentation
// layer understands. This is the only place domain severity touches UI
// color naming.
func (s Severity) PresentationHint() string {
	switch s {
	case SeverityLow:
		return "success"
	case SeverityMedium:
		return "warning"
	case SeverityHigh:
		return "destructive"
	default:
		return "warning"
	}
}
