package cache

// Keyer builds cache keys. Implementations must be deterministic: equal
// arguments always give equal keys.
type Keyer interface {
	// LayoutKey identifies a layout computed from labels hashing to
	// inputHash.
	LayoutKey(inputHash string, opts LayoutKeyOpts) string
	// ArtifactKey identifies a rendered output of the layout hashing to
	// layoutHash.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts are the options that change a computed layout.
type LayoutKeyOpts struct {
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	MinFont    float64 `json:"min_font"`
	MaxFont    float64 `json:"max_font"`
	Padding    float64 `json:"padding"`
	Iterations int     `json:"iterations"`
}

// ArtifactKeyOpts are the options that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format      string  `json:"format"`
	Style       string  `json:"style"`
	Seed        uint64  `json:"seed"`
	Boxes       bool    `json:"boxes"`
	Interactive bool    `json:"interactive"`
	Background  string  `json:"background"`
	Scale       float64 `json:"scale"`
}

// DefaultKeyer hashes every argument into a fixed-length key under a
// "layout" or "artifact" prefix.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey implements Keyer.
func (DefaultKeyer) LayoutKey(inputHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", inputHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

var _ Keyer = DefaultKeyer{}
