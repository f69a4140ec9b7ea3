package summary

import "fmt"

// Depth selects the verbosity and section structure of a requested summary.
type Depth string

const (
	DepthBasic     Depth = "basic"
	DepthDetailed  Depth = "detailed"
	DepthTechnical Depth = "technical"
)

// Depths lists every valid depth, in display order.
func Depths() []Depth {
	return []Depth{DepthBasic, DepthDetailed, DepthTechnical}
}

// ParseDepth validates a depth string at the API boundary. Unrecognized
// values are rejected here rather than surfacing as a template lookup
// failure deep inside the prompt builder.
func ParseDepth(s string) (Depth, error) {
	switch Depth(s) {
	case DepthBasic, DepthDetailed, DepthTechnical:
		return Depth(s), nil
	}
	return "", fmt.Errorf("invalid summary depth %q (valid: basic, detailed, technical)", s)
}

func (d Depth) String() string {
	return string(d)
}
