package exporter

// Status values published for a build configuration
const (
	StatusSuccess  float64 = 1
	StatusFailure  float64 = 0
	StatusNoBuilds float64 = -1
)

// SampleKey uniquely identifies a build configuration within a poll cycle
type SampleKey struct {
	TemplateID  string
	BuildTypeID string
}

// Sample is the normalized, publishable status for a single build configuration
type Sample struct {
	Key           SampleKey
	BuildTypeName string
	BuildURL      string
	Status        float64
}

// Snapshot is the point-in-time set of samples produced by one completed poll cycle;
// once installed it is never mutated, only replaced as a whole
type Snapshot map[SampleKey]Sample

// Clone returns an independently iterable copy of the snapshot
func (s Snapshot) Clone() Snapshot {
	clone := make(Snapshot, len(s))
	for k, v := range s {
		clone[k] = v
	}
	return clone
}
