package domain

import "strings"

// AcceleratorVariant is the accelerator build selected for this machine.
type AcceleratorVariant struct {
	// CUDAVersion is the compact toolkit version (e.g. "118" for 11.8). Empty means CPU only.
	CUDAVersion string
	IndexURL    string
	Packages    []string
}

// Name returns the wheel tag of the variant, e.g. "cu118" or "cpu".
func (v AcceleratorVariant) Name() string {
	if v.CUDAVersion == "" {
		return "cpu"
	}
	return "cu" + v.CUDAVersion
}

// PreRelease reports whether the index serves nightly or test builds.
func (v AcceleratorVariant) PreRelease() bool {
	return strings.Contains(v.IndexURL, "nightly") || strings.Contains(v.IndexURL, "test")
}
