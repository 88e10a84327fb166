// Package cpu reports the host CPU features used to pick row kernels.
//
// Detection runs once and is cached. Tests can pin a feature set with
// SetForcedFeatures, typically with ForceGeneric set so the portable
// kernels are exercised on every machine.
package cpu

import (
	"strings"
	"sync"
)

// Features describes CPU capabilities relevant to kernel selection.
type Features struct {
	HasSSE2   bool
	HasAVX    bool
	HasAVX2   bool
	HasFMA    bool
	HasAVX512 bool

	HasNEON bool

	// ForceGeneric restricts kernel lookup to the generic implementations.
	ForceGeneric bool

	Architecture string // runtime.GOARCH
}

var (
	detectOnce       sync.Once
	detectedFeatures Features

	forcedMu       sync.RWMutex
	forcedFeatures *Features
)

// DetectFeatures returns the features of the current CPU, or the forced set
// if one was installed with SetForcedFeatures.
func DetectFeatures() Features {
	forcedMu.RLock()
	forced := forcedFeatures
	forcedMu.RUnlock()

	if forced != nil {
		return *forced
	}

	detectOnce.Do(func() {
		detectedFeatures = detectFeaturesImpl()
	})

	return detectedFeatures
}

// SetForcedFeatures overrides detection. Intended for tests.
func SetForcedFeatures(f Features) {
	forcedMu.Lock()
	defer forcedMu.Unlock()

	forced := f
	forcedFeatures = &forced
}

// ResetDetection drops any forced feature set.
func ResetDetection() {
	forcedMu.Lock()
	forcedFeatures = nil
	forcedMu.Unlock()
}

// String lists the detected extensions, e.g. "amd64: sse2 avx avx2 fma".
func (f Features) String() string {
	var exts []string

	add := func(ok bool, name string) {
		if ok {
			exts = append(exts, name)
		}
	}

	add(f.HasSSE2, "sse2")
	add(f.HasAVX, "avx")
	add(f.HasAVX2, "avx2")
	add(f.HasFMA, "fma")
	add(f.HasAVX512, "avx512f")
	add(f.HasNEON, "neon")

	if len(exts) == 0 {
		exts = append(exts, "none")
	}

	s := f.Architecture + ": " + strings.Join(exts, " ")
	if f.ForceGeneric {
		s += " (generic forced)"
	}

	return s
}
