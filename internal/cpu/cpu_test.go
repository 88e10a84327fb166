package cpu

import (
	"runtime"
	"strings"
	"testing"
)

func TestDetectFeaturesArchitecture(t *testing.T) {
	ResetDetection()

	f := DetectFeatures()
	if f.Architecture != runtime.GOARCH {
		t.Fatalf("Architecture = %q, want %q", f.Architecture, runtime.GOARCH)
	}

	if runtime.GOARCH == "amd64" && !f.HasSSE2 {
		t.Error("amd64 must report SSE2")
	}
}

func TestForcedFeatures(t *testing.T) {
	defer ResetDetection()

	SetForcedFeatures(Features{ForceGeneric: true, Architecture: "test"})

	f := DetectFeatures()
	if !f.ForceGeneric || f.Architecture != "test" {
		t.Fatalf("forced features not returned: %+v", f)
	}

	ResetDetection()

	if DetectFeatures().ForceGeneric {
		t.Fatal("ResetDetection did not clear forced features")
	}
}

func TestFeaturesString(t *testing.T) {
	s := Features{Architecture: "amd64", HasSSE2: true, HasAVX2: true}.String()
	if s != "amd64: sse2 avx2" {
		t.Errorf("String() = %q", s)
	}

	s = Features{Architecture: "riscv64", ForceGeneric: true}.String()
	if !strings.Contains(s, "none") || !strings.Contains(s, "generic forced") {
		t.Errorf("String() = %q", s)
	}
}
