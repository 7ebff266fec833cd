package ossgate

import (
	"math"
	"strconv"
	"strings"
)

// Request/Response DTOs

// UploadRequest contains parameters for issuing a signed upload URL
type UploadRequest struct {
	FileName    string
	ContentType string // signed into the URL; the uploader must send the same value
	OwnerType   string // folder hint, defaults to files
	OwnerID     string
}

// UploadResult is a signed PUT URL and where the object will be readable
type UploadResult struct {
	UploadURL string `json:"uploadUrl"`
	PublicURL string `json:"publicUrl"`
	ObjectKey string `json:"objectKey"`
	Expires   int64  `json:"expires"`
}

// DeleteRequest identifies an object by its public URL
type DeleteRequest struct {
	PublicURL string
	DryRun    bool
}

// DeleteResult confirms a deletion, or a simulated one on dry run
type DeleteResult struct {
	OK        bool   `json:"ok"`
	ObjectKey string `json:"objectKey"`
	Simulated bool   `json:"simulated,omitempty"`
}

// OwnerIDFromNumber formats a numeric owner id the way JavaScript prints a
// number, so 42.0 and 1e3 become "42" and "1000". Zero counts as no id.
func OwnerIDFromNumber(f float64) string {
	if f == 0 || math.IsNaN(f) {
		return ""
	}
	if abs := math.Abs(f); abs >= 1e21 || abs < 1e-6 {
		mantissa, exp, _ := strings.Cut(strconv.FormatFloat(f, 'e', -1, 64), "e")
		return mantissa + "e" + exp[:1] + strings.TrimLeft(exp[1:], "0")
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
