package objectkey

import (
	"strconv"
	"strings"
	"time"
)

// DefaultNamespace is the top-level prefix of every generated key
const DefaultNamespace = "snowfish"

// Folders an object can land in
const (
	FolderFiles  = "files"
	FolderAvatar = "avatar"
	FolderCover  = "cover"
	FolderVideos = "videos"
)

// Generator defines the interface for object key generation strategies
type Generator interface {
	// GenerateKey creates an object key for an upload
	GenerateKey(metadata *KeyMetadata) string
}

// KeyMetadata contains information that influences key generation
type KeyMetadata struct {
	OwnerID     string
	OwnerType   string // folder hint: "avatar", "cover", "videos", ...
	FileName    string
	ContentType string
}

// SnowfishGenerator produces {namespace}/{ownerId}/{folder}/{unixMillis}{ext}.
// Keys for the same owner and folder differ by their millisecond timestamp.
type SnowfishGenerator struct {
	Namespace string
	Now       func() time.Time
}

func NewSnowfishGenerator() *SnowfishGenerator {
	return &SnowfishGenerator{
		Namespace: DefaultNamespace,
		Now:       time.Now,
	}
}

func (g *SnowfishGenerator) GenerateKey(metadata *KeyMetadata) string {
	if metadata == nil {
		metadata = &KeyMetadata{}
	}

	namespace := g.Namespace
	if namespace == "" {
		namespace = DefaultNamespace
	}
	now := g.Now
	if now == nil {
		now = time.Now
	}

	var b strings.Builder
	b.WriteString(namespace)
	b.WriteByte('/')
	b.WriteString(metadata.OwnerID)
	b.WriteByte('/')
	b.WriteString(ResolveFolder(metadata.OwnerType))
	b.WriteByte('/')
	b.WriteString(strconv.FormatInt(now().UnixMilli(), 10))
	b.WriteString(ResolveExtension(metadata.FileName, metadata.ContentType))
	return b.String()
}

// ResolveFolder maps an owner-type hint onto a folder, case-insensitively.
// Unknown or empty hints land in "files".
func ResolveFolder(ownerType string) string {
	switch strings.ToLower(ownerType) {
	case "avatar", "user_profiles":
		return FolderAvatar
	case "cover":
		return FolderCover
	case "video", "videos":
		return FolderVideos
	default:
		return FolderFiles
	}
}

var extensionsByContentType = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"video/mp4":  ".mp4",
}

// ResolveExtension returns the filename's suffix from its last ".", dot included.
// A suffix containing "/" is not an extension. Without one the content type
// table is used, else "".
func ResolveExtension(fileName, contentType string) string {
	if i := strings.LastIndexByte(fileName, '.'); i >= 0 && !strings.Contains(fileName[i:], "/") {
		return fileName[i:]
	}
	return extensionsByContentType[contentType]
}
