package ossgate

import "context"

// Service is the main interface for issuing upload URLs and deleting objects
type Service interface {
	// IssueUploadURL derives a new object key and signs a PUT URL for it
	IssueUploadURL(ctx context.Context, req UploadRequest) (*UploadResult, error)

	// DeleteObject deletes the object behind a public URL
	DeleteObject(ctx context.Context, req DeleteRequest) (*DeleteResult, error)
}

// CredentialSource supplies credentials for one request
type CredentialSource interface {
	Credentials(ctx context.Context) (Credentials, error)
}

// ObjectRemover deletes one object from the bucket named in creds.
// Non-success answers from storage are reported as *BackendError.
type ObjectRemover interface {
	RemoveObject(ctx context.Context, creds Credentials, objectKey string) error
}
