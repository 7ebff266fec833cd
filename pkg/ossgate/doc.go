// Package ossgate issues signed Aliyun OSS URLs so clients can upload
// straight to a bucket, and deletes objects by their public URL, without the
// access key secret ever leaving the server.
//
// The Service interface covers both operations. Uploads get a fresh object key
// under snowfish/{ownerId}/{folder}/ and a PUT URL valid for a short window.
// Deletes recover the object key from a public URL and hand it to an
// ObjectRemover; the default remover signs a DELETE URL and calls it once.
// Removers backed by the Aliyun SDK, the S3-compatible API, MinIO and memory
// live under storage/.
//
// Credentials come from a CredentialSource on every request, so rotated
// environment values take effect without a restart.
package ossgate
