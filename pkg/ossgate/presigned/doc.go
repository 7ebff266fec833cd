// Package presigned implements OSS v1 query-string authentication.
//
// A signed URL carries three query parameters, OSSAccessKeyId, Expires and
// Signature. The signature is the base64 HMAC-SHA1 of a canonical string
// keyed with the access key secret:
//
//	PUT\n\n{contentType}\n{expires}\n/{bucket}/{objectKey}
//	DELETE\n\n\n{expires}\n/{bucket}/{objectKey}
//
// # Signing
//
//	signer := presigned.New(presigned.WithSecretKey(secret))
//	expires := signer.Expires()
//	sig, err := signer.SignRequest(presigned.SigningRequest{
//	    Verb:        presigned.VerbPut,
//	    ContentType: "image/png",
//	    Expires:     expires,
//	    Resource:    presigned.Resource(bucket, objectKey),
//	})
//
// # Client
//
//	client := presigned.NewClient()
//	err := client.Upload(ctx, uploadURL, file, presigned.WithContentType("image/png"))
//	err = client.Delete(ctx, deleteURL)
//
// # Emulator
//
// Handlers serves a single bucket over a Store and validates requests the way
// OSS does, answering with OSS XML error documents. It is meant for tests and
// local development:
//
//	h := presigned.NewHandlers(store, "my-bucket", accessKeyID, signer)
//	srv := httptest.NewServer(h.Routes())
package presigned
