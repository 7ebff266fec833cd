package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/tendant/ossgate/pkg/ossgate"
	"github.com/tendant/ossgate/pkg/ossgate/config"
	"github.com/tendant/ossgate/pkg/ossgate/presigned"
	fsstorage "github.com/tendant/ossgate/pkg/ossgate/storage/fs"
	memorystorage "github.com/tendant/ossgate/pkg/ossgate/storage/memory"
)

// NewSignUploadCommand creates the sign-upload command
func NewSignUploadCommand() *cobra.Command {
	var contentType, ownerType, ownerID string

	cmd := &cobra.Command{
		Use:   "sign-upload <filename>",
		Short: "Print a signed upload URL for a new object",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := newService()
			if err != nil {
				return err
			}

			result, err := svc.IssueUploadURL(cmd.Context(), ossgate.UploadRequest{
				FileName:    args[0],
				ContentType: contentType,
				OwnerType:   ownerType,
				OwnerID:     ownerID,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVar(&contentType, "content-type", "", "content type the uploader will send")
	cmd.Flags().StringVar(&ownerType, "owner-type", "", "folder hint: avatar, user_profiles, cover, video, videos")
	cmd.Flags().StringVar(&ownerID, "owner-id", "", "owner of the object (required)")
	_ = cmd.MarkFlagRequired("owner-id")

	return cmd
}

// NewUploadCommand creates the upload command
func NewUploadCommand() *cobra.Command {
	var contentType, ownerType, ownerID string

	cmd := &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a local file through a freshly signed URL",
		Long: `Upload signs a PUT URL for the file and sends the file to it.
The content type defaults to the one registered for the file extension.
Without --owner-id a random UUID is used.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filePath := args[0]

			file, err := os.Open(filePath)
			if err != nil {
				return fmt.Errorf("failed to open file: %w", err)
			}
			defer file.Close()

			info, err := file.Stat()
			if err != nil {
				return fmt.Errorf("failed to stat file: %w", err)
			}

			if contentType == "" {
				contentType = mime.TypeByExtension(filepath.Ext(filePath))
			}
			if ownerID == "" {
				ownerID = uuid.NewString()
			}

			svc, _, err := newService()
			if err != nil {
				return err
			}

			result, err := svc.IssueUploadURL(cmd.Context(), ossgate.UploadRequest{
				FileName:    filepath.Base(filePath),
				ContentType: contentType,
				OwnerType:   ownerType,
				OwnerID:     ownerID,
			})
			if err != nil {
				return err
			}

			client := presigned.NewClient(presigned.WithProgress(func(n int64) {
				slog.Debug("upload progress", "bytes", n, "total", info.Size())
			}))
			if err := client.Upload(cmd.Context(), result.UploadURL, file,
				presigned.WithContentType(contentType),
				presigned.WithContentLength(info.Size()),
			); err != nil {
				return fmt.Errorf("upload failed: %w", err)
			}

			return printJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVar(&contentType, "content-type", "", "content type (default: from file extension)")
	cmd.Flags().StringVar(&ownerType, "owner-type", "", "folder hint: avatar, user_profiles, cover, video, videos")
	cmd.Flags().StringVar(&ownerID, "owner-id", "", "owner of the object (default: random UUID)")

	return cmd
}

// NewDeleteCommand creates the delete command
func NewDeleteCommand() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "delete <public-url>",
		Short: "Delete an object by its public URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := newService()
			if err != nil {
				return err
			}

			result, err := svc.DeleteObject(cmd.Context(), ossgate.DeleteRequest{
				PublicURL: args[0],
				DryRun:    dryRun,
			})
			if err != nil {
				var backendErr *ossgate.BackendError
				if errors.As(err, &backendErr) {
					return fmt.Errorf("OSS delete failed with status %d: %s", backendErr.Status, backendErr.Body)
				}
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "only print the object key that would be deleted")

	return cmd
}

// NewEmulateCommand creates the emulate command
func NewEmulateCommand() *cobra.Command {
	var addr, dataDir string

	cmd := &cobra.Command{
		Use:   "emulate",
		Short: "Serve an in-memory bucket that checks OSS signed URLs",
		Long: `Emulate serves PUT, GET and DELETE on /{objectKey} for the bucket in
OSS_BUCKET, accepting only URLs signed with OSS_ACCESS_KEY_ID and
OSS_ACCESS_KEY_SECRET. Objects live in memory until the process exits
unless --data-dir is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			creds, err := config.EnvSource{}.Credentials(cmd.Context())
			if err != nil {
				return err
			}
			creds = creds.Sanitize()
			if missing := creds.Missing(); len(missing) > 0 {
				return &ossgate.CredentialsError{Missing: missing}
			}

			var store presigned.Store = memorystorage.New()
			if dataDir != "" {
				if store, err = fsstorage.New(dataDir); err != nil {
					return err
				}
			}

			handlers := presigned.NewHandlers(
				store,
				creds.Bucket,
				creds.AccessKeyID,
				presigned.New(presigned.WithSecretKey(creds.AccessKeySecret)),
			)

			fmt.Fprintf(cmd.ErrOrStderr(), "Emulating bucket %s on %s\n", creds.Bucket, addr)
			slog.Debug("Emulator starting", "data_dir", dataDir, "credentials", creds)
			return http.ListenAndServe(addr, handlers.Routes())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":9000", "listen address")
	cmd.Flags().StringVar(&dataDir, "data-dir", "", "keep objects in this directory instead of memory")

	return cmd
}

// NewEnvCommand creates the env command
func NewEnvCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "Describe the environment variables ossctl and the server read",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			usage, err := config.Usage()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), usage)
			return err
		},
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
