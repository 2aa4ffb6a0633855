package session

import (
	"context"
	"fmt"
	"log/slog"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vbonduro/snakebite/internal/config"
	"github.com/vbonduro/snakebite/internal/db"
	"github.com/vbonduro/snakebite/internal/photostore"
	"github.com/vbonduro/snakebite/internal/photostore/local"
	s3store "github.com/vbonduro/snakebite/internal/photostore/s3"
	"github.com/vbonduro/snakebite/internal/sheet/xlsx"
	"github.com/vbonduro/snakebite/internal/store"
)

// Backends is the wiring produced from configuration.
type Backends struct {
	Provider Provider
	// LocalPhotos is set when photos are kept on local disk so the web
	// server can serve them back.
	LocalPhotos *local.LocalPhotoStore
	// Close releases long-lived resources such as the SQLite database.
	Close func()
}

// FromConfig selects the worksheet and photo backends named in cfg. creds may
// be nil, in which case credsErr is reported by every Google-backed handle
// request instead of failing startup.
func FromConfig(cfg *config.Config, creds *config.Credentials, credsErr error, logger *slog.Logger) (*Backends, error) {
	b := &Backends{Close: func() {}}
	if creds == nil && credsErr == nil {
		credsErr = config.ErrCredentialsNotFound
	}

	var openSheet WorksheetOpener
	switch cfg.SheetBackend {
	case "google":
		if creds == nil {
			logger.Warn("google credentials unavailable; record saves will fail", "error", credsErr)
			openSheet = FailedWorksheet(credsErr)
		} else {
			openSheet = GoogleSheet(creds, cfg.WorksheetName)
		}
	case "xlsx":
		openSheet = StaticWorksheet(xlsx.NewWorksheet(cfg.XLSXPath, cfg.WorksheetName))
	case "sqlite":
		database, err := db.Open(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		b.Close = func() {
			if err := database.Close(); err != nil {
				logger.Error("failed to close database", "error", err)
			}
		}
		openSheet = StaticWorksheet(store.NewWorksheetStore(database, cfg.WorksheetName))
	default:
		return nil, fmt.Errorf("unknown SHEET_BACKEND %q", cfg.SheetBackend)
	}

	var openPhotos PhotoStoreOpener
	switch cfg.PhotoBackend {
	case "drive":
		if creds == nil {
			logger.Warn("google credentials unavailable; photo uploads will fail", "error", credsErr)
			openPhotos = FailedPhotoStore(credsErr)
		} else {
			openPhotos = GoogleDrive(creds, cfg.DriveFolderID)
		}
	case "gcs":
		openPhotos = GoogleCloudStorage(creds, cfg.GCSBucket)
	case "s3":
		openPhotos = AmazonS3(cfg.S3Bucket)
	case "local":
		ps, err := local.NewLocalPhotoStore(cfg.PhotoPath, cfg.PublicBaseURL)
		if err != nil {
			b.Close()
			return nil, err
		}
		b.LocalPhotos = ps
		openPhotos = StaticPhotoStore(ps)
	default:
		b.Close()
		return nil, fmt.Errorf("unknown PHOTO_BACKEND %q", cfg.PhotoBackend)
	}

	b.Provider = New(openSheet, openPhotos)
	return b, nil
}

// AmazonS3 opens an S3 bucket using the default AWS credential chain.
func AmazonS3(bucket string) PhotoStoreOpener {
	return func(ctx context.Context) (photostore.PhotoStore, error) {
		if bucket == "" {
			return nil, fmt.Errorf("S3_BUCKET is required when PHOTO_BACKEND=s3")
		}
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		return s3store.NewS3PhotoStore(awss3.NewFromConfig(awsCfg), bucket, awsCfg.Region), nil
	}
}
