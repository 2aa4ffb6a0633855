package session

import (
	"context"
	"fmt"

	"cloud.google.com/go/storage"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/vbonduro/snakebite/internal/config"
	"github.com/vbonduro/snakebite/internal/photostore"
	drivestore "github.com/vbonduro/snakebite/internal/photostore/drive"
	"github.com/vbonduro/snakebite/internal/photostore/gcs"
	"github.com/vbonduro/snakebite/internal/sheet"
	"github.com/vbonduro/snakebite/internal/sheet/gsheets"
)

var googleScopes = []string{
	"https://spreadsheets.google.com/feeds",
	"https://www.googleapis.com/auth/drive",
	storage.ScopeFullControl,
}

// tokenSource authorizes the service account in creds for one call.
func tokenSource(ctx context.Context, creds *config.Credentials) (oauth2.TokenSource, error) {
	jwtCfg, err := google.JWTConfigFromJSON(creds.ServiceAccountJSON, googleScopes...)
	if err != nil {
		return nil, fmt.Errorf("invalid service account credentials: %w", err)
	}
	return jwtCfg.TokenSource(ctx), nil
}

// GoogleSheet opens the named worksheet of the spreadsheet in creds.
func GoogleSheet(creds *config.Credentials, worksheetName string) WorksheetOpener {
	return func(ctx context.Context) (sheet.Worksheet, error) {
		if creds.SpreadsheetURL == "" {
			return nil, fmt.Errorf("spreadsheet URL not found. Set spreadsheet_url in the credentials or the SPREADSHEET_URL environment variable")
		}
		id, err := gsheets.SpreadsheetID(creds.SpreadsheetURL)
		if err != nil {
			return nil, err
		}
		ts, err := tokenSource(ctx, creds)
		if err != nil {
			return nil, err
		}
		svc, err := sheets.NewService(ctx, option.WithTokenSource(ts))
		if err != nil {
			return nil, fmt.Errorf("failed to create sheets client: %w", err)
		}
		return gsheets.NewWorksheet(svc, id, worksheetName), nil
	}
}

// GoogleDrive opens Drive as the photo store.
func GoogleDrive(creds *config.Credentials, folderID string) PhotoStoreOpener {
	return func(ctx context.Context) (photostore.PhotoStore, error) {
		ts, err := tokenSource(ctx, creds)
		if err != nil {
			return nil, err
		}
		svc, err := drive.NewService(ctx, option.WithTokenSource(ts))
		if err != nil {
			return nil, fmt.Errorf("failed to create drive client: %w", err)
		}
		return drivestore.NewDrivePhotoStore(svc, folderID), nil
	}
}

// GoogleCloudStorage opens a bucket as the photo store. Without creds the
// client falls back to application default credentials.
func GoogleCloudStorage(creds *config.Credentials, bucket string) PhotoStoreOpener {
	return func(ctx context.Context) (photostore.PhotoStore, error) {
		if bucket == "" {
			return nil, fmt.Errorf("GCS_BUCKET is required when PHOTO_BACKEND=gcs")
		}
		var opts []option.ClientOption
		if creds != nil {
			ts, err := tokenSource(ctx, creds)
			if err != nil {
				return nil, err
			}
			opts = append(opts, option.WithTokenSource(ts))
		}
		client, err := storage.NewClient(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create GCS client: %w", err)
		}
		return gcs.NewGCSPhotoStore(client, bucket, ""), nil
	}
}
