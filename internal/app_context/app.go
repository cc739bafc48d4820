package appcontext

import (
	"github.com/cantiere-digitale/giornale/internal/auth"
	"github.com/cantiere-digitale/giornale/internal/config"
	"github.com/cantiere-digitale/giornale/internal/mailer"
	"github.com/cantiere-digitale/giornale/internal/repository"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Application contains core dependencies for the app. Components take it (or
// the pieces they need) as parameters; nothing reads process-wide globals.
type Application struct {
	// Config holds application settings provided from .env file.
	Config *config.Config

	Logger *zap.SugaredLogger

	// Repository provides access to data storage operations.
	Repository *repository.Repository

	// Mailer handles email-sending functions.
	Mailer mailer.Client

	// JWTService manages JWT operations for authentication such as generate, verify, refresh token.
	JWTService auth.JWTInterface

	// S3 is the blob store holding annotation attachments.
	S3 *minio.Client
}
