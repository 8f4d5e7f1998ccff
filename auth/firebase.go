package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	firebase "firebase.google.com/go"
	fbauth "firebase.google.com/go/auth"
	"google.golang.org/api/option"
	"gorm.io/gorm"

	"github.com/sepnoty-tech/sepnoty-api/config"
	"github.com/sepnoty-tech/sepnoty-api/models"
)

// FirebaseVerifier resolves Google/Firebase ID tokens. Users are created on
// first sight so a Google sign-in never needs a separate registration step.
type FirebaseVerifier struct {
	client     *fbauth.Client
	db         *gorm.DB
	adminEmail string
}

func NewFirebaseVerifier(ctx context.Context, db *gorm.DB, cfg config.Config) (*FirebaseVerifier, error) {
	var opts []option.ClientOption
	switch {
	case cfg.FirebaseCredentialsJSON != "":
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.FirebaseCredentialsJSON)))
	case cfg.FirebaseCredentialsFile != "":
		opts = append(opts, option.WithCredentialsFile(cfg.FirebaseCredentialsFile))
	default:
		return nil, errors.New("no firebase service account configured")
	}

	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("init firebase auth client: %w", err)
	}

	return &FirebaseVerifier{client: client, db: db, adminEmail: cfg.AdminEmail}, nil
}

func (v *FirebaseVerifier) Name() string { return "firebase" }

func (v *FirebaseVerifier) Verify(ctx context.Context, token string) (*Identity, error) {
	decoded, err := v.client.VerifyIDToken(ctx, token)
	if err != nil {
		return nil, err
	}

	email, _ := decoded.Claims["email"].(string)
	if email == "" {
		return nil, errors.New("firebase token has no email claim")
	}
	name, _ := decoded.Claims["name"].(string)
	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}
	claimAdmin, _ := decoded.Claims["admin"].(bool)

	var user models.User
	err = v.db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{
			Name:        name,
			Email:       email,
			Provider:    "firebase",
			FirebaseUID: decoded.UID,
			IsAdmin:     claimAdmin || email == v.adminEmail,
			Cart:        models.Cart{},
		}
		if err := v.db.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("create firebase user: %w", err)
		}
	} else if err != nil {
		return nil, err
	}

	return &Identity{
		UserID:  user.ID,
		Email:   user.Email,
		Name:    user.Name,
		IsAdmin: user.IsAdmin || claimAdmin || user.Email == v.adminEmail,
	}, nil
}
