package auth

import (
	"context"
	"strings"

	firebase "firebase.google.com/go"
	fbauth "firebase.google.com/go/auth"
	"github.com/pkg/errors"
	"google.golang.org/api/option"

	"github.com/saqibam92/BlashBerry-nextjs/models"
)

// GoogleProfile is what a verified Google ID token tells us about the user.
type GoogleProfile struct {
	UID     string
	Email   string
	Name    string
	Picture string
}

type GoogleVerifier interface {
	Verify(ctx context.Context, idToken string) (*GoogleProfile, error)
}

// FirebaseVerifier checks Google sign-in tokens with the Firebase Admin SDK.
type FirebaseVerifier struct {
	client    *fbauth.Client
	projectID string
}

func NewFirebaseVerifier(ctx context.Context, projectID, credentialsJSON string) (*FirebaseVerifier, error) {
	if projectID == "" || credentialsJSON == "" {
		return nil, errors.New("FIREBASE_PROJECT_ID and FIREBASE_CREDENTIALS_JSON must both be set")
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, option.WithCredentialsJSON([]byte(credentialsJSON)))
	if err != nil {
		return nil, errors.Wrap(err, "init firebase app")
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "init firebase auth")
	}
	return &FirebaseVerifier{client: client, projectID: projectID}, nil
}

func (v *FirebaseVerifier) Verify(ctx context.Context, idToken string) (*GoogleProfile, error) {
	token, err := v.client.VerifyIDTokenAndCheckRevoked(ctx, idToken)
	if err != nil {
		return nil, models.NewUnauthorized("Invalid or revoked Google ID token")
	}
	if token.Audience != v.projectID {
		return nil, models.NewUnauthorized("Invalid token audience")
	}
	email, _ := token.Claims["email"].(string)
	if strings.TrimSpace(email) == "" {
		return nil, models.NewUnauthorized("Email not found in token")
	}
	name, _ := token.Claims["name"].(string)
	picture, _ := token.Claims["picture"].(string)
	return &GoogleProfile{UID: token.UID, Email: email, Name: name, Picture: picture}, nil
}
