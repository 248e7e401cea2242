package server

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"time"

	"recyloop/pkg/types"

	"github.com/alexedwards/flow"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/go-playground/form/v4"
	"github.com/gorilla/securecookie"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/sirupsen/logrus"
)

var decoder = form.NewDecoder()

// Orchestrator is the surface of the recycling core the HTTP layer calls.
type Orchestrator interface {
	CreateForm(ctx context.Context, authID string, input types.CreateFormInput) (*types.FormSubmission, error)
	Form(ctx context.Context, formID string) (*types.Form, error)
	Forms(ctx context.Context, filter types.FormFilter) ([]*types.Form, error)
	FormDocuments(ctx context.Context, formID string) ([]types.DocumentLinks, error)
	AuthorizeForm(ctx context.Context, formID string, authorized bool) (*types.Form, error)
	Aggregates(ctx context.Context) (*types.AggregateReport, error)
	SubmitFormImage(ctx context.Context, formID string) (string, error)
	CreateFormMetadata(ctx context.Context, formID string) (*types.MetadataPublication, error)
}

// Pinger reports persistence liveness for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Service struct {
	logger *logrus.Logger
	config *types.Config

	orchestrator  Orchestrator
	cognitoClient *cognitoidentityprovider.Client
	db            Pinger

	cookie *securecookie.SecureCookie

	jwksCache *jwk.Cache
	jwksURL   string

	server *http.Server
}

func New(
	config *types.Config,
	logger *logrus.Logger,
	cognitoClient *cognitoidentityprovider.Client,
	orchestrator Orchestrator,
	db Pinger,
	jwkCache *jwk.Cache,
	jwksURL string,
) (*Service, error) {
	mux := flow.New()

	hashKey, _ := base64.StdEncoding.DecodeString(config.CookieHashKey)
	blockKey, _ := base64.StdEncoding.DecodeString(config.CookieBlockKey)

	s := &Service{
		logger: logger,
		config: config,
		cookie: securecookie.New(hashKey, blockKey),

		orchestrator:  orchestrator,
		cognitoClient: cognitoClient,
		db:            db,

		jwksCache: jwkCache,
		jwksURL:   jwksURL,
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", config.ServerPort),
			Handler:           mux,
			ReadTimeout:       time.Duration(config.ReadTimeoutSec) * time.Second,
			ReadHeaderTimeout: time.Duration(config.ReadTimeoutSec) * time.Second,
			WriteTimeout:      time.Duration(config.WriteTimeoutSec) * time.Second,
			MaxHeaderBytes:    1 << 20,
		},
	}

	s.buildRouter(mux)

	return s, nil
}

func (s *Service) Start() error {
	return s.server.ListenAndServe()
}

func (s *Service) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Service) buildRouter(r *flow.Mux) {
	r.Use(s.StripTrailingSlash)
	r.Use(s.LoggingMiddleware)

	r.HandleFunc("/healthz", s.handleHealth, http.MethodGet)
	r.HandleFunc("/v1/login", s.handlePostLogin, http.MethodPost)

	r.Group(func(r *flow.Mux) {
		r.Use(s.RequireAuth)

		r.HandleFunc("/v1/forms", s.handleCreateForm, http.MethodPost)
		r.HandleFunc("/v1/forms/:formID", s.handleGetForm, http.MethodGet)
		r.HandleFunc("/v1/forms/:formID/documents", s.handleGetFormDocuments, http.MethodGet)

		r.Group(func(r *flow.Mux) {
			r.Use(s.RequireAdmin)

			r.HandleFunc("/v1/forms", s.handleListForms, http.MethodGet)
			r.HandleFunc("/v1/aggregates", s.handleGetAggregates, http.MethodGet)
			r.HandleFunc("/v1/forms/:formID/authorization", s.handlePutAuthorization, http.MethodPut)
			r.HandleFunc("/v1/forms/:formID/image", s.handleSubmitFormImage, http.MethodPost)
			r.HandleFunc("/v1/forms/:formID/metadata", s.handleCreateFormMetadata, http.MethodPost)
		})
	})
}

func (s *Service) authIDFromContext(ctx context.Context) (string, error) {
	authID, ok := ctx.Value(contextKeyAuthID).(string)
	if !ok || authID == "" {
		return "", fmt.Errorf("auth id not found in context")
	}
	return authID, nil
}
