package server

import (
	"encoding/json"
	"net/http"

	"recyloop/internal"
	"recyloop/pkg/types"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	cognitotypes "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int    `json:"expiresIn"`
}

// handlePostLogin exchanges user credentials for a Cognito access token and
// also sets it as an encrypted cookie for browser clients.
func (s *Service) handlePostLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.badRequest(w, "invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		s.badRequest(w, "email and password are required")
		return
	}

	input := &cognitoidentityprovider.InitiateAuthInput{
		AuthFlow: cognitotypes.AuthFlowTypeUserPasswordAuth,
		ClientId: aws.String(s.config.CognitoClientID),
		AuthParameters: map[string]string{
			"USERNAME": req.Email,
			"PASSWORD": req.Password,
		},
	}

	resp, err := s.cognitoClient.InitiateAuth(r.Context(), input)
	if err != nil {
		// NotAuthorizedException, UserNotConfirmedException, etc.
		s.respondError(w, &types.Error{Kind: types.ErrorKindUnauthorized, Detail: "invalid credentials"})
		return
	}

	if resp.AuthenticationResult == nil || resp.AuthenticationResult.AccessToken == nil {
		s.respondError(w, &types.Error{Kind: types.ErrorKindUnauthorized, Detail: "login failed"})
		return
	}

	accessToken := aws.ToString(resp.AuthenticationResult.AccessToken)
	expiresIn := int(resp.AuthenticationResult.ExpiresIn)

	encoded, err := s.cookie.Encode(internal.COOKIE_ACCESS_TOKEN_NAME, accessToken)
	if err != nil {
		s.logger.WithError(err).Error("failed to encrypt access token cookie")
	} else {
		http.SetCookie(w, &http.Cookie{
			Name:     internal.COOKIE_ACCESS_TOKEN_NAME,
			Value:    encoded,
			Path:     "/",
			MaxAge:   expiresIn,
			HttpOnly: true,
			Secure:   s.config.Environment != "development",
			SameSite: http.SameSiteLaxMode,
		})
	}

	s.respondJSON(w, http.StatusOK, loginResponse{
		AccessToken: accessToken,
		ExpiresIn:   expiresIn,
	})
}
