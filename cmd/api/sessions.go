package main

import (
	"net/http"
)

type sessionResponse struct {
	SessionID string `json:"session_id"`
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"` // seconds
}

// createSessionHandler godoc
//
//	@Summary		Start a shopper session
//	@Description	Creates an empty cart and returns the bearer token that identifies it
//	@Tags			Sessions
//	@Produce		json
//	@Success		201	{object}	sessionResponse
//	@Failure		500	{object}	error
//	@Router			/sessions [post]
func (app *application) createSessionHandler(w http.ResponseWriter, r *http.Request) {
	id := app.sessions.Create()

	token, err := app.authenticator.GenerateToken(id)
	if err != nil {
		app.sessions.Delete(id)
		app.internalServerError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusCreated, sessionResponse{
		SessionID: id,
		Token:     token,
		ExpiresIn: int64(app.config.auth.token.exp.Seconds()),
	})
}
