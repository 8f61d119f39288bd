package transport

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"storefront-be/internal/auth"
	"storefront-be/internal/logger"
	"storefront-be/internal/user"
	"storefront-be/internal/utils"
)

const accessTokenTTL = 24 * time.Hour

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var creds user.Credentials
	if err := decodeJSON(w, r, &creds); err != nil {
		writeError(w, r, err)
		return
	}

	token, u, err := h.UserSvc.Register(r.Context(), creds)
	if err != nil {
		writeError(w, r, err)
		return
	}

	logger.FromCtx(r.Context()).Info("user registered successfully",
		zap.Uint("user_id", u.ID),
		zap.String("username", u.Username),
	)

	auth.SetAccessCookie(w, r, token, accessTokenTTL)
	utils.WriteJSON(w, http.StatusCreated, user.TokenResponse{
		Access:   token,
		UserID:   u.ID,
		Username: u.Username,
	})
}

func (h *Handler) token(w http.ResponseWriter, r *http.Request) {
	var creds user.Credentials
	if err := decodeJSON(w, r, &creds); err != nil {
		writeError(w, r, err)
		return
	}

	token, u, err := h.UserSvc.Login(r.Context(), creds)
	if err != nil {
		writeError(w, r, err)
		return
	}

	auth.SetAccessCookie(w, r, token, accessTokenTTL)
	utils.WriteJSON(w, http.StatusOK, user.TokenResponse{
		Access:   token,
		UserID:   u.ID,
		Username: u.Username,
	})
}
