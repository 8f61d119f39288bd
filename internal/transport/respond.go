package transport

import (
	"encoding/json"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"storefront-be/internal/apperr"
	"storefront-be/internal/logger"
	"storefront-be/internal/utils"
)

const maxBodyBytes = 1 << 20

var errMalformedBody = apperr.Validation("malformed JSON body")

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return errors.WithSecondaryError(errMalformedBody, err)
	}
	return nil
}

// writeError answers with the status for err's kind. Internal failures are
// logged and reported without detail.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperr.HTTPStatus(err)
	log := logger.FromCtx(r.Context()).With(
		zap.String("layer", "transport"),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	)

	if !apperr.IsClientError(err) {
		log.Error("request failed", zap.Error(err))
		utils.WriteJSONError(w, http.StatusText(status), status)
		return
	}

	log.Info("request rejected", zap.Int("status", status), zap.Error(err))
	utils.WriteJSONError(w, err.Error(), status)
}

// pathID reads the numeric {id} route variable. Values that do not fit are
// reported as 0, which services treat as not found.
func pathID(r *http.Request) uint {
	id, err := utils.ToUint(mux.Vars(r)["id"])
	if err != nil {
		return 0
	}
	return id
}
