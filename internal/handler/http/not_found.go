// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Amir Ossanloo

package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/AmirOssanloo/pkg-sits-node-service/internal/app"
	"github.com/AmirOssanloo/pkg-sits-node-service/internal/logger"
	"github.com/AmirOssanloo/pkg-sits-node-service/internal/utils"
	"github.com/AmirOssanloo/pkg-sits-node-service/models"
)

// notFound answers requests that match no route. It is also registered as
// the MethodNotAllowed handler so that a known path requested with an
// unsupported method does not reveal that the route exists.
func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	body := models.NotFoundResponse{
		Error:     app.MsgNotFound,
		Message:   fmt.Sprintf(app.MsgRouteNotFound, r.Method, r.URL.RequestURI()),
		Timestamp: utils.Timestamp(time.Now()),
	}
	if _, err := utils.WriteJSON(w, body, http.StatusNotFound); err != nil {
		logger.FromRequest(r).Err(err).Msg("error writing not found response")
	}
}
