package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
)

const (
	HeaderContentType = "Content-Type"
	HeaderValueJson   = "application/json"
	HeaderRequestID   = "X-Request-Id"
)

func WriteJsonResponse(
	c context.Context,
	w http.ResponseWriter,
	header map[string]string,
	body map[string]interface{},
) {
	logger := zerolog.Ctx(c).With().Str("tag", "http WriteJsonResponse").Logger()

	w.Header().Add(HeaderContentType, HeaderValueJson)
	for k, v := range header {
		w.Header().Add(k, v)
	}

	if v, ok := body["statusCode"]; ok {
		if statusCode, ok := v.(int); ok {
			w.WriteHeader(statusCode)
		}
	}

	err := json.NewEncoder(w).Encode(body)
	if err != nil {
		logger.Error().Err(err).Msgf("failed encoding response body with error=%s", err.Error())
	}
}
