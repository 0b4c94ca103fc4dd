package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"

	"github.com/jesuisfatih/eagledtfprint-sub004/cart/internal/common/otel"
	"github.com/jesuisfatih/eagledtfprint-sub004/cart/internal/service"
	"github.com/jesuisfatih/eagledtfprint-sub004/cart/pkg/request"
	"github.com/jesuisfatih/eagledtfprint-sub004/internal"
	"github.com/jesuisfatih/eagledtfprint-sub004/internal/domain"
	commonHttp "github.com/jesuisfatih/eagledtfprint-sub004/internal/http"
	"github.com/jesuisfatih/eagledtfprint-sub004/internal/log"
	"github.com/jesuisfatih/eagledtfprint-sub004/internal/middleware"
	inOtel "github.com/jesuisfatih/eagledtfprint-sub004/internal/otel"
)

type CartController struct {
	service *service.CartService
}

// AttachCartController registers the cart routes. Snapshot tracking is
// storefront-facing and unauthenticated; everything else is
// merchant-dashboard only and sits behind the JWT middleware.
func AttachCartController(router *mux.Router, service *service.CartService) {
	controller := CartController{service: service}

	router.HandleFunc("/carts/track", controller.TrackSnapshot).Methods(http.MethodPost)

	authed := router.PathPrefix("/carts").Subrouter()
	authed.Use(middleware.Auth)
	authed.HandleFunc("", controller.FindCarts).Methods(http.MethodGet)
	authed.HandleFunc("/{cartId}", controller.FindCartById).Methods(http.MethodGet)
	authed.HandleFunc("/{cartId}", controller.RemoveCart).Methods(http.MethodDelete)
	authed.HandleFunc("/{cartId}/restore", controller.RestoreCart).Methods(http.MethodPost)
	authed.HandleFunc("/{cartId}/activities", controller.FindCartActivities).
		Methods(http.MethodGet)
}

func (t CartController) TrackSnapshot(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController TrackSnapshot")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController TrackSnapshot").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "decoding requestbody").Logger()
	logger.Info().Msg("decoding requestbody")
	reqBody := request.CartSnapshot{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		err = fmt.Errorf("failed decoding request body with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("decoded request body")

	logger = logger.With().Str(log.KeyProcess, "validating requestbody").Logger()
	logger.Info().Msg("validating request body")
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.StructCtx(c, reqBody); err != nil {
		err = fmt.Errorf("failed validating request body with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("validated request body")

	logger = logger.With().
		Str(log.KeyProcess, "tracking snapshot").
		Str(log.KeyCartToken, reqBody.CartToken).
		Logger()
	logger.Info().Msg("tracking snapshot")
	c = logger.WithContext(c)
	cart, err := t.service.TrackSnapshot(c, reqBody)
	if err != nil {
		err = fmt.Errorf("failed tracking snapshot with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		statusCode := http.StatusInternalServerError
		if errors.Is(err, domain.ErrMerchantUnresolved) {
			statusCode = http.StatusUnprocessableEntity
		}
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": statusCode,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("tracked snapshot")

	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "snapshot tracked",
		"data":       cart,
	})
}

func (t CartController) FindCarts(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController FindCarts")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController FindCarts").
		Logger()

	merchantId, err := t.merchantId(c, w)
	if err != nil {
		return
	}
	logger = logger.With().
		Str(log.KeyMerchantID, merchantId.String()).
		Str(log.KeyProcess, "finding carts").
		Logger()

	logger.Info().Msg("finding carts")
	c = logger.WithContext(c)
	carts, err := t.service.FindCartsByMerchant(c, merchantId)
	if err != nil {
		err = fmt.Errorf("failed finding carts with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusInternalServerError,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msgf("found %d carts", len(carts))

	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "carts found",
		"data":       carts,
	})
}

func (t CartController) FindCartById(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController FindCartById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController FindCartById").
		Logger()

	cartId, err := t.cartId(c, w, r)
	if err != nil {
		return
	}
	merchantId, err := t.merchantId(c, w)
	if err != nil {
		return
	}
	logger = logger.With().
		Str(log.KeyCartID, cartId.String()).
		Str(log.KeyMerchantID, merchantId.String()).
		Str(log.KeyProcess, "finding cart").
		Logger()

	logger.Info().Msg("finding cart")
	c = logger.WithContext(c)
	cart, err := t.service.FindCartById(c, request.FindCartById{ID: cartId, MerchantID: merchantId})
	if err != nil {
		t.writeServiceError(c, w, span, logger, err, "failed finding cart")
		return
	}
	logger.Info().Msg("found cart")

	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "cart found",
		"data":       cart,
	})
}

func (t CartController) FindCartActivities(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController FindCartActivities")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController FindCartActivities").
		Logger()

	cartId, err := t.cartId(c, w, r)
	if err != nil {
		return
	}
	merchantId, err := t.merchantId(c, w)
	if err != nil {
		return
	}
	logger = logger.With().
		Str(log.KeyCartID, cartId.String()).
		Str(log.KeyMerchantID, merchantId.String()).
		Str(log.KeyProcess, "finding cart activities").
		Logger()

	logger.Info().Msg("finding cart activities")
	c = logger.WithContext(c)
	activities, err := t.service.FindCartActivities(c, request.FindCartActivities{
		CartId:     cartId,
		MerchantId: merchantId,
	})
	if err != nil {
		t.writeServiceError(c, w, span, logger, err, "failed finding cart activities")
		return
	}
	logger.Info().Msgf("found %d cart activities", len(activities))

	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "cart activities found",
		"data":       activities,
	})
}

func (t CartController) RestoreCart(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController RestoreCart")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController RestoreCart").
		Logger()

	cartId, err := t.cartId(c, w, r)
	if err != nil {
		return
	}
	merchantId, err := t.merchantId(c, w)
	if err != nil {
		return
	}
	logger = logger.With().
		Str(log.KeyCartID, cartId.String()).
		Str(log.KeyMerchantID, merchantId.String()).
		Str(log.KeyProcess, "restoring cart").
		Logger()

	logger.Info().Msg("restoring cart")
	c = logger.WithContext(c)
	result, err := t.service.RestoreCart(c, request.CartLifecycle{CartId: cartId, MerchantId: merchantId})
	if err != nil {
		t.writeServiceError(c, w, span, logger, err, "failed restoring cart")
		return
	}
	logger.Info().Msg("restored cart")

	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    result.Message,
		"data":       result,
	})
}

func (t CartController) RemoveCart(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController RemoveCart")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController RemoveCart").
		Logger()

	cartId, err := t.cartId(c, w, r)
	if err != nil {
		return
	}
	merchantId, err := t.merchantId(c, w)
	if err != nil {
		return
	}
	logger = logger.With().
		Str(log.KeyCartID, cartId.String()).
		Str(log.KeyMerchantID, merchantId.String()).
		Str(log.KeyProcess, "removing cart").
		Logger()

	logger.Info().Msg("removing cart")
	c = logger.WithContext(c)
	result, err := t.service.RemoveCart(c, request.CartLifecycle{CartId: cartId, MerchantId: merchantId})
	if err != nil {
		t.writeServiceError(c, w, span, logger, err, "failed removing cart")
		return
	}
	logger.Info().Msg("removed cart")

	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    result.Message,
		"data":       result,
	})
}

func (t CartController) cartId(
	c context.Context,
	w http.ResponseWriter,
	r *http.Request,
) (uuid.UUID, error) {
	pathValue := mux.Vars(r)["cartId"]
	cartId, err := uuid.Parse(pathValue)
	if err != nil {
		err = fmt.Errorf("failed parsing cartId=%s with error=%w", pathValue, err)
		zerolog.Ctx(c).Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return uuid.Nil, err
	}
	return cartId, nil
}

func (t CartController) merchantId(c context.Context, w http.ResponseWriter) (uuid.UUID, error) {
	merchantId, err := internal.MerchantIdFromJwtToken(c)
	if err != nil {
		err = fmt.Errorf("failed getting merchantId from jwtToken with error=%w", err)
		zerolog.Ctx(c).Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusUnauthorized,
			"message":    err.Error(),
		})
		return uuid.Nil, err
	}
	return merchantId, nil
}

func (t CartController) writeServiceError(
	c context.Context,
	w http.ResponseWriter,
	span trace.Span,
	logger zerolog.Logger,
	err error,
	message string,
) {
	err = fmt.Errorf("%s with error=%w", message, err)
	inOtel.RecordError(err, span)
	logger.Error().Err(err).Msg(err.Error())
	statusCode := http.StatusInternalServerError
	if errors.Is(err, domain.ErrNotFound) {
		statusCode = http.StatusNotFound
	}
	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "failed",
		"statusCode": statusCode,
		"message":    err.Error(),
	})
}
