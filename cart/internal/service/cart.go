package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jesuisfatih/eagledtfprint-sub004/cart/internal/common/cache"
	"github.com/jesuisfatih/eagledtfprint-sub004/cart/internal/common/otel"
	"github.com/jesuisfatih/eagledtfprint-sub004/cart/pkg/request"
	"github.com/jesuisfatih/eagledtfprint-sub004/cart/pkg/response"
	"github.com/jesuisfatih/eagledtfprint-sub004/internal/domain"
	"github.com/jesuisfatih/eagledtfprint-sub004/internal/log"
	inOtel "github.com/jesuisfatih/eagledtfprint-sub004/internal/otel"
	"github.com/jesuisfatih/eagledtfprint-sub004/internal/repository"
)

type CartService struct {
	pool    *pgxpool.Pool
	queries *repository.Queries
	cache   *redis.Client
}

func NewCartService(
	pool *pgxpool.Pool,
	queries *repository.Queries,
	cache *redis.Client,
) CartService {
	return CartService{pool: pool, queries: queries, cache: cache}
}

// activityEvent is a pending audit record derived during snapshot
// processing and appended after the transaction commits.
type activityEvent struct {
	MerchantID uuid.UUID
	CompanyID  *uuid.UUID
	Type       domain.ActivityType
	Payload    interface{}
}

// TrackSnapshot resolves a storefront cart snapshot to a durable cart,
// reconciles its item set and records the audit trail. Resolution, upsert
// and item replacement run in a single transaction; the activity append is
// best-effort after commit.
func (svc CartService) TrackSnapshot(
	c context.Context,
	param request.CartSnapshot,
) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService TrackSnapshot")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService TrackSnapshot").
		Str(log.KeyCartToken, param.CartToken).
		Int(log.KeyCartItems, len(param.Items)).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "initializing transaction").Logger()
	logger.Info().Msg("initializing transaction")
	tx, err := svc.pool.BeginTx(c, pgx.TxOptions{})
	if err != nil {
		err = fmt.Errorf("failed initializing transaction with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msg("initialized transaction")
	defer func(lg zerolog.Logger) {
		rollbackErr := tx.Rollback(c)
		if rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
			rollbackErr = fmt.Errorf("failed rolling back transaction with error=%w", rollbackErr)
			inOtel.RecordError(rollbackErr, span)
			lg.Error().Err(rollbackErr).Msg(rollbackErr.Error())
		}
	}(logger)

	c = logger.WithContext(c)
	cart, events, err := svc.processSnapshot(c, svc.queries.WithTx(tx), param)
	if err != nil {
		return response.Cart{}, err
	}

	logger = logger.With().
		Str(log.KeyCartID, cart.ID.String()).
		Str(log.KeyProcess, "committing transaction").
		Logger()
	logger.Info().Msg("committing transaction")
	err = tx.Commit(c)
	if err != nil {
		err = fmt.Errorf("failed committing transaction with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msg("committed transaction")

	c = logger.WithContext(c)
	svc.appendActivities(c, events)
	svc.invalidateCartCache(c, cart.ID)

	return response.FromCart(cart), nil
}

// processSnapshot runs the whole pipeline against q, which is expected to be
// transaction-bound: identity resolution, anonymous fallback, cart
// locate-or-create, item reconciliation and diffing. It returns the events
// to append once q's transaction commits.
func (svc CartService) processSnapshot(
	c context.Context,
	q repository.Querier,
	param request.CartSnapshot,
) (domain.Cart, []activityEvent, error) {
	c, span := otel.Tracer.Start(c, "CartService processSnapshot")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService processSnapshot").
		Logger()

	resolved, err := svc.resolveIdentity(c, q, param)
	if err != nil {
		if errors.Is(err, domain.ErrMerchantUnresolved) {
			logger.Warn().Err(err).Msg("rejecting snapshot without resolvable merchant")
			return domain.Cart{}, nil, err
		}
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return domain.Cart{}, nil, err
	}

	now := time.Now().UTC()
	events := []activityEvent{}

	logger = logger.With().
		Str(log.KeyMerchantID, resolved.MerchantID.String()).
		Str(log.KeyProcess, "locating cart").
		Logger()
	logger.Info().Msg("locating cart by token")
	normalized := normalizeToken(param.CartToken)
	cart, err := q.FindCartByToken(c, repository.FindCartByTokenParams{
		MerchantID:      resolved.MerchantID,
		CartToken:       param.CartToken,
		NormalizedToken: normalized,
	})
	created := false
	switch {
	case err == nil:
		if cart.Converted() {
			logger.Info().
				Str(log.KeyCartID, cart.ID.String()).
				Msg("cart already converted to order, skipping reconciliation")
			items, err := q.FindCartItems(c, cart.ID)
			if err != nil {
				err = fmt.Errorf("failed finding cart items with error=%w", err)
				inOtel.RecordError(err, span)
				logger.Error().Err(err).Msg(err.Error())
				return domain.Cart{}, nil, err
			}
			cart.Items = items
			return cart, nil, nil
		}

		companyID := cart.CompanyID
		if !resolved.Anonymous() && resolved.CompanyID != cart.CompanyID {
			companyID = resolved.CompanyID
			oldCompanyID := cart.CompanyID
			events = append(events, activityEvent{
				MerchantID: cart.MerchantID,
				CompanyID:  &companyID,
				Type:       domain.ActivityCartCompanyUpdated,
				Payload: domain.CompanyUpdatedPayload{
					CartID:       cart.ID,
					OldCompanyID: oldCompanyID,
					NewCompanyID: companyID,
					Timestamp:    now,
				},
			})
		}

		metadata := cart.Metadata.Merge(domain.CartMetadata{
			IsAnonymous:        resolved.Anonymous(),
			CustomerEmail:      param.CustomerEmail,
			ExternalCustomerID: param.ExternalCustomerId,
			LastSyncAt:         &now,
		})

		logger = logger.With().
			Str(log.KeyCartID, cart.ID.String()).
			Str(log.KeyProcess, "updating cart").
			Logger()
		logger.Info().Msg("updating cart identity")
		cart, err = q.UpdateCartOnSync(c, repository.UpdateCartOnSyncParams{
			ID:        cart.ID,
			CompanyID: companyID,
			CreatedBy: resolved.UserID,
			Metadata:  metadata,
		})
		if err != nil {
			err = fmt.Errorf("failed updating cart with error=%w", err)
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return domain.Cart{}, nil, err
		}
		logger.Info().Msg("updated cart identity")
	case errors.Is(err, domain.ErrNotFound):
		wasAnonymous := resolved.Anonymous()
		resolved, err = svc.ensureCompany(c, q, resolved)
		if err != nil {
			return domain.Cart{}, nil, err
		}

		logger = logger.With().Str(log.KeyProcess, "creating cart").Logger()
		logger.Info().Msg("creating cart")
		// The normalized token is the canonical stored form; the lookup
		// above still matches raw tokens stored before trimming.
		cart, err = q.InsertCart(c, repository.InsertCartParams{
			ID:         uuid.New(),
			MerchantID: resolved.MerchantID,
			CompanyID:  resolved.CompanyID,
			CreatedBy:  resolved.UserID,
			CartToken:  normalized,
			Metadata: domain.CartMetadata{
				IsAnonymous:        wasAnonymous,
				CustomerEmail:      param.CustomerEmail,
				ExternalCustomerID: param.ExternalCustomerId,
				LastSyncAt:         &now,
			},
		})
		if err != nil {
			err = fmt.Errorf("failed creating cart with error=%w", err)
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return domain.Cart{}, nil, err
		}
		created = true
		logger = logger.With().Str(log.KeyCartID, cart.ID.String()).Logger()
		logger.Info().Msg("created cart")

		companyID := cart.CompanyID
		events = append(events, activityEvent{
			MerchantID: cart.MerchantID,
			CompanyID:  &companyID,
			Type:       domain.ActivityCartCreated,
			Payload: domain.CartCreatedPayload{
				CartID:    cart.ID,
				CartToken: normalized,
				Timestamp: now,
			},
		})
	default:
		err = fmt.Errorf("failed finding cart by token with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return domain.Cart{}, nil, err
	}

	cart, diff, err := svc.reconcileItems(c, q, cart, param.Items)
	if err != nil {
		return domain.Cart{}, nil, err
	}

	companyID := cart.CompanyID
	if created {
		// A brand-new cart has no meaningful change, only an initial
		// state: one batched cart_items_added event stands in for the
		// whole diff.
		if len(cart.Items) > 0 {
			changes := make([]domain.ItemChange, 0, len(cart.Items))
			for _, item := range cart.Items {
				changes = append(changes, itemChange(item, nil))
			}
			events = append(events, activityEvent{
				MerchantID: cart.MerchantID,
				CompanyID:  &companyID,
				Type:       domain.ActivityCartItemsAdded,
				Payload: domain.ItemsChangedPayload{
					CartID:    cart.ID,
					Items:     changes,
					Timestamp: now,
				},
			})
		}
		return cart, events, nil
	}

	for _, category := range []struct {
		eventType domain.ActivityType
		changes   []domain.ItemChange
	}{
		{domain.ActivityCartItemAdded, diff.Added},
		{domain.ActivityCartItemRemoved, diff.Removed},
		{domain.ActivityCartItemUpdated, diff.Updated},
	} {
		if len(category.changes) == 0 {
			continue
		}
		events = append(events, activityEvent{
			MerchantID: cart.MerchantID,
			CompanyID:  &companyID,
			Type:       category.eventType,
			Payload: domain.ItemsChangedPayload{
				CartID:    cart.ID,
				Items:     category.changes,
				Timestamp: now,
			},
		})
	}

	return cart, events, nil
}

// reconcileItems replaces the cart's item rows with the snapshot's validated
// items and computes the semantic diff against the pre-image. Delete and
// insert run on q's transaction so a partial failure can never leave the
// cart empty when the snapshot had items.
func (svc CartService) reconcileItems(
	c context.Context,
	q repository.Querier,
	cart domain.Cart,
	rawItems []request.SnapshotItem,
) (domain.Cart, itemDiff, error) {
	c, span := otel.Tracer.Start(c, "CartService reconcileItems")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService reconcileItems").
		Str(log.KeyCartID, cart.ID.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "loading pre-image").Logger()
	logger.Info().Msg("loading pre-image items")
	preImage, err := q.FindCartItems(c, cart.ID)
	if err != nil {
		err = fmt.Errorf("failed loading pre-image items with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return domain.Cart{}, itemDiff{}, err
	}
	logger.Info().Msgf("loaded %d pre-image items", len(preImage))

	logger = logger.With().Str(log.KeyProcess, "normalizing items").Logger()
	logger.Info().Msg("normalizing snapshot items")
	candidates := normalizeItems(logger, rawItems)
	logger.Info().Msgf("normalized %d of %d snapshot items", len(candidates), len(rawItems))

	newImage := make([]domain.CartItem, 0, len(candidates))
	insertParams := make([]repository.InsertCartItemsParams, 0, len(candidates))
	subtotal := decimal.Zero
	discountTotal := decimal.Zero
	for _, candidate := range candidates {
		item := domain.CartItem{
			ID:                uuid.New(),
			CartID:            cart.ID,
			ExternalVariantID: candidate.ExternalVariantID,
			ExternalProductID: candidate.ExternalProductID,
			Sku:               candidate.Sku,
			Title:             candidate.Title,
			Quantity:          candidate.Quantity,
			ListPrice:         candidate.ListPrice,
			UnitPrice:         candidate.UnitPrice,
			DiscountAmount:    candidate.DiscountAmount,
		}
		if variant := svc.lookupVariant(c, q, cart.MerchantID, candidate.ExternalVariantID); variant != nil {
			item.VariantID = &variant.ID
			if item.Sku == "" {
				item.Sku = variant.Sku
			}
			if item.Title == "" {
				item.Title = variant.Title
			}
		}
		subtotal = subtotal.Add(item.UnitPrice.Mul(decimal.NewFromInt32(item.Quantity)))
		discountTotal = discountTotal.Add(item.DiscountAmount)
		newImage = append(newImage, item)
		insertParams = append(insertParams, repository.InsertCartItemsParams{
			ID:                item.ID,
			CartID:            item.CartID,
			VariantID:         item.VariantID,
			ExternalVariantID: item.ExternalVariantID,
			ExternalProductID: item.ExternalProductID,
			Sku:               item.Sku,
			Title:             item.Title,
			Quantity:          item.Quantity,
			ListPrice:         repository.NumericFromDecimal(item.ListPrice),
			UnitPrice:         repository.NumericFromDecimal(item.UnitPrice),
			DiscountAmount:    repository.NumericFromDecimal(item.DiscountAmount),
		})
	}

	logger = logger.With().Str(log.KeyProcess, "replacing items").Logger()
	logger.Info().Msg("deleting pre-image items")
	if _, err := q.DeleteCartItems(c, cart.ID); err != nil {
		err = fmt.Errorf("failed deleting pre-image items with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return domain.Cart{}, itemDiff{}, err
	}
	insertedCount, err := q.InsertCartItems(c, insertParams)
	if err != nil {
		err = fmt.Errorf("failed inserting cart items with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return domain.Cart{}, itemDiff{}, err
	}
	logger.Info().Msgf("inserted %d cart items", insertedCount)

	total := subtotal.Sub(discountTotal)
	err = q.UpdateCartTotals(c, repository.UpdateCartTotalsParams{
		ID:       cart.ID,
		Subtotal: repository.NumericFromDecimal(subtotal),
		Total:    repository.NumericFromDecimal(total),
	})
	if err != nil {
		err = fmt.Errorf("failed updating cart totals with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return domain.Cart{}, itemDiff{}, err
	}

	cart.Items = newImage
	cart.Subtotal = subtotal
	cart.Total = total

	return cart, diffItems(preImage, newImage), nil
}

// lookupVariant enriches an incoming item from the locally synced catalog,
// going through the cache first. A miss is not an error; enrichment is
// optional.
func (svc CartService) lookupVariant(
	c context.Context,
	q repository.Querier,
	merchantID uuid.UUID,
	externalVariantID int64,
) *domain.Variant {
	c, span := otel.Tracer.Start(c, "CartService lookupVariant")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService lookupVariant").
		Logger()

	cacheKey := fmt.Sprintf(cache.KeyVariant, merchantID.String(), externalVariantID)
	cached, err := svc.cache.Get(c, cacheKey).Result()
	if err == nil {
		variant := domain.Variant{}
		if err := json.Unmarshal([]byte(cached), &variant); err == nil {
			return &variant
		}
		logger.Warn().Str(log.KeyCacheKey, cacheKey).Msg("dropping unreadable variant cache entry")
		svc.cache.Del(c, cacheKey)
	}

	variant, err := q.FindVariantByExternalId(c, repository.FindVariantByExternalIdParams{
		MerchantID:        merchantID,
		ExternalVariantID: externalVariantID,
	})
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msgf("failed finding variant with error=%s", err.Error())
		}
		return nil
	}

	if encoded, err := json.Marshal(variant); err == nil {
		if err := svc.cache.Set(c, cacheKey, encoded, time.Hour).Err(); err != nil {
			logger.Info().Err(err).Str(log.KeyCacheKey, cacheKey).Msg("failed caching variant")
		}
	}
	return &variant
}

// appendActivities persists the pending audit events. Failures are logged
// and swallowed: the audit trail is best-effort and must never fail the
// primary operation.
func (svc CartService) appendActivities(c context.Context, events []activityEvent) {
	c, span := otel.Tracer.Start(c, "CartService appendActivities")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService appendActivities").
		Logger()

	for _, event := range events {
		payload, err := json.Marshal(event.Payload)
		if err != nil {
			err = fmt.Errorf("failed marshaling activity payload with error=%w", err)
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Str(log.KeyEventType, string(event.Type)).Msg(err.Error())
			continue
		}
		err = svc.queries.InsertActivityLog(c, repository.InsertActivityLogParams{
			MerchantID: event.MerchantID,
			CompanyID:  event.CompanyID,
			Type:       event.Type,
			Payload:    payload,
		})
		if err != nil {
			err = fmt.Errorf("failed appending activity log with error=%w", err)
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Str(log.KeyEventType, string(event.Type)).Msg(err.Error())
		}
	}
}

func (svc CartService) invalidateCartCache(c context.Context, cartID uuid.UUID) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService invalidateCartCache").
		Logger()
	cacheKey := fmt.Sprintf(cache.KeyCart, cartID.String())
	if err := svc.cache.Del(c, cacheKey).Err(); err != nil {
		logger.Info().Err(err).Str(log.KeyCacheKey, cacheKey).Msg("failed invalidating cart cache")
	}
}

func (svc CartService) FindCartById(
	c context.Context,
	param request.FindCartById,
) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService FindCartById")
	defer span.End()

	cacheKey := fmt.Sprintf(cache.KeyCart, param.ID.String())

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService FindCartById").
		Str(log.KeyCacheKey, cacheKey).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding cart in cache").Logger()
	logger.Info().Msg("finding cart in cache")
	cached, err := svc.cache.Get(c, cacheKey).Result()
	if err == nil {
		cart := response.Cart{}
		if err := json.Unmarshal([]byte(cached), &cart); err == nil && cart.MerchantID == param.MerchantID {
			logger.Info().Msg("found cart in cache")
			return cart, nil
		}
	}

	logger = logger.With().Str(log.KeyProcess, "finding cart in db").Logger()
	logger.Info().Msg("finding cart in db")
	cart, err := svc.queries.FindCartById(c, repository.FindCartByIdParams{
		ID:         param.ID,
		MerchantID: param.MerchantID,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.Cart{}, domain.ErrNotFound
		}
		err = fmt.Errorf("failed finding cart in db with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msg("found cart in db")

	cartResponse := response.FromCart(cart)
	if encoded, err := json.Marshal(cartResponse); err == nil {
		if err := svc.cache.Set(c, cacheKey, encoded, time.Hour).Err(); err != nil {
			logger.Info().Err(err).Msg("failed caching cart")
		}
	}
	return cartResponse, nil
}

// FindCartsByMerchant lists abandoned draft carts for a merchant, most
// recently synced first.
func (svc CartService) FindCartsByMerchant(
	c context.Context,
	merchantID uuid.UUID,
) ([]response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService FindCartsByMerchant")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService FindCartsByMerchant").
		Str(log.KeyMerchantID, merchantID.String()).
		Logger()

	logger.Info().Msg("finding carts by merchant")
	carts, err := svc.queries.FindCartsByMerchant(c, merchantID)
	if err != nil {
		err = fmt.Errorf("failed finding carts by merchant with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msgf("found %d carts", len(carts))

	responses := make([]response.Cart, 0, len(carts))
	for _, cart := range carts {
		responses = append(responses, response.FromCart(cart))
	}
	return responses, nil
}

func (svc CartService) FindCartActivities(
	c context.Context,
	param request.FindCartActivities,
) ([]domain.ActivityLog, error) {
	c, span := otel.Tracer.Start(c, "CartService FindCartActivities")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService FindCartActivities").
		Str(log.KeyCartID, param.CartId.String()).
		Logger()

	limit := param.Limit
	if limit <= 0 {
		limit = 100
	}

	logger.Info().Msg("finding cart activities")
	logs, err := svc.queries.FindActivityLogsByCart(c, repository.FindActivityLogsByCartParams{
		MerchantID: param.MerchantId,
		CartID:     param.CartId,
		Limit:      limit,
	})
	if err != nil {
		err = fmt.Errorf("failed finding cart activities with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msgf("found %d cart activities", len(logs))

	return logs, nil
}

// RestoreCart marks a cart as restored after verifying it belongs to the
// merchant. Repeating the restore is a no-op state set.
func (svc CartService) RestoreCart(
	c context.Context,
	param request.CartLifecycle,
) (response.Lifecycle, error) {
	c, span := otel.Tracer.Start(c, "CartService RestoreCart")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService RestoreCart").
		Str(log.KeyCartID, param.CartId.String()).
		Str(log.KeyMerchantID, param.MerchantId.String()).
		Logger()

	logger.Info().Msg("restoring cart")
	rows, err := svc.queries.UpdateCartStatus(c, repository.UpdateCartStatusParams{
		ID:         param.CartId,
		MerchantID: param.MerchantId,
		Status:     domain.CartStatusRestored,
	})
	if err != nil {
		err = fmt.Errorf("failed restoring cart with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Lifecycle{}, err
	}
	if rows == 0 {
		logger.Warn().Msg("cart not found for merchant")
		return response.Lifecycle{}, domain.ErrNotFound
	}
	logger.Info().Msg("restored cart")

	svc.invalidateCartCache(c, param.CartId)
	return response.Lifecycle{Success: true, Message: "cart restored"}, nil
}

// RemoveCart deletes a cart and its items after verifying ownership. Item
// rows go first to satisfy the foreign key; both deletes share one
// transaction.
func (svc CartService) RemoveCart(
	c context.Context,
	param request.CartLifecycle,
) (response.Lifecycle, error) {
	c, span := otel.Tracer.Start(c, "CartService RemoveCart")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService RemoveCart").
		Str(log.KeyCartID, param.CartId.String()).
		Str(log.KeyMerchantID, param.MerchantId.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "initializing transaction").Logger()
	logger.Info().Msg("initializing transaction")
	tx, err := svc.pool.BeginTx(c, pgx.TxOptions{})
	if err != nil {
		err = fmt.Errorf("failed initializing transaction with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Lifecycle{}, err
	}
	defer func(lg zerolog.Logger) {
		rollbackErr := tx.Rollback(c)
		if rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
			rollbackErr = fmt.Errorf("failed rolling back transaction with error=%w", rollbackErr)
			inOtel.RecordError(rollbackErr, span)
			lg.Error().Err(rollbackErr).Msg(rollbackErr.Error())
		}
	}(logger)

	c = logger.WithContext(c)
	result, err := svc.removeCart(c, svc.queries.WithTx(tx), param)
	if err != nil {
		return response.Lifecycle{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "committing transaction").Logger()
	logger.Info().Msg("committing transaction")
	err = tx.Commit(c)
	if err != nil {
		err = fmt.Errorf("failed committing transaction with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Lifecycle{}, err
	}
	logger.Info().Msg("committed transaction")

	svc.invalidateCartCache(c, param.CartId)
	return result, nil
}

func (svc CartService) removeCart(
	c context.Context,
	q repository.Querier,
	param request.CartLifecycle,
) (response.Lifecycle, error) {
	c, span := otel.Tracer.Start(c, "CartService removeCart")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService removeCart").
		Str(log.KeyProcess, "deleting cart").
		Logger()

	cart, err := q.FindCartById(c, repository.FindCartByIdParams{
		ID:         param.CartId,
		MerchantID: param.MerchantId,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			logger.Warn().Msg("cart not found for merchant")
			return response.Lifecycle{}, domain.ErrNotFound
		}
		err = fmt.Errorf("failed finding cart with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Lifecycle{}, err
	}

	logger.Info().Msg("deleting cart items")
	if _, err := q.DeleteCartItems(c, cart.ID); err != nil {
		err = fmt.Errorf("failed deleting cart items with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Lifecycle{}, err
	}

	logger.Info().Msg("deleting cart")
	rows, err := q.DeleteCart(c, repository.DeleteCartParams{
		ID:         cart.ID,
		MerchantID: param.MerchantId,
	})
	if err != nil {
		err = fmt.Errorf("failed deleting cart with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Lifecycle{}, err
	}
	if rows == 0 {
		return response.Lifecycle{}, domain.ErrNotFound
	}
	logger.Info().Msg("deleted cart")

	return response.Lifecycle{Success: true, Message: "cart deleted"}, nil
}
