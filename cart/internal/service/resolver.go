package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jesuisfatih/eagledtfprint-sub004/cart/internal/common/otel"
	"github.com/jesuisfatih/eagledtfprint-sub004/cart/pkg/request"
	"github.com/jesuisfatih/eagledtfprint-sub004/internal/domain"
	"github.com/jesuisfatih/eagledtfprint-sub004/internal/log"
	inOtel "github.com/jesuisfatih/eagledtfprint-sub004/internal/otel"
	"github.com/jesuisfatih/eagledtfprint-sub004/internal/repository"
)

// identity is the outcome of resolving a snapshot's hints. CompanyID and
// UserID stay nil when nothing matched; only the merchant is mandatory.
type identity struct {
	MerchantID uuid.UUID
	CompanyID  uuid.UUID
	UserID     *uuid.UUID
}

// Anonymous reports whether no company could be resolved for the snapshot.
func (i identity) Anonymous() bool {
	return i.CompanyID == uuid.Nil
}

// resolveIdentity determines the owning merchant and best-effort resolves a
// company and user. Explicit ids always win over inferred lookups, and the
// email lookup always precedes the external-customer-id lookup.
func (svc CartService) resolveIdentity(
	c context.Context,
	q repository.Querier,
	param request.CartSnapshot,
) (identity, error) {
	c, span := otel.Tracer.Start(c, "CartService resolveIdentity")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService resolveIdentity").
		Str(log.KeyShopDomain, param.ShopDomain).
		Logger()

	resolved := identity{}

	var userByEmail *domain.CompanyUser
	if param.CustomerEmail != "" {
		companyUser, err := q.FindCompanyUserByEmail(c, param.CustomerEmail)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			err = fmt.Errorf("failed finding company user by email with error=%w", err)
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return identity{}, err
		}
		if err == nil {
			userByEmail = &companyUser
		}
	}

	logger = logger.With().Str(log.KeyProcess, "resolving merchant").Logger()
	logger.Info().Msg("resolving merchant")
	switch {
	case param.ShopDomain != "":
		merchant, err := q.FindMerchantByShopDomain(c, param.ShopDomain)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return identity{}, domain.ErrMerchantUnresolved
			}
			err = fmt.Errorf("failed finding merchant by shopDomain=%s with error=%w", param.ShopDomain, err)
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return identity{}, err
		}
		resolved.MerchantID = merchant.ID
	case userByEmail != nil:
		resolved.MerchantID = userByEmail.MerchantID
	default:
		return identity{}, domain.ErrMerchantUnresolved
	}
	logger = logger.With().Str(log.KeyMerchantID, resolved.MerchantID.String()).Logger()
	logger.Info().Msg("resolved merchant")

	// Companies are tenant-scoped. An email registered under another
	// merchant must not attribute this merchant's cart; drop the match and
	// fall through to the external-id lookup or the anonymous bucket.
	if userByEmail != nil && userByEmail.MerchantID != resolved.MerchantID {
		logger.Warn().
			Str(log.KeyEmail, param.CustomerEmail).
			Msg("ignoring email match registered under another merchant")
		userByEmail = nil
	}

	logger = logger.With().Str(log.KeyProcess, "resolving company and user").Logger()
	logger.Info().Msg("resolving company and user")
	switch {
	case param.CompanyId != uuid.Nil:
		resolved.CompanyID = param.CompanyId
		if param.UserId != uuid.Nil {
			userId := param.UserId
			resolved.UserID = &userId
		}
	case userByEmail != nil:
		resolved.CompanyID = userByEmail.CompanyID
		userId := userByEmail.ID
		resolved.UserID = &userId
	case param.ExternalCustomerId != "":
		companyUser, err := q.FindCompanyUserByExternalId(c, repository.FindCompanyUserByExternalIdParams{
			MerchantID:         resolved.MerchantID,
			ExternalCustomerID: param.ExternalCustomerId,
		})
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			err = fmt.Errorf("failed finding company user by externalCustomerId with error=%w", err)
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return identity{}, err
		}
		if err == nil {
			resolved.CompanyID = companyUser.CompanyID
			userId := companyUser.ID
			resolved.UserID = &userId
		}
	}
	logger.Info().
		Bool("anonymous", resolved.Anonymous()).
		Msg("resolved company and user")

	return resolved, nil
}

// ensureCompany falls back to the merchant's "Anonymous Customers" bucket
// when no company was resolved. The upsert is idempotent under concurrent
// snapshots for the same merchant.
func (svc CartService) ensureCompany(
	c context.Context,
	q repository.Querier,
	resolved identity,
) (identity, error) {
	c, span := otel.Tracer.Start(c, "CartService ensureCompany")
	defer span.End()

	if !resolved.Anonymous() {
		return resolved, nil
	}

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService ensureCompany").
		Str(log.KeyMerchantID, resolved.MerchantID.String()).
		Str(log.KeyProcess, "upserting anonymous company").
		Logger()

	logger.Info().Msg("upserting anonymous company")
	company, err := q.UpsertAnonymousCompany(c, resolved.MerchantID)
	if err != nil {
		err = fmt.Errorf("failed upserting anonymous company with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return identity{}, err
	}
	logger.Info().Str(log.KeyCompanyID, company.ID.String()).Msg("upserted anonymous company")

	resolved.CompanyID = company.ID
	return resolved, nil
}
