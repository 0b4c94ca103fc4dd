package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jesuisfatih/eagledtfprint-sub004/cart/pkg/request"
	"github.com/jesuisfatih/eagledtfprint-sub004/internal/domain"
)

func TestResolveIdentityExplicitIdsWin(t *testing.T) {
	c := testContext()
	svc := testCartService()

	stub := newStubQuerier()
	merchant := domain.Merchant{ID: uuid.New(), ShopDomain: "acme.myshopify.com"}
	stub.merchants[merchant.ShopDomain] = merchant

	emailUser := domain.CompanyUser{
		ID:         uuid.New(),
		CompanyID:  uuid.New(),
		MerchantID: merchant.ID,
		Email:      "buyer@acme.example",
	}
	stub.usersByEmail[emailUser.Email] = emailUser

	explicitCompany := uuid.New()
	explicitUser := uuid.New()
	resolved, err := svc.resolveIdentity(c, stub, request.CartSnapshot{
		ShopDomain:    merchant.ShopDomain,
		CartToken:     "c1-token",
		CustomerEmail: emailUser.Email,
		CompanyId:     explicitCompany,
		UserId:        explicitUser,
	})

	require.NoError(t, err)
	assert.Equal(t, merchant.ID, resolved.MerchantID)
	assert.Equal(t, explicitCompany, resolved.CompanyID)
	if assert.NotNil(t, resolved.UserID) {
		assert.Equal(t, explicitUser, *resolved.UserID)
	}
}

func TestResolveIdentityEmailBeforeExternalId(t *testing.T) {
	c := testContext()
	svc := testCartService()

	stub := newStubQuerier()
	merchant := domain.Merchant{ID: uuid.New(), ShopDomain: "acme.myshopify.com"}
	stub.merchants[merchant.ShopDomain] = merchant

	emailUser := domain.CompanyUser{
		ID:         uuid.New(),
		CompanyID:  uuid.New(),
		MerchantID: merchant.ID,
		Email:      "buyer@acme.example",
	}
	stub.usersByEmail[emailUser.Email] = emailUser

	externalUser := domain.CompanyUser{
		ID:         uuid.New(),
		CompanyID:  uuid.New(),
		MerchantID: merchant.ID,
		Email:      "other@acme.example",
	}
	stub.usersByExternalId["7001"] = externalUser

	resolved, err := svc.resolveIdentity(c, stub, request.CartSnapshot{
		ShopDomain:         merchant.ShopDomain,
		CartToken:          "c1-token",
		CustomerEmail:      emailUser.Email,
		ExternalCustomerId: "7001",
	})

	require.NoError(t, err)
	assert.Equal(t, emailUser.CompanyID, resolved.CompanyID)
	if assert.NotNil(t, resolved.UserID) {
		assert.Equal(t, emailUser.ID, *resolved.UserID)
	}
}

func TestResolveIdentityMerchantFromEmail(t *testing.T) {
	c := testContext()
	svc := testCartService()

	stub := newStubQuerier()
	emailUser := domain.CompanyUser{
		ID:         uuid.New(),
		CompanyID:  uuid.New(),
		MerchantID: uuid.New(),
		Email:      "buyer@acme.example",
	}
	stub.usersByEmail[emailUser.Email] = emailUser

	resolved, err := svc.resolveIdentity(c, stub, request.CartSnapshot{
		CartToken:     "c1-token",
		CustomerEmail: emailUser.Email,
	})

	require.NoError(t, err)
	assert.Equal(t, emailUser.MerchantID, resolved.MerchantID)
	assert.Equal(t, emailUser.CompanyID, resolved.CompanyID)
	assert.False(t, resolved.Anonymous())
}

func TestResolveIdentityIgnoresEmailFromOtherMerchant(t *testing.T) {
	c := testContext()
	svc := testCartService()

	stub := newStubQuerier()
	merchant := domain.Merchant{ID: uuid.New(), ShopDomain: "acme.myshopify.com"}
	stub.merchants[merchant.ShopDomain] = merchant

	foreignUser := domain.CompanyUser{
		ID:         uuid.New(),
		CompanyID:  uuid.New(),
		MerchantID: uuid.New(),
		Email:      "buyer@elsewhere.example",
	}
	stub.usersByEmail[foreignUser.Email] = foreignUser

	resolved, err := svc.resolveIdentity(c, stub, request.CartSnapshot{
		ShopDomain:    merchant.ShopDomain,
		CartToken:     "c1-token",
		CustomerEmail: foreignUser.Email,
	})

	require.NoError(t, err)
	assert.Equal(t, merchant.ID, resolved.MerchantID)
	assert.True(t, resolved.Anonymous())
	assert.Nil(t, resolved.UserID)

	// With an external id registered under this merchant, attribution
	// falls through to that lookup instead of the foreign email match.
	localUser := domain.CompanyUser{
		ID:         uuid.New(),
		CompanyID:  uuid.New(),
		MerchantID: merchant.ID,
		Email:      "local@acme.example",
	}
	stub.usersByExternalId["7001"] = localUser

	resolved, err = svc.resolveIdentity(c, stub, request.CartSnapshot{
		ShopDomain:         merchant.ShopDomain,
		CartToken:          "c1-token",
		CustomerEmail:      foreignUser.Email,
		ExternalCustomerId: "7001",
	})

	require.NoError(t, err)
	assert.Equal(t, localUser.CompanyID, resolved.CompanyID)
	if assert.NotNil(t, resolved.UserID) {
		assert.Equal(t, localUser.ID, *resolved.UserID)
	}
}

func TestResolveIdentityUnknownExternalIdStaysAnonymous(t *testing.T) {
	c := testContext()
	svc := testCartService()

	stub := newStubQuerier()
	merchant := domain.Merchant{ID: uuid.New(), ShopDomain: "acme.myshopify.com"}
	stub.merchants[merchant.ShopDomain] = merchant

	resolved, err := svc.resolveIdentity(c, stub, request.CartSnapshot{
		ShopDomain:         merchant.ShopDomain,
		CartToken:          "c1-token",
		ExternalCustomerId: "unknown",
	})

	require.NoError(t, err)
	assert.True(t, resolved.Anonymous())
	assert.Nil(t, resolved.UserID)
}

func TestResolveIdentityUnknownShopDomain(t *testing.T) {
	c := testContext()
	svc := testCartService()

	_, err := svc.resolveIdentity(c, newStubQuerier(), request.CartSnapshot{
		ShopDomain: "nobody.myshopify.com",
		CartToken:  "c1-token",
	})

	assert.ErrorIs(t, err, domain.ErrMerchantUnresolved)
}
