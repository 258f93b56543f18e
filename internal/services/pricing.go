package services

import (
	"backend/internal/domain"
	"backend/internal/domain/models"
	"backend/internal/repositories"
	"backend/internal/utils"
)

// LineItemRequest is the normalized client input for one bookable unit.
// Price pointers distinguish "absent" from an explicit zero.
type LineItemRequest struct {
	CatalogRef string
	Date       string
	AdultCount int
	ChildCount int
	AdultPrice *float64
	ChildPrice *float64
}

// PricedCart is the pricing engine output, later frozen into the booking
// snapshot.
type PricedCart struct {
	Items          []models.BookingItem
	Subtotal       float64
	TransactionFee float64
	TotalPrice     float64
}

// PriceResolver resolves authoritative unit prices for a line item. It is a
// fallback chain, not a validator: a deleted or malformed catalog reference
// must not block guest checkout.
type PriceResolver interface {
	Resolve(catalogRef string, clientAdult, clientChild *float64) (adultPrice, childPrice float64)
}

// CatalogResolver resolves prices against the read-only tour catalog.
// Priority per field: client-supplied non-zero value, then the catalog price,
// then 0. Lookup failures are downgraded, never propagated.
type CatalogResolver struct {
	Tours repositories.TourRepository
}

func (r CatalogResolver) Resolve(catalogRef string, clientAdult, clientChild *float64) (float64, float64) {
	var catalogAdult, catalogChild float64
	if tour, err := r.Tours.GetByRef(catalogRef); err == nil {
		catalogAdult = tour.PriceAdult
		catalogChild = tour.PriceChild
	}
	return resolvePrice(clientAdult, catalogAdult), resolvePrice(clientChild, catalogChild)
}

func resolvePrice(client *float64, catalog float64) float64 {
	if client != nil && utils.SafeNumber(*client) > 0 {
		return utils.SafeNumber(*client)
	}
	return utils.SafeNumber(catalog)
}

// PricingEngine converts line-item requests into a priced cart. Pure: the
// only collaborator is the injected resolver, so tests can stub it.
type PricingEngine struct {
	FeeRate  float64
	Resolver PriceResolver
}

// Price resolves every line sequentially, keeps line totals at full
// precision, and rounds only the fee and the grand total.
func (e PricingEngine) Price(reqs []LineItemRequest) (PricedCart, error) {
	if len(reqs) == 0 {
		return PricedCart{}, domain.ValidationError{Field: "items", Msg: "items required"}
	}

	cart := PricedCart{Items: make([]models.BookingItem, 0, len(reqs))}
	for _, req := range reqs {
		adultPrice, childPrice := e.Resolver.Resolve(req.CatalogRef, req.AdultPrice, req.ChildPrice)

		adultCount := req.AdultCount
		if adultCount < 0 {
			adultCount = 0
		}
		childCount := req.ChildCount
		if childCount < 0 {
			childCount = 0
		}

		lineTotal := float64(adultCount)*adultPrice + float64(childCount)*childPrice
		cart.Items = append(cart.Items, models.BookingItem{
			CatalogRef: req.CatalogRef,
			Date:       req.Date,
			AdultCount: adultCount,
			ChildCount: childCount,
			AdultPrice: adultPrice,
			ChildPrice: childPrice,
			LineTotal:  lineTotal,
		})
		cart.Subtotal += lineTotal
	}

	cart.TransactionFee = utils.Round2(cart.Subtotal * e.FeeRate)
	cart.TotalPrice = utils.Round2(cart.Subtotal + cart.TransactionFee)
	return cart, nil
}
