package app

import (
	"github.com/go-chi/chi/v5"

	"github.com/odyssey-erp/odyssey-console/internal/cascade"
	"github.com/odyssey-erp/odyssey-console/internal/console"
	"github.com/odyssey-erp/odyssey-console/internal/cx/invoices"
	"github.com/odyssey-erp/odyssey-console/internal/cx/quotations"
	"github.com/odyssey-erp/odyssey-console/internal/logistics/lastmile"
	"github.com/odyssey-erp/odyssey-console/internal/lookup"
	"github.com/odyssey-erp/odyssey-console/internal/masterdata/companies"
	"github.com/odyssey-erp/odyssey-console/internal/masterdata/forwarders"
	"github.com/odyssey-erp/odyssey-console/internal/masterdata/pricing"
	"github.com/odyssey-erp/odyssey-console/internal/masterdata/products"
	"github.com/odyssey-erp/odyssey-console/internal/masterdata/stores"
	"github.com/odyssey-erp/odyssey-console/internal/masterdata/suppliers"
	"github.com/odyssey-erp/odyssey-console/internal/platform/backend"
	"github.com/odyssey-erp/odyssey-console/internal/procurement/goodsreceipts"
	"github.com/odyssey-erp/odyssey-console/internal/procurement/purchaseorders"
	"github.com/odyssey-erp/odyssey-console/internal/view"
)

// Routable mounts its routes below a path prefix.
type Routable interface {
	MountRoutes(r chi.Router)
}

// Mount binds an entity handler to its path.
type Mount struct {
	Path    string
	Handler Routable
}

// Navigation lists every entity page grouped by domain.
func Navigation() []view.NavSection {
	return []view.NavSection{
		{Title: "Master Data", Links: []view.NavLink{
			{Label: "Suppliers", Path: suppliers.Path},
			{Label: "Forwarders", Path: forwarders.Path},
			{Label: "Companies", Path: companies.Path},
			{Label: "Stores", Path: stores.Path},
			{Label: "Products", Path: products.Path},
			{Label: "Pricing", Path: pricing.Path},
		}},
		{Title: "Procurement", Links: []view.NavLink{
			{Label: "Purchase Orders", Path: purchaseorders.Path},
			{Label: "Goods Receipts", Path: goodsreceipts.Path},
		}},
		{Title: "Logistics", Links: []view.NavLink{
			{Label: "Last-Mile Shipments", Path: lastmile.Path},
		}},
		{Title: "Customer Experience", Links: []view.NavLink{
			{Label: "Invoices", Path: invoices.Path},
			{Label: "Quotations", Path: quotations.Path},
		}},
	}
}

// NewPages builds the handler of every entity page.
func NewPages(deps console.Deps, client *backend.Client, lookups cascade.Lookups) []Mount {
	return []Mount{
		{Path: suppliers.Path, Handler: suppliers.NewHandler(deps, client, lookups)},
		{Path: forwarders.Path, Handler: forwarders.NewHandler(deps, client, lookups)},
		{Path: companies.Path, Handler: companies.NewHandler(deps, client, lookups)},
		{Path: stores.Path, Handler: stores.NewHandler(deps, client, lookups)},
		{Path: products.Path, Handler: products.NewHandler(deps, client, lookups)},
		{Path: pricing.Path, Handler: pricing.NewHandler(deps, client, lookups)},
		{Path: purchaseorders.Path, Handler: purchaseorders.NewHandler(deps, client)},
		{Path: goodsreceipts.Path, Handler: goodsreceipts.NewHandler(deps, client)},
		{Path: lastmile.Path, Handler: lastmile.NewHandler(deps, client, lookups)},
		{Path: invoices.Path, Handler: invoices.NewHandler(deps, client)},
		{Path: quotations.Path, Handler: quotations.NewHandler(deps, client)},
	}
}

// RegisterOptions binds every select option source used by the entity forms.
func RegisterOptions(opts *console.Options, client *backend.Client, cache *lookup.Cache) {
	opts.RegisterLookups(cache)
	opts.Register(purchaseorders.OptionSuppliers, suppliers.Options(client))
	opts.Register(lastmile.OptionForwarders, forwarders.Options(client))
	opts.Register(stores.OptionCompanies, companies.Options(client))
	opts.Register(goodsreceipts.OptionStores, stores.Options(client))
	opts.Register(pricing.OptionProducts, products.Options(client))
	opts.Register(goodsreceipts.OptionPurchaseOrders, purchaseorders.Options(client))
}
