package seed

import (
	"github.com/azarab79/KnowledgeGraphVisualizer-sub002/backend/internal/graph"
)

// The demo knowledge graph: a fictional commerce platform described as
// products, modules, components, tests, libraries and teams. Keys are the
// stable merge identities, so reseeding is idempotent.

func demoEntities() []graph.EntityInput {
	return []graph.EntityInput{
		{Labels: []string{"Product"}, Key: "product-nova", Name: "NovaCommerce",
			Properties: map[string]interface{}{"description": "Composable commerce platform"}},

		{Labels: []string{"Module"}, Key: "module-checkout", Name: "Checkout",
			Properties: map[string]interface{}{"description": "Cart and order placement"}},
		{Labels: []string{"Module"}, Key: "module-catalog", Name: "Catalog",
			Properties: map[string]interface{}{"description": "Product data and pricing"}},
		{Labels: []string{"Module"}, Key: "module-identity", Name: "Identity",
			Properties: map[string]interface{}{"description": "Accounts, sessions and access"}},
		{Labels: []string{"Module"}, Key: "module-search", Name: "Search",
			Properties: map[string]interface{}{"description": "Query parsing and ranking"}},
		{Labels: []string{"Module"}, Key: "module-billing", Name: "Billing",
			Properties: map[string]interface{}{"description": "Invoicing and settlement"}},

		{Labels: []string{"Component"}, Key: "component-cart-service", Name: "CartService"},
		{Labels: []string{"Component"}, Key: "component-payment-gateway", Name: "PaymentGateway"},
		{Labels: []string{"Component"}, Key: "component-product-indexer", Name: "ProductIndexer"},
		{Labels: []string{"Component"}, Key: "component-price-engine", Name: "PriceEngine"},
		{Labels: []string{"Component"}, Key: "component-auth-server", Name: "AuthServer"},
		{Labels: []string{"Component"}, Key: "component-session-store", Name: "SessionStore"},
		{Labels: []string{"Component"}, Key: "component-query-parser", Name: "QueryParser"},
		{Labels: []string{"Component"}, Key: "component-ranker", Name: "Ranker"},
		{Labels: []string{"Component"}, Key: "component-invoice-generator", Name: "InvoiceGenerator"},

		{Labels: []string{"Test"}, Key: "test-checkout-flow", Name: "CheckoutFlowTest",
			Properties: map[string]interface{}{"suite": "e2e"}},
		{Labels: []string{"Test"}, Key: "test-catalog-sync", Name: "CatalogSyncTest",
			Properties: map[string]interface{}{"suite": "integration"}},
		{Labels: []string{"Test"}, Key: "test-auth-roundtrip", Name: "AuthRoundTripTest",
			Properties: map[string]interface{}{"suite": "integration"}},
		{Labels: []string{"Test"}, Key: "test-search-relevance", Name: "SearchRelevanceTest",
			Properties: map[string]interface{}{"suite": "regression"}},

		{Labels: []string{"Library"}, Key: "library-pg-driver", Name: "pg-driver",
			Properties: map[string]interface{}{"language": "go"}},
		{Labels: []string{"Library"}, Key: "library-redis-client", Name: "redis-client",
			Properties: map[string]interface{}{"language": "go"}},
		{Labels: []string{"Library"}, Key: "library-http-router", Name: "http-router",
			Properties: map[string]interface{}{"language": "go"}},
		{Labels: []string{"Library"}, Key: "library-event-bus", Name: "event-bus",
			Properties: map[string]interface{}{"language": "go"}},

		{Labels: []string{"Team"}, Key: "team-payments", Name: "Payments Team"},
		{Labels: []string{"Team"}, Key: "team-platform", Name: "Platform Team"},
		{Labels: []string{"Team"}, Key: "team-discovery", Name: "Discovery Team"},
	}
}

func demoRelationships() []graph.RelationshipInput {
	return []graph.RelationshipInput{
		{FromKey: "product-nova", ToKey: "module-checkout", Type: "CONTAINS"},
		{FromKey: "product-nova", ToKey: "module-catalog", Type: "CONTAINS"},
		{FromKey: "product-nova", ToKey: "module-identity", Type: "CONTAINS"},
		{FromKey: "product-nova", ToKey: "module-search", Type: "CONTAINS"},
		{FromKey: "product-nova", ToKey: "module-billing", Type: "CONTAINS"},

		{FromKey: "module-checkout", ToKey: "component-cart-service", Type: "CONTAINS"},
		{FromKey: "module-checkout", ToKey: "component-payment-gateway", Type: "CONTAINS"},
		{FromKey: "module-catalog", ToKey: "component-product-indexer", Type: "CONTAINS"},
		{FromKey: "module-catalog", ToKey: "component-price-engine", Type: "CONTAINS"},
		{FromKey: "module-identity", ToKey: "component-auth-server", Type: "CONTAINS"},
		{FromKey: "module-identity", ToKey: "component-session-store", Type: "CONTAINS"},
		{FromKey: "module-search", ToKey: "component-query-parser", Type: "CONTAINS"},
		{FromKey: "module-search", ToKey: "component-ranker", Type: "CONTAINS"},
		{FromKey: "module-billing", ToKey: "component-invoice-generator", Type: "CONTAINS"},

		{FromKey: "module-checkout", ToKey: "module-billing", Type: "DEPENDS_ON"},
		{FromKey: "module-checkout", ToKey: "module-identity", Type: "DEPENDS_ON"},
		{FromKey: "module-search", ToKey: "module-catalog", Type: "DEPENDS_ON"},
		{FromKey: "module-catalog", ToKey: "module-identity", Type: "DEPENDS_ON"},

		{FromKey: "test-checkout-flow", ToKey: "module-checkout", Type: "VERIFIES"},
		{FromKey: "test-catalog-sync", ToKey: "module-catalog", Type: "VERIFIES"},
		{FromKey: "test-auth-roundtrip", ToKey: "module-identity", Type: "VERIFIES"},
		{FromKey: "test-search-relevance", ToKey: "module-search", Type: "VERIFIES"},

		{FromKey: "module-checkout", ToKey: "library-pg-driver", Type: "USES"},
		{FromKey: "module-checkout", ToKey: "library-event-bus", Type: "USES"},
		{FromKey: "module-catalog", ToKey: "library-pg-driver", Type: "USES"},
		{FromKey: "module-identity", ToKey: "library-redis-client", Type: "USES"},
		{FromKey: "module-search", ToKey: "library-http-router", Type: "USES"},
		{FromKey: "module-billing", ToKey: "library-event-bus", Type: "USES"},

		{FromKey: "team-payments", ToKey: "module-checkout", Type: "MAINTAINS"},
		{FromKey: "team-payments", ToKey: "module-billing", Type: "MAINTAINS"},
		{FromKey: "team-platform", ToKey: "module-identity", Type: "MAINTAINS"},
		{FromKey: "team-platform", ToKey: "module-catalog", Type: "MAINTAINS"},
		{FromKey: "team-discovery", ToKey: "module-search", Type: "MAINTAINS"},
	}
}
