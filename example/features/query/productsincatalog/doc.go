// Package productsincatalog implements the Products In Catalog query use case.
//
// The query returns a ProductsInCatalog struct containing the list of product
// information ordered by name and the total count.
package productsincatalog
