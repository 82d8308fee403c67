// Package changeproductprice implements the Change Product Price use case.
package changeproductprice
