// Package core contains the domain types shared by the product catalog
// features. It is pure business vocabulary with no infrastructure dependencies.
package core
