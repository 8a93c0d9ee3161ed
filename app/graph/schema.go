// Package graph exposes a read-only GraphQL view of the catalogue at
// /api/graphql, for storefront clients that want to shape their own
// queries instead of consuming the REST projections.
package graph

import (
	"fmt"

	"github.com/graphql-go/graphql"

	"github.com/shashiranjanraj/aushadhi/app/models"
	"github.com/shashiranjanraj/aushadhi/app/services"
	gql "github.com/shashiranjanraj/aushadhi/pkg/graphql"
)

var productType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Product",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: graphql.Int},
		"name":        &graphql.Field{Type: graphql.String},
		"brand":       &graphql.Field{Type: graphql.String},
		"categoryId":  &graphql.Field{Type: graphql.Int},
		"price":       &graphql.Field{Type: graphql.Float},
		"discount":    &graphql.Field{Type: graphql.Float},
		"stock":       &graphql.Field{Type: graphql.Int},
		"description": &graphql.Field{Type: graphql.String},
		"finalPrice": &graphql.Field{
			Type: graphql.Float,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				product, ok := p.Source.(models.Product)
				if !ok {
					return nil, nil
				}
				return product.EffectivePrice(), nil
			},
		},
		"image": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				product, ok := p.Source.(models.Product)
				if !ok {
					return nil, nil
				}
				return product.FirstImage(), nil
			},
		},
		"inStock": &graphql.Field{
			Type: graphql.Boolean,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				product, ok := p.Source.(models.Product)
				if !ok {
					return nil, nil
				}
				return product.InStock(), nil
			},
		},
	},
})

var categoryType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Category",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: graphql.Int},
		"name":        &graphql.Field{Type: graphql.String},
		"description": &graphql.Field{Type: graphql.String},
		"image":       &graphql.Field{Type: graphql.String},
	},
})

// NewSchema builds the catalogue query schema backed by the given service.
func NewSchema(catalog *services.CatalogService) (graphql.Schema, error) {
	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"categories": &graphql.Field{
				Type: graphql.NewList(categoryType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return catalog.Categories()
				},
			},
			"products": &graphql.Field{
				Type: graphql.NewList(productType),
				Args: graphql.FieldConfigArgument{
					"category": &graphql.ArgumentConfig{Type: graphql.Int},
					"search":   &graphql.ArgumentConfig{Type: graphql.String},
					"page":     &graphql.ArgumentConfig{Type: graphql.Int},
					"limit":    &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					filter := services.ProductFilter{Page: 1, Limit: 20}
					if v, ok := p.Args["category"].(int); ok {
						filter.CategoryID = uint(v)
					}
					if v, ok := p.Args["search"].(string); ok {
						filter.Search = v
					}
					if v, ok := p.Args["page"].(int); ok && v > 0 {
						filter.Page = v
					}
					if v, ok := p.Args["limit"].(int); ok && v > 0 {
						filter.Limit = v
					}
					products, _, err := catalog.Products(filter)
					return products, err
				},
			},
			"product": &graphql.Field{
				Type: productType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, ok := p.Args["id"].(int)
					if !ok || id < 1 {
						return nil, fmt.Errorf("invalid product id")
					}
					return catalog.Product(uint(id))
				},
			},
		},
	})

	return gql.NewSchema(query)
}
